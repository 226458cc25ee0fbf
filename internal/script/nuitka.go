package script

import (
	"strconv"
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
)

func nuitkaArgs(r *config.Record) *ArgList {
	l := NewArgList("nuitka")
	mode := config.Mode(strings.ToLower(strings.TrimSpace(string(r.EffectiveMode()))))

	l.Add(
		Lit("--mode="+string(mode)),
		FlagExpr("--output-dir", "OUTPUT_DIR"),
		FlagExpr("--output-filename", "PROJECT_NAME"),
	)
	if mode.UsesOutputFolder() {
		l.Add(FlagExpr("--output-folder-name", Join("PROJECT_NAME", Lit(".dist"))))
	}

	if lto := strings.ToLower(r.LTO); lto != "" && lto != string(config.LTONo) {
		l.Add(Lit("--lto=" + lto))
	}
	if r.Jobs > 0 {
		l.Add(Lit("--jobs=" + strconv.Itoa(r.Jobs)))
	}
	if r.PythonFlag != "" {
		l.Add(Lit("--python-flag=" + r.PythonFlag))
	}

	switch {
	case r.QuietMode:
		l.Add(Lit("--quiet"))
	case r.ShowProgress:
		l.Add(Lit("--show-progress"))
	}
	if r.RemoveOutput {
		l.Add(Lit("--remove-output"))
	}
	// Stub files only exist for extension modules and packages.
	if r.NoPyiFile && mode.Importable() {
		l.Add(Lit("--no-pyi-file"))
	}
	if r.FollowImports {
		l.Add(Lit("--follow-imports"))
	}
	if r.AssumeYesForDownloads {
		l.Add(Lit("--assume-yes-for-downloads"))
	}

	l.AddEach("--include-package", config.SplitItems(r.IncludePackages))
	l.AddEach("--include-module", config.SplitItems(r.IncludeModules))
	l.AddEach("--nofollow-import-to", config.SplitItems(r.NofollowImports))
	l.AddEach("--nofollow-import-to", r.ExcludePackages)

	equals := func(src, dst Arg) Arg { return Join(src, Lit("="), dst) }
	l.Add(mappingArgs("--include-data-files", config.SplitItems(r.IncludeDataFiles), false, equals)...)
	l.Add(mappingArgs("--include-data-dir", config.SplitItems(r.IncludeDataDirs), false, equals)...)

	l.AddEach("--enable-plugin", r.Plugins)

	nuitkaGates(l, r)
	return l
}

func nuitkaGates(l *ArgList, r *config.Record) {
	windows := []config.Platform{config.Windows}

	if !r.ShowConsole {
		l.AddGate("No console window", windows, Lit("--windows-console-mode=disable"))
	}

	if r.IconFile != "" {
		l.AddGate("Icon", windows, FlagExpr("--windows-icon-from-ico", "ICON_FILE"))
		l.AddGate("", []config.Platform{config.MacOS}, FlagExpr("--macos-app-icon", "ICON_FILE"))
		l.AddGate("", []config.Platform{config.Linux}, FlagExpr("--linux-icon", "ICON_FILE"))
	}

	var meta []Arg
	if r.CompanyName != "" {
		meta = append(meta, FlagExpr("--windows-company-name", "COMPANY_NAME"))
	}
	meta = append(meta,
		FlagExpr("--windows-product-version", "VERSION"),
		FlagExpr("--windows-file-version", "VERSION"),
	)
	l.AddGate("Version information", windows, meta...)

	// Compilers a platform does not support fall back to its default,
	// which needs no flag.
	compiler := config.Compiler(strings.ToLower(r.Compiler))
	for _, p := range config.Platforms {
		if flag := config.CompilerFlag(compiler, p); flag != "" {
			l.AddGate("C compiler ("+string(p)+")", []config.Platform{p}, Lit(flag))
		}
	}
}
