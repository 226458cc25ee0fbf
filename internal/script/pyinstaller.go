package script

import (
	"github.com/gersonkurz/pybuilder/internal/config"
)

func pyinstallerArgs(r *config.Record) *ArgList {
	l := NewArgList("PyInstaller")
	onefile := r.Onefile

	if onefile {
		l.Add(Lit("--onefile"))
	}
	l.Add(FlagExpr("--distpath", "OUTPUT_DIR"))
	// Keep the work directory apart from a dist folder named "build".
	if !onefile && r.OutputDir == "build" {
		l.Add(Lit("--workpath=build/temp"))
	}
	l.Add(FlagExpr("--name", "PROJECT_NAME"))

	// contents_directory applies to directory mode only, splash_image and
	// runtime_tmpdir to onefile mode only. The inactive values stay in the
	// record so switching modes back restores them.
	if !onefile && r.ContentsDirectory != "" && r.ContentsDirectory != "." {
		l.Add(Lit("--contents-directory=" + r.ContentsDirectory))
	}
	if !r.ShowConsole {
		l.Add(Lit("--noconsole"))
	}
	if r.Clean {
		l.Add(Lit("--clean"))
	}
	if r.Noconfirm {
		l.Add(Lit("--noconfirm"))
	}
	if r.QuietMode {
		l.Add(Lit("--log-level=WARN"))
	}
	if r.Debug {
		l.Add(Lit("--debug=all"))
	}
	if onefile && r.RuntimeTmpdir != "" {
		l.Add(Lit("--runtime-tmpdir=" + r.RuntimeTmpdir))
	}

	l.AddEach("--hidden-import", config.SplitItems(r.HiddenImports))
	l.AddEach("--exclude-module", config.SplitItems(r.ExcludeModules))
	l.AddEach("--exclude-module", r.ExcludePackages)
	l.AddEach("--collect-submodules", config.SplitItems(r.CollectSubmodules))
	l.AddEach("--collect-data", config.SplitItems(r.CollectData))
	l.AddEach("--collect-binaries", config.SplitItems(r.CollectBinaries))
	l.AddEach("--collect-all", config.SplitItems(r.CollectAll))

	separated := func(src, dst Arg) Arg { return Join(src, "data_separator", dst) }
	l.Add(mappingArgs("--add-data", config.SplitItems(r.AddData), true, separated)...)
	l.Add(mappingArgs("--add-binary", config.SplitItems(r.AddBinary), true, separated)...)

	pyinstallerGates(l, r)
	return l
}

func pyinstallerGates(l *ArgList, r *config.Record) {
	windows := []config.Platform{config.Windows}
	macos := []config.Platform{config.MacOS}

	if r.IconFile != "" {
		l.AddGate("Icon", []config.Platform{config.Windows, config.MacOS}, FlagExpr("--icon", "ICON_FILE"))
	}
	if r.Onefile && r.SplashImage != "" {
		l.AddGate("Splash screen", []config.Platform{config.Windows, config.Linux}, FlagExpr("--splash", "SPLASH_IMAGE"))
	}

	var win []Arg
	if r.UACAdmin {
		win = append(win, Lit("--uac-admin"))
	}
	if r.WinVersionFile != "" {
		win = append(win, Lit("--version-file="+r.WinVersionFile))
	}
	if r.WinManifest != "" {
		win = append(win, Lit("--manifest="+r.WinManifest))
	}
	l.AddGate("Windows only", windows, win...)

	var mac []Arg
	if r.TargetArchitecture != "" {
		mac = append(mac, Lit("--target-architecture="+r.TargetArchitecture))
	}
	if r.OSXBundleIdentifier != "" {
		mac = append(mac, Lit("--osx-bundle-identifier="+r.OSXBundleIdentifier))
	}
	if r.OSXEntitlementsFile != "" {
		mac = append(mac, Lit("--osx-entitlements-file="+r.OSXEntitlementsFile))
	}
	if r.CodesignIdentity != "" {
		mac = append(mac, Lit("--codesign-identity="+r.CodesignIdentity))
	}
	l.AddGate("macOS only", macos, mac...)
}
