package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Kind is the value type of a schema key.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Section groups keys in the encoded file. Sections are written in
// declaration order.
type Section int

const (
	SectionProject Section = iota
	SectionBuild
	SectionPackaging
	SectionNuitka
	SectionPyInstaller
	SectionInstaller
	SectionLists
)

// Field describes one recognized configuration key.
type Field struct {
	Key     string
	Kind    Kind
	Section Section
	Default any // bool, int, string or []string matching Kind

	// AlwaysEmit keeps the key in the encoded file even when it holds its
	// default. For backend sections it applies only while that backend is
	// selected.
	AlwaysEmit bool

	ref func(r *Record) any
}

// Ptr returns a pointer to the record field backing f: *bool, *int,
// *string or *[]string depending on Kind.
func (f Field) Ptr(r *Record) any {
	return f.ref(r)
}

func boolField(key string, sec Section, def, always bool, ref func(*Record) *bool) Field {
	return Field{Key: key, Kind: KindBool, Section: sec, Default: def, AlwaysEmit: always,
		ref: func(r *Record) any { return ref(r) }}
}

func intField(key string, sec Section, def int, always bool, ref func(*Record) *int) Field {
	return Field{Key: key, Kind: KindInt, Section: sec, Default: def, AlwaysEmit: always,
		ref: func(r *Record) any { return ref(r) }}
}

func stringField(key string, sec Section, def string, always bool, ref func(*Record) *string) Field {
	return Field{Key: key, Kind: KindString, Section: sec, Default: def, AlwaysEmit: always,
		ref: func(r *Record) any { return ref(r) }}
}

func listField(key string, ref func(*Record) *[]string) Field {
	return Field{Key: key, Kind: KindList, Section: SectionLists, Default: []string(nil),
		ref: func(r *Record) any { return ref(r) }}
}

// schema is the single source of truth for keys, types and defaults.
// Order inside a section is the order keys are written.
var schema = []Field{
	stringField("project_name", SectionProject, "MyApp", true, func(r *Record) *string { return &r.ProjectName }),
	stringField("version", SectionProject, "1.0.0", true, func(r *Record) *string { return &r.Version }),
	stringField("company_name", SectionProject, "", false, func(r *Record) *string { return &r.CompanyName }),
	stringField("entry_file", SectionProject, "main.py", true, func(r *Record) *string { return &r.EntryFile }),
	stringField("icon_file", SectionProject, "", false, func(r *Record) *string { return &r.IconFile }),

	stringField("build_tool", SectionBuild, string(PyInstaller), true, func(r *Record) *string { return &r.BuildTool }),
	stringField("output_dir", SectionBuild, "dist", true, func(r *Record) *string { return &r.OutputDir }),
	boolField("quiet_mode", SectionBuild, false, true, func(r *Record) *bool { return &r.QuietMode }),

	boolField("onefile", SectionPackaging, true, true, func(r *Record) *bool { return &r.Onefile }),
	boolField("show_console", SectionPackaging, false, true, func(r *Record) *bool { return &r.ShowConsole }),

	stringField("mode", SectionNuitka, "", true, func(r *Record) *string { return &r.Mode }),
	boolField("standalone", SectionNuitka, true, true, func(r *Record) *bool { return &r.Standalone }),
	boolField("remove_output", SectionNuitka, true, true, func(r *Record) *bool { return &r.RemoveOutput }),
	boolField("show_progress", SectionNuitka, true, true, func(r *Record) *bool { return &r.ShowProgress }),
	stringField("lto", SectionNuitka, string(LTONo), true, func(r *Record) *string { return &r.LTO }),
	intField("jobs", SectionNuitka, 4, true, func(r *Record) *int { return &r.Jobs }),
	stringField("python_flag", SectionNuitka, "", false, func(r *Record) *string { return &r.PythonFlag }),
	stringField("compiler", SectionNuitka, "", true, func(r *Record) *string { return &r.Compiler }),
	boolField("no_pyi_file", SectionNuitka, false, false, func(r *Record) *bool { return &r.NoPyiFile }),
	boolField("follow_imports", SectionNuitka, true, false, func(r *Record) *bool { return &r.FollowImports }),
	boolField("assume_yes_for_downloads", SectionNuitka, false, false, func(r *Record) *bool { return &r.AssumeYesForDownloads }),
	stringField("include_packages", SectionNuitka, "", false, func(r *Record) *string { return &r.IncludePackages }),
	stringField("include_modules", SectionNuitka, "", false, func(r *Record) *string { return &r.IncludeModules }),
	stringField("nofollow_imports", SectionNuitka, "", false, func(r *Record) *string { return &r.NofollowImports }),
	stringField("include_data_files", SectionNuitka, "", false, func(r *Record) *string { return &r.IncludeDataFiles }),
	stringField("include_data_dirs", SectionNuitka, "", false, func(r *Record) *string { return &r.IncludeDataDirs }),

	boolField("clean", SectionPyInstaller, true, true, func(r *Record) *bool { return &r.Clean }),
	boolField("noconfirm", SectionPyInstaller, false, false, func(r *Record) *bool { return &r.Noconfirm }),
	boolField("debug", SectionPyInstaller, false, true, func(r *Record) *bool { return &r.Debug }),
	boolField("show_progressbar", SectionPyInstaller, true, true, func(r *Record) *bool { return &r.ShowProgressbar }),
	stringField("contents_directory", SectionPyInstaller, ".", true, func(r *Record) *string { return &r.ContentsDirectory }),
	boolField("uac_admin", SectionPyInstaller, false, true, func(r *Record) *bool { return &r.UACAdmin }),
	stringField("hidden_imports", SectionPyInstaller, "", false, func(r *Record) *string { return &r.HiddenImports }),
	stringField("exclude_modules", SectionPyInstaller, "", false, func(r *Record) *string { return &r.ExcludeModules }),
	stringField("collect_submodules", SectionPyInstaller, "", false, func(r *Record) *string { return &r.CollectSubmodules }),
	stringField("collect_data", SectionPyInstaller, "", false, func(r *Record) *string { return &r.CollectData }),
	stringField("collect_binaries", SectionPyInstaller, "", false, func(r *Record) *string { return &r.CollectBinaries }),
	stringField("collect_all", SectionPyInstaller, "", false, func(r *Record) *string { return &r.CollectAll }),
	stringField("add_data", SectionPyInstaller, "", false, func(r *Record) *string { return &r.AddData }),
	stringField("add_binary", SectionPyInstaller, "", false, func(r *Record) *string { return &r.AddBinary }),
	stringField("splash_image", SectionPyInstaller, "", false, func(r *Record) *string { return &r.SplashImage }),
	stringField("runtime_tmpdir", SectionPyInstaller, "", false, func(r *Record) *string { return &r.RuntimeTmpdir }),
	stringField("target_architecture", SectionPyInstaller, "", false, func(r *Record) *string { return &r.TargetArchitecture }),
	stringField("win_version_file", SectionPyInstaller, "", false, func(r *Record) *string { return &r.WinVersionFile }),
	stringField("win_manifest", SectionPyInstaller, "", false, func(r *Record) *string { return &r.WinManifest }),
	stringField("osx_bundle_identifier", SectionPyInstaller, "", false, func(r *Record) *string { return &r.OSXBundleIdentifier }),
	stringField("osx_entitlements_file", SectionPyInstaller, "", false, func(r *Record) *string { return &r.OSXEntitlementsFile }),
	stringField("codesign_identity", SectionPyInstaller, "", false, func(r *Record) *string { return &r.CodesignIdentity }),

	stringField("installer_platform", SectionInstaller, string(Windows), false, func(r *Record) *string { return &r.InstallerPlatform }),
	stringField("installer_appid", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerAppID }),
	stringField("installer_app_name", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerAppName }),
	stringField("installer_version", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerVersion }),
	stringField("installer_publisher", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerPublisher }),
	stringField("installer_url", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerURL }),
	stringField("installer_exe_name", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerExeName }),
	stringField("installer_source_dir", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerSourceDir }),
	stringField("installer_output_dir", SectionInstaller, "dist/installer", false, func(r *Record) *string { return &r.InstallerOutputDir }),
	stringField("installer_icon", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerIcon }),
	stringField("installer_install_dir", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerInstallDir }),
	boolField("installer_desktop_icon", SectionInstaller, true, false, func(r *Record) *bool { return &r.InstallerDesktopIcon }),
	boolField("installer_start_menu", SectionInstaller, true, false, func(r *Record) *bool { return &r.InstallerStartMenu }),
	boolField("installer_add_path", SectionInstaller, false, false, func(r *Record) *bool { return &r.InstallerAddPath }),
	stringField("installer_path_scope", SectionInstaller, string(PathScopeUser), false, func(r *Record) *string { return &r.InstallerPathScope }),
	boolField("installer_run_after", SectionInstaller, true, false, func(r *Record) *bool { return &r.InstallerRunAfter }),
	boolField("installer_uninstall_old", SectionInstaller, true, false, func(r *Record) *bool { return &r.InstallerUninstallOld }),
	stringField("installer_privileges", SectionInstaller, string(PrivilegesLowest), false, func(r *Record) *string { return &r.InstallerPrivileges }),
	stringField("installer_compression", SectionInstaller, "lzma2/ultra64", false, func(r *Record) *string { return &r.InstallerCompression }),
	stringField("installer_file_assoc", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerFileAssoc }),
	stringField("installer_extra_shortcuts", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerExtraShortcuts }),
	stringField("installer_license", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerLicense }),
	stringField("installer_readme", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerReadme }),
	stringField("installer_custom_suffix", SectionInstaller, "", false, func(r *Record) *string { return &r.InstallerCustomSuffix }),

	listField("plugins", func(r *Record) *[]string { return &r.Plugins }),
	listField("exclude_packages", func(r *Record) *[]string { return &r.ExcludePackages }),
}

var schemaIndex = func() map[string]Field {
	idx := make(map[string]Field, len(schema))
	for _, f := range schema {
		idx[f.Key] = f
	}
	return idx
}()

// Fields returns every schema key in encode order.
func Fields() []Field {
	return append([]Field(nil), schema...)
}

// Lookup returns the schema entry for key.
func Lookup(key string) (Field, bool) {
	f, ok := schemaIndex[key]
	return f, ok
}

// IsListKey reports whether key is a block-list key.
func IsListKey(key string) bool {
	f, ok := schemaIndex[key]
	return ok && f.Kind == KindList
}

// Defaults returns a fresh record holding every schema default, with the
// compiler derived for the current host.
func Defaults() *Record {
	return DefaultsFor(runtime.GOOS)
}

// DefaultsFor returns the defaults as they would be on a host running goos.
func DefaultsFor(goos string) *Record {
	r := &Record{}
	for _, f := range schema {
		f.reset(r)
	}
	r.DeriveCompiler(goos)
	return r
}

func (f Field) reset(r *Record) {
	switch p := f.Ptr(r).(type) {
	case *bool:
		*p = f.Default.(bool)
	case *int:
		*p = f.Default.(int)
	case *string:
		*p = f.Default.(string)
	case *[]string:
		*p = nil
	}
}

// IsDefault reports whether the record holds f's default value.
func (f Field) IsDefault(r *Record) bool {
	switch p := f.Ptr(r).(type) {
	case *bool:
		return *p == f.Default.(bool)
	case *int:
		return *p == f.Default.(int)
	case *string:
		return *p == f.Default.(string)
	case *[]string:
		return len(*p) == 0
	}
	return false
}

// Format renders f's value the way it appears after "key: " in the file.
// Lists render inline, comma-joined.
func (f Field) Format(r *Record) string {
	switch p := f.Ptr(r).(type) {
	case *bool:
		return strconv.FormatBool(*p)
	case *int:
		return strconv.Itoa(*p)
	case *string:
		return *p
	case *[]string:
		return strings.Join(*p, ", ")
	}
	return ""
}

// Get returns the formatted value of key.
func (r *Record) Get(key string) (string, error) {
	f, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown key %q", key)
	}
	return f.Format(r), nil
}

// Set assigns value to key, converting it to the key's type. Unlike the
// lenient file decoder, Set reports unknown keys and unparsable values.
// An empty value on a string key resets it to the default, which is what
// the file would read back anyway.
func (r *Record) Set(key, value string) error {
	f, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	value = strings.TrimSpace(value)

	switch p := f.Ptr(r).(type) {
	case *bool:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = b
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", key, value)
		}
		*p = n
	case *string:
		if value == "" {
			value = f.Default.(string)
		}
		*p = value
	case *[]string:
		*p = SplitInline(value)
	}
	return nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", value)
}
