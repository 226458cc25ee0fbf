package config

import (
	"reflect"
	"testing"
)

func TestDefaultsFor(t *testing.T) {
	r := DefaultsFor("linux")

	if r.ProjectName != "MyApp" {
		t.Errorf("ProjectName = %q, want %q", r.ProjectName, "MyApp")
	}
	if r.Tool() != PyInstaller {
		t.Errorf("BuildTool = %q, want %q", r.BuildTool, PyInstaller)
	}
	if !r.Onefile || !r.Standalone || r.ShowConsole {
		t.Errorf("packaging defaults wrong: onefile=%v standalone=%v show_console=%v", r.Onefile, r.Standalone, r.ShowConsole)
	}
	if r.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", r.Jobs)
	}
	if r.LTO != "no" {
		t.Errorf("LTO = %q, want no", r.LTO)
	}
	if r.ContentsDirectory != "." {
		t.Errorf("ContentsDirectory = %q, want .", r.ContentsDirectory)
	}
	if r.InstallerOutputDir != "dist/installer" {
		t.Errorf("InstallerOutputDir = %q", r.InstallerOutputDir)
	}
	if r.Plugins != nil || r.ExcludePackages != nil {
		t.Errorf("lists should default to empty, got %v %v", r.Plugins, r.ExcludePackages)
	}
}

func TestDefaultCompiler(t *testing.T) {
	tests := []struct {
		goos string
		want Compiler
	}{
		{"windows", MSVC},
		{"linux", GCC},
		{"darwin", Clang},
		{"freebsd", Clang},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := DefaultsFor(tt.goos).Compiler; got != string(tt.want) {
				t.Errorf("DefaultsFor(%q).Compiler = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestDeriveCompilerKeepsChoice(t *testing.T) {
	r := &Record{Compiler: "mingw64"}
	r.DeriveCompiler("linux")
	if r.Compiler != "mingw64" {
		t.Errorf("Compiler = %q, want mingw64 to be kept", r.Compiler)
	}

	r.Compiler = ""
	r.DeriveCompiler("windows")
	if r.Compiler != "msvc" {
		t.Errorf("Compiler = %q, want msvc", r.Compiler)
	}
}

func TestSchemaDefaultsMatchKinds(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Fields() {
		if seen[f.Key] {
			t.Errorf("duplicate key %q", f.Key)
		}
		seen[f.Key] = true

		var ok bool
		switch f.Kind {
		case KindBool:
			_, ok = f.Default.(bool)
		case KindInt:
			_, ok = f.Default.(int)
		case KindString:
			_, ok = f.Default.(string)
		case KindList:
			_, ok = f.Default.([]string)
		}
		if !ok {
			t.Errorf("%s: default %#v does not match kind %s", f.Key, f.Default, f.Kind)
		}
	}
}

func TestSplitItems(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a, b，c   d", []string{"a", "b", "c", "d"}},
		{"a,b,c,d", []string{"a", "b", "c", "d"}},
		{"a\tb\nc，，d", []string{"a", "b", "c", "d"}},
		{" , ，", nil},
		{"", nil},
		{"src;dst other;x", []string{"src;dst", "other;x"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SplitItems(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitItems(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeriveMode(t *testing.T) {
	tests := []struct {
		standalone, onefile bool
		want                Mode
	}{
		{true, true, ModeOnefile},
		{true, false, ModeStandalone},
		{false, false, ModeAccelerated},
		{false, true, ModeAccelerated},
	}

	for _, tt := range tests {
		if got := DeriveMode(tt.standalone, tt.onefile); got != tt.want {
			t.Errorf("DeriveMode(%v, %v) = %q, want %q", tt.standalone, tt.onefile, got, tt.want)
		}
	}
}

func TestEffectiveModeExplicitWins(t *testing.T) {
	r := DefaultsFor("linux")
	r.Standalone, r.Onefile = true, true
	r.Mode = "module"
	if got := r.EffectiveMode(); got != ModeModule {
		t.Errorf("EffectiveMode() = %q, want module", got)
	}
}

func TestCompilerFlag(t *testing.T) {
	tests := []struct {
		compiler Compiler
		platform Platform
		want     string
	}{
		{MSVC, Windows, ""},
		{MinGW64, Windows, "--mingw64"},
		{ClangCL, Windows, "--clang-cl"},
		{Clang, Windows, "--clang"},
		{GCC, Linux, ""},
		{Clang, Linux, "--clang"},
		{MinGW64, Linux, ""}, // downgraded to gcc
		{MSVC, MacOS, ""},    // downgraded to clang
		{Clang, MacOS, ""},
	}

	for _, tt := range tests {
		if got := CompilerFlag(tt.compiler, tt.platform); got != tt.want {
			t.Errorf("CompilerFlag(%q, %q) = %q, want %q", tt.compiler, tt.platform, got, tt.want)
		}
	}
}

func TestRecordSetGet(t *testing.T) {
	r := DefaultsFor("linux")

	tests := []struct {
		key, value, want string
	}{
		{"onefile", "no", "false"},
		{"jobs", " 8 ", "8"},
		{"plugins", "tk-inter, numpy", "tk-inter, numpy"},
		{"project_name", "Demo", "Demo"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := r.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) failed: %v", tt.key, tt.value, err)
			}
			got, err := r.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRecordSetEmptyResetsDefault(t *testing.T) {
	r := DefaultsFor("linux")
	r.Version = "2.0.0"
	r.OutputDir = "out"
	r.ContentsDirectory = "_internal"
	r.CompanyName = "ACME"

	for _, key := range []string{"version", "output_dir", "contents_directory", "installer_output_dir", "company_name"} {
		if err := r.Set(key, "  "); err != nil {
			t.Fatalf("Set(%q, \"\") failed: %v", key, err)
		}
	}

	want := DefaultsFor("linux")
	if r.Version != want.Version || r.OutputDir != want.OutputDir ||
		r.ContentsDirectory != want.ContentsDirectory || r.InstallerOutputDir != want.InstallerOutputDir ||
		r.CompanyName != "" {
		t.Errorf("empty values did not reset to defaults: version=%q output_dir=%q contents_directory=%q installer_output_dir=%q company_name=%q",
			r.Version, r.OutputDir, r.ContentsDirectory, r.InstallerOutputDir, r.CompanyName)
	}
}

func TestRecordSetErrors(t *testing.T) {
	r := DefaultsFor("linux")

	if err := r.Set("no_such_key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := r.Set("jobs", "many"); err == nil {
		t.Error("expected error for non-integer jobs")
	}
	if err := r.Set("onefile", "maybe"); err == nil {
		t.Error("expected error for non-boolean onefile")
	}
	if r.Jobs != 4 || !r.Onefile {
		t.Error("failed Set must not modify the record")
	}
}

func TestClone(t *testing.T) {
	r := DefaultsFor("linux")
	r.Plugins = []string{"numpy"}

	c := r.Clone()
	c.Plugins[0] = "changed"
	if r.Plugins[0] != "numpy" {
		t.Error("Clone shares the plugins slice")
	}
}

func TestInstallerFallbacks(t *testing.T) {
	r := DefaultsFor("windows")
	r.ProjectName = "Demo"
	r.Version = "2.1.0"
	r.CompanyName = "ACME"
	r.OutputDir = "build"
	r.IconFile = "app.ico"
	r.InstallerAppID = " {abc-123} "

	s := r.Installer()
	if s.AppName != "Demo" || s.Version != "2.1.0" || s.Publisher != "ACME" {
		t.Errorf("fallbacks wrong: %+v", s)
	}
	if s.ExeName != "Demo.exe" {
		t.Errorf("ExeName = %q, want Demo.exe", s.ExeName)
	}
	if s.SourceDir != "build" || s.Icon != "app.ico" {
		t.Errorf("SourceDir/Icon = %q/%q", s.SourceDir, s.Icon)
	}
	if s.InstallDir != DefaultInstallDir {
		t.Errorf("InstallDir = %q", s.InstallDir)
	}
	if s.AppID != "abc-123" {
		t.Errorf("AppID = %q, want abc-123", s.AppID)
	}

	r.InstallerAppName = "Shipping"
	r.InstallerExeName = "ship.exe"
	s = r.Installer()
	if s.AppName != "Shipping" || s.ExeName != "ship.exe" {
		t.Errorf("overrides ignored: %q %q", s.AppName, s.ExeName)
	}
}
