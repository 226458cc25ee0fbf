// Package config defines the build configuration record and its schema.
// The record mirrors the keys of build_config.yaml one field per key.
package config

// Record is the in-memory build configuration for one project directory.
type Record struct {
	// Project
	ProjectName string
	Version     string
	CompanyName string
	EntryFile   string
	IconFile    string

	// Build
	BuildTool string // nuitka, pyinstaller
	OutputDir string
	QuietMode bool

	// Packaging
	Onefile     bool
	ShowConsole bool

	// Nuitka
	Mode                  string // empty = derive from Standalone/Onefile
	Standalone            bool
	RemoveOutput          bool
	ShowProgress          bool
	LTO                   string // no, yes, auto
	Jobs                  int
	PythonFlag            string
	Compiler              string
	NoPyiFile             bool
	FollowImports         bool
	AssumeYesForDownloads bool
	IncludePackages       string
	IncludeModules        string
	NofollowImports       string
	IncludeDataFiles      string
	IncludeDataDirs       string

	// PyInstaller
	Clean               bool
	Noconfirm           bool
	Debug               bool
	ShowProgressbar     bool
	ContentsDirectory   string
	UACAdmin            bool
	HiddenImports       string
	ExcludeModules      string
	CollectSubmodules   string
	CollectData         string
	CollectBinaries     string
	CollectAll          string
	AddData             string
	AddBinary           string
	SplashImage         string
	RuntimeTmpdir       string
	TargetArchitecture  string
	WinVersionFile      string
	WinManifest         string
	OSXBundleIdentifier string
	OSXEntitlementsFile string
	CodesignIdentity    string

	// Installer
	InstallerPlatform       string // windows, linux, macos
	InstallerAppName        string
	InstallerVersion        string
	InstallerPublisher      string
	InstallerURL            string
	InstallerExeName        string
	InstallerSourceDir      string
	InstallerOutputDir      string
	InstallerIcon           string
	InstallerInstallDir     string
	InstallerDesktopIcon    bool
	InstallerStartMenu      bool
	InstallerAddPath        bool
	InstallerPathScope      string // user, system
	InstallerRunAfter       bool
	InstallerUninstallOld   bool
	InstallerPrivileges     string // lowest, admin, dialog
	InstallerCompression    string
	InstallerFileAssoc      string
	InstallerExtraShortcuts string
	InstallerLicense        string
	InstallerReadme         string
	InstallerCustomSuffix   string
	InstallerAppID          string

	// Block lists
	Plugins         []string
	ExcludePackages []string
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	if r.Plugins != nil {
		c.Plugins = append([]string(nil), r.Plugins...)
	}
	if r.ExcludePackages != nil {
		c.ExcludePackages = append([]string(nil), r.ExcludePackages...)
	}
	return &c
}

// Tool returns the configured packaging backend.
func (r *Record) Tool() BuildTool {
	return BuildTool(r.BuildTool)
}

// EffectiveMode returns the Nuitka mode, deriving it from the legacy
// standalone/onefile switches when no explicit mode is stored.
func (r *Record) EffectiveMode() Mode {
	if r.Mode != "" {
		return Mode(r.Mode)
	}
	return DeriveMode(r.Standalone, r.Onefile)
}

// DeriveMode maps the legacy switches onto a Nuitka mode.
func DeriveMode(standalone, onefile bool) Mode {
	switch {
	case standalone && onefile:
		return ModeOnefile
	case standalone:
		return ModeStandalone
	default:
		return ModeAccelerated
	}
}

// DeriveCompiler fills Compiler with the platform default for goos when it
// is empty. An existing choice is never replaced.
func (r *Record) DeriveCompiler(goos string) {
	if r.Compiler == "" {
		r.Compiler = string(DefaultCompiler(goos))
	}
}
