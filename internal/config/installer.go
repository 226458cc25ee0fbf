package config

import "strings"

// DefaultInstallDir is the Inno Setup install location used when the
// record does not override it.
const DefaultInstallDir = `{autopf}\{#MyAppName}`

// InstallerSettings holds the installer values after applying fallbacks to
// the project-level fields.
type InstallerSettings struct {
	Platform       Platform
	AppName        string
	Version        string
	Publisher      string
	URL            string
	ExeName        string
	SourceDir      string
	OutputDir      string
	Icon           string
	InstallDir     string
	DesktopIcon    bool
	StartMenu      bool
	AddPath        bool
	PathScope      PathScope
	RunAfter       bool
	UninstallOld   bool
	Privileges     Privileges
	Compression    string
	FileAssoc      []string
	ExtraShortcuts []string
	License        string
	Readme         string
	CustomSuffix   string
	AppID          string
}

// Installer resolves the effective installer settings.
func (r *Record) Installer() InstallerSettings {
	s := InstallerSettings{
		Platform:       Platform(r.InstallerPlatform),
		AppName:        firstNonEmpty(r.InstallerAppName, r.ProjectName, "MyApp"),
		Version:        firstNonEmpty(r.InstallerVersion, r.Version),
		Publisher:      firstNonEmpty(r.InstallerPublisher, r.CompanyName),
		URL:            strings.TrimSpace(r.InstallerURL),
		SourceDir:      firstNonEmpty(r.InstallerSourceDir, r.OutputDir),
		OutputDir:      firstNonEmpty(r.InstallerOutputDir, "dist/installer"),
		Icon:           firstNonEmpty(r.InstallerIcon, r.IconFile),
		InstallDir:     firstNonEmpty(r.InstallerInstallDir, DefaultInstallDir),
		DesktopIcon:    r.InstallerDesktopIcon,
		StartMenu:      r.InstallerStartMenu,
		AddPath:        r.InstallerAddPath,
		PathScope:      PathScope(firstNonEmpty(r.InstallerPathScope, string(PathScopeUser))),
		RunAfter:       r.InstallerRunAfter,
		UninstallOld:   r.InstallerUninstallOld,
		Privileges:     Privileges(firstNonEmpty(r.InstallerPrivileges, string(PrivilegesLowest))),
		Compression:    firstNonEmpty(r.InstallerCompression, "lzma2/ultra64"),
		FileAssoc:      SplitItems(r.InstallerFileAssoc),
		ExtraShortcuts: SplitItems(r.InstallerExtraShortcuts),
		License:        strings.TrimSpace(r.InstallerLicense),
		Readme:         strings.TrimSpace(r.InstallerReadme),
		CustomSuffix:   strings.TrimSpace(r.InstallerCustomSuffix),
		AppID:          NormalizeAppID(r.InstallerAppID),
	}
	s.ExeName = firstNonEmpty(r.InstallerExeName, s.AppName+".exe")
	return s
}

// NormalizeAppID strips whitespace and the braces Inno Setup puts around
// GUIDs. The stored form never carries braces.
func NormalizeAppID(id string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(id), "{}"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
