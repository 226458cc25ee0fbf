package installer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
	"github.com/gersonkurz/pybuilder/internal/template"
	"github.com/gersonkurz/pybuilder/internal/validate"
)

// ErrNoIdentity is returned by Compile when the record has no AppId. Run
// EnsureIdentity first.
var ErrNoIdentity = errors.New("installer AppId missing")

const (
	userEnvRoot     = "HKCU"
	userEnvSubkey   = `Environment`
	systemEnvRoot   = "HKLM"
	systemEnvSubkey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
)

// Result is a compiled installer script.
type Result struct {
	Name  string // <app>_setup.iss
	Text  string
	AppID string
}

type options struct {
	renderer *template.Renderer
}

// Option customizes Compile.
type Option func(*options)

// WithRenderer sets the template renderer.
func WithRenderer(r *template.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// ScriptName returns the installer script file name for an application.
func ScriptName(appName string) string {
	return appName + "_setup.iss"
}

// Compile renders the Inno Setup script for r.
func Compile(r *config.Record, opts ...Option) (*Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = template.NewRenderer("")
	}

	s := r.Installer()
	if s.Platform != config.Windows {
		return nil, fmt.Errorf("%w: %q", validate.ErrUnsupportedPlatform, s.Platform)
	}
	if s.AppID == "" {
		return nil, ErrNoIdentity
	}

	text, err := o.renderer.Render(template.Inno, innoContext(s))
	if err != nil {
		return nil, fmt.Errorf("rendering installer script: %w", err)
	}
	return &Result{Name: ScriptName(s.AppName), Text: text, AppID: s.AppID}, nil
}

func innoContext(s config.InstallerSettings) map[string]any {
	privRequired, privOverride := privileges(s.Privileges)

	pathRoot, pathSubkey, scopeLabel := userEnvRoot, userEnvSubkey, "user"
	if s.PathScope == config.PathScopeSystem {
		pathRoot, pathSubkey, scopeLabel = systemEnvRoot, systemEnvSubkey, "system"
	}

	assoc := fileAssociations(s.FileAssoc)

	return map[string]any{
		"app_name":  s.AppName,
		"version":   s.Version,
		"publisher": s.Publisher,
		"url":       s.URL,
		"exe_name":  s.ExeName,
		// "{{" opens a Handlebars tag, so this line is built here.
		"app_id_line":         "AppId={{" + s.AppID + "}",
		"install_dir":         s.InstallDir,
		"start_menu":          s.StartMenu,
		"output_dir":          s.OutputDir,
		"custom_suffix":       s.CustomSuffix,
		"icon":                s.Icon,
		"compression":         s.Compression,
		"lzma":                strings.Contains(s.Compression, "lzma"),
		"privileges_required": privRequired,
		"privileges_override": privOverride,
		"license":             s.License,
		"readme":              s.Readme,
		"desktop_icon":        s.DesktopIcon,
		"add_path":            s.AddPath,
		"has_tasks":           s.DesktopIcon || s.AddPath,
		"path_scope_label":    scopeLabel,
		"path_root":           pathRoot,
		"path_subkey":         pathSubkey,
		"source_dir":          s.SourceDir,
		"icons":               icons(s),
		"run_after":           s.RunAfter,
		"has_registry":        s.AddPath || len(assoc) > 0,
		"file_assoc":          assoc,
		"uninstall_old":       s.UninstallOld,
		"has_code":            s.UninstallOld || s.AddPath,
	}
}

// privileges maps the three user choices onto Inno's two privilege levels
// plus the override setting.
func privileges(p config.Privileges) (required, override string) {
	switch p {
	case config.PrivilegesAdmin:
		return "admin", "commandline dialog"
	case config.PrivilegesDialog:
		return "lowest", "commandline dialog"
	default:
		return "lowest", ""
	}
}

// icons builds the [Icons] lines. Extra shortcuts are "name;exe" items and
// follow the same start menu and desktop switches as the main shortcut.
func icons(s config.InstallerSettings) []string {
	var lines []string
	if s.StartMenu {
		lines = append(lines,
			`Name: "{group}\{#MyAppName}"; Filename: "{app}\{#MyAppExeName}"`,
			`Name: "{group}\{cm:UninstallProgram,{#MyAppName}}"; Filename: "{uninstallexe}"`,
		)
	}
	if s.DesktopIcon {
		lines = append(lines, `Name: "{autodesktop}\{#MyAppName}"; Filename: "{app}\{#MyAppExeName}"; Tasks: desktopicon`)
	}

	for _, item := range s.ExtraShortcuts {
		name, exe, ok := config.SplitMapping(item)
		name, exe = strings.TrimSpace(name), strings.TrimSpace(exe)
		if !ok || name == "" || exe == "" {
			continue
		}
		if s.StartMenu {
			lines = append(lines, fmt.Sprintf(`Name: "{group}\%s"; Filename: "{app}\%s"`, name, exe))
		}
		if s.DesktopIcon {
			lines = append(lines, fmt.Sprintf(`Name: "{autodesktop}\%s"; Filename: "{app}\%s"; Tasks: desktopicon`, name, exe))
		}
	}
	return lines
}

// fileAssociations normalizes extensions: leading dots are dropped and the
// result is lowercased.
func fileAssociations(exts []string) []map[string]string {
	var out []map[string]string
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimLeft(ext, "."))
		if ext == "" {
			continue
		}
		out = append(out, map[string]string{"ext": ext, "upper": strings.ToUpper(ext)})
	}
	return out
}
