// Package validate checks a build configuration against the project
// directory before anything is generated or saved.
package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/gersonkurz/pybuilder/internal/config"
)

// SourceExt is the extension an entry file must carry.
const SourceExt = ".py"

// ErrUnsupportedPlatform is wrapped by installer validation for platforms
// that have no installer backend.
var ErrUnsupportedPlatform = errors.New("installer platform not supported yet")

// Error is a validation failure for a single configuration key.
type Error struct {
	Field  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate runs the project checks in order and returns the first failure
// as an *Error, or nil.
func Validate(fs afero.Fs, r *config.Record, root string) error {
	if strings.TrimSpace(r.ProjectName) == "" {
		return fail("project_name", "project name is required")
	}
	if strings.TrimSpace(r.Version) == "" {
		return fail("version", "version is required")
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return fail("output_dir", "output directory is required")
	}

	if err := checkEntryFile(fs, r.EntryFile, root); err != nil {
		return err
	}

	if icon := strings.TrimSpace(r.IconFile); icon != "" {
		path, err := within(root, icon)
		if err != nil {
			return fail("icon_file", "%s", err)
		}
		if ok, _ := afero.Exists(fs, path); !ok {
			return fail("icon_file", "icon file %q not found", icon)
		}
	}

	if !r.Tool().Valid() {
		return fail("build_tool", "unknown build tool %q (expected %s or %s)", r.BuildTool, config.Nuitka, config.PyInstaller)
	}

	return checkEnums(r)
}

func checkEntryFile(fs afero.Fs, entry, root string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return fail("entry_file", "entry file is required")
	}

	path, err := within(root, entry)
	if err != nil {
		return fail("entry_file", "%s", err)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return fail("entry_file", "entry file %q not found", entry)
	}
	if !info.Mode().IsRegular() {
		return fail("entry_file", "entry file %q is not a regular file", entry)
	}
	if filepath.Ext(entry) != SourceExt {
		return fail("entry_file", "entry file %q must have extension %s", entry, SourceExt)
	}
	return nil
}

// within resolves rel against root and rejects results outside root.
func within(root, rel string) (string, error) {
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	r, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is outside the project directory", rel)
	}
	return path, nil
}

func checkEnums(r *config.Record) error {
	if r.Mode != "" && !config.Mode(r.Mode).Valid() {
		return fail("mode", "unknown mode %q", r.Mode)
	}
	if !config.LTO(r.LTO).Valid() {
		return fail("lto", "unknown value %q (expected no, yes or auto)", r.LTO)
	}
	if !config.Platform(r.InstallerPlatform).Valid() {
		return fail("installer_platform", "unknown platform %q", r.InstallerPlatform)
	}
	if !config.Privileges(r.InstallerPrivileges).Valid() {
		return fail("installer_privileges", "unknown privilege level %q", r.InstallerPrivileges)
	}
	if !config.PathScope(r.InstallerPathScope).Valid() {
		return fail("installer_path_scope", "unknown path scope %q", r.InstallerPathScope)
	}
	if !config.ValidCompression(r.InstallerCompression) {
		return fail("installer_compression", "unknown compression %q", r.InstallerCompression)
	}
	return nil
}

// ValidateInstaller checks the effective installer settings.
func ValidateInstaller(r *config.Record) error {
	s := r.Installer()

	if s.Platform != config.Windows {
		if !s.Platform.Valid() {
			return fail("installer_platform", "unknown platform %q", r.InstallerPlatform)
		}
		return &Error{
			Field:  "installer_platform",
			Reason: fmt.Sprintf("%s installers are not supported yet", s.Platform),
			Err:    ErrUnsupportedPlatform,
		}
	}
	if s.AppName == "" {
		return fail("installer_app_name", "application name is required")
	}
	if strings.ContainsAny(s.AppName, `/\`) || s.AppName == "." || s.AppName == ".." {
		return fail("installer_app_name", "application name %q must not contain path separators", s.AppName)
	}
	if s.Version == "" {
		return fail("installer_version", "version is required")
	}
	if s.ExeName == "" {
		return fail("installer_exe_name", "executable name is required")
	}
	if s.SourceDir == "" {
		return fail("installer_source_dir", "source directory is required")
	}
	if s.AppID != "" {
		if _, err := uuid.Parse(s.AppID); err != nil {
			return fail("installer_appid", "%q is not a valid GUID", s.AppID)
		}
	}
	return nil
}
