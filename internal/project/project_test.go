package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"

	"github.com/gersonkurz/pybuilder/internal/config"
	"github.com/gersonkurz/pybuilder/internal/logger"
	"github.com/gersonkurz/pybuilder/internal/validate"
)

const dir = "/work/demo"

func openMem(t *testing.T, fs afero.Fs, opts ...Option) *Project {
	t.Helper()
	opts = append([]Option{
		WithFs(fs),
		WithHostOS("linux"),
		WithLockPath(filepath.Join(t.TempDir(), LockName)),
		WithLogger(logger.Discard()),
	}, opts...)

	p, err := Open(dir, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func newProjectFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := afero.WriteFile(fs, filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestOpenMissingConfigUsesDefaults(t *testing.T) {
	p := openMem(t, newProjectFs(t, nil))

	if p.Exists() {
		t.Error("Exists() = true for a fresh directory")
	}
	if diff := cmp.Diff(config.DefaultsFor("linux"), p.Record()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenLoadsConfig(t *testing.T) {
	fs := newProjectFs(t, map[string]string{
		"custom.yaml": "project_name: Loaded\nbuild_tool: nuitka\n",
	})
	p := openMem(t, fs, WithConfigName("custom.yaml"))

	if p.Record().ProjectName != "Loaded" || p.Record().Tool() != config.Nuitka {
		t.Errorf("record not loaded from custom.yaml: %+v", p.Record())
	}
	if !p.Exists() {
		t.Error("Exists() = false")
	}
}

func TestOpenRejectsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, dir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(dir, WithFs(fs), WithLockPath(filepath.Join(t.TempDir(), LockName))); err == nil {
		t.Error("expected error when the project path is a file")
	}
}

func TestOpenBusy(t *testing.T) {
	root := t.TempDir()

	first, err := Open(root, WithLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := Open(root, WithLogger(logger.Discard())); !errors.Is(err, ErrBusy) {
		t.Errorf("second Open() = %v, want ErrBusy", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	again, err := Open(root, WithLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("Open() after Close() failed: %v", err)
	}
	_ = again.Close()

	if _, err := os.Stat(filepath.Join(root, LockName)); err != nil {
		t.Errorf("lock file missing: %v", err)
	}
}

func TestCreateAndSave(t *testing.T) {
	fs := newProjectFs(t, nil)
	p := openMem(t, fs)

	// init works before the entry file exists
	if err := p.Create(false); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := p.Create(false); err == nil {
		t.Error("Create(false) should refuse to overwrite")
	}

	p.Record().ProjectName = "Renamed"
	var verr *validate.Error
	if err := p.Save(); !errors.As(err, &verr) || verr.Field != "entry_file" {
		t.Fatalf("Save() = %v, want entry_file validation error", err)
	}

	if err := afero.WriteFile(fs, filepath.Join(dir, "main.py"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := afero.ReadFile(fs, p.ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "project_name: Renamed") {
		t.Errorf("saved config lacks the new name:\n%s", data)
	}
}

func TestGenerateBuildScript(t *testing.T) {
	fs := newProjectFs(t, map[string]string{
		"main.py":           "",
		"build_config.yaml": "build_tool: nuitka\nmode: standalone\n",
	})
	p := openMem(t, fs)

	res, err := p.GenerateBuildScript()
	if err != nil {
		t.Fatalf("GenerateBuildScript() failed: %v", err)
	}

	path := filepath.Join(dir, "build_nuitka.py")
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if string(data) != res.Text {
		t.Error("written script differs from the compiled text")
	}
	info, err := fs.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("script mode = %v, want executable", info.Mode())
	}
}

func TestGenerateBuildScriptValidates(t *testing.T) {
	p := openMem(t, newProjectFs(t, nil))

	if _, err := p.GenerateBuildScript(); err == nil {
		t.Error("expected validation error without an entry file")
	}
}

func TestGenerateInstallerPersistsIdentity(t *testing.T) {
	fs := newProjectFs(t, map[string]string{
		"main.py":           "",
		"build_config.yaml": "project_name: Demo\n",
	})

	p := openMem(t, fs)
	res, created, err := p.GenerateInstaller()
	if err != nil {
		t.Fatalf("GenerateInstaller() failed: %v", err)
	}
	if !created {
		t.Error("first GenerateInstaller() should create an AppId")
	}
	if res.Name != "Demo_setup.iss" {
		t.Errorf("Name = %q", res.Name)
	}
	if ok, _ := afero.Exists(fs, filepath.Join(dir, "Demo_setup.iss")); !ok {
		t.Error("installer script not written")
	}

	saved, err := afero.ReadFile(fs, p.ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(saved), "installer_appid: "+res.AppID) {
		t.Errorf("AppId %s not persisted:\n%s", res.AppID, saved)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	// A fresh session reads the persisted AppId and keeps it.
	p2 := openMem(t, fs)
	res2, created, err := p2.GenerateInstaller()
	if err != nil {
		t.Fatalf("GenerateInstaller() failed: %v", err)
	}
	if created || res2.AppID != res.AppID {
		t.Errorf("AppId changed from %s to %s (created=%v)", res.AppID, res2.AppID, created)
	}
}

func TestGenerateInstallerUnsupportedPlatform(t *testing.T) {
	fs := newProjectFs(t, map[string]string{
		"main.py":           "",
		"build_config.yaml": "installer_platform: macos\n",
	})
	p := openMem(t, fs)

	if _, _, err := p.GenerateInstaller(); !errors.Is(err, validate.ErrUnsupportedPlatform) {
		t.Errorf("GenerateInstaller() = %v, want ErrUnsupportedPlatform", err)
	}
	if strings.Contains(mustRead(t, fs, p.ConfigPath()), "installer_appid") {
		t.Error("AppId must not be generated for an unsupported platform")
	}
}

func mustRead(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestSaveEmptyValuesReloadEqual(t *testing.T) {
	fs := newProjectFs(t, map[string]string{"main.py": ""})

	p := openMem(t, fs)
	for _, key := range []string{"version", "output_dir", "contents_directory"} {
		if err := p.Record().Set(key, ""); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}
	if err := p.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	saved := p.Record().Clone()
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	reloaded := openMem(t, fs)
	if diff := cmp.Diff(saved, reloaded.Record(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("reloaded record differs from saved (-saved +reloaded):\n%s", diff)
	}
}

func TestGenerateInstallerStaysInProject(t *testing.T) {
	fs := newProjectFs(t, map[string]string{
		"main.py":           "",
		"build_config.yaml": "installer_app_name: ../../escaped\n",
	})
	p := openMem(t, fs)

	var verr *validate.Error
	if _, _, err := p.GenerateInstaller(); !errors.As(err, &verr) || verr.Field != "installer_app_name" {
		t.Fatalf("GenerateInstaller() = %v, want installer_app_name error", err)
	}
	if ok, _ := afero.Exists(fs, "/escaped_setup.iss"); ok {
		t.Error("installer script written outside the project directory")
	}
}

func TestArtifactPath(t *testing.T) {
	p := openMem(t, newProjectFs(t, nil))

	tests := []struct {
		name string
		ok   bool
	}{
		{"Demo_setup.iss", true},
		{"build_nuitka.py", true},
		{"../../escaped_setup.iss", false},
		{`..\escaped_setup.iss`, false},
		{"sub/x.iss", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := p.artifactPath(tt.name)
			if (err == nil) != tt.ok {
				t.Fatalf("artifactPath(%q) error = %v, want ok=%v", tt.name, err, tt.ok)
			}
			if tt.ok && filepath.Dir(path) != p.Dir {
				t.Errorf("artifactPath(%q) = %q, not inside %s", tt.name, path, p.Dir)
			}
		})
	}
}
