package template

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func pythonContext() map[string]any {
	return map[string]any{
		"title":     "Demo & Co",
		"tool":      "Nuitka",
		"version":   "1.2.3",
		"constants": "PROJECT_NAME = 'Demo'",
		"command":   "    cmd = [\n        sys.executable,\n    ]",
	}
}

func TestRenderBuiltin(t *testing.T) {
	r := NewRenderer("")

	out, err := r.Render(Nuitka, pythonContext())
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	for _, want := range []string{
		"Demo & Co - Nuitka build script",
		"is_windows = SYSTEM == 'Windows'",
		"PROJECT_NAME = 'Demo'",
		"    cmd = [\n        sys.executable,\n    ]",
		"sys.exit(build())",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered script lacks %q", want)
		}
	}
	if strings.Contains(out, "spec_file") {
		t.Error("nuitka script must not clean up .spec files")
	}
}

func TestRenderPyInstallerCleansSpec(t *testing.T) {
	ctx := pythonContext()
	ctx["cleanup_spec"] = true

	out, err := NewRenderer("").Render(PyInstaller, ctx)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !strings.Contains(out, "spec_file = PROJECT_NAME + '.spec'") {
		t.Error("pyinstaller script lacks .spec cleanup")
	}
	if !strings.Contains(out, "data_separator = ';' if is_windows else ':'") {
		t.Error("pyinstaller script lacks data_separator")
	}
}

func TestOverlayTakesPrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/overlay/nuitka.py.hbs", []byte("custom {{{version}}}\n{{> python_run}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/overlay/partials/python_run.hbs", []byte("run override"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer("/overlay", WithFs(fs))

	out, err := r.Render(Nuitka, pythonContext())
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if out != "custom 1.2.3\nrun override" {
		t.Errorf("Render() = %q", out)
	}

	// Templates missing from the overlay still come from the built-in set.
	out, err = r.Render(PyInstaller, pythonContext())
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !strings.Contains(out, "run override") || !strings.Contains(out, "def build():") {
		t.Errorf("expected built-in template with overlay partial, got:\n%s", out)
	}
}

func TestSources(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/overlay/inno.iss.hbs", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := NewRenderer("/overlay", WithFs(fs)).Sources()
	if err != nil {
		t.Fatalf("Sources() failed: %v", err)
	}

	got := make(map[string]bool)
	for _, s := range sources {
		got[s.Name] = s.Overridden
	}
	tests := []struct {
		name       string
		overridden bool
	}{
		{Inno, true},
		{Nuitka, false},
		{PyInstaller, false},
		{"partials/python_header.hbs", false},
		{"partials/python_run.hbs", false},
	}
	for _, tt := range tests {
		overridden, ok := got[tt.name]
		if !ok {
			t.Errorf("Sources() lacks %q", tt.name)
			continue
		}
		if overridden != tt.overridden {
			t.Errorf("Sources()[%q].Overridden = %v, want %v", tt.name, overridden, tt.overridden)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := NewRenderer("").Render("missing.hbs", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderStringEscaping(t *testing.T) {
	r := NewRenderer("")
	out, err := r.RenderString("{{v}}|{{{v}}}", map[string]any{"v": "a<b"})
	if err != nil {
		t.Fatalf("RenderString() failed: %v", err)
	}
	if out != "a&lt;b|a<b" {
		t.Errorf("RenderString() = %q, want %q", out, "a&lt;b|a<b")
	}
}
