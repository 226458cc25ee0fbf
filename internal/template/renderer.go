// Package template renders the generated build and installer scripts
// using Handlebars.
package template

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/spf13/afero"
)

// Names of the built-in templates.
const (
	Nuitka      = "nuitka.py.hbs"
	PyInstaller = "pyinstaller.py.hbs"
	Inno        = "inno.iss.hbs"
)

const partialsDir = "partials"

//go:embed templates
var builtin embed.FS

// Renderer fills templates with generated content. Templates found in the
// overlay folder take precedence over the built-in ones.
type Renderer struct {
	Overlay string // optional overlay folder
	fs      afero.Fs
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFs sets the filesystem the overlay folder is read from.
func WithFs(fs afero.Fs) Option {
	return func(r *Renderer) { r.fs = fs }
}

// NewRenderer creates a renderer. overlay may be empty.
func NewRenderer(overlay string, opts ...Option) *Renderer {
	r := &Renderer{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(r)
	}

	if overlay != "" {
		if abs, err := filepath.Abs(overlay); err == nil {
			overlay = abs
		}
	}
	r.Overlay = overlay
	return r
}

// Source describes where a template is loaded from.
type Source struct {
	Name       string
	Overridden bool
}

// Sources lists every built-in template and partial and whether the overlay
// folder replaces it.
func (r *Renderer) Sources() ([]Source, error) {
	var sources []Source
	err := fs.WalkDir(builtin, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.TrimPrefix(p, "templates/")
		_, overridden := r.overlay(name)
		sources = append(sources, Source{Name: name, Overridden: overridden})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

// overlay returns the overlay file for name, if there is one.
func (r *Renderer) overlay(name string) (string, bool) {
	if r.Overlay == "" {
		return "", false
	}
	p := filepath.Join(r.Overlay, filepath.FromSlash(name))
	ok, err := afero.Exists(r.fs, p)
	if err != nil || !ok {
		return "", false
	}
	return p, true
}

// load reads name from the overlay folder first, then the built-in set.
func (r *Renderer) load(name string) (string, error) {
	if p, ok := r.overlay(name); ok {
		data, err := afero.ReadFile(r.fs, p)
		if err != nil {
			return "", fmt.Errorf("reading template %s: %w", p, err)
		}
		return string(data), nil
	}

	data, err := builtin.ReadFile(path.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("unknown template %q: %w", name, err)
	}
	return string(data), nil
}

func (r *Renderer) partials() (map[string]string, error) {
	entries, err := builtin.ReadDir(path.Join("templates", partialsDir))
	if err != nil {
		return nil, fmt.Errorf("listing partials: %w", err)
	}

	partials := make(map[string]string, len(entries))
	for _, e := range entries {
		src, err := r.load(path.Join(partialsDir, e.Name()))
		if err != nil {
			return nil, err
		}
		partials[strings.TrimSuffix(e.Name(), ".hbs")] = src
	}
	return partials, nil
}

// Render renders the named template with ctx. Generated fragments in ctx
// are expected to be referenced triple-stashed so they are not escaped.
func (r *Renderer) Render(name string, ctx map[string]any) (string, error) {
	src, err := r.load(name)
	if err != nil {
		return "", err
	}
	return r.RenderString(src, ctx)
}

// RenderString renders a template given as source text. The shared
// partials are available to it.
func (r *Renderer) RenderString(src string, ctx map[string]any) (string, error) {
	tpl, err := raymond.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	partials, err := r.partials()
	if err != nil {
		return "", err
	}
	tpl.RegisterPartials(partials)

	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return out, nil
}
