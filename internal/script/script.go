// Package script compiles a build configuration into a standalone Python
// build script for Nuitka or PyInstaller.
//
// Flags that only make sense on some operating systems are not decided
// here. They are emitted as conditionals that the generated script
// evaluates on the machine it runs on.
package script

import (
	"fmt"
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
	"github.com/gersonkurz/pybuilder/internal/logger"
	"github.com/gersonkurz/pybuilder/internal/template"
)

// Result is a compiled build script.
type Result struct {
	Name       string   // file name inside the project directory
	Text       string   // full script
	Args       []string // command arguments as Python expressions, in order
	Advisories []Advisory
}

type options struct {
	renderer *template.Renderer
	log      logger.Logger
}

// Option customizes Compile.
type Option func(*options)

// WithRenderer sets the template renderer, e.g. one with an overlay folder.
func WithRenderer(r *template.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithLogger sets the logger that receives advisories.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// FileName returns the script name for a backend.
func FileName(tool config.BuildTool) string {
	return "build_" + string(tool) + ".py"
}

// Compile generates the build script for the record's backend. The record
// is expected to have passed validation; an unknown backend is still an
// error.
func Compile(r *config.Record, opts ...Option) (*Result, error) {
	o := options{log: logger.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = template.NewRenderer("")
	}

	var (
		args     *ArgList
		tmpl     string
		toolName string
		res      = &Result{Name: FileName(r.Tool())}
	)
	switch r.Tool() {
	case config.Nuitka:
		args, tmpl, toolName = nuitkaArgs(r), template.Nuitka, "Nuitka"
	case config.PyInstaller:
		args, tmpl, toolName = pyinstallerArgs(r), template.PyInstaller, "PyInstaller"
		res.Advisories = CollectOverlaps(r)
	default:
		return nil, fmt.Errorf("unsupported build tool %q", r.BuildTool)
	}

	for _, a := range res.Advisories {
		o.log.Warn("redundant collect entries", "field", a.Field, "packages", strings.Join(a.Packages, ", "))
	}

	ctx := map[string]any{
		"title":        docString(r.ProjectName),
		"tool":         toolName,
		"version":      docString(r.Version),
		"constants":    constants(r),
		"command":      args.Render(),
		"cleanup_spec": r.Tool() == config.PyInstaller,
	}
	text, err := o.renderer.Render(tmpl, ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", res.Name, err)
	}

	res.Text = text
	res.Args = args.Flatten()
	return res, nil
}

// constants renders the module-level assignments the command refers to.
func constants(r *config.Record) string {
	type constant struct{ name, value string }
	list := []constant{
		{"PROJECT_NAME", r.ProjectName},
		{"VERSION", r.Version},
		{"ENTRY_FILE", r.EntryFile},
		{"OUTPUT_DIR", r.OutputDir},
	}
	if r.CompanyName != "" {
		list = append(list, constant{"COMPANY_NAME", r.CompanyName})
	}
	if r.IconFile != "" {
		list = append(list, constant{"ICON_FILE", r.IconFile})
	}
	if r.Tool() == config.PyInstaller && r.SplashImage != "" {
		list = append(list, constant{"SPLASH_IMAGE", r.SplashImage})
	}

	lines := make([]string, len(list))
	for i, c := range list {
		lines[i] = c.name + " = " + pyString(c.value)
	}
	return strings.Join(lines, "\n")
}

// docString makes s safe inside a triple-quoted docstring.
func docString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"""`, `\"\"\"`)
}

// mappingArgs turns "src;dst" items into flag expressions. join builds the
// value from the two path expressions. Items without a semicolon are passed
// through verbatim when keepPlain is set and skipped otherwise.
func mappingArgs(flag string, items []string, keepPlain bool, join func(src, dst Arg) Arg) []Arg {
	var out []Arg
	for _, item := range items {
		src, dst, ok := config.SplitMapping(item)
		if !ok {
			if keepPlain {
				out = append(out, Lit(flag+"="+item))
			}
			continue
		}
		out = append(out, FlagExpr(flag, join(pathExpr(src), pathExpr(dst))))
	}
	return out
}
