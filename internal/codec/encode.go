package codec

import (
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
)

const header = "# pybuilder build configuration\n"

var sectionTitles = map[config.Section]string{
	config.SectionProject:     "Project",
	config.SectionBuild:       "Build",
	config.SectionPackaging:   "Packaging",
	config.SectionNuitka:      "Nuitka",
	config.SectionPyInstaller: "PyInstaller",
	config.SectionInstaller:   "Installer",
}

// Encode renders r in the fixed section order. Keys holding their default
// are left out unless they are always shown; empty strings are never
// written since they decode back to the default anyway.
func Encode(r *config.Record) string {
	bySection := make(map[config.Section][]config.Field)
	for _, f := range config.Fields() {
		bySection[f.Section] = append(bySection[f.Section], f)
	}

	active, inactive := config.SectionPyInstaller, config.SectionNuitka
	if r.Tool() == config.Nuitka {
		active, inactive = config.SectionNuitka, config.SectionPyInstaller
	}

	var b strings.Builder
	b.WriteString(header)

	for _, sec := range []config.Section{config.SectionProject, config.SectionBuild, config.SectionPackaging} {
		writeSection(&b, sectionTitles[sec], bySection[sec], r, true)
	}
	writeSection(&b, sectionTitles[active], bySection[active], r, true)
	writeSection(&b, sectionTitles[inactive]+" (inactive)", bySection[inactive], r, false)
	writeSection(&b, sectionTitles[config.SectionInstaller], bySection[config.SectionInstaller], r, false)

	for _, f := range bySection[config.SectionLists] {
		items := *f.Ptr(r).(*[]string)
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(f.Key)
		b.WriteString(":\n")
		for _, item := range items {
			b.WriteString("  - ")
			b.WriteString(item)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// writeSection writes the fields that need to appear. The title is only
// written when at least one field does.
func writeSection(b *strings.Builder, title string, fields []config.Field, r *config.Record, showAlways bool) {
	var lines []string
	for _, f := range fields {
		if !include(f, r, showAlways) {
			continue
		}
		lines = append(lines, f.Key+": "+f.Format(r))
	}
	if len(lines) == 0 {
		return
	}

	b.WriteString("\n# ")
	b.WriteString(title)
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func include(f config.Field, r *config.Record, showAlways bool) bool {
	if s, ok := f.Ptr(r).(*string); ok && strings.TrimSpace(*s) == "" {
		return false
	}
	if showAlways && f.AlwaysEmit {
		return true
	}
	return !f.IsDefault(r)
}
