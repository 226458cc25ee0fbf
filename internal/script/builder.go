package script

import (
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
)

// Arg is one element of the generated command list, written as a Python
// expression.
type Arg string

// EntryFile is the argument every command ends with.
const EntryFile Arg = "ENTRY_FILE"

// Lit quotes s as a Python string literal.
func Lit(s string) Arg {
	return Arg(pyString(s))
}

// Join concatenates expressions with Python's + operator.
func Join(parts ...Arg) Arg {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = string(p)
	}
	return Arg(strings.Join(s, " + "))
}

// FlagExpr builds "--name=" followed by an arbitrary expression.
func FlagExpr(name string, expr Arg) Arg {
	return Join(Lit(name+"="), expr)
}

// Gate is a group of arguments the generated script appends only when it
// runs on one of Platforms.
type Gate struct {
	Platforms []config.Platform
	Comment   string
	Args      []Arg
}

func (g Gate) condition() string {
	guards := make([]string, len(g.Platforms))
	for i, p := range g.Platforms {
		guards[i] = p.Guard()
	}
	return strings.Join(guards, " or ")
}

// ArgList accumulates the ordered command. Unconditional arguments go into
// the list literal, gates become if blocks after it, and the entry file is
// appended last.
type ArgList struct {
	module string
	args   []Arg
	gates  []Gate
}

// NewArgList starts a command that runs "python -m module".
func NewArgList(module string) *ArgList {
	return &ArgList{module: module}
}

// Add appends unconditional arguments.
func (l *ArgList) Add(args ...Arg) {
	l.args = append(l.args, args...)
}

// AddEach appends Lit(name+"="+v) for every value.
func (l *ArgList) AddEach(name string, values []string) {
	for _, v := range values {
		l.Add(Lit(name + "=" + v))
	}
}

// AddGate appends a platform-gated group. Empty groups are dropped.
func (l *ArgList) AddGate(comment string, platforms []config.Platform, args ...Arg) {
	if len(args) == 0 || len(platforms) == 0 {
		return
	}
	l.gates = append(l.gates, Gate{Platforms: platforms, Comment: comment, Args: args})
}

// Gates returns the gated groups in order.
func (l *ArgList) Gates() []Gate {
	return append([]Gate(nil), l.gates...)
}

// Flatten returns every argument in emitted order, gated ones included,
// ending with the entry file.
func (l *ArgList) Flatten() []string {
	out := make([]string, 0, len(l.args)+len(l.gates)+1)
	for _, a := range l.args {
		out = append(out, string(a))
	}
	for _, g := range l.gates {
		for _, a := range g.Args {
			out = append(out, string(a))
		}
	}
	return append(out, string(EntryFile))
}

// Render writes the command as Python statements indented for a function
// body.
func (l *ArgList) Render() string {
	const (
		body = "    "
		item = "        "
	)

	var b strings.Builder
	b.WriteString(body + "cmd = [\n")
	b.WriteString(item + "sys.executable,\n")
	b.WriteString(item + "'-m', " + pyString(l.module) + ",\n")
	for _, a := range l.args {
		b.WriteString(item + string(a) + ",\n")
	}
	b.WriteString(body + "]\n")

	for _, g := range l.gates {
		b.WriteString("\n")
		if g.Comment != "" {
			b.WriteString(body + "# " + g.Comment + "\n")
		}
		b.WriteString(body + "if " + g.condition() + ":\n")
		for _, a := range g.Args {
			b.WriteString(item + "cmd.append(" + string(a) + ")\n")
		}
	}

	b.WriteString("\n" + body + "cmd.append(" + string(EntryFile) + ")")
	return b.String()
}

// pyString renders s as a single-quoted Python string literal.
func pyString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// pathExpr turns a path written with either separator into an expression
// that joins its parts with the separator of the machine running the
// script.
func pathExpr(p string) Arg {
	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
	switch len(parts) {
	case 0:
		return Lit(p)
	case 1:
		return Lit(parts[0])
	}

	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = pyString(part)
	}
	return Arg("os.path.join(" + strings.Join(quoted, ", ") + ")")
}
