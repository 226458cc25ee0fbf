// Package codec reads and writes build_config.yaml.
//
// The format looks like YAML but is a deliberately small line grammar:
// comments, "key: value" scalars, inline comma lists and "- item" block
// lists. Decoding is lenient and never fails; a corrupt file degrades to
// schema defaults.
package codec

import (
	"bufio"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/gersonkurz/pybuilder/internal/config"
	"github.com/gersonkurz/pybuilder/internal/logger"
)

type options struct {
	hostOS string
	log    logger.Logger
}

// Option customizes Decode.
type Option func(*options)

// WithHostOS sets the GOOS used to derive the default compiler.
func WithHostOS(goos string) Option {
	return func(o *options) { o.hostOS = goos }
}

// WithLogger sets the logger that receives decode warnings.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Decode parses text into a record, starting from the schema defaults.
// It never fails: malformed lines are skipped and an unexpected failure
// returns whatever was decoded up to that point.
func Decode(text string, opts ...Option) (rec *config.Record) {
	o := options{hostOS: runtime.GOOS, log: logger.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	rec = config.DefaultsFor(o.hostOS)
	defer func() {
		if p := recover(); p != nil {
			o.log.Warn("config decode aborted, using partial result", "error", fmt.Sprint(p))
		}
		rec.DeriveCompiler(o.hostOS)
	}()

	d := decoder{rec: rec, log: o.log}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		d.line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		o.log.Warn("config decode stopped early", "line", d.lineNo, "error", err)
	}
	return rec
}

type decoder struct {
	rec    *config.Record
	log    logger.Logger
	lineNo int

	// list is the block list that "- item" lines append to, nil when the
	// most recent key was a scalar.
	list *[]string
}

func (d *decoder) line(raw string) {
	d.lineNo++
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "#") {
		return
	}

	if strings.HasPrefix(s, "- ") {
		if d.list != nil {
			*d.list = append(*d.list, strings.TrimSpace(s[2:]))
		}
		return
	}

	key, value, ok := strings.Cut(s, ":")
	if !ok {
		d.log.Debug("config line ignored", "line", d.lineNo, "text", s)
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, '#'); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}

	if value == "" {
		if config.IsListKey(key) {
			f, _ := config.Lookup(key)
			list := f.Ptr(d.rec).(*[]string)
			*list = []string{}
			d.list = list
		}
		return
	}

	d.list = nil

	f, known := config.Lookup(key)
	if !known {
		d.log.Debug("unknown config key ignored", "line", d.lineNo, "key", key)
		return
	}
	d.assign(f, value)
}

// assign coerces value to f's kind. Unparsable integers keep the default.
func (d *decoder) assign(f config.Field, value string) {
	switch p := f.Ptr(d.rec).(type) {
	case *bool:
		*p = parseBool(value)
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil {
			d.log.Warn("invalid integer in config, keeping default", "key", f.Key, "value", value)
			return
		}
		*p = n
	case *string:
		*p = value
	case *[]string:
		*p = config.SplitInline(value)
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true
	}
	return false
}
