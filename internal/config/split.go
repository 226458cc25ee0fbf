package config

import (
	"strings"
	"unicode"
)

// fullWidthComma is the ideographic comma accepted as a list separator.
const fullWidthComma = '，'

// SplitItems splits a multi-value field on any run of whitespace, ASCII
// commas or full-width commas. Empty items are dropped.
func SplitItems(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == fullWidthComma || unicode.IsSpace(r)
	})
}

// SplitInline splits an inline list value ("a, b, c") on ASCII commas,
// trimming each item and dropping empty ones.
func SplitInline(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// SplitMapping splits a "source;destination" item at its first semicolon.
func SplitMapping(item string) (src, dst string, ok bool) {
	src, dst, ok = strings.Cut(item, ";")
	return src, dst, ok
}
