// Package cli formats command output for the terminal.
package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	reset   = "\033[0m"
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
	bold    = "\033[1m"
	dim     = "\033[2m"
)

// ColorsEnabled controls whether output is colored.
var ColorsEnabled = detect()

// detect honors NO_COLOR (https://no-color.org/) and disables colors when
// stdout is not a terminal.
func detect() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Setup applies the --no-color switch. Without it colors follow the
// environment and terminal.
func Setup(noColor bool) {
	if noColor {
		ColorsEnabled = false
		return
	}
	ColorsEnabled = detect()
}

func colorize(color, text string) string {
	if !ColorsEnabled {
		return text
	}
	return color + text + reset
}

// Error formats text in red.
func Error(text string) string { return colorize(red, text) }

// Success formats text in green.
func Success(text string) string { return colorize(green, text) }

// Warning formats text in yellow.
func Warning(text string) string { return colorize(yellow, text) }

// Info formats text in cyan.
func Info(text string) string { return colorize(cyan, text) }

// Bold formats section headers.
func Bold(text string) string { return colorize(bold, text) }

// Filename formats a path.
func Filename(text string) string { return colorize(cyan, text) }

// Number formats a count.
func Number(n int) string { return colorize(magenta, fmt.Sprint(n)) }

// Key formats a config key. Keys still at their default are dimmed.
func Key(name string, isDefault bool) string {
	if isDefault {
		return colorize(dim, name)
	}
	return colorize(bold, name)
}

// Status renders a yes/no marker.
func Status(ok bool) string {
	if ok {
		return Success("yes")
	}
	return Warning("no")
}
