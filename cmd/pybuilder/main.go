// Copyright (c) 2013-2026, Gerson Kurz, NG Branch Technology GmbH
// MIT License

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gersonkurz/pybuilder/internal/cli"
)

// Version is set via ldflags at build time
var Version = "1.0.0-dev"

func main() {
	rootCmd.SetArgs(rewriteArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Error("Error: ")+err.Error())
		os.Exit(1)
	}
}

// rewriteArgs converts Windows-style /FLAG and /FLAG:value arguments to
// --flag and --flag=value. Anything that looks like a path is left alone.
func rewriteArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, "/") || len(arg) < 2 {
			out = append(out, arg)
			continue
		}

		name, value, hasValue := strings.Cut(arg[1:], ":")
		if !isFlagName(name) {
			out = append(out, arg)
			continue
		}

		name = strings.ToLower(name)
		if name == "?" {
			name = "help"
		}
		if hasValue {
			out = append(out, "--"+name+"="+value)
		} else {
			out = append(out, "--"+name)
		}
	}
	return out
}

func isFlagName(name string) bool {
	if name == "?" {
		return true
	}
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}
