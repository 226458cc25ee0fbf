package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
)

var setCmd = &cobra.Command{
	Use:   "set [dir] key=value...",
	Short: "Change configuration values",
	Long: `Set assigns one or more keys and saves the configuration. The result must
pass validation or nothing is written. List keys take comma-separated items.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	dir := ""
	if !strings.Contains(args[0], "=") {
		dir, args = args[0], args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("no key=value pairs given")
	}

	p, err := openProject(dir)
	if err != nil {
		return err
	}
	defer p.Close()

	r := p.Record()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%q is not a key=value pair", arg)
		}
		if err := r.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	r.DeriveCompiler(runtime.GOOS)

	if err := p.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s changed)\n", cli.Success("Saved"), cli.Filename(p.ConfigPath()), cli.Number(len(args)))
	return nil
}
