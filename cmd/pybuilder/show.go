package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
	"github.com/gersonkurz/pybuilder/internal/config"
)

var showAll bool

var showCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Print the effective configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include keys holding their default value")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := openProject(dirArg(args))
	if err != nil {
		return err
	}
	defer p.Close()

	out := cmd.OutOrStdout()
	r := p.Record()
	if !p.Exists() {
		fmt.Fprintf(out, "%s %s does not exist, showing defaults\n", cli.Warning("Note:"), cli.Filename(p.ConfigPath()))
	}

	for _, f := range config.Fields() {
		isDefault := f.IsDefault(r)
		if isDefault && !showAll {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", cli.Key(f.Key, isDefault), f.Format(r))
	}
	fmt.Fprintf(out, "%s %s (%s)\n", cli.Bold("Build tool:"), r.Tool(), r.EffectiveMode())
	return nil
}
