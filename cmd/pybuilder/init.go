package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default build_config.yaml",
	Long: `Init writes a configuration holding every default value. The entry file
does not have to exist yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	p, err := openProject(dirArg(args))
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.Create(initForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cli.Success("Created"), cli.Filename(p.ConfigPath()))
	return nil
}
