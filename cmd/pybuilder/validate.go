package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
	"github.com/gersonkurz/pybuilder/internal/validate"
)

var validateInstaller bool

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the configuration against the project directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateInstaller, "installer", false, "also check the installer settings")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := openProject(dirArg(args))
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.Validate(); err != nil {
		return err
	}
	if validateInstaller {
		if err := validate.ValidateInstaller(p.Record()); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cli.Filename(p.ConfigPath()), cli.Success("is valid"))
	return nil
}
