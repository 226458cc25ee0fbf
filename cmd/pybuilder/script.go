package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
)

var scriptCmd = &cobra.Command{
	Use:   "script [dir]",
	Short: "Generate the build script for the configured backend",
	Long: `Script validates the configuration and writes build_nuitka.py or
build_pyinstaller.py into the project directory. Run it with the project's
Python interpreter to build.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	p, err := openProject(dirArg(args))
	if err != nil {
		return err
	}
	defer p.Close()

	res, err := p.GenerateBuildScript()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s arguments)\n", cli.Success("Written"), cli.Filename(p.Path(res.Name)), cli.Number(len(res.Args)))
	for _, a := range res.Advisories {
		fmt.Fprintf(out, "  %s %s\n", cli.Warning("Warning:"), a)
	}
	return nil
}
