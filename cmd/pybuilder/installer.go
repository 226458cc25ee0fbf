package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
)

var installerCmd = &cobra.Command{
	Use:   "installer [dir]",
	Short: "Generate the Inno Setup installer script",
	Long: `Installer validates the configuration and writes <app>_setup.iss. The first
run generates the installer AppId and saves it to the configuration; later
runs reuse it so upgrades replace the installed version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstaller,
}

func init() {
	rootCmd.AddCommand(installerCmd)
}

func runInstaller(cmd *cobra.Command, args []string) error {
	p, err := openProject(dirArg(args))
	if err != nil {
		return err
	}
	defer p.Close()

	res, created, err := p.GenerateInstaller()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "%s %s saved to %s\n", cli.Info("New AppId"), res.AppID, cli.Filename(p.ConfigPath()))
	}
	fmt.Fprintf(out, "%s %s\n", cli.Success("Written"), cli.Filename(p.Path(res.Name)))
	return nil
}
