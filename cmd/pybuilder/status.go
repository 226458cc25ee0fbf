package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings and where each template is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "pybuilder - Version %s\n", Version)
	fmt.Fprintf(out, "Platform: %s/%s\n\n", runtime.GOOS, runtime.GOARCH)

	fmt.Fprintln(out, cli.Bold("Settings:"))
	fmt.Fprintf(out, "  Config name:     %s\n", cfg.ConfigName)
	fmt.Fprintf(out, "  Log level:       %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  JSON logs:       %s\n", cli.Status(cfg.LogJSON))
	fmt.Fprintf(out, "  Colors:          %s\n", cli.Status(cli.ColorsEnabled))

	r := renderer()
	folder := r.Overlay
	if folder == "" {
		folder = "(none)"
	}
	fmt.Fprintf(out, "  Template folder: %s\n\n", cli.Filename(folder))

	sources, err := r.Sources()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.Bold("Templates:"))
	for _, s := range sources {
		origin := "built-in"
		if s.Overridden {
			origin = cli.Info("overlay")
		}
		fmt.Fprintf(out, "  %-28s %s\n", s.Name, origin)
	}
	return nil
}
