package main

import (
	"github.com/spf13/cobra"

	"github.com/gersonkurz/pybuilder/internal/cli"
	"github.com/gersonkurz/pybuilder/internal/logger"
	"github.com/gersonkurz/pybuilder/internal/project"
	"github.com/gersonkurz/pybuilder/internal/settings"
	"github.com/gersonkurz/pybuilder/internal/template"
)

var (
	flagLogLevel       string
	flagLogJSON        bool
	flagNoColor        bool
	flagTemplateFolder string

	// cfg is filled in before any subcommand runs.
	cfg = settings.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pybuilder",
	Short: "Generate Nuitka/PyInstaller build scripts and Inno Setup installers",
	Long: `pybuilder keeps a Python project's packaging settings in build_config.yaml
and generates a standalone build script for Nuitka or PyInstaller plus an
Inno Setup installer script from them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&flagLogJSON, "log-json", false, "write logs as JSON")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.StringVar(&flagTemplateFolder, "template-folder", "", "overlay folder whose templates take precedence")
	rootCmd.Version = Version
}

// setup merges settings from the environment with the global flags and
// configures logging and colors.
func setup(cmd *cobra.Command, _ []string) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if flags.Changed("log-json") {
		s.LogJSON = flagLogJSON
	}
	if flags.Changed("no-color") {
		s.NoColor = flagNoColor
	}
	if flags.Changed("template-folder") {
		s.TemplateFolder = flagTemplateFolder
	}
	cfg = s

	logger.Setup(s.LogLevel, s.LogJSON)
	cli.Setup(s.NoColor)
	logger.Debug("settings loaded", "template_folder", s.TemplateFolder, "config_name", s.ConfigName)
	return nil
}

func renderer() *template.Renderer {
	return template.NewRenderer(cfg.TemplateFolder)
}

// openProject opens the project in dir, or the current directory when dir
// is empty.
func openProject(dir string) (*project.Project, error) {
	if dir == "" {
		dir = "."
	}
	return project.Open(dir,
		project.WithConfigName(cfg.ConfigName),
		project.WithRenderer(renderer()),
		project.WithLogger(logger.Default()),
	)
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
