package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/orchestrator"
)

var version = "dev"

// app carries what every subcommand needs once flags and config are loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "regform",
		Short:         "Customer registration form",
		Long:          `Serve the registration form over HTTP, fill it in from the terminal, or render it to a file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML, JSON or TOML)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (json or console)")
	flags.String("layout", "", "layout override file or directory")
	flags.String("theme", "", "theme name")
	flags.String("theme-manifest", "", "go-theme manifest file (JSON or YAML)")
	flags.String("theme-variant", "", "theme variant")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("layout", flags.Lookup("layout"))
	_ = a.v.BindPFlag("theme.name", flags.Lookup("theme"))
	_ = a.v.BindPFlag("theme.manifest", flags.Lookup("theme-manifest"))
	_ = a.v.BindPFlag("theme.variant", flags.Lookup("theme-variant"))

	root.AddCommand(
		newServeCmd(a),
		newPromptCmd(a),
		newRenderCmd(a),
		newContractCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// orchestratorOptions maps config onto the rendering pipeline.
func (a *app) orchestratorOptions() ([]orchestrator.Option, error) {
	var options []orchestrator.Option

	layout, err := a.cfg.LayoutFS()
	if err != nil {
		return nil, err
	}
	if layout != nil {
		options = append(options, orchestrator.WithUISchemaFS(layout))
	}

	registry, name, err := a.cfg.Theme.Registry()
	if err != nil {
		return nil, err
	}
	if registry != nil {
		options = append(options, orchestrator.WithThemeProvider(registry, name, a.cfg.Theme.Variant))
	}
	return options, nil
}

func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	options, err := a.orchestratorOptions()
	if err != nil {
		return nil, fmt.Errorf("regform: %w", err)
	}
	return orchestrator.New(options...), nil
}
