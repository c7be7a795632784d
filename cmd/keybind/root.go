package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/logging"
	"github.com/dshills/keybind/internal/shortcut"
)

// env holds state shared by subcommands once flags are parsed.
type env struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string

	cfg    config.Config
	logger *logrus.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	e := &env{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:          "keybind",
		Short:        "Inspect and validate keyboard shortcut bindings",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "path to configuration file")
	cmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level (overrides configuration)")

	cmd.AddCommand(
		newParseCmd(e),
		newCheckCmd(e),
		newRunCmd(e),
		newTryCmd(e),
	)
	return cmd
}

// setup loads configuration and builds the logger. Without --config the
// defaults apply; KEYBIND_* environment variables override either.
func (e *env) setup() error {
	cfg := config.Default()
	if e.configPath != "" {
		loaded, err := config.Load(e.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	cfg, err := e.overrides(cfg)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.logger = logging.New(cfg.Logging(e.errOut))
	return nil
}

// overrides applies environment variables and --log-level on top of cfg.
func (e *env) overrides(cfg config.Config) (config.Config, error) {
	cfg, err := cfg.ApplyEnv(nil)
	if err != nil {
		return cfg, err
	}
	if e.logLevel != "" {
		if !logging.ValidLevel(e.logLevel) {
			return cfg, fmt.Errorf("invalid log level %q", e.logLevel)
		}
		cfg.Log.Level = e.logLevel
	}
	return cfg, nil
}

// watchConfig reapplies the --config file to m whenever it changes.
func (e *env) watchConfig(m *shortcut.Manager) (*config.Reloader, error) {
	if e.configPath == "" {
		return nil, errors.New("--watch requires --config")
	}
	return config.NewReloader(e.configPath, func(cfg config.Config) {
		cfg, err := e.overrides(cfg)
		if err != nil {
			e.logger.WithError(err).Warn("ignoring reloaded configuration")
			return
		}
		m.ApplyConfig(cfg)
	}, e.logger)
}

// newManager creates a Manager configured from the loaded settings.
func (e *env) newManager() *shortcut.Manager {
	return shortcut.New(
		shortcut.WithLogger(e.logger),
		shortcut.WithConfig(e.cfg),
	)
}
