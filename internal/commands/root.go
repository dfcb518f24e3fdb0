package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/buildinfo"
	"github.com/maple-budget/maple/internal/config"
	"github.com/maple-budget/maple/internal/logging"
)

// app carries state shared by every subcommand.
type app struct {
	configPath  string
	logLevel    string
	development bool

	cfg    *config.Config // nil until maple init has run
	logger *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "maple",
		Short:   "Canadian personal budgeting",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", config.FileName, "path to maple.yaml")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
	pf.BoolVar(&a.development, "dev", false, "human-readable development logging")

	rootCmd.AddCommand(
		newInitCommand(a),
		newServeCommand(a),
		newUserCommand(a),
		newCalcCommand(a),
		newDebtsCommand(a),
		newImportCommand(a),
		newCoachCommand(a),
	)

	return rootCmd
}

// setup loads the config when present and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		a.cfg = cfg
	}

	level, dev := "warn", a.development
	if a.cfg != nil {
		level = a.cfg.Logging.Level
		dev = dev || a.cfg.Logging.Development
	}
	if a.logLevel != "" {
		level = a.logLevel
	}

	logger, err := logging.New(level, dev)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// config returns the validated configuration, failing when maple init has not run.
func (a *app) config() (*config.Config, error) {
	if a.cfg == nil {
		return nil, fmt.Errorf("no %s found; run `maple init` first or pass --config", a.configPath)
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", a.configPath, err)
	}
	return a.cfg, nil
}
