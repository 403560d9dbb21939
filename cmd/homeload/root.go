package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jgoulah/homeload/internal/config"
	"github.com/jgoulah/homeload/internal/intake"
	"github.com/jgoulah/homeload/internal/ledger"
	"github.com/jgoulah/homeload/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "homeload",
	Short: "Estimate daily household energy use per appliance",
	Long: `Home Load Analyzer estimates how much energy each household appliance uses per day
from its power rating, quantity and daily running hours, and reports the total, the
average and the largest and smallest consumers.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// saveConfig saves the configuration file
func saveConfig(c *config.Config) error {
	return config.Save(getConfigPath(), c)
}

// setup loads the config file and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.GetLogLevel()
	if logLevel != "" {
		level = logLevel
	}
	logger, err = logging.NewLogger(level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	return nil
}

// newLedger creates an empty ledger configured from the config file
func newLedger() *ledger.Ledger {
	return ledger.New(
		ledger.WithLogger(logger.Named("ledger")),
		ledger.WithWholeQuantities(cfg.IntegerQuantity),
	)
}

// loadLedger fills a new ledger from an appliance file, reporting rejected rows to w
func loadLedger(w io.Writer, path string) (*ledger.Ledger, error) {
	l := newLedger()
	result, err := intake.LoadFile(path, l)
	if err != nil {
		return nil, fmt.Errorf("loading appliances: %w", err)
	}

	for _, rej := range result.Rejected {
		name := rej.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "⚠ Skipped row %d %s:\n", rej.Row, name)
		for _, msg := range rej.Messages {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}

	logger.Info("appliances loaded",
		zap.String("path", path),
		zap.Int("added", len(result.Added)),
		zap.Int("rejected", len(result.Rejected)),
	)
	return l, nil
}
