package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/homeload/internal/analysis"
	"github.com/jgoulah/homeload/internal/publisher"
)

var publishTimeout time.Duration

var publishCmd = &cobra.Command{
	Use:   "publish [file]",
	Short: "Publish an analysis to Home Assistant",
	Long: `Analyzes appliances from a YAML or CSV file and publishes the estimated daily
total, with the largest and smallest consumers as attributes, to Home Assistant via
MQTT and/or the HTTP API, as enabled in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().DurationVar(&publishTimeout, "timeout", 30*time.Second, "Overall publish timeout")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	if !cfg.PublishingEnabled() {
		return fmt.Errorf("neither MQTT nor Home Assistant is enabled in config")
	}

	l, err := loadLedger(cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	summary, err := analysis.Analyze(l)
	if errors.Is(err, analysis.ErrEmptyLedger) {
		return fmt.Errorf("no valid appliances in %s, nothing to publish", args[0])
	}
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	pub, err := publisher.New(cfg, logger.Named("publisher"))
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
	defer cancel()

	fmt.Fprintf(out, "Publishing %.2f kWh/day from %d appliances... ", summary.TotalEnergyKWh, summary.Count)
	if err := pub.Publish(ctx, summary.Record()); err != nil {
		fmt.Fprintln(out, "FAILED")
		return err
	}
	fmt.Fprintln(out, "✓")
	return nil
}
