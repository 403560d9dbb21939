package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/homeload/internal/analysis"
	"github.com/jgoulah/homeload/internal/report"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze appliances from a YAML or CSV file",
	Long: `Loads appliances from a YAML or CSV file, skips (and reports) rows that fail
validation, and prints the total, average, largest and smallest daily consumers.

YAML files hold a list under "appliances" with name, power_watts, quantity and
daily_hours. CSV files need a header with the same column names.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format (text, table, json or yaml)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	l, err := loadLedger(cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	entries := l.Entries()
	summary, err := analysis.Analyze(l)
	if errors.Is(err, analysis.ErrEmptyLedger) {
		return fmt.Errorf("no valid appliances in %s", args[0])
	}
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	return report.New(entries, summary, cfg.GetDecimals()).Write(out, report.Format(analyzeFormat))
}
