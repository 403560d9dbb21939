package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jgoulah/homeload/internal/analysis"
	"github.com/jgoulah/homeload/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export an analysis to XLSX or PDF",
	Long: `Loads appliances from a YAML or CSV file and writes the analysis, the appliance
table and a consumption chart to an XLSX workbook or a PDF document. The format is
chosen from the --out file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "home-load.xlsx", "Output file (.xlsx or .pdf)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := report.ExportFormatFromPath(exportOut)
	if err != nil {
		return err
	}

	l, err := loadLedger(cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	entries := l.Entries()
	summary, err := analysis.Analyze(l)
	if errors.Is(err, analysis.ErrEmptyLedger) {
		return fmt.Errorf("no valid appliances in %s, nothing to export", args[0])
	}
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	data, err := report.New(entries, summary, cfg.GetDecimals()).Export(format)
	if err != nil {
		return fmt.Errorf("building %s: %w", format, err)
	}

	if err := os.MkdirAll(filepath.Dir(exportOut), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOut, err)
	}

	logger.Info("report exported", zap.String("path", exportOut), zap.Int("bytes", len(data)))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d appliances)\n", exportOut, summary.Count)
	return nil
}
