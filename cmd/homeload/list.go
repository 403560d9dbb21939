package main

import (
	"github.com/spf13/cobra"

	"github.com/jgoulah/homeload/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List appliances and their daily energy",
	Long:  `Loads appliances from a YAML or CSV file and displays each one with its estimated daily energy.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	l, err := loadLedger(cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}

	return report.New(l.Entries(), nil, cfg.GetDecimals()).WriteTable(cmd.OutOrStdout())
}
