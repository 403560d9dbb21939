package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jgoulah/homeload/internal/analysis"
	"github.com/jgoulah/homeload/internal/intake"
	"github.com/jgoulah/homeload/internal/report"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Enter appliances interactively",
	Long: `Asks for each appliance's name, power rating, quantity and daily hours, then
analyzes the appliances entered. After each appliance answer "yes" to add another,
"show" to see the current totals, "clear" to start over, or anything else to finish.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	decimals := cfg.GetDecimals()
	in := cmd.InOrStdin()
	interactive := isTerminal(in)

	if interactive {
		fmt.Fprintln(out, "=== Home Load Analyzer ===")
		fmt.Fprintln(out, "Enter appliance details to calculate daily energy consumption")
		fmt.Fprintln(out)
	}

	l := newLedger()
	session := intake.NewSession(l, in, out,
		intake.WithPrompts(interactive),
		intake.WithDecimals(decimals),
		intake.WithSummaryWriter(func(w io.Writer, s *analysis.Summary) error {
			return report.New(l.Entries(), s, decimals).WriteText(w)
		}),
	)

	summary, err := session.Run()
	if errors.Is(err, analysis.ErrEmptyLedger) {
		// The session already warned the user.
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(out)
	r := report.New(l.Entries(), summary, decimals)
	if err := r.WriteTable(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return r.WriteText(out)
}

// isTerminal reports whether r is a terminal. Anything that is not a file,
// such as a test buffer, is not.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
