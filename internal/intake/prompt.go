package intake

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jgoulah/homeload/internal/analysis"
	"github.com/jgoulah/homeload/internal/ledger"
)

// SummaryWriter renders a summary for the user
type SummaryWriter func(w io.Writer, s *analysis.Summary) error

// Session is the interactive prompt loop. It owns nothing but the cached
// summary view; the ledger belongs to the caller.
type Session struct {
	ledger      *ledger.Ledger
	scanner     *bufio.Scanner
	out         io.Writer
	showPrompts bool
	decimals    int
	render      SummaryWriter

	summary *analysis.Summary
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithPrompts controls whether questions are printed. Disable it when input
// is piped in.
func WithPrompts(enabled bool) SessionOption {
	return func(s *Session) { s.showPrompts = enabled }
}

// WithDecimals sets the digits shown for kWh values
func WithDecimals(n int) SessionOption {
	return func(s *Session) { s.decimals = n }
}

// WithSummaryWriter sets how the "show" answer renders the current summary
func WithSummaryWriter(fn SummaryWriter) SessionOption {
	return func(s *Session) { s.render = fn }
}

// NewSession creates a prompt session reading answers from in
func NewSession(l *ledger.Ledger, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		ledger:      l,
		scanner:     bufio.NewScanner(in),
		out:         out,
		showPrompts: true,
		decimals:    2,
		render:      writeBriefSummary,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the last summary shown, or nil once the ledger has changed
// since (an add or a clear).
func (s *Session) Summary() *analysis.Summary {
	return s.summary
}

// Run collects appliances until the user stops or input ends, then analyzes
// the ledger. An empty ledger yields analysis.ErrEmptyLedger after a warning.
func (s *Session) Run() (*analysis.Summary, error) {
	for {
		entry, ok, err := s.collect()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if entry == nil {
			// Rejected, ask for the whole appliance again.
			continue
		}

		fmt.Fprintf(s.out, "✓ Added %s: %s kWh/day\n", entry.Name(), s.kwh(entry.EnergyKWh()))

		more, err := s.askContinue()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return s.finish()
}

// collect asks for one appliance. ok is false once input is exhausted.
func (s *Session) collect() (entry *ledger.Appliance, ok bool, err error) {
	questions := []string{
		"Enter appliance name: ",
		"Enter power rating in watts: ",
		"Enter quantity: ",
		"Enter hours the appliance runs daily: ",
	}
	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		answer, ok := s.ask(q)
		if !ok {
			return nil, false, s.scanner.Err()
		}
		answers = append(answers, answer)
	}

	entry, err = s.ledger.Add(answers[0], answers[1], answers[2], answers[3])
	if err != nil {
		var failure *ledger.ValidationFailure
		if !errors.As(err, &failure) {
			return nil, false, err
		}
		fmt.Fprintln(s.out, "Input error:")
		for _, msg := range failure.Messages() {
			fmt.Fprintf(s.out, "  - %s\n", msg)
		}
		return nil, true, nil
	}
	// Any summary shown so far no longer describes the ledger.
	s.summary = nil
	return entry, true, nil
}

func (s *Session) askContinue() (bool, error) {
	for {
		answer, ok := s.ask("Add another appliance? (yes/no/show/clear): ")
		if !ok {
			return false, s.scanner.Err()
		}

		switch strings.ToLower(answer) {
		case "yes", "y":
			return true, nil
		case "clear":
			s.reset()
			fmt.Fprintln(s.out, "Cleared all appliances")
			return true, nil
		case "show":
			if err := s.show(); err != nil {
				return false, err
			}
		default:
			return false, nil
		}
	}
}

// reset clears the ledger together with the cached summary view
func (s *Session) reset() {
	s.ledger.Clear()
	s.summary = nil
}

func (s *Session) show() error {
	summary, err := analysis.Analyze(s.ledger)
	if errors.Is(err, analysis.ErrEmptyLedger) {
		fmt.Fprintln(s.out, "No appliances added yet")
		return nil
	}
	if err != nil {
		return err
	}
	s.summary = summary
	return s.render(s.out, summary)
}

func (s *Session) finish() (*analysis.Summary, error) {
	summary, err := analysis.Analyze(s.ledger)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyLedger) {
			fmt.Fprintln(s.out, "⚠ No appliances to analyze")
		}
		s.summary = nil
		return nil, err
	}
	s.summary = summary
	return summary, nil
}

func (s *Session) ask(question string) (string, bool) {
	if s.showPrompts {
		fmt.Fprint(s.out, question)
	}
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *Session) kwh(v float64) string {
	return strconv.FormatFloat(v, 'f', s.decimals, 64)
}

func writeBriefSummary(w io.Writer, summary *analysis.Summary) error {
	_, err := fmt.Fprintf(w, "%d appliances, %.2f kWh/day total\n", summary.Count, summary.TotalEnergyKWh)
	return err
}
