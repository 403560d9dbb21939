// Package report renders an analysis for people: text, tables, chart data,
// JSON and XLSX/PDF exports. Renderers only read the entries and summary they
// are given.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jgoulah/homeload/internal/analysis"
	"github.com/jgoulah/homeload/internal/ledger"
)

// Format is an output format for Write
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Report bundles a ledger snapshot with its summary
type Report struct {
	Entries  []*ledger.Appliance
	Summary  *analysis.Summary
	Decimals int
}

// New creates a report. Summary may be nil when only the entry table is needed.
// Decimals of 0 prints whole kWh; a negative value falls back to 2.
func New(entries []*ledger.Appliance, summary *analysis.Summary, decimals int) *Report {
	if decimals < 0 {
		decimals = 2
	}
	return &Report{Entries: entries, Summary: summary, Decimals: decimals}
}

// Write renders the report in the given format
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		return r.WriteText(w)
	case FormatTable:
		if err := r.WriteTable(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("unknown format: %s (available: text, table, json)", format)
	}
}

// kwh formats an energy value with thousands separators
func (r *Report) kwh(v float64) string {
	return formatNumber(v, r.Decimals)
}

func formatNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	if frac == "" {
		return humanize.Comma(n)
	}
	return humanize.Comma(n) + "." + frac
}

// role classifies an entry for highlighting. Max wins when one entry is both.
func (r *Report) role(e *ledger.Appliance) Role {
	if r.Summary == nil {
		return RoleOther
	}
	switch e {
	case r.Summary.Max:
		return RoleMax
	case r.Summary.Min:
		return RoleMin
	default:
		return RoleOther
	}
}
