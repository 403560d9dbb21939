package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var errNoSummary = errors.New("report: no summary")

// WriteText writes the analysis summary
func (r *Report) WriteText(w io.Writer) error {
	s := r.Summary
	if s == nil {
		return errNoSummary
	}

	var b strings.Builder
	b.WriteString("ANALYSIS RESULTS\n")
	b.WriteString("================\n\n")
	fmt.Fprintf(&b, "Total Energy Consumed: %s kWh/day\n\n", r.kwh(s.TotalEnergyKWh))
	b.WriteString("Most Energy-Consuming Appliance:\n")
	fmt.Fprintf(&b, "  • %s (%s kWh/day)\n\n", s.Max.Name(), r.kwh(s.Max.EnergyKWh()))
	b.WriteString("Least Energy-Consuming Appliance:\n")
	fmt.Fprintf(&b, "  • %s (%s kWh/day)\n\n", s.Min.Name(), r.kwh(s.Min.EnergyKWh()))
	fmt.Fprintf(&b, "Average Energy per Appliance: %s kWh/day\n\n", r.kwh(s.AverageEnergyKWh))
	fmt.Fprintf(&b, "Number of Appliances: %d\n", s.Count)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTable writes one row per entry followed by the total. Rows for the
// largest and smallest consumers are marked when a summary is present.
func (r *Report) WriteTable(w io.Writer) error {
	if len(r.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No appliances")
		return err
	}

	const rule = "--------------------------------------------------------------------------"
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %-24s  %10s  %8s  %6s  %12s\n", "Name", "Power (W)", "Quantity", "Hours", "Energy (kWh)")
	fmt.Fprintln(w, rule)

	var total float64
	for _, e := range r.Entries {
		marker := " "
		switch r.role(e) {
		case RoleMax:
			marker = "▲"
		case RoleMin:
			marker = "▼"
		}
		fmt.Fprintf(w, "%s %-24s  %10s  %8s  %6s  %12s\n",
			marker,
			truncate(e.Name(), 24),
			formatNumber(e.PowerWatts(), 1),
			formatNumber(e.Quantity(), 1),
			formatNumber(e.DailyHours(), 2),
			r.kwh(e.EnergyKWh()),
		)
		total += e.EnergyKWh()
	}

	fmt.Fprintln(w, rule)
	_, err := fmt.Fprintf(w, "Total: %s kWh/day (%d appliances)\n", r.kwh(total), len(r.Entries))
	return err
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
