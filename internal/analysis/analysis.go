// Package analysis derives aggregate statistics from a ledger's entries.
package analysis

import (
	"errors"

	"github.com/jgoulah/homeload/internal/ledger"
	"github.com/jgoulah/homeload/pkg/models"
)

// ErrEmptyLedger is returned when there is nothing to analyze.
var ErrEmptyLedger = errors.New("analysis: no appliances to analyze")

// EntrySource supplies a consistent snapshot of ledger entries.
type EntrySource interface {
	Entries() []*ledger.Appliance
}

// Summary is a point-in-time view over a ledger. Max and Min point at the
// ledger's own entries. A summary is stale as soon as the ledger changes.
type Summary struct {
	Count            int
	TotalEnergyKWh   float64
	AverageEnergyKWh float64
	Max              *ledger.Appliance
	Min              *ledger.Appliance
}

// Analyze computes the summary of src. Among entries with equal energy the
// earliest added wins both Max and Min.
func Analyze(src EntrySource) (*Summary, error) {
	entries := src.Entries()
	if len(entries) == 0 {
		return nil, ErrEmptyLedger
	}

	s := &Summary{
		Count: len(entries),
		Max:   entries[0],
		Min:   entries[0],
	}
	for _, e := range entries {
		s.TotalEnergyKWh += e.EnergyKWh()
		if e.EnergyKWh() > s.Max.EnergyKWh() {
			s.Max = e
		}
		if e.EnergyKWh() < s.Min.EnergyKWh() {
			s.Min = e
		}
	}
	s.AverageEnergyKWh = s.TotalEnergyKWh / float64(s.Count)

	return s, nil
}

// Record returns the flat form of the summary
func (s *Summary) Record() models.SummaryRecord {
	return models.SummaryRecord{
		Count:            s.Count,
		TotalEnergyKWh:   s.TotalEnergyKWh,
		AverageEnergyKWh: s.AverageEnergyKWh,
		Max:              s.Max.Record(),
		Min:              s.Min.Record(),
	}
}
