// Package ledger holds the validated appliance entries of one session and
// owns the daily energy formula.
package ledger

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger is an ordered, in-memory collection of appliances. It only grows
// through Add and is only emptied by Clear. It is safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	entries []*Appliance

	logger        *zap.Logger
	wholeQuantity bool
}

// Option configures a Ledger
type Option func(*Ledger)

// WithLogger sets the logger used for add/reject events
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithWholeQuantities rejects fractional quantities
func WithWholeQuantities(enabled bool) Option {
	return func(l *Ledger) {
		l.wholeQuantity = enabled
	}
}

// New creates an empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Validate checks raw input against this ledger's rules without adding it
func (l *Ledger) Validate(name, power, quantity, hours string) []ValidationError {
	return validate(name, power, quantity, hours, l.wholeQuantity)
}

// Add validates raw input and, if it passes, appends a new entry and returns
// it. On failure the ledger is unchanged and the error is a *ValidationFailure.
func (l *Ledger) Add(name, power, quantity, hours string) (*Appliance, error) {
	if errs := l.Validate(name, power, quantity, hours); len(errs) > 0 {
		failure := &ValidationFailure{Errors: errs}
		l.logger.Info("appliance rejected",
			zap.String("name", name),
			zap.Strings("errors", failure.Messages()),
		)
		return nil, failure
	}

	// Validation guarantees these parse.
	p, _ := parseNumber(power)
	q, _ := parseNumber(quantity)
	h, _ := parseNumber(hours)

	entry := newAppliance(uuid.NewString(), strings.TrimSpace(name), p, q, h)

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	count := len(l.entries)
	l.mu.Unlock()

	l.logger.Debug("appliance added",
		zap.String("id", entry.ID()),
		zap.String("name", entry.Name()),
		zap.Float64("energy_kwh", entry.EnergyKWh()),
		zap.Int("count", count),
	)
	return entry, nil
}

// Clear removes every entry
func (l *Ledger) Clear() {
	l.mu.Lock()
	n := len(l.entries)
	l.entries = nil
	l.mu.Unlock()

	l.logger.Debug("ledger cleared", zap.Int("removed", n))
}

// Entries returns a snapshot of the entries in insertion order. The slice is
// the caller's; the entries are shared with the ledger.
func (l *Ledger) Entries() []*Appliance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Appliance, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
