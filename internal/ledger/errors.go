package ledger

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every *ValidationFailure via errors.Is.
var ErrValidation = errors.New("ledger: invalid appliance")

// Field names reported in ValidationError.Field.
const (
	FieldName     = "name"
	FieldPower    = "power_watts"
	FieldQuantity = "quantity"
	FieldHours    = "daily_hours"
	FieldEnergy   = "energy_kwh"
)

// ValidationError is a single field-level problem with appliance input
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationFailure is returned by Add when one or more fields are invalid.
// Errors holds every problem found, in field order.
type ValidationFailure struct {
	Errors []ValidationError
}

func (f *ValidationFailure) Error() string {
	return strings.Join(f.Messages(), "; ")
}

// Messages returns the user-facing message of each error
func (f *ValidationFailure) Messages() []string {
	msgs := make([]string, 0, len(f.Errors))
	for _, e := range f.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func (f *ValidationFailure) Is(target error) bool {
	return target == ErrValidation
}
