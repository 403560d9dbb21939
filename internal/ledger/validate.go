package ledger

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest accepted appliance name, in characters.
	MaxNameLength = 50
	// MaxDailyHours caps daily usage.
	MaxDailyHours = 24.0
	// MaxEnergyKWh caps a single entry so ledger totals stay finite.
	MaxEnergyKWh = 1e12
)

// Validate checks raw appliance input with the default rules. Every field is
// checked so that all problems are reported together; an empty result means
// the input is acceptable.
func Validate(name, power, quantity, hours string) []ValidationError {
	return validate(name, power, quantity, hours, false)
}

func validate(name, power, quantity, hours string, wholeQuantity bool) []ValidationError {
	var errs []ValidationError

	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		errs = append(errs, ValidationError{FieldName, "Appliance name cannot be empty"})
	case utf8.RuneCountInString(trimmed) > MaxNameLength:
		errs = append(errs, ValidationError{FieldName, "Appliance name is too long (max 50 characters)"})
	}

	nameErrs := len(errs)

	p, ok := parseNumber(power)
	switch {
	case !ok:
		errs = append(errs, ValidationError{FieldPower, "Power rating must be a valid number"})
	case p <= 0:
		errs = append(errs, ValidationError{FieldPower, "Power rating must be a positive number"})
	}

	q, ok := parseNumber(quantity)
	switch {
	case !ok:
		errs = append(errs, ValidationError{FieldQuantity, "Quantity must be a valid number"})
	case q <= 0:
		errs = append(errs, ValidationError{FieldQuantity, "Quantity must be a positive number"})
	case wholeQuantity && q != math.Trunc(q):
		errs = append(errs, ValidationError{FieldQuantity, "Quantity must be a whole number"})
	}

	h, ok := parseNumber(hours)
	switch {
	case !ok:
		errs = append(errs, ValidationError{FieldHours, "Daily usage must be a valid number"})
	case h <= 0:
		errs = append(errs, ValidationError{FieldHours, "Daily usage must be a positive number"})
	case h > MaxDailyHours:
		errs = append(errs, ValidationError{FieldHours, "Daily usage cannot exceed 24 hours"})
	}

	if len(errs) == nameErrs {
		if e := DailyEnergyKWh(p, q, h); math.IsInf(e, 0) || e > MaxEnergyKWh {
			errs = append(errs, ValidationError{FieldEnergy, "Energy estimate is out of range"})
		}
	}

	return errs
}

// parseNumber parses a finite decimal number. NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
