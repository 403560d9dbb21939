package report

import "encoding/hex"

// Role marks how a bar is highlighted
type Role string

const (
	RoleMax   Role = "max"
	RoleMin   Role = "min"
	RoleOther Role = "other"
)

// Bar colours, hex RGB without the leading '#'.
const (
	ColorMax   = "FF6B6B"
	ColorMin   = "4ECDC4"
	ColorOther = "45B7D1"
)

// Bar is one appliance in the consumption chart
type Bar struct {
	ID        string
	Label     string
	EnergyKWh float64
	Role      Role
	Color     string
}

// Chart returns one bar per entry in ledger order, with the largest and
// smallest consumers highlighted.
func (r *Report) Chart() []Bar {
	bars := make([]Bar, 0, len(r.Entries))
	for _, e := range r.Entries {
		role := r.role(e)
		bars = append(bars, Bar{
			ID:        e.ID(),
			Label:     e.Name(),
			EnergyKWh: e.EnergyKWh(),
			Role:      role,
			Color:     roleColor(role),
		})
	}
	return bars
}

func roleColor(role Role) string {
	switch role {
	case RoleMax:
		return ColorMax
	case RoleMin:
		return ColorMin
	default:
		return ColorOther
	}
}

// rgb splits a hex colour into components
func rgb(color string) (int, int, int) {
	b, err := hex.DecodeString(color)
	if err != nil || len(b) != 3 {
		return 0, 0, 0
	}
	return int(b[0]), int(b[1]), int(b[2])
}
