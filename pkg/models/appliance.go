package models

// ApplianceRecord is the flat form of a single appliance entry
type ApplianceRecord struct {
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string  `json:"name" yaml:"name"`
	PowerWatts float64 `json:"power_watts" yaml:"power_watts"`
	Quantity   float64 `json:"quantity" yaml:"quantity"`
	DailyHours float64 `json:"daily_hours" yaml:"daily_hours"`
	EnergyKWh  float64 `json:"energy_kwh" yaml:"energy_kwh"`
}

// SummaryRecord is the flat form of an analysis summary
type SummaryRecord struct {
	Count            int             `json:"count" yaml:"count"`
	TotalEnergyKWh   float64         `json:"total_energy_kwh" yaml:"total_energy_kwh"`
	AverageEnergyKWh float64         `json:"average_energy_kwh" yaml:"average_energy_kwh"`
	Max              ApplianceRecord `json:"max" yaml:"max"`
	Min              ApplianceRecord `json:"min" yaml:"min"`
}
