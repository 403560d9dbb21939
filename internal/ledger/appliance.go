package ledger

import "github.com/jgoulah/homeload/pkg/models"

// Appliance is a validated ledger entry. Its fields are fixed at creation;
// EnergyKWh is derived from the other three and never recomputed.
type Appliance struct {
	id         string
	name       string
	powerWatts float64
	quantity   float64
	dailyHours float64
	energyKWh  float64
}

// DailyEnergyKWh returns the daily consumption in kWh of quantity appliances
// rated at powerWatts running dailyHours per day.
func DailyEnergyKWh(powerWatts, quantity, dailyHours float64) float64 {
	return (powerWatts / 1000) * dailyHours * quantity
}

func newAppliance(id, name string, powerWatts, quantity, dailyHours float64) *Appliance {
	return &Appliance{
		id:         id,
		name:       name,
		powerWatts: powerWatts,
		quantity:   quantity,
		dailyHours: dailyHours,
		energyKWh:  DailyEnergyKWh(powerWatts, quantity, dailyHours),
	}
}

func (a *Appliance) ID() string          { return a.id }
func (a *Appliance) Name() string        { return a.name }
func (a *Appliance) PowerWatts() float64 { return a.powerWatts }
func (a *Appliance) Quantity() float64   { return a.quantity }
func (a *Appliance) DailyHours() float64 { return a.dailyHours }
func (a *Appliance) EnergyKWh() float64  { return a.energyKWh }

// Record returns the flat form of the entry
func (a *Appliance) Record() models.ApplianceRecord {
	return models.ApplianceRecord{
		ID:         a.id,
		Name:       a.name,
		PowerWatts: a.powerWatts,
		Quantity:   a.quantity,
		DailyHours: a.dailyHours,
		EnergyKWh:  a.energyKWh,
	}
}
