package portcalc

import (
	"sort"
)

// Economic assumption keys read by the engine.
const (
	KeyDieselPrice         = "diesel_price"
	KeyElectricityPrice    = "electricity_price"
	KeyDieselWTW           = "diesel_wtw_factor"
	KeyGridEmissionFactor  = "grid_emission_factor"
	KeyMaintenanceSaving   = "maintenance_saving"
	KeyUtilizationFactor   = "utilization_factor"
	KeyTEUPerMove          = "teu_per_move"
	KeyEngineEfficiency    = "engine_efficiency"
	KeyHFOWTW              = "hfo_wtw_factor"
	KeyHFOEnergyDensity    = "hfo_energy_density"
	KeyDieselEnergyDensity = "diesel_energy_density"
)

// DefaultAssumptions holds the value used for each assumption
// key when neither the tables nor the request provide one.
var DefaultAssumptions = map[string]float64{
	// currency per litre
	KeyDieselPrice: 1.23,
	// currency per kWh
	KeyElectricityPrice: 0.12,
	// kg CO2e per litre of diesel
	KeyDieselWTW: 3.28564,
	// kg CO2e per kWh taken from the grid
	KeyGridEmissionFactor: 0,
	// fraction of maintenance saved by electric units
	KeyMaintenanceSaving: 0.25,
	KeyUtilizationFactor: 0.85,
	KeyTEUPerMove:        1.7,
	// thermal efficiency of a vessel auxiliary engine
	KeyEngineEfficiency: 0.45,
	// kg CO2e per kg of heavy fuel oil
	KeyHFOWTW: 3.6567,
	// MJ per kg of heavy fuel oil
	KeyHFOEnergyDensity: 40.2,
	// kWh per litre of diesel
	KeyDieselEnergyDensity: 10.0,
}

// Assumptions holds the fully resolved economic values used
// by a calculation.
type Assumptions struct {
	DieselPrice         float64
	ElectricityPrice    float64
	DieselWTW           float64
	GridEmissionFactor  float64
	MaintenanceSaving   float64
	UtilizationFactor   float64
	TEUPerMove          float64
	EngineEfficiency    float64
	HFOWTW              float64
	HFOEnergyDensity    float64
	DieselEnergyDensity float64

	values map[string]float64
}

// ResolveAssumptions merges the documented defaults, the values
// from the assumption tables and the per-request overrides, in
// that order of increasing precedence.
func ResolveAssumptions(table, overrides map[string]float64) *Assumptions {
	values := make(map[string]float64)
	for _, m := range []map[string]float64{DefaultAssumptions, table, overrides} {
		for k, v := range m {
			values[k] = v
		}
	}
	return &Assumptions{
		DieselPrice:         values[KeyDieselPrice],
		ElectricityPrice:    values[KeyElectricityPrice],
		DieselWTW:           values[KeyDieselWTW],
		GridEmissionFactor:  values[KeyGridEmissionFactor],
		MaintenanceSaving:   values[KeyMaintenanceSaving],
		UtilizationFactor:   values[KeyUtilizationFactor],
		TEUPerMove:          values[KeyTEUPerMove],
		EngineEfficiency:    values[KeyEngineEfficiency],
		HFOWTW:              values[KeyHFOWTW],
		HFOEnergyDensity:    values[KeyHFOEnergyDensity],
		DieselEnergyDensity: values[KeyDieselEnergyDensity],
		values:              values,
	}
}

// Values returns a copy of every resolved assumption value,
// including any keys the engine does not read.
func (a *Assumptions) Values() map[string]float64 {
	m := make(map[string]float64, len(a.values))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

// Keys returns the resolved assumption keys in sorted order.
func (a *Assumptions) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AuxEmissionFactor returns the emissions, in tonnes CO2e per
// MWh, of a vessel producing electricity at berth with its
// heavy-fuel-oil auxiliary engines.
func (a *Assumptions) AuxEmissionFactor() float64 {
	if a.EngineEfficiency <= 0 || a.HFOEnergyDensity <= 0 {
		return 0
	}
	// 1 MWh of electrical output needs 3600/efficiency MJ of fuel.
	fuelKg := 3600 / a.EngineEfficiency / a.HFOEnergyDensity
	return fuelKg * a.HFOWTW / 1000
}

// dieselMaintenanceRate returns the annual maintenance cost of a
// diesel unit given the maintenance cost of its electric
// equivalent.
func (a *Assumptions) dieselMaintenanceRate(electricOpex float64) float64 {
	if a.MaintenanceSaving >= 1 {
		return electricOpex
	}
	return electricOpex / (1 - a.MaintenanceSaving)
}
