package portcalc

import (
	"math"
)

// serviceUtilization holds the largest fraction of the year a
// service boat can be in use.
const serviceUtilization = 0.6

// ServiceKind identifies a kind of port service boat.
type ServiceKind string

const (
	Tug   ServiceKind = SegmentTug
	Pilot ServiceKind = SegmentPilot
)

// ServiceItem holds the result for one kind of service boat.
type ServiceItem struct {
	Kind ServiceKind

	// Trips and Hours hold the annual demand for the service
	// from all vessel calls in the port.
	Trips float64
	Hours float64
	// MaxPerCall holds the largest number of boats needed by a
	// single call.
	MaxPerCall int
	// RequiredFleet holds the minimum fleet that can serve the demand.
	RequiredFleet int

	Baseline FleetCount
	Scenario FleetCount
	// Converted and Added hold the boats newly electric in the scenario.
	Converted int
	Added     int
	// Shortfall holds how many boats the scenario fleet is short
	// of RequiredFleet.
	Shortfall int

	BaselineLiters  float64
	BaselineKWh     float64
	BaselineCO2Tons float64
	BaselineOpex    float64

	ScenarioLiters  float64
	ScenarioKWh     float64
	ScenarioCO2Tons float64
	ScenarioOpex    float64

	Capex float64
}

// ServicesResult holds the result of PortServices.
type ServicesResult struct {
	Tugs   ServiceItem
	Pilots ServiceItem

	BaselineLiters  float64
	BaselineKWh     float64
	BaselineCO2Tons float64
	BaselineOpex    float64
	ScenarioLiters  float64
	ScenarioKWh     float64
	ScenarioCO2Tons float64
	ScenarioOpex    float64
	Capex           float64
}

// PortServices calculates the tug and pilot boat demand created
// by the given vessel calls, which should cover every berth in the
// port, and the energy, emissions and costs of serving it with
// the configured fleets.
func PortServices(tables *Tables, a *Assumptions, calls []VesselCall, cfg ServicesConfig) ServicesResult {
	r := ServicesResult{
		Tugs: serviceItem(tables, a, Tug, calls, cfg.Tugs, func(s *FleetOpsSpec) float64 {
			return s.TugsPerCall
		}),
		Pilots: serviceItem(tables, a, Pilot, calls, cfg.Pilots, func(s *FleetOpsSpec) float64 {
			return s.PilotsPerCall
		}),
	}
	for _, item := range []*ServiceItem{&r.Tugs, &r.Pilots} {
		r.BaselineLiters += item.BaselineLiters
		r.BaselineKWh += item.BaselineKWh
		r.BaselineCO2Tons += item.BaselineCO2Tons
		r.BaselineOpex += item.BaselineOpex
		r.ScenarioLiters += item.ScenarioLiters
		r.ScenarioKWh += item.ScenarioKWh
		r.ScenarioCO2Tons += item.ScenarioCO2Tons
		r.ScenarioOpex += item.ScenarioOpex
		r.Capex += item.Capex
	}
	return r
}

func serviceItem(tables *Tables, a *Assumptions, kind ServiceKind, calls []VesselCall, fleet ServiceFleet, perCall func(*FleetOpsSpec) float64) ServiceItem {
	item := ServiceItem{
		Kind:     kind,
		Baseline: FleetCount{Diesel: fleet.Diesel, Electric: fleet.Electric},
	}
	params, ok := tables.Segment(string(kind))
	if !ok {
		params = &FleetOpsSpec{}
	}
	for _, call := range calls {
		seg, ok := tables.Segment(call.Segment)
		if !ok {
			continue
		}
		n := perCall(seg)
		item.Trips += call.AnnualCalls * n
		if call.AnnualCalls > 0 {
			if m := int(math.Ceil(n)); m > item.MaxPerCall {
				item.MaxPerCall = m
			}
		}
	}
	item.Hours = item.Trips * params.HoursPerCall
	item.RequiredFleet = RequiredFleet(item.Hours, item.MaxPerCall)

	item.Converted = ConvertedUnits(fleet.Diesel, fleet.Convert)
	item.Added = fleet.Add
	item.Scenario = FleetCount{
		Diesel:   fleet.Diesel - item.Converted,
		Electric: fleet.Electric + item.Converted + item.Added,
	}
	if short := item.RequiredFleet - (item.Scenario.Diesel + item.Scenario.Electric); short > 0 {
		item.Shortfall = short
	}

	item.BaselineLiters, item.BaselineKWh = serviceEnergy(a, params, item.Hours, item.Baseline)
	item.BaselineCO2Tons = (item.BaselineLiters*a.DieselWTW + item.BaselineKWh*a.GridEmissionFactor) / 1000
	item.BaselineOpex = item.BaselineLiters*a.DieselPrice + item.BaselineKWh*a.ElectricityPrice +
		float64(item.Baseline.Electric)*params.OPSOpex

	item.ScenarioLiters, item.ScenarioKWh = serviceEnergy(a, params, item.Hours, item.Scenario)
	item.ScenarioCO2Tons = (item.ScenarioLiters*a.DieselWTW + item.ScenarioKWh*a.GridEmissionFactor) / 1000
	item.ScenarioOpex = item.ScenarioLiters*a.DieselPrice + item.ScenarioKWh*a.ElectricityPrice +
		float64(item.Scenario.Electric)*params.OPSOpex

	// Each newly electric boat needs its own OPS charging berth.
	item.Capex = float64(item.Converted+item.Added) * params.OPSCapex()
	return item
}

// RequiredFleet returns the minimum number of boats that can provide
// the given annual operating hours when a single call may need up to
// maxPerCall boats at once.
func RequiredFleet(hours float64, maxPerCall int) int {
	available := hoursPerYear * serviceUtilization
	n := int(math.Ceil(hours / available))
	if maxPerCall > n {
		n = maxPerCall
	}
	return n
}

// serviceEnergy splits the operating hours between the diesel and
// electric boats of a fleet in proportion to their numbers and
// returns the diesel burned and the electricity used to recharge
// the electric boats alongside.
func serviceEnergy(a *Assumptions, params *FleetOpsSpec, hours float64, fleet FleetCount) (liters, kWh float64) {
	total := fleet.Diesel + fleet.Electric
	if total <= 0 {
		return 0, 0
	}
	dieselHours := hours * float64(fleet.Diesel) / float64(total)
	electricHours := hours * float64(fleet.Electric) / float64(total)
	liters = dieselHours * params.FuelLitersPerHour
	// An electric boat delivers the same shaft energy as the
	// diesel engine it replaces.
	kWh = electricHours * params.FuelLitersPerHour * a.DieselEnergyDensity * a.EngineEfficiency
	return liters, kWh
}
