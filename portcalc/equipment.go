package portcalc

import (
	"math"
	"sort"
)

// hoursPerYear holds the number of hours in a (non-leap) year.
const hoursPerYear = 365 * 24

// EquipmentParams holds the inputs to EquipmentModel.
type EquipmentParams struct {
	Diesel   Counts
	Electric Counts
	// CapexEligible holds the units that represent new
	// investment. It is nil for a baseline calculation.
	CapexEligible Counts
	// AnnualTEU holds the annual throughput of the terminal.
	AnnualTEU float64
}

// EquipmentItem holds the result for one type of equipment.
type EquipmentItem struct {
	Key      string
	Name     string
	Category Category
	Basis    Basis

	Diesel        int
	Electric      int
	CapexEligible int

	// DieselHandling and ElectricHandling hold the throughput
	// handled by diesel and electric units respectively.
	DieselHandling   float64
	ElectricHandling float64

	DieselLiters float64
	KWh          float64
	CO2Tons      float64

	FuelCost        float64
	EnergyCost      float64
	MaintenanceCost float64
	Opex            float64
	Capex           float64

	// PeakKW holds the peak grid demand of the electric units
	// after coincidence de-rating. It is only non-zero for
	// grid-powered equipment.
	PeakKW      float64
	Coincidence float64
}

// EquipmentResult holds the result of EquipmentModel.
type EquipmentResult struct {
	Items []EquipmentItem

	DieselLiters float64
	KWh          float64
	CO2Tons      float64
	Opex         float64
	Capex        float64
	PeakKW       float64
}

// EquipmentModel calculates the energy use, emissions and costs of
// a terminal fleet. Equipment types without a spec are ignored.
func EquipmentModel(tables *Tables, a *Assumptions, p EquipmentParams) EquipmentResult {
	keys := make(map[string]bool)
	for k := range p.Diesel {
		keys[k] = true
	}
	for k := range p.Electric {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var r EquipmentResult
	for _, key := range sorted {
		diesel, electric := p.Diesel[key], p.Electric[key]
		if diesel+electric <= 0 {
			continue
		}
		spec, ok := tables.EquipmentSpec(key)
		if !ok {
			continue
		}
		item := equipmentItem(spec, a, diesel, electric, p.CapexEligible[key], p.AnnualTEU)
		r.Items = append(r.Items, item)
		r.DieselLiters += item.DieselLiters
		r.KWh += item.KWh
		r.CO2Tons += item.CO2Tons
		r.Opex += item.Opex
		r.Capex += item.Capex
		r.PeakKW += item.PeakKW
	}
	return r
}

func equipmentItem(spec *EquipmentSpec, a *Assumptions, diesel, electric, eligible int, annualTEU float64) EquipmentItem {
	item := EquipmentItem{
		Key:           spec.Key,
		Name:          spec.Name,
		Category:      spec.Category,
		Basis:         spec.Basis(),
		Diesel:        diesel,
		Electric:      electric,
		CapexEligible: eligible,
	}
	item.DieselHandling, item.ElectricHandling = handling(spec, a, diesel, electric, annualTEU)

	item.DieselLiters = spec.LitersPerTEU * item.DieselHandling
	item.KWh = spec.KWhPerTEU * item.ElectricHandling
	item.CO2Tons = (item.DieselLiters*a.DieselWTW + item.KWh*a.GridEmissionFactor) / 1000

	item.FuelCost = item.DieselLiters * a.DieselPrice
	item.EnergyCost = item.KWh * a.ElectricityPrice
	item.MaintenanceCost = float64(electric)*spec.OpexPerUnit +
		float64(diesel)*a.dieselMaintenanceRate(spec.OpexPerUnit)
	item.Opex = item.FuelCost + item.EnergyCost + item.MaintenanceCost

	item.Capex = spec.CapexPerUnit * float64(eligible)

	if spec.Category == GridPowered && electric > 0 {
		item.Coincidence = Coincidence(spec.Coincidence, electric)
		item.PeakKW = spec.PeakPowerKW * float64(electric) * item.Coincidence
	}
	return item
}

// handling returns the annual throughput handled by the diesel
// and the electric units of a type.
func handling(spec *EquipmentSpec, a *Assumptions, diesel, electric int, annualTEU float64) (dieselHandling, electricHandling float64) {
	switch spec.Basis() {
	case BasisCapacity:
		// The quantity is the throughput.
		return float64(diesel), float64(electric)
	case BasisRated:
		perUnit := spec.MovesPerHour * hoursPerYear * a.UtilizationFactor * a.TEUPerMove
		// Electric units are used first; diesel units only
		// cover what the electric units cannot.
		electricHandling = math.Min(float64(electric)*perUnit, annualTEU)
		dieselHandling = math.Min(float64(diesel)*perUnit, annualTEU-electricHandling)
		return math.Max(dieselHandling, 0), math.Max(electricHandling, 0)
	case BasisShared:
		total := float64(diesel + electric)
		return annualTEU * float64(diesel) / total, annualTEU * float64(electric) / total
	}
	panic("unexpected equipment basis")
}
