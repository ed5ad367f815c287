package portcalc

import (
	"math"
)

// ChargerItem holds the charging infrastructure needed for
// one type of equipment.
type ChargerItem struct {
	Key          string
	Name         string
	EquipmentKey string
	// Units holds the number of equipment units served.
	Units int
	// Required holds the number of chargers the units need.
	Required int
	// Overridden holds whether Final was set manually.
	Overridden bool
	Final      int

	PowerKW float64
	Capex   float64
	Opex    float64

	// Added holds the number of chargers beyond those already
	// installed, and AddedCapex their cost. They are set
	// by AddedChargers.
	Added      int
	AddedCapex float64
}

// ChargerResult holds the result of SizeChargers.
type ChargerResult struct {
	Items []ChargerItem

	Chargers int
	PowerKW  float64
	Capex    float64
	Opex     float64
}

// SizeChargers calculates the chargers needed by the given numbers
// of electric units. An entry in overrides, keyed by charger key,
// replaces the calculated requirement for that charger.
func SizeChargers(tables *Tables, electric Counts, overrides map[string]int) ChargerResult {
	var r ChargerResult
	for _, spec := range tables.Chargers {
		units := electric[spec.EquipmentKey]
		if units <= 0 {
			continue
		}
		item := ChargerItem{
			Key:          spec.Key,
			Name:         spec.Name,
			EquipmentKey: spec.EquipmentKey,
			Units:        units,
			Required:     RequiredChargers(units, spec.UnitsPerCharger),
		}
		item.Final = item.Required
		if n, ok := overrides[spec.Key]; ok {
			item.Final = n
			item.Overridden = true
		}
		item.PowerKW = spec.PowerKW * float64(item.Final)
		item.Capex = spec.Capex * float64(item.Final)
		item.Opex = spec.Opex * float64(item.Final)

		r.Items = append(r.Items, item)
		r.Chargers += item.Final
		r.PowerKW += item.PowerKW
		r.Capex += item.Capex
		r.Opex += item.Opex
	}
	return r
}

// RequiredChargers returns the number of chargers needed by units
// equipment units when unitsPerCharger units share each charger.
// A non-positive sharing ratio means one charger per unit.
func RequiredChargers(units int, unitsPerCharger float64) int {
	if unitsPerCharger <= 0 {
		return units
	}
	return int(math.Ceil(float64(units) / unitsPerCharger))
}

// AddedChargers sets Added and AddedCapex on each item of r from the
// chargers already installed in installed, and returns the total
// cost of the added chargers.
func AddedChargers(installed, r *ChargerResult) float64 {
	have := make(map[string]int)
	for _, item := range installed.Items {
		have[item.Key] = item.Final
	}
	total := 0.0
	for i := range r.Items {
		item := &r.Items[i]
		item.Added = item.Final - have[item.Key]
		if item.Added <= 0 {
			item.Added, item.AddedCapex = 0, 0
			continue
		}
		item.AddedCapex = item.Capex / float64(item.Final) * float64(item.Added)
		total += item.AddedCapex
	}
	return total
}
