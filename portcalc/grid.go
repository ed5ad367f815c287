package portcalc

import (
	"sort"
)

const (
	// defaultDiversityFactor is used when the grid component
	// table has no GridDiversityFactor entry.
	defaultDiversityFactor = 0.8
	// opsGroupFactor de-rates a group of berths sharing an OPS rating.
	opsGroupFactor = 0.8

	growthFactor       = 1.2
	safetyMargin       = 1.2
	civilWorksFraction = 0.25
	selfConsumption    = 0.07

	// Peak demand limits, in MW, of the substation and cable tiers.
	substation11kVLimitMW = 10
	substation33kVLimitMW = 30
	cableLowLimitMW       = 20
)

// GridParams holds the inputs to SizeGrid.
type GridParams struct {
	EquipmentPeakKW float64
	OPSPeakMW       float64
	ChargerPeakKW   float64
	// CableLengthM holds the length of cable to be laid.
	CableLengthM float64
	// AnnualKWh holds the total annual electrical energy
	// handled by the grid connection.
	AnnualKWh float64
}

// GridResult holds the result of SizeGrid.
type GridResult struct {
	EquipmentPeakMW float64
	OPSPeakMW       float64
	ChargerPeakMW   float64
	GrossPeakMW     float64
	DiversityFactor float64
	NetPeakMW       float64
	// TransformerMW holds the transformer rating, allowing for
	// growth and a safety margin.
	TransformerMW float64

	SubstationTier          string
	SubstationCostPerMW     float64
	SubstationMaterialCapex float64
	SubstationCivilCapex    float64

	CableTier     string
	CableCostPerM float64
	CableCapex    float64

	Capex float64
	Opex  float64

	// SelfConsumptionKWh is informational only; it is not
	// included in any cost.
	SelfConsumptionKWh float64
}

// SizeGrid sizes the substation and cabling for the given peak demands
// and calculates the grid connection costs.
func SizeGrid(tables *Tables, p GridParams) GridResult {
	r := GridResult{
		EquipmentPeakMW: p.EquipmentPeakKW / 1000,
		OPSPeakMW:       p.OPSPeakMW,
		ChargerPeakMW:   p.ChargerPeakKW / 1000,
	}
	r.GrossPeakMW = r.EquipmentPeakMW + r.OPSPeakMW + r.ChargerPeakMW
	r.DiversityFactor = 1
	if nonZero(r.EquipmentPeakMW, r.OPSPeakMW, r.ChargerPeakMW) >= 2 {
		r.DiversityFactor = tables.GridComponent(GridDiversityFactor, defaultDiversityFactor)
	}
	r.NetPeakMW = r.GrossPeakMW * r.DiversityFactor
	r.TransformerMW = r.NetPeakMW * growthFactor * safetyMargin
	r.Opex = GridOpex(r.TransformerMW)
	r.SelfConsumptionKWh = p.AnnualKWh * selfConsumption

	var substationKey string
	switch {
	case r.NetPeakMW <= substation11kVLimitMW:
		r.SubstationTier, substationKey = "11kV", GridSubstation11kV
	case r.NetPeakMW <= substation33kVLimitMW:
		r.SubstationTier, substationKey = "33kV", GridSubstation33kV
	default:
		r.SubstationTier, substationKey = "110kV", GridSubstation110kV
	}
	cableKey := GridCableLow
	r.CableTier = "low"
	if r.NetPeakMW > cableLowLimitMW {
		cableKey = GridCableHigh
		r.CableTier = "high"
	}
	r.SubstationCostPerMW = tables.GridComponent(substationKey, 0)
	r.CableCostPerM = tables.GridComponent(cableKey, 0)
	if r.NetPeakMW <= 0 {
		// Nothing to connect.
		return r
	}
	r.SubstationMaterialCapex = r.SubstationCostPerMW * r.TransformerMW
	r.SubstationCivilCapex = r.SubstationMaterialCapex * civilWorksFraction
	r.CableCapex = r.CableCostPerM * p.CableLengthM
	r.Capex = r.SubstationMaterialCapex + r.SubstationCivilCapex + r.CableCapex
	return r
}

// GridOpex returns the annual operating cost of a grid connection
// with the given transformer rating in MW.
func GridOpex(transformerMW float64) float64 {
	// (2*MW + 200) / 1000 million per year.
	return (2*transformerMW + 200) * 1000
}

// OPSPeakMW returns the combined peak demand of berths with the
// given OPS ratings. Berths sharing a rating rarely all supply
// vessels at once, so any group of more than one is de-rated.
func OPSPeakMW(ratings []float64) float64 {
	groups := make(map[float64]int)
	for _, r := range ratings {
		if r > 0 {
			groups[r]++
		}
	}
	sorted := make([]float64, 0, len(groups))
	for r := range groups {
		sorted = append(sorted, r)
	}
	sort.Float64s(sorted)
	total := 0.0
	for _, r := range sorted {
		n := groups[r]
		factor := 1.0
		if n > 1 {
			factor = opsGroupFactor
		}
		total += r * float64(n) * factor
	}
	return total
}

func nonZero(xs ...float64) int {
	n := 0
	for _, x := range xs {
		if x > 0 {
			n++
		}
	}
	return n
}
