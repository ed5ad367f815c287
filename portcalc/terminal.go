package portcalc

import (
	"math"
)

// Totals holds the annual energy, emissions and operating cost
// of a configuration.
type Totals struct {
	DieselLiters float64
	KWh          float64
	CO2Tons      float64
	Opex         float64
}

func (t Totals) add(t1 Totals) Totals {
	return Totals{
		DieselLiters: t.DieselLiters + t1.DieselLiters,
		KWh:          t.KWh + t1.KWh,
		CO2Tons:      t.CO2Tons + t1.CO2Tons,
		Opex:         t.Opex + t1.Opex,
	}
}

// CapexBreakdown holds investment costs by category.
type CapexBreakdown struct {
	Equipment float64
	Chargers  float64
	OPS       float64
	DC        float64
	Grid      float64
	Services  float64
}

// Total returns the sum of all categories.
func (c CapexBreakdown) Total() float64 {
	return c.Equipment + c.Chargers + c.OPS + c.DC + c.Grid + c.Services
}

func (c CapexBreakdown) add(c1 CapexBreakdown) CapexBreakdown {
	return CapexBreakdown{
		Equipment: c.Equipment + c1.Equipment,
		Chargers:  c.Chargers + c1.Chargers,
		OPS:       c.OPS + c1.OPS,
		DC:        c.DC + c1.DC,
		Grid:      c.Grid + c1.Grid,
		Services:  c.Services + c1.Services,
	}
}

// TerminalResult holds the calculation result for a terminal.
type TerminalResult struct {
	ID   string
	Name string

	BaselineEquipment EquipmentResult
	ScenarioEquipment EquipmentResult
	// BaselineChargers holds the chargers already serving
	// the baseline electric fleet. Only chargers beyond these
	// are charged as CAPEX.
	BaselineChargers ChargerResult
	Chargers         ChargerResult
	Berths           BerthResult
	// BaselineGrid is the existing connection, sized on the
	// baseline demand. The scenario pays only the grid OPEX and
	// CAPEX in excess of it.
	BaselineGrid GridResult
	Grid         GridResult

	Baseline Totals
	Scenario Totals
	Capex    CapexBreakdown

	OpexSavings float64
	CO2Savings  float64
	// GridOpexIncrease holds the extra annual cost of the larger
	// grid connection.
	GridOpexIncrease float64
}

// AggregateTerminal runs all the terminal-level models over the
// resolved terminal and combines their results.
func AggregateTerminal(tables *Tables, a *Assumptions, p *TerminalPlan) TerminalResult {
	r := TerminalResult{
		ID:   p.ID,
		Name: p.Name,
		BaselineEquipment: EquipmentModel(tables, a, EquipmentParams{
			Diesel:    p.BaselineDiesel,
			Electric:  p.BaselineElectric,
			AnnualTEU: p.AnnualTEU,
		}),
		ScenarioEquipment: EquipmentModel(tables, a, EquipmentParams{
			Diesel:        p.ScenarioDiesel,
			Electric:      p.ScenarioElectric,
			CapexEligible: p.CapexEligible,
			AnnualTEU:     p.AnnualTEU,
		}),
		BaselineChargers: SizeChargers(tables, batteryUnits(tables, p.BaselineElectric), nil),
		Chargers:         SizeChargers(tables, batteryUnits(tables, p.ScenarioElectric), p.ChargerOverrides),
		Berths:           BerthPower(tables, a, p.Berths),
	}
	var baselineRatings, scenarioRatings []float64
	for i, b := range p.Berths {
		if b.ExistingOPS {
			if design, ok := tables.Segment(b.DesignSegment); ok {
				baselineRatings = append(baselineRatings, design.OPSPowerMW)
			}
		}
		if b.OPS {
			scenarioRatings = append(scenarioRatings, r.Berths.Berths[i].OPSPowerMW)
		}
	}
	r.BaselineGrid = SizeGrid(tables, GridParams{
		EquipmentPeakKW: r.BaselineEquipment.PeakKW,
		OPSPeakMW:       OPSPeakMW(baselineRatings),
		ChargerPeakKW:   r.BaselineChargers.PowerKW,
		CableLengthM:    p.CableLengthM,
		AnnualKWh:       r.BaselineEquipment.KWh,
	})
	r.Grid = SizeGrid(tables, GridParams{
		EquipmentPeakKW: r.ScenarioEquipment.PeakKW,
		OPSPeakMW:       OPSPeakMW(scenarioRatings),
		ChargerPeakKW:   r.Chargers.PowerKW,
		CableLengthM:    p.CableLengthM,
		AnnualKWh:       r.ScenarioEquipment.KWh + r.Berths.GridKWh,
	})

	r.Baseline = Totals{
		DieselLiters: r.BaselineEquipment.DieselLiters,
		KWh:          r.BaselineEquipment.KWh,
		CO2Tons:      r.BaselineEquipment.CO2Tons + r.Berths.BaselineCO2Tons,
		Opex: r.BaselineEquipment.Opex +
			r.BaselineChargers.Opex +
			r.Berths.BaselineOpex +
			r.BaselineGrid.Opex,
	}
	// The energy cost of vessels at berth is paid by the vessel
	// operator, so it is not part of the terminal's OPEX.
	r.Scenario = Totals{
		DieselLiters: r.ScenarioEquipment.DieselLiters,
		KWh:          r.ScenarioEquipment.KWh + r.Berths.GridKWh,
		CO2Tons:      r.ScenarioEquipment.CO2Tons + r.Berths.ScenarioCO2Tons,
		Opex: r.ScenarioEquipment.Opex +
			r.Chargers.Opex +
			r.Berths.ScenarioOpex +
			r.Grid.Opex,
	}
	r.Capex = CapexBreakdown{
		Equipment: r.ScenarioEquipment.Capex,
		Chargers:  AddedChargers(&r.BaselineChargers, &r.Chargers),
		OPS:       r.Berths.OPSCapex,
		DC:        r.Berths.DCCapex,
		Grid:      math.Max(r.Grid.Capex-r.BaselineGrid.Capex, 0),
	}
	r.OpexSavings = r.Baseline.Opex - r.Scenario.Opex
	r.CO2Savings = r.Baseline.CO2Tons - r.Scenario.CO2Tons
	r.GridOpexIncrease = r.Grid.Opex - r.BaselineGrid.Opex
	logger.Tracef("terminal %q: baseline %+v scenario %+v capex %v", p.ID, r.Baseline, r.Scenario, r.Capex.Total())
	return r
}

// batteryUnits returns the counts restricted to battery-powered
// equipment, the only kind that uses chargers.
func batteryUnits(tables *Tables, counts Counts) Counts {
	r := make(Counts)
	for k, n := range counts {
		if spec, ok := tables.EquipmentSpec(k); ok && spec.Category == BatteryPowered {
			r[k] = n
		}
	}
	return r
}
