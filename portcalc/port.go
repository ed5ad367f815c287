package portcalc

// PortResult holds the result of a calculation over a whole port.
type PortResult struct {
	PortID   string
	PortName string

	Terminals []TerminalResult
	// Services holds the port services result, or nil if the
	// port services were not modelled.
	Services *ServicesResult

	Baseline Totals
	Scenario Totals
	Capex    CapexBreakdown

	CO2Savings float64
	// CO2ReductionPercent is zero when there are no baseline emissions.
	CO2ReductionPercent float64
	OpexSavings         float64
	// SimplePaybackYears is nil when the scenario saves nothing.
	SimplePaybackYears *float64

	// Assumptions holds the economic assumptions actually used.
	Assumptions map[string]float64
}

// AggregatePort combines terminal results and the optional port
// services result into port totals.
func AggregatePort(portID, portName string, terminals []TerminalResult, services *ServicesResult) PortResult {
	r := PortResult{
		PortID:    portID,
		PortName:  portName,
		Terminals: terminals,
		Services:  services,
	}
	for _, t := range terminals {
		r.Baseline = r.Baseline.add(t.Baseline)
		r.Scenario = r.Scenario.add(t.Scenario)
		r.Capex = r.Capex.add(t.Capex)
	}
	if services != nil {
		r.Baseline = r.Baseline.add(Totals{
			DieselLiters: services.BaselineLiters,
			KWh:          services.BaselineKWh,
			CO2Tons:      services.BaselineCO2Tons,
			Opex:         services.BaselineOpex,
		})
		r.Scenario = r.Scenario.add(Totals{
			DieselLiters: services.ScenarioLiters,
			KWh:          services.ScenarioKWh,
			CO2Tons:      services.ScenarioCO2Tons,
			Opex:         services.ScenarioOpex,
		})
		r.Capex.Services += services.Capex
	}
	r.CO2Savings = r.Baseline.CO2Tons - r.Scenario.CO2Tons
	r.CO2ReductionPercent = ReductionPercent(r.CO2Savings, r.Baseline.CO2Tons)
	r.OpexSavings = r.Baseline.Opex - r.Scenario.Opex
	if years, ok := SimplePayback(r.Capex.Total(), r.OpexSavings); ok {
		r.SimplePaybackYears = &years
	}
	return r
}

// ReductionPercent returns saved as a percentage of baseline,
// or zero if baseline is zero.
func ReductionPercent(saved, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return saved / baseline * 100
}

// SimplePayback returns the number of years of savings needed to
// recover capex. It returns false if there are no savings.
func SimplePayback(capex, annualSavings float64) (float64, bool) {
	if annualSavings <= 0 {
		return 0, false
	}
	return capex / annualSavings, true
}
