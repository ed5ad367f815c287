package portcalc_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/portelec/portcalc"
)

var simplePaybackTests = []struct {
	testName string
	capex    float64
	savings  float64
	expect   float64
	expectOK bool
}{{
	testName: "five-years",
	capex:    10000000,
	savings:  2000000,
	expect:   5,
	expectOK: true,
}, {
	testName: "no-savings",
	capex:    10000000,
}, {
	testName: "costs-more",
	capex:    10000000,
	savings:  -1000,
}, {
	testName: "no-investment",
	savings:  1000,
	expect:   0,
	expectOK: true,
}}

func TestSimplePayback(t *testing.T) {
	c := qt.New(t)
	for _, test := range simplePaybackTests {
		c.Run(test.testName, func(c *qt.C) {
			years, ok := portcalc.SimplePayback(test.capex, test.savings)
			c.Assert(ok, qt.Equals, test.expectOK)
			c.Assert(years, qt.Equals, test.expect)
		})
	}
}

func TestReductionPercent(t *testing.T) {
	c := qt.New(t)
	c.Assert(portcalc.ReductionPercent(25, 100), qt.Equals, 25.0)
	c.Assert(portcalc.ReductionPercent(0, 0), qt.Equals, 0.0)
	c.Assert(portcalc.ReductionPercent(-10, 100), qt.Equals, -10.0)
}

func TestAggregatePort(t *testing.T) {
	c := qt.New(t)
	terminals := []portcalc.TerminalResult{{
		ID:       "t1",
		Baseline: portcalc.Totals{DieselLiters: 100, CO2Tons: 50, Opex: 3000000},
		Scenario: portcalc.Totals{KWh: 400, CO2Tons: 10, Opex: 1500000},
		Capex:    portcalc.CapexBreakdown{Equipment: 4000000, Grid: 1000000},
	}, {
		ID:       "t2",
		Baseline: portcalc.Totals{DieselLiters: 50, CO2Tons: 50, Opex: 1000000},
		Scenario: portcalc.Totals{DieselLiters: 50, CO2Tons: 40, Opex: 1000000},
		Capex:    portcalc.CapexBreakdown{OPS: 3000000, DC: 1000000},
	}}
	services := &portcalc.ServicesResult{
		BaselineLiters:  20,
		BaselineCO2Tons: 20,
		BaselineOpex:    500000,
		ScenarioKWh:     60,
		ScenarioOpex:    0,
		Capex:           1000000,
	}
	r := portcalc.AggregatePort("p1", "Port", terminals, services)
	c.Assert(r.Baseline, qt.Equals, portcalc.Totals{
		DieselLiters: 170,
		CO2Tons:      120,
		Opex:         4500000,
	})
	c.Assert(r.Scenario, qt.Equals, portcalc.Totals{
		DieselLiters: 50,
		KWh:          460,
		CO2Tons:      50,
		Opex:         2500000,
	})
	c.Assert(r.Capex, qt.Equals, portcalc.CapexBreakdown{
		Equipment: 4000000,
		OPS:       3000000,
		DC:        1000000,
		Grid:      1000000,
		Services:  1000000,
	})
	c.Assert(r.Capex.Total(), qt.Equals, 10000000.0)
	c.Assert(r.OpexSavings, qt.Equals, 2000000.0)
	c.Assert(r.CO2Savings, qt.Equals, 70.0)
	c.Assert(r.CO2ReductionPercent, approxEquals, 70.0/120*100)
	c.Assert(r.SimplePaybackYears == nil, qt.Equals, false)
	c.Assert(*r.SimplePaybackYears, qt.Equals, 5.0)
}

func TestAggregatePortNoSavings(t *testing.T) {
	c := qt.New(t)
	r := portcalc.AggregatePort("p1", "", []portcalc.TerminalResult{{
		Baseline: portcalc.Totals{Opex: 100},
		Scenario: portcalc.Totals{Opex: 100},
		Capex:    portcalc.CapexBreakdown{Chargers: 5000},
	}}, nil)
	c.Assert(r.OpexSavings, qt.Equals, 0.0)
	c.Assert(r.SimplePaybackYears, qt.IsNil)
	c.Assert(r.CO2ReductionPercent, qt.Equals, 0.0)
	c.Assert(r.Services, qt.IsNil)
}
