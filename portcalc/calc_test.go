package portcalc_test

import (
	"fmt"
	"reflect"
	"testing"

	qt "github.com/frankban/quicktest"
	"gopkg.in/errgo.v1"

	"github.com/rogpeppe/portelec/portcalc"
)

var testRequest = &portcalc.Request{
	PortID:   "p1",
	PortName: "Test port",
	Terminals: []portcalc.TerminalConfig{{
		ID:        "t1",
		Name:      "Container terminal",
		AnnualTEU: 100000,
		Equipment: map[string]portcalc.FleetCount{
			"tractor": {Diesel: 4},
			"rtg":     {Electric: 2},
		},
		Berths: []portcalc.Berth{{
			ID:            "b1",
			DesignSegment: "container_large",
			Calls: []portcalc.VesselCall{{
				Segment:       "container_large",
				AnnualCalls:   100,
				AvgBerthHours: 20,
			}},
		}},
		Scenario: portcalc.TerminalScenario{
			Equipment: map[string]portcalc.FleetChange{
				"tractor": {Convert: 4},
			},
			Berths: map[string]portcalc.BerthToggle{
				"b1": {OPS: true},
			},
			CableLengthM: 100,
		},
	}, {
		ID:        "t2",
		Name:      "Feeder terminal",
		AnnualTEU: 20000,
		Berths: []portcalc.Berth{{
			ID:            "b1",
			DesignSegment: "feeder",
			Calls: []portcalc.VesselCall{{
				Segment:       "feeder",
				AnnualCalls:   200,
				AvgBerthHours: 10,
			}},
		}},
	}},
	Services: &portcalc.ServicesConfig{
		Tugs:   portcalc.ServiceFleet{Diesel: 2, Convert: 1},
		Pilots: portcalc.ServiceFleet{Diesel: 1},
	},
	Overrides: map[string]float64{
		portcalc.KeyElectricityPrice: 0.1,
	},
}

func TestCalculate(t *testing.T) {
	c := qt.New(t)
	r, err := portcalc.Calculate(testTables, testRequest)
	c.Assert(err, qt.IsNil)
	c.Assert(r.PortID, qt.Equals, "p1")
	c.Assert(r.PortName, qt.Equals, "Test port")
	c.Assert(len(r.Terminals), qt.Equals, 2)
	c.Assert(r.Terminals[0].ID, qt.Equals, "t1")
	c.Assert(r.Terminals[1].ID, qt.Equals, "t2")
	c.Assert(r.Assumptions[portcalc.KeyElectricityPrice], qt.Equals, 0.1)
	c.Assert(r.Assumptions[portcalc.KeyDieselPrice], qt.Equals, 1.23)

	// Tugs serve the calls at every terminal: 100 calls needing
	// two tugs and 200 calls needing one.
	c.Assert(r.Services == nil, qt.Equals, false)
	c.Assert(r.Services.Tugs.Trips, qt.Equals, 400.0)
	c.Assert(r.Services.Pilots.Trips, qt.Equals, 300.0)

	var baseline, scenario portcalc.Totals
	var capex float64
	for _, tr := range r.Terminals {
		baseline.CO2Tons += tr.Baseline.CO2Tons
		baseline.Opex += tr.Baseline.Opex
		scenario.CO2Tons += tr.Scenario.CO2Tons
		scenario.Opex += tr.Scenario.Opex
		capex += tr.Capex.Total()
	}
	c.Assert(r.Baseline.CO2Tons, approxEquals, baseline.CO2Tons+r.Services.BaselineCO2Tons)
	c.Assert(r.Baseline.Opex, approxEquals, baseline.Opex+r.Services.BaselineOpex)
	c.Assert(r.Scenario.CO2Tons, approxEquals, scenario.CO2Tons+r.Services.ScenarioCO2Tons)
	c.Assert(r.Scenario.Opex, approxEquals, scenario.Opex+r.Services.ScenarioOpex)
	c.Assert(r.Capex.Total(), approxEquals, capex+r.Services.Capex)
	c.Assert(r.Capex.Services, qt.Equals, 1000000.0)
	c.Assert(r.CO2Savings, approxEquals, r.Baseline.CO2Tons-r.Scenario.CO2Tons)
	c.Assert(r.OpexSavings, approxEquals, r.Baseline.Opex-r.Scenario.Opex)
	if r.OpexSavings > 0 {
		c.Assert(*r.SimplePaybackYears, approxEquals, r.Capex.Total()/r.OpexSavings)
	} else {
		c.Assert(r.SimplePaybackYears, qt.IsNil)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	c := qt.New(t)
	r0, err := portcalc.Calculate(testTables, testRequest)
	c.Assert(err, qt.IsNil)
	for i := 0; i < 5; i++ {
		r1, err := portcalc.Calculate(testTables, testRequest)
		c.Assert(err, qt.IsNil)
		c.Assert(r1, qt.DeepEquals, r0)
	}
}

func TestCalculateWithoutServices(t *testing.T) {
	c := qt.New(t)
	req := *testRequest
	req.Services = nil
	r, err := portcalc.Calculate(testTables, &req)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Services, qt.IsNil)
	c.Assert(r.Capex.Services, qt.Equals, 0.0)
}

func TestCalculateNilTables(t *testing.T) {
	c := qt.New(t)
	r, err := portcalc.Calculate(nil, testRequest)
	c.Assert(err, qt.IsNil)
	c.Assert(r.Capex.Total(), qt.Equals, 0.0)
	c.Assert(r.Baseline.DieselLiters, qt.Equals, 0.0)
	// With no tables there is no demand, but the grid connection
	// of each terminal still has its fixed operating cost.
	c.Assert(r.Baseline.Opex, qt.Equals, 400000.0)
	c.Assert(r.Scenario.Opex, qt.Equals, 400000.0)
	c.Assert(r.SimplePaybackYears, qt.IsNil)
}

func TestCalculateInvalidRequest(t *testing.T) {
	c := qt.New(t)
	r, err := portcalc.Calculate(testTables, &portcalc.Request{
		Terminals: []portcalc.TerminalConfig{{
			ID:        "t1",
			AnnualTEU: -100,
		}},
	})
	c.Assert(err, qt.ErrorMatches, `terminal t1 annual TEU is negative \(-100\)`)
	c.Assert(errgo.Cause(err), qt.Equals, portcalc.ErrInvalidRequest)
	c.Assert(r, qt.IsNil)
}

// mixedTables adds a type with a known handling rate to testTables,
// so that every throughput basis is represented.
var mixedTables = func() *portcalc.Tables {
	t := *testTables
	t.Equipment = append([]portcalc.EquipmentSpec{{
		Key:             "straddle",
		Name:            "Straddle carrier",
		Category:        portcalc.BatteryPowered,
		CapexPerUnit:    900000,
		OpexPerUnit:     40000,
		KWhPerTEU:       4,
		LitersPerTEU:    3,
		ThroughputRatio: 1,
		MovesPerHour:    20,
	}}, testTables.Equipment...)
	return &t
}()

var mixedFleetTests = []struct {
	testName string
	terminal portcalc.TerminalConfig
	services *portcalc.ServicesConfig
}{{
	testName: "over-requested-conversions",
	terminal: portcalc.TerminalConfig{
		AnnualTEU: 500000,
		Equipment: map[string]portcalc.FleetCount{
			"tractor":  {Diesel: 3, Electric: 1},
			"rtg":      {Diesel: 5, Electric: 1},
			"reefer":   {Electric: 200},
			"straddle": {Diesel: 2},
		},
		Berths: []portcalc.Berth{{
			ID:            "b1",
			DesignSegment: "container_large",
			Calls: []portcalc.VesselCall{{
				Segment:       "container_large",
				AnnualCalls:   150,
				AvgBerthHours: 30,
			}, {
				Segment:       "feeder",
				AnnualCalls:   80,
				AvgBerthHours: 12,
			}},
		}},
		Scenario: portcalc.TerminalScenario{
			Equipment: map[string]portcalc.FleetChange{
				"tractor":  {Convert: 10, Add: 2},
				"rtg":      {Convert: 9, Add: 1},
				"reefer":   {Add: 50},
				"straddle": {Convert: 5, Add: 1},
			},
			Berths: map[string]portcalc.BerthToggle{
				"b1": {OPS: true, DC: true},
			},
			CableLengthM: 1500,
		},
	},
	services: &portcalc.ServicesConfig{
		Tugs:   portcalc.ServiceFleet{Diesel: 2, Convert: 5, Add: 1},
		Pilots: portcalc.ServiceFleet{Electric: 1, Add: 1},
	},
}, {
	testName: "no-throughput",
	terminal: portcalc.TerminalConfig{
		Equipment: map[string]portcalc.FleetCount{
			"tractor":  {Diesel: 4},
			"straddle": {Diesel: 1, Electric: 1},
		},
		Scenario: portcalc.TerminalScenario{
			Equipment: map[string]portcalc.FleetChange{
				"tractor":  {Convert: 2},
				"straddle": {Convert: 3},
			},
		},
	},
}, {
	testName: "rated-fleet-exceeds-throughput",
	terminal: portcalc.TerminalConfig{
		AnnualTEU: 1000,
		Equipment: map[string]portcalc.FleetCount{
			"straddle": {Diesel: 20, Electric: 20},
		},
		Scenario: portcalc.TerminalScenario{
			Equipment: map[string]portcalc.FleetChange{
				"straddle": {Convert: 25, Add: 5},
			},
			ChargerOverrides: map[string]int{"tractor_charger": 3},
		},
	},
	services: &portcalc.ServicesConfig{},
}, {
	testName: "existing-infrastructure",
	terminal: portcalc.TerminalConfig{
		AnnualTEU: 80000,
		Equipment: map[string]portcalc.FleetCount{
			"tractor": {Electric: 6},
			"rtg":     {Electric: 12},
		},
		Berths: []portcalc.Berth{{
			ID:            "b1",
			DesignSegment: "feeder",
			ExistingOPS:   true,
			ExistingDC:    true,
			Calls: []portcalc.VesselCall{{
				Segment:       "feeder",
				AnnualCalls:   300,
				AvgBerthHours: 8,
			}},
		}},
	},
}}

// signedFields holds the result fields that may legitimately be
// negative because they compare baseline and scenario.
var signedFields = map[string]bool{
	"OpexSavings":         true,
	"CO2Savings":          true,
	"GridOpexIncrease":    true,
	"CO2ReductionPercent": true,
}

// assertNonNegative checks that every number reachable from v,
// apart from those in signedFields, is non-negative.
func assertNonNegative(c *qt.C, path string, v reflect.Value) {
	switch v.Kind() {
	case reflect.Float64:
		c.Assert(v.Float() >= 0, qt.Equals, true, qt.Commentf("%s is %v", path, v.Float()))
	case reflect.Int:
		c.Assert(v.Int() >= 0, qt.Equals, true, qt.Commentf("%s is %v", path, v.Int()))
	case reflect.Ptr:
		if !v.IsNil() {
			assertNonNegative(c, path, v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			name := v.Type().Field(i).Name
			if !signedFields[name] {
				assertNonNegative(c, path+"."+name, v.Field(i))
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			assertNonNegative(c, fmt.Sprintf("%s[%d]", path, i), v.Index(i))
		}
	case reflect.Map:
		for _, k := range v.MapKeys() {
			assertNonNegative(c, fmt.Sprintf("%s[%v]", path, k), v.MapIndex(k))
		}
	}
}

func TestCalculateBounds(t *testing.T) {
	c := qt.New(t)
	for _, test := range mixedFleetTests {
		c.Run(test.testName, func(c *qt.C) {
			terminal := test.terminal
			terminal.ID = "t1"
			r, err := portcalc.Calculate(mixedTables, &portcalc.Request{
				PortID:    "p1",
				Terminals: []portcalc.TerminalConfig{terminal},
				Services:  test.services,
			})
			c.Assert(err, qt.IsNil)
			assertNonNegative(c, "result", reflect.ValueOf(r))

			// No more CAPEX than the units actually converted
			// or added.
			tr := r.Terminals[0]
			limit := 0.0
			for _, item := range tr.ScenarioEquipment.Items {
				spec, ok := mixedTables.EquipmentSpec(item.Key)
				c.Assert(ok, qt.Equals, true)
				base := terminal.Equipment[item.Key]
				change := terminal.Scenario.Equipment[item.Key]
				itemLimit := spec.CapexPerUnit * float64(portcalc.ConvertedUnits(base.Diesel, change.Convert)+change.Add)
				c.Assert(item.Capex <= itemLimit, qt.Equals, true, qt.Commentf("%s capex %v limit %v", item.Key, item.Capex, itemLimit))
				limit += itemLimit
			}
			c.Assert(tr.Capex.Equipment <= limit, qt.Equals, true, qt.Commentf("capex %v limit %v", tr.Capex.Equipment, limit))
		})
	}
}
