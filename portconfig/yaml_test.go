package portconfig_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/portelec/portcalc"
	"github.com/rogpeppe/portelec/portconfig"
)

const testTablesYAML = `
equipment:
- key: tractor
  name: Terminal tractor
  category: battery_powered
  capex_per_unit: 500000
  opex_per_unit: 30000
  kwh_per_teu: 2
  liters_per_teu: 2.2
  throughput_ratio: 1
  lifespan_years: 15
- key: rtg
  name: E-RTG
  category: grid_powered
  peak_power_kw: 400
  throughput_ratio: 1
  moves_per_hour: 20
  coincidence: sparse
chargers:
- key: tractor_charger
  name: Tractor charger
  equipment_key: tractor
  power_kw: 150
  units_per_charger: 3
  capex: 200000
  opex: 5000
fleet_ops:
- segment: container_large
  ops_power_mw: 5
  transformer_capex: 1000000
  converter_capex: 2000000
  civil_capex: 500000
  ops_opex: 50000
  dc_power_mw: 2
  dc_capex: 800000
  dc_opex: 20000
  tugs_per_call: 2
  pilots_per_call: 1
- segment: tug
  fuel_liters_per_hour: 200
  hours_per_call: 3
grid_components:
  substation_33kv: 150000
  cable_low: 1000
  substation_11kv: 200000
assumptions:
  diesel_price: 1.4
`

func TestParseTables(t *testing.T) {
	c := qt.New(t)
	tables, err := portconfig.ParseTables([]byte(testTablesYAML))
	c.Assert(err, qt.IsNil)
	c.Assert(tables, qt.DeepEquals, &portcalc.Tables{
		Equipment: []portcalc.EquipmentSpec{{
			Key:             "tractor",
			Name:            "Terminal tractor",
			Category:        portcalc.BatteryPowered,
			CapexPerUnit:    500000,
			OpexPerUnit:     30000,
			KWhPerTEU:       2,
			LitersPerTEU:    2.2,
			ThroughputRatio: 1,
			LifespanYears:   15,
		}, {
			Key:             "rtg",
			Name:            "E-RTG",
			Category:        portcalc.GridPowered,
			PeakPowerKW:     400,
			ThroughputRatio: 1,
			MovesPerHour:    20,
			Coincidence:     portcalc.CoincidenceSparse,
		}},
		Chargers: []portcalc.ChargerSpec{{
			Key:             "tractor_charger",
			Name:            "Tractor charger",
			EquipmentKey:    "tractor",
			PowerKW:         150,
			UnitsPerCharger: 3,
			Capex:           200000,
			Opex:            5000,
		}},
		FleetOps: []portcalc.FleetOpsSpec{{
			Segment:          "container_large",
			OPSPowerMW:       5,
			TransformerCapex: 1000000,
			ConverterCapex:   2000000,
			CivilCapex:       500000,
			OPSOpex:          50000,
			DCPowerMW:        2,
			DCCapex:          800000,
			DCOpex:           20000,
			TugsPerCall:      2,
			PilotsPerCall:    1,
		}, {
			Segment:           "tug",
			FuelLitersPerHour: 200,
			HoursPerCall:      3,
		}},
		GridComponents: []portcalc.GridComponentSpec{
			{Key: "cable_low", Value: 1000},
			{Key: "substation_11kv", Value: 200000},
			{Key: "substation_33kv", Value: 150000},
		},
		Assumptions: map[string]float64{
			"diesel_price": 1.4,
		},
	})
}

var parseTablesErrorTests = []struct {
	testName    string
	yaml        string
	expectError string
}{{
	testName: "unknown-field",
	yaml: `
equipment:
- key: tractor
  category: battery_powered
  capex: 100
`,
	expectError: `(?s)cannot parse tables: .*field capex not found.*`,
}, {
	testName: "unknown-category",
	yaml: `
equipment:
- key: tractor
  category: steam_powered
`,
	expectError: `bad equipment "tractor": unknown equipment category "steam_powered"`,
}, {
	testName: "unknown-coincidence",
	yaml: `
equipment:
- key: rtg
  category: grid_powered
  coincidence: dense
`,
	expectError: `bad equipment "rtg": unknown coincidence table "dense"`,
}, {
	testName: "missing-key",
	yaml: `
equipment:
- name: Crane
  category: grid_powered
`,
	expectError: `equipment "Crane" has no key`,
}, {
	testName: "duplicate-equipment",
	yaml: `
equipment:
- key: rtg
  category: grid_powered
- key: rtg
  category: grid_powered
`,
	expectError: `duplicate equipment key "rtg"`,
}, {
	testName: "duplicate-segment",
	yaml: `
fleet_ops:
- segment: feeder
- segment: feeder
`,
	expectError: `duplicate fleet ops segment "feeder"`,
}}

func TestParseTablesError(t *testing.T) {
	c := qt.New(t)
	for _, test := range parseTablesErrorTests {
		c.Run(test.testName, func(c *qt.C) {
			tables, err := portconfig.ParseTables([]byte(test.yaml))
			c.Assert(err, qt.ErrorMatches, test.expectError)
			c.Assert(tables, qt.IsNil)
		})
	}
}

const testRequestYAML = `
port_id: p1
port_name: Test port
terminals:
- id: t1
  name: East
  annual_teu: 100000
  equipment:
    tractor: {diesel: 10, electric: 2}
    rtg: {electric: 4}
  berths:
  - id: b1
    design_segment: container_large
    existing_ops: true
    calls:
    - segment: container_large
      annual_calls: 100
      avg_berth_hours: 20
  scenario:
    equipment:
      tractor: {convert: 6, add: 1}
    berths:
      b1: {dc: true}
    charger_overrides:
      tractor_charger: 4
    cable_length_m: 500
services:
  tugs: {diesel: 3, convert: 1}
  pilots: {diesel: 2, electric: 1, add: 1}
overrides:
  electricity_price: 0.1
`

func TestParseRequest(t *testing.T) {
	c := qt.New(t)
	req, err := portconfig.ParseRequest([]byte(testRequestYAML))
	c.Assert(err, qt.IsNil)
	c.Assert(req, qt.DeepEquals, &portcalc.Request{
		PortID:   "p1",
		PortName: "Test port",
		Terminals: []portcalc.TerminalConfig{{
			ID:        "t1",
			Name:      "East",
			AnnualTEU: 100000,
			Equipment: map[string]portcalc.FleetCount{
				"tractor": {Diesel: 10, Electric: 2},
				"rtg":     {Electric: 4},
			},
			Berths: []portcalc.Berth{{
				ID:            "b1",
				DesignSegment: "container_large",
				ExistingOPS:   true,
				Calls: []portcalc.VesselCall{{
					Segment:       "container_large",
					AnnualCalls:   100,
					AvgBerthHours: 20,
				}},
			}},
			Scenario: portcalc.TerminalScenario{
				Equipment: map[string]portcalc.FleetChange{
					"tractor": {Convert: 6, Add: 1},
				},
				Berths: map[string]portcalc.BerthToggle{
					"b1": {DC: true},
				},
				ChargerOverrides: map[string]int{
					"tractor_charger": 4,
				},
				CableLengthM: 500,
			},
		}},
		Services: &portcalc.ServicesConfig{
			Tugs:   portcalc.ServiceFleet{Diesel: 3, Convert: 1},
			Pilots: portcalc.ServiceFleet{Diesel: 2, Electric: 1, Add: 1},
		},
		Overrides: map[string]float64{
			"electricity_price": 0.1,
		},
	})
}

func TestParseRequestUnknownField(t *testing.T) {
	c := qt.New(t)
	req, err := portconfig.ParseRequest([]byte("port_id: p1\nterminal: []\n"))
	c.Assert(err, qt.ErrorMatches, `(?s)cannot parse request: .*field terminal not found.*`)
	c.Assert(req, qt.IsNil)
}

func TestReadFiles(t *testing.T) {
	c := qt.New(t)
	dir, err := ioutil.TempDir("", "portconfig")
	c.Assert(err, qt.IsNil)
	defer os.RemoveAll(dir)
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		err := ioutil.WriteFile(path, []byte(data), 0666)
		c.Assert(err, qt.IsNil)
		return path
	}
	tables, err := portconfig.ReadTables(write("tables.yaml", testTablesYAML))
	c.Assert(err, qt.IsNil)
	c.Assert(len(tables.Equipment), qt.Equals, 2)

	req, err := portconfig.ReadRequest(write("request.yaml", testRequestYAML))
	c.Assert(err, qt.IsNil)
	c.Assert(req.PortID, qt.Equals, "p1")

	overrides, err := portconfig.ReadOverrides(write("overrides.txt", "diesel price is 1.5\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(overrides, qt.DeepEquals, map[string]float64{"diesel_price": 1.5})

	path := write("bad.txt", "diesel price is lots\n")
	_, err = portconfig.ReadOverrides(path)
	c.Assert(err, qt.ErrorMatches, `.*bad\.txt: error at "lots": invalid number`)

	_, err = portconfig.ReadTables(filepath.Join(dir, "nonexistent.yaml"))
	c.Assert(err, qt.ErrorMatches, `open .*nonexistent\.yaml: no such file or directory`)
}
