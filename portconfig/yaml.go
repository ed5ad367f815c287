// Package portconfig reads the inputs to a port electrification
// calculation: reference tables and requests in YAML form, and economic
// overrides in a simple line-oriented text form.
package portconfig

import (
	"io/ioutil"
	"sort"

	"github.com/juju/loggo"
	"gopkg.in/errgo.v1"
	"gopkg.in/yaml.v2"

	"github.com/rogpeppe/portelec/portcalc"
)

var logger = loggo.GetLogger("portelec.portconfig")

type tablesDoc struct {
	Equipment      []equipmentDoc     `yaml:"equipment"`
	Chargers       []chargerDoc       `yaml:"chargers"`
	FleetOps       []fleetOpsDoc      `yaml:"fleet_ops"`
	GridComponents map[string]float64 `yaml:"grid_components"`
	Assumptions    map[string]float64 `yaml:"assumptions"`
}

type equipmentDoc struct {
	Key             string  `yaml:"key"`
	Name            string  `yaml:"name"`
	Category        string  `yaml:"category"`
	CapexPerUnit    float64 `yaml:"capex_per_unit"`
	OpexPerUnit     float64 `yaml:"opex_per_unit"`
	PeakPowerKW     float64 `yaml:"peak_power_kw"`
	KWhPerTEU       float64 `yaml:"kwh_per_teu"`
	LitersPerTEU    float64 `yaml:"liters_per_teu"`
	ThroughputRatio float64 `yaml:"throughput_ratio"`
	MovesPerHour    float64 `yaml:"moves_per_hour"`
	LifespanYears   float64 `yaml:"lifespan_years"`
	Coincidence     string  `yaml:"coincidence"`
}

type chargerDoc struct {
	Key             string  `yaml:"key"`
	Name            string  `yaml:"name"`
	EquipmentKey    string  `yaml:"equipment_key"`
	PowerKW         float64 `yaml:"power_kw"`
	UnitsPerCharger float64 `yaml:"units_per_charger"`
	Capex           float64 `yaml:"capex"`
	Opex            float64 `yaml:"opex"`
}

type fleetOpsDoc struct {
	Segment           string  `yaml:"segment"`
	OPSPowerMW        float64 `yaml:"ops_power_mw"`
	TransformerCapex  float64 `yaml:"transformer_capex"`
	ConverterCapex    float64 `yaml:"converter_capex"`
	CivilCapex        float64 `yaml:"civil_capex"`
	OPSOpex           float64 `yaml:"ops_opex"`
	DCPowerMW         float64 `yaml:"dc_power_mw"`
	DCCapex           float64 `yaml:"dc_capex"`
	DCOpex            float64 `yaml:"dc_opex"`
	TugsPerCall       float64 `yaml:"tugs_per_call"`
	PilotsPerCall     float64 `yaml:"pilots_per_call"`
	FuelLitersPerHour float64 `yaml:"fuel_liters_per_hour"`
	HoursPerCall      float64 `yaml:"hours_per_call"`
}

// ParseTables parses reference tables in YAML form.
// Unknown fields are errors.
func ParseTables(data []byte) (*portcalc.Tables, error) {
	var doc tablesDoc
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, errgo.Notef(err, "cannot parse tables")
	}
	tables := &portcalc.Tables{
		Assumptions: doc.Assumptions,
	}
	seen := make(map[string]bool)
	for _, e := range doc.Equipment {
		if e.Key == "" {
			return nil, errgo.Newf("equipment %q has no key", e.Name)
		}
		if seen[e.Key] {
			return nil, errgo.Newf("duplicate equipment key %q", e.Key)
		}
		seen[e.Key] = true
		category, err := portcalc.ParseCategory(e.Category)
		if err != nil {
			return nil, errgo.Notef(err, "bad equipment %q", e.Key)
		}
		coincidence, err := portcalc.ParseCoincidenceTable(e.Coincidence)
		if err != nil {
			return nil, errgo.Notef(err, "bad equipment %q", e.Key)
		}
		tables.Equipment = append(tables.Equipment, portcalc.EquipmentSpec{
			Key:             e.Key,
			Name:            e.Name,
			Category:        category,
			CapexPerUnit:    e.CapexPerUnit,
			OpexPerUnit:     e.OpexPerUnit,
			PeakPowerKW:     e.PeakPowerKW,
			KWhPerTEU:       e.KWhPerTEU,
			LitersPerTEU:    e.LitersPerTEU,
			ThroughputRatio: e.ThroughputRatio,
			MovesPerHour:    e.MovesPerHour,
			LifespanYears:   e.LifespanYears,
			Coincidence:     coincidence,
		})
	}
	seen = make(map[string]bool)
	for _, c := range doc.Chargers {
		if seen[c.Key] {
			return nil, errgo.Newf("duplicate charger key %q", c.Key)
		}
		seen[c.Key] = true
		if _, ok := tables.EquipmentSpec(c.EquipmentKey); !ok {
			logger.Warningf("charger %q is for unknown equipment %q", c.Key, c.EquipmentKey)
		}
		tables.Chargers = append(tables.Chargers, portcalc.ChargerSpec(c))
	}
	seen = make(map[string]bool)
	for _, f := range doc.FleetOps {
		if seen[f.Segment] {
			return nil, errgo.Newf("duplicate fleet ops segment %q", f.Segment)
		}
		seen[f.Segment] = true
		tables.FleetOps = append(tables.FleetOps, portcalc.FleetOpsSpec(f))
	}
	keys := make([]string, 0, len(doc.GridComponents))
	for k := range doc.GridComponents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tables.GridComponents = append(tables.GridComponents, portcalc.GridComponentSpec{
			Key:   k,
			Value: doc.GridComponents[k],
		})
	}
	return tables, nil
}

// ParseRequest parses a calculation request in YAML form.
// Unknown fields are errors. The request is not validated.
func ParseRequest(data []byte) (*portcalc.Request, error) {
	var req portcalc.Request
	if err := yaml.UnmarshalStrict(data, &req); err != nil {
		return nil, errgo.Notef(err, "cannot parse request")
	}
	return &req, nil
}

// ReadTables reads reference tables from the named YAML file.
func ReadTables(path string) (*portcalc.Tables, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errgo.Mask(err)
	}
	tables, err := ParseTables(data)
	if err != nil {
		return nil, errgo.Notef(err, "%s", path)
	}
	return tables, nil
}

// ReadRequest reads a calculation request from the named YAML file.
func ReadRequest(path string) (*portcalc.Request, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errgo.Mask(err)
	}
	req, err := ParseRequest(data)
	if err != nil {
		return nil, errgo.Notef(err, "%s", path)
	}
	return req, nil
}

// ReadOverrides reads economic overrides in the form accepted
// by ParseOverrides from the named file.
func ReadOverrides(path string) (map[string]float64, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errgo.Mask(err)
	}
	overrides, err := ParseOverrides(string(data))
	if err != nil {
		return nil, errgo.Notef(err, "%s", path)
	}
	return overrides, nil
}
