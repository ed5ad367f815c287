package portcalc

import (
	"fmt"
	"math"
	"sort"

	"gopkg.in/errgo.v1"
)

// ErrInvalidRequest is the cause of all errors returned by
// Request.Validate.
var ErrInvalidRequest = errgo.New("invalid request")

// Request holds everything needed to run a calculation
// over a port.
type Request struct {
	PortID    string           `yaml:"port_id"`
	PortName  string           `yaml:"port_name"`
	Terminals []TerminalConfig `yaml:"terminals"`
	// Services holds the port-level tug and pilot boat fleets.
	// If it's nil, port services are not modelled.
	Services *ServicesConfig `yaml:"services"`
	// Overrides holds per-request economic assumption values.
	Overrides map[string]float64 `yaml:"overrides"`
}

// TerminalConfig holds the baseline configuration of a terminal
// and the electrification scenario applied to it.
type TerminalConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// AnnualTEU holds the annual throughput of the terminal.
	AnnualTEU float64 `yaml:"annual_teu"`
	// Equipment holds the baseline fleet, keyed by equipment key.
	Equipment map[string]FleetCount `yaml:"equipment"`
	// Berths holds the berths of the terminal, in display order.
	Berths   []Berth          `yaml:"berths"`
	Scenario TerminalScenario `yaml:"scenario"`
}

// FleetCount holds the number of diesel and electric units
// of a type. Both may be non-zero.
type FleetCount struct {
	Diesel   int `yaml:"diesel"`
	Electric int `yaml:"electric"`
}

// Berth holds a berth and its current traffic.
type Berth struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// DesignSegment holds the largest vessel segment the berth is
	// designed for. It determines the infrastructure sizing.
	DesignSegment string       `yaml:"design_segment"`
	ExistingOPS   bool         `yaml:"existing_ops"`
	ExistingDC    bool         `yaml:"existing_dc"`
	Calls         []VesselCall `yaml:"calls"`
}

// VesselCall holds the annual traffic of one vessel segment at a berth.
type VesselCall struct {
	Segment     string  `yaml:"segment"`
	AnnualCalls float64 `yaml:"annual_calls"`
	// AvgBerthHours holds the average time alongside per call.
	AvgBerthHours float64 `yaml:"avg_berth_hours"`
}

// TerminalScenario holds the changes an electrification scenario
// makes to a terminal.
type TerminalScenario struct {
	// Equipment holds the conversions and additions per
	// equipment key.
	Equipment map[string]FleetChange `yaml:"equipment"`
	// Berths holds the infrastructure enabled per berth id.
	Berths map[string]BerthToggle `yaml:"berths"`
	// ChargerOverrides holds charger counts, keyed by charger
	// key, that replace the computed requirement.
	ChargerOverrides map[string]int `yaml:"charger_overrides"`
	// CableLengthM holds the length of grid cable to be laid.
	CableLengthM float64 `yaml:"cable_length_m"`
}

// FleetChange holds the change to the fleet of an equipment type.
type FleetChange struct {
	// Convert holds the number of diesel units to convert to
	// electric. It is capped at the number of diesel units.
	Convert int `yaml:"convert"`
	// Add holds the number of new electric units.
	Add int `yaml:"add"`
}

// BerthToggle holds the infrastructure a scenario enables at a berth.
type BerthToggle struct {
	OPS bool `yaml:"ops"`
	DC  bool `yaml:"dc"`
}

// ServicesConfig holds the port service boat fleets.
type ServicesConfig struct {
	Tugs   ServiceFleet `yaml:"tugs"`
	Pilots ServiceFleet `yaml:"pilots"`
}

// ServiceFleet holds the baseline fleet of a kind of service
// boat and the scenario change to it.
type ServiceFleet struct {
	Diesel   int `yaml:"diesel"`
	Electric int `yaml:"electric"`
	Convert  int `yaml:"convert"`
	Add      int `yaml:"add"`
}

// Validate checks that the request is well formed. All counts
// and quantities must be non-negative. The returned error reports
// the first problem found and how many others there are.
func (r *Request) Validate() error {
	v := &validator{}
	terminalIDs := make(map[string]bool)
	for i := range r.Terminals {
		t := &r.Terminals[i]
		if terminalIDs[t.ID] {
			v.errorf("duplicate terminal id %q", t.ID)
		}
		terminalIDs[t.ID] = true
		v.terminal(t)
	}
	if s := r.Services; s != nil {
		v.fleet("tugs", s.Tugs)
		v.fleet("pilots", s.Pilots)
	}
	names := make([]string, 0, len(r.Overrides))
	for name := range r.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if x := r.Overrides[name]; math.IsNaN(x) || math.IsInf(x, 0) {
			v.errorf("override %q is not a finite number", name)
		}
	}
	return v.err()
}

type validator struct {
	errors []string
}

func (v *validator) errorf(f string, a ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf(f, a...))
}

func (v *validator) err() error {
	switch len(v.errors) {
	case 0:
		return nil
	case 1:
		return errgo.WithCausef(nil, ErrInvalidRequest, "%s", v.errors[0])
	}
	return errgo.WithCausef(nil, ErrInvalidRequest, "%s (and %d more)", v.errors[0], len(v.errors)-1)
}

func (v *validator) nonNegative(what string, x float64) {
	if x < 0 || math.IsNaN(x) {
		v.errorf("%s is negative (%v)", what, x)
	}
}

func (v *validator) terminal(t *TerminalConfig) {
	v.nonNegative("terminal "+t.ID+" annual TEU", t.AnnualTEU)
	var keys []string
	for k := range t.Equipment {
		keys = append(keys, k)
	}
	for k := range t.Scenario.Equipment {
		if _, ok := t.Equipment[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		base, change := t.Equipment[k], t.Scenario.Equipment[k]
		v.nonNegative("terminal "+t.ID+" "+k+" diesel count", float64(base.Diesel))
		v.nonNegative("terminal "+t.ID+" "+k+" electric count", float64(base.Electric))
		v.nonNegative("terminal "+t.ID+" "+k+" conversions", float64(change.Convert))
		v.nonNegative("terminal "+t.ID+" "+k+" additions", float64(change.Add))
	}
	keys = keys[:0]
	for k := range t.Scenario.ChargerOverrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.nonNegative("terminal "+t.ID+" charger override "+k, float64(t.Scenario.ChargerOverrides[k]))
	}
	v.nonNegative("terminal "+t.ID+" cable length", t.Scenario.CableLengthM)
	berthIDs := make(map[string]bool)
	for _, b := range t.Berths {
		if berthIDs[b.ID] {
			v.errorf("terminal %s has duplicate berth id %q", t.ID, b.ID)
		}
		berthIDs[b.ID] = true
		for _, call := range b.Calls {
			v.nonNegative("berth "+b.ID+" "+call.Segment+" annual calls", call.AnnualCalls)
			v.nonNegative("berth "+b.ID+" "+call.Segment+" berth hours", call.AvgBerthHours)
		}
	}
}

func (v *validator) fleet(what string, f ServiceFleet) {
	v.nonNegative(what+" diesel count", float64(f.Diesel))
	v.nonNegative(what+" electric count", float64(f.Electric))
	v.nonNegative(what+" conversions", float64(f.Convert))
	v.nonNegative(what+" additions", float64(f.Add))
}

// Counts holds unit counts keyed by equipment key.
type Counts map[string]int

// TerminalPlan holds a terminal configuration with all scenario
// changes applied. It is produced by ResolveTerminal.
type TerminalPlan struct {
	ID        string
	Name      string
	AnnualTEU float64

	BaselineDiesel   Counts
	BaselineElectric Counts
	ScenarioDiesel   Counts
	ScenarioElectric Counts
	// CapexEligible holds the converted plus added units.
	CapexEligible Counts

	ChargerOverrides map[string]int
	CableLengthM     float64

	Berths []BerthPlan
}

// BerthPlan holds a berth together with the infrastructure
// available there in the scenario.
type BerthPlan struct {
	Berth
	OPS bool
	DC  bool
}

// ResolveTerminal applies the scenario of t to its baseline.
// Conversions are capped at the number of diesel units. Converted
// grid-powered units are not eligible for CAPEX.
func ResolveTerminal(tables *Tables, t *TerminalConfig) *TerminalPlan {
	p := &TerminalPlan{
		ID:               t.ID,
		Name:             t.Name,
		AnnualTEU:        t.AnnualTEU,
		BaselineDiesel:   make(Counts),
		BaselineElectric: make(Counts),
		ScenarioDiesel:   make(Counts),
		ScenarioElectric: make(Counts),
		CapexEligible:    make(Counts),
		ChargerOverrides: t.Scenario.ChargerOverrides,
		CableLengthM:     t.Scenario.CableLengthM,
	}
	keys := make(map[string]bool)
	for k := range t.Equipment {
		keys[k] = true
	}
	for k := range t.Scenario.Equipment {
		keys[k] = true
	}
	for k := range keys {
		base := t.Equipment[k]
		change := t.Scenario.Equipment[k]
		converted := ConvertedUnits(base.Diesel, change.Convert)
		eligible := converted + change.Add
		if spec, ok := tables.EquipmentSpec(k); ok && spec.Category == GridPowered && converted > 0 {
			// Diesel units replaced by grid-powered ones are
			// changed over, but only new units carry CAPEX.
			logger.Debugf("terminal %q: %d %s units changed over to grid power without CAPEX", t.ID, converted, k)
			eligible = change.Add
		}
		p.BaselineDiesel[k] = base.Diesel
		p.BaselineElectric[k] = base.Electric
		p.ScenarioDiesel[k] = base.Diesel - converted
		p.ScenarioElectric[k] = base.Electric + converted + change.Add
		p.CapexEligible[k] = eligible
	}
	for _, b := range t.Berths {
		toggle := t.Scenario.Berths[b.ID]
		p.Berths = append(p.Berths, BerthPlan{
			Berth: b,
			OPS:   b.ExistingOPS || toggle.OPS,
			DC:    b.ExistingDC || toggle.DC,
		})
	}
	return p
}

// ConvertedUnits returns the number of diesel units actually
// converted when convert conversions are requested from a fleet
// of diesel units.
func ConvertedUnits(diesel, convert int) int {
	if convert > diesel {
		return diesel
	}
	if convert < 0 {
		return 0
	}
	return convert
}
