package portcalc

import (
	"gopkg.in/errgo.v1"
)

// Category classifies how a type of equipment draws its energy.
type Category int

const (
	// GridPowered equipment is always electric and is fed
	// directly from the terminal grid (for example e-RTGs or
	// quay cranes). It has no diesel variant to convert.
	GridPowered Category = iota
	// BatteryPowered equipment may run on diesel or on
	// batteries charged from dedicated chargers, and so can
	// be converted.
	BatteryPowered
)

var categoryNames = []string{
	GridPowered:    "grid_powered",
	BatteryPowered: "battery_powered",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

// ParseCategory parses a category name as returned by Category.String.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, errgo.Newf("unknown equipment category %q", s)
}

// Basis determines how the annual throughput of a terminal
// is divided between the diesel and electric units of an
// equipment type.
type Basis int

const (
	// BasisCapacity is used when the unit count is itself a
	// throughput unit (for example reefer plugs).
	BasisCapacity Basis = iota
	// BasisRated is used when the handling rate of a unit is known.
	BasisRated
	// BasisShared is the fallback: throughput is split in
	// proportion to the unit counts.
	BasisShared
)

// CoincidenceTable selects the step table used to de-rate the
// peak demand of a number of identical grid-connected units.
type CoincidenceTable int

const (
	CoincidenceGeneral CoincidenceTable = iota
	CoincidenceSparse
)

var coincidenceNames = []string{
	CoincidenceGeneral: "general",
	CoincidenceSparse:  "sparse",
}

func (t CoincidenceTable) String() string {
	if t < 0 || int(t) >= len(coincidenceNames) {
		return "CoincidenceTable(?)"
	}
	return coincidenceNames[t]
}

// ParseCoincidenceTable parses a table name as returned by
// CoincidenceTable.String. The empty string selects the general table.
func ParseCoincidenceTable(s string) (CoincidenceTable, error) {
	if s == "" {
		return CoincidenceGeneral, nil
	}
	for i, name := range coincidenceNames {
		if name == s {
			return CoincidenceTable(i), nil
		}
	}
	return 0, errgo.Newf("unknown coincidence table %q", s)
}

// EquipmentSpec holds the techno-economic parameters of one
// type of terminal equipment.
type EquipmentSpec struct {
	Key      string
	Name     string
	Category Category

	// CapexPerUnit holds the investment cost of one new or
	// converted electric unit.
	CapexPerUnit float64
	// OpexPerUnit holds the annual maintenance cost of one
	// electric unit.
	OpexPerUnit float64
	// PeakPowerKW holds the peak electrical demand of one unit.
	PeakPowerKW float64
	// KWhPerTEU and LitersPerTEU hold the energy and diesel
	// intensity per handled TEU (or per unit per year for
	// capacity-based types).
	KWhPerTEU    float64
	LitersPerTEU float64
	// ThroughputRatio is zero when the quantity of units is
	// itself a throughput unit.
	ThroughputRatio float64
	// MovesPerHour holds the handling rate of one unit; zero
	// if not known.
	MovesPerHour  float64
	LifespanYears float64

	Coincidence CoincidenceTable
}

// Basis returns the throughput basis of the equipment type.
func (s *EquipmentSpec) Basis() Basis {
	switch {
	case s.ThroughputRatio == 0:
		return BasisCapacity
	case s.MovesPerHour > 0:
		return BasisRated
	default:
		return BasisShared
	}
}

// ChargerSpec holds the parameters of the charger used by
// a type of battery-powered equipment.
type ChargerSpec struct {
	Key          string
	Name         string
	EquipmentKey string
	PowerKW      float64
	// UnitsPerCharger holds how many equipment units share
	// a single charger.
	UnitsPerCharger float64
	Capex           float64
	Opex            float64
}

// Pseudo-segments in the fleet-ops table that hold the
// parameters of the port service boats.
const (
	SegmentTug   = "tug"
	SegmentPilot = "pilot"
)

// FleetOpsSpec holds the berth infrastructure and service
// parameters of a vessel segment.
type FleetOpsSpec struct {
	Segment string

	// OPSPowerMW holds the shore power demand of a vessel of
	// this segment while at berth.
	OPSPowerMW       float64
	TransformerCapex float64
	ConverterCapex   float64
	CivilCapex       float64
	OPSOpex          float64

	DCPowerMW float64
	DCCapex   float64
	DCOpex    float64

	TugsPerCall   float64
	PilotsPerCall float64

	// FuelLitersPerHour and HoursPerCall are only used by
	// the tug and pilot pseudo-segments.
	FuelLitersPerHour float64
	HoursPerCall      float64
}

// OPSCapex returns the total investment for an OPS connection.
func (s *FleetOpsSpec) OPSCapex() float64 {
	return s.TransformerCapex + s.ConverterCapex + s.CivilCapex
}

// Keys in the grid component table.
const (
	GridSubstation11kV  = "substation_11kv"
	GridSubstation33kV  = "substation_33kv"
	GridSubstation110kV = "substation_110kv"
	GridCableLow        = "cable_low"
	GridCableHigh       = "cable_high"
	GridDiversityFactor = "diversity_factor"
)

// GridComponentSpec holds a cost rate (per MW for substations,
// per metre for cables) or, for GridDiversityFactor, the
// between-group diversity factor.
type GridComponentSpec struct {
	Key   string
	Value float64
}

// Tables holds the fully resolved assumption tables that
// a calculation runs against. The zero value is valid
// and yields zero for everything.
type Tables struct {
	Equipment      []EquipmentSpec
	Chargers       []ChargerSpec
	FleetOps       []FleetOpsSpec
	GridComponents []GridComponentSpec
	// Assumptions holds economic values from the table source.
	// Missing values take their documented defaults.
	Assumptions map[string]float64
}

// EquipmentSpec returns the spec for the given equipment key.
func (t *Tables) EquipmentSpec(key string) (*EquipmentSpec, bool) {
	for i := range t.Equipment {
		if t.Equipment[i].Key == key {
			return &t.Equipment[i], true
		}
	}
	logger.Debugf("no equipment spec for %q", key)
	return nil, false
}

// Segment returns the fleet-ops row for the given vessel segment.
func (t *Tables) Segment(segment string) (*FleetOpsSpec, bool) {
	for i := range t.FleetOps {
		if t.FleetOps[i].Segment == segment {
			return &t.FleetOps[i], true
		}
	}
	logger.Debugf("no fleet ops spec for segment %q", segment)
	return nil, false
}

// GridComponent returns the value of the given grid component,
// or def if there is none.
func (t *Tables) GridComponent(key string, def float64) float64 {
	for _, c := range t.GridComponents {
		if c.Key == key {
			return c.Value
		}
	}
	return def
}
