package portcalc

// CallItem holds the at-berth energy and emissions of one
// vessel segment's calls at a berth.
type CallItem struct {
	Segment       string
	AnnualCalls   float64
	AvgBerthHours float64
	OPSPowerMW    float64

	// ShorePowerMWh holds the electrical energy the vessels
	// need while alongside.
	ShorePowerMWh float64

	// BaselineCO2Tons always assumes the vessels run their
	// auxiliary engines, even at a berth with existing OPS.
	BaselineCO2Tons float64
	// GridKWh holds the energy taken from the grid in the
	// scenario. It is zero when the berth has no OPS.
	GridKWh         float64
	ScenarioCO2Tons float64
	// EnergyCost holds the cost of GridKWh. It is borne by the
	// vessel operator, not the port.
	EnergyCost float64
}

// BerthItem holds the result for one berth.
type BerthItem struct {
	ID            string
	Name          string
	DesignSegment string
	OPS           bool
	DC            bool

	// OPSPowerMW and DCPowerMW hold the installed power,
	// sized on the design segment.
	OPSPowerMW float64
	DCPowerMW  float64

	// OPSCapexCharged and DCCapexCharged report whether the
	// infrastructure is new in the scenario.
	OPSCapexCharged bool
	DCCapexCharged  bool
	OPSCapex        float64
	DCCapex         float64

	BaselineOpex float64
	ScenarioOpex float64

	Calls []CallItem

	ShorePowerMWh   float64
	GridKWh         float64
	BaselineCO2Tons float64
	ScenarioCO2Tons float64
	EnergyCost      float64
}

// BerthResult holds the result of BerthPower.
type BerthResult struct {
	Berths []BerthItem

	OPSCapex        float64
	DCCapex         float64
	BaselineOpex    float64
	ScenarioOpex    float64
	ShorePowerMWh   float64
	GridKWh         float64
	BaselineCO2Tons float64
	ScenarioCO2Tons float64
	EnergyCost      float64
}

// BerthPower calculates the shore power infrastructure and the
// at-berth energy and emissions of the given berths.
func BerthPower(tables *Tables, a *Assumptions, berths []BerthPlan) BerthResult {
	var r BerthResult
	auxFactor := a.AuxEmissionFactor()
	for i := range berths {
		item := berthItem(tables, a, auxFactor, &berths[i])
		r.Berths = append(r.Berths, item)
		r.OPSCapex += item.OPSCapex
		r.DCCapex += item.DCCapex
		r.BaselineOpex += item.BaselineOpex
		r.ScenarioOpex += item.ScenarioOpex
		r.ShorePowerMWh += item.ShorePowerMWh
		r.GridKWh += item.GridKWh
		r.BaselineCO2Tons += item.BaselineCO2Tons
		r.ScenarioCO2Tons += item.ScenarioCO2Tons
		r.EnergyCost += item.EnergyCost
	}
	return r
}

func berthItem(tables *Tables, a *Assumptions, auxFactor float64, b *BerthPlan) BerthItem {
	item := BerthItem{
		ID:            b.ID,
		Name:          b.Name,
		DesignSegment: b.DesignSegment,
		OPS:           b.OPS,
		DC:            b.DC,
	}
	// Infrastructure is sized for the design segment regardless
	// of the traffic using the berth today.
	if design, ok := tables.Segment(b.DesignSegment); ok {
		if b.OPS {
			item.OPSPowerMW = design.OPSPowerMW
			item.ScenarioOpex += design.OPSOpex
			if !b.ExistingOPS {
				item.OPSCapexCharged = true
				item.OPSCapex = design.OPSCapex()
			}
		}
		if b.ExistingOPS {
			item.BaselineOpex += design.OPSOpex
		}
		if b.DC {
			item.DCPowerMW = design.DCPowerMW
			item.ScenarioOpex += design.DCOpex
			if !b.ExistingDC {
				item.DCCapexCharged = true
				item.DCCapex = design.DCCapex
			}
		}
		if b.ExistingDC {
			item.BaselineOpex += design.DCOpex
		}
	}
	for _, call := range b.Calls {
		c := CallItem{
			Segment:       call.Segment,
			AnnualCalls:   call.AnnualCalls,
			AvgBerthHours: call.AvgBerthHours,
		}
		if seg, ok := tables.Segment(call.Segment); ok {
			c.OPSPowerMW = seg.OPSPowerMW
		}
		c.ShorePowerMWh = c.OPSPowerMW * call.AvgBerthHours * call.AnnualCalls
		c.BaselineCO2Tons = c.ShorePowerMWh * auxFactor
		if b.OPS {
			c.GridKWh = c.ShorePowerMWh * 1000
			c.ScenarioCO2Tons = c.GridKWh * a.GridEmissionFactor / 1000
			c.EnergyCost = c.GridKWh * a.ElectricityPrice
		} else {
			// The vessel keeps its auxiliary engines running.
			c.ScenarioCO2Tons = c.BaselineCO2Tons
		}
		item.Calls = append(item.Calls, c)
		item.ShorePowerMWh += c.ShorePowerMWh
		item.GridKWh += c.GridKWh
		item.BaselineCO2Tons += c.BaselineCO2Tons
		item.ScenarioCO2Tons += c.ScenarioCO2Tons
		item.EnergyCost += c.EnergyCost
	}
	return item
}
