package portreport

import (
	"fmt"
	"io"

	"github.com/juju/ansiterm"

	"github.com/rogpeppe/portelec/portcalc"
)

// WriteSummary writes a human-readable summary of r to w as an
// aligned table. When w is a terminal, savings are shown in green
// and losses in red.
func WriteSummary(w io.Writer, r *portcalc.PortResult) error {
	tw := ansiterm.NewTabWriter(w, 0, 8, 2, ' ', 0)
	name := r.PortID
	if r.PortName != "" {
		name = fmt.Sprintf("%s (%s)", r.PortID, r.PortName)
	}
	fmt.Fprintf(tw, "Port %s\n\n", name)

	fmt.Fprintf(tw, "TERMINAL\tBASELINE CO2 (t)\tSCENARIO CO2 (t)\tCO2 SAVED (t)\tBASELINE OPEX\tSCENARIO OPEX\tOPEX SAVED\tCAPEX\n")
	for _, t := range r.Terminals {
		summaryLine(tw, t.ID, t.Baseline, t.Scenario, t.Capex.Total())
	}
	if s := r.Services; s != nil {
		summaryLine(tw, "services", portcalc.Totals{
			CO2Tons: s.BaselineCO2Tons,
			Opex:    s.BaselineOpex,
		}, portcalc.Totals{
			CO2Tons: s.ScenarioCO2Tons,
			Opex:    s.ScenarioOpex,
		}, s.Capex)
	}
	summaryLine(tw, "TOTAL", r.Baseline, r.Scenario, r.Capex.Total())
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "CAPEX\tEQUIPMENT\tCHARGERS\tOPS\tDC\tGRID\tSERVICES\n")
	fmt.Fprintf(tw, "\t%s\t%s\t%s\t%s\t%s\t%s\n",
		amountStr(r.Capex.Equipment),
		amountStr(r.Capex.Chargers),
		amountStr(r.Capex.OPS),
		amountStr(r.Capex.DC),
		amountStr(r.Capex.Grid),
		amountStr(r.Capex.Services),
	)
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "CO2 reduction:\t%.1f%%\n", r.CO2ReductionPercent)
	fmt.Fprintf(tw, "Simple payback:\t")
	if r.SimplePaybackYears != nil {
		fmt.Fprintf(tw, "%.1f years\n", *r.SimplePaybackYears)
	} else {
		tw.SetForeground(ansiterm.Red)
		fmt.Fprintf(tw, "never")
		tw.Reset()
		fmt.Fprintf(tw, "\n")
	}
	return tw.Flush()
}

func summaryLine(tw *ansiterm.TabWriter, name string, baseline, scenario portcalc.Totals, capex float64) {
	fmt.Fprintf(tw, "%s\t%s\t%s\t", name, amountStr(baseline.CO2Tons), amountStr(scenario.CO2Tons))
	savedStr(tw, baseline.CO2Tons-scenario.CO2Tons)
	fmt.Fprintf(tw, "\t%s\t%s\t", amountStr(baseline.Opex), amountStr(scenario.Opex))
	savedStr(tw, baseline.Opex-scenario.Opex)
	fmt.Fprintf(tw, "\t%s\n", amountStr(capex))
}

// savedStr writes the saved amount, coloured by its sign.
func savedStr(tw *ansiterm.TabWriter, saved float64) {
	switch {
	case saved > 0:
		tw.SetForeground(ansiterm.Green)
	case saved < 0:
		tw.SetForeground(ansiterm.Red)
	}
	fmt.Fprint(tw, amountStr(saved))
	tw.Reset()
}
