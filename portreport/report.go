// Package portreport writes the results of a port electrification
// calculation as a CSV line-item report or as a summary table.
package portreport

import (
	"encoding/csv"
	"io"
	"strconv"

	"gopkg.in/errgo.v1"

	"github.com/rogpeppe/portelec/portcalc"
)

var reportHeader = []string{
	"Terminal",
	"Section",
	"Item",
	"Baseline diesel (l)",
	"Baseline energy (kWh)",
	"Baseline CO2 (t)",
	"Baseline OPEX",
	"Scenario diesel (l)",
	"Scenario energy (kWh)",
	"Scenario CO2 (t)",
	"Scenario OPEX",
	"CAPEX",
}

// reportRow holds one line of the report.
type reportRow struct {
	terminal string
	section  string
	item     string
	baseline portcalc.Totals
	scenario portcalc.Totals
	capex    float64
}

func (r reportRow) fields() []string {
	return []string{
		r.terminal,
		r.section,
		r.item,
		amountStr(r.baseline.DieselLiters),
		amountStr(r.baseline.KWh),
		amountStr(r.baseline.CO2Tons),
		amountStr(r.baseline.Opex),
		amountStr(r.scenario.DieselLiters),
		amountStr(r.scenario.KWh),
		amountStr(r.scenario.CO2Tons),
		amountStr(r.scenario.Opex),
		amountStr(r.capex),
	}
}

// WriteReport writes a CSV file containing a line for each
// equipment type, charger, berth and grid connection of each
// terminal, followed by the port services and the port totals.
func WriteReport(w io.Writer, r *portcalc.PortResult) error {
	cw := csv.NewWriter(w)
	cw.Write(reportHeader)
	for i := range r.Terminals {
		for _, row := range terminalRows(&r.Terminals[i]) {
			cw.Write(row.fields())
		}
	}
	if s := r.Services; s != nil {
		for _, item := range []*portcalc.ServiceItem{&s.Tugs, &s.Pilots} {
			cw.Write(reportRow{
				section: "services",
				item:    string(item.Kind),
				baseline: portcalc.Totals{
					DieselLiters: item.BaselineLiters,
					KWh:          item.BaselineKWh,
					CO2Tons:      item.BaselineCO2Tons,
					Opex:         item.BaselineOpex,
				},
				scenario: portcalc.Totals{
					DieselLiters: item.ScenarioLiters,
					KWh:          item.ScenarioKWh,
					CO2Tons:      item.ScenarioCO2Tons,
					Opex:         item.ScenarioOpex,
				},
				capex: item.Capex,
			}.fields())
		}
	}
	cw.Write(reportRow{
		section:  "total",
		item:     "port",
		baseline: r.Baseline,
		scenario: r.Scenario,
		capex:    r.Capex.Total(),
	}.fields())
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errgo.Notef(err, "cannot write report")
	}
	return nil
}

func terminalRows(t *portcalc.TerminalResult) []reportRow {
	var rows []reportRow
	baselineEquipment := make(map[string]portcalc.EquipmentItem)
	for _, item := range t.BaselineEquipment.Items {
		baselineEquipment[item.Key] = item
	}
	scenarioEquipment := make(map[string]bool)
	for _, item := range t.ScenarioEquipment.Items {
		scenarioEquipment[item.Key] = true
		rows = append(rows, reportRow{
			terminal: t.ID,
			section:  "equipment",
			item:     item.Key,
			baseline: equipmentTotals(baselineEquipment[item.Key]),
			scenario: equipmentTotals(item),
			capex:    item.Capex,
		})
	}
	// Types removed entirely by the scenario.
	for _, item := range t.BaselineEquipment.Items {
		if !scenarioEquipment[item.Key] {
			rows = append(rows, reportRow{
				terminal: t.ID,
				section:  "equipment",
				item:     item.Key,
				baseline: equipmentTotals(item),
			})
		}
	}
	baselineChargers := make(map[string]float64)
	for _, item := range t.BaselineChargers.Items {
		baselineChargers[item.Key] = item.Opex
	}
	for _, item := range t.Chargers.Items {
		rows = append(rows, reportRow{
			terminal: t.ID,
			section:  "chargers",
			item:     item.Key,
			baseline: portcalc.Totals{Opex: baselineChargers[item.Key]},
			scenario: portcalc.Totals{Opex: item.Opex},
			capex:    item.AddedCapex,
		})
	}
	for _, b := range t.Berths.Berths {
		rows = append(rows, reportRow{
			terminal: t.ID,
			section:  "berth",
			item:     b.ID,
			baseline: portcalc.Totals{
				CO2Tons: b.BaselineCO2Tons,
				Opex:    b.BaselineOpex,
			},
			scenario: portcalc.Totals{
				KWh:     b.GridKWh,
				CO2Tons: b.ScenarioCO2Tons,
				Opex:    b.ScenarioOpex,
			},
			capex: b.OPSCapex + b.DCCapex,
		})
	}
	rows = append(rows, reportRow{
		terminal: t.ID,
		section:  "grid",
		item:     t.Grid.SubstationTier,
		baseline: portcalc.Totals{Opex: t.BaselineGrid.Opex},
		scenario: portcalc.Totals{Opex: t.Grid.Opex},
		capex:    t.Capex.Grid,
	}, reportRow{
		terminal: t.ID,
		section:  "total",
		baseline: t.Baseline,
		scenario: t.Scenario,
		capex:    t.Capex.Total(),
	})
	return rows
}

func equipmentTotals(item portcalc.EquipmentItem) portcalc.Totals {
	return portcalc.Totals{
		DieselLiters: item.DieselLiters,
		KWh:          item.KWh,
		CO2Tons:      item.CO2Tons,
		Opex:         item.Opex,
	}
}

func amountStr(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
