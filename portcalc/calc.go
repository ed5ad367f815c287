// Package portcalc implements the techno-economic model of port
// terminal electrification. It compares a baseline fleet and
// infrastructure with an electrified scenario and reports capital
// and operating costs, energy use and CO2 emissions.
//
// All calculations are pure functions of their inputs: nothing is
// mutated, and a missing table entry contributes zero rather than
// causing an error.
package portcalc

import (
	"github.com/juju/loggo"
	"gopkg.in/errgo.v1"
)

var logger = loggo.GetLogger("portelec.portcalc")

// Calculate validates req and calculates the result of
// electrifying the port it describes using the given tables.
// The only errors returned have the cause ErrInvalidRequest.
func Calculate(tables *Tables, req *Request) (*PortResult, error) {
	if err := req.Validate(); err != nil {
		return nil, errgo.Mask(err, errgo.Is(ErrInvalidRequest))
	}
	if tables == nil {
		tables = &Tables{}
	}
	a := ResolveAssumptions(tables.Assumptions, req.Overrides)
	terminals := make([]TerminalResult, 0, len(req.Terminals))
	var calls []VesselCall
	for i := range req.Terminals {
		t := &req.Terminals[i]
		terminals = append(terminals, AggregateTerminal(tables, a, ResolveTerminal(tables, t)))
		for _, b := range t.Berths {
			calls = append(calls, b.Calls...)
		}
	}
	var services *ServicesResult
	if req.Services != nil {
		s := PortServices(tables, a, calls, *req.Services)
		services = &s
	}
	r := AggregatePort(req.PortID, req.PortName, terminals, services)
	r.Assumptions = a.Values()
	logger.Debugf("port %q: capex %v opex savings %v co2 savings %v", req.PortID, r.Capex.Total(), r.OpexSavings, r.CO2Savings)
	return &r, nil
}
