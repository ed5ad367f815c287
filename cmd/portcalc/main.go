package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/juju/loggo"
	"github.com/mattn/go-isatty"
	"gopkg.in/errgo.v1"

	"github.com/rogpeppe/portelec/portcalc"
	"github.com/rogpeppe/portelec/portconfig"
	"github.com/rogpeppe/portelec/portreport"
)

var (
	tablesFlag    = flag.String("tables", "", "reference tables file (YAML)")
	overridesFlag = flag.String("overrides", "", "assumption overrides file")
	formatFlag    = flag.String("format", "", "output format (summary, csv or json); defaults to summary on a terminal and csv otherwise")
	logFlag       = flag.String("log", "<root>=WARNING", "logging configuration")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: portcalc [flags] <request.yaml>\n")
		fmt.Fprintf(os.Stderr, "Calculates the cost and emissions of electrifying a port and writes the results to stdout.\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	if err := loggo.ConfigureLoggers(*logFlag); err != nil {
		fmt.Fprintf(os.Stderr, "portcalc: bad -log value: %v\n", err)
		os.Exit(2)
	}
	if err := run(os.Stdout, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "portcalc: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, requestPath string) error {
	tables := &portcalc.Tables{}
	if *tablesFlag != "" {
		t, err := portconfig.ReadTables(*tablesFlag)
		if err != nil {
			return errgo.Mask(err)
		}
		tables = t
	}
	req, err := portconfig.ReadRequest(requestPath)
	if err != nil {
		return errgo.Mask(err)
	}
	if *overridesFlag != "" {
		overrides, err := portconfig.ReadOverrides(*overridesFlag)
		if err != nil {
			return errgo.Mask(err)
		}
		// The overrides file wins over overrides in the request.
		if req.Overrides == nil {
			req.Overrides = make(map[string]float64)
		}
		for name, v := range overrides {
			req.Overrides[name] = v
		}
	}
	result, err := portcalc.Calculate(tables, req)
	if err != nil {
		return errgo.Mask(err)
	}
	format := *formatFlag
	if format == "" {
		format = "csv"
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "summary"
		}
	}
	switch format {
	case "summary":
		return portreport.WriteSummary(w, result)
	case "csv":
		return portreport.WriteReport(w, result)
	case "json":
		data, err := json.MarshalIndent(result, "", "\t")
		if err != nil {
			return errgo.Mask(err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return errgo.Mask(err)
	}
	return errgo.Newf("unknown output format %q", format)
}
