package portconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rogpeppe/portelec/portcalc"
)

// ParseOverrides parses economic assumption overrides, one per line:
//
//	diesel price is 1.30
//	grid_emission_factor is 0.21.
//
// Blank lines and lines starting with # are ignored. Names are
// case-insensitive and may separate words with spaces or underscores.
// An override may end with a full stop. Every name must be a known
// assumption, and may only be set once.
func ParseOverrides(s string) (map[string]float64, error) {
	p := &overridesParser{
		values: make(map[string]float64),
	}
	for t := newText(s); t.s != ""; {
		var line text
		line, t = t.line()
		p.addLine(line)
	}
	if len(p.errors) > 0 {
		return nil, &ConfigParseError{
			Config: s,
			Errors: p.errors,
		}
	}
	return p.values, nil
}

type overridesParser struct {
	values map[string]float64
	errors []ParseError
}

func (p *overridesParser) addLine(t text) {
	t = t.trimSpace()
	if t.s == "" || strings.HasPrefix(t.s, "#") {
		return
	}
	// "diesel price is 1.30"
	var words []string
	var first, last text
	rest := t
	for {
		var w text
		w, rest = rest.word()
		if w.s == "" {
			p.errorf(t, `expected "<name> is <value>"`)
			return
		}
		if w.eqFold("is") && len(words) > 0 {
			break
		}
		if len(words) == 0 {
			first = w
		}
		last = w
		words = append(words, strings.ToLower(w.s))
	}
	nameText := t.span(first, last)
	name := strings.Join(words, "_")
	if _, ok := portcalc.DefaultAssumptions[name]; !ok {
		p.errorf(nameText, "unknown assumption %q", name)
		return
	}
	if _, ok := p.values[name]; ok {
		p.errorf(nameText, "%s already set", name)
		return
	}
	value := rest.trimSpace()
	if v, ok := value.trimSuffix("."); ok {
		value = v
	}
	if value.s == "" {
		p.errorf(t, "no value for %s", name)
		return
	}
	x, err := strconv.ParseFloat(value.s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		p.errorf(value, "invalid number")
		return
	}
	p.values[name] = x
}

func (p *overridesParser) errorf(t text, f string, a ...interface{}) {
	p.errors = append(p.errors, ParseError{
		P0:      t.p0,
		P1:      t.p1,
		Message: fmt.Sprintf(f, a...),
	})
}

// ConfigParseError is the error returned by ParseOverrides.
// It holds all the errors found in the text.
type ConfigParseError struct {
	Config string
	Errors []ParseError
}

// ParseError holds an error at the given byte range
// of the parsed text.
type ParseError struct {
	P0, P1  int
	Message string
}

func (e *ConfigParseError) Error() string {
	m := fmt.Sprintf("error at %q: %v", e.Config[e.Errors[0].P0:e.Errors[0].P1], e.Errors[0].Message)
	if len(e.Errors) > 1 {
		m += fmt.Sprintf(" (and %d more)", len(e.Errors)-1)
	}
	return m
}
