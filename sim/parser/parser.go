// Package parser turns a meta-data script into an ordered, validated
// instruction stream.
//
// A script is a banner line followed by entries of the form
// "<code>(<description>) <cycles>" separated by whitespace or punctuation and
// terminated by an entry whose code is E. Malformed entries produce a
// Diagnostic and are skipped; an unknown code discards the rest of the script.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim"
)

// ErrEmptyScript is returned for a script with no content at all.
var ErrEmptyScript = errors.New("empty meta-data script")

// Result is the outcome of a parse.
type Result struct {
	Instructions []sim.Instruction
	Diagnostics  []Diagnostic
	// Ended is true when an E marker was reached.
	Ended bool
}

// descriptionRule reports whether a description is acceptable for a code.
type descriptionRule func(description string, costs *sim.CostTable) bool

func oneOf(allowed ...string) descriptionRule {
	return func(description string, _ *sim.CostTable) bool {
		for _, a := range allowed {
			if description == a {
				return true
			}
		}
		return false
	}
}

func knownDevice(description string, costs *sim.CostTable) bool {
	return len(costs.MatchDevice(description)) > 0
}

// descriptionRules is the validation whitelist keyed by instruction code.
var descriptionRules = map[sim.Code]descriptionRule{
	sim.CodeStart:   oneOf("start", "end"),
	sim.CodeApp:     oneOf("start", "end"),
	sim.CodeProcess: oneOf("run"),
	sim.CodeMemory:  oneOf("allocate", "block"),
	sim.CodeInput:   knownDevice,
	sim.CodeOutput:  knownDevice,
}

// ParseFile reads and parses the script at path.
func ParseFile(path string, costs *sim.CostTable) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading meta-data script: %w", err)
	}
	res, err := Parse(string(data), costs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Parse parses script text. The first line is a banner and is skipped.
// I and O descriptions are validated against costs.
func Parse(src string, costs *sim.CostTable) (*Result, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyScript
	}
	body, firstLine := "", 2
	if nl := strings.IndexByte(src, '\n'); nl >= 0 {
		body = src[nl+1:]
	}
	p := &parser{
		toks:   tokenize(body, firstLine),
		costs:  costs,
		result: &Result{},
	}
	p.parse()
	logrus.Debugf("parsed %d instructions with %d diagnostics", len(p.result.Instructions), len(p.result.Diagnostics))
	return p.result, nil
}

type parser struct {
	toks   []token
	pos    int
	costs  *sim.CostTable
	result *Result
}

func (p *parser) peek() token {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) token {
	if i := p.pos + offset; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) skipSeparators() {
	for p.peek().kind == tokSep {
		p.next()
	}
}

func (p *parser) report(d Diagnostic) {
	logrus.Debugf("diagnostic %s", d)
	p.result.Diagnostics = append(p.result.Diagnostics, d)
}

func (p *parser) parse() {
	for {
		p.skipSeparators()
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			logrus.Debugf("script ended at line %d without an end marker", t.line)
			return
		case t.kind == tokWord && sim.Code(t.text[0]) == sim.CodeEnd:
			p.result.Ended = true
			return
		case t.kind == tokWord && len(t.text) == 1 && sim.IsEntryCode(sim.Code(t.text[0])):
			p.next()
			p.entry(sim.Code(t.text[0]), t)
		default:
			p.report(newDiagnostic(DiagInvalidCode, t, "found %s", t))
			return
		}
	}
}

// entry parses "(<description>) [,] <cycles>" after a code.
func (p *parser) entry(code sim.Code, at token) {
	if p.peek().kind != tokLParen {
		p.report(newDiagnostic(DiagTypo, at, "no description for %s", code))
		p.skipEntry()
		return
	}
	p.next()
	description := ""
	if p.peek().kind == tokText {
		description = p.next().text
	}
	if p.peek().kind != tokRParen {
		p.report(newDiagnostic(DiagTypo, at, "unterminated description %q for %s", description, code))
		p.skipEntry()
		return
	}
	p.next()
	if !descriptionRules[code](description, p.costs) {
		p.report(newDiagnostic(DiagTypo, at, "description %q for %s", description, code))
		p.skipEntry()
		return
	}

	for t := p.peek(); t.kind == tokSep && t.text == ","; t = p.peek() {
		p.next()
	}
	t := p.peek()
	switch t.kind {
	case tokMinus:
		p.report(newDiagnostic(DiagNegativeCycles, t, "%s(%s)", code, description))
		p.next()
		p.skipEntry()
		return
	case tokNumber:
		p.next()
		cycles, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil || cycles > sim.MaxCycles {
			p.report(newDiagnostic(DiagInvalidCycles, t, "%s(%s)%s", code, description, t.text))
			p.skipEntry()
			return
		}
		p.result.Instructions = append(p.result.Instructions, sim.Instruction{
			Code:        code,
			Description: description,
			Cycles:      int(cycles),
		})
	default:
		p.report(newDiagnostic(DiagMissingCycles, t, "%s(%s) followed by %s", code, description, t))
		p.skipEntry()
	}
}

// skipEntry skips the rest of a malformed entry. It stops after a ';' and
// any cycle count stranded right behind it, or before a word that opens an
// entry or ends the script.
func (p *parser) skipEntry() {
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return
		case t.kind == tokSep && t.text == ";":
			p.next()
			if p.peek().kind == tokNumber {
				p.next()
			}
			return
		case t.kind == tokWord && (p.peekAt(1).kind == tokLParen || sim.Code(t.text[0]) == sim.CodeEnd):
			return
		}
		p.next()
	}
}
