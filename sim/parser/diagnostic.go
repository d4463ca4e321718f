package parser

import "fmt"

// DiagnosticKind classifies a malformed script entry.
type DiagnosticKind string

const (
	// DiagInvalidCode is the one fatal kind: the rest of the script is discarded.
	DiagInvalidCode    DiagnosticKind = "invalid-code"
	DiagTypo           DiagnosticKind = "typo"
	DiagNegativeCycles DiagnosticKind = "negative-cycles"
	DiagMissingCycles  DiagnosticKind = "missing-cycles"
	DiagInvalidCycles  DiagnosticKind = "invalid-cycles"
)

var diagnosticMessages = map[DiagnosticKind]string{
	DiagInvalidCode:    "In the metadata file, you either did not enter a metadata code or the code is invalid.",
	DiagTypo:           "Sorry, either you made a typo or you forgot to enter the description",
	DiagNegativeCycles: "Invalid negative cycle values in meta-data file.",
	DiagMissingCycles:  "You're missing a cycle value in the meta-data file.",
	DiagInvalidCycles:  "Cycle value in meta-data file is out of range.",
}

// Fatal reports whether a diagnostic of this kind stops the parse.
func (k DiagnosticKind) Fatal() bool {
	return k == DiagInvalidCode
}

// Diagnostic is an advisory message about one malformed entry.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Col     int
	Detail  string // what was found, e.g. `description "begin" for S`
	Message string
}

func newDiagnostic(kind DiagnosticKind, at token, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Line:    at.line,
		Col:     at.col,
		Detail:  fmt.Sprintf(format, args...),
		Message: diagnosticMessages[kind],
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d:%d: %s (%s)", d.Line, d.Col, d.Message, d.Detail)
}
