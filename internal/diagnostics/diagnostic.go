package diagnostics

import "fmt"

// Diagnostic is a single, stable-address problem report produced while
// parsing or validating a dotDSL document.
//
// SemanticPath is the machine-comparable identity of the offending node
// (e.g. "apis[0].routes[0].path"); it must be stable across runs for the
// same source so that diagnostics can be diffed/golden-tested.
type Diagnostic struct {
	SemanticPath string
	Span         Span
	Message      string
}

// New constructs a Diagnostic.
func New(path string, span Span, message string) Diagnostic {
	return Diagnostic{SemanticPath: path, Span: span, Message: message}
}

// String renders the canonical single-diagnostic form:
// "<line>:<column>:<length> <semantic_path> | <message>".
// The caller is expected to prefix the source path for the outer
// LoadError form; a bare Diagnostic carries no path of its own.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s | %s", d.Span.String(), d.SemanticPath, d.Message)
}
