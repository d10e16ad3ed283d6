package diagnostics

import "strings"

// LoadError is the sum of the two ways loading a dotDSL source can
// fail: an I/O failure reading the file, or one-or-more accumulated
// diagnostics from parsing/validation. Both variants implement error.
type LoadError interface {
	error
	isLoadError()
}

// IOError wraps an underlying I/O failure with the path that produced it.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func (*IOError) isLoadError() {}

// DiagnosticsError wraps one or more diagnostics produced against a
// single source path. Its canonical multi-line string form joins each
// diagnostic's "<path>:<line>:<column>:<length> <semantic_path> | <message>"
// line with "\n".
type DiagnosticsError struct {
	Path        string
	Diagnostics []Diagnostic
}

func (e *DiagnosticsError) Error() string {
	lines := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		lines = append(lines, e.Path+":"+d.String())
	}
	return strings.Join(lines, "\n")
}

func (*DiagnosticsError) isLoadError() {}

// NewIOError constructs an IOError LoadError.
func NewIOError(path string, err error) LoadError {
	return &IOError{Path: path, Err: err}
}

// NewDiagnosticsError constructs a DiagnosticsError LoadError. Panics
// if diags is empty — callers must not create an error carrying no
// diagnostics.
func NewDiagnosticsError(path string, diags []Diagnostic) LoadError {
	if len(diags) == 0 {
		panic("diagnostics: NewDiagnosticsError called with no diagnostics")
	}
	return &DiagnosticsError{Path: path, Diagnostics: diags}
}
