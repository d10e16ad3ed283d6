package capability

import "fmt"

// Syscall is a closed enumeration of the requests a VM program can make
// of its host. Every syscall requires exactly one capability.
type Syscall int

const (
	// LogEmit writes a line to stdout and the run's event log.
	LogEmit Syscall = iota
	// NetHTTPServe serves HTTP requests from a bound listener. It is
	// gated by the NetHttpListen capability.
	NetHTTPServe
)

// Name returns the syscall's dotDSL-visible name.
func (s Syscall) Name() string {
	switch s {
	case LogEmit:
		return "log.emit"
	case NetHTTPServe:
		return "net.http.serve"
	default:
		return fmt.Sprintf("syscall(%d)", int(s))
	}
}

// RequiredCapability returns the capability this syscall is gated by.
func (s Syscall) RequiredCapability() Capability {
	switch s {
	case LogEmit:
		return Log
	case NetHTTPServe:
		return NetHttpListen
	default:
		return Log
	}
}

// AllowStatement returns the dotDSL statement that would grant this
// syscall's required capability, used verbatim in denial messages.
func (s Syscall) AllowStatement() string {
	return fmt.Sprintf("allow %s", s.RequiredCapability().String())
}

// DeniedError is returned by a host when a syscall is attempted without
// its required capability. Its Error() text is the exact, stable wording
// specified by the platform's error-handling design.
type DeniedError struct {
	Syscall Syscall
}

func (e *DeniedError) Error() string {
	cap := e.Syscall.RequiredCapability()
	return fmt.Sprintf(
		"capability denied: syscall `%s` requires capability `%s`. Hint: add `allow %s`. Declare it in your `.dot` file with an `allow ...` statement.",
		e.Syscall.Name(), cap.String(), cap.String(),
	)
}

// NewDeniedError constructs a DeniedError for the given syscall.
func NewDeniedError(s Syscall) error {
	return &DeniedError{Syscall: s}
}

// Check returns a DeniedError if set does not grant the capability
// required by s, nil otherwise.
func Check(set Set, s Syscall) error {
	if !set.Has(s.RequiredCapability()) {
		return NewDeniedError(s)
	}
	return nil
}
