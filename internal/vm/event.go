package vm

import "github.com/dotlanth/dotlanth/internal/value"

// Event is emitted to an attached EventSink after a syscall
// instruction's host call returns, regardless of outcome, and before
// any further instruction executes.
type Event struct {
	ID     int
	Args   []value.Value
	Result SyscallResult
}

// SyscallResult mirrors the outcome of a Host.Syscall call: either the
// returned values, or the error the host produced.
type SyscallResult struct {
	Values []value.Value
	Err    error
}

// Ok reports whether the syscall succeeded.
func (r SyscallResult) Ok() bool { return r.Err == nil }
