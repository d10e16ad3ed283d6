package vm

import "fmt"

// Halted is returned when Step is called on a VM that has already
// halted.
type Halted struct{}

func (Halted) Error() string { return "vm: halted" }

// InstructionPointerOutOfBounds is returned when the instruction
// pointer does not index a valid instruction.
type InstructionPointerOutOfBounds struct {
	IP         int
	ProgramLen int
}

func (e InstructionPointerOutOfBounds) Error() string {
	return fmt.Sprintf("vm: instruction pointer %d out of bounds (program has %d instructions)", e.IP, e.ProgramLen)
}

// RegisterOutOfBounds is returned when an instruction reads or writes a
// register index outside the register file.
type RegisterOutOfBounds struct {
	Reg           int
	RegisterCount int
}

func (e RegisterOutOfBounds) Error() string {
	return fmt.Sprintf("vm: register %d out of bounds (register file has %d registers)", e.Reg, e.RegisterCount)
}

// SyscallWithoutHost is returned when a Syscall instruction executes
// but no Host is attached.
type SyscallWithoutHost struct {
	ID int
}

func (e SyscallWithoutHost) Error() string {
	return fmt.Sprintf("vm: syscall %d attempted without a host", e.ID)
}

// SyscallFailed wraps an error returned by the host for a given syscall.
type SyscallFailed struct {
	ID  int
	Err error
}

func (e SyscallFailed) Error() string {
	return fmt.Sprintf("vm: syscall %d failed: %v", e.ID, e.Err)
}

func (e SyscallFailed) Unwrap() error { return e.Err }

// SyscallResultArityMismatch is returned when a host returns a
// different number of values than the instruction declares result
// registers for.
type SyscallResultArityMismatch struct {
	ID       int
	Expected int
	Got      int
}

func (e SyscallResultArityMismatch) Error() string {
	return fmt.Sprintf("vm: syscall %d returned %d values, expected %d", e.ID, e.Got, e.Expected)
}
