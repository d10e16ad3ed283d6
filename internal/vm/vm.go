package vm

import "github.com/dotlanth/dotlanth/internal/value"

// VM is the deterministic register machine: an immutable program, a
// register file, an instruction pointer, and a halted flag. Execution
// is a pure function of the program and register count except where a
// Syscall instruction consults a Host.
type VM struct {
	program   []Instruction
	registers *value.Registers
	ip        int
	halted    bool
}

// New constructs a VM for the given program with a register file of
// registerCount slots (value.DefaultRegisterCount if <= 0). ip starts
// at 0 and halted starts false.
func New(program []Instruction, registerCount int) *VM {
	return &VM{
		program:   program,
		registers: value.NewRegisters(registerCount),
		ip:        0,
		halted:    false,
	}
}

// IP returns the current instruction pointer.
func (m *VM) IP() int { return m.ip }

// Halted reports whether the VM has executed a Halt instruction.
func (m *VM) Halted() bool { return m.halted }

// Registers exposes the register file for inspection (e.g. by tests or
// by a syscall host reading arguments that were already materialized
// into values).
func (m *VM) Registers() *value.Registers { return m.registers }

// Step executes exactly one instruction. host and sink may both be
// nil; sink is only consulted for Syscall instructions.
func (m *VM) Step(host Host, sink EventSink) error {
	if m.halted {
		return Halted{}
	}

	if m.ip < 0 || m.ip >= len(m.program) {
		return InstructionPointerOutOfBounds{IP: m.ip, ProgramLen: len(m.program)}
	}
	inst := m.program[m.ip]

	switch inst.Op {
	case OpHalt:
		m.halted = true
		m.ip++
		return nil

	case OpLoadConst:
		if !m.registers.Set(inst.Dst, inst.Const) {
			return RegisterOutOfBounds{Reg: int(inst.Dst), RegisterCount: m.registers.Len()}
		}
		m.ip++
		return nil

	case OpMov:
		v, ok := m.registers.Get(inst.Src)
		if !ok {
			return RegisterOutOfBounds{Reg: int(inst.Src), RegisterCount: m.registers.Len()}
		}
		if !m.registers.Set(inst.Dst, v) {
			return RegisterOutOfBounds{Reg: int(inst.Dst), RegisterCount: m.registers.Len()}
		}
		m.ip++
		return nil

	case OpSyscall:
		return m.stepSyscall(inst, host, sink)

	default:
		// Unreachable for programs built through this package's
		// constructors; the instruction set is closed.
		return InstructionPointerOutOfBounds{IP: m.ip, ProgramLen: len(m.program)}
	}
}

func (m *VM) stepSyscall(inst Instruction, host Host, sink EventSink) error {
	args := make([]value.Value, 0, len(inst.Args))
	for _, reg := range inst.Args {
		v, ok := m.registers.Get(reg)
		if !ok {
			return RegisterOutOfBounds{Reg: int(reg), RegisterCount: m.registers.Len()}
		}
		args = append(args, v)
	}

	if host == nil {
		return SyscallWithoutHost{ID: inst.SyscallID}
	}

	returned, err := host.Syscall(inst.SyscallID, args)

	if sink != nil {
		sink.Emit(Event{
			ID:     inst.SyscallID,
			Args:   args,
			Result: SyscallResult{Values: returned, Err: err},
		})
	}

	if err != nil {
		return SyscallFailed{ID: inst.SyscallID, Err: err}
	}

	if len(returned) != len(inst.Results) {
		return SyscallResultArityMismatch{ID: inst.SyscallID, Expected: len(inst.Results), Got: len(returned)}
	}

	for i, reg := range inst.Results {
		if !m.registers.Set(reg, returned[i]) {
			return RegisterOutOfBounds{Reg: int(reg), RegisterCount: m.registers.Len()}
		}
	}

	m.ip++
	return nil
}

// Run repeatedly steps until the VM halts or a step fails.
func (m *VM) Run(host Host, sink EventSink) error {
	for !m.halted {
		if err := m.Step(host, sink); err != nil {
			return err
		}
	}
	return nil
}
