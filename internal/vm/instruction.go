// Package vm implements the deterministic register virtual machine: a
// small-step interpreter whose only source of nondeterminism is a
// pluggable syscall Host.
package vm

import "github.com/dotlanth/dotlanth/internal/value"

// Op identifies an instruction's operation.
type Op int

const (
	OpHalt Op = iota
	OpLoadConst
	OpMov
	OpSyscall
)

// Instruction is one VM instruction. Only the fields relevant to Op are
// meaningful; the encoding here is the implementation-private in-memory
// form described by spec §4.4 — on-disk/wire encoding is not specified.
type Instruction struct {
	Op Op

	// LoadConst
	Dst   value.Reg
	Const value.Value

	// Mov
	Src value.Reg

	// Syscall
	SyscallID int
	Args      []value.Reg
	Results   []value.Reg
}

// Halt returns a Halt instruction.
func Halt() Instruction { return Instruction{Op: OpHalt} }

// LoadConst returns a LoadConst instruction writing v into dst.
func LoadConst(dst value.Reg, v value.Value) Instruction {
	return Instruction{Op: OpLoadConst, Dst: dst, Const: v}
}

// Mov returns a Mov instruction copying src into dst.
func Mov(dst, src value.Reg) Instruction {
	return Instruction{Op: OpMov, Dst: dst, Src: src}
}

// MakeSyscall returns a Syscall instruction.
func MakeSyscall(id int, args, results []value.Reg) Instruction {
	return Instruction{Op: OpSyscall, SyscallID: id, Args: args, Results: results}
}
