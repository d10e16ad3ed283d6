// Package value defines the VM's tagged-union Value type and its fixed
// size register file.
package value

import "fmt"

// Kind identifies which field of a Value is meaningful.
type Kind int

const (
	Unit Kind = iota
	Bool
	I64
	Str
	Bytes
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Bool:
		return "bool"
	case I64:
		return "i64"
	case Str:
		return "str"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged union over the VM's value types. The zero value is
// Unit.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	s     string
	bytes []byte
}

// NewUnit returns the unit value.
func NewUnit() Value { return Value{kind: Unit} }

// NewBool returns a bool value.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewI64 returns an i64 value.
func NewI64(i int64) Value { return Value{kind: I64, i: i} }

// NewStr returns a string value.
func NewStr(s string) Value { return Value{kind: Str, s: s} }

// NewBytes returns a byte-sequence value. The slice is not copied;
// callers must not mutate it after construction.
func NewBytes(b []byte) Value { return Value{kind: Bytes, bytes: b} }

// Kind reports the value's tag.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the bool payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == Bool }

// AsI64 returns the i64 payload and whether v is an I64.
func (v Value) AsI64() (int64, bool) { return v.i, v.kind == I64 }

// AsStr returns the string payload and whether v is a Str.
func (v Value) AsStr() (string, bool) { return v.s, v.kind == Str }

// AsBytes returns the byte-sequence payload and whether v is Bytes.
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == Bytes }

func (v Value) String() string {
	switch v.kind {
	case Unit:
		return "unit"
	case Bool:
		return fmt.Sprintf("%t", v.b)
	case I64:
		return fmt.Sprintf("%d", v.i)
	case Str:
		return fmt.Sprintf("%q", v.s)
	case Bytes:
		return fmt.Sprintf("bytes(%d)", len(v.bytes))
	default:
		return "invalid"
	}
}

// Equal reports whether v and other carry the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Unit:
		return true
	case Bool:
		return v.b == other.b
	case I64:
		return v.i == other.i
	case Str:
		return v.s == other.s
	case Bytes:
		if len(v.bytes) != len(other.bytes) {
			return false
		}
		for i := range v.bytes {
			if v.bytes[i] != other.bytes[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
