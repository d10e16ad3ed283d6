package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKindsRoundtrip(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"unit", NewUnit(), Unit},
		{"bool", NewBool(true), Bool},
		{"i64", NewI64(42), I64},
		{"str", NewStr("hi"), Str},
		{"bytes", NewBytes([]byte{1, 2, 3}), Bytes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.v.Kind())
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, NewI64(40).Equal(NewI64(40)))
	assert.False(t, NewI64(40).Equal(NewI64(41)))
	assert.False(t, NewI64(40).Equal(NewStr("40")))
	assert.True(t, NewBytes([]byte("ab")).Equal(NewBytes([]byte("ab"))))
}

func TestRegistersDefaultToUnit(t *testing.T) {
	regs := NewRegisters(DefaultRegisterCount)
	assert.Equal(t, DefaultRegisterCount, regs.Len())
	v, ok := regs.Get(0)
	assert.True(t, ok)
	assert.Equal(t, Unit, v.Kind())
}

func TestRegistersOutOfBounds(t *testing.T) {
	regs := NewRegisters(4)
	_, ok := regs.Get(4)
	assert.False(t, ok)
	assert.False(t, regs.Set(4, NewI64(1)))
}

func TestRegistersSetGet(t *testing.T) {
	regs := NewRegisters(4)
	assert.True(t, regs.Set(2, NewI64(99)))
	v, ok := regs.Get(2)
	assert.True(t, ok)
	i, _ := v.AsI64()
	assert.EqualValues(t, 99, i)
}
