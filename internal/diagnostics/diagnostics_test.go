package diagnostics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	d := New("apis[0].routes[0].path", NewSpan(8, 13, 7), "route path must start with `/`")
	assert.Equal(t, "8:13:7 apis[0].routes[0].path | route path must start with `/`", d.String())
}

func TestSpanDefaultsLength(t *testing.T) {
	s := NewSpan(1, 1, 0)
	assert.Equal(t, 1, s.Length)
}

func TestIOErrorUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := NewIOError("service.dot", underlying)
	require.ErrorIs(t, err, underlying)
	assert.Equal(t, "service.dot: boom", err.Error())
}

func TestDiagnosticsErrorJoinsLines(t *testing.T) {
	err := NewDiagnosticsError("service.dot", []Diagnostic{
		New("root", NewSpan(2, 1, 11), "unknown statement `unknown`"),
		New("apis[0]", NewSpan(9, 1, 1), "unclosed block; expected `end`"),
	})
	expected := "service.dot:2:1:11 root | unknown statement `unknown`\n" +
		"service.dot:9:1:1 apis[0] | unclosed block; expected `end`"
	assert.Equal(t, expected, err.Error())
}

func TestNewDiagnosticsErrorPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() {
		NewDiagnosticsError("service.dot", nil)
	})
}
