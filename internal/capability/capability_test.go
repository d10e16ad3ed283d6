package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilityUnknown(t *testing.T) {
	_, err := ParseCapability("net.tcp.dial")
	require.Error(t, err)
	assert.Equal(t, "unknown capability `net.tcp.dial`", err.Error())
}

func TestParseCapabilityKnown(t *testing.T) {
	c, err := ParseCapability("net.http.listen")
	require.NoError(t, err)
	assert.Equal(t, NetHttpListen, c)
}

func TestEmptySetDeniesEverything(t *testing.T) {
	set := Empty()
	for _, s := range []Syscall{LogEmit, NetHTTPServe} {
		err := Check(set, s)
		require.Error(t, err)
		assert.IsType(t, &DeniedError{}, err)
	}
}

func TestFromIdentifiersFailsOnUnknown(t *testing.T) {
	_, err := FromIdentifiers([]string{"log", "bogus"})
	require.Error(t, err)
	assert.Equal(t, "unknown capability `bogus`", err.Error())
}

func TestFromIdentifiersGrants(t *testing.T) {
	set, err := FromIdentifiers([]string{"log"})
	require.NoError(t, err)
	assert.True(t, set.Has(Log))
	assert.False(t, set.Has(NetHttpListen))
}

func TestDeniedErrorMessage(t *testing.T) {
	err := NewDeniedError(LogEmit)
	assert.Contains(t, err.Error(), "capability denied: syscall `log.emit`")
	assert.Contains(t, err.Error(), "allow log")
}

func TestGrantIsImmutable(t *testing.T) {
	base := Empty()
	granted := base.Grant(Log)
	assert.False(t, base.Has(Log))
	assert.True(t, granted.Has(Log))
}
