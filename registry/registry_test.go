package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresSubsystemsToTheSameMap(t *testing.T) {
	r := New(Config{Seed: 7, ClockDT: 1})

	require.NotNil(t, r.Map())
	require.NotNil(t, r.Router())
	require.NotNil(t, r.Dispatcher())
	assert.Equal(t, int64(0), r.Clock().Step)
}
