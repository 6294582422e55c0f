package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIDsAreUniqueAcrossKinds(t *testing.T) {
	w := New()
	v := w.NewVehicle(Vehicle{})
	h := w.NewHuman(Human{})
	assert.NotEqual(t, v, h)

	kv, ok := w.KindOf(v)
	require.True(t, ok)
	assert.Equal(t, KindVehicle, kv)

	kh, ok := w.KindOf(h)
	require.True(t, ok)
	assert.Equal(t, KindHuman, kh)
}

func TestRemoveClearsBothStoreAndKindIndex(t *testing.T) {
	w := New()
	id := w.NewVehicle(Vehicle{Speed: 5})
	require.NotNil(t, w.Vehicle(id))

	w.Remove(id)
	assert.Nil(t, w.Vehicle(id))
	_, ok := w.KindOf(id)
	assert.False(t, ok)
}

func TestSortedIDsAreAscending(t *testing.T) {
	w := New()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, w.NewVehicle(Vehicle{}))
	}
	got := w.VehicleIDs()
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
}
