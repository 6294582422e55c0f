package dispatcher

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryReturnsClosestFreeEntityAndRemovesIt(t *testing.T) {
	positions := map[EntityID]geom.Vec3{
		1: {X: 0, Y: 0},
		2: {X: 100, Y: 0},
		3: {X: 10, Y: 0},
	}
	d := New(nil, func(EntityID) bool { return true }, func(id EntityID) geom.Vec3 { return positions[id] })
	d.Register(KindDeliveryTruck, 1)
	d.Register(KindDeliveryTruck, 2)
	d.Register(KindDeliveryTruck, 3)

	id, ok := d.Query(KindDeliveryTruck, geom.Vec3{X: 9, Y: 0})
	require.True(t, ok)
	assert.Equal(t, EntityID(3), id)
	assert.Equal(t, 2, d.FreeCount(KindDeliveryTruck))
}

func TestQueryReclaimsDeadEntitiesLazily(t *testing.T) {
	dead := map[EntityID]bool{1: true}
	d := New(nil, func(id EntityID) bool { return !dead[id] }, func(EntityID) geom.Vec3 { return geom.Vec3{} })
	d.Register(KindFreightTrain, 1)
	d.Register(KindFreightTrain, 2)

	id, ok := d.Query(KindFreightTrain, geom.Vec3{})
	require.True(t, ok)
	assert.Equal(t, EntityID(2), id)
}

func TestFreeReturnsEntityToPool(t *testing.T) {
	d := New(nil, func(EntityID) bool { return true }, func(EntityID) geom.Vec3 { return geom.Vec3{} })
	d.Register(KindDeliveryTruck, 1)
	id, ok := d.Query(KindDeliveryTruck, geom.Vec3{})
	require.True(t, ok)
	assert.Equal(t, 0, d.FreeCount(KindDeliveryTruck))

	d.Free(KindDeliveryTruck, id)
	assert.Equal(t, 1, d.FreeCount(KindDeliveryTruck))
}
