package parking

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roadWithParking(t *testing.T) *mapmodel.Map {
	m, _ := roadWithParkingEnds(t)
	return m
}

func roadWithParkingEnds(t *testing.T) (*mapmodel.Map, mapmodel.IntersectionID) {
	t.Helper()
	m := mapmodel.New(nil, nil, 1)
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 200, Y: 0})
	pattern := mapmodel.LanePattern{
		Width: 3.5,
		Lanes: []mapmodel.LaneSpec{
			{Kind: mapmodel.LaneDriving, Direction: mapmodel.DirForward},
			{Kind: mapmodel.LaneParking, Direction: mapmodel.DirForward},
		},
	}
	_, ok := m.Connect(a, b, nil, pattern)
	require.True(t, ok)
	return m, b
}

func TestReserveNearThenFreeRestoresAvailability(t *testing.T) {
	m := roadWithParking(t)
	mgr := New(m)

	require.NotZero(t, len(m.ParkingSpotIDs()), "expected generated parking spots")

	r, ok := mgr.ReserveNear(geom.Vec2{X: 10, Y: -2})
	require.True(t, ok)
	assert.Equal(t, 1, mgr.ReservedCount())

	mgr.Free(r)
	assert.Equal(t, 0, mgr.ReservedCount())
}

func TestReserveNearSkipsAlreadyReservedSpots(t *testing.T) {
	m := roadWithParking(t)
	mgr := New(m)

	total := len(m.ParkingSpotIDs())
	var tokens []Reservation
	for i := 0; i < total; i++ {
		r, ok := mgr.ReserveNear(geom.Vec2{X: 10, Y: -2})
		require.True(t, ok)
		tokens = append(tokens, r)
	}
	assert.Equal(t, total, mgr.ReservedCount())

	_, ok := mgr.ReserveNear(geom.Vec2{X: 10, Y: -2})
	assert.False(t, ok, "no spots left")

	for _, tok := range tokens {
		mgr.Free(tok)
	}
}

func TestGCRebindsReservationWhenLaneGeometryRegenerates(t *testing.T) {
	m, b := roadWithParkingEnds(t)
	mgr := New(m)

	r, ok := mgr.ReserveNear(geom.Vec2{X: 10, Y: -2})
	require.True(t, ok)
	oldSpot := r.Spot
	require.NotNil(t, m.ParkingSpot(oldSpot))

	// Connecting a third road to b re-runs b's intersection update, which
	// re-trims and regenerates every incident lane's parking spots -
	// including the original road's, even though this reservation was
	// taken nowhere near b.
	c := m.AddIntersection(geom.Vec3{X: 200, Y: 200})
	_, ok = m.Connect(b, c, nil, mapmodel.TwoWayRoad(1, 3.5))
	require.True(t, ok)

	require.Nil(t, m.ParkingSpot(oldSpot), "old spot should have been replaced")

	mgr.GC()
	assert.Equal(t, 1, mgr.ReservedCount(), "reservation should have been re-bound, not dropped")
}

func TestFreeIsIdempotent(t *testing.T) {
	m := roadWithParking(t)
	mgr := New(m)
	r, ok := mgr.ReserveNear(geom.Vec2{X: 10, Y: -2})
	require.True(t, ok)
	mgr.Free(r)
	mgr.Free(r)
	assert.Equal(t, 0, mgr.ReservedCount())
}
