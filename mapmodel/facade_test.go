package mapmodel

import (
	"math"
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/trafficcontrol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap() *Map {
	return New(nil, nil, 1)
}

func TestConnectRejectsSelfLoop(t *testing.T) {
	m := newTestMap()
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	_, ok := m.Connect(a, a, nil, TwoWayRoad(1, 3.5))
	assert.False(t, ok)
}

func TestConnectBuildsLanesAndSortsAdjacencyByBearing(t *testing.T) {
	m := newTestMap()
	center := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	east := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	north := m.AddIntersection(geom.Vec3{X: 0, Y: 100})
	south := m.AddIntersection(geom.Vec3{X: 0, Y: -100})

	_, ok := m.Connect(center, east, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)
	_, ok = m.Connect(center, north, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)
	_, ok = m.Connect(center, south, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)

	i := m.Intersection(center)
	require.Len(t, i.Roads, 3)

	var bearings []float64
	for _, rid := range i.Roads {
		bearings = append(bearings, m.Road(rid).Bearing(center))
	}
	for k := 1; k < len(bearings); k++ {
		assert.LessOrEqual(t, bearings[k-1], bearings[k])
	}
}

func TestConnectRejectsCrossingRoad(t *testing.T) {
	m := newTestMap()
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	c := m.AddIntersection(geom.Vec3{X: 50, Y: -50})
	d := m.AddIntersection(geom.Vec3{X: 50, Y: 50})

	_, ok := m.Connect(a, b, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)

	_, ok = m.Connect(c, d, nil, TwoWayRoad(1, 3.5))
	assert.False(t, ok, "a road crossing an existing one must be rejected")
}

func TestRemoveRoadClearsLanesAndReUpdatesEndpoints(t *testing.T) {
	m := newTestMap()
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	road, ok := m.Connect(a, b, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)

	laneIDs := append([]LaneID(nil), m.Road(road).Lanes...)

	m.RemoveRoad(road)

	assert.Nil(t, m.Road(road))
	for _, lid := range laneIDs {
		assert.Nil(t, m.Lane(lid))
	}
	assert.Empty(t, m.Intersection(a).Roads)
	assert.Empty(t, m.Intersection(b).Roads)
}

func TestRemoveIntersectionCascadesThroughRoads(t *testing.T) {
	m := newTestMap()
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	road, ok := m.Connect(a, b, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)

	m.RemoveIntersection(a)

	assert.Nil(t, m.Intersection(a))
	assert.Nil(t, m.Road(road))
}

func TestLightPolicyAssignedToIncomingLanesAtFourWayIntersection(t *testing.T) {
	m := newTestMap()
	center := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	e := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	n := m.AddIntersection(geom.Vec3{X: 0, Y: 100})
	w := m.AddIntersection(geom.Vec3{X: -100, Y: 0})
	s := m.AddIntersection(geom.Vec3{X: 0, Y: -100})

	m.Intersection(center).LightPolicy = trafficcontrol.LightPolicy{
		Kind: trafficcontrol.Lights, CycleSize: 14, OrangeLength: 4,
	}
	m.Intersection(center).TurnPolicy = TurnPolicy{Kind: TurnPolicyStandard}

	for _, other := range []IntersectionID{e, n, w, s} {
		_, ok := m.Connect(center, other, nil, TwoWayRoad(1, 3.5))
		require.True(t, ok)
	}

	i := m.Intersection(center)
	require.Len(t, i.Roads, 4)

	found := 0
	for _, rid := range i.Roads {
		for _, lid := range m.Road(rid).Lanes {
			lane := m.Lane(lid)
			if lane.Dst == center && lane.Kind == LaneDriving {
				found++
				require.Equal(t, trafficcontrol.Light, lane.Control.Kind)
				period := lane.Control.Schedule.Period()
				assert.InDelta(t, 28.0, period, 1e-6)
			}
		}
	}
	assert.Equal(t, 4, found)
}

func TestBuildSpecialBuildingRejectsOverlapWithRoad(t *testing.T) {
	m := newTestMap()
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	_, ok := m.Connect(a, b, nil, TwoWayRoad(1, 3.5))
	require.True(t, ok)

	obb := geom.NewOBB(geom.Vec2{X: 50, Y: 0}, 0, 10, 10)
	_, ok = m.BuildSpecialBuilding(obb, BuildingSpecial, geom.Vec3{X: 50, Y: 5, Z: 0})
	assert.False(t, ok)
}

func TestBuildSpecialBuildingSucceedsAwayFromRoads(t *testing.T) {
	m := newTestMap()
	obb := geom.NewOBB(geom.Vec2{X: 500, Y: 500}, math.Pi/4, 10, 10)
	id, ok := m.BuildSpecialBuilding(obb, BuildingSpecial, geom.Vec3{X: 500, Y: 505, Z: 0})
	require.True(t, ok)
	assert.NotNil(t, m.Building(id))
}
