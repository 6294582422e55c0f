package pathing

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/trafficcontrol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightRoadMap(t *testing.T) (*mapmodel.Map, mapmodel.IntersectionID, mapmodel.IntersectionID) {
	t.Helper()
	m := mapmodel.New(nil, nil, 1)
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 200, Y: 0})
	m.Intersection(a).TurnPolicy = mapmodel.TurnPolicy{Kind: mapmodel.TurnPolicyStandard}
	m.Intersection(b).TurnPolicy = mapmodel.TurnPolicy{Kind: mapmodel.TurnPolicyStandard}
	m.Intersection(a).LightPolicy = trafficcontrol.LightPolicy{Kind: trafficcontrol.NoLights}
	m.Intersection(b).LightPolicy = trafficcontrol.LightPolicy{Kind: trafficcontrol.NoLights}
	_, ok := m.Connect(a, b, nil, mapmodel.TwoWayRoad(1, 3.5))
	require.True(t, ok)
	return m, a, b
}

func TestRouteVehicleStraightRoadSatisfiesMonotonicity(t *testing.T) {
	m, _, _ := straightRoadMap(t)
	r := New(m)

	from := geom.Vec3{X: 1, Y: -1.75}
	to := geom.Vec3{X: 199, Y: -1.75}
	it, ok := r.Route(KindVehicle, from, to)
	require.True(t, ok)
	require.Equal(t, ItineraryRoute, it.Kind)

	straightLine := from.Distance(to)
	var routeLen float64
	for i := 1; i < len(it.Points); i++ {
		routeLen += it.Points[i-1].Distance(it.Points[i])
	}
	assert.LessOrEqual(t, straightLine, routeLen+1e-6)
}

func TestRouteReturnsFalseWithNoMatchingLaneKind(t *testing.T) {
	m := mapmodel.New(nil, nil, 1)
	r := New(m)
	_, ok := r.Route(KindVehicle, geom.Vec3{}, geom.Vec3{X: 10})
	assert.False(t, ok)
}

func TestItineraryIsValidFalseAfterLaneRemoved(t *testing.T) {
	m, a, _ := straightRoadMap(t)
	r := New(m)
	it, ok := r.Route(KindVehicle, geom.Vec3{X: 1, Y: -1.75}, geom.Vec3{X: 199, Y: -1.75})
	require.True(t, ok)
	assert.True(t, it.IsValid(m))

	m.RemoveIntersection(a)
	assert.False(t, it.IsValid(m))
}
