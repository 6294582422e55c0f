package agents

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/trafficcontrol"
	"github.com/citysim/engine/world"
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

func carClass() world.VehicleClass {
	return world.VehicleClass{
		Name:               "car",
		Cruising:           1.0,
		MaxSpeedMultiplier: 1.0,
		Acceleration:       3.0,
		Deceleration:       6.0,
		AngAcc:             4.0,
		Length:             4.5,
	}
}

func TestTickVehicleAcceleratesTowardDesiredSpeedWithoutExceedingAccelBound(t *testing.T) {
	m, _, _ := straightRoadMap(t)
	grid := NewTransportGrid()
	w := world.New()
	grid.Rebuild(w)

	v := &world.Vehicle{
		Class:     carClass(),
		Pos:       geom.Vec3{X: 1, Y: -1.75},
		Dir:       geom.Vec2{X: 1, Y: 0},
		Itinerary: pathing.NewRoute([]geom.Vec3{{X: 50, Y: -1.75}}, pathing.TerminalTraversable{}),
	}

	TickVehicle(m, grid, nil, v, 0.1, 0)
	assert.LessOrEqual(t, v.Speed, v.Class.Acceleration*0.1+1e-9)
	assert.Greater(t, v.Pos.X, 1.0)
}

func TestTickVehicleStaysParkedUntilUnparked(t *testing.T) {
	v := &world.Vehicle{Class: carClass(), State: world.VehicleParked, Pos: geom.Vec3{X: 5}}
	grid := NewTransportGrid()
	TickVehicle(nil, grid, nil, v, 0.1, 0)
	assert.Equal(t, world.VehicleParked, v.State)
	assert.Equal(t, 5.0, v.Pos.X)
}

func TestDetectGridlockSwitchesToPanickingAfterSustainedStall(t *testing.T) {
	v := &world.Vehicle{Class: carClass(), Itinerary: pathing.NewRoute([]geom.Vec3{{X: 1}}, pathing.TerminalTraversable{})}
	for i := 0; i < gridlockFlagLimit+1; i++ {
		detectGridlock(v, 0.1)
	}
	assert.Equal(t, world.VehiclePanicking, v.State)
	assert.Equal(t, pathing.ItineraryNone, v.Itinerary.Kind)
}

func TestBeginParkingThenTickParkingTransitionReachesParked(t *testing.T) {
	v := &world.Vehicle{
		Class: carClass(),
		Pos:   geom.Vec3{X: 0, Y: 0},
		Dir:   geom.Vec2{X: 1, Y: 0},
	}
	BeginParking(v, mapmodel.ParkingSpotID(1), geom.Vec3{X: 10, Y: 5}, 0, 0)
	assert.Equal(t, world.VehicleRoadToPark, v.State)

	tickParkingTransition(v, 0.1, timeToPark*0.5)
	assert.Equal(t, world.VehicleRoadToPark, v.State)
	assert.NotEqual(t, geom.Vec3{}, v.Pos)

	tickParkingTransition(v, 0.1, timeToPark+1)
	assert.Equal(t, world.VehicleParked, v.State)
	assert.Equal(t, 10.0, v.Pos.X)
	assert.Equal(t, 5.0, v.Pos.Y)
}

func TestTickHumanMovesTowardWaypointAndAdvancesWalkPhase(t *testing.T) {
	grid := NewTransportGrid()
	w := world.New()
	grid.Rebuild(w)

	h := &world.Human{
		Pos:         geom.Vec3{X: 0, Y: 0},
		Dir:         geom.Vec2{X: 1, Y: 0},
		CruiseSpeed: 1.3,
		Itinerary:   pathing.NewRoute([]geom.Vec3{{X: 10, Y: 0}}, pathing.TerminalTraversable{}),
	}
	TickHuman(grid, h, 1.0, 0)
	assert.Greater(t, h.Pos.X, 0.0)
	assert.Greater(t, h.WalkPhase, 0.0)
}

func TestTickHumanYieldsForCloseObstacleAhead(t *testing.T) {
	grid := NewTransportGrid()
	w := world.New()
	blockerID := w.NewHuman(world.Human{Pos: geom.Vec3{X: 0.5, Y: 0}})
	grid.Rebuild(w)

	h := &world.Human{
		ID:          blockerID + 1,
		Pos:         geom.Vec3{X: 0, Y: 0},
		Dir:         geom.Vec2{X: 1, Y: 0},
		CruiseSpeed: 1.3,
		Itinerary:   pathing.NewRoute([]geom.Vec3{{X: 10, Y: 0}}, pathing.TerminalTraversable{}),
	}
	TickHuman(grid, h, 1.0, 0)
	assert.Less(t, h.Speed, h.CruiseSpeed)
}

func TestTickTrainAdvancesAlongLaneAndStopsAtItsEnd(t *testing.T) {
	m, _, _ := straightRoadMap(t)
	var railLane mapmodel.LaneID
	for _, id := range m.LaneIDs() {
		if m.Lane(id).Kind == mapmodel.LaneDriving {
			railLane = id
			break
		}
	}
	require.NotZero(t, railLane)

	tr := &world.Train{
		Lane:      world.LaneProgress{Lane: railLane, S: 0},
		Itinerary: pathing.None(),
	}
	for i := 0; i < 50; i++ {
		TickTrain(m, tr, 0.5)
	}
	assert.Greater(t, tr.Lane.S, 0.0)
	assert.InDelta(t, m.Lane(railLane).Length(), tr.Lane.S, 1e-9)
}

func TestAssignWagonOffsetsSpacesWagonsByIndex(t *testing.T) {
	w := world.New()
	w1 := w.NewWagon(world.Wagon{})
	w2 := w.NewWagon(world.Wagon{})
	tr := &world.Train{Wagons: []world.EntityID{w1, w2}}
	AssignWagonOffsets(w, tr)
	assert.Less(t, w.Wagon(w1).OffsetAlongTrain, w.Wagon(w2).OffsetAlongTrain)
}

func TestWagonPoseFollowsBehindLocomotiveAlongLane(t *testing.T) {
	m, _, _ := straightRoadMap(t)
	var lane mapmodel.LaneID
	for _, id := range m.LaneIDs() {
		if m.Lane(id).Kind == mapmodel.LaneDriving {
			lane = id
			break
		}
	}
	tr := &world.Train{Lane: world.LaneProgress{Lane: lane, S: 50}}
	wg := &world.Wagon{OffsetAlongTrain: wagonSpacing}

	locoPos, _ := m.Lane(lane).Line.PointAt(tr.Lane.S)
	wagonPos, _, ok := WagonPose(m, tr, wg)
	require.True(t, ok)
	assert.Less(t, wagonPos.X, locoPos.X)
}
