package economy

import (
	"testing"

	"github.com/citysim/engine/dispatcher"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/trafficcontrol"
	"github.com/citysim/engine/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func railMapWithStation(t *testing.T) (*mapmodel.Map, mapmodel.BuildingID) {
	t.Helper()
	m := mapmodel.New(nil, nil, 1)
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 300, Y: 0})
	m.Intersection(a).TurnPolicy = mapmodel.TurnPolicy{Kind: mapmodel.TurnPolicyStandard}
	m.Intersection(b).TurnPolicy = mapmodel.TurnPolicy{Kind: mapmodel.TurnPolicyStandard}
	m.Intersection(a).LightPolicy = trafficcontrol.LightPolicy{Kind: trafficcontrol.NoLights}
	m.Intersection(b).LightPolicy = trafficcontrol.LightPolicy{Kind: trafficcontrol.NoLights}
	_, ok := m.Connect(a, b, nil, mapmodel.RailRoad(4))
	require.True(t, ok)

	obb := geom.NewOBB(geom.Vec2{X: 150, Y: 20}, 0, 10, 10)
	stationID, ok := m.BuildSpecialBuilding(obb, mapmodel.BuildingSpecial, geom.Vec3{X: 150, Y: 15})
	require.True(t, ok)
	return m, stationID
}

func TestTickFreightStationAssignsFreeTrainFromDispatcher(t *testing.T) {
	m, stationID := railMapWithStation(t)
	w := world.New()
	trainID := w.NewTrain(world.Train{Pos: geom.Vec3{X: 1, Y: 0}, Itinerary: pathing.None()})

	disp := dispatcher.New(m, func(id dispatcher.EntityID) bool {
		return w.Train(world.EntityID(id)) != nil
	}, func(id dispatcher.EntityID) geom.Vec3 {
		return w.Train(world.EntityID(id)).Pos
	})
	disp.Register(dispatcher.KindFreightTrain, dispatcher.EntityID(trainID))

	router := pathing.New(m)
	fs := &world.FreightStation{Building: stationID, WaitingCargo: 1}

	TickFreightStation(m, w, router, disp, fs, geom.Vec3{X: 1000, Y: 0}, 0)

	assert.Equal(t, trainID, fs.AssignedTrain)
	assert.Equal(t, world.FreightArriving, fs.State)
	assert.Equal(t, pathing.ItineraryRoute, w.Train(trainID).Itinerary.Kind)
}

func TestTickFreightStationDoesNotAssignTrainWithoutWaitingCargo(t *testing.T) {
	m, stationID := railMapWithStation(t)
	w := world.New()
	trainID := w.NewTrain(world.Train{Pos: geom.Vec3{X: 1, Y: 0}, Itinerary: pathing.None()})

	disp := dispatcher.New(m, func(id dispatcher.EntityID) bool {
		return w.Train(world.EntityID(id)) != nil
	}, func(id dispatcher.EntityID) geom.Vec3 {
		return w.Train(world.EntityID(id)).Pos
	})
	disp.Register(dispatcher.KindFreightTrain, dispatcher.EntityID(trainID))

	router := pathing.New(m)
	fs := &world.FreightStation{Building: stationID}

	TickFreightStation(m, w, router, disp, fs, geom.Vec3{X: 1000, Y: 0}, 0)

	assert.Zero(t, fs.AssignedTrain, "station has no cargo waiting, so it must not pull a train")
}

func TestApplyFreightDemandsIncrementsNearestStationWaitingCargo(t *testing.T) {
	m, stationID := railMapWithStation(t)
	w := world.New()
	fs := &world.FreightStation{Building: stationID}
	w.NewFreightStation(*fs)
	fsID := w.FreightStationIDs()[0]

	door := m.Building(stationID).Door.XY()
	demands := []FreightDemand{
		{Good: GoodFood, Quantity: 3, From: door, To: geom.Vec2{X: 9999, Y: 9999}, BuySoul: 1, SellSoul: 2},
	}

	ApplyFreightDemands(m, w, demands)

	assert.Equal(t, 3, w.FreightStation(fsID).WaitingCargo)
}

func TestTickFreightStationAdvancesThroughLoadingToMoving(t *testing.T) {
	m, stationID := railMapWithStation(t)
	w := world.New()
	trainID := w.NewTrain(world.Train{Pos: geom.Vec3{X: 1, Y: 0}, Itinerary: pathing.None()})

	disp := dispatcher.New(m, func(dispatcher.EntityID) bool { return true }, func(dispatcher.EntityID) geom.Vec3 { return geom.Vec3{} })
	fs := &world.FreightStation{Building: stationID, AssignedTrain: trainID, State: world.FreightArriving}
	router := pathing.New(m)

	TickFreightStation(m, w, router, disp, fs, geom.Vec3{X: 1000, Y: 0}, 0)
	assert.Equal(t, world.FreightLoading, fs.State)
	require.Greater(t, fs.LoadUntil, 0.0)

	TickFreightStation(m, w, router, disp, fs, geom.Vec3{X: 1000, Y: 0}, fs.LoadUntil+1)
	assert.Equal(t, world.FreightMoving, fs.State)
}
