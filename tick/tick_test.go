package tick

import (
	"testing"

	"github.com/citysim/engine/command"
	"github.com/citysim/engine/dispatcher"
	"github.com/citysim/engine/economy"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/registry"
	"github.com/citysim/engine/trafficcontrol"
	"github.com/citysim/engine/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver() (*Driver, *registry.Registry) {
	reg := registry.New(registry.Config{Seed: 1, ClockDT: 1})
	return New(reg, geom.Vec3{X: 1000, Y: 0}), reg
}

func TestTickAppliesCommandInInsertionOrderThenAdvancesClock(t *testing.T) {
	d, reg := newTestDriver()
	a := reg.Map().AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := reg.Map().AddIntersection(geom.Vec3{X: 100, Y: 0})

	cmds := []command.WorldCommand{
		{
			Kind: command.KindMapMakeConnection,
			MapMakeConnection: &command.MapMakeConnection{
				From: a, To: b, Pattern: mapmodel.TwoWayRoad(1, 3.5),
			},
		},
	}

	startStep := reg.Clock().Step
	d.Tick(cmds)

	assert.Equal(t, startStep+1, reg.Clock().Step)
	assert.Len(t, reg.Map().Intersection(a).Roads, 1)
}

func TestTickAdvancesVehicleAlongItsItinerary(t *testing.T) {
	d, reg := newTestDriver()
	w := reg.World()

	itinerary := pathing.NewRoute([]geom.Vec3{{X: 50, Y: 0}}, pathing.TerminalTraversable{})
	id := w.NewVehicle(world.Vehicle{
		Class: world.VehicleClass{
			Name: "car", Cruising: 1, MaxSpeedMultiplier: 1,
			Acceleration: 3, Deceleration: 6, AngAcc: 4, Length: 4.5,
		},
		Pos: geom.Vec3{X: 0, Y: 0}, Dir: geom.Vec2{X: 1, Y: 0},
		Itinerary: itinerary,
	})

	for i := 0; i < 5; i++ {
		d.Tick(nil)
	}

	v := w.Vehicle(id)
	assert.Greater(t, v.Pos.X, 0.0)
}

func TestTickHashChangesAsWorldStateChanges(t *testing.T) {
	d, reg := newTestDriver()
	before := d.hash()

	reg.World().NewHuman(world.Human{Pos: geom.Vec3{X: 1, Y: 1}})
	after := d.hash()

	assert.NotEqual(t, before, after)
}

// TestFreightLoopReportsWaitingCargoThenDispatchesTrain exercises spec §8
// Scenario C end to end through the tick driver: a matched trade's
// FreightDemand must turn into the station's waiting_cargo, and only once
// that happens does the station pull a train from the dispatcher.
func TestFreightLoopReportsWaitingCargoThenDispatchesTrain(t *testing.T) {
	d, reg := newTestDriver()
	m := reg.Map()
	w := reg.World()

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
	w.NewFreightStation(world.FreightStation{Building: stationID})
	fsID := w.FreightStationIDs()[0]

	trainID := w.NewTrain(world.Train{Pos: geom.Vec3{X: 1, Y: 0}, Itinerary: pathing.None()})
	reg.Dispatcher().Register(dispatcher.KindFreightTrain, dispatcher.EntityID(trainID))

	buyer := economy.NewSoul(1, 100)
	seller := economy.NewSoul(2, 0)
	reg.Market().Register(buyer)
	reg.Market().Register(seller)
	buyer.PlaceBuy(economy.GoodFood, 1, 10, geom.Vec2{X: 150, Y: 15})
	seller.PlaceSell(economy.GoodFood, 1, 8, geom.Vec2{X: 150, Y: 15})

	d.Tick(nil)

	fs := w.FreightStation(fsID)
	assert.Equal(t, 1, fs.WaitingCargo, "matched trade should have been applied to the nearest station")
	assert.Equal(t, trainID, fs.AssignedTrain, "station should dispatch a train once cargo is waiting")
}

func TestTickConsumesResetSaveCommand(t *testing.T) {
	d, _ := newTestDriver()
	cmds := []command.WorldCommand{
		{Kind: command.KindResetSave, ResetSave: &command.ResetSave{}},
	}
	d.Tick(cmds)

	require.True(t, d.Sim().ResetRequested)
}
