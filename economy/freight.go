package economy

import (
	"math"

	"github.com/citysim/engine/dispatcher"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/world"
)

// loadDuration is the wait-until timer a freight station holds its
// assigned train for while cargo transfers (spec §4.8 "Loading (wait-until
// timer)").
const loadDuration = 30.0

// ApplyFreightDemands assigns each demand drained from the market to its
// nearest freight station (by the seller's door location), incrementing
// that station's waiting-cargo count (spec §4.8 "enqueues a freight-
// delivery task"; §8 Scenario C "tick until the station reports
// waiting_cargo = 1"). A demand with no freight station in range is
// dropped; nothing else currently fulfills it.
func ApplyFreightDemands(m *mapmodel.Map, w *world.World, demands []FreightDemand) {
	for _, d := range demands {
		fs := nearestFreightStation(m, w, d.From)
		if fs == nil {
			continue
		}
		fs.WaitingCargo += d.Quantity
	}
}

// nearestFreightStation returns the freight station whose building door is
// closest to at, or nil if the world has none.
func nearestFreightStation(m *mapmodel.Map, w *world.World, at geom.Vec2) *world.FreightStation {
	var best *world.FreightStation
	bestDist := math.Inf(1)
	for _, id := range w.FreightStationIDs() {
		fs := w.FreightStation(id)
		building := m.Building(fs.Building)
		if building == nil {
			continue
		}
		if d := at.Distance(building.Door.XY()); d < bestDist {
			bestDist = d
			best = fs
		}
	}
	return best
}

// TickFreightStation advances fs through Arriving -> Loading -> Moving
// (spec §4.8 "Freight stations implement a three-state machine per
// assigned train"). router plans the Moving leg to an external trading
// point; disp re-dispatches the train once it departs.
func TickFreightStation(m *mapmodel.Map, w *world.World, router *pathing.Router, disp *dispatcher.Dispatcher, fs *world.FreightStation, externalPoint geom.Vec3, now float64) {
	building := m.Building(fs.Building)
	if building == nil {
		return
	}

	if fs.AssignedTrain == 0 {
		if fs.WaitingCargo > 0 {
			assignTrain(w, router, disp, fs, building.Door)
		}
		return
	}

	tr := w.Train(fs.AssignedTrain)
	if tr == nil {
		fs.AssignedTrain = 0
		fs.State = world.FreightArriving
		return
	}

	switch fs.State {
	case world.FreightArriving:
		if tr.Itinerary.HasEnded(now) {
			fs.State = world.FreightLoading
			fs.LoadUntil = now + loadDuration
		}
	case world.FreightLoading:
		if now >= fs.LoadUntil {
			fs.WaitingCargo = 0
			if it, ok := router.Route(pathing.KindRail, tr.Pos, externalPoint); ok {
				tr.Itinerary = it
				fs.State = world.FreightMoving
			}
		}
	case world.FreightMoving:
		if tr.Itinerary.HasEnded(now) {
			disp.Free(dispatcher.KindFreightTrain, dispatcher.EntityID(fs.AssignedTrain))
			fs.AssignedTrain = 0
			fs.State = world.FreightArriving
		}
	}
}

// assignTrain pulls the nearest free train from the dispatcher's pool and
// routes it to the station (spec §4.6 query, consumed by §4.8).
func assignTrain(w *world.World, router *pathing.Router, disp *dispatcher.Dispatcher, fs *world.FreightStation, station geom.Vec3) {
	id, ok := disp.Query(dispatcher.KindFreightTrain, station)
	if !ok {
		return
	}
	tr := w.Train(world.EntityID(id))
	if tr == nil {
		return
	}
	it, ok := router.Route(pathing.KindRail, tr.Pos, station)
	if !ok {
		disp.Free(dispatcher.KindFreightTrain, id)
		return
	}
	tr.Itinerary = it
	fs.AssignedTrain = world.EntityID(id)
	fs.State = world.FreightArriving
}
