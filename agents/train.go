package agents

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/world"
)

// trainCruiseFraction is how much of the rail lane's speed limit a train
// targets absent any other constraint.
const trainCruiseFraction = 0.9

// wagonSpacing is the along-track gap reserved for each wagon behind the
// locomotive (spec §4.7 "Trains: snap to rail polyline ... wagons trail at
// a fixed offset").
const wagonSpacing = 12.0

// TickTrain advances a train's along-track progress (spec §4.7 "Trains:
// snap to rail polyline with a length-along-track parameter"). Wagon
// poses are derived on demand via WagonPose rather than stored.
func TickTrain(m *mapmodel.Map, tr *world.Train, dt float64) {
	lane := m.Lane(tr.Lane.Lane)
	if lane == nil {
		return
	}

	limit := laneSpeedLimit(mapmodel.LaneRail) * trainCruiseFraction
	if tr.Speed < limit {
		tr.Speed += limit * dt // rail traction is effectively unbounded relative to road vehicles
	}
	if tr.Speed > limit {
		tr.Speed = limit
	}

	tr.Lane.S += tr.Speed * dt
	length := lane.Length()
	if tr.Lane.S >= length {
		advanceToNextLane(m, tr, tr.Lane.S-length)
		lane = m.Lane(tr.Lane.Lane)
		if lane == nil {
			return
		}
	}

	pos, tan := lane.Line.PointAt(tr.Lane.S)
	tr.Pos = pos
	if tan.Len2() > 1e-9 {
		tr.Dir = tan.XY().Normalized()
	}
}

// advanceToNextLane moves the train onto the next lane along its
// itinerary once it overruns the current one, carrying over the leftover
// arc length.
func advanceToNextLane(m *mapmodel.Map, tr *world.Train, overrun float64) {
	if _, ok := tr.Itinerary.GetPoint(); !ok {
		tr.Lane.S = m.Lane(tr.Lane.Lane).Length()
		return
	}
	tr.Itinerary.Advance()
	if tr.Itinerary.Terminal.IsTurn {
		return
	}
	next := mapmodel.LaneID(tr.Itinerary.Terminal.LaneID)
	if m.Lane(next) == nil {
		return
	}
	tr.Lane = world.LaneProgress{Lane: next, S: overrun}
}

// WagonPose returns a wagon's world position and heading given its
// train's current lane, recomputed on demand rather than cached per-tick
// (spec §4.7 "wagons trail at a fixed offset").
func WagonPose(m *mapmodel.Map, tr *world.Train, wg *world.Wagon) (geom.Vec3, geom.Vec2, bool) {
	lane := m.Lane(tr.Lane.Lane)
	if lane == nil {
		return geom.Vec3{}, geom.Vec2{}, false
	}
	s := tr.Lane.S - wg.OffsetAlongTrain
	if s < 0 {
		s = 0
	}
	pos, tan := lane.Line.PointAt(s)
	dir := geom.Vec2{}
	if tan.Len2() > 1e-9 {
		dir = tan.XY().Normalized()
	}
	return pos, dir, true
}

// AssignWagonOffsets sets each wagon's along-train offset from its index
// in the consist, spacing them by wagonSpacing.
func AssignWagonOffsets(w *world.World, tr *world.Train) {
	for i, id := range tr.Wagons {
		wagon := w.Wagon(id)
		if wagon == nil {
			continue
		}
		wagon.OffsetAlongTrain = float64(i+1) * wagonSpacing
	}
}
