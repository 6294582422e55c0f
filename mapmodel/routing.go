package mapmodel

import (
	"sort"

	"github.com/citysim/engine/geom"
)

// TurnsFromLane returns, sorted by destination lane ID, every turn whose
// source is lane (spec §4.3's routing graph: "intersections are nodes,
// lanes are edges" with turns the lane-to-lane connections through a
// node).
func (m *Map) TurnsFromLane(lane LaneID) []TurnID {
	var out []TurnID
	for id := range m.turns {
		if id.Src == lane {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Dst < out[b].Dst })
	return out
}

// NearestLane returns the LaneID of the given kind whose polyline is
// closest to p, used to project a routing request's start/end pose onto
// the lane graph (spec §4.3 "when start and end project onto different
// lanes, prepend/append partial-lane segments").
func (m *Map) NearestLane(p geom.Vec2, kind LaneKind) (LaneID, geom.Vec3, float64, bool) {
	var best LaneID
	var bestPoint geom.Vec3
	bestDist := -1.0
	found := false
	target := geom.FromXY(p, 0)
	for _, id := range m.LaneIDs() {
		lane := m.lanes[id]
		if lane.Kind != kind {
			continue
		}
		point, _, d2 := lane.Line.ClosestPoint(target)
		if !found || d2 < bestDist {
			best, bestPoint, bestDist, found = id, point, d2, true
		}
	}
	return best, bestPoint, bestDist, found
}
