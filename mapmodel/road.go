package mapmodel

import "github.com/citysim/engine/geom"

// Road connects two intersections (spec §3).
type Road struct {
	ID       RoadID
	Src, Dst IntersectionID
	Line     geom.Polyline3 // generated centerline; regenerated if endpoints move
	Width    float64
	Pattern  LanePattern
	// Lanes holds every generated lane's ID in pattern order (forward then
	// backward), kept for fast lookup of OffsetInRoad.
	Lanes []LaneID
}

// LanesInDirection returns the subset of l.Lanes matching dir, left-to-right.
func (r *Road) LanesInDirection(dir Direction, lanes map[LaneID]*Lane) []LaneID {
	var out []LaneID
	for _, id := range r.Lanes {
		if l, ok := lanes[id]; ok && l.Direction == dir {
			out = append(out, id)
		}
	}
	return out
}

// Bearing returns the outgoing bearing from the given endpoint, used to
// keep each intersection's adjacency sorted (spec §3 invariant 2).
func (r *Road) Bearing(from IntersectionID) float64 {
	if len(r.Line) < 2 {
		return 0
	}
	if from == r.Src {
		return r.Line[1].XY().Sub(r.Line[0].XY()).Angle()
	}
	n := len(r.Line)
	return r.Line[n-2].XY().Sub(r.Line[n-1].XY()).Angle()
}

// OtherEnd returns the intersection on the opposite side from `from`.
func (r *Road) OtherEnd(from IntersectionID) IntersectionID {
	if from == r.Src {
		return r.Dst
	}
	return r.Src
}
