package mapmodel

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/trafficcontrol"
)

// LaneKind distinguishes what a lane carries (spec §3).
type LaneKind int

const (
	LaneDriving LaneKind = iota
	LaneWalking
	LaneParking
	LaneRail
	LaneBus
)

// Direction records whether a lane runs from the road's src to dst or the
// reverse (spec §3 "direction-from-parent").
type Direction int

const (
	DirForward Direction = iota
	DirBackward
)

// Lane is a single-direction strip of a road (spec §3).
type Lane struct {
	ID        LaneID
	Road      RoadID
	Kind      LaneKind
	Direction Direction
	OffsetInRoad int // index within the road's ordered lane list for this direction; left-to-right

	Line    geom.Polyline3 // recomputed whenever the parent road's geometry changes
	Width   float64
	Control trafficcontrol.Control

	Src, Dst IntersectionID
}

// Length returns the lane's polyline arc length.
func (l *Lane) Length() float64 { return l.Line.Length() }

// InterfacePoint returns the lane's endpoint on the given intersection side,
// which must be either l.Src or l.Dst; used to check invariant 3 (spec §3).
func (l *Lane) InterfacePoint(at IntersectionID) (geom.Vec3, bool) {
	switch at {
	case l.Src:
		return l.Line[0], true
	case l.Dst:
		return l.Line[len(l.Line)-1], true
	default:
		return geom.Vec3{}, false
	}
}
