// Package pathing implements routing over the lane graph (spec §4.3):
// A* search restricted to a PathKind's lane/turn subset, and the
// itinerary types agents carry between ticks.
//
// Grounded on entity/person/route/{router,vehicle,local,util}.go for the
// candidate-lane / partial-segment routing structure, and on
// original_source/egregoria/src/map/traversable.rs for the
// Traversable/itinerary vocabulary (Route/WaitUntil/None, has_ended,
// is_valid).
package pathing

import "github.com/citysim/engine/geom"

// Kind restricts which lane/turn subset a route may use (spec §4.3).
type Kind int

const (
	KindVehicle Kind = iota
	KindRail
	KindPedestrian
)

// ItineraryKind distinguishes the three states an agent's pending path can
// be in (spec §4.3 GLOSSARY "Itinerary").
type ItineraryKind int

const (
	ItineraryNone ItineraryKind = iota
	ItineraryWaitUntil
	ItineraryRoute
)

// TerminalTraversable identifies the final edge of a route: either a lane
// or a turn, needed by IsValid to detect a route invalidated by a map
// edit (spec §4.3 "Failure").
type TerminalTraversable struct {
	IsTurn bool
	LaneID int64
	TurnID TurnRef
}

// TurnRef mirrors mapmodel.TurnID's shape without importing mapmodel, so
// pathing stays a pure consumer of positions/lane-ids handed to it by the
// caller (the router, which does import mapmodel, fills this in).
type TurnRef struct {
	Parent int64
	Src    int64
	Dst    int64
}

// Itinerary is an agent's pending path (spec §4.3).
type Itinerary struct {
	Kind ItineraryKind

	WaitUntilTime float64

	Points   []geom.Vec3
	head     int
	Terminal TerminalTraversable
}

// None returns an idle itinerary.
func None() Itinerary { return Itinerary{Kind: ItineraryNone} }

// WaitUntil returns an itinerary that holds position until gameTime.
func WaitUntil(gameTime float64) Itinerary {
	return Itinerary{Kind: ItineraryWaitUntil, WaitUntilTime: gameTime}
}

// NewRoute returns a populated route itinerary over points, terminating at
// terminal.
func NewRoute(points []geom.Vec3, terminal TerminalTraversable) Itinerary {
	return Itinerary{Kind: ItineraryRoute, Points: points, Terminal: terminal}
}

// GetPoint returns the next waypoint the agent should steer toward.
func (it *Itinerary) GetPoint() (geom.Vec3, bool) {
	if it.Kind != ItineraryRoute || it.head >= len(it.Points) {
		return geom.Vec3{}, false
	}
	return it.Points[it.head], true
}

// Advance consumes the current head waypoint.
func (it *Itinerary) Advance() {
	if it.Kind == ItineraryRoute && it.head < len(it.Points) {
		it.head++
	}
}

// HasEnded reports whether the route's last point was consumed, or the
// wait-until time has passed, or the itinerary is idle.
func (it *Itinerary) HasEnded(now float64) bool {
	switch it.Kind {
	case ItineraryNone:
		return true
	case ItineraryWaitUntil:
		return now >= it.WaitUntilTime
	case ItineraryRoute:
		return it.head >= len(it.Points)
	default:
		return true
	}
}

// RemainingLength sums the arc length of the un-consumed portion of the
// route, for checking the routing-monotonicity testable property (spec §8
// property 6).
func (it *Itinerary) RemainingLength() float64 {
	if it.Kind != ItineraryRoute {
		return 0
	}
	var total float64
	for i := it.head + 1; i < len(it.Points); i++ {
		total += it.Points[i-1].Distance(it.Points[i])
	}
	return total
}
