package agents

import (
	"math"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/world"
)

// pedestrianPerceiveRadius bounds the forward-cone obstacle query for
// humans (spec §4.7 perceive step, pedestrian variant).
const pedestrianPerceiveRadius = 6.0

// pedestrianRadius is the collision radius used for the obstacle-yield
// speed cap.
const pedestrianRadius = 0.4

// walkPhaseCycle is the distance (meters) over which WalkPhase completes
// one full step cycle, used to drive leg-swing animation.
const walkPhaseCycle = 1.4

// TickHuman runs one perceive/decide/integrate pass for h (spec §4.7).
func TickHuman(grid *TransportGrid, h *world.Human, dt, now float64) {
	if h.Itinerary.HasEnded(now) {
		return
	}

	obstacle, hasObstacle := grid.NearestAhead(h.ID, h.Pos, h.Dir, pedestrianPerceiveRadius)

	desired := h.CruiseSpeed
	if hasObstacle {
		if oy := pedestrianYieldSpeed(obstacle.Distance); oy < desired {
			desired = oy
		}
	}
	if desired < 0 {
		desired = 0
	}

	dir := h.Dir
	if point, ok := h.Itinerary.GetPoint(); ok {
		toPoint := point.XY().Sub(h.Pos.XY())
		if toPoint.Len2() > 1e-9 {
			dir = toPoint.Normalized()
			if toPoint.Len() < 0.3 {
				h.Itinerary.Advance()
			}
		}
	}

	h.Speed = desired
	h.Dir = dir
	moved := h.Dir.Scale(h.Speed * dt)
	h.Pos = h.Pos.Add(geom.FromXY(moved, 0))
	h.WalkPhase = math.Mod(h.WalkPhase+moved.Len()/walkPhaseCycle, 1.0)

	if h.Speed < gridlockThreshold {
		h.GridlockFlag++
	} else {
		h.GridlockFlag = 0
	}
	if h.GridlockFlag > gridlockFlagLimit {
		h.Itinerary = pathing.None()
		h.GridlockFlag = 0
	}
}

func pedestrianYieldSpeed(dist float64) float64 {
	safeGap := pedestrianRadius * 2
	if dist <= safeGap {
		return 0
	}
	return dist - safeGap
}

// EnterBuilding moves a human to a building interior, clearing its
// itinerary and transport-grid presence (spec §8 Scenario B).
func EnterBuilding(h *world.Human, building world.Location) {
	h.Location = building
	h.Itinerary = pathing.None()
	h.Speed = 0
}

// ExitBuilding returns a human to the outside world at pos, facing dir.
func ExitBuilding(h *world.Human, pos geom.Vec3, dir geom.Vec2) {
	h.Location = world.Location{Kind: world.LocationOutside}
	h.Pos = pos
	h.Dir = dir
}
