package pathing

import (
	"math"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/internal/container"
	"github.com/citysim/engine/mapmodel"
)

// maxExpandedNodes bounds A* work per call (spec §5 "bounded work per
// call... exceeding the cap returns a soft failure").
const maxExpandedNodes = 20000

// Router produces itineraries over a map's lane graph, restricted to a
// Kind's permitted lane/turn subset (spec §4.3).
type Router struct {
	m *mapmodel.Map
}

// New returns a router bound to m. Routers are stateless beyond the map
// reference; nothing here is itself mutated.
func New(m *mapmodel.Map) *Router {
	return &Router{m: m}
}

func laneKindFor(k Kind) mapmodel.LaneKind {
	switch k {
	case KindRail:
		return mapmodel.LaneRail
	case KindPedestrian:
		return mapmodel.LaneWalking
	default:
		return mapmodel.LaneDriving
	}
}

// Route searches for a path of the given kind from `from` to `to`,
// returning a populated Route itinerary, or ok=false on "no path" (spec
// §4.3 "Routing returns either a populated itinerary or 'no path'").
func (r *Router) Route(kind Kind, from, to geom.Vec3) (Itinerary, bool) {
	laneKind := laneKindFor(kind)

	startLane, startPoint, _, ok := r.m.NearestLane(from.XY(), laneKind)
	if !ok {
		return Itinerary{}, false
	}
	goalLane, goalPoint, _, ok := r.m.NearestLane(to.XY(), laneKind)
	if !ok {
		return Itinerary{}, false
	}

	if startLane == goalLane {
		return NewRoute([]geom.Vec3{startPoint, goalPoint}, terminalLane(goalLane)), true
	}

	path, ok := r.astar(startLane, goalLane)
	if !ok {
		return Itinerary{}, false
	}

	points := []geom.Vec3{startPoint}
	for _, lid := range path {
		lane := r.m.Lane(lid)
		if lane == nil {
			continue
		}
		points = append(points, lane.Line...)
	}
	points = append(points, goalPoint)

	return NewRoute(points, terminalLane(goalLane)), true
}

func terminalLane(id mapmodel.LaneID) TerminalTraversable {
	return TerminalTraversable{IsTurn: false, LaneID: int64(id)}
}

type astarNode struct {
	lane mapmodel.LaneID
	via  mapmodel.TurnID // zero value when this is the start node
}

// astar runs A* over lanes-as-nodes, turns-as-edges, with Euclidean
// heuristic on lane endpoint positions and cost = polyline length. The
// priority queue compares priorities only: entries with equal priority
// come out in container/heap's sift order, which is deterministic for a
// given push sequence but is not ordered by lane ID.
func (r *Router) astar(start, goal mapmodel.LaneID) ([]mapmodel.LaneID, bool) {
	goalLane := r.m.Lane(goal)
	if goalLane == nil {
		return nil, false
	}
	goalPos := endPos(goalLane)

	open := container.NewPriorityQueue[mapmodel.LaneID]()
	gScore := map[mapmodel.LaneID]float64{start: 0}
	cameFrom := map[mapmodel.LaneID]mapmodel.LaneID{}
	visited := map[mapmodel.LaneID]bool{}

	open.Push(start, heuristic(r.m.Lane(start), goalPos))

	expanded := 0
	for open.Len() > 0 {
		current, _ := open.Pop()
		if visited[current] {
			continue
		}
		visited[current] = true
		expanded++
		if expanded > maxExpandedNodes {
			return nil, false
		}
		if current == goal {
			return reconstruct(cameFrom, current), true
		}

		lane := r.m.Lane(current)
		if lane == nil {
			continue
		}
		for _, turnID := range r.m.TurnsFromLane(current) {
			turn := r.m.Turn(turnID)
			next := turnID.Dst
			if turn == nil || visited[next] {
				continue
			}
			nextLane := r.m.Lane(next)
			if nextLane == nil || nextLane.Kind != lane.Kind {
				continue
			}
			tentative := gScore[current] + lane.Length() + turn.Line.Length()
			if best, ok := gScore[next]; ok && tentative >= best {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current
			open.Push(next, tentative+heuristic(nextLane, goalPos))
		}
	}
	return nil, false
}

func heuristic(lane *mapmodel.Lane, goal geom.Vec3) float64 {
	if lane == nil {
		return math.Inf(1)
	}
	return endPos(lane).Distance(goal)
}

func endPos(lane *mapmodel.Lane) geom.Vec3 {
	if len(lane.Line) == 0 {
		return geom.Vec3{}
	}
	return lane.Line[len(lane.Line)-1]
}

func reconstruct(cameFrom map[mapmodel.LaneID]mapmodel.LaneID, goal mapmodel.LaneID) []mapmodel.LaneID {
	path := []mapmodel.LaneID{goal}
	for {
		prev, ok := cameFrom[path[0]]
		if !ok {
			break
		}
		path = append([]mapmodel.LaneID{prev}, path...)
	}
	return path
}

// IsValid reports whether the route's terminal lane or turn still exists
// in m (spec §4.3 "if any lane/turn in the route is removed mid-route,
// is_valid(map) returns false"). Since Itinerary stores world points rather
// than lane IDs along its whole length, only the terminal traversable is
// checked; removal of an intermediate lane is not detected here.
func (it *Itinerary) IsValid(m *mapmodel.Map) bool {
	if it.Kind != ItineraryRoute {
		return true
	}
	if it.Terminal.IsTurn {
		return m.Turn(mapmodel.TurnID{
			Parent: mapmodel.IntersectionID(it.Terminal.TurnID.Parent),
			Src:    mapmodel.LaneID(it.Terminal.TurnID.Src),
			Dst:    mapmodel.LaneID(it.Terminal.TurnID.Dst),
		}) != nil
	}
	return m.Lane(mapmodel.LaneID(it.Terminal.LaneID)) != nil
}
