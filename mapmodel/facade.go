package mapmodel

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/spatial"
	"github.com/citysim/engine/trafficcontrol"
)

// AddIntersection inserts a new intersection at pos with an empty road list
// (spec §4.1).
func (m *Map) AddIntersection(pos geom.Vec3) IntersectionID {
	m.nextIntersection++
	id := IntersectionID(m.nextIntersection)
	i := &Intersection{ID: id, Pos: pos, TurnPolicy: TurnPolicy{Kind: TurnPolicyNoTurns}}
	m.intersections[id] = i
	m.indexIntersection(i)
	m.publishAround(pos.XY(), 1)
	return id
}

// Connect creates a road between a and b (spec §4.1's `connect`). It fails
// (returns ok=false) when a == b, either endpoint is missing, or the
// resulting road geometry self-intersects or crosses an existing road or
// building beyond tolerance.
func (m *Map) Connect(a, b IntersectionID, interpoint *geom.Vec3, pattern LanePattern) (RoadID, bool) {
	if a == b {
		return 0, false
	}
	ia, ok1 := m.intersections[a]
	ib, ok2 := m.intersections[b]
	if !ok1 || !ok2 {
		return 0, false
	}

	line := buildCenterline(ia.Pos, ib.Pos, interpoint)
	width := pattern.TotalWidth()

	if m.wouldCollide(line, width, nil) {
		return 0, false
	}

	m.nextRoad++
	roadID := RoadID(m.nextRoad)
	road := &Road{ID: roadID, Src: a, Dst: b, Line: line, Width: width, Pattern: pattern}
	m.roads[roadID] = road

	for _, spec := range pattern.Lanes {
		m.nextLane++
		laneID := LaneID(m.nextLane)
		lane := &Lane{
			ID: laneID, Road: roadID, Kind: spec.Kind, Direction: spec.Direction,
			Width: pattern.laneWidth(spec),
		}
		if spec.Direction == DirForward {
			lane.Src, lane.Dst = a, b
		} else {
			lane.Src, lane.Dst = b, a
		}
		m.lanes[laneID] = lane
		road.Lanes = append(road.Lanes, laneID)
	}
	assignLaneOffsets(road, m.lanes)

	ia.Roads = append(ia.Roads, roadID)
	ib.Roads = append(ib.Roads, roadID)

	m.updateIntersection(a)
	m.updateIntersection(b)

	m.generateLotsAndParking(road)

	m.indexRoad(road)
	m.publishAround(line.BBox().Center(), line.Length()/2+50)

	return roadID, true
}

// wouldCollide reports whether a proposed road centerline/width crosses an
// existing road (other than `ignore`) or building beyond tolerance (spec
// §4.1 `connect`'s rejection condition; also used by `build_special_building`
// via the spatial index directly).
func (m *Map) wouldCollide(line geom.Polyline3, width float64, ignore *RoadID) bool {
	shape := spatial.PolylineShape{Line: line, Radius: width / 2}
	candidates := m.index.Query(shape, spatial.KindRoad|spatial.KindBuilding)
	for _, id := range candidates {
		if r, ok := m.roads[RoadID(id)]; ok {
			if ignore != nil && r.ID == *ignore {
				continue
			}
			return true
		}
		if _, ok := m.buildings[BuildingID(id)]; ok {
			return true
		}
	}
	return false
}

func buildCenterline(a, b geom.Vec3, interpoint *geom.Vec3) geom.Polyline3 {
	if interpoint == nil {
		return geom.Polyline3{a, b}
	}
	return geom.Polyline3{a, *interpoint, b}
}

// RemoveRoad cascades lane and turn removal and re-runs the intersection
// update on both former endpoints (spec §4.1).
func (m *Map) RemoveRoad(id RoadID) {
	road, ok := m.roads[id]
	if !ok {
		return
	}
	for _, laneID := range road.Lanes {
		delete(m.lanes, laneID)
	}
	m.index.Remove(spatial.ObjectID(id))
	delete(m.roads, id)

	for _, endID := range [2]IntersectionID{road.Src, road.Dst} {
		if end, ok := m.intersections[endID]; ok {
			end.Roads = removeRoadID(end.Roads, id)
		}
	}
	// remove lots that belonged to this road
	for lotID, lot := range m.lots {
		if lot.Road == id {
			m.index.Remove(spatial.ObjectID(lotID) + lotIDOffset)
			delete(m.lots, lotID)
		}
	}
	// remove parking spots on this road's lanes
	for spotID, spot := range m.spots {
		if !laneBelongsToRoadLanes(spot.Lane, road.Lanes) {
			continue
		}
		delete(m.spots, spotID)
	}

	m.updateIntersection(road.Src)
	m.updateIntersection(road.Dst)
	m.publishAround(road.Line.BBox().Center(), road.Line.Length()/2+50)
}

func laneBelongsToRoadLanes(l LaneID, lanes []LaneID) bool {
	for _, id := range lanes {
		if id == l {
			return true
		}
	}
	return false
}

func removeRoadID(list []RoadID, id RoadID) []RoadID {
	out := list[:0]
	for _, r := range list {
		if r != id {
			out = append(out, r)
		}
	}
	return out
}

// RemoveIntersection removes every incident road first, then the
// intersection itself (spec §4.1).
func (m *Map) RemoveIntersection(id IntersectionID) {
	i, ok := m.intersections[id]
	if !ok {
		return
	}
	// copy before iterating: RemoveRoad mutates i.Roads.
	roads := append([]RoadID(nil), i.Roads...)
	for _, r := range roads {
		m.RemoveRoad(r)
	}
	m.index.Remove(spatial.ObjectID(id) + intersectionIDOffset)
	delete(m.intersections, id)
	m.publishAround(i.Pos.XY(), 1)
}

// BuildSpecialBuilding inserts a building, failing if its OBB intersects
// any road, intersection or building in the spatial query; otherwise
// removing overlapping lots first (spec §4.1).
func (m *Map) BuildSpecialBuilding(obb geom.OBB, kind BuildingKind, door geom.Vec3) (BuildingID, bool) {
	shape := spatial.OBBShape{OBB: obb}
	hits := m.index.Query(shape, spatial.KindRoad|spatial.KindIntersection|spatial.KindBuilding)
	if len(hits) > 0 {
		return 0, false
	}

	overlapping := m.index.Query(shape, spatial.KindLot)
	for _, id := range overlapping {
		lotID := LotID(id - lotIDOffset)
		delete(m.lots, lotID)
		m.index.Remove(id)
	}

	m.nextBuilding++
	id := BuildingID(m.nextBuilding)
	b := &Building{ID: id, OBB: obb, Kind: kind, Door: door}
	m.buildings[id] = b
	m.index.Insert(spatial.ObjectID(id)+buildingIDOffset, spatial.KindBuilding, shape)
	m.publishAround(obb.Center, obb.HalfW+obb.HalfH+10)
	return id, true
}

// BuildHouse places a BuildingHouse on an existing lot, consuming it (spec
// §6 "MapBuildHouse(lot)"). Fails if the lot is already built on or no
// longer exists.
func (m *Map) BuildHouse(lotID LotID) (BuildingID, bool) {
	lot, ok := m.lots[lotID]
	if !ok {
		return 0, false
	}

	m.index.Remove(spatial.ObjectID(lotID) + lotIDOffset)
	delete(m.lots, lotID)

	m.nextBuilding++
	id := BuildingID(m.nextBuilding)
	door := geom.FromXY(lot.OBB.Center, 0)
	b := &Building{ID: id, OBB: lot.OBB, Kind: BuildingHouse, Door: door}
	m.buildings[id] = b
	m.index.Insert(spatial.ObjectID(id)+buildingIDOffset, spatial.KindBuilding, spatial.OBBShape{OBB: lot.OBB})
	m.publishAround(lot.OBB.Center, lot.OBB.HalfW+lot.OBB.HalfH+10)
	return id, true
}

// UpdateIntersectionPolicy sets an intersection's turn/light policy and
// re-runs the intersection-update algorithm so turns and signal schedules
// reflect it immediately (spec §6 "MapUpdateIntersectionPolicy").
func (m *Map) UpdateIntersectionPolicy(id IntersectionID, turn TurnPolicy, light trafficcontrol.LightPolicy) bool {
	i, ok := m.intersections[id]
	if !ok {
		return false
	}
	i.TurnPolicy = turn
	i.LightPolicy = light
	m.updateIntersection(id)
	m.publishAround(i.Pos.XY(), 1)
	return true
}

// UpdateZone sets a building's zone polygon (spec §6 "UpdateZone").
func (m *Map) UpdateZone(id BuildingID, zone []geom.Vec2) bool {
	b, ok := m.buildings[id]
	if !ok {
		return false
	}
	b.Zone = zone
	return true
}

// RemoveBuilding deletes a building (spec §6 MapRemoveBuilding).
func (m *Map) RemoveBuilding(id BuildingID) {
	b, ok := m.buildings[id]
	if !ok {
		return
	}
	m.index.Remove(spatial.ObjectID(id) + buildingIDOffset)
	delete(m.buildings, id)
	m.publishAround(b.OBB.Center, b.OBB.HalfW+b.OBB.HalfH+10)
}

// id-space offsets keep intersection/road/lot/building IDs from colliding
// inside the single spatial.Index keyspace, since each counts from 1
// independently.
const (
	intersectionIDOffset = 1 << 48
	lotIDOffset           = 2 << 48
	buildingIDOffset      = 3 << 48
)

func (m *Map) indexIntersection(i *Intersection) {
	shape := spatial.Circle{Center: i.Pos.XY(), Radius: 5}
	m.index.Insert(spatial.ObjectID(i.ID)+intersectionIDOffset, spatial.KindIntersection, shape)
}

func (m *Map) indexRoad(r *Road) {
	shape := spatial.PolylineShape{Line: r.Line, Radius: r.Width / 2}
	m.index.Insert(spatial.ObjectID(r.ID), spatial.KindRoad, shape)
}

func (m *Map) publishAround(center geom.Vec2, radius float64) {
	if m.bus == nil {
		return
	}
	box := geom.NewAABB(
		geom.Vec2{X: center.X - radius, Y: center.Y - radius},
		geom.Vec2{X: center.X + radius, Y: center.Y + radius},
	)
	m.bus.Publish(chunksOf(box))
}
