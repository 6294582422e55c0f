package mapmodel

import (
	"math"
	"sort"

	"github.com/citysim/engine/broadcast"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/spatial"
	"github.com/citysim/engine/trafficcontrol"
)

// chunksOf adapts a ground-plane AABB to the broadcast chunk set it
// overlaps.
func chunksOf(box geom.AABB) []broadcast.ChunkID {
	return broadcast.ChunksOf(box)
}

// minSinAngle is the floor used in the interface-radius formula so that a
// near-straight-through road pair (angle close to 0 or pi) doesn't blow the
// pullback distance to infinity.
const minSinAngle = 0.2

// assignLaneOffsets sets each lane's OffsetInRoad, left-to-right within its
// direction (spec §3 "ordered lane IDs per direction").
func assignLaneOffsets(road *Road, lanes map[LaneID]*Lane) {
	fwd, bwd := 0, 0
	for _, id := range road.Lanes {
		l := lanes[id]
		if l.Direction == DirForward {
			l.OffsetInRoad = fwd
			fwd++
		} else {
			l.OffsetInRoad = bwd
			bwd++
		}
	}
}

// updateIntersection re-runs the full intersection-update algorithm for id
// (spec §4.1 "Intersection update algorithm"): sort incident roads by
// bearing, compute each road's interface pullback radius, trim/recompute
// lane polylines, recompute the intersection polygon, regenerate turns and
// reapply the light policy. Every mutating operation that touches an
// intersection's adjacency calls this before returning.
func (m *Map) updateIntersection(id IntersectionID) {
	i, ok := m.intersections[id]
	if !ok {
		return
	}
	if len(i.Roads) == 0 {
		i.Polygon = nil
		i.Turns = nil
		return
	}

	sort.Slice(i.Roads, func(a, b int) bool {
		ra, rb := m.roads[i.Roads[a]], m.roads[i.Roads[b]]
		return ra.Bearing(id) < rb.Bearing(id)
	})

	n := len(i.Roads)
	interfaceRadius := make(map[RoadID]float64, n)
	for k, rid := range i.Roads {
		road := m.roads[rid]
		prev := m.roads[i.Roads[(k-1+n)%n]]
		next := m.roads[i.Roads[(k+1)%n]]
		angle := smallestAngleBetween(road.Bearing(id), prev.Bearing(id))
		if n > 1 {
			nextAngle := smallestAngleBetween(road.Bearing(id), next.Bearing(id))
			if nextAngle < angle {
				angle = nextAngle
			}
		} else {
			angle = math.Pi / 2
		}
		s := math.Sin(angle)
		if s < minSinAngle {
			s = minSinAngle
		}
		r := road.Width * 1.1 / s
		if r < road.Width {
			r = road.Width
		}
		interfaceRadius[rid] = r
	}

	for _, rid := range i.Roads {
		road := m.roads[rid]
		m.trimRoadAtIntersection(road, id, interfaceRadius[rid])
	}

	i.Polygon = m.computeIntersectionPolygon(i, interfaceRadius)
	m.generateTurns(i)
	m.applyLightPolicy(i)

	m.index.Update(spatial.ObjectID(i.ID)+intersectionIDOffset, spatial.KindIntersection,
		spatial.Circle{Center: i.Pos.XY(), Radius: polygonRadius(i.Polygon, i.Pos.XY())})
	for _, rid := range i.Roads {
		m.indexRoad(m.roads[rid])
	}
}

func smallestAngleBetween(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi) - math.Pi
	if d < 0 {
		d = -d
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// trimRoadAtIntersection pulls the road's centerline (and every lane's
// polyline) back from id by radius, so the road geometry starts/ends at the
// intersection's interface circle rather than its exact center point (spec
// §4.1 step 3).
func (m *Map) trimRoadAtIntersection(road *Road, id IntersectionID, radius float64) {
	if radius <= 0 || len(road.Line) < 2 {
		return
	}
	// Re-anchor the end at the intersection center first, so a repeated
	// update trims from the center again instead of from the previous cut.
	line := append(geom.Polyline3(nil), road.Line...)
	var trimmed geom.Polyline3
	if id == road.Src {
		line[0] = m.intersections[id].Pos
		trimmed = trimStart(line, radius)
	} else {
		line[len(line)-1] = m.intersections[id].Pos
		trimmed = trimEnd(line, radius)
	}
	road.Line = trimmed

	for _, lid := range road.Lanes {
		lane := m.lanes[lid]
		lane.Line = offsetLanePolyline(road, lane, m.lanes)
		if lane.Kind == LaneParking {
			m.regenerateLaneSpots(lid)
		}
	}
}

func trimStart(line geom.Polyline3, d float64) geom.Polyline3 {
	var acc float64
	for i := 1; i < len(line); i++ {
		segLen := line[i].Sub(line[i-1]).Len()
		if acc+segLen >= d {
			t := (d - acc) / segLen
			p := line[i-1].Lerp(line[i], t)
			out := geom.Polyline3{p}
			out = append(out, line[i:]...)
			return out
		}
		acc += segLen
	}
	return geom.Polyline3{line[len(line)-1]}
}

func trimEnd(line geom.Polyline3, d float64) geom.Polyline3 {
	rev := line.Reversed()
	trimmedRev := trimStart(rev, d)
	return trimmedRev.Reversed()
}

// offsetLanePolyline derives a lane's polyline from its parent road's
// (already-trimmed) centerline by a perpendicular offset based on the
// lane's position within the lane pattern, left-to-right (spec §4.1 step
// 3's "recompute lane polylines").
func offsetLanePolyline(road *Road, lane *Lane, lanes map[LaneID]*Lane) geom.Polyline3 {
	fwdLanes := road.LanesInDirection(DirForward, lanes)
	bwdLanes := road.LanesInDirection(DirBackward, lanes)

	var offset float64
	switch lane.Direction {
	case DirForward:
		offset = laneLateralOffset(fwdLanes, lane.ID, lanes, road.Width/2, 1)
	default:
		offset = laneLateralOffset(bwdLanes, lane.ID, lanes, road.Width/2, -1)
	}

	line := road.Line
	if lane.Direction == DirBackward {
		line = line.Reversed()
	}
	out := make(geom.Polyline3, len(line))
	for idx, p := range line {
		var tangent geom.Vec2
		if idx == 0 {
			tangent = line[1].XY().Sub(line[0].XY())
		} else {
			tangent = line[idx].XY().Sub(line[idx-1].XY())
		}
		if tangent.Len2() < 1e-12 {
			tangent = geom.Vec2{X: 1, Y: 0}
		}
		n := tangent.Normalized().Perp()
		shifted := p.XY().Add(n.Scale(offset))
		out[idx] = geom.FromXY(shifted, p.Z)
	}
	return out
}

func laneLateralOffset(group []LaneID, target LaneID, lanes map[LaneID]*Lane, halfRoadWidth float64, sign float64) float64 {
	var before, total float64
	for _, id := range group {
		w := lanes[id].Width
		if id == target {
			before += w / 2
			break
		}
		before += w
	}
	for _, id := range group {
		total += lanes[id].Width
	}
	centered := before - total/2
	return sign * centered
}

// computeIntersectionPolygon builds the visual/collision boundary of the
// intersection by connecting each road's interface edge with a short
// spline to its neighbors (spec §4.1 step 4).
func (m *Map) computeIntersectionPolygon(i *Intersection, radius map[RoadID]float64) []geom.Vec2 {
	var poly []geom.Vec2
	for _, rid := range i.Roads {
		road := m.roads[rid]
		r := radius[rid]
		bearing := road.Bearing(i.ID)
		half := road.Width / 2
		dir := geom.Vec2{X: math.Cos(bearing), Y: math.Sin(bearing)}
		perp := dir.Perp()
		base := i.Pos.XY().Add(dir.Scale(r))
		left := base.Add(perp.Scale(half))
		right := base.Sub(perp.Scale(half))
		poly = append(poly, right, left)
	}
	return poly
}

func polygonRadius(poly []geom.Vec2, center geom.Vec2) float64 {
	r := 5.0
	for _, p := range poly {
		if d := p.Distance(center); d > r {
			r = d
		}
	}
	return r
}
