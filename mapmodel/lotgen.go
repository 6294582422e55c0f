package mapmodel

import (
	"math"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/spatial"
)

// lotSpacing is the along-road distance between candidate lot centers, and
// lotDepth/lotFrontage the footprint placed on each side of the road
// (SPEC_FULL supplement grounded on original_source/map_model/procgen/
// building.rs's "walk the road at fixed intervals" generation scheme).
const (
	lotSpacing  = 20.0
	lotDepth    = 12.0
	lotFrontage = 8.0
	lotSetback  = 2.0
)

// generateLotsAndParking walks a freshly connected road's length, placing a
// lot candidate on each side at regular intervals (rejecting any that would
// collide with an existing road, building or lot), and a run of parking
// spots every spotSpacing along each lane marked LaneParking (spec §4.1
// "lot/parking-spot generation").
func (m *Map) generateLotsAndParking(road *Road) {
	length := road.Line.Length()
	if length < lotSpacing {
		return
	}

	for s := lotSpacing / 2; s < length; s += lotSpacing {
		point, tangent := road.Line.PointAt(s)
		dir2 := tangent.XY()
		if dir2.Len2() < 1e-9 {
			continue
		}
		perp := dir2.Normalized().Perp()

		for _, side := range [2]float64{1, -1} {
			center2 := point.XY().Add(perp.Scale(side * (road.Width/2 + lotSetback + lotDepth/2)))
			obb := geom.NewOBB(center2, dir2.Angle(), lotFrontage, lotDepth)
			if m.index.Len() > 0 {
				hits := m.index.Query(spatial.OBBShape{OBB: obb}, spatial.KindRoad|spatial.KindBuilding|spatial.KindLot)
				if len(hits) > 0 {
					continue
				}
			}
			m.nextLot++
			id := LotID(m.nextLot)
			lot := &Lot{ID: id, Road: road.ID, OBB: obb, Kind: LotUnassigned}
			m.lots[id] = lot
			m.index.Insert(spatial.ObjectID(id)+lotIDOffset, spatial.KindLot, spatial.OBBShape{OBB: obb})
		}
	}

	if road.Pattern.HasParking() {
		m.generateParkingSpots(road)
	}
}

// spotSpacing is the along-lane gap between generated parking spots.
const spotSpacing = 6.0

func (m *Map) generateParkingSpots(road *Road) {
	for _, lid := range road.Lanes {
		lane := m.lanes[lid]
		if lane.Kind != LaneParking {
			continue
		}
		m.layoutLaneSpots(lid)
	}
}

// layoutLaneSpots places a fresh run of spots along lane's current polyline
// at spotSpacing intervals, returning them. It does not touch any existing
// spot on the lane; callers decide what to do with the old set.
func (m *Map) layoutLaneSpots(lid LaneID) []*ParkingSpot {
	lane := m.lanes[lid]
	length := lane.Line.Length()
	var fresh []*ParkingSpot
	for s := spotSpacing / 2; s < length; s += spotSpacing {
		point, tangent := lane.Line.PointAt(s)
		heading := tangent.XY().Angle()
		if math.IsNaN(heading) {
			heading = 0
		}
		m.nextSpot++
		spot := &ParkingSpot{ID: ParkingSpotID(m.nextSpot), Lane: lid, Transform: point, Heading: heading}
		m.spots[spot.ID] = spot
		fresh = append(fresh, spot)
	}
	return fresh
}

// regenerateLaneSpots replaces every existing spot on lid with a fresh set
// laid out along its current polyline, recording each vanished spot's
// nearest replacement in m.spotReplacements so a reservation holder can be
// re-bound to a spatially similar spot instead of losing it outright (spec
// §3 "reusable across geometry updates via a reuse grid"; §4.4 "existing
// spots are moved into a nearby-reuse grid so that reservations can be
// re-bound to spatially similar spots rather than invalidated").
func (m *Map) regenerateLaneSpots(lid LaneID) {
	lane := m.lanes[lid]
	if lane == nil || lane.Kind != LaneParking {
		return
	}

	var old []*ParkingSpot
	for id, s := range m.spots {
		if s.Lane == lid {
			old = append(old, s)
			delete(m.spots, id)
		}
	}

	fresh := m.layoutLaneSpots(lid)
	if len(fresh) == 0 {
		return
	}

	for _, o := range old {
		best := fresh[0]
		bestDist := o.Transform.XY().Distance(best.Transform.XY())
		for _, f := range fresh[1:] {
			if d := o.Transform.XY().Distance(f.Transform.XY()); d < bestDist {
				best, bestDist = f, d
			}
		}
		m.spotReplacements[o.ID] = best.ID
	}
}
