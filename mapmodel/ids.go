// Package mapmodel is the map facade (spec §4.1): the sole mutation path for
// intersections, roads, lanes, turns, lots, buildings and parking spots. It
// owns primary slot storage, recomputes derived geometry on every mutation,
// keeps the spatial index coherent and publishes chunked change
// notifications.
//
// Grounded on entity/road/{road,manager}.go, entity/lane/{lane,manager}.go
// and entity/junction/{junction,manager}.go for the manager/slot-storage
// idiom (sorted adjacency, stable opaque IDs), and on
// original_source/map_model/{objects/intersection.rs,objects/lot.rs,
// turn_policy.rs,mapgen.rs,procgen/building.rs} for the geometry algorithms
// (interface radius, turn generation, lot/building placement) that the
// teacher repo doesn't need but this domain does.
package mapmodel

// IntersectionID, RoadID, LaneID, LotID, BuildingID and ParkingSpotID are
// the map's stable, opaque identities (spec §3). TurnID is compound: it's
// derived from (parent intersection, src lane, dst lane, bidirectional).
type (
	IntersectionID int64
	RoadID         int64
	LaneID         int64
	LotID          int64
	BuildingID     int64
	ParkingSpotID  int64
)

// TurnID compound-identifies a turn within its parent intersection (spec
// §3's "compound ID (parent, src lane, dst lane, bidir flag)").
type TurnID struct {
	Parent IntersectionID
	Src    LaneID
	Dst    LaneID
	Bidir  bool
}
