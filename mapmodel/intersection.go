package mapmodel

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/trafficcontrol"
)

// Intersection is a node where roads meet (spec §3, GLOSSARY).
type Intersection struct {
	ID  IntersectionID
	Pos geom.Vec3

	// Roads is sorted by the bearing of the road's first segment, free of
	// duplicates (spec §3 invariant 2).
	Roads []RoadID

	TurnPolicy  TurnPolicy
	LightPolicy trafficcontrol.LightPolicy

	Polygon []geom.Vec2 // recomputed by the intersection-update algorithm
	Turns   []TurnID
}

// Lot sits along a road, generated as roads are built (spec §3).
type Lot struct {
	ID     LotID
	Road   RoadID
	OBB    geom.OBB
	Kind   LotKind
}

// LotKind distinguishes generated lot use (SPEC_FULL supplement, grounded
// on original_source/map_model/objects/lot.rs).
type LotKind int

const (
	LotUnassigned LotKind = iota
	LotResidential
	LotCommercial
)

// BuildingKind distinguishes a building's function.
type BuildingKind int

const (
	BuildingHouse BuildingKind = iota
	BuildingWorkplace
	BuildingSupermarket
	BuildingSpecial // generic special building placed via build_special_building
)

// Building occupies ground and produces/consumes goods (spec §3, §4.8).
type Building struct {
	ID       BuildingID
	OBB      geom.OBB
	Kind     BuildingKind
	Door     geom.Vec3
	Zone     []geom.Vec2 // optional; SPEC_FULL supplement
	OwnerSoul *int64      // weak reference; validated on use (spec §3 "Ownership")
}

// ParkingSpot is a discrete, reservable position along a parking lane
// (spec §3, GLOSSARY).
type ParkingSpot struct {
	ID     ParkingSpotID
	Lane   LaneID
	Transform geom.Vec3 // world position; the heading along the lane is Heading
	Heading   float64
	reservedBy *int64 // weak reference to the reserving vehicle/token owner
}

// Reserved reports whether the spot currently has an owner.
func (p *ParkingSpot) Reserved() bool { return p.reservedBy != nil }
