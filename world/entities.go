package world

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/pathing"
)

// VehicleClass parameterizes a vehicle kind's kinematics (spec §4.7:
// "kind.cruising", "kind.acceleration/kind.deceleration", "kind.ang_acc").
type VehicleClass struct {
	Name               string
	Cruising           float64 // fraction of the lane speed limit this class cruises at
	MaxSpeedMultiplier float64
	Acceleration       float64
	Deceleration       float64
	AngAcc             float64 // max angular acceleration, rad/s^2
	Length             float64
}

// VehicleState is the vehicle's kinematic/parking state machine (spec
// §4.7 "Parking transitions", "Gridlock detection").
type VehicleState int

const (
	VehicleDriving VehicleState = iota
	VehicleRoadToPark
	VehicleParked
	VehiclePanicking
)

// Vehicle is a car, bus, or similar road agent.
type Vehicle struct {
	ID    EntityID
	Class VehicleClass

	Pos   geom.Vec3
	Dir   geom.Vec2 // unit heading
	Speed float64

	Itinerary pathing.Itinerary
	State     VehicleState

	ParkSpot      mapmodel.ParkingSpotID
	ParkSpline    geom.Spline3
	ParkStartTime float64

	GridlockFlag int
	PanicSince   float64

	SoulID int64
}

// Wagon is a single car within a Train's consist, trailing at a fixed
// offset along the track.
type Wagon struct {
	ID             EntityID
	TrainID        EntityID
	OffsetAlongTrain float64
}

// Train snaps to a rail polyline via a length-along-track parameter (spec
// §4.7 "Trains: snap to rail polyline with a length-along-track
// parameter").
type Train struct {
	ID     EntityID
	Wagons []EntityID

	Lane LaneProgress
	Pos  geom.Vec3
	Dir  geom.Vec2
	Speed float64

	Itinerary pathing.Itinerary
}

// LaneProgress is a position along a specific lane, used by trains (and
// reusable by any other track-constrained agent).
type LaneProgress struct {
	Lane mapmodel.LaneID
	S    float64
}

// Human is a pedestrian/soul-bearing person agent.
type Human struct {
	ID EntityID

	Pos   geom.Vec3
	Dir   geom.Vec2
	Speed float64

	CruiseSpeed float64 // sampled per-entity from a normal distribution (spec §4.7)
	WalkPhase   float64

	Itinerary pathing.Itinerary
	Location  Location

	GridlockFlag int
	SoulID       int64
}

// LocationKind distinguishes where a Human currently is.
type LocationKind int

const (
	LocationOutside LocationKind = iota
	LocationBuilding
)

// Location is a Human's coarse whereabouts, observed by scenario-level
// commands/tests (spec §8 Scenario B: "the human's Location becomes
// Building(B)").
type Location struct {
	Kind     LocationKind
	Building mapmodel.BuildingID
}

// Company owns a building and participates in the economy as a producer/
// consumer (spec §4.8).
type Company struct {
	ID       EntityID
	Building mapmodel.BuildingID
	SoulID   int64
}

// FreightStationState is the three-state per-assigned-train machine (spec
// §4.8 "Arriving -> Loading -> Moving").
type FreightStationState int

const (
	FreightArriving FreightStationState = iota
	FreightLoading
	FreightMoving
)

// FreightStation sits adjacent to a rail road and cycles assigned trains
// through Arriving/Loading/Moving (spec §4.8, §8 Scenario C).
type FreightStation struct {
	ID       EntityID
	Building mapmodel.BuildingID

	AssignedTrain EntityID
	State         FreightStationState
	WaitingCargo  int
	LoadUntil     float64
}
