// Package command defines WorldCommand, the tagged union of every
// mutating operation the outside world can submit to the simulation (spec
// §4.9, §6). Commands are purely declarative data: building one never
// touches the map or world, only Apply does.
//
// Grounded on the teacher's task.go prepare/update staging (commands drain
// before a tick's systems run) and spec §6's variant list; optional
// sub-fields use github.com/gotidy/ptr rather than a second bool/value
// pair per field.
package command

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/trafficcontrol"
)

// Kind discriminates which payload field of a WorldCommand is set.
type Kind int

const (
	KindMapMakeConnection Kind = iota
	KindMapRemoveIntersection
	KindMapRemoveRoad
	KindMapRemoveBuilding
	KindMapBuildHouse
	KindMapBuildSpecialBuilding
	KindMapUpdateIntersectionPolicy
	KindUpdateZone
	KindTerraform
	KindSetGameTime
	KindSendMessage
	KindResetSave
)

// WorldCommand is a tagged union: exactly one of the payload fields
// matching Kind is non-nil. Every field is self-contained and
// serializable (spec §6), so a WorldCommand round-trips through msgpack
// or yaml without auxiliary state.
type WorldCommand struct {
	Kind Kind

	MapMakeConnection           *MapMakeConnection
	MapRemoveIntersection        *MapRemoveIntersection
	MapRemoveRoad                *MapRemoveRoad
	MapRemoveBuilding            *MapRemoveBuilding
	MapBuildHouse                *MapBuildHouse
	MapBuildSpecialBuilding      *MapBuildSpecialBuilding
	MapUpdateIntersectionPolicy  *MapUpdateIntersectionPolicy
	UpdateZone                   *UpdateZone
	Terraform                    *Terraform
	SetGameTime                  *SetGameTime
	SendMessage                  *SendMessage
	ResetSave                    *ResetSave
}

// MapMakeConnection builds a road between two intersections (spec §4.1
// "connect"). Interpoint is an optional bend; nil means a straight
// centerline.
type MapMakeConnection struct {
	From, To   mapmodel.IntersectionID
	Interpoint *geom.Vec3
	Pattern    mapmodel.LanePattern
}

// MapRemoveIntersection removes an intersection and every incident road.
type MapRemoveIntersection struct {
	ID mapmodel.IntersectionID
}

// MapRemoveRoad removes a single road.
type MapRemoveRoad struct {
	ID mapmodel.RoadID
}

// MapRemoveBuilding removes a single building.
type MapRemoveBuilding struct {
	ID mapmodel.BuildingID
}

// MapBuildHouse consumes a lot into a house building.
type MapBuildHouse struct {
	Lot mapmodel.LotID
}

// MapBuildSpecialBuilding places an arbitrary building footprint. Gen is
// the door/front-facing point generated for it by the caller (UI or
// procedural generator); ConnectedRoad is an optional hint the caller
// believes the building fronts onto, validated if present but not
// required for placement to succeed.
type MapBuildSpecialBuilding struct {
	OBB           geom.OBB
	Kind          mapmodel.BuildingKind
	Gen           geom.Vec3
	ConnectedRoad *mapmodel.RoadID
}

// MapUpdateIntersectionPolicy reassigns an intersection's turn and light
// policy.
type MapUpdateIntersectionPolicy struct {
	ID    mapmodel.IntersectionID
	Turn  mapmodel.TurnPolicy
	Light trafficcontrol.LightPolicy
}

// UpdateZone sets a building's zone polygon, used to steer procedural
// placement (e.g. "zone must be near the building", spec §7).
type UpdateZone struct {
	Building mapmodel.BuildingID
	Zone     []geom.Vec2
}

// Terraform reshapes terrain in a radius around center (spec §4.1
// terraforming). Slope is read only by the Slope kind; with a nil Slope
// that kind leaves the terrain unchanged.
type Terraform struct {
	Center geom.Vec2
	Radius float64
	Amount float64
	Level  float64
	Kind   mapmodel.TerraformKind
	Slope  *mapmodel.Slope
}

// SetGameTime jumps the clock directly to Seconds since simulation start
// (spec §6 "integer seconds since game start").
type SetGameTime struct {
	Seconds float64
}

// SendMessage is a chat/annotation broadcast; it never mutates the map or
// world, only the session's message log.
type SendMessage struct {
	From string
	Text string
}

// ResetSave requests the simulation discard its current state and reload
// from SaveID (nil means the most recent autosave). Applying it only
// raises the request; the tick driver is responsible for actually
// performing the reload between ticks.
type ResetSave struct {
	SaveID *string
}
