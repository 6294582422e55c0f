// Package world is the typed entity store (spec §9 "Polymorphism over
// entity kinds": tagged variants over typed stores, not an inheritance
// hierarchy). Every entity has a stable EntityID; kind-specific data lives
// in per-kind maps, with a side table recording which kind each ID
// belongs to so AnyEntity-style lookups can dispatch without a shared
// base class.
//
// Grounded on entity/person/{person,vehicle,pedestrian,personruntime}.go
// for the per-kind field shape (transform, speed, itinerary-equivalent
// state) and entity/entitytype.go / entity/managertype.go for the
// Get/GetOrError typed-accessor idiom, adapted from an interface-heavy
// protobuf-backed design to plain structs since this repo has no wire
// schema to satisfy.
package world

// EntityID is a process-wide unique identity; every entity kind draws from
// the same counter so IDs never collide across kinds (the "AnyEntity"
// tagged-union vocabulary from spec §9).
type EntityID int64

// Kind tags which typed store an EntityID's data lives in.
type Kind int

const (
	KindVehicle Kind = iota
	KindWagon
	KindTrain
	KindHuman
	KindCompany
	KindFreightStation
)

func (k Kind) String() string {
	switch k {
	case KindVehicle:
		return "vehicle"
	case KindWagon:
		return "wagon"
	case KindTrain:
		return "train"
	case KindHuman:
		return "human"
	case KindCompany:
		return "company"
	case KindFreightStation:
		return "freight_station"
	default:
		return "unknown"
	}
}
