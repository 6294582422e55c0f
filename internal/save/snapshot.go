// Package save defines the versioned save envelope and its two encoders
// (spec §6 "Persisted save state"): a compact binary form for fast
// save/load, and a human-readable form for debugging. Both round-trip
// hash-equal (spec §8 property 4).
//
// New package per spec §6; protobuf is deliberately not used here (see
// SPEC_FULL's COMMAND/SAVE ENVELOPE section) — plain Go structs with
// msgpack/json tags serve both encoders without a schema-compiler step,
// matching how small, fast-moving internal tools in this corpus persist
// state.
package save

import (
	"github.com/citysim/engine/economy"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/registry"
	"github.com/citysim/engine/world"
)

// CurrentVersion is bumped whenever Envelope's shape changes in a way that
// breaks decoding of an older save.
const CurrentVersion = 1

// Envelope is the full persisted state: format version, map, world and
// accumulated economy resources (spec §6).
type Envelope struct {
	Version int `msgpack:"version" json:"version"`

	ClockStep int64   `msgpack:"clock_step" json:"clock_step"`
	ClockTime float64 `msgpack:"clock_time" json:"clock_time"`

	Map       MapSnapshot       `msgpack:"map" json:"map"`
	World     WorldSnapshot     `msgpack:"world" json:"world"`
	Resources ResourcesSnapshot `msgpack:"resources" json:"resources"`
}

// MapSnapshot mirrors mapmodel.Map's mutable content through its public
// accessors, in sorted-ID order (spec §4.9 determinism requirement).
type MapSnapshot struct {
	Intersections []IntersectionSnapshot `msgpack:"intersections" json:"intersections"`
	Roads         []RoadSnapshot         `msgpack:"roads" json:"roads"`
	Lots          []LotSnapshot          `msgpack:"lots" json:"lots"`
	Buildings     []BuildingSnapshot     `msgpack:"buildings" json:"buildings"`
}

type IntersectionSnapshot struct {
	ID       int64     `msgpack:"id" json:"id"`
	X        float64   `msgpack:"x" json:"x"`
	Y        float64   `msgpack:"y" json:"y"`
	Z        float64   `msgpack:"z" json:"z"`
	TurnKind int       `msgpack:"turn_kind" json:"turn_kind"`
	LightKind int      `msgpack:"light_kind" json:"light_kind"`
}

type RoadSnapshot struct {
	ID    int64 `msgpack:"id" json:"id"`
	Src   int64 `msgpack:"src" json:"src"`
	Dst   int64 `msgpack:"dst" json:"dst"`
	Width float64 `msgpack:"width" json:"width"`
}

type LotSnapshot struct {
	ID   int64 `msgpack:"id" json:"id"`
	Road int64 `msgpack:"road" json:"road"`
	Kind int   `msgpack:"kind" json:"kind"`
}

type BuildingSnapshot struct {
	ID        int64  `msgpack:"id" json:"id"`
	Kind      int    `msgpack:"kind" json:"kind"`
	X         float64 `msgpack:"x" json:"x"`
	Y         float64 `msgpack:"y" json:"y"`
	OwnerSoul *int64 `msgpack:"owner_soul,omitempty" json:"owner_soul,omitempty"`
}

// WorldSnapshot mirrors world.World's entity stores in sorted-ID order.
type WorldSnapshot struct {
	Vehicles        []VehicleSnapshot        `msgpack:"vehicles" json:"vehicles"`
	Humans          []HumanSnapshot          `msgpack:"humans" json:"humans"`
	Trains          []TrainSnapshot          `msgpack:"trains" json:"trains"`
	FreightStations []FreightStationSnapshot `msgpack:"freight_stations" json:"freight_stations"`
}

type VehicleSnapshot struct {
	ID     int64   `msgpack:"id" json:"id"`
	X      float64 `msgpack:"x" json:"x"`
	Y      float64 `msgpack:"y" json:"y"`
	Speed  float64 `msgpack:"speed" json:"speed"`
	State  int     `msgpack:"state" json:"state"`
	SoulID int64   `msgpack:"soul_id" json:"soul_id"`
}

type HumanSnapshot struct {
	ID     int64   `msgpack:"id" json:"id"`
	X      float64 `msgpack:"x" json:"x"`
	Y      float64 `msgpack:"y" json:"y"`
	SoulID int64   `msgpack:"soul_id" json:"soul_id"`
}

type TrainSnapshot struct {
	ID int64   `msgpack:"id" json:"id"`
	X  float64 `msgpack:"x" json:"x"`
	Y  float64 `msgpack:"y" json:"y"`
}

type FreightStationSnapshot struct {
	ID    int64 `msgpack:"id" json:"id"`
	State int   `msgpack:"state" json:"state"`
}

// ResourcesSnapshot mirrors economy.Market's souls in sorted-ID order
// (SPEC_FULL's COMMAND/SAVE ENVELOPE section: "Envelope{Version, Map,
// World, Resources}").
type ResourcesSnapshot struct {
	Souls []SoulSnapshot `msgpack:"souls" json:"souls"`
}

type SoulSnapshot struct {
	ID      int64           `msgpack:"id" json:"id"`
	Capital float64         `msgpack:"capital" json:"capital"`
	Buy     []OrderSnapshot `msgpack:"buy,omitempty" json:"buy,omitempty"`
	Sell    []OrderSnapshot `msgpack:"sell,omitempty" json:"sell,omitempty"`
}

type OrderSnapshot struct {
	Good       int     `msgpack:"good" json:"good"`
	Quantity   int     `msgpack:"quantity" json:"quantity"`
	LimitPrice float64 `msgpack:"limit_price" json:"limit_price"`
	X          float64 `msgpack:"x" json:"x"`
	Y          float64 `msgpack:"y" json:"y"`
}

// Build captures reg's current state into a serializable Envelope.
func Build(reg *registry.Registry) Envelope {
	return Envelope{
		Version:   CurrentVersion,
		ClockStep: reg.Clock().Step,
		ClockTime: reg.Clock().T,
		Map:       buildMapSnapshot(reg.Map()),
		World:     buildWorldSnapshot(reg.World()),
		Resources: buildResourcesSnapshot(reg.Market()),
	}
}

var snapshotGoods = []economy.GoodKind{economy.GoodFood, economy.GoodGoods, economy.GoodMaterials}

func buildResourcesSnapshot(market *economy.Market) ResourcesSnapshot {
	var s ResourcesSnapshot
	for _, id := range market.SoulIDs() {
		soul := market.Soul(id)
		snap := SoulSnapshot{ID: soul.ID, Capital: soul.Capital}
		for _, good := range snapshotGoods {
			for _, o := range soul.Buy[good] {
				snap.Buy = append(snap.Buy, OrderSnapshot{
					Good: int(good), Quantity: o.Quantity, LimitPrice: o.LimitPrice, X: o.Location.X, Y: o.Location.Y,
				})
			}
			for _, o := range soul.Sell[good] {
				snap.Sell = append(snap.Sell, OrderSnapshot{
					Good: int(good), Quantity: o.Quantity, LimitPrice: o.LimitPrice, X: o.Location.X, Y: o.Location.Y,
				})
			}
		}
		s.Souls = append(s.Souls, snap)
	}
	return s
}

func buildMapSnapshot(m *mapmodel.Map) MapSnapshot {
	var s MapSnapshot
	for _, id := range m.IntersectionIDs() {
		i := m.Intersection(id)
		s.Intersections = append(s.Intersections, IntersectionSnapshot{
			ID: int64(id), X: i.Pos.X, Y: i.Pos.Y, Z: i.Pos.Z,
			TurnKind: int(i.TurnPolicy.Kind), LightKind: int(i.LightPolicy.Kind),
		})
	}
	for _, id := range m.RoadIDs() {
		r := m.Road(id)
		s.Roads = append(s.Roads, RoadSnapshot{
			ID: int64(id), Src: int64(r.Src), Dst: int64(r.Dst), Width: r.Width,
		})
	}
	for _, id := range m.LotIDs() {
		l := m.Lot(id)
		s.Lots = append(s.Lots, LotSnapshot{ID: int64(id), Road: int64(l.Road), Kind: int(l.Kind)})
	}
	for _, id := range m.BuildingIDs() {
		b := m.Building(id)
		s.Buildings = append(s.Buildings, BuildingSnapshot{
			ID: int64(id), Kind: int(b.Kind), X: b.OBB.Center.X, Y: b.OBB.Center.Y, OwnerSoul: b.OwnerSoul,
		})
	}
	return s
}

func buildWorldSnapshot(w *world.World) WorldSnapshot {
	var s WorldSnapshot
	for _, id := range w.VehicleIDs() {
		v := w.Vehicle(id)
		s.Vehicles = append(s.Vehicles, VehicleSnapshot{
			ID: int64(id), X: v.Pos.X, Y: v.Pos.Y, Speed: v.Speed, State: int(v.State), SoulID: v.SoulID,
		})
	}
	for _, id := range w.HumanIDs() {
		h := w.Human(id)
		s.Humans = append(s.Humans, HumanSnapshot{ID: int64(id), X: h.Pos.X, Y: h.Pos.Y, SoulID: h.SoulID})
	}
	for _, id := range w.TrainIDs() {
		tr := w.Train(id)
		s.Trains = append(s.Trains, TrainSnapshot{ID: int64(id), X: tr.Pos.X, Y: tr.Pos.Y})
	}
	for _, id := range w.FreightStationIDs() {
		fs := w.FreightStation(id)
		s.FreightStations = append(s.FreightStations, FreightStationSnapshot{ID: int64(id), State: int(fs.State)})
	}
	return s
}
