package mapmodel

import (
	"github.com/citysim/engine/broadcast"
	"github.com/citysim/engine/internal/randengine"
	"github.com/citysim/engine/spatial"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "mapmodel")

// Map owns every map object (spec §3 "Ownership"): intersections, roads,
// lanes, turns, lots, buildings, parking spots, and the terrain height
// grid. All mutation goes through its facade methods (spec §4.1); nothing
// else may write to the slot maps.
type Map struct {
	intersections map[IntersectionID]*Intersection
	roads         map[RoadID]*Road
	lanes         map[LaneID]*Lane
	turns         map[TurnID]*Turn
	lots          map[LotID]*Lot
	buildings     map[BuildingID]*Building
	spots         map[ParkingSpotID]*ParkingSpot

	// spotReplacements maps a vanished spot to whatever spot took its place
	// when its lane's geometry was regenerated, so a reservation holder can
	// be re-bound instead of dropped (spec §4.4 reuse grid).
	spotReplacements map[ParkingSpotID]ParkingSpotID

	terrain *HeightMap

	index *spatial.Index
	bus   *broadcast.Bus

	nextIntersection int64
	nextRoad         int64
	nextLane         int64
	nextLot          int64
	nextBuilding     int64
	nextSpot         int64

	rand *randengine.Engine
}

// New creates an empty map over the given terrain (nil for none), publishing
// changes on bus (nil for none), with a 50-unit spatial-index cell size and
// an RNG seeded from seed.
func New(terrain *HeightMap, bus *broadcast.Bus, seed uint64) *Map {
	return &Map{
		intersections:    make(map[IntersectionID]*Intersection),
		roads:            make(map[RoadID]*Road),
		lanes:            make(map[LaneID]*Lane),
		turns:            make(map[TurnID]*Turn),
		lots:             make(map[LotID]*Lot),
		buildings:        make(map[BuildingID]*Building),
		spots:            make(map[ParkingSpotID]*ParkingSpot),
		spotReplacements: make(map[ParkingSpotID]ParkingSpotID),
		terrain:          terrain,
		index:            spatial.New(50),
		bus:              bus,
		rand:             randengine.New(seed),
	}
}

// Accessors return nil/zero-value when the ID has been removed, matching
// spec §7's "Reference-stale" policy: callers always get an optional and
// must handle absence.

func (m *Map) Intersection(id IntersectionID) *Intersection { return m.intersections[id] }
func (m *Map) Road(id RoadID) *Road                         { return m.roads[id] }
func (m *Map) Lane(id LaneID) *Lane                         { return m.lanes[id] }
func (m *Map) Turn(id TurnID) *Turn                         { return m.turns[id] }
func (m *Map) Lot(id LotID) *Lot                            { return m.lots[id] }
func (m *Map) Building(id BuildingID) *Building             { return m.buildings[id] }
func (m *Map) ParkingSpot(id ParkingSpotID) *ParkingSpot     { return m.spots[id] }

// ReplacementSpot returns the spot that a lane-geometry regeneration bound
// in place of old, if old no longer exists because of one (spec §4.4 reuse
// grid). Callers should follow the chain: a spot can be replaced more than
// once across successive geometry updates.
func (m *Map) ReplacementSpot(old ParkingSpotID) (ParkingSpotID, bool) {
	id, ok := m.spotReplacements[old]
	return id, ok
}

func (m *Map) Index() *spatial.Index { return m.index }

// Intersections/Roads/etc. return every live ID, sorted ascending so that
// every caller iterates in a stable, hash-reproducible order (spec §4.9
// "Iteration uses sorted keys").
func (m *Map) IntersectionIDs() []IntersectionID { return sortedKeysI(m.intersections) }
func (m *Map) RoadIDs() []RoadID                 { return sortedKeysR(m.roads) }
func (m *Map) LaneIDs() []LaneID                 { return sortedKeysL(m.lanes) }
func (m *Map) BuildingIDs() []BuildingID         { return sortedKeysB(m.buildings) }
func (m *Map) LotIDs() []LotID                   { return sortedKeysLot(m.lots) }
func (m *Map) ParkingSpotIDs() []ParkingSpotID   { return sortedKeysSpot(m.spots) }
