// Package parking implements spot reservation (spec §4.4): spiral search
// for a free spot near a position, idempotent release, and GC-time
// re-binding against mapmodel's nearest-replacement ledger when a parking
// lane's geometry regenerates its spots out from under a reservation.
//
// New package: no direct teacher or pack equivalent for a parking manager,
// so the spiral-search algorithm is grounded directly on spec §4.4's
// description; the manager shape (mutex-guarded maps, reservation tokens)
// follows the same manager idiom as mapmodel/broadcast.
package parking

import (
	"sort"
	"sync"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
)

// Reservation is an opaque token identifying a held parking spot. Losing
// one without calling Free leaks the spot for as long as the spot exists:
// GC only clears reservations whose spot has vanished (spec §4.4, §7
// "Reservation-lost").
type Reservation struct {
	Spot  mapmodel.ParkingSpotID
	owner int64
}

// Manager reserves/frees parking spots against a mapmodel.Map's spot
// table.
type Manager struct {
	mu        sync.Mutex
	m         *mapmodel.Map
	reserved  map[mapmodel.ParkingSpotID]int64
	nextToken int64
}

// New returns a manager bound to m.
func New(m *mapmodel.Map) *Manager {
	return &Manager{m: m, reserved: make(map[mapmodel.ParkingSpotID]int64)}
}

// spiralSearchCap bounds how many candidate spots a single ReserveNear call
// inspects (spec §5 "spiral search cap").
const spiralSearchCap = 256

// ReserveNear performs a spiral search outward from pos over every parking
// spot in the map, nearest first and at most spiralSearchCap of them,
// skipping reserved spots, and reserves the closest free one found (spec
// §4.4 reserve_near).
// Atomic relative to other reservations: the whole scan holds the
// manager's lock.
func (p *Manager) ReserveNear(pos geom.Vec2) (Reservation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	spots := p.allSpotsSortedByDistance(pos)
	examined := 0
	for _, id := range spots {
		if examined >= spiralSearchCap {
			break
		}
		examined++
		if _, taken := p.reserved[id]; taken {
			continue
		}
		p.nextToken++
		p.reserved[id] = p.nextToken
		return Reservation{Spot: id, owner: p.nextToken}, true
	}
	return Reservation{}, false
}

// allSpotsSortedByDistance returns every parking spot ID in m, nearest pos
// first (ties broken by ID for determinism). A production-scale map would
// back this with a dedicated spatial bucket instead of a full scan; the
// spiral-search cap above bounds the cost this incurs per call regardless.
func (p *Manager) allSpotsSortedByDistance(pos geom.Vec2) []mapmodel.ParkingSpotID {
	ids := p.m.ParkingSpotIDs()
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.m.ParkingSpot(ids[i]), p.m.ParkingSpot(ids[j])
		da, db := a.Transform.XY().Distance(pos), b.Transform.XY().Distance(pos)
		if da == db {
			return ids[i] < ids[j]
		}
		return da < db
	})
	return ids
}

// Free releases a reservation; calling it twice (or on an unreserved spot)
// is a no-op (spec §4.4 "free(spot): idempotent release").
func (p *Manager) Free(r Reservation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if owner, ok := p.reserved[r.Spot]; ok && owner == r.owner {
		delete(p.reserved, r.Spot)
	}
}

// ParkPos returns the world position a vehicle occupies once parked in the
// given spot (spec §4.4 park_pos).
func (p *Manager) ParkPos(spot mapmodel.ParkingSpotID) (geom.Vec3, bool) {
	s := p.m.ParkingSpot(spot)
	if s == nil {
		return geom.Vec3{}, false
	}
	return s.Transform, true
}

// ReservedCount returns how many spots are currently held, used by the
// parking-conservation testable property (spec §8 property 5).
func (p *Manager) ReservedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.reserved)
}

// GC handles every reservation whose spot no longer exists in the map. A
// spot can vanish either because its road was removed (nothing to rebind
// to) or because its lane's geometry was regenerated, in which case the
// map recorded a nearest-replacement spot (spec §4.4 reuse grid); GC
// follows that chain and moves the reservation onto the replacement
// instead of dropping it. A reservation only actually leaks when no
// replacement exists or every candidate is already held.
func (p *Manager) GC() {
	p.mu.Lock()
	defer p.mu.Unlock()

	rebinds := make(map[mapmodel.ParkingSpotID]mapmodel.ParkingSpotID)
	var drop []mapmodel.ParkingSpotID
	for id := range p.reserved {
		if p.m.ParkingSpot(id) != nil {
			continue
		}
		if next, ok := p.rebind(id); ok {
			rebinds[id] = next
			continue
		}
		drop = append(drop, id)
	}
	for old, next := range rebinds {
		p.reserved[next] = p.reserved[old]
		delete(p.reserved, old)
	}
	for _, id := range drop {
		delete(p.reserved, id)
	}
}

// rebind follows the map's replacement chain from a vanished spot to the
// newest still-live, unreserved spot, so a geometry-driven regeneration
// re-binds a reservation to a spatially similar spot rather than
// invalidating it (spec §4.4).
func (p *Manager) rebind(id mapmodel.ParkingSpotID) (mapmodel.ParkingSpotID, bool) {
	seen := map[mapmodel.ParkingSpotID]bool{id: true}
	for {
		next, ok := p.m.ReplacementSpot(id)
		if !ok || seen[next] {
			return 0, false
		}
		seen[next] = true
		if p.m.ParkingSpot(next) == nil {
			id = next
			continue
		}
		if _, taken := p.reserved[next]; taken {
			return 0, false
		}
		return next, true
	}
}
