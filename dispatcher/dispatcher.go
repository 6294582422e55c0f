// Package dispatcher maintains free pools of dispatchable resources (spec
// §4.6): freight trains, delivery trucks, and similar. A query claims the
// pool element with the smallest pathable distance to a target; free
// returns it.
//
// New package: no direct teacher/pack equivalent, same grounding posture as
// parking — structure follows the manager idiom used throughout this repo
// (mutex-guarded maps, lazy reclaim of dead entries).
package dispatcher

import (
	"sort"
	"sync"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
)

// Kind distinguishes dispatch pools (spec §4.6 "DispatchKind").
type Kind int

const (
	KindFreightTrain Kind = iota
	KindDeliveryTruck
)

// EntityID is the dispatchable resource's identity in the world store;
// dispatcher treats it as opaque.
type EntityID int64

// LiveCheck reports whether id still refers to a live entity, used to lazily
// reclaim slots whose underlying entity disappeared (spec §4.6 "When a
// dispatched resource's underlying entity disappears, its slot is
// reclaimed lazily on next query").
type LiveCheck func(id EntityID) bool

// PositionOf returns id's current world position, used to rank free-pool
// candidates by pathable distance to the query target.
type PositionOf func(id EntityID) geom.Vec3

// Dispatcher tracks free/claimed pools per Kind.
type Dispatcher struct {
	mu    sync.Mutex
	m     *mapmodel.Map
	free  map[Kind]map[EntityID]struct{}
	alive LiveCheck
	posOf PositionOf
}

// New returns a dispatcher bound to m, using alive/posOf to validate and
// rank candidates.
func New(m *mapmodel.Map, alive LiveCheck, posOf PositionOf) *Dispatcher {
	return &Dispatcher{m: m, free: make(map[Kind]map[EntityID]struct{}), alive: alive, posOf: posOf}
}

// Register adds id to kind's free pool (called when a dispatchable entity
// is spawned or released outside an explicit Free call, e.g. at world
// load).
func (d *Dispatcher) Register(kind Kind, id EntityID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pool, ok := d.free[kind]
	if !ok {
		pool = make(map[EntityID]struct{})
		d.free[kind] = pool
	}
	pool[id] = struct{}{}
}

// Query returns the free-pool element of kind whose pathable distance
// (straight-line distance as a fast proxy, consistent with spec §4.3's
// Euclidean-heuristic routing cost ordering) to target is minimal, removes
// it from the pool, and returns its ID (spec §4.6 query).
func (d *Dispatcher) Query(kind Kind, target geom.Vec3) (EntityID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool := d.free[kind]
	if len(pool) == 0 {
		return 0, false
	}

	var candidates []EntityID
	for id := range pool {
		if d.alive != nil && !d.alive(id) {
			delete(pool, id)
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return 0, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		di, dj := d.distanceTo(candidates[i], target), d.distanceTo(candidates[j], target)
		if di == dj {
			return candidates[i] < candidates[j]
		}
		return di < dj
	})

	best := candidates[0]
	delete(pool, best)
	return best, true
}

func (d *Dispatcher) distanceTo(id EntityID, target geom.Vec3) float64 {
	if d.posOf == nil {
		return 0
	}
	return d.posOf(id).Distance(target)
}

// Free returns id to kind's free pool (spec §4.6 free).
func (d *Dispatcher) Free(kind Kind, id EntityID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pool, ok := d.free[kind]
	if !ok {
		pool = make(map[EntityID]struct{})
		d.free[kind] = pool
	}
	pool[id] = struct{}{}
}

// FreeCount reports how many entities are currently free in kind's pool.
func (d *Dispatcher) FreeCount(kind Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.free[kind])
}
