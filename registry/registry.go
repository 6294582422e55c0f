// Package registry holds the one-per-simulation instance of every
// subsystem and hands out typed accessors, replacing global state.
//
// Grounded on the teacher's task.Context: a single struct created once per
// run, populated with each manager during setup, and threaded through the
// tick loop instead of package-level globals.
package registry

import (
	"github.com/citysim/engine/broadcast"
	"github.com/citysim/engine/dispatcher"
	"github.com/citysim/engine/economy"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/internal/clock"
	"github.com/citysim/engine/internal/randengine"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/parking"
	"github.com/citysim/engine/pathing"
	"github.com/citysim/engine/world"
)

// Registry bundles every subsystem a running simulation needs, created
// once at startup (spec §5 "the map and world are mutably owned by the
// simulation context").
type Registry struct {
	clock *clock.Clock
	rng   *randengine.Engine

	bus *broadcast.Bus
	m   *mapmodel.Map
	w   *world.World

	router     *pathing.Router
	parking    *parking.Manager
	dispatcher *dispatcher.Dispatcher

	market     *economy.Market
	production *economy.ProductionState
}

// Config seeds a new Registry's subsystems (spec §4.9's single seeded RNG
// stream; §4.1's map/terrain setup).
type Config struct {
	Seed      uint64
	Terrain   *mapmodel.HeightMap
	ClockDT   float64
	StartStep int64
	EndStep   int64
}

// New wires every subsystem together: the map facade publishes chunk
// changes on bus, the router/parking/dispatcher all hold the same map
// pointer, and dispatcher's liveness/position callbacks close over w so
// freed or moved trains are seen immediately (spec §4.6).
func New(cfg Config) *Registry {
	bus := broadcast.NewBus()
	m := mapmodel.New(cfg.Terrain, bus, cfg.Seed)
	w := world.New()

	disp := dispatcher.New(m,
		func(id dispatcher.EntityID) bool { return w.Train(world.EntityID(id)) != nil },
		func(id dispatcher.EntityID) geom.Vec3 { return w.Train(world.EntityID(id)).Pos },
	)

	return &Registry{
		clock:      clock.New(cfg.ClockDT, cfg.StartStep, cfg.EndStep),
		rng:        randengine.New(cfg.Seed),
		bus:        bus,
		m:          m,
		w:          w,
		router:     pathing.New(m),
		parking:    parking.New(m),
		dispatcher: disp,
		market:     economy.NewMarket(),
		production: economy.NewProductionState(),
	}
}

func (r *Registry) Clock() *clock.Clock                   { return r.clock }
func (r *Registry) RNG() *randengine.Engine               { return r.rng }
func (r *Registry) Bus() *broadcast.Bus                   { return r.bus }
func (r *Registry) Map() *mapmodel.Map                    { return r.m }
func (r *Registry) World() *world.World                   { return r.w }
func (r *Registry) Router() *pathing.Router               { return r.router }
func (r *Registry) Parking() *parking.Manager             { return r.parking }
func (r *Registry) Dispatcher() *dispatcher.Dispatcher    { return r.dispatcher }
func (r *Registry) Market() *economy.Market               { return r.market }
func (r *Registry) Production() *economy.ProductionState { return r.production }
