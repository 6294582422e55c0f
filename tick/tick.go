// Package tick drives one simulation frame end to end: drain commands,
// advance time, run every system in a fixed order, then hash per-resource
// state for sync audits (spec §4.9).
//
// Grounded on the teacher's task/simulet.go Run loop (prepare -> update ->
// advance per step), generalized from its fixed person/lane/junction/aoi
// manager set to this repo's command/agents/economy/parking pipeline.
package tick

import (
	"github.com/citysim/engine/agents"
	"github.com/citysim/engine/command"
	"github.com/citysim/engine/economy"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/internal/synchash"
	"github.com/citysim/engine/registry"
)

// Driver owns the per-frame command queue and the transport-grid snapshot
// reused across vehicle/pedestrian perceive steps within a frame.
type Driver struct {
	reg      *registry.Registry
	grid     *agents.TransportGrid
	schedule economy.Schedule
	sim      *command.Sim

	// ExternalTradePoint is where freight trains head once loaded, standing
	// in for "off the edge of the map" until a multi-map trade network
	// exists (spec §4.8 freight stations "route to external trading point").
	ExternalTradePoint geom.Vec3
}

// New returns a driver bound to reg's map/world/economy, with the default
// production schedule (spec §4.8's per-BuildingKind prototypes).
func New(reg *registry.Registry, externalTradePoint geom.Vec3) *Driver {
	return &Driver{
		reg:                reg,
		grid:               agents.NewTransportGrid(),
		schedule:           economy.DefaultSchedule(),
		sim:                &command.Sim{Map: reg.Map(), Clock: reg.Clock()},
		ExternalTradePoint: externalTradePoint,
	}
}

// Sim exposes the command-apply target, so a caller (e.g. a network
// ingress) can inspect ResetRequested/Messages between ticks.
func (d *Driver) Sim() *command.Sim { return d.sim }

// Tick runs one full frame (spec §4.9 steps 1-4) and returns the frame's
// sync-audit hash.
func (d *Driver) Tick(commands []command.WorldCommand) uint64 {
	for _, c := range commands {
		c.Apply(d.sim)
	}

	d.reg.Clock().Advance()
	dt := d.reg.Clock().EffectiveDT()
	now := d.reg.Clock().T

	d.runAgents(dt, now)
	d.runEconomy(now)
	d.reg.Parking().GC()

	return d.hash()
}

func (d *Driver) runAgents(dt, now float64) {
	w := d.reg.World()
	m := d.reg.Map()

	d.grid.Rebuild(w)

	for _, id := range w.VehicleIDs() {
		agents.TickVehicle(m, d.grid, d.reg.Parking(), w.Vehicle(id), dt, now)
	}
	for _, id := range w.HumanIDs() {
		agents.TickHuman(d.grid, w.Human(id), dt, now)
	}
	for _, id := range w.TrainIDs() {
		agents.TickTrain(m, w.Train(id), dt)
	}
}

func (d *Driver) runEconomy(now float64) {
	m := d.reg.Map()
	market := d.reg.Market()
	w := d.reg.World()

	d.reg.Production().TickProduction(m, market, d.schedule, now)
	market.MatchTick()
	economy.ApplyFreightDemands(m, w, market.DrainFreightDemands())

	for _, id := range w.FreightStationIDs() {
		economy.TickFreightStation(m, w, d.reg.Router(), d.reg.Dispatcher(), w.FreightStation(id), d.ExternalTradePoint, now)
	}
}

// hash folds the clock, each vehicle's, human's and train's kinematic
// state, and the live building IDs into a single value, walking each
// collection in sorted-ID order so the result is reproducible across
// processes given identical command streams (spec §4.9 "Compute
// per-resource hashes for sync audit"; spec §8 property 1).
func (d *Driver) hash() uint64 {
	h := synchash.New()
	w := d.reg.World()
	m := d.reg.Map()

	h.WriteInt64(d.reg.Clock().Step)
	h.WriteFloat64(d.reg.Clock().T)

	for _, id := range w.VehicleIDs() {
		v := w.Vehicle(id)
		h.WriteInt64(int64(id))
		hashVec3(h, v.Pos)
		h.WriteFloat64(v.Speed)
		h.WriteInt64(int64(v.State))
	}
	for _, id := range w.HumanIDs() {
		hu := w.Human(id)
		h.WriteInt64(int64(id))
		hashVec3(h, hu.Pos)
		h.WriteFloat64(hu.WalkPhase)
	}
	for _, id := range w.TrainIDs() {
		tr := w.Train(id)
		h.WriteInt64(int64(id))
		hashVec3(h, tr.Pos)
		h.WriteFloat64(tr.Lane.S)
	}

	buildingIDs := m.BuildingIDs() // already sorted (spec §4.9 "iteration uses sorted keys")
	ids := make([]int64, len(buildingIDs))
	for i, id := range buildingIDs {
		ids[i] = int64(id)
	}
	h.WriteSortedInt64s(ids)

	return h.Sum()
}

func hashVec3(h *synchash.Hasher, v geom.Vec3) {
	h.WriteFloat64(v.X)
	h.WriteFloat64(v.Y)
	h.WriteFloat64(v.Z)
}
