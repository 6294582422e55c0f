package save

import "github.com/citysim/engine/internal/synchash"

// Hash folds env into a single value for the save round-trip property
// (spec §8 property 4: "saves round-trip exactly, hash-equal after
// load-save-load"). Every slice here was built from sorted-ID iteration
// (MapSnapshot/WorldSnapshot), so hashing in encounter order is
// deterministic.
func Hash(env Envelope) uint64 {
	h := synchash.New()
	h.WriteInt64(int64(env.Version))
	h.WriteInt64(env.ClockStep)
	h.WriteFloat64(env.ClockTime)

	for _, i := range env.Map.Intersections {
		h.WriteInt64(i.ID)
		h.WriteFloat64(i.X)
		h.WriteFloat64(i.Y)
		h.WriteFloat64(i.Z)
		h.WriteInt64(int64(i.TurnKind))
		h.WriteInt64(int64(i.LightKind))
	}
	for _, r := range env.Map.Roads {
		h.WriteInt64(r.ID)
		h.WriteInt64(r.Src)
		h.WriteInt64(r.Dst)
		h.WriteFloat64(r.Width)
	}
	for _, l := range env.Map.Lots {
		h.WriteInt64(l.ID)
		h.WriteInt64(l.Road)
		h.WriteInt64(int64(l.Kind))
	}
	for _, b := range env.Map.Buildings {
		h.WriteInt64(b.ID)
		h.WriteInt64(int64(b.Kind))
		h.WriteFloat64(b.X)
		h.WriteFloat64(b.Y)
		if b.OwnerSoul != nil {
			h.WriteInt64(*b.OwnerSoul)
		}
	}

	for _, v := range env.World.Vehicles {
		h.WriteInt64(v.ID)
		h.WriteFloat64(v.X)
		h.WriteFloat64(v.Y)
		h.WriteFloat64(v.Speed)
		h.WriteInt64(int64(v.State))
		h.WriteInt64(v.SoulID)
	}
	for _, hu := range env.World.Humans {
		h.WriteInt64(hu.ID)
		h.WriteFloat64(hu.X)
		h.WriteFloat64(hu.Y)
		h.WriteInt64(hu.SoulID)
	}
	for _, tr := range env.World.Trains {
		h.WriteInt64(tr.ID)
		h.WriteFloat64(tr.X)
		h.WriteFloat64(tr.Y)
	}
	for _, fs := range env.World.FreightStations {
		h.WriteInt64(fs.ID)
		h.WriteInt64(int64(fs.State))
	}

	for _, soul := range env.Resources.Souls {
		h.WriteInt64(soul.ID)
		h.WriteFloat64(soul.Capital)
		for _, o := range soul.Buy {
			h.WriteInt64(int64(o.Good))
			h.WriteInt64(int64(o.Quantity))
			h.WriteFloat64(o.LimitPrice)
			h.WriteFloat64(o.X)
			h.WriteFloat64(o.Y)
		}
		for _, o := range soul.Sell {
			h.WriteInt64(int64(o.Good))
			h.WriteInt64(int64(o.Quantity))
			h.WriteFloat64(o.LimitPrice)
			h.WriteFloat64(o.X)
			h.WriteFloat64(o.Y)
		}
	}

	return h.Sum()
}
