package economy

import (
	"github.com/citysim/engine/internal/clock"
	"github.com/citysim/engine/mapmodel"
	"github.com/samber/lo"
)

// Prototype is a per-BuildingKind production/consumption schedule,
// evaluated once per in-game hour (spec §4.8 "Buildings produce/consume
// goods by prototype schedule"; grounded on ecosim/org.go's periodic
// production tick).
type Prototype struct {
	Kind         mapmodel.BuildingKind
	Produces     GoodKind
	Rate         float64 // units produced per in-game hour
	Consumes     map[GoodKind]float64
	SellPrice    float64 // asking price for Produces, when Rate > 0
	ConsumePrice float64 // max price willing to pay per unit of Consumes
}

// Schedule maps each BuildingKind to its prototype; buildings with no
// entry neither produce nor consume.
type Schedule map[mapmodel.BuildingKind]Prototype

// DefaultSchedule returns the SPEC_FULL-supplemented production schedule:
// workplaces produce goods consuming materials, supermarkets produce food
// consuming goods, houses consume food (residents' upkeep).
func DefaultSchedule() Schedule {
	return Schedule{
		mapmodel.BuildingWorkplace: {
			Kind: mapmodel.BuildingWorkplace, Produces: GoodGoods, Rate: 4,
			Consumes: map[GoodKind]float64{GoodMaterials: 2}, SellPrice: 6, ConsumePrice: 4,
		},
		mapmodel.BuildingSupermarket: {
			Kind: mapmodel.BuildingSupermarket, Produces: GoodFood, Rate: 6,
			Consumes: map[GoodKind]float64{GoodGoods: 1}, SellPrice: 3, ConsumePrice: 7,
		},
		mapmodel.BuildingHouse: {
			Kind: mapmodel.BuildingHouse, Produces: GoodFood, Rate: 0,
			Consumes: map[GoodKind]float64{GoodFood: 1}, ConsumePrice: 4,
		},
	}
}

// ProductionState tracks, per building, the in-game hour its prototype
// last fired, so TickProduction only applies once per hour regardless of
// tick rate.
type ProductionState struct {
	lastHour map[mapmodel.BuildingID]int64
}

// NewProductionState returns an empty per-building hour tracker.
func NewProductionState() *ProductionState {
	return &ProductionState{lastHour: make(map[mapmodel.BuildingID]int64)}
}

// TickProduction applies schedule to every building whose owning soul is
// known, once per elapsed in-game hour (spec §4.8; clock.SecondsPerHour
// from §6). Production posts a sell order at the building's door location;
// consumption posts a buy order at the same location.
func (st *ProductionState) TickProduction(m *mapmodel.Map, market *Market, schedule Schedule, now float64) {
	hour := int64(now / clock.SecondsPerHour)

	ids := lo.Filter(m.BuildingIDs(), func(id mapmodel.BuildingID, _ int) bool {
		b := m.Building(id)
		return b != nil && b.OwnerSoul != nil
	})

	for _, id := range ids {
		b := m.Building(id)
		proto, ok := schedule[b.Kind]
		if !ok {
			continue
		}
		if last, seen := st.lastHour[id]; seen && last == hour {
			continue
		}
		st.lastHour[id] = hour

		soul := market.Soul(*b.OwnerSoul)
		if soul == nil {
			continue
		}
		at := b.Door.XY()

		if proto.Rate > 0 {
			soul.PlaceSell(proto.Produces, int(proto.Rate), proto.SellPrice, at)
		}
		for good, qty := range proto.Consumes {
			soul.PlaceBuy(good, int(qty), proto.ConsumePrice, at)
		}
	}
}
