// Package economy implements the soul/market/freight-demand layer (spec
// §4.8): capital accounting per Soul, buy/sell order matching by
// nearest-compatible location, and a per-BuildingKind production/
// consumption schedule evaluated once per in-game hour.
//
// Grounded on ecosim/economy.go (CalculateConsumption's sorted-candidate,
// partial-fill, inventory/currency-capped purchase loop is the shape
// MatchTick follows) and ecosim/org.go's periodic per-tick production
// update; translated from that file's protobuf-backed Agent/Firm types to
// plain structs tied to this repo's mapmodel.Building/world.Soul-bearing
// entities, since no wire schema needs satisfying here.
package economy

import "github.com/citysim/engine/geom"

// GoodKind enumerates the tradeable item kinds (SPEC_FULL supplement).
type GoodKind int

const (
	GoodFood GoodKind = iota
	GoodGoods
	GoodMaterials
)

// Order is a standing buy or sell intent (spec §4.8 "buy-orders (quantity,
// max price, location)" / "sell-orders (quantity, min price, location)").
type Order struct {
	SoulID      int64
	Quantity    int
	LimitPrice  float64 // max price willing to pay (buy) or min price accepted (sell)
	Location    geom.Vec2
}

// Soul is an owner identity attachable to buildings/entities for economic
// accounting (spec GLOSSARY "Soul").
type Soul struct {
	ID      int64
	Capital float64

	Buy  map[GoodKind][]Order
	Sell map[GoodKind][]Order
}

// NewSoul returns a soul with the given starting capital and empty books.
func NewSoul(id int64, capital float64) *Soul {
	return &Soul{
		ID:      id,
		Capital: capital,
		Buy:     make(map[GoodKind][]Order),
		Sell:    make(map[GoodKind][]Order),
	}
}

// PlaceBuy appends a standing buy order for good.
func (s *Soul) PlaceBuy(good GoodKind, quantity int, limitPrice float64, at geom.Vec2) {
	s.Buy[good] = append(s.Buy[good], Order{SoulID: s.ID, Quantity: quantity, LimitPrice: limitPrice, Location: at})
}

// PlaceSell appends a standing sell order for good.
func (s *Soul) PlaceSell(good GoodKind, quantity int, limitPrice float64, at geom.Vec2) {
	s.Sell[good] = append(s.Sell[good], Order{SoulID: s.ID, Quantity: quantity, LimitPrice: limitPrice, Location: at})
}
