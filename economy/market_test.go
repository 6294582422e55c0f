package economy

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTickFillsCompatibleOrderAndTransfersCapital(t *testing.T) {
	m := NewMarket()
	buyer := NewSoul(1, 100)
	seller := NewSoul(2, 0)
	m.Register(buyer)
	m.Register(seller)

	buyer.PlaceBuy(GoodFood, 5, 10, geom.Vec2{X: 0, Y: 0})
	seller.PlaceSell(GoodFood, 5, 8, geom.Vec2{X: 10, Y: 0})

	m.MatchTick()

	assert.Equal(t, 100-5*8.0, buyer.Capital)
	assert.Equal(t, 5*8.0, seller.Capital)
	assert.Empty(t, buyer.Buy[GoodFood])
	assert.Empty(t, seller.Sell[GoodFood])

	demands := m.DrainFreightDemands()
	require.Len(t, demands, 1)
	assert.Equal(t, 5, demands[0].Quantity)
	assert.Equal(t, GoodFood, demands[0].Good)
}

func TestMatchTickFillsFromNearestCompatibleSeller(t *testing.T) {
	m := NewMarket()
	buyer := NewSoul(1, 100)
	far := NewSoul(2, 0)
	near := NewSoul(3, 0)
	m.Register(buyer)
	m.Register(far)
	m.Register(near)

	buyer.PlaceBuy(GoodFood, 5, 10, geom.Vec2{X: 0, Y: 0})
	// Both sellers are equally compatible on price; only distance should
	// decide which one fills first. Soul IDs run the opposite direction
	// from distance, so this would pick "far" if location were ignored.
	far.PlaceSell(GoodFood, 5, 8, geom.Vec2{X: 100, Y: 0})
	near.PlaceSell(GoodFood, 5, 8, geom.Vec2{X: 1, Y: 0})

	m.MatchTick()

	assert.Equal(t, 5*8.0, near.Capital, "nearest seller should have filled the order")
	assert.Equal(t, 0.0, far.Capital, "farther seller should have been left untouched")

	demands := m.DrainFreightDemands()
	require.Len(t, demands, 1)
	assert.Equal(t, near.ID, demands[0].SellSoul)
}

func TestMatchTickRejectsOrdersOutsidePriceBounds(t *testing.T) {
	m := NewMarket()
	buyer := NewSoul(1, 100)
	seller := NewSoul(2, 0)
	m.Register(buyer)
	m.Register(seller)

	buyer.PlaceBuy(GoodFood, 5, 5, geom.Vec2{})
	seller.PlaceSell(GoodFood, 5, 8, geom.Vec2{})

	m.MatchTick()

	assert.Equal(t, 100.0, buyer.Capital)
	assert.Len(t, buyer.Buy[GoodFood], 1)
	assert.Empty(t, m.DrainFreightDemands())
}

func TestMatchTickCapsFillByBuyerCapital(t *testing.T) {
	m := NewMarket()
	buyer := NewSoul(1, 20)
	seller := NewSoul(2, 0)
	m.Register(buyer)
	m.Register(seller)

	buyer.PlaceBuy(GoodFood, 10, 10, geom.Vec2{})
	seller.PlaceSell(GoodFood, 10, 4, geom.Vec2{})

	m.MatchTick()

	assert.Equal(t, 0.0, buyer.Capital)
	require.Len(t, buyer.Buy[GoodFood], 1)
	assert.Equal(t, 5, buyer.Buy[GoodFood][0].Quantity)
}
