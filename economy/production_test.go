package economy

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickProductionPostsSellOrderOncePerHour(t *testing.T) {
	m := mapmodel.New(nil, nil, 1)
	obb := geom.NewOBB(geom.Vec2{X: 100, Y: 100}, 0, 10, 10)
	id, ok := m.BuildSpecialBuilding(obb, mapmodel.BuildingWorkplace, geom.Vec3{X: 100, Y: 95})
	require.True(t, ok)
	soulID := int64(42)
	m.Building(id).OwnerSoul = &soulID

	market := NewMarket()
	market.Register(NewSoul(soulID, 0))
	state := NewProductionState()
	schedule := DefaultSchedule()

	state.TickProduction(m, market, schedule, 0)
	soul := market.Soul(soulID)
	require.Len(t, soul.Sell[GoodGoods], 1)
	require.Len(t, soul.Buy[GoodMaterials], 1)

	state.TickProduction(m, market, schedule, 1)
	assert.Len(t, soul.Sell[GoodGoods], 1, "same in-game hour should not post a second order")

	state.TickProduction(m, market, schedule, 101)
	assert.Len(t, soul.Sell[GoodGoods], 2)
}

func TestTickProductionSkipsBuildingsWithoutOwner(t *testing.T) {
	m := mapmodel.New(nil, nil, 1)
	obb := geom.NewOBB(geom.Vec2{X: 0, Y: 0}, 0, 10, 10)
	_, ok := m.BuildSpecialBuilding(obb, mapmodel.BuildingWorkplace, geom.Vec3{X: 0, Y: -5})
	require.True(t, ok)

	market := NewMarket()
	state := NewProductionState()
	assert.NotPanics(t, func() {
		state.TickProduction(m, market, DefaultSchedule(), 0)
	})
}
