package save

import (
	"testing"

	"github.com/citysim/engine/economy"
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/registry"
	"github.com/citysim/engine/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *registry.Registry {
	reg := registry.New(registry.Config{Seed: 1, ClockDT: 1})
	a := reg.Map().AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := reg.Map().AddIntersection(geom.Vec3{X: 100, Y: 0})
	reg.Map().Connect(a, b, nil, mapmodel.TwoWayRoad(1, 3.5))
	reg.World().NewHuman(world.Human{Pos: geom.Vec3{X: 10, Y: 0}, SoulID: 7})

	soul := economy.NewSoul(7, 500)
	soul.PlaceBuy(economy.GoodFood, 10, 2.5, geom.Vec2{X: 10, Y: 0})
	reg.Market().Register(soul)

	return reg
}

func TestBuildCapturesMapAndWorldInSortedOrder(t *testing.T) {
	env := Build(testRegistry())

	require.Len(t, env.Map.Intersections, 2)
	require.Len(t, env.Map.Roads, 1)
	require.Len(t, env.World.Humans, 1)
	require.Len(t, env.Resources.Souls, 1)
	assert.Equal(t, CurrentVersion, env.Version)
	assert.Equal(t, int64(7), env.World.Humans[0].SoulID)
	assert.Equal(t, 500.0, env.Resources.Souls[0].Capital)
	require.Len(t, env.Resources.Souls[0].Buy, 1)
}

func TestEncodeBinaryRoundTripsHashEqual(t *testing.T) {
	env := Build(testRegistry())
	want := Hash(env)

	data, err := EncodeBinary(env)
	require.NoError(t, err)

	got, err := DecodeBinary(data)
	require.NoError(t, err)

	assert.Equal(t, want, Hash(got))
	assert.Equal(t, env, got)
}

func TestEncodeTextRoundTripsHashEqual(t *testing.T) {
	env := Build(testRegistry())
	want := Hash(env)

	data, err := EncodeText(env)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version:")

	got, err := DecodeText(data)
	require.NoError(t, err)

	assert.Equal(t, want, Hash(got))
	assert.Equal(t, env, got)
}

func TestDecodeBinaryRejectsVersionMismatch(t *testing.T) {
	env := Build(testRegistry())
	env.Version = CurrentVersion + 1

	data, err := EncodeBinary(env)
	require.NoError(t, err)

	_, err = DecodeBinary(data)
	assert.ErrorContains(t, err, "version mismatch")
}

func TestHashIsStableAcrossRepeatedCalls(t *testing.T) {
	env := Build(testRegistry())
	assert.Equal(t, Hash(env), Hash(env))
}
