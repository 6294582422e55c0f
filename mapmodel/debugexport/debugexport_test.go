package debugexport

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollectionIncludesIntersectionsAndRoads(t *testing.T) {
	m := mapmodel.New(nil, nil, 1)
	a := m.AddIntersection(geom.Vec3{X: 0, Y: 0})
	b := m.AddIntersection(geom.Vec3{X: 100, Y: 0})
	_, ok := m.Connect(a, b, nil, mapmodel.TwoWayRoad(1, 3.5))
	require.True(t, ok)

	fc := FeatureCollection(m)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	assert.Equal(t, 2, kinds["intersection"])
	assert.Equal(t, 1, kinds["road"])
	assert.Equal(t, 4, kinds["lane"])
}

func TestMarshalProducesValidJSON(t *testing.T) {
	m := mapmodel.New(nil, nil, 1)
	m.AddIntersection(geom.Vec3{X: 0, Y: 0})

	b, err := Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), "FeatureCollection")
}
