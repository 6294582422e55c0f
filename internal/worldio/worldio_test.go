package worldio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/citysim/engine/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
intersections:
  - pos: {x: 0, y: 0, z: 0}
  - pos: {x: 100, y: 0, z: 0}
roads:
  - from: 0
    to: 1
    lanes: 2
    width: 3.5
    kind: twoway
vehicles:
  - class: {name: car, cruising: 1, maxspeedmultiplier: 1, acceleration: 3, deceleration: 6, angacc: 4, length: 4.5}
    pos: {x: 0, y: 0, z: 0}
    dir: {x: 1, y: 0}
    soul_id: 1
humans:
  - pos: {x: 10, y: 0, z: 0}
    soul_id: 2
`

func TestLoadFileParsesSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, s.Intersections, 2)
	assert.Len(t, s.Roads, 1)
	assert.Len(t, s.Vehicles, 1)
	assert.Len(t, s.Humans, 1)
	assert.Equal(t, "car", s.Vehicles[0].Class.Name)
}

func TestApplySeedsMapAndWorld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))
	s, err := LoadFile(path)
	require.NoError(t, err)

	reg := registry.New(registry.Config{Seed: 1, ClockDT: 1})
	Apply(s, reg)

	assert.Len(t, reg.Map().IntersectionIDs(), 2)
	assert.Len(t, reg.Map().RoadIDs(), 1)
	assert.Len(t, reg.World().VehicleIDs(), 1)
	assert.Len(t, reg.World().HumanIDs(), 1)
}

func TestApplySkipsRoadWithOutOfRangeIntersection(t *testing.T) {
	s := Spec{
		Intersections: []IntersectionSpec{{}},
		Roads:         []RoadSpec{{From: 0, To: 5, Lanes: 1, Width: 3}},
	}
	reg := registry.New(registry.Config{Seed: 1, ClockDT: 1})

	assert.NotPanics(t, func() { Apply(s, reg) })
	assert.Empty(t, reg.Map().RoadIDs())
}
