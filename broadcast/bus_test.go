package broadcast

import (
	"testing"

	"github.com/citysim/engine/geom"
	"github.com/stretchr/testify/assert"
)

func TestPublishOnlyReachesInterestedSubscribers(t *testing.T) {
	bus := NewBus()
	c1 := ChunkOf(geom.Vec2{X: 10, Y: 10})
	c2 := ChunkOf(geom.Vec2{X: 1000, Y: 1000})

	bus.Subscribe(1, []ChunkID{c1})
	bus.Subscribe(2, []ChunkID{c2})

	bus.Publish([]ChunkID{c1})

	assert.Equal(t, []ChunkID{c1}, bus.Drain(1))
	assert.Empty(t, bus.Drain(2))
	// Drain clears state: a second call with no new publish is empty.
	assert.Empty(t, bus.Drain(1))
}

func TestChunksOfCoversBoundingBox(t *testing.T) {
	box := geom.NewAABB(geom.Vec2{X: -10, Y: -10}, geom.Vec2{X: 150, Y: 5})
	chunks := ChunksOf(box)
	assert.Contains(t, chunks, ChunkID{X: -1, Y: -1})
	assert.Contains(t, chunks, ChunkID{X: 1, Y: 0})
}
