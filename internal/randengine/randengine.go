// Package randengine wraps golang.org/x/exp/rand in the helpers the
// simulation's deterministic systems need (discrete distributions, seeded
// per-object streams). Ported near-verbatim from the teacher's
// utils/randengine/randengine.go.
package randengine

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
)

// Engine is a seeded random source. Every subsystem that needs randomness
// (light-policy offsets, pedestrian cruising speed, economy tie-breaks)
// owns its own Engine seeded from a stable key, never a shared global one,
// so lockstep participants stay hash-identical regardless of goroutine
// scheduling.
type Engine struct {
	*rand.Rand
	mtx sync.Mutex
}

// New creates an engine from a 64-bit seed.
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed))}
}

// Derive seeds a new Engine deterministically from a base seed plus a
// stable key (typically an entity or map-object ID), so that per-object
// streams don't depend on call order.
func Derive(baseSeed uint64, key int64) *Engine {
	return New(baseSeed ^ uint64(key)*0x9E3779B97F4A7C15)
}

// DiscreteDistribution picks an index in [0, len(weight)) proportional to
// weight; not safe for concurrent use.
func (e *Engine) DiscreteDistribution(weight []float64) int {
	var total float64
	for _, w := range weight {
		total += w
	}
	r := e.Float64() * total
	var sum float64
	for i, w := range weight {
		sum += w
		if sum > r {
			return i
		}
	}
	return len(weight) - 1
}

// PTrue returns true with probability p; not safe for concurrent use.
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Float64Safe is the mutex-guarded variant of Float64, for engines shared
// across sharded agent workers.
func (e *Engine) Float64Safe() float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Float64()
}

// IntnSafe is the mutex-guarded variant of Intn.
func (e *Engine) IntnSafe(n int) int {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Intn(n)
}

// NormalSafe draws from N(mean, stddev^2), mutex-guarded.
func (e *Engine) NormalSafe(mean, stddev float64) float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Rand.NormFloat64()*stddev + mean
}

// StableOffset hashes an int64 key into [0, period) deterministically; used
// by LightPolicy to assign per-intersection phase offsets that survive
// reload (spec §4.5).
func StableOffset(key int64, period float64) float64 {
	h := uint64(key)*0x9E3779B97F4A7C15 + 0xBF58476D1CE4E5B9
	h ^= h >> 33
	frac := float64(h%1_000_000) / 1_000_000
	return frac * period
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine{}")
}
