package trafficcontrol

import (
	"math"

	"github.com/citysim/engine/internal/randengine"
)

// PolicyKind selects how an intersection's LightPolicy assigns control to
// its incoming lanes (spec §4.5).
type PolicyKind int

const (
	NoLights PolicyKind = iota
	StopSigns
	Lights
	Auto
	LeftTurnsLights // Auto's "Lights if left turns enabled" branch, pinned explicitly
)

// LightPolicy parameterizes the Lights/Auto policies.
type LightPolicy struct {
	Kind            PolicyKind
	CycleSize       float64 // seconds per cycle, e.g. 14s (spec §8 Scenario D)
	OrangeLength    float64 // seconds, e.g. 4s
	LeftTurnsAllowed bool   // consulted only by Auto
}

// numIncoming and intersectionID are the only inputs Assign needs beyond the
// policy itself, since the per-road offset only depends on position within
// the cycle partition and a stable per-intersection pseudo-random value.

// Assign computes the TrafficControl for each of an intersection's incoming
// roads, indexed the same way as the caller's road list (spec §4.5):
//   - NoLights: every road gets Always.
//   - StopSigns: every road gets StopSign.
//   - Lights: partition into n_cycles = ceil(numIncoming/2) cycles; each
//     road's offset = CycleSize*(i mod n_cycles) + a stable per-intersection
//     pseudo-random offset, so reload is deterministic.
//   - Auto: NoLights if <=2 roads, StopSigns if 3, else Lights if
//     LeftTurnsAllowed else StopSigns.
func (p LightPolicy) Assign(intersectionID int64, numIncoming int) []Control {
	switch p.Kind {
	case NoLights:
		return uniform(numIncoming, AlwaysControl())
	case StopSigns:
		return uniform(numIncoming, StopSignControl())
	case Lights, LeftTurnsLights:
		return assignLights(intersectionID, numIncoming, p.CycleSize, p.OrangeLength)
	case Auto:
		switch {
		case numIncoming <= 2:
			return uniform(numIncoming, AlwaysControl())
		case numIncoming == 3:
			return uniform(numIncoming, StopSignControl())
		case p.LeftTurnsAllowed:
			return assignLights(intersectionID, numIncoming, p.CycleSize, p.OrangeLength)
		default:
			return uniform(numIncoming, StopSignControl())
		}
	default:
		return uniform(numIncoming, AlwaysControl())
	}
}

func uniform(n int, c Control) []Control {
	out := make([]Control, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func assignLights(intersectionID int64, numIncoming int, cycleSize, orangeLength float64) []Control {
	if numIncoming == 0 {
		return nil
	}
	nCycles := int(math.Ceil(float64(numIncoming) / 2))
	if nCycles < 1 {
		nCycles = 1
	}
	period := cycleSize * float64(nCycles)
	intersectionOffset := randengine.StableOffset(intersectionID, period)

	out := make([]Control, numIncoming)
	red := period - cycleSize // every road is green for exactly one slot per full period
	if red < 0 {
		red = 0
	}
	for i := range out {
		slot := i % nCycles
		offset := cycleSize*float64(slot) + intersectionOffset
		green := cycleSize - orangeLength
		if green < 0 {
			green = 0
		}
		sched := Schedule{Green: green, Orange: orangeLength, Red: red, Offset: offset}
		c, ok := LightControl(sched)
		if !ok {
			c = AlwaysControl()
		}
		out[i] = c
	}
	return out
}
