package trafficcontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoPicksNoLightsForTwoRoads(t *testing.T) {
	p := LightPolicy{Kind: Auto, CycleSize: 14, OrangeLength: 4}
	ctrls := p.Assign(1, 2)
	for _, c := range ctrls {
		assert.Equal(t, Always, c.Kind)
	}
}

func TestAutoPicksStopSignsForThreeRoads(t *testing.T) {
	p := LightPolicy{Kind: Auto, CycleSize: 14, OrangeLength: 4}
	ctrls := p.Assign(1, 3)
	for _, c := range ctrls {
		assert.Equal(t, StopSign, c.Kind)
	}
}

func TestLightsFourRoadsSharePeriodAndOrangeNeverOverlapsTwice(t *testing.T) {
	p := LightPolicy{Kind: Lights, CycleSize: 14, OrangeLength: 4}
	ctrls := p.Assign(42, 4)
	assert.Len(t, ctrls, 4)

	period := ctrls[0].Schedule.Period()
	for _, c := range ctrls {
		assert.Equal(t, Light, c.Kind)
		assert.InDelta(t, period, c.Schedule.Period(), 1e-9)
	}

	// scenario D: at any instant, exactly ceil(roads/2) are not-red.
	for step := 0; step < 200; step++ {
		t := float64(step) * 0.37
		notRed := 0
		for _, c := range ctrls {
			if c.PhaseAt(t) != PhaseRed {
				notRed++
			}
		}
		assert.Equal(t, 2, notRed, "time=%v", t)
	}
}

func TestDeterministicOffsetStableAcrossCalls(t *testing.T) {
	p := LightPolicy{Kind: Lights, CycleSize: 14, OrangeLength: 4}
	a := p.Assign(7, 4)
	b := p.Assign(7, 4)
	assert.Equal(t, a, b)
}

func TestCanPassStopSignYieldsUntilClear(t *testing.T) {
	c := StopSignControl()
	assert.Equal(t, YieldThenProceedIfClear, CanPass(c, 0, func() bool { return false }))
	assert.Equal(t, Pass, CanPass(c, 0, func() bool { return true }))
}

func TestTieBreakLowestLaneWins(t *testing.T) {
	w, ok := TieBreakLaneID([]int64{9, 3, 5})
	assert.True(t, ok)
	assert.Equal(t, int64(3), w)
}
