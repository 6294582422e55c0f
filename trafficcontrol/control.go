// Package trafficcontrol implements per-lane traffic control (spec §4.5):
// the TrafficControl state carried by every incoming lane, the Schedule a
// Light control cycles through, and the LightPolicy that assigns control to
// an intersection's incoming lanes.
//
// Grounded on entity/junction/trafficlight/{local,max_pressure}.go for the
// phase/offset/snapshot-runtime shape, and on
// original_source/map_model/light_policy.rs for the NoLights/StopSigns/
// Lights/Auto policy-selection rules.
package trafficcontrol

import "math"

// Phase is the color a Light control shows at an instant.
type Phase int

const (
	PhaseGreen Phase = iota
	PhaseOrange
	PhaseRed
)

// Schedule is a single lane's green/orange/red cycle (spec §4.5): at time
// t, phase = (t + offset) mod (green+orange+red), mapped piecewise.
type Schedule struct {
	Green, Orange, Red, Offset float64
}

// Period returns the schedule's total cycle length.
func (s Schedule) Period() float64 {
	return s.Green + s.Orange + s.Red
}

// PhaseAt returns the schedule's phase at time t and the seconds remaining
// in that phase.
func (s Schedule) PhaseAt(t float64) (Phase, float64) {
	period := s.Period()
	if period <= 0 {
		return PhaseGreen, math.Inf(1)
	}
	phase := math.Mod(t+s.Offset, period)
	if phase < 0 {
		phase += period
	}
	switch {
	case phase < s.Green:
		return PhaseGreen, s.Green - phase
	case phase < s.Green+s.Orange:
		return PhaseOrange, s.Green + s.Orange - phase
	default:
		return PhaseRed, period - phase
	}
}

// Kind distinguishes the three TrafficControl variants (spec §4.5).
type Kind int

const (
	Always Kind = iota
	StopSign
	Light
)

// Control is the TrafficControl value carried by a lane.
type Control struct {
	Kind     Kind
	Schedule Schedule // only meaningful when Kind == Light
}

// AlwaysControl, StopSignControl are the zero-argument variants.
func AlwaysControl() Control   { return Control{Kind: Always} }
func StopSignControl() Control { return Control{Kind: StopSign} }

// LightControl builds a Light control from a schedule, validating the
// period > 0 invariant (spec §3 invariant 8).
func LightControl(s Schedule) (Control, bool) {
	if s.Period() <= 0 {
		return Control{}, false
	}
	return Control{Kind: Light, Schedule: s}, true
}

// PhaseAt reports the effective phase at time t for a Light control; Always
// is always Green, StopSign has no phase (callers check Kind directly).
func (c Control) PhaseAt(t float64) Phase {
	if c.Kind != Light {
		return PhaseGreen
	}
	p, _ := c.Schedule.PhaseAt(t)
	return p
}
