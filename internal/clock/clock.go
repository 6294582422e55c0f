// Package clock advances simulation time in fixed, deterministic steps.
//
// Ported from the teacher's clock/clock.go: same Prepare/Init split and the
// same internal-step vs external-step distinction, generalized field names
// and stripped of the private RPC handler (network transport is out of
// scope for this repo).
package clock

import "fmt"

// SecondsPerHour and HoursPerDay define the in-game calendar (spec §6).
const (
	SecondsPerHour = 100
	HoursPerDay    = 24
)

// Clock tracks the fixed-step tick counter and derived wall time.
type Clock struct {
	DT        float64 // seconds advanced per tick, before time-warp
	TimeWarp  float64 // multiplier applied to DT for the effective step
	StartStep int64
	EndStep   int64 // exclusive; 0 means unbounded

	Step int64   // current tick index
	T    float64 // seconds since simulation start
}

// New creates a clock with the given base step and tick bounds.
func New(dt float64, startStep, endStep int64) *Clock {
	c := &Clock{
		DT:        dt,
		TimeWarp:  1,
		StartStep: startStep,
		EndStep:   endStep,
	}
	c.Reset()
	return c
}

// Reset rewinds the clock to its start step.
func (c *Clock) Reset() {
	c.Step = c.StartStep
	c.T = float64(c.Step) * c.DT
}

// EffectiveDT returns the seconds advanced by the next Advance call.
func (c *Clock) EffectiveDT() float64 {
	return c.DT * c.TimeWarp
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.Step++
	c.T += c.EffectiveDT()
}

// Done reports whether the clock has reached EndStep (unbounded when EndStep == 0).
func (c *Clock) Done() bool {
	return c.EndStep > 0 && c.Step >= c.EndStep
}

// HourMinuteSecond splits T into the in-game hour of the day and the
// minute/second within that hour, one in-game hour lasting SecondsPerHour
// seconds of T.
func (c *Clock) HourMinuteSecond() (hour, minute int, second float64) {
	totalHours := int(c.T / SecondsPerHour)
	hour = totalHours % HoursPerDay
	inHour := (c.T - float64(totalHours*SecondsPerHour)) * 3600 / SecondsPerHour
	minute = int(inHour) / 60
	second = inHour - float64(minute*60)
	return
}

// Day returns the in-game day index (HoursPerDay hours per day).
func (c *Clock) Day() int {
	hour := int(c.T / SecondsPerHour)
	return hour / HoursPerDay
}

// SetGameTime jumps the clock to an absolute in-game second. The tick
// counter is left untouched.
func (c *Clock) SetGameTime(seconds float64) {
	c.T = seconds
}

func (c *Clock) String() string {
	h, m, s := c.HourMinuteSecond()
	return fmt.Sprintf("day %d %02d:%02d:%05.2f", c.Day(), h, m, s)
}
