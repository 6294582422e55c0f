package trafficcontrol

// ClearAhead abstracts the transport-grid query a StopSign control needs:
// "is the intersection clear of conflicting traffic". Implemented by the
// agents package; kept as an interface here so trafficcontrol has no
// dependency on world/agents state.
type ClearAhead func() bool

// Decision is what a vehicle approaching a controlled lane should do.
type Decision int

const (
	Pass Decision = iota
	YieldAtLine
	YieldThenProceedIfClear
)

// CanPass implements the can-pass predicate of spec §4.5: green/orange pass,
// red yields before the stop line, and StopSign yields then proceeds once
// ClearAhead reports no conflicting traffic.
func CanPass(c Control, t float64, clear ClearAhead) Decision {
	switch c.Kind {
	case Always:
		return Pass
	case Light:
		switch c.PhaseAt(t) {
		case PhaseGreen, PhaseOrange:
			return Pass
		default:
			return YieldAtLine
		}
	case StopSign:
		if clear != nil && clear() {
			return Pass
		}
		return YieldThenProceedIfClear
	default:
		return YieldAtLine
	}
}

// TieBreakLaneID resolves simultaneous stop-sign arrivals: "lowest incoming
// lane ID wins" per spec §9's Open Question decision, kept deterministic
// without timestamps.
func TieBreakLaneID(candidates []int64) (winner int64, ok bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	winner = candidates[0]
	for _, id := range candidates[1:] {
		if id < winner {
			winner = id
		}
	}
	return winner, true
}
