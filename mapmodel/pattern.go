package mapmodel

// LanePattern describes the lanes `connect` should generate for a new road
// (spec §3 "ordered lane IDs per direction, LanePattern").
type LanePattern struct {
	// Lanes lists one entry per generated lane, left-to-right for the
	// forward direction followed by left-to-right for the backward
	// direction (a one-way road simply omits one direction's entries).
	Lanes []LaneSpec
	Width float64 // default per-lane width if a LaneSpec doesn't override it
}

// LaneSpec is one lane's kind/direction within a LanePattern.
type LaneSpec struct {
	Kind      LaneKind
	Direction Direction
	Width     float64 // 0 means "use LanePattern.Width"
}

// OneWayRoad returns the common pattern for a single-direction road with n
// driving lanes.
func OneWayRoad(n int, width float64) LanePattern {
	p := LanePattern{Width: width}
	for i := 0; i < n; i++ {
		p.Lanes = append(p.Lanes, LaneSpec{Kind: LaneDriving, Direction: DirForward})
	}
	return p
}

// TwoWayRoad returns the default two-way pattern: n driving lanes each
// direction, plus a sidewalk each side (spec §8 Scenario A's "default
// two-way pattern").
func TwoWayRoad(n int, width float64) LanePattern {
	p := LanePattern{Width: width}
	for i := 0; i < n; i++ {
		p.Lanes = append(p.Lanes, LaneSpec{Kind: LaneDriving, Direction: DirForward})
	}
	p.Lanes = append(p.Lanes, LaneSpec{Kind: LaneWalking, Direction: DirForward})
	for i := 0; i < n; i++ {
		p.Lanes = append(p.Lanes, LaneSpec{Kind: LaneDriving, Direction: DirBackward})
	}
	p.Lanes = append(p.Lanes, LaneSpec{Kind: LaneWalking, Direction: DirBackward})
	return p
}

// RailRoad returns a single bidirectional rail corridor.
func RailRoad(width float64) LanePattern {
	return LanePattern{
		Width: width,
		Lanes: []LaneSpec{
			{Kind: LaneRail, Direction: DirForward},
			{Kind: LaneRail, Direction: DirBackward},
		},
	}
}

func (p LanePattern) laneWidth(spec LaneSpec) float64 {
	if spec.Width > 0 {
		return spec.Width
	}
	if p.Width > 0 {
		return p.Width
	}
	return 3.5
}

// TotalWidth sums every lane's width, the road's overall corridor width.
func (p LanePattern) TotalWidth() float64 {
	var w float64
	for _, spec := range p.Lanes {
		w += p.laneWidth(spec)
	}
	return w
}

// HasParking reports whether the pattern includes a parking lane, which
// triggers parking-spot generation on connect (spec §4.1).
func (p LanePattern) HasParking() bool {
	for _, spec := range p.Lanes {
		if spec.Kind == LaneParking {
			return true
		}
	}
	return false
}
