package mapmodel

import "github.com/citysim/engine/geom"

// TurnKind mirrors the lane kinds a turn connects (spec §3).
type TurnKind int

const (
	TurnDriving TurnKind = iota
	TurnWalkingCorner
	TurnCrosswalk
	TurnRail
)

// Turn is a spline connecting a source lane to a destination lane through
// an intersection (spec §3, GLOSSARY).
type Turn struct {
	ID   TurnID
	Kind TurnKind
	Line geom.Polyline3
}

// TurnPolicyKind selects how Turns are generated from adjacency + lane
// kinds at an intersection (spec §4.1 step 5; enumerated variant per spec
// §9's "dynamic dispatch... enumerated variants matched in code").
type TurnPolicyKind int

const (
	TurnPolicyStandard TurnPolicyKind = iota
	TurnPolicyRoundabout
	TurnPolicyNoTurns // dead-end / degree-1 intersections generate no turns
)

// TurnPolicy configures turn generation for one intersection.
type TurnPolicy struct {
	Kind           TurnPolicyKind
	RoundaboutRadius float64 // only meaningful for TurnPolicyRoundabout
}
