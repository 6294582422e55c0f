package mapmodel

import (
	"math"

	"github.com/citysim/engine/geom"
)

// generateTurns rebuilds every Turn through i from scratch according to its
// TurnPolicy (spec §4.1 step 5). Existing turns belonging to i are dropped
// first since the incident lane set may have changed entirely.
func (m *Map) generateTurns(i *Intersection) {
	for id := range m.turns {
		if id.Parent == i.ID {
			delete(m.turns, id)
		}
	}
	i.Turns = nil

	if i.TurnPolicy.Kind == TurnPolicyNoTurns || len(i.Roads) < 2 {
		return
	}

	incoming, outgoing := m.incidentLanes(i)

	switch i.TurnPolicy.Kind {
	case TurnPolicyRoundabout:
		m.generateRoundaboutTurns(i, incoming, outgoing)
	default:
		m.generateStandardTurns(i, incoming, outgoing)
	}
}

// incidentLanes splits i's incident lanes into those arriving (Dst == i.ID)
// and those departing (Src == i.ID), in i.Roads order.
func (m *Map) incidentLanes(i *Intersection) (incoming, outgoing []LaneID) {
	for _, rid := range i.Roads {
		road := m.roads[rid]
		for _, lid := range road.Lanes {
			lane := m.lanes[lid]
			if lane.Dst == i.ID {
				incoming = append(incoming, lid)
			}
			if lane.Src == i.ID {
				outgoing = append(outgoing, lid)
			}
		}
	}
	return
}

func (m *Map) generateStandardTurns(i *Intersection, incoming, outgoing []LaneID) {
	for _, srcID := range incoming {
		src := m.lanes[srcID]
		for _, dstID := range outgoing {
			dst := m.lanes[dstID]
			if src.Road == dst.Road {
				continue // no U-turn back onto the same road
			}
			if !compatibleTurnKinds(src.Kind, dst.Kind) {
				continue
			}
			m.addTurn(i, src, dst, turnKindFor(src.Kind))
		}
	}
}

// generateRoundaboutTurns routes every driving turn as spline -> arc ->
// spline around a virtual circle of TurnPolicy.RoundaboutRadius centered on
// the intersection (spec §4.1 step 5's roundabout case). Non-driving lanes
// (sidewalks) fall back to the standard direct-spline treatment, since
// pedestrians cut across rather than circling.
func (m *Map) generateRoundaboutTurns(i *Intersection, incoming, outgoing []LaneID) {
	radius := i.TurnPolicy.RoundaboutRadius
	if radius <= 0 {
		m.generateStandardTurns(i, incoming, outgoing)
		return
	}
	center := i.Pos.XY()

	for _, srcID := range incoming {
		src := m.lanes[srcID]
		for _, dstID := range outgoing {
			dst := m.lanes[dstID]
			if src.Road == dst.Road {
				continue
			}
			if !compatibleTurnKinds(src.Kind, dst.Kind) {
				continue
			}
			if src.Kind != LaneDriving {
				m.addTurn(i, src, dst, turnKindFor(src.Kind))
				continue
			}

			entry := src.Line[len(src.Line)-1]
			exit := dst.Line[0]
			entryAngle := entry.XY().Sub(center).Angle()
			exitAngle := exit.XY().Sub(center).Angle()

			entryOnCircle := geom.FromXY(center.Add(geom.Vec2{X: math.Cos(entryAngle), Y: math.Sin(entryAngle)}.Scale(radius)), entry.Z)
			exitOnCircle := geom.FromXY(center.Add(geom.Vec2{X: math.Cos(exitAngle), Y: math.Sin(exitAngle)}.Scale(radius)), exit.Z)

			in := geom.NewSpline(entry, entryOnCircle, src.Line.EndTangent().XY(), entryOnCircle.XY().Sub(center).Perp(), 0.5).Sample(6)
			arc := geom.Arc(center, radius, entry.Z, entryAngle, normalizeTowards(entryAngle, exitAngle), 10)
			out := geom.NewSpline(exitOnCircle, exit, exitOnCircle.XY().Sub(center).Perp(), dst.Line.StartTangent().XY(), 0.5).Sample(6)

			line := append(append(in, arc[1:]...), out[1:]...)
			m.addTurnWithLine(i, src, dst, TurnDriving, line)
		}
	}
}

// normalizeTowards adds whole turns to b until b >= a, so that sweeping
// from a to b is counterclockwise, the roundabout's travel direction; the
// sweep may be longer than half a turn.
func normalizeTowards(a, b float64) float64 {
	for b < a {
		b += 2 * math.Pi
	}
	return b
}

func compatibleTurnKinds(a, b LaneKind) bool {
	if a != b {
		return false
	}
	switch a {
	case LaneDriving, LaneWalking, LaneRail, LaneBus:
		return true
	default:
		return false
	}
}

func turnKindFor(k LaneKind) TurnKind {
	switch k {
	case LaneWalking:
		return TurnCrosswalk
	case LaneRail:
		return TurnRail
	default:
		return TurnDriving
	}
}

func (m *Map) addTurn(i *Intersection, src, dst *Lane, kind TurnKind) {
	tension := 0.5
	line := geom.NewSpline(
		src.Line[len(src.Line)-1], dst.Line[0],
		src.Line.EndTangent().XY(), dst.Line.StartTangent().XY(),
		tension,
	).Sample(8)
	m.addTurnWithLine(i, src, dst, kind, line)
}

func (m *Map) addTurnWithLine(i *Intersection, src, dst *Lane, kind TurnKind, line geom.Polyline3) {
	id := TurnID{Parent: i.ID, Src: src.ID, Dst: dst.ID}
	t := &Turn{ID: id, Kind: kind, Line: line}
	m.turns[id] = t
	i.Turns = append(i.Turns, id)
}

// applyLightPolicy recomputes and assigns TrafficControl to every incoming
// driving lane at i, in i.Roads order (spec §4.5).
func (m *Map) applyLightPolicy(i *Intersection) {
	var incomingDriving []LaneID
	for _, rid := range i.Roads {
		road := m.roads[rid]
		for _, lid := range road.Lanes {
			lane := m.lanes[lid]
			if lane.Dst == i.ID && lane.Kind == LaneDriving {
				incomingDriving = append(incomingDriving, lid)
			}
		}
	}
	controls := i.LightPolicy.Assign(int64(i.ID), len(incomingDriving))
	for idx, lid := range incomingDriving {
		if idx < len(controls) {
			m.lanes[lid].Control = controls[idx]
		}
	}
}
