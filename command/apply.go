package command

import (
	"github.com/citysim/engine/internal/clock"
	"github.com/citysim/engine/mapmodel"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "command")

// Sim bundles the mutable state a WorldCommand is allowed to touch. It is
// deliberately narrow — only the map and clock are ever mutated directly by
// a command; economy, pathing and agent state react to the map's publish
// notifications on their own next tick.
type Sim struct {
	Map   *mapmodel.Map
	Clock *clock.Clock

	Messages       []ChatMessage
	ResetRequested bool
	ResetSaveID    *string
}

// ChatMessage is one SendMessage command's record, appended to Sim.Messages
// for the snapshot/replay surface to pick up.
type ChatMessage struct {
	From string
	Text string
	At   float64
}

// Apply executes c against sim (spec §4.9 step 1). A rejected mutation
// (geometry would violate an invariant) is dropped silently per spec §7;
// the only observable effect is an info-level log line.
func (c WorldCommand) Apply(sim *Sim) {
	switch c.Kind {
	case KindMapMakeConnection:
		c.applyMakeConnection(sim)
	case KindMapRemoveIntersection:
		if p := c.MapRemoveIntersection; p != nil {
			sim.Map.RemoveIntersection(p.ID)
		}
	case KindMapRemoveRoad:
		if p := c.MapRemoveRoad; p != nil {
			sim.Map.RemoveRoad(p.ID)
		}
	case KindMapRemoveBuilding:
		if p := c.MapRemoveBuilding; p != nil {
			sim.Map.RemoveBuilding(p.ID)
		}
	case KindMapBuildHouse:
		c.applyBuildHouse(sim)
	case KindMapBuildSpecialBuilding:
		c.applyBuildSpecialBuilding(sim)
	case KindMapUpdateIntersectionPolicy:
		c.applyUpdateIntersectionPolicy(sim)
	case KindUpdateZone:
		c.applyUpdateZone(sim)
	case KindTerraform:
		c.applyTerraform(sim)
	case KindSetGameTime:
		c.applySetGameTime(sim)
	case KindSendMessage:
		c.applySendMessage(sim)
	case KindResetSave:
		c.applyResetSave(sim)
	default:
		log.Infof("command-rejected: unknown kind %d", c.Kind)
	}
}

func (c WorldCommand) applyMakeConnection(sim *Sim) {
	p := c.MapMakeConnection
	if p == nil {
		return
	}
	if _, ok := sim.Map.Connect(p.From, p.To, p.Interpoint, p.Pattern); !ok {
		log.Infof("command-rejected: MapMakeConnection %d->%d crosses existing geometry", p.From, p.To)
	}
}

func (c WorldCommand) applyBuildHouse(sim *Sim) {
	p := c.MapBuildHouse
	if p == nil {
		return
	}
	if _, ok := sim.Map.BuildHouse(p.Lot); !ok {
		log.Infof("command-rejected: MapBuildHouse lot %d is already built or gone", p.Lot)
	}
}

func (c WorldCommand) applyBuildSpecialBuilding(sim *Sim) {
	p := c.MapBuildSpecialBuilding
	if p == nil {
		return
	}
	if p.ConnectedRoad != nil {
		if sim.Map.Road(*p.ConnectedRoad) == nil {
			log.Infof("command-rejected: MapBuildSpecialBuilding references missing road %d", *p.ConnectedRoad)
			return
		}
	}
	if _, ok := sim.Map.BuildSpecialBuilding(p.OBB, p.Kind, p.Gen); !ok {
		log.Infof("command-rejected: MapBuildSpecialBuilding obb at %v obstructed", p.OBB.Center)
	}
}

func (c WorldCommand) applyUpdateIntersectionPolicy(sim *Sim) {
	p := c.MapUpdateIntersectionPolicy
	if p == nil {
		return
	}
	if ok := sim.Map.UpdateIntersectionPolicy(p.ID, p.Turn, p.Light); !ok {
		log.Infof("command-rejected: MapUpdateIntersectionPolicy unknown intersection %d", p.ID)
	}
}

func (c WorldCommand) applyUpdateZone(sim *Sim) {
	p := c.UpdateZone
	if p == nil {
		return
	}
	if ok := sim.Map.UpdateZone(p.Building, p.Zone); !ok {
		log.Infof("command-rejected: UpdateZone unknown building %d", p.Building)
	}
}

func (c WorldCommand) applyTerraform(sim *Sim) {
	p := c.Terraform
	if p == nil {
		return
	}
	sim.Map.Terraform(p.Center, p.Radius, p.Amount, p.Level, p.Kind, p.Slope)
}

func (c WorldCommand) applySetGameTime(sim *Sim) {
	p := c.SetGameTime
	if p == nil || sim.Clock == nil {
		return
	}
	sim.Clock.T = p.Seconds
	if sim.Clock.DT > 0 {
		sim.Clock.Step = int64(p.Seconds / sim.Clock.DT)
	}
}

func (c WorldCommand) applySendMessage(sim *Sim) {
	p := c.SendMessage
	if p == nil {
		return
	}
	at := 0.0
	if sim.Clock != nil {
		at = sim.Clock.T
	}
	sim.Messages = append(sim.Messages, ChatMessage{From: p.From, Text: p.Text, At: at})
}

func (c WorldCommand) applyResetSave(sim *Sim) {
	sim.ResetRequested = true
	if c.ResetSave != nil {
		sim.ResetSaveID = c.ResetSave.SaveID
	}
	log.Info("reset-save requested; deferring to tick driver")
}
