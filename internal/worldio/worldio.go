// Package worldio loads the map/population that seeds a fresh simulation,
// either from a YAML file or from MongoDB.
//
// Grounded on the teacher's utils/input/input.go ("Init" loads the map then
// the persons, from a file if configured, else from Mongo); the private
// git.fiblab.net/sim/protos/v2 proto schema and git.fiblab.net/general/
// common/v2/{cache,mongoutil,protoutil} helpers are unfetchable, so this
// package defines its own plain Spec shape (YAML- and BSON-tagged) in place
// of the teacher's protobuf Map/Persons, and talks to Mongo directly through
// go.mongodb.org/mongo-driver rather than through the teacher's cache layer
// (see DESIGN.md for why the cache step is dropped, not ported).
package worldio

import (
	"context"
	"fmt"
	"os"

	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/citysim/engine/registry"
	"github.com/citysim/engine/world"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v2"
)

var log = logrus.WithField("module", "worldio")

// Spec is the initial-state document: intersections and the roads joining
// them, plus the vehicles/humans seeded into the world at startup.
// Intersections are addressed by their position in the slice (spec §4.1
// doesn't assign stable IDs until mapmodel.Map.AddIntersection runs).
type Spec struct {
	Intersections []IntersectionSpec `yaml:"intersections" bson:"intersections"`
	Roads         []RoadSpec         `yaml:"roads" bson:"roads"`
	Vehicles      []VehicleSpec      `yaml:"vehicles,omitempty" bson:"vehicles,omitempty"`
	Humans        []HumanSpec        `yaml:"humans,omitempty" bson:"humans,omitempty"`
}

type IntersectionSpec struct {
	Pos geom.Vec3 `yaml:"pos" bson:"pos"`
}

// RoadSpec's Kind selects the mapmodel.LanePattern constructor: "oneway",
// "twoway" (default), or "rail".
type RoadSpec struct {
	From  int     `yaml:"from" bson:"from"`
	To    int     `yaml:"to" bson:"to"`
	Lanes int     `yaml:"lanes" bson:"lanes"`
	Width float64 `yaml:"width" bson:"width"`
	Kind  string  `yaml:"kind,omitempty" bson:"kind,omitempty"`
}

type VehicleSpec struct {
	Class  world.VehicleClass `yaml:"class" bson:"class"`
	Pos    geom.Vec3          `yaml:"pos" bson:"pos"`
	Dir    geom.Vec2          `yaml:"dir" bson:"dir"`
	SoulID int64              `yaml:"soul_id,omitempty" bson:"soul_id,omitempty"`
}

type HumanSpec struct {
	Pos    geom.Vec3 `yaml:"pos" bson:"pos"`
	SoulID int64     `yaml:"soul_id,omitempty" bson:"soul_id,omitempty"`
}

func (r RoadSpec) pattern() mapmodel.LanePattern {
	switch r.Kind {
	case "oneway":
		return mapmodel.OneWayRoad(r.Lanes, r.Width)
	case "rail":
		return mapmodel.RailRoad(r.Width)
	default:
		return mapmodel.TwoWayRoad(r.Lanes, r.Width)
	}
}

// LoadFile parses a Spec from a YAML file (teacher: Input.File-style
// single-file load).
func LoadFile(path string) (Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("worldio: read %s: %w", path, err)
	}
	var s Spec
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Spec{}, fmt.Errorf("worldio: parse %s: %w", path, err)
	}
	return s, nil
}

// LoadMongo fetches the single document at db.coll and decodes it as a Spec
// (teacher: mustLoad's DownloadPbFromMongo, minus the cache-then-download
// indirection — this package always fetches live).
func LoadMongo(ctx context.Context, uri, db, coll string) (Spec, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return Spec{}, fmt.Errorf("worldio: connect %s: %w", uri, err)
	}
	defer client.Disconnect(ctx)

	var s Spec
	if err := client.Database(db).Collection(coll).FindOne(ctx, bson.M{}).Decode(&s); err != nil {
		return Spec{}, fmt.Errorf("worldio: fetch %s.%s: %w", db, coll, err)
	}
	return s, nil
}

// Apply seeds reg's map and world from s. Intersections are created first so
// RoadSpec.From/To can index into the resulting IDs; a road whose pattern is
// rejected by mapmodel.Map.Connect (spec §7's command-rejected policy) is
// logged and skipped rather than aborting the whole load.
func Apply(s Spec, reg *registry.Registry) {
	m := reg.Map()
	w := reg.World()

	ids := make([]mapmodel.IntersectionID, len(s.Intersections))
	for i, is := range s.Intersections {
		ids[i] = m.AddIntersection(is.Pos)
	}

	for _, r := range s.Roads {
		if r.From < 0 || r.From >= len(ids) || r.To < 0 || r.To >= len(ids) {
			log.Errorf("worldio: road references out-of-range intersection %d/%d of %d", r.From, r.To, len(ids))
			continue
		}
		if _, ok := m.Connect(ids[r.From], ids[r.To], nil, r.pattern()); !ok {
			log.Infof("worldio: skipped road %d->%d, rejected by map", r.From, r.To)
		}
	}

	for _, v := range s.Vehicles {
		w.NewVehicle(world.Vehicle{Class: v.Class, Pos: v.Pos, Dir: v.Dir, SoulID: v.SoulID})
	}
	for _, h := range s.Humans {
		w.NewHuman(world.Human{Pos: h.Pos, SoulID: h.SoulID})
	}

	log.Infof("worldio: loaded %d intersections, %d roads, %d vehicles, %d humans",
		len(ids), len(s.Roads), len(s.Vehicles), len(s.Humans))
}
