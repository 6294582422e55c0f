// Package debugexport dumps a mapmodel.Map as GeoJSON for inspection in
// any off-the-shelf map viewer, treating map X/Y meters as GeoJSON
// lng/lat degrees (a deliberate distortion — this is a debug aid, not a
// georeferenced export).
//
// New package; no direct teacher equivalent (the teacher exports map state
// over a gRPC snapshot service, not a file format), wired to
// github.com/paulmach/go.geojson since a debug GeoJSON dump is the
// standard way this corpus's domain repos expose map internals for
// tooling.
package debugexport

import (
	"github.com/citysim/engine/geom"
	"github.com/citysim/engine/mapmodel"
	"github.com/paulmach/go.geojson"
)

// FeatureCollection renders every intersection, road, lane, lot and
// building in m as a single GeoJSON FeatureCollection.
func FeatureCollection(m *mapmodel.Map) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, id := range m.IntersectionIDs() {
		i := m.Intersection(id)
		f := geojson.NewPointFeature([]float64{i.Pos.X, i.Pos.Y})
		f.Properties["kind"] = "intersection"
		f.Properties["id"] = int64(id)
		f.Properties["light_policy"] = int(i.LightPolicy.Kind)
		fc.AddFeature(f)
	}

	for _, id := range m.RoadIDs() {
		r := m.Road(id)
		f := geojson.NewFeature(geojson.NewLineStringGeometry(polylineCoords(r.Line)))
		f.Properties["kind"] = "road"
		f.Properties["id"] = int64(id)
		f.Properties["width"] = r.Width
		fc.AddFeature(f)
	}

	for _, id := range m.LaneIDs() {
		l := m.Lane(id)
		f := geojson.NewFeature(geojson.NewLineStringGeometry(polylineCoords(l.Line)))
		f.Properties["kind"] = "lane"
		f.Properties["id"] = int64(id)
		f.Properties["lane_kind"] = int(l.Kind)
		fc.AddFeature(f)
	}

	for _, id := range m.LotIDs() {
		lot := m.Lot(id)
		f := geojson.NewFeature(geojson.NewPolygonGeometry(obbRing(lot.OBB)))
		f.Properties["kind"] = "lot"
		f.Properties["id"] = int64(id)
		f.Properties["lot_kind"] = int(lot.Kind)
		fc.AddFeature(f)
	}

	for _, id := range m.BuildingIDs() {
		b := m.Building(id)
		f := geojson.NewFeature(geojson.NewPolygonGeometry(obbRing(b.OBB)))
		f.Properties["kind"] = "building"
		f.Properties["id"] = int64(id)
		f.Properties["building_kind"] = int(b.Kind)
		if b.OwnerSoul != nil {
			f.Properties["owner_soul"] = *b.OwnerSoul
		}
		fc.AddFeature(f)
	}

	return fc
}

// Marshal renders m's GeoJSON FeatureCollection as JSON bytes.
func Marshal(m *mapmodel.Map) ([]byte, error) {
	return FeatureCollection(m).MarshalJSON()
}

// polylineCoords drops a Polyline3's Z component; the debug viewer is 2D.
func polylineCoords(line geom.Polyline3) [][]float64 {
	coords := make([][]float64, len(line))
	for i, p := range line {
		coords[i] = []float64{p.X, p.Y}
	}
	return coords
}

// obbRing closes an OBB's four corners into a single-ring GeoJSON polygon.
func obbRing(obb geom.OBB) [][][]float64 {
	corners := obb.Corners()
	ring := make([][]float64, 0, len(corners)+1)
	for _, c := range corners {
		ring = append(ring, []float64{c.X, c.Y})
	}
	ring = append(ring, ring[0])
	return [][][]float64{ring}
}
