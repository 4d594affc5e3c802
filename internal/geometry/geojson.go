package geometry

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/traveler-cli/internal/record"
)

// Feature wraps r as a GeoJSON feature. Coordinate fields consumed by the
// geometry are left out of the properties.
func (d *Deriver) Feature(r *record.Record) *geojson.Feature {
	props := r.Map()
	f := &geojson.Feature{Properties: props}

	layout, ok := d.layouts.For(r)
	if !ok {
		return f
	}
	for _, name := range layout.Fields() {
		delete(props, name)
	}
	if layout.IDField != "" {
		if id, ok := r.Get(layout.IDField); ok && id != nil {
			f.ID = fmt.Sprint(id)
		}
	}
	f.Geometry = derive(r, layout)
	return f
}

// FeatureCollection wraps every record as a feature.
func (d *Deriver) FeatureCollection(records []*record.Record) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(records))}
	for _, r := range records {
		fc.Features = append(fc.Features, d.Feature(r))
	}
	return fc
}

// EWKB encodes g as little-endian EWKB for a PostGIS geometry column.
// A nil geometry encodes as nil.
func EWKB(g geom.T) ([]byte, error) {
	if g == nil {
		return nil, nil
	}
	data, err := ewkb.Marshal(g, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "geometry: encode EWKB")
	}
	return data, nil
}
