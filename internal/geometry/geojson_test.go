package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/traveler-cli/internal/record"
	"github.com/sells-group/traveler-cli/internal/traveler"
)

func TestFeature_Point(t *testing.T) {
	d := NewDeriver(DefaultLayouts())
	r := record.FromPairs("FlowDataID", int64(2482), "Region", "Northwest", "Latitude", 47.5, "Longitude", -122.5)
	r.Kind = traveler.KindFlowData

	b, err := json.Marshal(d.Feature(r))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "Feature",
		"id": "2482",
		"geometry": {"type": "Point", "coordinates": [-122.5, 47.5]},
		"properties": {"FlowDataID": 2482, "Region": "Northwest"}
	}`, string(b))
}

func TestFeature_NoGeometry(t *testing.T) {
	d := NewDeriver(DefaultLayouts())
	r := record.FromPairs("Latitude", nil, "Longitude", nil, "Name", "x")
	r.Kind = traveler.KindWeatherInfo

	f := d.Feature(r)
	assert.Nil(t, f.Geometry)
	assert.Equal(t, map[string]any{"Name": "x"}, f.Properties)
}

func TestFeatureCollection(t *testing.T) {
	d := NewDeriver(DefaultLayouts())
	fc := d.FeatureCollection([]*record.Record{
		record.FromPairs("Longitude", -120.0, "Latitude", 46.0),
		record.FromPairs("Name", "no location"),
	})
	require.Len(t, fc.Features, 2)
	assert.NotNil(t, fc.Features[0].Geometry)
	assert.Nil(t, fc.Features[1].Geometry)

	_, err := json.Marshal(fc)
	require.NoError(t, err)
}

func TestEWKB(t *testing.T) {
	data, err := EWKB(Point(-122.3, 47.6))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte(1), data[0]) // NDR

	data, err = EWKB(nil)
	require.NoError(t, err)
	assert.Nil(t, data)
}
