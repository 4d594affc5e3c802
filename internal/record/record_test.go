package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_PreservesInsertionOrder(t *testing.T) {
	r := New("FlowData")
	require.NoError(t, r.Set("Time", "x"))
	require.NoError(t, r.Set("Region", "NW"))
	require.NoError(t, r.Set("FlowDataID", int64(1)))
	require.NoError(t, r.Set("Region", "SW"))

	assert.Equal(t, []string{"Time", "Region", "FlowDataID"}, r.Keys())
	v, ok := r.Get("Region")
	assert.True(t, ok)
	assert.Equal(t, "SW", v)
	assert.Equal(t, 3, r.Len())
}

func TestRecord_RejectsNestedMapping(t *testing.T) {
	r := New("")
	assert.Error(t, r.Set("Location", map[string]any{"Latitude": 1.0}))
	assert.Error(t, r.Set("Location", FromPairs("Latitude", 1.0)))
	assert.False(t, r.Has("Location"))
}

func TestRecord_Delete(t *testing.T) {
	r := FromPairs("A", 1, "B", 2, "C", 3)
	r.Delete("B")
	r.Delete("missing")
	assert.Equal(t, []string{"A", "C"}, r.Keys())
	assert.False(t, r.Has("B"))
}

func TestRecord_HasNilValue(t *testing.T) {
	r := FromPairs("A", nil)
	assert.True(t, r.Has("A"))
	v, ok := r.Get("A")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestRecord_Clone(t *testing.T) {
	r := FromPairs("A", 1)
	r.Kind = "Alert"
	c := r.Clone()
	require.NoError(t, c.Set("B", 2))
	assert.Equal(t, []string{"A"}, r.Keys())
	assert.Equal(t, "Alert", c.Kind)
}

func TestRecord_MarshalJSON(t *testing.T) {
	id := uuid.MustParse("7b3f2c1e-0000-4000-8000-000000000001")
	r := FromPairs(
		"Zeta", "z",
		"Time", time.Unix(1536618682, 0).UTC(),
		"LocationID", id,
		"Alpha", nil,
		"Count", int64(3),
	)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Zeta":"z","Time":"2018-09-10T22:31:22Z","LocationID":"7b3f2c1e-0000-4000-8000-000000000001","Alpha":null,"Count":3}`,
		string(b))
}

func TestRecord_Map(t *testing.T) {
	r := FromPairs("Time", time.Unix(0, 0).UTC(), "N", 1.5)
	assert.Equal(t, map[string]any{"Time": "1970-01-01T00:00:00Z", "N": 1.5}, r.Map())
}
