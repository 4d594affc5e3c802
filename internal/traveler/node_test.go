package traveler

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/traveler-cli/internal/record"
)

func TestDecode_PreservesMemberOrder(t *testing.T) {
	n, err := Decode(`{"b": 1, "a": {"z": true, "y": null}, "c": [1, "x"]}`)
	require.NoError(t, err)

	assert.Equal(t, NodeObject, n.Kind)
	assert.Equal(t, []string{"b", "a", "c"}, n.Keys)

	a, ok := n.Member("a")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "y"}, a.Keys)

	c, _ := n.Member("c")
	require.Len(t, c.Items, 2)
	assert.Equal(t, int64(1), c.Items[0].Value)
	assert.Equal(t, "x", c.Items[1].Value)
}

func TestDecode_DuplicateKeysKeepFirstPosition(t *testing.T) {
	n, err := Decode(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, n.Keys)
	a, _ := n.Member("a")
	assert.Equal(t, int64(3), a.Value)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(`{"a":`)
	assert.Error(t, err)
}

func TestNode_FlattensRaw(t *testing.T) {
	n, err := Decode(`{"FlowStationLocation": {"Latitude": 1, "Longitude": 2}, "Region": "NW"}`)
	require.NoError(t, err)

	got := maps.Collect(record.Flatten(n, "", true))
	assert.Equal(t, map[string]any{
		"FlowStationLocationLatitude":  int64(1),
		"FlowStationLocationLongitude": int64(2),
		"Region":                       "NW",
	}, got)
}
