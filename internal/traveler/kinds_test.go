package traveler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_FirstMatchWins(t *testing.T) {
	p := DefaultParser()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"border crossing before alert", `{"AlertID": 1, "BorderCrossingLocation": {}}`, KindBorderCrossing},
		{"structure before restriction", `{"RestrictionType": 0, "StructureID": "x"}`, KindBridgeClearance},
		{"camera", `{"CameraID": 1}`, KindCamera},
		{"weather station", `{"StationID": 1}`, KindWeatherInfo},
		{"toll", `{"CurrentToll": 125}`, KindTollRate},
		{"unknown", `{"Foo": 1}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Decode(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Classify(n))
		})
	}
}

func TestClassify_CustomTable(t *testing.T) {
	p, err := NewParser(Options{Discriminators: []Discriminator{{RequiredKey: "Foo", Kind: "Foo"}}})
	require.NoError(t, err)

	n, err := Decode(`{"Foo": 1, "AlertID": 2}`)
	require.NoError(t, err)
	assert.Equal(t, "Foo", p.Classify(n))
}

func TestFeedByName(t *testing.T) {
	f, ok := FeedByName("HighwayAlerts")
	require.True(t, ok)
	assert.Equal(t, KindAlert, f.Kind)
	assert.Equal(t, "MULTIPOINT", f.GeomType)

	_, ok = FeedByName("Nope")
	assert.False(t, ok)
}

func TestNewParser_BadDatePattern(t *testing.T) {
	_, err := NewParser(Options{DateKeyPattern: "("})
	assert.Error(t, err)
}
