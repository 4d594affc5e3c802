package wcfdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/traveler-cli/internal/dataerr"
)

func TestParse_UTC(t *testing.T) {
	got, err := New().Parse("/Date(1536618682000-0700)/")
	require.NoError(t, err)

	tm, ok := got.(time.Time)
	require.True(t, ok)
	assert.True(t, tm.Equal(time.Unix(1536618682, 0)))
	assert.Equal(t, time.UTC, tm.Location())
	assert.Equal(t, "2018-09-10T22:31:22Z", tm.Format(time.RFC3339))
}

func TestParse_TruncatesMilliseconds(t *testing.T) {
	got, err := New().Parse("/Date(1536618682999+0000)/")
	require.NoError(t, err)
	assert.Equal(t, int64(1536618682), got.(time.Time).Unix())
	assert.Equal(t, 0, got.(time.Time).Nanosecond())
}

func TestParse_WithOffset(t *testing.T) {
	got, err := New(WithOutputUTC(false)).Parse("/Date(1536618682000-0700)/")
	require.NoError(t, err)

	tm := got.(time.Time)
	_, offset := tm.Zone()
	assert.Equal(t, -7*3600, offset)
	assert.Equal(t, 15, tm.Hour())
	assert.True(t, tm.Equal(time.Unix(1536618682, 0)))
}

func TestParse_OffsetWithMinutes(t *testing.T) {
	got, err := New(WithOutputUTC(false)).Parse("/Date(0+0530)/")
	require.NoError(t, err)
	_, offset := got.(time.Time).Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestParse_Lenient(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain text", "Snoqualmie Pass"},
		{"empty", ""},
		{"negative millis", "/Date(-1000-0700)/"},
		{"missing slashes", "Date(1536618682000-0700)"},
		{"trailing garbage", "/Date(1536618682000-0700)/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestParse_Strict(t *testing.T) {
	_, err := New(WithStrict(true)).Parse("not a date")
	require.Error(t, err)
	assert.True(t, dataerr.IsDateFormat(err))
	assert.Contains(t, err.Error(), "wcfdate: parse")
}

func TestParseValue_NonString(t *testing.T) {
	_, err := New().ParseValue(1536618682000)
	require.Error(t, err)
	assert.True(t, dataerr.IsInvalidInputType(err))
}

func TestParseWire_OffsetOptional(t *testing.T) {
	d, err := ParseWire("/Date(1000)/")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), d.Millis)
	assert.Nil(t, d.Offset)

	d, err = ParseWire("/date(1000-0800)/")
	require.NoError(t, err)
	require.NotNil(t, d.Offset)
	assert.Equal(t, -8*time.Hour, *d.Offset)
}

func TestWcfDate_String(t *testing.T) {
	off := -7 * time.Hour
	assert.Equal(t, "/Date(1536618682000-0700)/", WcfDate{Millis: 1536618682000, Offset: &off}.String())
	assert.Equal(t, "/Date(5)/", WcfDate{Millis: 5}.String())
}

func TestToWCF(t *testing.T) {
	tm := time.Date(2018, 9, 10, 22, 31, 22, 500_000_000, time.UTC)
	assert.Equal(t, "/Date(1536618682000)/", ToWCF(tm))
}

func TestRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Unix(0, 0),
		time.Date(2018, 9, 10, 22, 31, 22, 123_456_789, time.UTC),
		time.Date(2024, 2, 29, 8, 0, 1, 0, time.FixedZone("PST", -8*3600)),
	}
	codec := New()
	for _, d := range instants {
		got, err := codec.Parse(ToWCF(d))
		require.NoError(t, err)
		assert.True(t, got.(time.Time).Equal(d.Truncate(time.Second)), "round trip of %s", d)
	}
}
