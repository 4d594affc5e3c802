package fielddetect

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/traveler-cli/internal/dataerr"
	"github.com/sells-group/traveler-cli/internal/record"
)

func TestInferScalarType(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want FieldType
	}{
		{"nil", nil, TypeNone},
		{"float", 1.5, TypeDouble},
		{"int64", int64(1), TypeLong},
		{"int", 7, TypeLong},
		{"bool", true, TypeShort},
		{"time", time.Unix(0, 0), TypeDate},
		{"uuid", uuid.New(), TypeGUID},
		{"braced hex", "{0123abcdef}", TypeGUID},
		{"braced guid", "{7b3f2c1e-0000-4000-8000-000000000001}", TypeGUID},
		{"unbraced guid", "7b3f2c1e-0000-4000-8000-000000000001", TypeText},
		{"text", "Northwest", TypeText},
		{"bytes", []byte{1}, TypeBlob},
		{"slice", []any{1}, TypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferScalarType(tt.in))
		})
	}
}

func TestRankTable(t *testing.T) {
	r := DefaultRanks()
	assert.Equal(t, 6, r.Rank(TypeGUID))
	assert.Equal(t, r.Rank(TypeGUID), r.Rank(TypeDate))
	assert.Equal(t, 0, r.Rank(TypeText))
	assert.Equal(t, -1, r.Rank(TypeNone))
	assert.Equal(t, -1, r.Rank(FieldType("GEOMETRY")))
	assert.Greater(t, r.Rank(TypeDouble), r.Rank(TypeFloat))
}

func TestMerge_New(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	fi, err := in.Merge(nil, "Region", "Northwest")
	require.NoError(t, err)
	assert.Equal(t, TypeText, fi.Type)
	assert.False(t, fi.Nullable)
	require.NotNil(t, fi.TextLength)
	assert.Equal(t, 9, *fi.TextLength)

	fi, err = in.Merge(nil, "EndTime", nil)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, fi.Type)
	assert.True(t, fi.Nullable)
	assert.Nil(t, fi.TextLength)

	fi, err = in.Merge(nil, "AlertID", int64(1))
	require.NoError(t, err)
	assert.Nil(t, fi.TextLength)
}

func TestMerge_LongThenDouble(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	fi, err := in.Merge(nil, "MilePost", int64(1))
	require.NoError(t, err)
	fi, err = in.Merge(fi, "MilePost", 1.5)
	require.NoError(t, err)

	assert.Equal(t, TypeDouble, fi.Type)
	assert.False(t, fi.Nullable)
}

func TestMerge_NeverDowngrades(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	fi, err := in.Merge(nil, "MilePost", 1.5)
	require.NoError(t, err)
	fi, err = in.Merge(fi, "MilePost", int64(2))
	require.NoError(t, err)
	fi, err = in.Merge(fi, "MilePost", nil)
	require.NoError(t, err)

	assert.Equal(t, TypeDouble, fi.Type)
	assert.True(t, fi.Nullable)
}

func TestMerge_NullThenValue(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	fi, err := in.Merge(nil, "Description", nil)
	require.NoError(t, err)
	fi, err = in.Merge(fi, "Description", "Homeacres Rd")
	require.NoError(t, err)

	assert.Equal(t, TypeText, fi.Type)
	assert.True(t, fi.Nullable)
	assert.Equal(t, 12, *fi.TextLength)
}

func TestMerge_TextLengthIsMaxRuneCount(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	fi, err := in.Merge(nil, "Name", "abc")
	require.NoError(t, err)
	fi, err = in.Merge(fi, "Name", "Señor")
	require.NoError(t, err)
	fi, err = in.Merge(fi, "Name", "a")
	require.NoError(t, err)

	assert.Equal(t, 5, *fi.TextLength)
}

func TestMerge_DoesNotModifyExisting(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	orig, err := in.Merge(nil, "N", int64(1))
	require.NoError(t, err)
	_, err = in.Merge(orig, "N", nil)
	require.NoError(t, err)

	assert.False(t, orig.Nullable)
}

func TestMerge_AmbiguousTie(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	fi, err := in.Merge(nil, "LocationID", "{0123abcd}")
	require.NoError(t, err)
	_, err = in.Merge(fi, "LocationID", time.Unix(0, 0))

	require.Error(t, err)
	assert.True(t, dataerr.IsAmbiguousType(err))
}

func TestFromRecords_MissingFieldIsNullable(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	s, err := in.FromRecords([]*record.Record{
		record.FromPairs("A", int64(1)),
		record.FromPairs("B", int64(2)),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, s.Names())
	a, ok := s.Field("A")
	require.True(t, ok)
	assert.True(t, a.Nullable)
	assert.Equal(t, TypeLong, a.Type)

	b, ok := s.Field("B")
	require.True(t, ok)
	assert.True(t, b.Nullable)
	assert.Equal(t, TypeLong, b.Type)
}

func TestFromRecords_DoubleNotNullable(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	s, err := in.FromRecords([]*record.Record{
		record.FromPairs("X", int64(1)),
		record.FromPairs("X", 1.5),
	})
	require.NoError(t, err)

	x, _ := s.Field("X")
	assert.Equal(t, TypeDouble, x.Type)
	assert.False(t, x.Nullable)
}

func TestFromRecords_Ambiguous(t *testing.T) {
	in := NewInferencer(DefaultRanks())

	_, err := in.FromRecords([]*record.Record{
		record.FromPairs("X", "{abcdef}"),
		record.FromPairs("X", time.Unix(0, 0)),
	})
	require.Error(t, err)
	assert.True(t, dataerr.IsAmbiguousType(err))
}

func TestFromRecords_Empty(t *testing.T) {
	s, err := NewInferencer(DefaultRanks()).FromRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Fields())
}

func TestSchema_MarshalJSON(t *testing.T) {
	s, err := NewInferencer(DefaultRanks()).FromRecords([]*record.Record{
		record.FromPairs("Region", "NW", "AlertID", int64(3)),
	})
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Region": {"field_name": "Region", "field_type": "TEXT", "field_is_nullable": false, "field_length": 2},
		"AlertID": {"field_name": "AlertID", "field_type": "LONG", "field_is_nullable": false, "field_length": null}
	}`, string(b))
	assert.Less(t, strings.Index(string(b), "Region"), strings.Index(string(b), "AlertID"))
}
