// Package fielddetect infers a table schema from a batch of flat records.
package fielddetect

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// FieldType names a column type in geodatabase terms.
type FieldType string

// Field types. TypeNone marks a field for which only nulls have been seen.
const (
	TypeGUID   FieldType = "GUID"
	TypeDate   FieldType = "DATE"
	TypeRaster FieldType = "RASTER"
	TypeBlob   FieldType = "BLOB"
	TypeDouble FieldType = "DOUBLE"
	TypeFloat  FieldType = "FLOAT"
	TypeLong   FieldType = "LONG"
	TypeShort  FieldType = "SHORT"
	TypeText   FieldType = "TEXT"
	TypeNone   FieldType = ""
)

// RankTable orders field types from most to least specific. Types with the
// same rank are mutually incompatible.
type RankTable struct {
	ranks map[FieldType]int
}

// NewRankTable copies ranks into an immutable table. TypeNone is always
// ranked below everything else.
func NewRankTable(ranks map[FieldType]int) RankTable {
	t := RankTable{ranks: make(map[FieldType]int, len(ranks)+1)}
	lowest := 0
	for ft, r := range ranks {
		t.ranks[ft] = r
		if r < lowest {
			lowest = r
		}
	}
	t.ranks[TypeNone] = lowest - 1
	return t
}

// DefaultRanks returns the standard ranking.
func DefaultRanks() RankTable {
	return NewRankTable(map[FieldType]int{
		TypeGUID:   6,
		TypeDate:   6,
		TypeRaster: 6,
		TypeBlob:   5,
		TypeDouble: 4,
		TypeFloat:  3,
		TypeLong:   2,
		TypeShort:  1,
		TypeText:   0,
	})
}

// Rank returns the rank of ft. Unknown types rank with TypeNone.
func (t RankTable) Rank(ft FieldType) int {
	if r, ok := t.ranks[ft]; ok {
		return r
	}
	return t.ranks[TypeNone]
}

var guidRE = regexp.MustCompile(`^\{[0-9A-Fa-f-]+\}$`)

// InferScalarType maps a single value to its field type.
//
// float → DOUBLE, integer → LONG, bool → SHORT, time.Time → DATE,
// "{hex}" string or uuid.UUID → GUID, other string → TEXT, []byte → BLOB,
// nil → NONE. Any other kind is treated as NONE.
func InferScalarType(v any) FieldType {
	switch val := v.(type) {
	case nil:
		return TypeNone
	case float64, float32:
		return TypeDouble
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeLong
	case bool:
		return TypeShort
	case time.Time:
		return TypeDate
	case uuid.UUID:
		return TypeGUID
	case []byte:
		return TypeBlob
	case string:
		if guidRE.MatchString(val) {
			return TypeGUID
		}
		return TypeText
	default:
		return TypeNone
	}
}
