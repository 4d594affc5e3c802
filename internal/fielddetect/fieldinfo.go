package fielddetect

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/sells-group/traveler-cli/internal/dataerr"
	"github.com/sells-group/traveler-cli/internal/record"
)

// FieldInfo describes one column of an inferred schema.
type FieldInfo struct {
	Name       string    `json:"field_name" yaml:"field_name"`
	Type       FieldType `json:"field_type" yaml:"field_type"`
	Nullable   bool      `json:"field_is_nullable" yaml:"field_is_nullable"`
	TextLength *int      `json:"field_length" yaml:"field_length"`
}

// Inferencer merges observed values into FieldInfos using a RankTable.
type Inferencer struct {
	ranks RankTable
}

// NewInferencer creates an Inferencer for the given rank table.
func NewInferencer(ranks RankTable) *Inferencer {
	return &Inferencer{ranks: ranks}
}

// Merge folds one observed value for field name into existing (which may be
// nil) and returns the result; existing is not modified.
//
// A field never moves to a lower-ranked type, nulls only set Nullable, and two
// different types of equal rank produce a *dataerr.AmbiguousTypeError.
func (in *Inferencer) Merge(existing *FieldInfo, name string, v any) (*FieldInfo, error) {
	newType := InferScalarType(v)

	if existing == nil {
		fi := &FieldInfo{Name: name, Type: newType, Nullable: newType == TypeNone}
		if newType == TypeText {
			fi.TextLength = intPtr(utf8.RuneCountInString(v.(string)))
		}
		return fi, nil
	}

	out := *existing
	if v == nil {
		out.Nullable = true
	}

	if newType != out.Type {
		oldRank, newRank := in.ranks.Rank(out.Type), in.ranks.Rank(newType)
		switch {
		case oldRank == newRank:
			return nil, &dataerr.AmbiguousTypeError{
				Field: out.Name,
				Types: [2]string{string(out.Type), string(newType)},
			}
		case newRank > oldRank:
			out.Type = newType
		}
	}

	if newType == TypeText {
		n := utf8.RuneCountInString(v.(string))
		if out.TextLength == nil || *out.TextLength < n {
			out.TextLength = intPtr(n)
		}
	}
	return &out, nil
}

// FromRecords infers a schema over records. Field order follows first
// appearance. A field missing from a record counts as a null observation:
// it marks the field nullable without affecting its type.
func (in *Inferencer) FromRecords(records []*record.Record) (*Schema, error) {
	s := &Schema{fields: make(map[string]*FieldInfo)}
	for _, r := range records {
		for _, k := range r.Keys() {
			if _, ok := s.fields[k]; !ok {
				s.names = append(s.names, k)
				s.fields[k] = nil
			}
		}
	}

	for i, r := range records {
		for _, name := range s.names {
			v, _ := r.Get(name)
			fi, err := in.Merge(s.fields[name], name, v)
			if err != nil {
				return nil, eris.Wrapf(err, "fielddetect: record %d", i)
			}
			s.fields[name] = fi
		}
	}
	return s, nil
}

// Schema is the result of a batch inference pass.
type Schema struct {
	names  []string
	fields map[string]*FieldInfo
}

// Names returns field names in first-seen order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Field returns the FieldInfo for name.
func (s *Schema) Field(name string) (*FieldInfo, bool) {
	fi, ok := s.fields[name]
	return fi, ok
}

// Fields returns all FieldInfos in field order.
func (s *Schema) Fields() []*FieldInfo {
	out := make([]*FieldInfo, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.fields[n])
	}
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.names) }

// MarshalJSON encodes the schema as an object keyed by field name, in field order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(n)
		if err != nil {
			return nil, eris.Wrapf(err, "fielddetect: encode field name %q", n)
		}
		vb, err := json.Marshal(s.fields[n])
		if err != nil {
			return nil, eris.Wrapf(err, "fielddetect: encode field %q", n)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func intPtr(n int) *int { return &n }
