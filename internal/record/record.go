// Package record holds the flat, insertion-ordered records produced by the
// normalizer and the flattening of nested mappings into them.
package record

import (
	"bytes"
	"encoding/json"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Mapping is an insertion-ordered view over string keys. Both *Record and
// nested objects from the parser implement it.
type Mapping interface {
	Len() int
	All() iter.Seq2[string, any]
}

// Record is a flat, insertion-ordered map from field name to scalar value.
// Values are nil, string, bool, int64, float64, time.Time, uuid.UUID or
// []byte. Mapping values are never stored.
type Record struct {
	// Kind is the record type assigned by the discriminator table, or empty.
	Kind string

	keys   []string
	values map[string]any
}

// New creates an empty Record.
func New(kind string) *Record {
	return &Record{Kind: kind, values: make(map[string]any)}
}

// FromPairs builds a Record from alternating key/value arguments. It is a
// convenience for tests and fixtures; it panics on odd length, non-string
// keys or mapping values.
func FromPairs(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("record: FromPairs needs key/value pairs")
	}
	r := New("")
	for i := 0; i < len(kv); i += 2 {
		if err := r.Set(kv[i].(string), kv[i+1]); err != nil {
			panic(err)
		}
	}
	return r
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position. Mapping values are rejected.
func (r *Record) Set(key string, value any) error {
	switch value.(type) {
	case Mapping, map[string]any:
		return eris.Errorf("record: nested mapping value for key %q", key)
	}
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return nil
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present (including with a nil value).
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.keys) }

// All iterates fields in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (r *Record) Clone() *Record {
	c := New(r.Kind)
	for k, v := range r.All() {
		c.keys = append(c.keys, k)
		c.values[k] = v
	}
	return c
}

// Map returns the fields as a plain map with JSON-safe values.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for k, v := range r.All() {
		out[k] = JSONSafe(v)
	}
	return out
}

// MarshalJSON encodes the record as a JSON object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, eris.Wrapf(err, "record: encode key %q", k)
		}
		vb, err := json.Marshal(JSONSafe(r.values[k]))
		if err != nil {
			return nil, eris.Wrapf(err, "record: encode value of %q", k)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSONSafe converts values with no direct JSON form: dates become RFC 3339
// strings and identifiers become their string form.
func JSONSafe(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339)
	case uuid.UUID:
		return val.String()
	default:
		return v
	}
}
