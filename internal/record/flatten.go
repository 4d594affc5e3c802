package record

import (
	"iter"
	"maps"
	"slices"
)

// Flatten yields the leaf fields of m with nested mappings collapsed into
// their parent. Child keys are appended to the parent key with no separator:
// {"FlowStationLocation": {"Latitude": 1}} yields ("FlowStationLocationLatitude", 1).
// With jsonSafe set, leaf values are passed through JSONSafe.
//
// The sequence is lazy and can be ranged over any number of times. Plain
// map[string]any values are visited in sorted key order.
func Flatten(m Mapping, parentKey string, jsonSafe bool) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		flattenInto(m.All(), parentKey, jsonSafe, yield)
	}
}

// FlattenMap is Flatten for a plain map.
func FlattenMap(m map[string]any, parentKey string, jsonSafe bool) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		flattenInto(sortedMap(m), parentKey, jsonSafe, yield)
	}
}

func flattenInto(fields iter.Seq2[string, any], parentKey string, jsonSafe bool, yield func(string, any) bool) bool {
	for k, v := range fields {
		key := parentKey + k
		switch nested := v.(type) {
		case Mapping:
			if !flattenInto(nested.All(), key, jsonSafe, yield) {
				return false
			}
			continue
		case map[string]any:
			if !flattenInto(sortedMap(nested), key, jsonSafe, yield) {
				return false
			}
			continue
		}
		if jsonSafe {
			v = JSONSafe(v)
		}
		if !yield(key, v) {
			return false
		}
	}
	return true
}

func sortedMap(m map[string]any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
