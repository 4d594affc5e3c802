// Package keys normalizes field names from the traveler information API.
package keys

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var camelCaseRE = regexp.MustCompile(`[A-Z][a-z]+|[A-Z]{2}`)

// SplitCamelCase splits a camel-case identifier into space separated words.
// "MountainPassConditions" becomes "Mountain Pass Conditions".
func SplitCamelCase(word string) string {
	if word == "" {
		return ""
	}
	return strings.Join(camelCaseRE.FindAllString(word, -1), " ")
}

// Rules holds the name sets used by field-name simplification.
type Rules struct {
	// LocationPrefixes are structural prefixes that appear directly before
	// "Location" (e.g. "FlowStation" in "FlowStationLocationLatitude").
	LocationPrefixes []string
	// PropertySuffixes are the roadway-location properties recognized after a
	// Start/Begin/End prefix.
	PropertySuffixes []string
}

// DefaultRules returns the rule sets used by the WSDOT feeds.
func DefaultRules() Rules {
	return Rules{
		LocationPrefixes: []string{"BorderCrossing", "FlowStation", "Camera"},
		PropertySuffixes: []string{"RoadName", "Longitude", "Latitude", "MilePost", "Description", "Direction"},
	}
}

// Normalizer simplifies compound field names. It is immutable and safe for
// concurrent use.
type Normalizer struct {
	prefixRE   *regexp.Regexp
	locationRE *regexp.Regexp
}

// NewNormalizer compiles rules into a Normalizer.
func NewNormalizer(rules Rules) (*Normalizer, error) {
	if len(rules.LocationPrefixes) == 0 || len(rules.PropertySuffixes) == 0 {
		return nil, eris.New("keys: location prefixes and property suffixes are required")
	}
	prefixRE, err := regexp.Compile(`^(?:` + alternation(rules.LocationPrefixes) + `)Location`)
	if err != nil {
		return nil, eris.Wrap(err, "keys: compile prefix rule")
	}
	locationRE, err := regexp.Compile(`(?i)^(?:(Start|Begin)|(End))\w*(` + alternation(rules.PropertySuffixes) + `)$`)
	if err != nil {
		return nil, eris.Wrap(err, "keys: compile location rule")
	}
	return &Normalizer{prefixRE: prefixRE, locationRE: locationRE}, nil
}

// MustNormalizer is NewNormalizer that panics on error. Intended for the
// built-in rule sets.
func MustNormalizer(rules Rules) *Normalizer {
	n, err := NewNormalizer(rules)
	if err != nil {
		panic(err)
	}
	return n
}

// Simplify applies the first matching rule, in this order:
//
//  1. A "<prefix>Location" head is collapsed to "Location" when the rest of the
//     name starts with "Description", and dropped otherwise.
//  2. "(Start|Begin|End)<anything><Suffix>" becomes "Start<Suffix>" or "End<Suffix>".
//  3. Otherwise the name is returned unchanged.
func (n *Normalizer) Simplify(name string) string {
	if loc := n.prefixRE.FindStringIndex(name); loc != nil {
		rest := name[loc[1]:]
		if strings.HasPrefix(rest, "Description") {
			return "Location" + rest
		}
		return rest
	}

	if m := n.locationRE.FindStringSubmatch(name); m != nil {
		if m[1] != "" {
			return "Start" + m[3]
		}
		return "End" + m[3]
	}

	return name
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
