package traveler

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/traveler-cli/internal/dataerr"
	"github.com/sells-group/traveler-cli/internal/keys"
	"github.com/sells-group/traveler-cli/internal/record"
	"github.com/sells-group/traveler-cli/internal/route"
	"github.com/sells-group/traveler-cli/internal/wcfdate"
)

// DefaultDateKeyPattern matches field names that may hold WCF dates
// ("Time", "StartTime", "DateUpdated", "TimeUpdated", "APILastUpdate").
const DefaultDateKeyPattern = `^(?:Date|Time)|(?:Date|Time|Update)$`

var (
	roadNameKeyRE  = regexp.MustCompile(`(?i)^(?:Start|End)?RoadName$`)
	routeLabelRE   = regexp.MustCompile(`^\D{1,2}[-\s]+\d{1,3}$`)
	locationIDName = "LocationID"
)

// Options holds the immutable tables a Parser works from. Zero fields fall
// back to the defaults.
type Options struct {
	Normalizer     *keys.Normalizer
	Codec          *wcfdate.Codec
	Routes         *route.Parser
	Discriminators []Discriminator
	DateKeyPattern string
}

// Parser normalizes decoded documents into flat records. It holds no
// mutable state and may be shared across goroutines.
type Parser struct {
	normalizer     *keys.Normalizer
	codec          wcfdate.Codec
	routes         *route.Parser
	discriminators []Discriminator
	dateKeyRE      *regexp.Regexp
}

// NewParser builds a Parser from opts.
func NewParser(opts Options) (*Parser, error) {
	p := &Parser{
		normalizer:     opts.Normalizer,
		codec:          wcfdate.New(),
		routes:         opts.Routes,
		discriminators: opts.Discriminators,
	}
	if p.normalizer == nil {
		p.normalizer = keys.MustNormalizer(keys.DefaultRules())
	}
	if opts.Codec != nil {
		p.codec = *opts.Codec
	}
	if p.routes == nil {
		p.routes = route.DefaultParser()
	}
	if p.discriminators == nil {
		p.discriminators = DefaultDiscriminators()
	}

	pattern := opts.DateKeyPattern
	if pattern == "" {
		pattern = DefaultDateKeyPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, eris.Wrapf(err, "traveler: compile date key pattern %q", pattern)
	}
	p.dateKeyRE = re
	return p, nil
}

// DefaultParser returns a Parser with the default tables.
func DefaultParser() *Parser {
	p, err := NewParser(Options{})
	if err != nil {
		panic(err)
	}
	return p
}

// Parse decodes and normalizes a document. A top-level array yields one
// record per element; a top-level object yields a single record.
func (p *Parser) Parse(text string) ([]*record.Record, error) {
	root, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return p.Normalize(root)
}

// ParseAny accepts a string or []byte document. Other kinds return an
// *dataerr.InvalidInputTypeError.
func (p *Parser) ParseAny(doc any) ([]*record.Record, error) {
	switch v := doc.(type) {
	case string:
		return p.Parse(v)
	case []byte:
		return p.Parse(string(v))
	default:
		return nil, &dataerr.InvalidInputTypeError{Op: "traveler: parse", Expected: "JSON text", Got: doc}
	}
}

// Normalize runs the post-order pass over a decoded tree.
func (p *Parser) Normalize(root *Node) ([]*record.Record, error) {
	v, err := p.visit(root)
	if err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case *record.Record:
		return []*record.Record{val}, nil
	case []any:
		out := make([]*record.Record, 0, len(val))
		for i, item := range val {
			r, ok := item.(*record.Record)
			if !ok {
				return nil, eris.Wrapf(
					&dataerr.InvalidInputTypeError{Op: "traveler: normalize", Expected: "object", Got: item},
					"traveler: element %d", i)
			}
			out = append(out, r)
		}
		zap.L().Debug("traveler: normalized records",
			zap.String("component", "traveler"),
			zap.Int("records", len(out)),
		)
		return out, nil
	default:
		return nil, &dataerr.InvalidInputTypeError{Op: "traveler: normalize", Expected: "object or array", Got: v}
	}
}

// visit returns the normalized form of n: a scalar, []any, or *record.Record.
// Children are always visited before their parent.
func (p *Parser) visit(n *Node) (any, error) {
	switch n.Kind {
	case NodeArray:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			v, err := p.visit(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case NodeObject:
		children := make([]any, len(n.Keys))
		for i, k := range n.Keys {
			child, _ := n.Member(k)
			v, err := p.visit(child)
			if err != nil {
				return nil, err
			}
			children[i] = v
		}
		return p.normalizeObject(n, children)
	default:
		return n.Value, nil
	}
}

// Classify returns the kind of a raw object from the discriminator table, or
// "" when no required key is present.
func (p *Parser) Classify(n *Node) string {
	for _, d := range p.discriminators {
		if _, ok := n.Member(d.RequiredKey); ok {
			return d.Kind
		}
	}
	return ""
}

func (p *Parser) normalizeObject(n *Node, children []any) (*record.Record, error) {
	out := record.New(p.Classify(n))

	for i, key := range n.Keys {
		switch v := children[i].(type) {
		case *record.Record:
			for k, fv := range record.Flatten(v, key, false) {
				if err := p.set(out, k, fv); err != nil {
					return nil, err
				}
			}
		case []any:
			text, err := json.Marshal(v)
			if err != nil {
				return nil, eris.Wrapf(err, "traveler: encode array field %q", key)
			}
			if err := p.set(out, key, string(text)); err != nil {
				return nil, err
			}
		default:
			if err := p.set(out, key, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// set simplifies key, then applies date parsing and key-specific coercions.
func (p *Parser) set(out *record.Record, key string, v any) error {
	key = p.normalizer.Simplify(key)
	if key == "" && v == nil {
		return nil
	}

	if s, ok := v.(string); ok && p.dateKeyRE.MatchString(key) {
		parsed, err := p.codec.Parse(strings.TrimSpace(s))
		if err != nil {
			return eris.Wrapf(err, "traveler: field %q", key)
		}
		if _, isString := parsed.(string); !isString {
			v = parsed
		}
	}

	switch {
	case key == locationIDName:
		v = braceGUID(v)
	case roadNameKeyRE.MatchString(key):
		v = p.roadName(v)
	}

	return out.Set(key, v)
}

// roadName converts signed route labels ("I-5", "SR 20") to route IDs.
func (p *Parser) roadName(v any) any {
	s, ok := v.(string)
	if !ok || !routeLabelRE.MatchString(s) {
		return v
	}
	id, err := p.routes.LabelToID(s)
	if err != nil {
		zap.L().Debug("traveler: keeping unrecognized route label",
			zap.String("component", "traveler"),
			zap.String("label", s),
			zap.Error(err),
		)
		return v
	}
	return id
}

// braceGUID renders a location identifier as "{guid}".
func braceGUID(v any) any {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}
	if u, err := uuid.Parse(s); err == nil {
		return "{" + u.String() + "}"
	}
	return "{" + s + "}"
}
