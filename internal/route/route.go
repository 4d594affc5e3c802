// Package route parses WSDOT state route identifiers ("005", "005S120047",
// "090AR") and converts between route IDs and signed route labels ("I-5").
package route

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/traveler-cli/internal/dataerr"
)

// ID is a parsed route identifier. RRT and RRQ are empty when not present;
// RRQ is only ever set together with RRT.
type ID struct {
	SR  string // three-digit state route number, zero padded
	RRT string // related roadway type
	RRQ string // related roadway qualifier
}

// String reassembles the identifier.
func (id ID) String() string {
	return id.SR + id.RRT + id.RRQ
}

// DefaultRRTs lists the related roadway type codes. Ramp codes are expressed
// as character classes.
//
//	AR alternate route        CD/CI collector distributor (dec/inc)
//	CO couplet                FD/FI frontage road (dec/inc)
//	LX crossroad in interchange  RL reversible lane
//	SP spur                   TB transitional turnback
//	TR temporary route        PR proposed route
//	FS/FT ferry ship/terminal ML mainline
//	P,Q,R,S + 1-9 or U: off/on ramps and their extensions
var DefaultRRTs = []string{
	"AR", "C[DI]", "CO", "F[DI]", "LX", "[PQRS][0-9U]", "RL",
	"SP", "TB", "TR", "PR", "F[ST]", "ML",
}

var (
	shortRouteRE = regexp.MustCompile(`^\d{1,2}$`)
	labelRE      = regexp.MustCompile(`^(?:(US)|(IS?)|(SR|WA))[-\s](\d+)$`)
	digitsRE     = regexp.MustCompile(`^\d{1,3}$`)
)

// Parser parses route identifiers against an RRT grammar and resolves shield
// labels. It is immutable once built.
type Parser struct {
	routeRE *regexp.Regexp
	shields map[int]Shield
}

// NewParser compiles the RRT patterns and takes ownership of the shield table.
func NewParser(rrts []string, shields map[int]Shield) (*Parser, error) {
	if len(rrts) == 0 {
		return nil, eris.New("route: at least one RRT pattern is required")
	}
	re, err := regexp.Compile(`^(\d{3})(?:(` + strings.Join(rrts, "|") + `)([A-Z0-9]{0,6}))?$`)
	if err != nil {
		return nil, eris.Wrap(err, "route: compile RRT grammar")
	}
	return &Parser{routeRE: re, shields: shields}, nil
}

// DefaultParser returns a Parser for the WSDOT grammar and shield table.
func DefaultParser() *Parser {
	p, err := NewParser(DefaultRRTs, DefaultShields())
	if err != nil {
		panic(err)
	}
	return p
}

// Parse splits a route identifier into SR, RRT and RRQ. Integers in [0, 999]
// and one- or two-digit strings are zero padded. Unparseable strings return a
// *dataerr.SRFormatError; unsupported kinds an *dataerr.InvalidInputTypeError.
func (p *Parser) Parse(v any) (ID, error) {
	switch val := v.(type) {
	case int:
		return fromNumber(int64(val))
	case int32:
		return fromNumber(int64(val))
	case int64:
		return fromNumber(val)
	case float64:
		if val != math.Trunc(val) {
			return ID{}, &dataerr.SRFormatError{Value: strconv.FormatFloat(val, 'f', -1, 64)}
		}
		return fromNumber(int64(val))
	case string:
		return p.parseString(val)
	default:
		return ID{}, &dataerr.InvalidInputTypeError{Op: "route: parse", Expected: "string or integer", Got: v}
	}
}

func (p *Parser) parseString(s string) (ID, error) {
	if shortRouteRE.MatchString(s) {
		n, _ := strconv.Atoi(s)
		return ID{SR: pad3(n)}, nil
	}
	m := p.routeRE.FindStringSubmatch(s)
	if m == nil {
		return ID{}, &dataerr.SRFormatError{Value: s}
	}
	return ID{SR: m[1], RRT: m[2], RRQ: m[3]}, nil
}

func fromNumber(n int64) (ID, error) {
	if n < 0 || n > 999 {
		return ID{}, &dataerr.SRFormatError{Value: strconv.FormatInt(n, 10)}
	}
	return ID{SR: pad3(int(n))}, nil
}

func pad3(n int) string {
	return fmt.Sprintf("%03d", n)
}
