package route

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sells-group/traveler-cli/internal/dataerr"
)

// Shield is the kind of route marker a state route is signed with.
type Shield string

// Shield types.
const (
	ShieldUS         Shield = "US"
	ShieldSR         Shield = "SR"
	ShieldInterstate Shield = "I"
)

// DefaultShields returns the shield type for every signed Washington state route.
func DefaultShields() map[int]Shield {
	return map[int]Shield{
		2: ShieldUS, 3: ShieldSR, 4: ShieldSR, 5: ShieldInterstate,
		6: ShieldSR, 7: ShieldSR, 8: ShieldSR, 9: ShieldSR,
		10: ShieldSR, 11: ShieldSR, 12: ShieldUS, 14: ShieldSR,
		16: ShieldSR, 17: ShieldSR, 18: ShieldSR, 19: ShieldSR,
		20: ShieldSR, 21: ShieldSR, 22: ShieldSR, 23: ShieldSR,
		24: ShieldSR, 25: ShieldSR, 26: ShieldSR, 27: ShieldSR,
		28: ShieldSR, 31: ShieldSR, 41: ShieldSR, 82: ShieldInterstate,
		90: ShieldInterstate, 92: ShieldSR, 96: ShieldSR, 97: ShieldUS,
		99: ShieldSR, 100: ShieldSR, 101: ShieldUS, 102: ShieldSR,
		103: ShieldSR, 104: ShieldSR, 105: ShieldSR, 106: ShieldSR,
		107: ShieldSR, 108: ShieldSR, 109: ShieldSR, 110: ShieldSR,
		112: ShieldSR, 113: ShieldSR, 115: ShieldSR, 116: ShieldSR,
		117: ShieldSR, 119: ShieldSR, 121: ShieldSR, 122: ShieldSR,
		123: ShieldSR, 124: ShieldSR, 125: ShieldSR, 127: ShieldSR,
		128: ShieldSR, 129: ShieldSR, 131: ShieldSR, 141: ShieldSR,
		142: ShieldSR, 150: ShieldSR, 153: ShieldSR, 155: ShieldSR,
		160: ShieldSR, 161: ShieldSR, 162: ShieldSR, 163: ShieldSR,
		164: ShieldSR, 165: ShieldSR, 166: ShieldSR, 167: ShieldSR,
		169: ShieldSR, 170: ShieldSR, 171: ShieldSR, 172: ShieldSR,
		173: ShieldSR, 174: ShieldSR, 181: ShieldSR, 182: ShieldInterstate,
		193: ShieldSR, 194: ShieldSR, 195: ShieldUS, 197: ShieldUS,
		202: ShieldSR, 203: ShieldSR, 204: ShieldSR, 205: ShieldInterstate,
		206: ShieldSR, 207: ShieldSR, 211: ShieldSR, 213: ShieldSR,
		215: ShieldSR, 221: ShieldSR, 223: ShieldSR, 224: ShieldSR,
		225: ShieldSR, 231: ShieldSR, 240: ShieldSR, 241: ShieldSR,
		243: ShieldSR, 260: ShieldSR, 261: ShieldSR, 262: ShieldSR,
		263: ShieldSR, 270: ShieldSR, 271: ShieldSR, 272: ShieldSR,
		274: ShieldSR, 278: ShieldSR, 281: ShieldSR, 282: ShieldSR,
		283: ShieldSR, 285: ShieldSR, 290: ShieldSR, 291: ShieldSR,
		292: ShieldSR, 300: ShieldSR, 302: ShieldSR, 303: ShieldSR,
		304: ShieldSR, 305: ShieldSR, 307: ShieldSR, 308: ShieldSR,
		310: ShieldSR, 395: ShieldUS, 397: ShieldSR, 401: ShieldSR,
		405: ShieldInterstate, 409: ShieldSR, 410: ShieldSR, 411: ShieldSR,
		432: ShieldSR, 433: ShieldSR, 500: ShieldSR, 501: ShieldSR,
		502: ShieldSR, 503: ShieldSR, 504: ShieldSR, 505: ShieldSR,
		506: ShieldSR, 507: ShieldSR, 508: ShieldSR, 509: ShieldSR,
		510: ShieldSR, 512: ShieldSR, 513: ShieldSR, 515: ShieldSR,
		516: ShieldSR, 518: ShieldSR, 519: ShieldSR, 520: ShieldSR,
		522: ShieldSR, 523: ShieldSR, 524: ShieldSR, 525: ShieldSR,
		526: ShieldSR, 527: ShieldSR, 528: ShieldSR, 529: ShieldSR,
		530: ShieldSR, 531: ShieldSR, 532: ShieldSR, 534: ShieldSR,
		536: ShieldSR, 538: ShieldSR, 539: ShieldSR, 542: ShieldSR,
		543: ShieldSR, 544: ShieldSR, 546: ShieldSR, 547: ShieldSR,
		548: ShieldSR, 599: ShieldSR, 702: ShieldSR, 704: ShieldSR,
		705: ShieldInterstate, 706: ShieldSR, 730: ShieldUS, 821: ShieldSR,
		823: ShieldSR, 900: ShieldSR, 902: ShieldSR, 903: ShieldSR,
		904: ShieldSR, 906: ShieldSR, 970: ShieldSR, 971: ShieldSR,
	}
}

// ShieldFor returns the shield type for a route number.
func (p *Parser) ShieldFor(sr int) (Shield, bool) {
	s, ok := p.shields[sr]
	return s, ok
}

// LabelToID converts a signed route label ("I-5", "US 101", "SR 20", "WA-9")
// or a bare route number into a three-digit route ID. Text that is neither a
// label nor one to three digits is a *dataerr.SRFormatError.
func (p *Parser) LabelToID(label any) (string, error) {
	switch v := label.(type) {
	case int:
		return numberLabel(float64(v))
	case int64:
		return numberLabel(float64(v))
	case float64:
		return numberLabel(v)
	case string:
		if m := labelRE.FindStringSubmatch(v); m != nil {
			n, err := strconv.Atoi(m[4])
			if err != nil {
				return "", &dataerr.SRFormatError{Value: v}
			}
			return pad3(n), nil
		}
		if digitsRE.MatchString(v) {
			n, _ := strconv.Atoi(v)
			return pad3(n), nil
		}
		return "", &dataerr.SRFormatError{Value: v}
	default:
		return "", &dataerr.InvalidInputTypeError{Op: "route: label to id", Expected: "string or number", Got: label}
	}
}

// IsLabel reports whether s is a signed route label such as "I-5" or "SR 20".
func IsLabel(s string) bool {
	return labelRE.MatchString(s)
}

// IDToLabel converts a route ID into its signed label, e.g. "005" to "I-5".
func (p *Parser) IDToLabel(id string) (string, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return "", &dataerr.SRFormatError{Value: id}
	}
	shield, ok := p.shields[n]
	if !ok {
		return "", &dataerr.SRFormatError{Value: id}
	}
	if shield == ShieldInterstate {
		return fmt.Sprintf("%s-%d", shield, n), nil
	}
	return fmt.Sprintf("%s %d", shield, n), nil
}

func numberLabel(v float64) (string, error) {
	if v <= 0 || v >= 1000 || v != math.Trunc(v) {
		return "", &dataerr.SRFormatError{Value: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return pad3(int(v)), nil
}
