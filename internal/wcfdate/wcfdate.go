// Package wcfdate parses and formats the WCF JSON date wire format
// ("/Date(1536618682000-0700)/") used by the traveler information API.
package wcfdate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/traveler-cli/internal/dataerr"
)

var wireRE = regexp.MustCompile(`(?i)^/Date\((\d+)(?:([+-])(\d{2})(\d{2}))?\)/$`)

// WcfDate is the decoded wire value: milliseconds since the Unix epoch plus
// the optional UTC offset suffix.
type WcfDate struct {
	Millis int64
	Offset *time.Duration
}

// Time converts the wire value to a time.Time. Milliseconds are truncated to
// whole seconds. With utc set the offset is discarded; otherwise the result
// carries a fixed-offset zone (UTC when the wire value had no offset).
func (d WcfDate) Time(utc bool) time.Time {
	t := time.Unix(d.Millis/1000, 0).UTC()
	if utc || d.Offset == nil {
		return t
	}
	return t.In(time.FixedZone("", int(d.Offset.Seconds())))
}

// String renders the value in wire format, including the offset when present.
func (d WcfDate) String() string {
	if d.Offset == nil {
		return fmt.Sprintf("/Date(%d)/", d.Millis)
	}
	off := *d.Offset
	sign := '+'
	if off < 0 {
		sign = '-'
		off = -off
	}
	hrs := int(off / time.Hour)
	mins := int((off % time.Hour) / time.Minute)
	return fmt.Sprintf("/Date(%d%c%02d%02d)/", d.Millis, sign, hrs, mins)
}

// ParseWire decodes text into a WcfDate. It returns a *dataerr.DateFormatError
// when text does not match the wire grammar.
func ParseWire(text string) (WcfDate, error) {
	m := wireRE.FindStringSubmatch(text)
	if m == nil {
		return WcfDate{}, &dataerr.DateFormatError{Text: text}
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return WcfDate{}, &dataerr.DateFormatError{Text: text}
	}
	d := WcfDate{Millis: ms}
	if m[2] != "" {
		hrs, _ := strconv.Atoi(m[3])
		mins, _ := strconv.Atoi(m[4])
		off := time.Duration(hrs)*time.Hour + time.Duration(mins)*time.Minute
		if m[2] == "-" {
			off = -off
		}
		d.Offset = &off
	}
	return d, nil
}

// ToWCF formats t as "/Date(<ms>)/" with no offset suffix. Sub-second
// precision is dropped, matching what Parse keeps.
func ToWCF(t time.Time) string {
	return WcfDate{Millis: t.Unix() * 1000}.String()
}

// Codec applies the wire format to values found in decoded records.
type Codec struct {
	strict    bool
	outputUTC bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithStrict makes non-matching text an error instead of a pass-through.
func WithStrict(strict bool) Option {
	return func(c *Codec) { c.strict = strict }
}

// WithOutputUTC controls whether parsed dates are reported in UTC (default)
// or in the fixed offset carried by the wire value.
func WithOutputUTC(utc bool) Option {
	return func(c *Codec) { c.outputUTC = utc }
}

// New creates a Codec. Defaults: lenient, UTC output.
func New(opts ...Option) Codec {
	c := Codec{outputUTC: true}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Strict reports whether the codec rejects non-matching text.
func (c Codec) Strict() bool { return c.strict }

// Parse decodes text. A match yields a time.Time; a non-match yields text
// unchanged, or a *dataerr.DateFormatError in strict mode.
func (c Codec) Parse(text string) (any, error) {
	d, err := ParseWire(text)
	if err != nil {
		if c.strict {
			return nil, eris.Wrap(err, "wcfdate: parse")
		}
		return text, nil
	}
	return d.Time(c.outputUTC), nil
}

// ParseValue is Parse for untyped input. Anything other than a string is a
// *dataerr.InvalidInputTypeError.
func (c Codec) ParseValue(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &dataerr.InvalidInputTypeError{Op: "wcfdate: parse", Expected: "string", Got: v}
	}
	return c.Parse(s)
}
