// Package geometry derives point and multipoint geometry from the coordinate
// fields of flat traveler records.
//
// Coordinates of exactly zero are treated as missing: the feeds report an
// unknown location as (0, 0).
package geometry

import (
	"encoding/json"
	"math"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/traveler-cli/internal/record"
)

// SRID is the spatial reference of all derived geometry (WGS 84).
const SRID = 4326

// Pair names the longitude (X) and latitude (Y) fields of one location.
type Pair struct {
	X string
	Y string
}

// Point returns a point for (x, y), or nil when either coordinate is nil,
// non-numeric or zero.
func Point(x, y any) *geom.Point {
	fx, ok := coord(x)
	if !ok {
		return nil
	}
	fy, ok := coord(y)
	if !ok {
		return nil
	}
	return geom.NewPointFlat(geom.XY, []float64{fx, fy}).SetSRID(SRID)
}

// PointAt resolves a pair against a record.
func PointAt(r *record.Record, p Pair) *geom.Point {
	x, _ := r.Get(p.X)
	y, _ := r.Get(p.Y)
	return Point(x, y)
}

// MultiPoint collects the valid pairs of r into a multipoint, in pair order.
// It returns nil when no pair is valid. A single valid pair still produces a
// MultiPoint.
func MultiPoint(r *record.Record, pairs ...Pair) *geom.MultiPoint {
	flat := make([]float64, 0, 2*len(pairs))
	for _, p := range pairs {
		pt := PointAt(r, p)
		if pt == nil {
			zap.L().Debug("geometry: skipping missing coordinate pair",
				zap.String("component", "geometry"),
				zap.String("kind", r.Kind),
				zap.String("x", p.X),
				zap.String("y", p.Y),
			)
			continue
		}
		flat = append(flat, pt.X(), pt.Y())
	}
	if len(flat) == 0 {
		return nil
	}
	return geom.NewMultiPointFlat(geom.XY, flat).SetSRID(SRID)
}

func coord(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
