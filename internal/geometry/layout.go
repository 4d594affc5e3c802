package geometry

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/traveler-cli/internal/record"
	"github.com/sells-group/traveler-cli/internal/traveler"
)

// Type is the geometry type a layout produces.
type Type string

// Geometry types.
const (
	TypePoint      Type = "Point"
	TypeMultiPoint Type = "MultiPoint"
)

// Layout says where a record kind keeps its coordinates. For TypePoint the
// pairs are tried in order and the first valid one wins; for TypeMultiPoint
// every valid pair contributes a point.
type Layout struct {
	Type    Type
	Pairs   []Pair
	IDField string // optional field used as the GeoJSON feature id
}

// Fields returns every coordinate field named by the layout.
func (l Layout) Fields() []string {
	out := make([]string, 0, 2*len(l.Pairs))
	for _, p := range l.Pairs {
		out = append(out, p.X, p.Y)
	}
	return out
}

var (
	lonLat   = Pair{X: "Longitude", Y: "Latitude"}
	startEnd = []Pair{
		{X: "StartLongitude", Y: "StartLatitude"},
		{X: "EndLongitude", Y: "EndLatitude"},
	}
)

// Layouts maps record kinds to coordinate layouts.
type Layouts struct {
	byKind map[string]Layout
}

// NewLayouts copies m into an immutable table.
func NewLayouts(m map[string]Layout) Layouts {
	l := Layouts{byKind: make(map[string]Layout, len(m))}
	for k, v := range m {
		l.byKind[k] = v
	}
	return l
}

// DefaultLayouts returns the layouts of the traveler information feeds,
// expressed in normalized field names.
func DefaultLayouts() Layouts {
	point := Layout{Type: TypePoint, Pairs: []Pair{lonLat}}
	multi := Layout{Type: TypeMultiPoint, Pairs: startEnd}
	bridge := Layout{Type: TypeMultiPoint, Pairs: []Pair{startEnd[0], startEnd[1], lonLat}}
	camera := Layout{
		Type:    TypePoint,
		Pairs:   []Pair{lonLat, {X: "DisplayLongitude", Y: "DisplayLatitude"}},
		IDField: "CameraID",
	}
	return NewLayouts(map[string]Layout{
		traveler.KindBorderCrossing:  point,
		traveler.KindBridgeClearance: bridge,
		traveler.KindCVRestriction:   point,
		traveler.KindAlert:           {Type: TypeMultiPoint, Pairs: startEnd, IDField: "AlertID"},
		traveler.KindCamera:          camera,
		traveler.KindPassCondition:   {Type: TypePoint, Pairs: []Pair{lonLat}, IDField: "MountainPassId"},
		traveler.KindFlowData:        {Type: TypePoint, Pairs: []Pair{lonLat}, IDField: "FlowDataID"},
		traveler.KindTravelTime:      {Type: TypeMultiPoint, Pairs: startEnd, IDField: "TravelTimeID"},
		traveler.KindWeatherInfo:     {Type: TypePoint, Pairs: []Pair{lonLat}, IDField: "StationID"},
		traveler.KindTollRate:        multi,
	})
}

// For returns the layout of r. Records of unknown kind use Longitude/Latitude
// when both fields are present, then the Start/End pairs.
func (l Layouts) For(r *record.Record) (Layout, bool) {
	if layout, ok := l.byKind[r.Kind]; ok {
		return layout, true
	}
	if r.Has(lonLat.X) && r.Has(lonLat.Y) {
		return Layout{Type: TypePoint, Pairs: []Pair{lonLat}}, true
	}
	if r.Has(startEnd[0].X) && r.Has(startEnd[0].Y) && r.Has(startEnd[1].X) && r.Has(startEnd[1].Y) {
		return Layout{Type: TypeMultiPoint, Pairs: startEnd}, true
	}
	return Layout{}, false
}

// Deriver computes record geometry from a layout table.
type Deriver struct {
	layouts Layouts
}

// NewDeriver creates a Deriver.
func NewDeriver(layouts Layouts) *Deriver {
	return &Deriver{layouts: layouts}
}

// Derive returns the geometry of r: a *geom.Point, a *geom.MultiPoint, or
// nil when the record has no valid location.
func (d *Deriver) Derive(r *record.Record) geom.T {
	layout, ok := d.layouts.For(r)
	if !ok {
		return nil
	}
	return derive(r, layout)
}

func derive(r *record.Record, layout Layout) geom.T {
	switch layout.Type {
	case TypeMultiPoint:
		if mp := MultiPoint(r, layout.Pairs...); mp != nil {
			return mp
		}
	case TypePoint:
		for _, p := range layout.Pairs {
			if pt := PointAt(r, p); pt != nil {
				return pt
			}
		}
	}
	return nil
}
