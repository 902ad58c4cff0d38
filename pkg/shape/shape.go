// Package shape defines the drawing primitives produced by the section
// builders.
//
// A [Primitive] is a closed polyline: the last vertex connects back to the
// first. Any edge may carry a bulge, the tangent of a quarter of the angle the
// edge subtends when it is drawn as a circular arc. A positive bulge turns
// counterclockwise from the edge's start vertex to its end vertex, a negative
// bulge clockwise. This is the lightweight-polyline convention CAD hosts
// consume directly, so vertex order and bulge signs are part of the output
// contract and never normalised.
//
// Constructors round vertices and bulge values to [geom.Precision] digits.
// Passing a point set of the wrong shape is a broken builder invariant and
// panics.
package shape

import (
	"fmt"
	"math"

	"github.com/matzehuels/cpwdesign/pkg/geom"
)

// Bulge attaches an arc to the edge that starts at vertex Edge.
type Bulge struct {
	Edge  int     `json:"edge"`
	Value float64 `json:"value"`
}

// BulgeSpec describes a bulge by the subtended angle (radians) and a sign.
type BulgeSpec struct {
	Edge  int
	Angle float64
	Sign  float64
}

// Primitive is a closed point loop with optional per-edge bulges.
type Primitive struct {
	Points []geom.Point `json:"points"`
	Bulges []Bulge      `json:"bulges,omitempty"`
}

// BulgeValue returns the bulge for angle: tan(angle/4), rounded.
func BulgeValue(angle float64) float64 {
	return geom.Round(math.Tan(0.25 * angle))
}

// Polyline returns a closed polygon through points.
func Polyline(points []geom.Point) Primitive {
	if len(points) < 3 {
		panic(fmt.Sprintf("shape: closed polyline needs at least 3 points, got %d", len(points)))
	}
	pts := make([]geom.Point, len(points))
	for i, p := range points {
		pts[i] = p.Round()
	}
	return Primitive{Points: pts}
}

// PolyArc returns a 4-point annulus wedge whose edges 1 and 3 are arcs of the
// given span. Edge 1 (outer radius) carries +bulge and edge 3 (inner radius)
// carries -bulge because the loop walks them in opposite directions.
func PolyArc(points []geom.Point, angle float64) Primitive {
	if len(points) != 4 {
		panic(fmt.Sprintf("shape: arc wedge needs exactly 4 points, got %d", len(points)))
	}
	p := Polyline(points)
	b := BulgeValue(angle)
	p.Bulges = []Bulge{{Edge: 1, Value: b}, {Edge: 3, Value: -b}}
	return p
}

// PolyBulge returns a closed polyline with an independent bulge at each
// listed vertex.
func PolyBulge(points []geom.Point, specs []BulgeSpec) Primitive {
	p := Polyline(points)
	p.Bulges = make([]Bulge, len(specs))
	for i, s := range specs {
		if s.Edge < 0 || s.Edge >= len(points) {
			panic(fmt.Sprintf("shape: bulge edge %d out of range for %d vertices", s.Edge, len(points)))
		}
		p.Bulges[i] = Bulge{Edge: s.Edge, Value: BulgeValue(s.Angle) * s.Sign}
	}
	return p
}

// BulgeAt returns the bulge of the edge starting at vertex i (0 if straight).
func (p Primitive) BulgeAt(i int) float64 {
	for _, b := range p.Bulges {
		if b.Edge == i {
			return b.Value
		}
	}
	return 0
}

// Clone returns a deep copy of p.
func (p Primitive) Clone() Primitive {
	out := Primitive{Points: append([]geom.Point(nil), p.Points...)}
	if len(p.Bulges) > 0 {
		out.Bulges = append([]Bulge(nil), p.Bulges...)
	}
	return out
}

// Translate returns p shifted by d.
func (p Primitive) Translate(d geom.Point) Primitive {
	out := p.Clone()
	out.Points = geom.Translate(p.Points, d)
	return out
}

// Mirror returns p reflected about the line through origin at angle axis.
// Reflection reverses the winding of the loop, so every bulge changes sign.
func (p Primitive) Mirror(origin geom.Point, axis float64) Primitive {
	out := p.Clone()
	out.Points = geom.MirrorAbout(p.Points, origin, axis)
	for i := range out.Bulges {
		out.Bulges[i].Value = -out.Bulges[i].Value
	}
	return out
}
