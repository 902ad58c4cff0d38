package shape

import (
	"math"

	"github.com/matzehuels/cpwdesign/pkg/geom"
)

// DefaultStep is the angular step (radians) used to approximate bulged edges
// when no step is given.
const DefaultStep = math.Pi / 90

// Edge is one side of a closed loop, straight or circular.
type Edge struct {
	From, To geom.Point
	Bulge    float64

	// Arc geometry, valid when Bulge != 0.
	Center geom.Point
	Radius float64
	Start  float64 // angle of From seen from Center
	Sweep  float64 // signed subtended angle, positive counterclockwise
}

// IsArc reports whether the edge is drawn as a circular arc.
func (e Edge) IsArc() bool { return e.Bulge != 0 }

// Edges returns the loop's edges in vertex order, including the closing edge.
func (p Primitive) Edges() []Edge {
	n := len(p.Points)
	edges := make([]Edge, n)
	for i := range n {
		edges[i] = newEdge(p.Points[i], p.Points[(i+1)%n], p.BulgeAt(i))
	}
	return edges
}

func newEdge(from, to geom.Point, bulge float64) Edge {
	e := Edge{From: from, To: to, Bulge: bulge}
	chord := to.Sub(from)
	c := chord.Len()
	if bulge == 0 || c == 0 {
		e.Bulge = 0
		return e
	}
	normal := geom.Pt(-chord.Y/c, chord.X/c)
	d := c * (1 - bulge*bulge) / (4 * bulge)
	e.Center = geom.Midpoint(from, to).Add(normal.Scale(d))
	e.Radius = c * (1 + bulge*bulge) / (4 * math.Abs(bulge))
	e.Start = math.Atan2(from.Y-e.Center.Y, from.X-e.Center.X)
	e.Sweep = 4 * math.Atan(bulge)
	return e
}

// Flatten returns the loop's outline with every bulged edge replaced by
// points on the true arc, no further apart than step radians. The closing
// vertex is not repeated. A non-positive step selects [DefaultStep].
func (p Primitive) Flatten(step float64) []geom.Point {
	if step <= 0 {
		step = DefaultStep
	}
	var out []geom.Point
	for _, e := range p.Edges() {
		out = append(out, e.From)
		if !e.IsArc() {
			continue
		}
		n := int(math.Ceil(math.Abs(e.Sweep) / step))
		for k := 1; k < n; k++ {
			a := e.Start + e.Sweep*float64(k)/float64(n)
			out = append(out, e.Center.Add(geom.Polar(e.Radius, a)))
		}
	}
	return out
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max geom.Point
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r encloses nothing.
func (r Rect) Empty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

// EmptyRect returns a box that any Union replaces.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: geom.Pt(inf, inf), Max: geom.Pt(-inf, -inf)}
}

// Extend grows r to include pt.
func (r Rect) Extend(pt geom.Point) Rect {
	r.Min.X = math.Min(r.Min.X, pt.X)
	r.Min.Y = math.Min(r.Min.Y, pt.Y)
	r.Max.X = math.Max(r.Max.X, pt.X)
	r.Max.Y = math.Max(r.Max.Y, pt.Y)
	return r
}

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	if o.Empty() {
		return r
	}
	return r.Extend(o.Min).Extend(o.Max)
}

// Bounds returns the bounding box of p, arcs included.
func (p Primitive) Bounds() Rect {
	r := EmptyRect()
	for _, pt := range p.Flatten(math.Pi / 180) {
		r = r.Extend(pt)
	}
	return r
}
