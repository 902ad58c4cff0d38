package section

import (
	"math"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// ArcParams describes a circular CPW turn of centre-line radius Radius over
// the angle span (Start, End) in degrees.
//
// The span angles are the polar angles of the two ends seen from the arc
// centre. Anchor is placed at the Start end, or at the End end when
// StraightenOtherEnd is set.
type ArcParams struct {
	Anchor             geom.Point
	Radius             float64
	Start, End         float64
	StraightenOtherEnd bool
	CPW                CPW
}

func (ArcParams) Kind() Kind { return KindArc }

func (p ArcParams) moved(d geom.Point) Params {
	p.Anchor = p.Anchor.Add(d).Round()
	return p
}

func (p ArcParams) Validate() error {
	if err := p.CPW.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFinite("anchor", p.Anchor.X, p.Anchor.Y); err != nil {
		return err
	}
	if err := errors.ValidateFinite("arc span", p.Start, p.End); err != nil {
		return err
	}
	if err := errors.ValidatePositive("arc radius", p.Radius); err != nil {
		return err
	}
	if p.Radius <= p.CPW.HalfWidth() {
		return errors.New(errors.ErrCodeParameter,
			"arc radius %g must exceed half the CPW width %g", p.Radius, p.CPW.HalfWidth())
	}
	if p.Start == p.End {
		return errors.New(errors.ErrCodeParameter, "arc span (%g, %g) is empty", p.Start, p.End)
	}
	return nil
}

// Span returns the subtended angle in radians, signed.
func (p ArcParams) Span() float64 { return geom.Rad(p.End - p.Start) }

func (p ArcParams) build(name string) *Section {
	angle := p.Span()
	half := p.CPW.HalfWidth()
	r, w, g := p.Radius, p.CPW.Width, p.CPW.Gap

	ii, io := r-g-0.5*w, r-0.5*w
	oi, oo := r+0.5*w, r+0.5*w+g

	dir := geom.Polar(1, angle)
	inner := []geom.Point{geom.Pt(ii, 0), geom.Pt(io, 0), dir.Scale(io), dir.Scale(ii)}
	outer := []geom.Point{geom.Pt(oi, 0), geom.Pt(oo, 0), dir.Scale(oo), dir.Scale(oi)}

	align := geom.Rad(p.Start)
	if p.StraightenOtherEnd {
		align = geom.Rad(p.End)
	}
	inner = geom.RotatePoints(inner, align)
	outer = geom.RotatePoints(outer, align)

	shift := p.Anchor.Sub(inner[0].Add(geom.Polar(half, align)))
	inner = geom.Translate(inner, shift)
	outer = geom.Translate(outer, shift)

	far := geom.Midpoint(inner[3], outer[2]).Round()

	return &Section{
		Name:       name,
		Kind:       KindArc,
		Anchor:     p.Anchor,
		Heading:    p.Start,
		Length:     math.Abs(angle * r),
		Primitives: []shape.Primitive{shape.PolyArc(inner, angle), shape.PolyArc(outer, angle)},
		Endpoints:  NewEndpoints(far, p.Anchor),
		Params:     p,
	}
}
