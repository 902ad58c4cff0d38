package section

import (
	"math"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// CapParams describes a rounded termination closing an open CPW end at
// Anchor. Heading points away from the line being terminated.
type CapParams struct {
	Anchor  geom.Point
	Heading float64
	CPW     CPW
}

func (CapParams) Kind() Kind { return KindCap }

func (p CapParams) moved(d geom.Point) Params {
	p.Anchor = p.Anchor.Add(d).Round()
	return p
}

func (p CapParams) Validate() error {
	if err := p.CPW.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFinite("anchor", p.Anchor.X, p.Anchor.Y); err != nil {
		return err
	}
	return errors.ValidateFinite("cap heading", p.Heading)
}

var capBulges = []shape.BulgeSpec{
	{Edge: 1, Angle: math.Pi / 2, Sign: 1},
	{Edge: 3, Angle: math.Pi / 2, Sign: 1},
	{Edge: 6, Angle: math.Pi, Sign: -1},
}

// build emits one loop wrapping the conductor end: quarter-round shoulders on
// the outside and a half-round pocket around the conductor tip.
func (p CapParams) build(name string) *Section {
	g, w := p.CPW.Gap, p.CPW.Width
	half := p.CPW.HalfWidth()
	full := 2 * half

	pts := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(g, 0),
		geom.Pt(2*g, g),
		geom.Pt(2*g, g+w),
		geom.Pt(g, full),
		geom.Pt(0, full),
		geom.Pt(0, full-g),
		geom.Pt(0, full-g-w),
	}
	pts = geom.Translate(pts, geom.Pt(0, -half))
	pts = transform(pts, p.Heading, p.Anchor)

	return &Section{
		Name:       name,
		Kind:       KindCap,
		Anchor:     p.Anchor,
		Heading:    p.Heading,
		Length:     w,
		Primitives: []shape.Primitive{shape.PolyBulge(pts, capBulges)},
		Endpoints:  NewEndpoints(p.Anchor, p.Anchor),
		Params:     p,
	}
}
