package section

import (
	"math"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// StraightParams describes a straight CPW run starting at Anchor and pointing
// along Heading (degrees). A negative Length is taken by magnitude.
type StraightParams struct {
	Anchor  geom.Point
	Heading float64
	Length  float64
	CPW     CPW
}

func (StraightParams) Kind() Kind { return KindStraight }

func (p StraightParams) moved(d geom.Point) Params {
	p.Anchor = p.Anchor.Add(d).Round()
	return p
}

func (p StraightParams) Validate() error {
	if err := p.CPW.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFinite("anchor", p.Anchor.X, p.Anchor.Y); err != nil {
		return err
	}
	return errors.ValidateFinite("straight heading/length", p.Heading, p.Length)
}

// build emits the two gap rectangles. Built along +x the lower one spans
// y in [-half, -half+gap] and the upper one sits a conductor width above it.
func (p StraightParams) build(name string) *Section {
	length := math.Abs(p.Length)
	half := p.CPW.HalfWidth()
	gap := p.CPW.Gap

	lower := []geom.Point{
		geom.Pt(0, -half),
		geom.Pt(length, -half),
		geom.Pt(length, gap-half),
		geom.Pt(0, gap-half),
	}
	upper := geom.Translate(lower, geom.Pt(0, p.CPW.Width+gap))

	lower = transform(lower, p.Heading, p.Anchor)
	upper = transform(upper, p.Heading, p.Anchor)

	return &Section{
		Name:       name,
		Kind:       KindStraight,
		Anchor:     p.Anchor,
		Heading:    p.Heading,
		Length:     length,
		Primitives: []shape.Primitive{shape.Polyline(lower), shape.Polyline(upper)},
		Endpoints: NewEndpoints(
			geom.Midpoint(lower[0], upper[3]).Round(),
			geom.Midpoint(lower[1], upper[2]).Round(),
		),
		Params: p,
	}
}
