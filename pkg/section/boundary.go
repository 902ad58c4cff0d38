package section

import (
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// BoundaryParams describes a die frame of outer size Width x Height whose
// lower-left outer corner sits on Anchor.
type BoundaryParams struct {
	Anchor    geom.Point
	Width     float64
	Height    float64
	Thickness float64
}

func (BoundaryParams) Kind() Kind { return KindBoundary }

func (p BoundaryParams) moved(d geom.Point) Params {
	p.Anchor = p.Anchor.Add(d).Round()
	return p
}

func (p BoundaryParams) Validate() error {
	if err := errors.ValidateFinite("anchor", p.Anchor.X, p.Anchor.Y); err != nil {
		return err
	}
	if err := errors.ValidatePositive("boundary width", p.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("boundary height", p.Height); err != nil {
		return err
	}
	if err := errors.ValidatePositive("boundary thickness", p.Thickness); err != nil {
		return err
	}
	if 2*p.Thickness >= min(p.Width, p.Height) {
		return errors.New(errors.ErrCodeParameter,
			"boundary thickness %g closes a %gx%g outline", p.Thickness, p.Width, p.Height)
	}
	return nil
}

// build emits two L-shaped loops: bottom edge plus left side, and right side
// plus top edge.
func (p BoundaryParams) build(name string) *Section {
	w, h, t := p.Width, p.Height, p.Thickness

	lowerLeft := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(w-t, 0),
		geom.Pt(w-t, t),
		geom.Pt(t, t),
		geom.Pt(t, h),
		geom.Pt(0, h),
	}
	upperRight := []geom.Point{
		geom.Pt(w-t, 0),
		geom.Pt(w, 0),
		geom.Pt(w, h),
		geom.Pt(t, h),
		geom.Pt(t, h-t),
		geom.Pt(w-t, h-t),
	}

	return &Section{
		Name:   name,
		Kind:   KindBoundary,
		Anchor: p.Anchor,
		Primitives: []shape.Primitive{
			shape.Polyline(geom.Translate(lowerLeft, p.Anchor)),
			shape.Polyline(geom.Translate(upperRight, p.Anchor)),
		},
		Params: p,
	}
}
