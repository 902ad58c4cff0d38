package section

import (
	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// PadParams describes a rectangular bonding pad with a funnel adapter that
// narrows down to the CPW cross-section.
//
// Anchor is the centre of the adapter mouth, where the CPW docks. Heading is
// the direction the mouth faces: 90 puts the pad below the anchor.
type PadParams struct {
	Anchor        geom.Point
	Heading       float64
	Height        float64
	Width         float64
	Thickness     float64
	AdapterLength float64
	CPW           CPW
}

func (PadParams) Kind() Kind { return KindPad }

func (p PadParams) moved(d geom.Point) Params {
	p.Anchor = p.Anchor.Add(d).Round()
	return p
}

func (p PadParams) Validate() error {
	if err := p.CPW.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFinite("anchor", p.Anchor.X, p.Anchor.Y); err != nil {
		return err
	}
	if err := errors.ValidateFinite("pad heading", p.Heading); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pad height", p.Height},
		{"pad width", p.Width},
		{"pad thickness", p.Thickness},
	} {
		if err := errors.ValidatePositive(f.name, f.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateNonNegative("pad adapter length", p.AdapterLength); err != nil {
		return err
	}
	if 2*p.Thickness >= p.Width || p.Thickness >= p.Height {
		return errors.New(errors.ErrCodeParameter,
			"pad thickness %g leaves no opening in a %gx%g pad", p.Thickness, p.Width, p.Height)
	}
	if 2*p.CPW.HalfWidth() >= p.Width-2*p.Thickness {
		return errors.New(errors.ErrCodeParameter,
			"CPW width %g does not fit the pad opening %g", 2*p.CPW.HalfWidth(), p.Width-2*p.Thickness)
	}
	return nil
}

// build lays the pad out with its mouth facing +y, then rotates it by
// Heading-90 and shifts it so the mouth centre lands on Anchor.
func (p PadParams) build(name string) *Section {
	w, g := p.CPW.Width, p.CPW.Gap
	t := p.Thickness
	top := p.Height + p.AdapterLength

	leftMouth := []geom.Point{
		geom.Pt(p.Width/2-w/2, top),
		geom.Pt(p.Width/2-w/2-g, top),
	}
	rightMouth := geom.Translate(leftMouth, geom.Pt(w+g, 0))

	left := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(t, 0),
		geom.Pt(t, p.Height),
		leftMouth[0],
		leftMouth[1],
		geom.Pt(0, p.Height),
	}
	right := []geom.Point{
		geom.Pt(t, 0),
		geom.Pt(p.Width, 0),
		geom.Pt(p.Width, p.Height),
		rightMouth[0],
		rightMouth[1],
		geom.Pt(p.Width-t, p.Height),
		geom.Pt(p.Width-t, t),
		geom.Pt(t, t),
	}

	rot := geom.Rad(p.Heading - 90)
	left = geom.RotatePoints(left, rot)
	right = geom.RotatePoints(right, rot)

	shift := p.Anchor.Sub(geom.Midpoint(left[3], right[4]))
	left = geom.Translate(left, shift)
	right = geom.Translate(right, shift)

	return &Section{
		Name:       name,
		Kind:       KindPad,
		Anchor:     p.Anchor,
		Heading:    p.Heading,
		Primitives: []shape.Primitive{shape.Polyline(left), shape.Polyline(right)},
		Endpoints:  NewEndpoints(p.Anchor, p.Anchor),
		Params:     p,
	}
}
