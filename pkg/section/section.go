// Package section builds the geometric building blocks of a CPW layout.
//
// A [Section] is one straight run, arc turn, end cap, bonding pad or die
// boundary. Sections are created through [Build] from a parameter value that
// selects the variant:
//
//	s, err := section.Build("feed 1", section.StraightParams{
//	    Heading: 90,
//	    Length:  250,
//	    CPW:     section.CPW{Gap: 4, Width: 7},
//	})
//
// Builders are pure: they compute the primitives and docking points from their
// parameters and never touch a renderer. Angles at this boundary are degrees.
//
// Infeasible parameters are reported as PARAMETER errors. A section whose
// parameters pass validation always builds.
package section

import (
	"fmt"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// Kind identifies the section variant.
type Kind string

const (
	KindStraight Kind = "straight"
	KindArc      Kind = "arc"
	KindCap      Kind = "cap"
	KindPad      Kind = "pad"
	KindBoundary Kind = "boundary"
)

// CPW holds the cross-section of a coplanar waveguide: the conductor width and
// the gap on either side of it.
type CPW struct {
	Gap   float64 `toml:"gap" json:"gap"`
	Width float64 `toml:"width" json:"width"`
}

// HalfWidth returns half of the full CPW width, gap to gap.
func (c CPW) HalfWidth() float64 { return 0.5*c.Width + c.Gap }

// Validate checks that the conductor has a positive width and the gap is not
// negative.
func (c CPW) Validate() error {
	if err := errors.ValidatePositive("cpw width", c.Width); err != nil {
		return err
	}
	return errors.ValidateNonNegative("cpw gap", c.Gap)
}

// Section is a built piece of layout geometry.
//
// Primitives are ordered as the builder emitted them. Endpoints is nil for
// sections that cannot be docked to (boundaries).
type Section struct {
	Name       string
	Kind       Kind
	Anchor     geom.Point
	Heading    float64 // degrees, informational
	Length     float64 // 0 for sections that carry no line length
	Primitives []shape.Primitive
	Endpoints  *Endpoints
	Params     Params
}

// Params is implemented by the parameter type of every section variant.
// The anchor a section's Params carry follows the section when it is
// translated.
type Params interface {
	Kind() Kind
	Validate() error
	build(name string) *Section
	moved(d geom.Point) Params
}

// Build validates name and p and builds the section p describes.
func Build(name string, p Params) (*Section, error) {
	if err := errors.ValidateName("section", name); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParameter, err, "%s section %q", p.Kind(), name)
	}
	return p.build(name), nil
}

// Translate shifts every primitive, the anchor, the parameters and the
// docking points by d. Connection state is preserved.
func (s *Section) Translate(d geom.Point) {
	s.Anchor = s.Anchor.Add(d).Round()
	for i, p := range s.Primitives {
		s.Primitives[i] = p.Translate(d)
	}
	if s.Endpoints != nil {
		s.Endpoints.translate(d)
	}
	if s.Params != nil {
		s.Params = s.Params.moved(d)
	}
}

// Clone returns a deep copy of s. The copy shares no primitives or
// endpoints with s.
func (s *Section) Clone() *Section {
	out := *s
	out.Primitives = make([]shape.Primitive, len(s.Primitives))
	for i, p := range s.Primitives {
		out.Primitives[i] = p.Clone()
	}
	if s.Endpoints != nil {
		ep := *s.Endpoints
		out.Endpoints = &ep
	}
	return &out
}

// Bounds returns the bounding box of all primitives.
func (s *Section) Bounds() shape.Rect {
	r := shape.EmptyRect()
	for _, p := range s.Primitives {
		r = r.Union(p.Bounds())
	}
	return r
}

func (s *Section) String() string {
	if s.Endpoints == nil {
		return fmt.Sprintf("%s: anchor=%v", s.Name, s.Anchor)
	}
	return fmt.Sprintf("%s: anchor=%v, endpoints: %v", s.Name, s.Anchor, s.Endpoints)
}

// transform rotates pts by heading degrees and shifts them by anchor.
func transform(pts []geom.Point, heading float64, anchor geom.Point) []geom.Point {
	return geom.Translate(geom.RotatePoints(pts, geom.Rad(heading)), anchor)
}
