// Package component assembles sections into complete layout structures.
//
// A component owns an ordered list of sections, a running length total and a
// queue of deferred mirror transforms. Concrete components ([Resonator],
// [TransmissionLine], [SampleOutline]) embed [Component] and fill it in their
// Generate method:
//
//	res, err := component.NewResonator(component.ResonatorConfig{...})
//	if err != nil {
//	    return err
//	}
//	if err := res.Generate(ctx); err != nil {
//	    return err // component is empty again
//	}
//	res.Mirror(90)
//	err = res.Draw(ctx, canvas)
//
// Generation is all or nothing: on failure every section built so far is
// discarded and the length total is reset. Once generated, sections are
// immutable and [Component.Sections] hands out copies. Only the mirror queue
// may change, and it is applied at draw time.
package component

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/observability"
	"github.com/matzehuels/cpwdesign/pkg/section"
	"github.com/matzehuels/cpwdesign/pkg/shape"
)

// Handle identifies a primitive held by a [Renderer].
type Handle string

// Renderer is the drawing collaborator. Draw places a primitive on a layer
// and returns a handle for it; Clear removes a primitive again.
type Renderer interface {
	Draw(p shape.Primitive, layer string) (Handle, error)
	Clear(h Handle) error
}

// Generator is implemented by every concrete component.
type Generator interface {
	Name() string
	Layer() string
	Kind() string
	Generate(ctx context.Context) error
	Generated() bool
	Sections() []*section.Section
	ActualLength() float64
	Bounds() shape.Rect
	Views() []shape.Primitive
	Mirror(angle float64)
	SetLogger(l *log.Logger)
	Draw(ctx context.Context, r Renderer) error
}

// Base holds the parameters every component shares.
type Base struct {
	Name      string
	Layer     string
	MaxWidth  float64
	MaxHeight float64
	Anchor    geom.Point
}

// Validate checks names and the bounding box.
func (b Base) Validate() error {
	if err := errors.ValidateName("component", b.Name); err != nil {
		return err
	}
	if err := errors.ValidateName("layer", b.Layer); err != nil {
		return err
	}
	if err := errors.ValidatePositive("max width", b.MaxWidth); err != nil {
		return err
	}
	if err := errors.ValidatePositive("max height", b.MaxHeight); err != nil {
		return err
	}
	return errors.ValidateFinite("anchor", b.Anchor.X, b.Anchor.Y)
}

// MirrorOp is a queued reflection about the line through Origin at Axis
// degrees.
type MirrorOp struct {
	Origin geom.Point
	Axis   float64
}

// Component is the shared section bookkeeping of all components.
type Component struct {
	base   Base
	target float64
	actual float64

	sections []*section.Section
	index    map[string]int
	mirrors  []MirrorOp

	generated bool
	logger    *log.Logger
}

func newComponent(b Base, target float64) (Component, error) {
	if err := b.Validate(); err != nil {
		return Component{}, err
	}
	return Component{
		base:   b,
		target: target,
		index:  make(map[string]int),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}, nil
}

// SetLogger sets the logger used for generation progress and warnings.
// A nil logger discards output.
func (c *Component) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(io.Discard, log.Options{})
	}
	c.logger = l
}

func (c *Component) Name() string       { return c.base.Name }
func (c *Component) Layer() string      { return c.base.Layer }
func (c *Component) Anchor() geom.Point { return c.base.Anchor }
func (c *Component) MaxWidth() float64  { return c.base.MaxWidth }
func (c *Component) MaxHeight() float64 { return c.base.MaxHeight }

// TargetLength returns the requested line length, 0 for components that do
// not aim for one.
func (c *Component) TargetLength() float64 { return c.target }

// ActualLength returns the summed length of all sections.
func (c *Component) ActualLength() float64 { return c.actual }

// Mismatch returns actual minus target length.
func (c *Component) Mismatch() float64 { return c.actual - c.target }

// Generated reports whether generation completed.
func (c *Component) Generated() bool { return c.generated }

// Sections returns copies of the sections in generation order. Changing a
// copy leaves the component untouched.
func (c *Component) Sections() []*section.Section {
	out := make([]*section.Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.Clone()
	}
	return out
}

// Section returns a copy of the named section.
func (c *Component) Section(name string) (*section.Section, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.sections[i].Clone(), true
}

// AddSection appends s and adds its length to the running total. Duplicate
// names are rejected, as is any change after generation.
func (c *Component) AddSection(s *section.Section) error {
	if c.generated {
		return errors.New(errors.ErrCodeParameter,
			"component %q is generated, sections are immutable", c.base.Name)
	}
	if _, dup := c.index[s.Name]; dup {
		return errors.New(errors.ErrCodeParameter,
			"duplicate section name %q in component %q", s.Name, c.base.Name)
	}
	c.index[s.Name] = len(c.sections)
	c.sections = append(c.sections, s)
	c.actual += s.Length
	return nil
}

// Move shifts the component anchor and every section built so far. The
// geometry of a generated component cannot move.
func (c *Component) Move(shift geom.Point) error {
	if c.generated {
		return errors.New(errors.ErrCodeParameter,
			"component %q is generated, sections are immutable", c.base.Name)
	}
	if err := errors.ValidateFinite("shift", shift.X, shift.Y); err != nil {
		return err
	}
	c.base.Anchor = c.base.Anchor.Add(shift).Round()
	c.translate(shift)
	return nil
}

func (c *Component) translate(shift geom.Point) {
	for _, s := range c.sections {
		s.Translate(shift)
	}
}

// Mirror queues a reflection about the axis through the component anchor at
// angle degrees from the x axis.
func (c *Component) Mirror(angle float64) {
	c.mirrors = append(c.mirrors, MirrorOp{Origin: c.base.Anchor, Axis: angle})
}

// Mirrors returns the queued reflections in application order.
func (c *Component) Mirrors() []MirrorOp {
	return append([]MirrorOp(nil), c.mirrors...)
}

// ClearMirrors empties the queue so the next draw shows the unmirrored view.
func (c *Component) ClearMirrors() { c.mirrors = nil }

// Bounds returns the bounding box of the unmirrored geometry.
func (c *Component) Bounds() shape.Rect {
	r := shape.EmptyRect()
	for _, s := range c.sections {
		r = r.Union(s.Bounds())
	}
	return r
}

// Draw hands every primitive to r on the component's layer.
//
// With mirrors queued each primitive is drawn, then every reflection is drawn
// from the previous view and the previous handle cleared, so only the final
// view remains in r.
func (c *Component) Draw(ctx context.Context, r Renderer) error {
	if !c.generated {
		return errors.New(errors.ErrCodeNotGenerated, "component %q not generated yet", c.base.Name)
	}
	for _, s := range c.sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, p := range s.Primitives {
			h, err := r.Draw(p.Clone(), c.base.Layer)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "draw %s/%s[%d]", c.base.Name, s.Name, i)
			}

			view := p
			for _, m := range c.mirrors {
				view = view.Mirror(m.Origin, geom.Rad(m.Axis))
				next, err := r.Draw(view, c.base.Layer)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "draw mirrored %s/%s[%d]", c.base.Name, s.Name, i)
				}
				if err := r.Clear(h); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "clear %s/%s[%d]", c.base.Name, s.Name, i)
				}
				h = next
			}
		}
	}
	return nil
}

// Views returns the primitives as Draw would leave them: every queued mirror
// applied.
func (c *Component) Views() []shape.Primitive {
	var out []shape.Primitive
	for _, s := range c.sections {
		for _, p := range s.Primitives {
			for _, m := range c.mirrors {
				p = p.Mirror(m.Origin, geom.Rad(m.Axis))
			}
			out = append(out, p)
		}
	}
	return out
}

func (c *Component) rollback() {
	c.sections = nil
	c.index = make(map[string]int)
	c.actual = 0
	c.generated = false
}

// generate runs build inside the all-or-nothing envelope shared by every
// component: a previous result is discarded, a failed build rolls back and
// the geometry is shifted to the anchor on success.
func (c *Component) generate(ctx context.Context, kind string, build func() error) error {
	hooks := observability.Layout()
	hooks.OnGenerateStart(ctx, c.base.Name, kind)
	start := time.Now()

	c.rollback()
	err := build()
	if err != nil {
		c.rollback()
		c.logger.Error("generation failed", "component", c.base.Name, "err", err)
		hooks.OnGenerateComplete(ctx, c.base.Name, 0, time.Since(start), err)
		return err
	}

	c.translate(c.base.Anchor)
	c.generated = true
	c.logger.Info("generated",
		"component", c.base.Name,
		"sections", len(c.sections),
		"length", c.actual,
		"duration", time.Since(start))
	hooks.OnGenerateComplete(ctx, c.base.Name, len(c.sections), time.Since(start), nil)
	return nil
}

// chain appends sections that dock end to end through the connection
// protocol.
type chain struct {
	c    *Component
	prev *section.Section
	at   geom.Point
}

// startChain continues from the docking point at of prev. prev must already
// be part of the component.
func (c *Component) startChain(prev *section.Section, at geom.Point) *chain {
	return &chain{c: c, prev: prev, at: at}
}

// next builds a section at the running anchor, docks it to the previous
// section and advances the anchor to the new section's open end.
func (ch *chain) next(name string, build func(anchor geom.Point) section.Params) (*section.Section, error) {
	s, err := section.Build(name, build(ch.at))
	if err != nil {
		return nil, err
	}
	if err := ch.prev.Endpoints.Connect(ch.at, section.DefaultTolerance); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, err, "dock %q to %q", name, ch.prev.Name)
	}
	if err := s.Endpoints.Connect(ch.at, section.DefaultTolerance); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, err, "dock %q at %v", name, ch.at)
	}
	if err := ch.c.AddSection(s); err != nil {
		return nil, err
	}
	open, err := s.Endpoints.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnection, err, "continue after %q", name)
	}
	ch.prev, ch.at = s, open
	return s, nil
}
