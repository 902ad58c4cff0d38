package component

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/observability"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

// LengthTolerance is the largest |actual-target| a resonator accepts without
// a warning.
const LengthTolerance = 1e-6

// ResonatorConfig describes a meandered quarter-wave resonator.
//
// The resonator starts with a straight coupler running down from the anchor,
// turns right into a spacer straight and then folds the remaining length into
// a meander no taller than MaxHeight.
type ResonatorConfig struct {
	Base
	Length         float64
	CPW            section.CPW
	ArcRadius      float64
	CouplingLength float64
	CouplingSpacer float64
	End            EndStyle
}

// Validate checks the resonator parameters that do not depend on the search.
func (cfg ResonatorConfig) Validate() error {
	if err := cfg.Base.Validate(); err != nil {
		return err
	}
	if err := cfg.CPW.Validate(); err != nil {
		return err
	}
	if err := errors.ValidatePositive("length", cfg.Length); err != nil {
		return err
	}
	if err := errors.ValidatePositive("arc radius", cfg.ArcRadius); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("coupling length", cfg.CouplingLength); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("coupling spacer", cfg.CouplingSpacer); err != nil {
		return err
	}
	if _, err := ParseEndStyle(string(cfg.End)); err != nil {
		return err
	}
	if cfg.MaxHeight <= 2.1*cfg.ArcRadius || cfg.MaxHeight < 4*cfg.ArcRadius {
		return errors.New(errors.ErrCodeParameter,
			"max height %g too small for arc radius %g", cfg.MaxHeight, cfg.ArcRadius)
	}
	return nil
}

// Resonator is a meandered CPW resonator.
type Resonator struct {
	Component
	cfg     ResonatorConfig
	meander Meander
}

// NewResonator validates cfg and returns an ungenerated resonator.
func NewResonator(cfg ResonatorConfig) (*Resonator, error) {
	if cfg.End == "" {
		cfg.End = EndArc
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := newComponent(cfg.Base, cfg.Length)
	if err != nil {
		return nil, err
	}
	return &Resonator{Component: base, cfg: cfg}, nil
}

func (r *Resonator) Kind() string { return "resonator" }

// Config returns the construction parameters.
func (r *Resonator) Config() ResonatorConfig { return r.cfg }

// Meander returns the solved meander of the last successful generation.
func (r *Resonator) Meander() Meander { return r.meander }

// Generate builds coupler, spacer, meander and termination.
func (r *Resonator) Generate(ctx context.Context) error {
	r.meander = Meander{}
	err := r.generate(ctx, r.Kind(), func() error {
		m, err := r.build(ctx)
		if err != nil {
			return err
		}
		r.meander = m
		return nil
	})
	if err != nil {
		return err
	}

	if d := r.Mismatch(); math.Abs(d) > LengthTolerance {
		r.logger.Warn("length mismatch", "component", r.Name(), "actual-target", d)
	}
	if b := r.Bounds(); b.Width() > r.MaxWidth() {
		r.logger.Warn("meander exceeds max width",
			"component", r.Name(), "width", b.Width(), "max_width", r.MaxWidth())
	}
	return nil
}

func (r *Resonator) build(ctx context.Context) (Meander, error) {
	cpw, rad := r.cfg.CPW, r.cfg.ArcRadius

	coupler, err := section.Build("transmission line coupler", section.StraightParams{
		Heading: 270,
		Length:  r.cfg.CouplingLength,
		CPW:     cpw,
	})
	if err != nil {
		return Meander{}, err
	}
	if err := r.AddSection(coupler); err != nil {
		return Meander{}, err
	}

	// The coupler runs down from the origin, so its far end sorts first.
	ch := r.startChain(coupler, coupler.Endpoints.LeftLower)
	arc := func(start, end float64) func(geom.Point) section.Params {
		return func(at geom.Point) section.Params {
			return section.ArcParams{Anchor: at, Radius: rad, Start: start, End: end, CPW: cpw}
		}
	}
	straight := func(heading, length float64) func(geom.Point) section.Params {
		return func(at geom.Point) section.Params {
			return section.StraightParams{Anchor: at, Heading: heading, Length: length, CPW: cpw}
		}
	}

	if _, err := ch.next("spacer arc", arc(180, 270)); err != nil {
		return Meander{}, err
	}
	if _, err := ch.next("spacer straight", straight(0, r.cfg.CouplingSpacer)); err != nil {
		return Meander{}, err
	}

	m, err := SolveMeander(MeanderInput{
		Length:    r.cfg.Length,
		Used:      r.ActualLength(),
		MaxHeight: r.cfg.MaxHeight,
		Radius:    rad,
		End:       r.cfg.End,
		CapLength: cpw.Width,
	})
	observability.Layout().OnMeanderSearch(ctx, r.Name(), m.Iterations, err == nil)
	if err != nil {
		return Meander{}, err
	}
	r.logger.Debug("meander solved",
		"component", r.Name(),
		"segments", m.N,
		"height", m.Height,
		"last_height", m.LastHeight,
		"iterations", m.Iterations)

	if _, err := ch.next("meander entry arc", arc(270, 360)); err != nil {
		return Meander{}, err
	}
	if _, err := ch.next("meander entry straight", straight(90, m.EntryHeight(rad))); err != nil {
		return Meander{}, err
	}

	for i := 0; i <= m.N; i++ {
		start, end, heading := 180.0, 0.0, 270.0
		if i%2 == 1 {
			end, heading = 360, 90
		}
		height := m.Height
		if i == m.N {
			height = m.LastHeight
		}
		if _, err := ch.next(fmt.Sprintf("segment arc %d", i+1), arc(start, end)); err != nil {
			return Meander{}, err
		}
		if _, err := ch.next(fmt.Sprintf("segment straight %d", i+1), straight(heading, height)); err != nil {
			return Meander{}, err
		}
	}

	even := m.N%2 == 0
	capHeading := 90.0
	if even {
		capHeading = 270
	}

	switch r.cfg.End {
	case EndArc:
		end := 90.0
		if even {
			end = 270
		}
		if _, err := ch.next("final arc", arc(180, end)); err != nil {
			return Meander{}, err
		}
		capHeading = 0
	case EndNone:
		return m, nil
	}

	_, err = ch.next("end cap", func(at geom.Point) section.Params {
		return section.CapParams{Anchor: at, Heading: capHeading, CPW: cpw}
	})
	return m, err
}
