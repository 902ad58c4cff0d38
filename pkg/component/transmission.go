package component

import (
	"context"
	"math"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

// Pad section names of a transmission line.
const (
	LowerLeftPad  = "left lower pad"
	UpperRightPad = "right upper pad"
)

// PadAdapterRatio is the adapter length as a fraction of the pad height.
const PadAdapterRatio = 0.25

// TransmissionLineConfig describes a feed line between two bonding pads.
//
// Start and End are the pad mouths; they are reordered canonically so the
// line always runs from the lower-left pad. PadSize is (width, height) of the
// rectangular pad body. When Path is empty a standard S-shaped route is
// derived from the pads, the bounding box, ArcRadius and CenterOffset.
type TransmissionLineConfig struct {
	Base
	Start, End   geom.Point
	PadSize      [2]float64
	PadThickness float64
	CPW          section.CPW
	ArcRadius    float64
	CenterOffset float64
	Path         []Step
}

func (cfg TransmissionLineConfig) Validate() error {
	if err := cfg.Base.Validate(); err != nil {
		return err
	}
	if err := cfg.CPW.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFinite("pad positions", cfg.Start.X, cfg.Start.Y, cfg.End.X, cfg.End.Y); err != nil {
		return err
	}
	if err := errors.ValidateFinite("center offset", cfg.CenterOffset); err != nil {
		return err
	}
	if len(cfg.Path) == 0 {
		if err := errors.ValidatePositive("arc radius", cfg.ArcRadius); err != nil {
			return err
		}
	}
	for i, s := range cfg.Path {
		if err := s.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeParameter, err, "path step %d", i+1)
		}
	}
	return nil
}

// TransmissionLine is a CPW feed line with a bonding pad at each end.
type TransmissionLine struct {
	Component
	cfg  TransmissionLineConfig
	path []Step
	end  PathResult
}

// NewTransmissionLine validates cfg and returns an ungenerated line.
func NewTransmissionLine(cfg TransmissionLineConfig) (*TransmissionLine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Start, cfg.End = geom.CanonicalOrder(cfg.Start, cfg.End)
	base, err := newComponent(cfg.Base, 0)
	if err != nil {
		return nil, err
	}
	return &TransmissionLine{Component: base, cfg: cfg}, nil
}

func (t *TransmissionLine) Kind() string { return "transmission_line" }

// Config returns the construction parameters with Start and End in
// canonical order.
func (t *TransmissionLine) Config() TransmissionLineConfig { return t.cfg }

// Path returns the steps of the last generation.
func (t *TransmissionLine) Path() []Step { return append([]Step(nil), t.path...) }

// End returns where the path stopped and the heading it stopped with.
func (t *TransmissionLine) End() PathResult { return t.end }

// Generate builds both pads and the route between them. The route ends
// docked to the upper-right pad when it reaches it; otherwise the gap is
// logged as a warning.
func (t *TransmissionLine) Generate(ctx context.Context) error {
	return t.generate(ctx, t.Kind(), t.build)
}

func (t *TransmissionLine) build() error {
	padW, padH := t.cfg.PadSize[0], t.cfg.PadSize[1]
	pad := func(name string, anchor geom.Point, heading float64) (*section.Section, error) {
		s, err := section.Build(name, section.PadParams{
			Anchor:        anchor,
			Heading:       heading,
			Width:         padW,
			Height:        padH,
			Thickness:     t.cfg.PadThickness,
			AdapterLength: PadAdapterRatio * padH,
			CPW:           t.cfg.CPW,
		})
		if err != nil {
			return nil, err
		}
		return s, t.AddSection(s)
	}

	ll, err := pad(LowerLeftPad, t.cfg.Start, 90)
	if err != nil {
		return err
	}
	ru, err := pad(UpperRightPad, t.cfg.End, 270)
	if err != nil {
		return err
	}

	path := t.cfg.Path
	if len(path) == 0 {
		if path, err = StandardPath(t.cfg.Start, t.cfg.End, t.MaxWidth(), t.cfg.ArcRadius, t.cfg.CenterOffset); err != nil {
			return err
		}
	}
	t.path = path

	res, err := t.interpret(ll, ll.Endpoints.RightUpper, ll.Heading, path, t.cfg.CPW, "cpw element")
	if err != nil {
		return err
	}
	t.end = res

	gap := geom.Distance(res.Open, ru.Endpoints.LeftLower)
	if gap > section.DefaultTolerance {
		t.logger.Warn("path does not reach the end pad",
			"component", t.Name(), "open_end", res.Open, "pad", t.cfg.End, "gap", gap)
		return nil
	}
	last := t.sections[len(t.sections)-1]
	if err := last.Endpoints.Connect(res.Open, section.DefaultTolerance); err != nil {
		return errors.Wrap(errors.ErrCodeConnection, err, "dock path to %q", UpperRightPad)
	}
	if err := ru.Endpoints.Connect(res.Open, section.DefaultTolerance); err != nil {
		return errors.Wrap(errors.ErrCodeConnection, err, "dock %q", UpperRightPad)
	}
	return nil
}

// StandardPath derives the S-shaped route from a lower-left pad facing up to
// an upper-right pad facing down: a right turn, a run towards the box centre
// line (less offset), a left turn up, a vertical run, the mirror image on the
// other side of the centre line.
//
// The route ends on end when end.X = maxWidth - start.X, which holds for pads
// placed symmetrically in the box.
func StandardPath(start, end geom.Point, maxWidth, radius, offset float64) ([]Step, error) {
	start, end = geom.CanonicalOrder(start, end)
	dist := end.Sub(start)
	r2 := 2 * radius

	if err := errors.ValidatePositive("arc radius", radius); err != nil {
		return nil, err
	}
	if math.Abs(dist.X) < r2 && !isClose(dist.X, 0) {
		return nil, errors.New(errors.ErrCodeParameter,
			"pads %g apart horizontally, need 0 or at least %g", dist.X, r2)
	}
	if math.Abs(dist.Y) < r2 && !isClose(dist.Y, 0) {
		return nil, errors.New(errors.ErrCodeParameter,
			"pads %g apart vertically, need 0 or at least %g", dist.Y, r2)
	}
	if isClose(dist.X+dist.Y, 0) {
		return nil, errors.New(errors.ErrCodeParameter, "pads at %v and %v coincide", start, end)
	}

	cx := maxWidth/2 - start.X
	if cx-offset <= r2 {
		return nil, errors.New(errors.ErrCodeParameter,
			"no room for the first run: %g to the centre line minus offset %g must exceed %g", cx, offset, r2)
	}
	vertical := math.Abs(dist.Y) - 2*r2
	if vertical < 0 {
		return nil, errors.New(errors.ErrCodeParameter,
			"pads %g apart vertically, four turns need %g", math.Abs(dist.Y), 2*r2)
	}
	if cx+offset-r2 < 0 {
		return nil, errors.New(errors.ErrCodeParameter,
			"center offset %g leaves no room for the last run", offset)
	}
	return []Step{
		RightStep(radius, 90),
		StraightStep(cx - offset - r2),
		LeftStep(radius, 90),
		StraightStep(vertical),
		RightStep(radius, 90),
		StraightStep(cx + offset - r2),
		LeftStep(radius, 90),
	}, nil
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}
