package component

import (
	"context"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

// SampleOutlineConfig describes the die frame. The frame fills the bounding
// box of Base.
type SampleOutlineConfig struct {
	Base
	Thickness float64
}

// SampleOutline is a border of finite thickness along the sample edge.
type SampleOutline struct {
	Component
	thickness float64
}

// NewSampleOutline validates cfg and returns an ungenerated outline.
func NewSampleOutline(cfg SampleOutlineConfig) (*SampleOutline, error) {
	if err := errors.ValidatePositive("thickness", cfg.Thickness); err != nil {
		return nil, err
	}
	base, err := newComponent(cfg.Base, 0)
	if err != nil {
		return nil, err
	}
	return &SampleOutline{Component: base, thickness: cfg.Thickness}, nil
}

func (o *SampleOutline) Kind() string { return "outline" }

// Thickness returns the frame thickness.
func (o *SampleOutline) Thickness() float64 { return o.thickness }

// Generate builds the frame at the origin; the shared envelope moves it to
// the anchor.
func (o *SampleOutline) Generate(ctx context.Context) error {
	return o.generate(ctx, o.Kind(), func() error {
		s, err := section.Build("sample border", section.BoundaryParams{
			Width:     o.MaxWidth(),
			Height:    o.MaxHeight(),
			Thickness: o.thickness,
		})
		if err != nil {
			return err
		}
		return o.AddSection(s)
	})
}
