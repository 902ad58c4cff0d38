package component

import (
	"context"
	"math"
	"testing"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

func feedlineConfig() TransmissionLineConfig {
	return TransmissionLineConfig{
		Base:         Base{Name: "transmission line", Layer: "base", MaxWidth: 5000, MaxHeight: 5000},
		Start:        geom.Pt(5000, 5000),
		End:          geom.Pt(0, 0),
		PadSize:      [2]float64{440, 520},
		PadThickness: 120,
		CPW:          section.CPW{Gap: 4, Width: 7},
		ArcRadius:    100,
		CenterOffset: 400,
	}
}

func TestLeftStepSpan(t *testing.T) {
	p, heading := LeftStep(200, 90).params(geom.Pt(0, 0), 0, section.CPW{Gap: 5, Width: 4})
	arc, ok := p.(section.ArcParams)
	if !ok {
		t.Fatalf("left step built %T, want ArcParams", p)
	}
	if arc.Start != -90 || arc.End != 0 || arc.StraightenOtherEnd {
		t.Errorf("span = (%v, %v) straighten=%t, want (-90, 0) false", arc.Start, arc.End, arc.StraightenOtherEnd)
	}
	if heading != 90 {
		t.Errorf("heading = %v, want 90", heading)
	}
}

func TestRightStepSpan(t *testing.T) {
	p, heading := RightStep(100, 45).params(geom.Pt(0, 0), 90, section.CPW{Gap: 5, Width: 4})
	arc := p.(section.ArcParams)
	if arc.Start != 225 || arc.End != 180 || !arc.StraightenOtherEnd {
		t.Errorf("span = (%v, %v) straighten=%t, want (225, 180) true", arc.Start, arc.End, arc.StraightenOtherEnd)
	}
	if heading != 45 {
		t.Errorf("heading = %v, want 45", heading)
	}
}

func TestStepValidate(t *testing.T) {
	if err := (Step{Kind: "jump"}).Validate(); !errors.Is(err, errors.ErrCodeParameter) {
		t.Errorf("Validate() = %v, want PARAMETER", err)
	}
	for _, s := range []Step{StraightStep(1), LeftStep(1, 1), RightStep(1, 1)} {
		if err := s.Validate(); err != nil {
			t.Errorf("%v: %v", s, err)
		}
	}
}

func TestStandardPath(t *testing.T) {
	path, err := StandardPath(geom.Pt(0, 0), geom.Pt(5000, 5000), 5000, 100, 400)
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{
		RightStep(100, 90),
		StraightStep(1900),
		LeftStep(100, 90),
		StraightStep(4600),
		RightStep(100, 90),
		StraightStep(2700),
		LeftStep(100, 90),
	}
	if len(path) != len(want) {
		t.Fatalf("len(path) = %d, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestStandardPathInfeasible(t *testing.T) {
	tests := []struct {
		name       string
		start, end geom.Point
		width      float64
		offset     float64
	}{
		{"too close horizontally", geom.Pt(0, 0), geom.Pt(100, 5000), 5000, 0},
		{"too close vertically", geom.Pt(0, 0), geom.Pt(5000, 300), 5000, 0},
		{"offset eats first run", geom.Pt(0, 0), geom.Pt(5000, 5000), 5000, 2400},
		{"coincident", geom.Pt(10, 10), geom.Pt(10, 10), 5000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StandardPath(tt.start, tt.end, tt.width, 100, tt.offset)
			if !errors.Is(err, errors.ErrCodeParameter) {
				t.Errorf("StandardPath error = %v, want PARAMETER", err)
			}
		})
	}
}

func TestTransmissionLineDocksBothPads(t *testing.T) {
	tl, err := NewTransmissionLine(feedlineConfig())
	if err != nil {
		t.Fatal(err)
	}
	if tl.Config().Start != geom.Pt(0, 0) {
		t.Errorf("Start not canonical: %v", tl.Config().Start)
	}
	if err := tl.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	secs := tl.Sections()
	if len(secs) != 9 {
		t.Fatalf("len(Sections) = %d, want 9", len(secs))
	}
	for i, name := range []string{LowerLeftPad, UpperRightPad, "cpw element 1", "cpw element 7"} {
		if _, ok := tl.Section(name); !ok {
			t.Errorf("section %d %q missing", i, name)
		}
	}

	end := tl.End()
	if !near(end.Open, geom.Pt(5000, 5000)) {
		t.Errorf("path ends at %v, want (5000,5000)", end.Open)
	}
	if math.Mod(end.Heading, 360) != 90 {
		t.Errorf("final heading = %v, want 90", end.Heading)
	}
	for _, name := range []string{LowerLeftPad, UpperRightPad} {
		pad, _ := tl.Section(name)
		if got := pad.Endpoints.Connected(); len(got) != 1 {
			t.Errorf("%s connected points = %v, want one", name, got)
		}
	}

	// Path length: four quarter turns plus the straights.
	want := 4*50*math.Pi + 1900 + 4600 + 2700
	if math.Abs(tl.ActualLength()-want) > 1e-6 {
		t.Errorf("ActualLength = %v, want %v", tl.ActualLength(), want)
	}
}

func TestTransmissionLineCustomPath(t *testing.T) {
	cfg := feedlineConfig()
	cfg.Path = []Step{StraightStep(500), LeftStep(200, 90)}
	tl, err := NewTransmissionLine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := tl.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	end := tl.End()
	if end.Heading != 180 {
		t.Errorf("heading = %v, want 180", end.Heading)
	}
	if !near(end.Open, geom.Pt(-200, 700)) {
		t.Errorf("open end = %v, want (-200,700)", end.Open)
	}
	pad, _ := tl.Section(UpperRightPad)
	if len(pad.Endpoints.Connected()) != 0 {
		t.Error("far pad docked although the path does not reach it")
	}
}

func TestTransmissionLineBadPathRollsBack(t *testing.T) {
	cfg := feedlineConfig()
	cfg.Path = []Step{StraightStep(100), LeftStep(3, 90)} // radius below half the CPW width
	tl, err := NewTransmissionLine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := tl.Generate(context.Background()); !errors.Is(err, errors.ErrCodeParameter) {
		t.Fatalf("Generate error = %v, want PARAMETER", err)
	}
	if tl.Generated() || len(tl.Sections()) != 0 {
		t.Error("failed generation left sections behind")
	}
}
