package component

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
	"github.com/matzehuels/cpwdesign/pkg/section"
)

// StepKind is the instruction of one path step.
type StepKind string

const (
	StepStraight StepKind = "straight"
	StepLeft     StepKind = "left"
	StepRight    StepKind = "right"
)

// Step is one instruction of a CPW path. Straight steps use Length; turns use
// Radius and Angle (degrees, the amount the heading changes).
type Step struct {
	Kind   StepKind `toml:"kind" json:"kind"`
	Length float64  `toml:"length,omitempty" json:"length,omitempty"`
	Radius float64  `toml:"radius,omitempty" json:"radius,omitempty"`
	Angle  float64  `toml:"angle,omitempty" json:"angle,omitempty"`
}

// StraightStep returns a straight run of length.
func StraightStep(length float64) Step { return Step{Kind: StepStraight, Length: length} }

// LeftStep returns a counterclockwise turn.
func LeftStep(radius, angle float64) Step { return Step{Kind: StepLeft, Radius: radius, Angle: angle} }

// RightStep returns a clockwise turn.
func RightStep(radius, angle float64) Step { return Step{Kind: StepRight, Radius: radius, Angle: angle} }

func (s Step) String() string {
	switch s.Kind {
	case StepStraight:
		return fmt.Sprintf("straight %g", s.Length)
	case StepLeft, StepRight:
		return fmt.Sprintf("%s %g° r=%g", s.Kind, s.Angle, s.Radius)
	default:
		return string(s.Kind)
	}
}

// Validate checks the step kind. Geometry is validated by the section it
// produces.
func (s Step) Validate() error {
	switch StepKind(strings.ToLower(string(s.Kind))) {
	case StepStraight, StepLeft, StepRight:
		return nil
	default:
		return errors.New(errors.ErrCodeParameter,
			"unknown path step %q (want straight, left or right)", s.Kind)
	}
}

// params returns the section for s at the running anchor and heading, plus
// the heading after it.
func (s Step) params(at geom.Point, heading float64, cpw section.CPW) (section.Params, float64) {
	switch StepKind(strings.ToLower(string(s.Kind))) {
	case StepLeft:
		return section.ArcParams{
			Anchor: at,
			Radius: s.Radius,
			Start:  heading - 90,
			End:    heading + s.Angle - 90,
			CPW:    cpw,
		}, heading + s.Angle
	case StepRight:
		return section.ArcParams{
			Anchor:             at,
			Radius:             s.Radius,
			Start:              heading + s.Angle + 90,
			End:                heading + 90,
			StraightenOtherEnd: true,
			CPW:                cpw,
		}, heading - s.Angle
	default:
		return section.StraightParams{Anchor: at, Heading: heading, Length: s.Length, CPW: cpw}, heading
	}
}

// PathResult is the state of the interpreter after the last step.
type PathResult struct {
	Open    geom.Point
	Heading float64
}

// interpret emits one section per step, each docked to the previous one,
// starting at the docking point at of prev with the given heading. Sections
// are named "<prefix> <n>" counting from 1.
func (c *Component) interpret(prev *section.Section, at geom.Point, heading float64, steps []Step, cpw section.CPW, prefix string) (PathResult, error) {
	ch := c.startChain(prev, at)
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return PathResult{}, errors.Wrap(errors.ErrCodeParameter, err, "path step %d", i+1)
		}
		var next float64
		_, err := ch.next(fmt.Sprintf("%s %d", prefix, i+1), func(anchor geom.Point) section.Params {
			p, h := step.params(anchor, heading, cpw)
			next = h
			return p
		})
		if err != nil {
			return PathResult{}, err
		}
		heading = next
	}
	return PathResult{Open: ch.at, Heading: heading}, nil
}
