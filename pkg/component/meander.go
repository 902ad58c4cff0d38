package component

import (
	"math"

	"github.com/matzehuels/cpwdesign/pkg/errors"
)

// EndStyle selects how a resonator's meander terminates.
type EndStyle string

const (
	// EndArc closes with a quarter turn so the open end faces +x, then a cap.
	EndArc EndStyle = "arc"
	// EndStraight caps the last meander straight directly.
	EndStraight EndStyle = "straight"
	// EndNone leaves the last meander straight open.
	EndNone EndStyle = "none"
)

// ParseEndStyle validates s as an end style.
func ParseEndStyle(s string) (EndStyle, error) {
	switch e := EndStyle(s); e {
	case EndArc, EndStraight, EndNone:
		return e, nil
	default:
		return "", errors.New(errors.ErrCodeParameter,
			"unknown end style %q (want arc, straight or none)", s)
	}
}

// overhead returns the length of the entry arc plus everything after the last
// meander straight, cap excluded.
func (e EndStyle) overhead(r float64) float64 {
	if e == EndArc {
		return 2 * math.Pi * r
	}
	return 1.5 * math.Pi * r
}

// MaxMeanderIterations bounds the height search.
const MaxMeanderIterations = 1000

// meanderShrink scales the straight height between attempts.
const meanderShrink = 0.95

// MeanderInput is the length budget handed to [SolveMeander].
type MeanderInput struct {
	Length    float64  // target length of the whole resonator
	Used      float64  // length already emitted before the meander
	MaxHeight float64  // vertical span available to the meander
	Radius    float64  // centre-line radius of every turn
	End       EndStyle // termination
	CapLength float64  // bookkeeping length of the end cap, ignored for EndNone
}

// Meander is a solved meander: N+1 straights of Height, the last one
// shortened to LastHeight.
type Meander struct {
	N          int
	Height     float64
	LastHeight float64
	Iterations int
}

// EntryHeight returns the length of the half straight that leads into the
// first meander turn.
func (m Meander) EntryHeight(radius float64) float64 { return m.Height/2 - radius }

// SolveMeander fits the remaining length budget into a meander.
//
// Starting from the tallest straight that fits, the height shrinks by 5% per
// attempt until the remaining budget splits into whole loops plus a final
// straight no taller than the others. Infeasible spans are PARAMETER errors
// and a search that does not settle is a CONVERGENCE error. The search is
// deterministic.
//
// The attempt budget is [MaxMeanderIterations], but the height usually runs
// out first: once it drops below twice the turn radius the entry half
// straight (h/2 - R) would be negative, so the search stops there. For a
// given MaxHeight and Radius that geometric limit is
// 1 + floor(ln(2R / (MaxHeight-2R)) / ln(0.95)) attempts.
func SolveMeander(in MeanderInput) (Meander, error) {
	if err := errors.ValidateFinite("meander input", in.Length, in.Used, in.MaxHeight, in.Radius, in.CapLength); err != nil {
		return Meander{}, err
	}
	if err := errors.ValidatePositive("arc radius", in.Radius); err != nil {
		return Meander{}, err
	}
	if _, err := ParseEndStyle(string(in.End)); err != nil {
		return Meander{}, err
	}
	if in.MaxHeight <= 2.1*in.Radius || in.MaxHeight < 4*in.Radius {
		return Meander{}, errors.New(errors.ErrCodeParameter,
			"max height %g too small for arc radius %g (need at least %g)",
			in.MaxHeight, in.Radius, max(2.1*in.Radius, 4*in.Radius))
	}

	capLen := in.CapLength
	if in.End == EndNone {
		capLen = 0
	}
	r := in.Radius
	h := in.MaxHeight - 2*r

	for it := 1; it <= MaxMeanderIterations; it++ {
		loop := math.Pi*r + h
		budget := in.Length - (in.Used + in.End.overhead(r) + h/2 - r + capLen)
		n := math.Floor(budget / loop)
		if rest := budget - n*loop; n >= 0 && rest <= h {
			return Meander{N: int(n), Height: h, LastHeight: rest, Iterations: it}, nil
		}
		h *= meanderShrink
		if h < 2*r {
			return Meander{}, errors.New(errors.ErrCodeConvergence,
				"no meander fits length %g: straight height fell below 2x arc radius (%g) after %d of %d attempts, the entry straight would be negative",
				in.Length, 2*r, it, MaxMeanderIterations)
		}
	}
	return Meander{}, errors.New(errors.ErrCodeConvergence,
		"no meander fits length %g within %d attempts", in.Length, MaxMeanderIterations)
}
