package section

import (
	"fmt"

	"github.com/matzehuels/cpwdesign/pkg/errors"
	"github.com/matzehuels/cpwdesign/pkg/geom"
)

// DefaultTolerance is the docking distance used when callers do not pass
// their own.
const DefaultTolerance = 1e-3

// Endpoints holds the two docking points of a section.
//
// The points are canonically ordered on construction (see
// [geom.CanonicalOrder]). Each carries its own connected flag, which flips
// from false to true at most once.
type Endpoints struct {
	LeftLower  geom.Point
	RightUpper geom.Point

	connectedLL bool
	connectedRU bool
}

// NewEndpoints returns an unconnected pair ordered as (left-lower, right-upper).
func NewEndpoints(a, b geom.Point) *Endpoints {
	ll, ru := geom.CanonicalOrder(a, b)
	return &Endpoints{LeftLower: ll, RightUpper: ru}
}

func (e *Endpoints) String() string {
	return fmt.Sprintf("left lower=%v (connected=%t) - right upper=%v (connected=%t)",
		e.LeftLower, e.connectedLL, e.RightUpper, e.connectedRU)
}

// Connect marks the docking point within tol of p as connected.
//
// Candidates are tried nearest first, left-lower winning ties. The first one
// that is within tolerance and still unconnected is taken. Connect fails with
// a CONNECTION error when no docking point lies within tol, or when every
// docking point within tol is already connected.
func (e *Endpoints) Connect(p geom.Point, tol float64) error {
	dLL, dRU := geom.Distance(p, e.LeftLower), geom.Distance(p, e.RightUpper)

	type candidate struct {
		dist      float64
		connected *bool
	}
	cands := [2]candidate{{dLL, &e.connectedLL}, {dRU, &e.connectedRU}}
	if dRU < dLL {
		cands[0], cands[1] = cands[1], cands[0]
	}

	inRange := false
	for _, c := range cands {
		if c.dist > tol {
			continue
		}
		inRange = true
		if !*c.connected {
			*c.connected = true
			return nil
		}
	}

	if inRange {
		return errors.New(errors.ErrCodeConnection,
			"docking point at %v already connected", p)
	}
	return errors.New(errors.ErrCodeConnection,
		"no docking point within %g of %v (nearest %g away)", tol, p, min(dLL, dRU))
}

// Connected returns the connected docking points. A single connected point
// is returned as the sole element.
func (e *Endpoints) Connected() []geom.Point {
	return e.filter(true)
}

// Unconnected returns the docking points still open. A single open point is
// returned as the sole element.
func (e *Endpoints) Unconnected() []geom.Point {
	return e.filter(false)
}

func (e *Endpoints) filter(connected bool) []geom.Point {
	var out []geom.Point
	if e.connectedLL == connected {
		out = append(out, e.LeftLower)
	}
	if e.connectedRU == connected {
		out = append(out, e.RightUpper)
	}
	return out
}

// Open returns the only unconnected docking point. It fails with a
// CONNECTION error when zero or two points are open, since then the
// continuation point is ambiguous.
func (e *Endpoints) Open() (geom.Point, error) {
	open := e.Unconnected()
	if len(open) != 1 {
		return geom.Point{}, errors.New(errors.ErrCodeConnection,
			"expected exactly one open docking point, found %d", len(open))
	}
	return open[0], nil
}

// IsConnected reports the state of both docking points.
func (e *Endpoints) IsConnected() (leftLower, rightUpper bool) {
	return e.connectedLL, e.connectedRU
}

// translate shifts both docking points. Connection state is kept.
func (e *Endpoints) translate(d geom.Point) {
	e.LeftLower = e.LeftLower.Add(d).Round()
	e.RightUpper = e.RightUpper.Add(d).Round()
}
