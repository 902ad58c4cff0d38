// Package geom provides the 2-D vector algebra used by every layout builder.
//
// All transforms round their results to [Precision] decimal digits. Rotation
// and reflection matrices are rounded before they are applied, so a chain of
// hundreds of sections does not accumulate drift and exact values such as
// cos(90°) collapse to 0.
//
// Angles are radians unless a function name ends in Deg.
package geom

import "math"

// Precision is the number of decimal digits kept after every transform.
const Precision = 10

var roundScale = math.Pow(10, Precision)

// Point is a 2-D coordinate in layout units (typically micrometres).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p*k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Round returns p with both coordinates rounded to [Precision] digits.
func (p Point) Round() Point { return Point{Round(p.X), Round(p.Y)} }

// Len returns the Euclidean norm of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Polar returns the unit vector at angle theta scaled by r.
func Polar(r, theta float64) Point {
	return Point{r * math.Cos(theta), r * math.Sin(theta)}
}

// Round rounds v to [Precision] decimal digits.
func Round(v float64) float64 {
	r := math.Round(v*roundScale) / roundScale
	if r == 0 {
		return 0 // normalise -0
	}
	return r
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * math.Pi / 180.0 }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * 180.0 / math.Pi }

// Rotate rotates p about the origin by theta.
func Rotate(p Point, theta float64) Point {
	c, s := Round(math.Cos(theta)), Round(math.Sin(theta))
	return Point{c*p.X - s*p.Y, s*p.X + c*p.Y}.Round()
}

// RotateDeg rotates p about the origin by deg degrees.
func RotateDeg(p Point, deg float64) Point { return Rotate(p, Rad(deg)) }

// RotatePoints rotates every point about the origin. The input is not modified.
func RotatePoints(pts []Point, theta float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Rotate(p, theta)
	}
	return out
}

// Mirror reflects every point about the line through the origin at angle axis.
// The input is not modified.
func Mirror(pts []Point, axis float64) []Point {
	c, s := Round(math.Cos(2*axis)), Round(math.Sin(2*axis))
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{c*p.X + s*p.Y, s*p.X - c*p.Y}.Round()
	}
	return out
}

// MirrorAbout reflects every point about the line through origin at angle axis.
func MirrorAbout(pts []Point, origin Point, axis float64) []Point {
	shifted := Translate(pts, origin.Scale(-1))
	return Translate(Mirror(shifted, axis), origin)
}

// Translate shifts every point by d. The input is not modified.
func Translate(pts []Point, d Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d).Round()
	}
	return out
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) * 0.5, (a.Y + b.Y) * 0.5}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Less reports whether a sorts before b in canonical order: ascending x,
// ties broken on ascending y.
func Less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// CanonicalOrder returns a and b as (left-lower, right-upper). Equal points
// are returned unchanged.
func CanonicalOrder(a, b Point) (Point, Point) {
	if Less(b, a) {
		return b, a
	}
	return a, b
}
