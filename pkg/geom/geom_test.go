package geom

import (
	"math"
	"testing"
)

func near(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.00000000004, 1},
		{1.00000000006, 1.0000000001},
		{-0.00000000001, 0},
		{math.Cos(math.Pi / 2), 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotateQuarterTurnsAreExact(t *testing.T) {
	p := Pt(3, 4)
	tests := []struct {
		deg  float64
		want Point
	}{
		{0, Pt(3, 4)},
		{90, Pt(-4, 3)},
		{180, Pt(-3, -4)},
		{270, Pt(4, -3)},
		{-90, Pt(4, -3)},
	}
	for _, tt := range tests {
		if got := RotateDeg(p, tt.deg); got != tt.want {
			t.Errorf("RotateDeg(%v, %v) = %v, want %v", p, tt.deg, got, tt.want)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	pts := []Point{Pt(1, 0), Pt(0.25, -0.75), Pt(-0.5, 0.5), Pt(0.3, 0.9)}
	for _, deg := range []float64{0, 13, 30, 45, 90, 137.5, 180, 270, -61} {
		theta := Rad(deg)
		back := RotatePoints(RotatePoints(pts, theta), -theta)
		for i := range pts {
			if !near(back[i], pts[i], 1e-9) {
				t.Errorf("deg=%v: round trip %v -> %v", deg, pts[i], back[i])
			}
		}
	}
}

func TestRotatePointsDoesNotModifyInput(t *testing.T) {
	pts := []Point{Pt(1, 2)}
	_ = RotatePoints(pts, math.Pi)
	if pts[0] != Pt(1, 2) {
		t.Errorf("input modified: %v", pts[0])
	}
}

func TestMirror(t *testing.T) {
	tests := []struct {
		name string
		axis float64
		in   Point
		want Point
	}{
		{"x axis", 0, Pt(2, 3), Pt(2, -3)},
		{"y axis", Rad(90), Pt(2, 3), Pt(-2, 3)},
		{"diagonal", Rad(45), Pt(2, 3), Pt(3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mirror([]Point{tt.in}, tt.axis)[0]
			if !near(got, tt.want, 1e-10) {
				t.Errorf("Mirror = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMirrorAbout(t *testing.T) {
	got := MirrorAbout([]Point{Pt(12, 5)}, Pt(10, 0), Rad(90))[0]
	if want := Pt(8, 5); got != want {
		t.Errorf("MirrorAbout = %v, want %v", got, want)
	}
}

func TestMidpointDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(6, 8)
	if got := Midpoint(a, b); got != Pt(3, 4) {
		t.Errorf("Midpoint = %v", got)
	}
	if got := Distance(a, b); got != 10 {
		t.Errorf("Distance = %v", got)
	}
}

func TestCanonicalOrder(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		ll, ru Point
	}{
		{"ordered by x", Pt(1, 5), Pt(2, 0), Pt(1, 5), Pt(2, 0)},
		{"swapped by x", Pt(2, 0), Pt(1, 5), Pt(1, 5), Pt(2, 0)},
		{"tie on x", Pt(1, 5), Pt(1, -5), Pt(1, -5), Pt(1, 5)},
		{"equal", Pt(1, 1), Pt(1, 1), Pt(1, 1), Pt(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ll, ru := CanonicalOrder(tt.a, tt.b)
			if ll != tt.ll || ru != tt.ru {
				t.Fatalf("CanonicalOrder = (%v, %v), want (%v, %v)", ll, ru, tt.ll, tt.ru)
			}
			ll2, ru2 := CanonicalOrder(ll, ru)
			if ll2 != ll || ru2 != ru {
				t.Errorf("not idempotent: (%v, %v)", ll2, ru2)
			}
			rl, rr := CanonicalOrder(tt.b, tt.a)
			if rl != ll || rr != ru {
				t.Errorf("order depends on argument order: (%v, %v)", rl, rr)
			}
		})
	}
}

func TestRadDeg(t *testing.T) {
	if got := Deg(Rad(270)); math.Abs(got-270) > 1e-12 {
		t.Errorf("Deg(Rad(270)) = %v", got)
	}
}
