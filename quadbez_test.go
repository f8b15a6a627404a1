package spiro

import (
	"math"
	"testing"
)

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{
		Pt(3.1, 4.1),
		Pt(5.9, 2.6),
		Pt(5.3, 5.8),
	}
	c := q.Raise()
	const epsilon = 1e-12
	const n = 10

	for i := range n + 1 {
		ts := float64(i) / float64(n)
		assertNear(t, q.Eval(ts), c.Eval(ts), epsilon)
	}
}

func TestQuadbezNearest(t *testing.T) {
	verify := func(q QuadBez, pt Point, want float64) {
		t.Helper()
		_, got := q.Nearest(pt, 1e-3)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	q := QuadBez{Pt(-1.0, 1.0), Pt(0.0, -1.0), Pt(1.0, 1.0)}
	verify(q, Pt(0.0, 0.0), 0.5)
	verify(q, Pt(0.0, 0.1), 0.5)
	verify(q, Pt(0.0, -0.1), 0.5)
	verify(q, Pt(0.5, 0.25), 0.75)
	verify(q, Pt(1.0, 1.0), 1.0)
	verify(q, Pt(1.1, 1.1), 1.0)
	verify(q, Pt(-1.1, 1.1), 0.0)
	a := Rotate(0.5)
	verify(q.Transform(a), Pt(0.5, 0.25).Transform(a), 0.75)
}
