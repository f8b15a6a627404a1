package spiro

import (
	"iter"
	"math"
)

// The maximum number of quadratics a cubic is split into by
// [CubicBez.ApproxQuadSpline].
const maxSplineSplit = 100

// CubicBez is a cubic Bézier curve, as produced by the converter for each
// spiral piece.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

type quadraticPiece struct {
	Start, End float64
	Segment    QuadBez
}

// quadratics splits the cubic evenly in t into quadratic Béziers that are
// within accuracy of the cubic. It always produces at least one piece.
func (c CubicBez) quadratics(accuracy float64) iter.Seq[quadraticPiece] {
	// The error of the best approximating quadratic is proportional to the
	// third derivative, which is constant across the cubic, so it scales down
	// with the cube of the number of pieces.
	return func(yield func(quadraticPiece) bool) {
		// The square of 36 / sqrt(3).
		maxHypot2 := 432.0 * accuracy * accuracy
		p1x2 := Vec2(c.P1).Mul(3).Sub(Vec2(c.P0))
		p2x2 := Vec2(c.P2).Mul(3).Sub(Vec2(c.P3))
		err := p2x2.Sub(p1x2).Hypot2()
		n := max(int(math.Ceil(math.Sqrt(math.Cbrt(err/maxHypot2)))), 1)

		for i := range n {
			t0 := float64(i) / float64(n)
			t1 := float64(i+1) / float64(n)
			seg := c.Subsegment(t0, t1)
			p1x2 := Vec2(seg.P1).Mul(3).Sub(Vec2(seg.P0))
			p2x2 := Vec2(seg.P2).Mul(3).Sub(Vec2(seg.P3))
			result := QuadBez{seg.P0, Point(p1x2.Add(p2x2).Mul(1.0 / 4.0)), seg.P3}
			if !yield(quadraticPiece{t0, t1, result}) {
				return
			}
		}
	}
}

// Subsegment returns the part of the cubic between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// Nearest finds the nearest point, using subdivision. It returns the squared
// distance and the parameter of the nearest point.
func (c CubicBez) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	found := false
	for qq := range c.quadratics(accuracy) {
		qDistSq, qT := qq.Segment.Nearest(pt, accuracy)
		if !found || qDistSq < distSq {
			found = true
			distSq = qDistSq
			t = qq.Start + qT*(qq.End-qq.Start)
		}
	}
	return distSq, t
}

func (c CubicBez) Seg() PathSegment {
	return PathSegment{Kind: CubicKind, P0: c.P0, P1: c.P1, P2: c.P2, P3: c.P3}
}

// ApproxQuadSpline returns a quadratic B-spline approximating this cubic
// Bézier.
//
// Returns false if no suitable approximation is found within the given
// tolerance.
func (cb CubicBez) ApproxQuadSpline(accuracy float64) (QuadBSpline, bool) {
	for i := range maxSplineSplit {
		if spline, ok := cb.approxQuadSplineN(i+1, accuracy); ok {
			return spline, true
		}
	}
	return nil, false
}

// Approximate a cubic curve with a quadratic spline of n curves
func (c CubicBez) approxQuadSplineN(n int, accuracy float64) (QuadBSpline, bool) {
	if n == 1 {
		qb, ok := c.tryApproxQuadratic(accuracy)
		if !ok {
			return nil, false
		}
		return QuadBSpline{qb.P0, qb.P1, qb.P2}, true
	}

	cubicsNext_, cubicsDone := iter.Pull(c.splitIntoN(n))
	defer cubicsDone()
	cubicsNext := func() CubicBez {
		v, ok := cubicsNext_()
		if !ok {
			panic("unreachable")
		}
		return v
	}

	nextCubic := cubicsNext()
	nextQ1 := nextCubic.approxQuadControl(0.0)
	q2 := c.P0
	var d1 Vec2
	spline := []Point{c.P0, nextQ1}
	for i := 1; i <= n; i++ {
		currentCubic := nextCubic
		q0 := q2
		q1 := nextQ1
		if i < n {
			nextCubic = cubicsNext()
			nextQ1 = nextCubic.approxQuadControl(float64(i) / float64(n-1))

			spline = append(spline, nextQ1)
			q2 = q1.Midpoint(nextQ1)
		} else {
			q2 = currentCubic.P3
		}
		d0 := d1
		d1 = Vec2(q2).Sub(Vec2(currentCubic.P3))

		if d1.Hypot() > accuracy ||
			!(CubicBez{
				Point(d0),
				q0.Lerp(q1, 2.0/3.0).Translate(Vec2(currentCubic.P1).Negate()),
				q2.Lerp(q1, 2.0/3.0).Translate(Vec2(currentCubic.P2).Negate()),
				Point(d1),
			}.fitsInside(accuracy)) {
			return nil, false
		}
	}
	spline = append(spline, c.P3)
	return QuadBSpline(spline), true
}

func (c CubicBez) splitIntoN(n int) iter.Seq[CubicBez] {
	switch n {
	case 1:
		return func(yield func(CubicBez) bool) { yield(c) }
	case 2:
		return func(yield func(CubicBez) bool) {
			l, r := c.Subdivide()
			_ = yield(l) && yield(r)
		}
	case 4:
		return func(yield func(CubicBez) bool) {
			l, r := c.Subdivide()
			ll, lr := l.Subdivide()
			rl, rr := r.Subdivide()
			_ = yield(ll) &&
				yield(lr) &&
				yield(rl) &&
				yield(rr)
		}
	}

	return func(yield func(CubicBez) bool) {
		a, b, c, d := c.parameters()
		dt := 1.0 / float64(n)
		delta2 := dt * dt
		delta3 := dt * delta2
		for i := range n {
			t1 := float64(i) * dt
			t1_2 := t1 * t1
			a1 := a.Mul(delta3)
			b1 := a.Mul(3.0).Mul(t1).Add(b).Mul(delta2)
			c1 := b.Mul(2.0).Mul(t1).Add(c).Add(a.Mul(3.0).Mul(t1_2)).Mul(dt)
			d1 := a.Mul(t1).Mul(t1_2).Add(b.Mul(t1_2)).Add(c.Mul(t1)).Add(d)

			p0 := Point(d1)
			p1 := Point(c1.Div(3)).Translate(d1)
			p2 := Point(b1.Add(c1).Div(3)).Translate(Vec2(p1))
			p3 := Point(a1.Add(d1).Add(c1).Add(b1))
			if !yield(CubicBez{p0, p1, p2, p3}) {
				break
			}
		}
	}
}

// parameters returns the polynomial coefficients a, b, c, d of the curve
// a·t³ + b·t² + c·t + d.
func (cb CubicBez) parameters() (Vec2, Vec2, Vec2, Vec2) {
	c := cb.P1.Sub(cb.P0).Mul(3.0)
	b := cb.P2.Sub(cb.P1).Mul(3.0).Sub(c)
	d := Vec2(cb.P0)
	a := Vec2(cb.P3).Sub(d).Sub(c).Sub(b)
	return a, b, c, d
}

// fitsInside reports whether the curve stays within distance of the origin.
func (c CubicBez) fitsInside(distance float64) bool {
	if Vec2(c.P2).Hypot() <= distance && Vec2(c.P1).Hypot() <= distance {
		return true
	}
	mid := Vec2(c.P0).Add(Vec2(c.P1).Add(Vec2(c.P2)).Mul(3)).Add(Vec2(c.P3)).Mul(0.125)
	if mid.Hypot() > distance {
		return false
	}
	left, right := c.Subdivide()
	return left.fitsInside(distance) && right.fitsInside(distance)
}

func (c CubicBez) approxQuadControl(t float64) Point {
	p1 := c.P0.Translate(c.P1.Sub(c.P0).Mul(1.5))
	p2 := c.P3.Translate(c.P2.Sub(c.P3).Mul(1.5))
	return p1.Lerp(p2, t)
}

// tryApproxQuadratic returns a single quadratic approximating the cubic that
// keeps the end tangents, or false if it isn't within accuracy.
func (c CubicBez) tryApproxQuadratic(accuracy float64) (QuadBez, bool) {
	q1, ok := Line{c.P0, c.P1}.CrossingPoint(Line{c.P2, c.P3})
	if !ok {
		return QuadBez{}, false
	}

	c1 := c.P0.Lerp(q1, 2.0/3.0)
	c2 := c.P3.Lerp(q1, 2.0/3.0)
	if !(CubicBez{
		Point{},
		c1.Translate(Vec2(c.P1).Negate()),
		c2.Translate(Vec2(c.P2).Negate()),
		Point{},
	}.fitsInside(accuracy)) {
		return QuadBez{}, false
	}
	return QuadBez{c.P0, q1, c.P3}, true
}
