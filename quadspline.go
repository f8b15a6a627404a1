package spiro

import "iter"

// QuadBSpline is a quadratic B-spline, as returned by
// [CubicBez.ApproxQuadSpline]. It is encoded as [P₁, C₁, C₂, ..., Cₙ, P₂],
// where P₁ and P₂ are the end points and Cᵢ are off-curve control points.
// The on-curve points between the quadratics are implied, halfway between
// consecutive control points. This is the layout TrueType glyf tables use.
type QuadBSpline []Point

// Quads returns an iterator over the quadratic Béziers making up the spline.
// Consecutive quadratics share their end points and tangents.
func (q QuadBSpline) Quads() iter.Seq[QuadBez] {
	return func(yield func(QuadBez) bool) {
		last := len(q) - 1
		for i := 1; i < last; i++ {
			start, end := q[i-1], q[i+1]
			if i > 1 {
				start = start.Midpoint(q[i])
			}
			if i+1 < last {
				end = q[i].Midpoint(end)
			}
			if !yield(QuadBez{start, q[i], end}) {
				return
			}
		}
	}
}
