package spiro

import "math"

// Number of sub-intervals integrateSpiro splits the unit arc into.
const integrationSteps = 4

// Highest power of θ kept in the series expansion of exp(iθ). The tangent
// turns by at most a few radians over one sub-interval of a solved segment,
// for which this is well below double precision.
const integrationOrder = 16

// evenMoments[m] is the integral of tᵐ over [-½, ½]. It is zero for odd m.
var evenMoments = func() [4*integrationOrder + 1]float64 {
	var out [4*integrationOrder + 1]float64
	for m := 0; m < len(out); m += 2 {
		out[m] = math.Pow(0.5, float64(m)) / float64(m+1)
	}
	return out
}()

// integrateSpiro returns the chord of the polynomial spiral of unit arc
// length whose curvature at arc length s ∈ [-½, ½] is
//
//	k₀ + k₁s + k₂s²/2 + k₃s³/6
//
// and whose tangent at s = 0 points along the positive x axis.
func integrateSpiro(k [4]float64) Vec2 {
	const ds = 1.0 / integrationSteps
	var x, y float64
	s := 0.5*ds - 0.5
	for range integrationSteps {
		// Curvature and its derivatives at the middle of the step, in units
		// of the step length.
		km0 := (((k[3]*s/6+k[2]/2)*s+k[1])*s + k[0]) * ds
		km1 := ((k[3]*s/2+k[2])*s + k[1]) * (ds * ds)
		km2 := (k[3]*s + k[2]) * (ds * ds * ds)
		km3 := k[3] * (ds * ds * ds * ds)
		u, v := integrateTurn([5]float64{0, km0, km1 / 2, km2 / 6, km3 / 24})

		th := (((k[3]/24*s+k[2]/6)*s+k[1]/2)*s + k[0]) * s
		sin, cos := math.Sincos(th)
		x += cos*u - sin*v
		y += cos*v + sin*u
		s += ds
	}
	return Vec2{x * ds, y * ds}
}

// integrateTurn integrates exp(iθ(t)) over t ∈ [-½, ½], where θ is the
// polynomial with coefficients th, using the Taylor series of exp.
func integrateTurn(th [5]float64) (re, im float64) {
	// pow holds the coefficients of θ(t)ⁿ/n!.
	var pow, next [4*integrationOrder + 1]float64
	pow[0] = 1
	deg := 0
	for n := 0; ; n++ {
		var sum float64
		for m := 0; m <= deg; m += 2 {
			sum += pow[m] * evenMoments[m]
		}
		// iⁿ cycles through 1, i, -1, -i.
		switch n % 4 {
		case 0:
			re += sum
		case 1:
			im += sum
		case 2:
			re -= sum
		case 3:
			im -= sum
		}
		if n == integrationOrder {
			return re, im
		}

		clear(next[:deg+5])
		for i := 0; i <= deg; i++ {
			if pow[i] == 0 {
				continue
			}
			for j := 1; j < len(th); j++ {
				next[i+j] += pow[i] * th[j]
			}
		}
		deg += 4
		f := 1 / float64(n+1)
		for i := 0; i <= deg; i++ {
			pow[i] = next[i] * f
		}
	}
}

// mod2pi normalizes an angle into [-π, π).
func mod2pi(th float64) float64 {
	u := th / (2 * math.Pi)
	return 2 * math.Pi * (u - math.Floor(u+0.5))
}

// segmentEnds describes both ends of a segment. Index 0 is the left end,
// index 1 the right end. For each end, element 0 is the tangent angle
// relative to the chord, elements 1 through 3 are the curvature and its first
// two derivatives with respect to arc length.
type segmentEnds [2][4]float64

// computeEnds returns the end conditions of the spiral with curvature
// coefficients k, scaled so that its chord has length chord. It also returns
// the scale factor, which is the reciprocal of the segment's arc length.
func computeEnds(k [4]float64, chord float64) (ends segmentEnds, l float64) {
	xy := integrateSpiro(k)
	ch := xy.Hypot()
	th := xy.Angle()
	l = ch / chord

	thEven := 0.5*k[0] + k[2]/48
	thOdd := 0.125*k[1] + k[3]/384 - th
	ends[0][0] = thEven - thOdd
	ends[1][0] = thEven + thOdd

	k0Even := l * (k[0] + 0.125*k[2])
	k0Odd := l * (0.5*k[1] + k[3]/48)
	ends[0][1] = k0Even - k0Odd
	ends[1][1] = k0Even + k0Odd

	l2 := l * l
	k1Even := l2 * (k[1] + 0.125*k[3])
	k1Odd := l2 * 0.5 * k[2]
	ends[0][2] = k1Even - k1Odd
	ends[1][2] = k1Even + k1Odd

	l3 := l2 * l
	k2Even := l3 * k[2]
	k2Odd := l3 * 0.5 * k[3]
	ends[0][3] = k2Even - k2Odd
	ends[1][3] = k2Even + k2Odd
	return ends, l
}

// Step used for the finite difference approximation of the Jacobian.
const derivDelta = 1.0 / 2e6

// computeDerivs returns the end conditions for k, as well as their partial
// derivatives with respect to the first n curvature coefficients.
// derivs[j][e][i] is the derivative of ends[e][j] with respect to k[i].
func computeDerivs(k [4]float64, chord float64, n int) (ends segmentEnds, derivs [4][2][4]float64) {
	ends, _ = computeEnds(k, chord)
	for i := range n {
		try := k
		try[i] += derivDelta
		tryEnds, _ := computeEnds(try, chord)
		for e := range 2 {
			for j := range 4 {
				derivs[j][e][i] = (tryEnds[e][j] - ends[e][j]) / derivDelta
			}
		}
	}
	return ends, derivs
}
