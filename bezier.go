package spiro

import (
	"math"

	"go.uber.org/zap"
)

// Segments bending less than this are drawn as straight lines.
const straightBend = 1e-8

// Emit draws the spline into sink as Bézier curves.
//
// It calls sink.MoveTo once, then draws each segment in order. If sink
// implements [KnotMarker], MarkKnot is called before the curves of each
// segment, and for open splines once more after the last segment.
func (sp *Spline) Emit(sink Sink) error {
	marker, _ := sink.(KnotMarker)
	e := emitter{sink: sink, opts: sp.opts}
	nseg := len(sp.segs) - 1
	for i := range nseg {
		seg := &sp.segs[i]
		if i == 0 {
			if err := sink.MoveTo(seg.Start.X, seg.Start.Y, !sp.closed); err != nil {
				return sinkErr("MoveTo", err)
			}
		}
		if marker != nil {
			if err := marker.MarkKnot(sp.first + i); err != nil {
				return sinkErr("MarkKnot", err)
			}
		}
		if err := e.segment(seg.K, seg.Start, seg.End, 0); err != nil {
			return err
		}
	}
	if marker != nil && !sp.closed {
		if err := marker.MarkKnot(sp.first + nseg); err != nil {
			return sinkErr("MarkKnot", err)
		}
	}
	return nil
}

type emitter struct {
	sink Sink
	opts Options
}

// segment draws the spiral with curvature coefficients k from p0 to p1.
//
// Segments that bend a lot are split in half at their arc length midpoint,
// and each half is drawn recursively.
func (e *emitter) segment(k [4]float64, p0, p1 Point, depth int) error {
	bend := math.Abs(k[0]) + math.Abs(0.5*k[1]) + math.Abs(0.125*k[2]) + math.Abs(k[3]/48)
	if !(bend > straightBend) {
		return sinkErr("LineTo", e.sink.LineTo(p1.X, p1.Y))
	}

	chord := p1.Sub(p0)
	xy := integrateSpiro(k)
	// scale is the arc length, rot maps the spiral's frame to the user's.
	scale := chord.Hypot() / xy.Hypot()
	rot := chord.Angle() - xy.Angle()

	if depth > e.opts.maxDepth() || bend < 1 {
		c := spiroCubic(k, p0, p1, scale, rot)
		if depth > e.opts.maxDepth() || e.fits(c, k, p0, scale, rot) {
			return e.cubic(c)
		}
	}

	kl, thl := subSpiro(k, -0.5, 0)
	kr, _ := subSpiro(k, 0, 0.5)
	mid := p0.Translate(integrateSpiro(kl).Rotate(rot + thl).Mul(0.5 * scale))
	if err := e.segment(kl, p0, mid, depth+1); err != nil {
		return err
	}
	return e.segment(kr, mid, p1, depth+1)
}

// spiroCubic returns the cubic Bézier from p0 to p1 that matches the
// spiral's end tangents, with handles a third of the arc length long.
func spiroCubic(k [4]float64, p0, p1 Point, scale, rot float64) CubicBez {
	thEven := k[3]/384 + k[1]/8 + rot
	thOdd := k[2]/48 + 0.5*k[0]
	h := scale / 3
	return CubicBez{
		P0: p0,
		P1: p0.Translate(VecFromAngle(thEven - thOdd).Mul(h)),
		P2: p1.Translate(VecFromAngle(thEven + thOdd).Mul(-h)),
		P3: p1,
	}
}

// subSpiro returns the curvature coefficients of the part of the spiral k
// between arc lengths lo and hi, rescaled to unit length, and the tangent
// angle at the middle of that part.
func subSpiro(k [4]float64, lo, hi float64) (sub [4]float64, th float64) {
	l := hi - lo
	c := 0.5 * (lo + hi)
	sub[0] = l * ((((k[3]*c/6)+k[2]/2)*c+k[1])*c + k[0])
	sub[1] = l * l * ((k[3]*c/2+k[2])*c + k[1])
	sub[2] = l * l * l * (k[3]*c + k[2])
	sub[3] = l * l * l * l * k[3]
	th = (((k[3]/24*c+k[2]/6)*c+k[1]/2)*c + k[0]) * c
	return sub, th
}

// spiroPoint returns the point at fraction t of the arc length of the spiral
// k that starts at p0.
func spiroPoint(k [4]float64, p0 Point, scale, rot, t float64) Point {
	sub, th := subSpiro(k, -0.5, t-0.5)
	return p0.Translate(integrateSpiro(sub).Rotate(rot + th).Mul(t * scale))
}

// fits reports whether c is close enough to the spiral to satisfy
// Options.Accuracy.
func (e *emitter) fits(c CubicBez, k [4]float64, p0 Point, scale, rot float64) bool {
	if e.opts.Accuracy <= 0 {
		return true
	}
	tol := e.opts.Accuracy * c.P3.Distance(c.P0)
	for _, t := range [...]float64{0.25, 0.5, 0.75} {
		pt := spiroPoint(k, p0, scale, rot, t)
		if d, _ := c.Nearest(pt, tol*1e-3); math.Sqrt(d) > tol {
			return false
		}
	}
	return true
}

func (e *emitter) cubic(c CubicBez) error {
	if e.opts.Quadratic {
		if spline, ok := c.ApproxQuadSpline(e.opts.quadAccuracy()); ok {
			for q := range spline.Quads() {
				if err := e.sink.QuadTo(q.P1.X, q.P1.Y, q.P2.X, q.P2.Y); err != nil {
					return sinkErr("QuadTo", err)
				}
			}
			return nil
		}
		Logger().Warn("no quadratic approximation found, emitting cubic",
			zap.Stringer("start", c.P0),
			zap.Stringer("end", c.P3),
			zap.Float64("accuracy", e.opts.quadAccuracy()))
	}
	return sinkErr("CurveTo", e.sink.CurveTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y))
}
