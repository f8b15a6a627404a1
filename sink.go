package spiro

// Sink receives the Bézier curves produced by [Spline.Emit] and the
// conversion functions, in curve order.
//
// Each contour starts with a call to MoveTo. open reports whether the
// contour is open; closed contours end at their starting point. A non-nil
// error stops emission immediately.
type Sink interface {
	MoveTo(x, y float64, open bool) error
	LineTo(x, y float64) error
	// QuadTo draws a quadratic Bézier with control point (x1, y1) to
	// (x2, y2).
	QuadTo(x1, y1, x2, y2 float64) error
	// CurveTo draws a cubic Bézier with control points (x1, y1) and
	// (x2, y2) to (x3, y3).
	CurveTo(x1, y1, x2, y2, x3, y3 float64) error
}

// KnotMarker is an optional interface for sinks that want to know where the
// curves of each knot begin. MarkKnot is called with the knot's index before
// the curves that start at that knot.
type KnotMarker interface {
	MarkKnot(index int) error
}

// TransformSink applies an affine transformation to all points before
// passing them on.
type TransformSink struct {
	Sink      Sink
	Transform Affine
}

var _ Sink = (*TransformSink)(nil)
var _ KnotMarker = (*TransformSink)(nil)

func (ts *TransformSink) pt(x, y float64) Point {
	return Pt(x, y).Transform(ts.Transform)
}

func (ts *TransformSink) MoveTo(x, y float64, open bool) error {
	p := ts.pt(x, y)
	return ts.Sink.MoveTo(p.X, p.Y, open)
}

func (ts *TransformSink) LineTo(x, y float64) error {
	p := ts.pt(x, y)
	return ts.Sink.LineTo(p.X, p.Y)
}

func (ts *TransformSink) QuadTo(x1, y1, x2, y2 float64) error {
	p1 := ts.pt(x1, y1)
	p2 := ts.pt(x2, y2)
	return ts.Sink.QuadTo(p1.X, p1.Y, p2.X, p2.Y)
}

func (ts *TransformSink) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	p1 := ts.pt(x1, y1)
	p2 := ts.pt(x2, y2)
	p3 := ts.pt(x3, y3)
	return ts.Sink.CurveTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
}

// MarkKnot forwards to the underlying sink if it implements [KnotMarker].
func (ts *TransformSink) MarkKnot(index int) error {
	if m, ok := ts.Sink.(KnotMarker); ok {
		return m.MarkKnot(index)
	}
	return nil
}
