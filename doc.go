// Package spiro computes Spiro splines and converts them to Bézier curves.
//
// A Spiro spline is a smooth curve through a sequence of control points. Each
// segment between two consecutive points is a polynomial spiral, a curve
// whose curvature is a cubic polynomial of arc length. The curvature
// coefficients are chosen so that the curve is as smooth as the type of each
// control point allows. The design, and the algorithms used, follow Raph
// Levien's libspiro.
//
// # Control points
//
// A [ControlPoint] combines a position with a [PointType]. [G4] and [G2]
// points are smooth, [Corner] points allow the tangent to change abruptly,
// and [Left] and [Right] join a curve to a straight line. The remaining types
// delimit contours in tagged point lists; see [ConvertTaggedToBezier].
//
// Control points can be read from and written to the plate format of
// libspiro's editor with [ReadPlate] and [WritePlate], and encoded as JSON.
//
// # Solving and conversion
//
// [Solve] and [SolveTagged] run a Newton iteration that solves for the
// curvature coefficients of all segments, returning a [Spline]. [Spline.Emit]
// then draws the spline into a [Sink] as lines and cubic Béziers, splitting
// segments that bend a lot. [ConvertToBezier] and [ConvertTaggedToBezier]
// combine the two steps.
//
// # Sinks
//
// A [Sink] receives the drawing. This package provides the following sinks:
//
//   - [SVGWriter] writes SVG path data (see also [WriteSVGPath])
//   - [PathBuilder] builds a [BezPath]
//   - [Recorder] records [Instruction] values that can be replayed later
//   - [RasterSink] fills the outline into a [golang.org/x/image/vector.Rasterizer]
//   - [GeomSink] builds a seehuhn.de/go/geom path
//   - [TransformSink] transforms points before passing them on
//
// Sinks that also implement [KnotMarker] are told where the curves of each
// knot begin.
//
// # Logging
//
// The solver reports its progress through a [go.uber.org/zap] logger, which
// is a no-op logger by default. Use [SetLogger] to enable logging.
package spiro
