package spiro

import "fmt"

// ConvertToBezier solves a single contour and draws it into sink as a
// sequence of Bézier curves. It uses the default [Options].
//
// If closed is false, the types of the first and last point are ignored. A
// closed contour must not contain any of the contour markers [End],
// [OpenContour] and [EndOpenContour].
//
// Nothing is drawn if the contour is invalid or the solver doesn't converge.
// Errors returned by sink are wrapped in a [*SinkError] and stop drawing
// immediately.
func ConvertToBezier(points []ControlPoint, closed bool, sink Sink) error {
	return ConvertToBezierOpt(points, closed, sink, Options{})
}

// ConvertToBezierOpt is like [ConvertToBezier] but allows specifying
// options.
func ConvertToBezierOpt(points []ControlPoint, closed bool, sink Sink, opts Options) error {
	sp, err := Solve(points, closed, opts)
	if err != nil {
		return err
	}
	return sp.Emit(sink)
}

// ConvertTaggedToBezier solves all contours of a tagged point list and draws
// them into sink. It uses the default [Options].
//
// Contour boundaries are determined by the point types. A contour whose first
// point is of type [OpenContour] is open and extends up to and including the
// next point of type [EndOpenContour]. Any other contour is closed and
// extends up to, but not including, the next point of type [End] or the end
// of the list. Points of type [End] aren't part of the curve.
//
// Knots are numbered by their index in points.
//
// All contours are solved before anything is drawn.
func ConvertTaggedToBezier(points []ControlPoint, sink Sink) error {
	return ConvertTaggedToBezierOpt(points, sink, Options{})
}

// ConvertTaggedToBezierOpt is like [ConvertTaggedToBezier] but allows
// specifying options.
func ConvertTaggedToBezierOpt(points []ControlPoint, sink Sink, opts Options) error {
	splines, err := SolveTagged(points, opts)
	if err != nil {
		return err
	}
	for _, sp := range splines {
		if err := sp.Emit(sink); err != nil {
			return err
		}
	}
	return nil
}

// contourRange is the half-open range of a contour's points in a tagged
// point list.
type contourRange struct {
	start, end int
}

// splitTagged finds the contours of a tagged point list.
func splitTagged(points []ControlPoint) ([]contourRange, error) {
	if err := validatePoints(points, 0); err != nil {
		return nil, err
	}
	invalid := func(i int, msg string) error {
		return &PointError{Index: i, Err: fmt.Errorf("%w: %s %s", ErrInvalidPointType, points[i].Type, msg)}
	}

	var out []contourRange
	for i := 0; i < len(points); {
		start := i
		switch points[i].Type {
		case End:
			// Empty contour.
			i++
			continue
		case EndOpenContour:
			return nil, invalid(i, "without matching OpenContour")
		case OpenContour:
			i++
			for ; i < len(points) && points[i].Type != EndOpenContour; i++ {
				if points[i].Type.IsMarker() {
					return nil, invalid(i, "inside open contour")
				}
			}
			if i == len(points) {
				return nil, invalid(start, "without matching EndOpenContour")
			}
			i++
			out = append(out, contourRange{start, i})
		default:
			for ; i < len(points) && points[i].Type != End; i++ {
				if points[i].Type.IsMarker() {
					return nil, invalid(i, "inside closed contour")
				}
			}
			if i-start < 2 {
				return nil, &PointError{Index: start, Err: ErrContourTooShort}
			}
			out = append(out, contourRange{start, i})
			// Skip the terminating End, if any.
			i++
		}
	}
	if len(out) == 0 {
		return nil, ErrContourTooShort
	}
	return out, nil
}
