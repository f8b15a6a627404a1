package spiro

import (
	"fmt"
	"iter"
	"slices"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic bezier using the current location and the two points.
	QuadToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Close off the path.
	ClosePathKind
)

// PathElement is an element of a Bézier path.
//
// A valid path has MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%s)", el.P0)
	case LineToKind:
		return fmt.Sprintf("LineTo(%s)", el.P0)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%s, %s)", el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%s, %s, %s)", el.P0, el.P1, el.P2)
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidPathElement"
	}
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

// EndPoint returns the end point of the path element, or false if none exists. It exists
// for all kinds except for [ClosePathKind].
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

type PathSegmentKind int

const (
	// A line segment.
	LineKind PathSegmentKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
)

// PathSegment represents a segment of a Bézier path. This type acts as a sort of tagged
// union representing all possible path segments ([Line], [QuadBez], and [CubicBez]).
type PathSegment struct {
	Kind PathSegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

// Line returns the segment as a line. The result is only valid if Kind is LineKind.
func (seg PathSegment) Line() Line { return Line{seg.P0, seg.P1} }

// Quad returns the segment as a quadratic Bézier. The result is only valid if Kind is
// QuadKind.
func (seg PathSegment) Quad() QuadBez { return QuadBez{seg.P0, seg.P1, seg.P2} }

// Cubic returns the segment as a cubic Bézier, raising lines and quadratics.
func (seg PathSegment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		return CubicBez{seg.P0, seg.P0.Lerp(seg.P1, 1.0/3.0), seg.P0.Lerp(seg.P1, 2.0/3.0), seg.P1}
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

func (seg PathSegment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case QuadKind:
		return seg.Quad().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

func (seg PathSegment) Start() Point {
	return seg.P0
}

func (seg PathSegment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case QuadKind:
		return seg.P2
	case CubicKind:
		return seg.P3
	default:
		panic(fmt.Sprintf("unhandled case %v", seg.Kind))
	}
}

// Segments converts a sequence of path elements to a sequence of path segments.
// ClosePath produces a line back to the start of the subpath unless the
// subpath already ends there.
func Segments(seq iter.Seq[PathElement]) iter.Seq[PathSegment] {
	return func(yield func(PathSegment) bool) {
		var start, last Point
		for el := range seq {
			switch el.Kind {
			case MoveToKind:
				start = el.P0
				last = el.P0
			case LineToKind:
				p := last
				last = el.P0
				if !yield(Line{p, el.P0}.Seg()) {
					return
				}
			case QuadToKind:
				p := last
				last = el.P1
				if !yield(QuadBez{p, el.P0, el.P1}.Seg()) {
					return
				}
			case CubicToKind:
				p := last
				last = el.P2
				if !yield(CubicBez{p, el.P0, el.P1, el.P2}.Seg()) {
					return
				}
			case ClosePathKind:
				if last != start {
					p := last
					last = start
					if !yield(Line{p, start}.Seg()) {
						return
					}
				}
			default:
				panic(fmt.Sprintf("unhandled case %v", el.Kind))
			}
		}
	}
}

// BezPath is a Bézier path, a sequence of path elements. It is the in-memory
// form of a converted spline; see [PathBuilder].
type BezPath []PathElement

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

func (p *BezPath) MoveTo(pt Point)          { p.Push(MoveTo(pt)) }
func (p *BezPath) LineTo(pt Point)          { p.Push(LineTo(pt)) }
func (p *BezPath) QuadTo(p1, p2 Point)      { p.Push(QuadTo(p1, p2)) }
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }
func (p *BezPath) ClosePath()               { p.Push(ClosePath()) }

// Segments returns an iterator over the path's segments.
func (p BezPath) Segments() iter.Seq[PathSegment] { return Segments(p.Elements()) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// Transform returns a new path with an affine transformation applied to the path.
func (p BezPath) Transform(aff Affine) BezPath {
	els := make([]PathElement, len(p))
	for i := range p {
		els[i] = p[i].Transform(aff)
	}
	return els
}

// ControlBox returns a rectangle that conservatively encloses the path,
// using control points directly rather than computing tight bounds.
func (p BezPath) ControlBox() Rect {
	first := true
	var cbox Rect
	addPt := func(pt Point) {
		if first {
			first = false
			cbox = NewRectFromPoints(pt, pt)
		} else {
			cbox = cbox.UnionPoint(pt)
		}
	}
	for _, el := range p {
		switch el.Kind {
		case MoveToKind, LineToKind:
			addPt(el.P0)
		case QuadToKind:
			addPt(el.P0)
			addPt(el.P1)
		case CubicToKind:
			addPt(el.P0)
			addPt(el.P1)
			addPt(el.P2)
		case ClosePathKind:
		}
	}
	return cbox
}

// Replay draws the path into sink. A subpath is reported as closed if it
// ends with ClosePath. If a closed subpath doesn't end at its start, a line
// back to the start is drawn.
func (p BezPath) Replay(sink Sink) error {
	var start, last Point
	for i, el := range p {
		var err error
		switch el.Kind {
		case MoveToKind:
			start, last = el.P0, el.P0
			err = sink.MoveTo(el.P0.X, el.P0.Y, !p.subpathClosed(i))
		case LineToKind:
			last = el.P0
			err = sink.LineTo(el.P0.X, el.P0.Y)
		case QuadToKind:
			last = el.P1
			err = sink.QuadTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
		case CubicToKind:
			last = el.P2
			err = sink.CurveTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case ClosePathKind:
			if last != start {
				last = start
				err = sink.LineTo(start.X, start.Y)
			}
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
		if err != nil {
			return fmt.Errorf("element %d (%s): %w", i, el, err)
		}
	}
	return nil
}

// subpathClosed reports whether the subpath starting at element i ends with
// ClosePath.
func (p BezPath) subpathClosed(i int) bool {
	for _, el := range p[i+1:] {
		switch el.Kind {
		case MoveToKind:
			return false
		case ClosePathKind:
			return true
		}
	}
	return false
}

// PathBuilder is a sink that builds a [BezPath]. Closed contours are
// terminated with a ClosePath element.
type PathBuilder struct {
	path    BezPath
	pending bool
}

var _ Sink = (*PathBuilder)(nil)

func (b *PathBuilder) MoveTo(x, y float64, open bool) error {
	if b.pending {
		b.path.ClosePath()
	}
	b.path.MoveTo(Pt(x, y))
	b.pending = !open
	return nil
}

func (b *PathBuilder) LineTo(x, y float64) error {
	b.path.LineTo(Pt(x, y))
	return nil
}

func (b *PathBuilder) QuadTo(x1, y1, x2, y2 float64) error {
	b.path.QuadTo(Pt(x1, y1), Pt(x2, y2))
	return nil
}

func (b *PathBuilder) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	b.path.CubicTo(Pt(x1, y1), Pt(x2, y2), Pt(x3, y3))
	return nil
}

// Path returns the path built so far. If the last contour is closed, the
// returned path ends with ClosePath. The builder can continue to be used.
func (b *PathBuilder) Path() BezPath {
	out := slices.Clone(b.path)
	if b.pending {
		out.ClosePath()
	}
	return out
}
