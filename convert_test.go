package spiro

import (
	"errors"
	"math"
	"slices"
	"testing"
)

const circleSVG = "M-100,0 " +
	"C-100.0,26.1799 -89.2227,52.1987 -70.7107,70.7107 " +
	"C-52.1987,89.2227 -26.1799,100.0 0,100 " +
	"C26.1799,100.0 52.1987,89.2227 70.7107,70.7107 " +
	"C89.2227,52.1987 100.0,26.1799 100,0 " +
	"C100.0,-26.1799 89.2227,-52.1987 70.7107,-70.7107 " +
	"C52.1987,-89.2227 26.1799,-100.0 0,-100 " +
	"C-26.1799,-100.0 -52.1987,-89.2227 -70.7107,-70.7107 " +
	"C-89.2227,-52.1987 -100.0,-26.1799 -100,0 Z"

func TestConvertCircle(t *testing.T) {
	got, err := SVGPath(SVGOptions{}, func(sink Sink) error {
		return ConvertToBezier(circle, true, sink)
	})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, circleSVG, got)
}

func TestConvertDeterministic(t *testing.T) {
	var r1, r2 Recorder
	if err := ConvertToBezier(circle, true, &r1); err != nil {
		t.Fatal(err)
	}
	if err := ConvertToBezier(circle, true, &r2); err != nil {
		t.Fatal(err)
	}
	diff(t, r1, r2)
}

// checkKnots checks that the curves between consecutive knot marks end at
// the next knot's control point.
func checkKnots(t *testing.T, rec Recorder, points []ControlPoint, closed bool) {
	t.Helper()
	var pos Point
	for _, in := range rec {
		if in.Op == OpMarkKnot {
			if want := points[in.Knot].Point(); pos.Distance(want) > 1e-9 {
				t.Errorf("knot %d: curve is at %v, want %v", in.Knot, pos, want)
			}
			continue
		}
		pos, _ = in.EndPoint()
	}
	if closed {
		if want := points[0].Point(); pos != want {
			t.Errorf("closed contour ends at %v, want %v", pos, want)
		}
	}
}

func TestConvertMarksKnots(t *testing.T) {
	var rec Recorder
	if err := ConvertToBezier(circle, true, &rec); err != nil {
		t.Fatal(err)
	}
	var marks []int
	for _, in := range rec {
		if in.Op == OpMarkKnot {
			marks = append(marks, in.Knot)
		}
	}
	diff(t, []int{0, 1, 2, 3}, marks)
	diff(t, Instruction{Op: OpMoveTo, P0: Pt(-100, 0)}, rec[0])
	checkKnots(t, rec, circle, true)

	// Open contours get a final mark for their last knot.
	open := []ControlPoint{CP(0, 0, G4), CP(50, 30, G4), CP(100, 0, G4), CP(150, 30, G4)}
	rec = nil
	if err := ConvertToBezier(open, false, &rec); err != nil {
		t.Fatal(err)
	}
	marks = marks[:0]
	for _, in := range rec {
		if in.Op == OpMarkKnot {
			marks = append(marks, in.Knot)
		}
	}
	diff(t, []int{0, 1, 2, 3}, marks)
	diff(t, Instruction{Op: OpMoveTo, P0: Pt(0, 0), Open: true}, rec[0])
	checkKnots(t, rec, open, false)
	last, _ := rec[len(rec)-2].EndPoint()
	diff(t, Pt(150, 30), last)
}

func TestConvertTwoPoints(t *testing.T) {
	var rec Recorder
	if err := ConvertToBezier([]ControlPoint{CP(0, 0, G4), CP(3, 4, G4)}, false, &rec); err != nil {
		t.Fatal(err)
	}
	diff(t, Recorder{
		{Op: OpMoveTo, P0: Pt(0, 0), Open: true},
		{Op: OpMarkKnot, Knot: 0},
		{Op: OpLineTo, P0: Pt(3, 4)},
		{Op: OpMarkKnot, Knot: 1},
	}, rec)
}

func TestConvertCorners(t *testing.T) {
	square := []ControlPoint{
		CP(0, 0, Corner),
		CP(10, 0, Corner),
		CP(10, 10, Corner),
		CP(0, 10, Corner),
	}
	var rec Recorder
	if err := ConvertToBezier(square, true, &rec); err != nil {
		t.Fatal(err)
	}
	diff(t, []Instruction{
		{Op: OpMoveTo, P0: Pt(0, 0)},
		{Op: OpLineTo, P0: Pt(10, 0)},
		{Op: OpLineTo, P0: Pt(10, 10)},
		{Op: OpLineTo, P0: Pt(0, 10)},
		{Op: OpLineTo, P0: Pt(0, 0)},
	}, rec.Drawing())
}

func TestConvertInvalidDrawsNothing(t *testing.T) {
	var rec Recorder
	err := ConvertToBezierOpt(circle, true, &rec, Options{MaxIterations: 1})
	if !errors.Is(err, ErrSolverDidNotConverge) {
		t.Fatalf("got error %v, want %v", err, ErrSolverDidNotConverge)
	}
	if len(rec) != 0 {
		t.Errorf("got %d instructions, want none", len(rec))
	}

	points := slices.Clone(circle)
	points[2].Type = End
	if err := ConvertToBezier(points, true, &rec); !errors.Is(err, ErrInvalidPointType) {
		t.Fatalf("got error %v, want %v", err, ErrInvalidPointType)
	}
	if len(rec) != 0 {
		t.Errorf("got %d instructions, want none", len(rec))
	}
}

func TestConvertTagged(t *testing.T) {
	points := append(append([]ControlPoint{}, circle...),
		ControlPoint{Type: End},
		CP(0, 0, OpenContour),
		CP(50, 50, G2),
		CP(100, 0, EndOpenContour),
	)
	var rec Recorder
	if err := ConvertTaggedToBezier(points, &rec); err != nil {
		t.Fatal(err)
	}
	var moves []Instruction
	var marks []int
	for _, in := range rec {
		switch in.Op {
		case OpMoveTo:
			moves = append(moves, in)
		case OpMarkKnot:
			marks = append(marks, in.Knot)
		}
	}
	diff(t, []Instruction{
		{Op: OpMoveTo, P0: Pt(-100, 0)},
		{Op: OpMoveTo, P0: Pt(0, 0), Open: true},
	}, moves)
	// Knots are numbered by their index in the tagged list.
	diff(t, []int{0, 1, 2, 3, 5, 6, 7}, marks)

	// The first contour matches the untagged conversion.
	var single Recorder
	if err := ConvertToBezier(circle, true, &single); err != nil {
		t.Fatal(err)
	}
	diff(t, single, rec[:len(single)])
}

func TestConvertTaggedSolvesFirst(t *testing.T) {
	// The second contour is invalid, so nothing must be drawn.
	points := append(append([]ControlPoint{}, circle...),
		ControlPoint{Type: End},
		CP(0, 0, OpenContour),
		CP(50, 50, G2),
	)
	var rec Recorder
	if err := ConvertTaggedToBezier(points, &rec); !errors.Is(err, ErrInvalidPointType) {
		t.Fatalf("got error %v, want %v", err, ErrInvalidPointType)
	}
	if len(rec) != 0 {
		t.Errorf("got %d instructions, want none", len(rec))
	}
}

func TestConvertSinkError(t *testing.T) {
	errStop := errors.New("stop")
	// The circle is drawn as MoveTo, then MarkKnot and two CurveTo calls
	// per knot.
	tests := []struct {
		failAt int
		op     string
	}{
		{0, "MoveTo"},
		{1, "MarkKnot"},
		{2, "CurveTo"},
		{4, "MarkKnot"},
		{12, "CurveTo"},
	}
	for _, tt := range tests {
		s := &failingSink{failAt: tt.failAt, err: errStop}
		err := ConvertToBezier(circle, true, s)
		if !errors.Is(err, ErrSink) || !errors.Is(err, errStop) {
			t.Fatalf("got error %v, want sink error wrapping %v", err, errStop)
		}
		var serr *SinkError
		if !errors.As(err, &serr) {
			t.Fatalf("got %T, want *SinkError", err)
		}
		if serr.Op != tt.op {
			t.Errorf("failing at call %d: got op %q, want %q", tt.failAt, serr.Op, tt.op)
		}
		// Emission stops at the failing call.
		if s.calls != tt.failAt+1 {
			t.Errorf("got %d calls, want %d", s.calls, tt.failAt+1)
		}
		if len(s.Recorder) != tt.failAt {
			t.Errorf("got %d recorded calls, want %d", len(s.Recorder), tt.failAt)
		}
	}
}

func TestConvertQuadratic(t *testing.T) {
	var rec Recorder
	opts := Options{Quadratic: true}
	if err := ConvertToBezierOpt(circle, true, &rec, opts); err != nil {
		t.Fatal(err)
	}
	drawing := rec.Drawing()
	if drawing[0].Op != OpMoveTo {
		t.Fatalf("got %v, want MoveTo", drawing[0])
	}
	for _, in := range drawing[1:] {
		if in.Op != OpQuadTo {
			t.Fatalf("got %v, want QuadTo", in)
		}
		// Every quadratic's end point lies close to the circle.
		if r := Vec2(in.P1).Hypot(); math.Abs(r-100) > 0.5 {
			t.Errorf("end point %v is %g from the origin", in.P1, r)
		}
	}
	end, _ := drawing[len(drawing)-1].EndPoint()
	diff(t, Pt(-100, 0), end)
	checkKnots(t, rec, circle, true)
}

func TestConvertAccuracy(t *testing.T) {
	count := func(opts Options) int {
		t.Helper()
		var rec Recorder
		if err := ConvertToBezierOpt(circle, true, &rec, opts); err != nil {
			t.Fatal(err)
		}
		checkKnots(t, rec, circle, true)
		n := 0
		var pos Point
		for _, in := range rec.Drawing() {
			if in.Op == OpCurveTo {
				n++
				// The spline is a circle, so every cubic's midpoint lies
				// close to it.
				mid := CubicBez{pos, in.P0, in.P1, in.P2}.Eval(0.5)
				if r := Vec2(mid).Hypot(); math.Abs(r-100) > 0.2 {
					t.Errorf("cubic midpoint %v is %g from the origin", mid, r)
				}
			}
			pos, _ = in.EndPoint()
		}
		return n
	}
	if n := count(Options{}); n != 8 {
		t.Errorf("got %d cubics, want 8", n)
	}
	if n := count(Options{Accuracy: 1e-4}); n <= 8 {
		t.Errorf("got %d cubics with accuracy 1e-4, want more than 8", n)
	}
	// Subdivision is limited by MaxDepth.
	if n := count(Options{Accuracy: 1e-12, MaxDepth: 2}); n != 32 {
		t.Errorf("got %d cubics with MaxDepth 2, want 32", n)
	}
}
