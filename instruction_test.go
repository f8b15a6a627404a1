package spiro

import (
	"errors"
	"testing"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{Instruction{Op: OpMoveTo, P0: Pt(1, 2)}, "MoveTo((1, 2), closed)"},
		{Instruction{Op: OpMoveTo, P0: Pt(1, 2), Open: true}, "MoveTo((1, 2), open)"},
		{Instruction{Op: OpLineTo, P0: Pt(1, 2)}, "LineTo((1, 2))"},
		{Instruction{Op: OpQuadTo, P0: Pt(1, 2), P1: Pt(3, 4)}, "QuadTo((1, 2), (3, 4))"},
		{Instruction{Op: OpCurveTo, P0: Pt(1, 2), P1: Pt(3, 4), P2: Pt(5, 6.5)}, "CurveTo((1, 2), (3, 4), (5, 6.5))"},
		{Instruction{Op: OpMarkKnot, Knot: 7}, "MarkKnot(7)"},
		{Instruction{Op: 42}, "Op(42)"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestInstructionEndPoint(t *testing.T) {
	for _, in := range []Instruction{
		{Op: OpMoveTo, P0: Pt(1, 1)},
		{Op: OpLineTo, P0: Pt(1, 1)},
		{Op: OpQuadTo, P1: Pt(1, 1)},
		{Op: OpCurveTo, P2: Pt(1, 1)},
	} {
		p, ok := in.EndPoint()
		if !ok || p != Pt(1, 1) {
			t.Errorf("%v: got end point %v, %t", in, p, ok)
		}
	}
	if _, ok := (Instruction{Op: OpMarkKnot}).EndPoint(); ok {
		t.Error("MarkKnot shouldn't have an end point")
	}
}

// plainSink only implements Sink, not KnotMarker.
type plainSink struct {
	rec Recorder
}

func (s *plainSink) MoveTo(x, y float64, open bool) error { return s.rec.MoveTo(x, y, open) }
func (s *plainSink) LineTo(x, y float64) error            { return s.rec.LineTo(x, y) }
func (s *plainSink) QuadTo(x1, y1, x2, y2 float64) error  { return s.rec.QuadTo(x1, y1, x2, y2) }
func (s *plainSink) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	return s.rec.CurveTo(x1, y1, x2, y2, x3, y3)
}

func TestRecorderReplay(t *testing.T) {
	var rec Recorder
	if err := ConvertToBezier(circle, true, &rec); err != nil {
		t.Fatal(err)
	}

	var again Recorder
	if err := rec.Replay(&again); err != nil {
		t.Fatal(err)
	}
	diff(t, rec, again)

	// Sinks that don't mark knots only see the drawing.
	var plain plainSink
	if err := rec.Replay(&plain); err != nil {
		t.Fatal(err)
	}
	diff(t, rec.Drawing(), []Instruction(plain.rec))
}

func TestRecorderReplayError(t *testing.T) {
	rec := Recorder{
		{Op: OpMoveTo, P0: Pt(0, 0)},
		{Op: OpMarkKnot, Knot: 0},
		{Op: OpLineTo, P0: Pt(1, 0)},
	}
	errStop := errors.New("stop")
	err := rec.Replay(&failingSink{failAt: 1, err: errStop})
	if !errors.Is(err, errStop) {
		t.Fatalf("got error %v, want %v", err, errStop)
	}
	if want := "instruction 1 (MarkKnot): stop"; err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
}

func TestTransformSink(t *testing.T) {
	var rec Recorder
	ts := &TransformSink{Sink: &rec, Transform: Translate(Vec(10, 20))}
	ts.MoveTo(0, 0, true)
	ts.MarkKnot(3)
	ts.LineTo(1, 1)
	ts.QuadTo(1, 2, 3, 4)
	ts.CurveTo(1, 2, 3, 4, 5, 6)
	diff(t, Recorder{
		{Op: OpMoveTo, P0: Pt(10, 20), Open: true},
		{Op: OpMarkKnot, Knot: 3},
		{Op: OpLineTo, P0: Pt(11, 21)},
		{Op: OpQuadTo, P0: Pt(11, 22), P1: Pt(13, 24)},
		{Op: OpCurveTo, P0: Pt(11, 22), P1: Pt(13, 24), P2: Pt(15, 26)},
	}, rec)

	// MarkKnot is dropped for sinks that don't implement KnotMarker.
	var plain plainSink
	ts = &TransformSink{Sink: &plain, Transform: Identity}
	if err := ts.MarkKnot(0); err != nil {
		t.Fatal(err)
	}
	if len(plain.rec) != 0 {
		t.Errorf("got %v, want nothing", plain.rec)
	}
}
