package spiro

import "fmt"

// Op identifies the kind of an [Instruction].
type Op uint8

const (
	OpMoveTo Op = iota + 1
	OpLineTo
	OpQuadTo
	OpCurveTo
	OpMarkKnot
)

func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCurveTo:
		return "CurveTo"
	case OpMarkKnot:
		return "MarkKnot"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Instruction is a single call to a [Sink] or [KnotMarker].
//
// The points used depend on Op. MoveTo and LineTo use P0, QuadTo uses P0
// and P1, and CurveTo uses P0, P1 and P2. Open is only used by MoveTo, Knot
// only by MarkKnot.
type Instruction struct {
	Op   Op
	P0   Point
	P1   Point
	P2   Point
	Open bool
	Knot int
}

func (in Instruction) String() string {
	switch in.Op {
	case OpMoveTo:
		if in.Open {
			return fmt.Sprintf("MoveTo(%v, open)", in.P0)
		}
		return fmt.Sprintf("MoveTo(%v, closed)", in.P0)
	case OpLineTo:
		return fmt.Sprintf("LineTo(%v)", in.P0)
	case OpQuadTo:
		return fmt.Sprintf("QuadTo(%v, %v)", in.P0, in.P1)
	case OpCurveTo:
		return fmt.Sprintf("CurveTo(%v, %v, %v)", in.P0, in.P1, in.P2)
	case OpMarkKnot:
		return fmt.Sprintf("MarkKnot(%d)", in.Knot)
	default:
		return in.Op.String()
	}
}

// EndPoint returns the point the pen is at after the instruction. It returns
// false for MarkKnot, which doesn't move the pen.
func (in Instruction) EndPoint() (Point, bool) {
	switch in.Op {
	case OpMoveTo, OpLineTo:
		return in.P0, true
	case OpQuadTo:
		return in.P1, true
	case OpCurveTo:
		return in.P2, true
	default:
		return Point{}, false
	}
}

// Send calls the sink method corresponding to the instruction. MarkKnot is
// only passed on to sinks that implement [KnotMarker].
func (in Instruction) Send(sink Sink) error {
	switch in.Op {
	case OpMoveTo:
		return sink.MoveTo(in.P0.X, in.P0.Y, in.Open)
	case OpLineTo:
		return sink.LineTo(in.P0.X, in.P0.Y)
	case OpQuadTo:
		return sink.QuadTo(in.P0.X, in.P0.Y, in.P1.X, in.P1.Y)
	case OpCurveTo:
		return sink.CurveTo(in.P0.X, in.P0.Y, in.P1.X, in.P1.Y, in.P2.X, in.P2.Y)
	case OpMarkKnot:
		if m, ok := sink.(KnotMarker); ok {
			return m.MarkKnot(in.Knot)
		}
		return nil
	default:
		panic(fmt.Sprintf("unhandled case %v", in.Op))
	}
}

// Recorder is a sink that records all instructions, including knot marks.
type Recorder []Instruction

var _ Sink = (*Recorder)(nil)
var _ KnotMarker = (*Recorder)(nil)

func (r *Recorder) MoveTo(x, y float64, open bool) error {
	*r = append(*r, Instruction{Op: OpMoveTo, P0: Pt(x, y), Open: open})
	return nil
}

func (r *Recorder) LineTo(x, y float64) error {
	*r = append(*r, Instruction{Op: OpLineTo, P0: Pt(x, y)})
	return nil
}

func (r *Recorder) QuadTo(x1, y1, x2, y2 float64) error {
	*r = append(*r, Instruction{Op: OpQuadTo, P0: Pt(x1, y1), P1: Pt(x2, y2)})
	return nil
}

func (r *Recorder) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	*r = append(*r, Instruction{Op: OpCurveTo, P0: Pt(x1, y1), P1: Pt(x2, y2), P2: Pt(x3, y3)})
	return nil
}

func (r *Recorder) MarkKnot(index int) error {
	*r = append(*r, Instruction{Op: OpMarkKnot, Knot: index})
	return nil
}

// Replay sends the recorded instructions to sink, stopping at the first
// error.
func (r Recorder) Replay(sink Sink) error {
	for i, in := range r {
		if err := in.Send(sink); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, in.Op, err)
		}
	}
	return nil
}

// Drawing returns the recorded instructions without knot marks.
func (r Recorder) Drawing() []Instruction {
	out := make([]Instruction, 0, len(r))
	for _, in := range r {
		if in.Op != OpMarkKnot {
			out = append(out, in)
		}
	}
	return out
}
