package spiro

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// failingSink records calls like a Recorder and returns err from the call
// with index failAt.
type failingSink struct {
	Recorder
	failAt int
	calls  int
	err    error
}

func (s *failingSink) call() error {
	n := s.calls
	s.calls++
	if n == s.failAt {
		return s.err
	}
	return nil
}

func (s *failingSink) MoveTo(x, y float64, open bool) error {
	if err := s.call(); err != nil {
		return err
	}
	return s.Recorder.MoveTo(x, y, open)
}

func (s *failingSink) LineTo(x, y float64) error {
	if err := s.call(); err != nil {
		return err
	}
	return s.Recorder.LineTo(x, y)
}

func (s *failingSink) QuadTo(x1, y1, x2, y2 float64) error {
	if err := s.call(); err != nil {
		return err
	}
	return s.Recorder.QuadTo(x1, y1, x2, y2)
}

func (s *failingSink) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	if err := s.call(); err != nil {
		return err
	}
	return s.Recorder.CurveTo(x1, y1, x2, y2, x3, y3)
}

func (s *failingSink) MarkKnot(index int) error {
	if err := s.call(); err != nil {
		return err
	}
	return s.Recorder.MarkKnot(index)
}
