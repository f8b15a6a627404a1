package spiro

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestAppendNumber(t *testing.T) {
	tests := []struct {
		in   float64
		prec int
		want string
	}{
		{0, 6, "0"},
		{math.Copysign(0, -1), 6, "0"},
		{100, 6, "100"},
		{-100, 6, "-100"},
		{1e20, 6, "100000000000000000000"},
		{0.5, 6, "0.5"},
		{-1.5, 6, "-1.5"},
		{26.17993877991494, 6, "26.1799"},
		{-70.71067811865476, 6, "-70.7107"},
		{99.99999999, 6, "100.0"},
		{-100.00000001, 6, "-100.0"},
		{0.1 + 0.2, 6, "0.3"},
		{12345.67, 6, "12345.7"},
		{123456.7, 6, "1.23457e+05"},
		{99999.99, 6, "1e+05"},
		{0.0001, 6, "0.0001"},
		{0.00001234, 6, "1.234e-05"},
		{math.Pi, 3, "3.14"},
		{math.Pi, 1, "3e+00"},
		{math.NaN(), 6, "NaN"},
	}
	for _, tt := range tests {
		if got := string(appendNumber(nil, tt.in, tt.prec)); got != tt.want {
			t.Errorf("appendNumber(%v, %d) = %q, want %q", tt.in, tt.prec, got, tt.want)
		}
	}
}

func TestSVGWriterContours(t *testing.T) {
	got, err := SVGPath(SVGOptions{}, func(sink Sink) error {
		sink.MoveTo(0, 0, false)
		sink.LineTo(10, 0)
		sink.QuadTo(10, 10, 0, 0)
		sink.MoveTo(20, 0, true)
		sink.CurveTo(20, 5.5, 25, 5.5, 25, 0)
		sink.MoveTo(30, 0, false)
		sink.LineTo(40, 0.25)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "M0,0 L10,0 Q10,10 0,0 Z M20,0 C20,5.5 25,5.5 25,0 M30,0 L40,0.25 Z"
	diff(t, want, got)
}

func TestSVGWriterEmpty(t *testing.T) {
	got, err := SVGPath(SVGOptions{}, func(Sink) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "", got)
}

func TestSVGWriterPrecision(t *testing.T) {
	got, err := SVGPath(SVGOptions{Precision: 3}, func(sink Sink) error {
		return ConvertToBezier(circle, true, sink)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "M-100,0 C-1e+02,26.2 -89.2,52.2 -70.7,70.7 ") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestSVGWriterClose(t *testing.T) {
	var sb strings.Builder
	sw := NewSVGWriter(&sb, SVGOptions{})
	sw.MoveTo(1, 2, false)
	sw.LineTo(3, 4)
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}
	diff(t, "M1,2 L3,4 Z", sb.String())

	if err := sw.Close(); !errors.Is(err, errSVGClosed) {
		t.Errorf("got error %v for second Close, want %v", err, errSVGClosed)
	}
	if err := sw.LineTo(5, 6); !errors.Is(err, errSVGClosed) {
		t.Errorf("got error %v for drawing after Close, want %v", err, errSVGClosed)
	}
	diff(t, "M1,2 L3,4 Z", sb.String())
}

func TestWriteSVGPathError(t *testing.T) {
	errStop := errors.New("stop")
	var sb strings.Builder
	err := WriteSVGPath(&sb, SVGOptions{}, func(sink Sink) error {
		sink.MoveTo(0, 0, false)
		sink.LineTo(1, 1)
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("got error %v, want %v", err, errStop)
	}
	// No closing Z after a failed draw.
	diff(t, "M0,0 L1,1", sb.String())
}

func TestWriteSVGPathSinkError(t *testing.T) {
	// An error from the converter's sink reaches the caller and leaves the
	// output unterminated.
	var sb strings.Builder
	err := WriteSVGPath(&sb, SVGOptions{}, func(sink Sink) error {
		return ConvertToBezier(circle, true, &failingSink{failAt: 3, err: errors.New("stop")})
	})
	if !errors.Is(err, ErrSink) {
		t.Fatalf("got error %v, want %v", err, ErrSink)
	}
	diff(t, "", sb.String())
}

func TestWriteSVGPathPanic(t *testing.T) {
	var sb strings.Builder
	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("got panic %v, want boom", r)
			}
		}()
		WriteSVGPath(&sb, SVGOptions{}, func(sink Sink) error {
			sink.MoveTo(0, 0, false)
			panic("boom")
		})
	}()
	diff(t, "M0,0", sb.String())
}

type failingWriter struct {
	n   int
	err error
}

func (w *failingWriter) Write(b []byte) (int, error) {
	if w.n == 0 {
		return 0, w.err
	}
	w.n--
	return len(b), nil
}

func TestSVGWriterWriteError(t *testing.T) {
	errWrite := errors.New("disk full")
	w := &failingWriter{n: 1, err: errWrite}
	err := WriteSVGPath(w, SVGOptions{}, func(sink Sink) error {
		return ConvertToBezier(circle, true, sink)
	})
	if !errors.Is(err, errWrite) {
		t.Fatalf("got error %v, want %v", err, errWrite)
	}
	var serr *SinkError
	if !errors.As(err, &serr) || serr.Op != "CurveTo" {
		t.Errorf("got error %v, want CurveTo sink error", err)
	}
}
