package spiro

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// DefaultSVGPrecision is the default number of significant digits of
// non-integral coordinates.
const DefaultSVGPrecision = 6

var errSVGClosed = errors.New("SVG writer is closed")

// SVGOptions specifies optional settings for [SVGWriter].
type SVGOptions struct {
	// The number of significant digits with which to format non-integral
	// coordinates. Defaults to [DefaultSVGPrecision].
	Precision int
}

func (o SVGOptions) precision() int {
	if o.Precision <= 0 {
		return DefaultSVGPrecision
	}
	return o.Precision
}

// SVGWriter is a sink that writes SVG path data.
//
// Commands are separated by single spaces. Integral coordinates are written
// without a decimal point. Other coordinates are rounded to the configured
// number of significant digits and keep at least one digit after the decimal
// point, switching to exponent notation for very small and very large
// magnitudes.
//
// A closed contour is closed with a Z command when the next contour starts,
// or by [SVGWriter.Close] for the last contour. Close must be called exactly
// once; see [WriteSVGPath] for a function that takes care of that.
type SVGWriter struct {
	w    io.Writer
	opts SVGOptions
	buf  []byte
	err  error
	// Whether any commands have been written.
	started bool
	// Whether the current contour is open.
	open   bool
	closed bool
}

var _ Sink = (*SVGWriter)(nil)

// NewSVGWriter returns a writer that writes SVG path data to w.
func NewSVGWriter(w io.Writer, opts SVGOptions) *SVGWriter {
	return &SVGWriter{w: w, opts: opts, open: true}
}

// command writes a single command with the given coordinates.
func (sw *SVGWriter) command(cmd byte, coords ...float64) error {
	if sw.closed {
		return errSVGClosed
	}
	if sw.err != nil {
		return sw.err
	}
	sw.buf = sw.buf[:0]
	if sw.started {
		sw.buf = append(sw.buf, ' ')
	}
	sw.started = true
	sw.buf = append(sw.buf, cmd)
	for i, c := range coords {
		switch {
		case i == 0:
		case i%2 == 1:
			sw.buf = append(sw.buf, ',')
		default:
			sw.buf = append(sw.buf, ' ')
		}
		sw.buf = appendNumber(sw.buf, c, sw.opts.precision())
	}
	_, sw.err = sw.w.Write(sw.buf)
	return sw.err
}

func (sw *SVGWriter) MoveTo(x, y float64, open bool) error {
	if sw.started && !sw.open {
		if err := sw.command('Z'); err != nil {
			return err
		}
	}
	if err := sw.command('M', x, y); err != nil {
		return err
	}
	sw.open = open
	return nil
}

func (sw *SVGWriter) LineTo(x, y float64) error {
	return sw.command('L', x, y)
}

func (sw *SVGWriter) QuadTo(x1, y1, x2, y2 float64) error {
	return sw.command('Q', x1, y1, x2, y2)
}

func (sw *SVGWriter) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	return sw.command('C', x1, y1, x2, y2, x3, y3)
}

// Close finishes the path data, closing the last contour if it is closed.
// It returns the first error encountered while writing. Drawing into a
// closed writer returns an error.
func (sw *SVGWriter) Close() error {
	if sw.closed {
		return errSVGClosed
	}
	if sw.started && !sw.open {
		sw.command('Z')
	}
	sw.closed = true
	return sw.err
}

// abort finishes the writer without writing anything else.
func (sw *SVGWriter) abort() {
	sw.closed = true
}

// WriteSVGPath calls draw with an [SVGWriter] writing to w and closes the
// writer afterwards. If draw returns an error or panics, the writer is
// finished without writing the closing Z of the last contour.
func WriteSVGPath(w io.Writer, opts SVGOptions, draw func(Sink) error) error {
	sw := NewSVGWriter(w, opts)
	done := false
	defer func() {
		if !done {
			sw.abort()
		}
	}()
	if err := draw(sw); err != nil {
		return err
	}
	done = true
	return sw.Close()
}

// SVGPath is like [WriteSVGPath] but returns the path data as a string.
func SVGPath(opts SVGOptions, draw func(Sink) error) (string, error) {
	sb := &strings.Builder{}
	err := WriteSVGPath(sb, opts, draw)
	return sb.String(), err
}

// appendNumber formats f. Integral values are formatted without a decimal
// point. Other values are formatted with prec significant digits, dropping
// trailing zeros but keeping at least one digit after the decimal point.
// Exponent notation is used if the decimal exponent is less than -4 or at
// least prec-1.
func appendNumber(b []byte, f float64, prec int) []byte {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		if f == 0 {
			// Avoid printing -0.
			return append(b, '0')
		}
		return strconv.AppendFloat(b, f, 'f', 0, 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.AppendFloat(b, f, 'g', -1, 64)
	}

	// Formatting in exponent notation first gives us the exponent after
	// rounding to prec digits.
	var tmp [32]byte
	e := strconv.AppendFloat(tmp[:0], f, 'e', prec-1, 64)
	idx := bytes.LastIndexByte(e, 'e')
	exp, _ := strconv.Atoi(string(e[idx+1:]))
	if exp < -4 || exp >= prec-1 {
		mant := e[:idx]
		if bytes.IndexByte(mant, '.') >= 0 {
			mant = bytes.TrimRight(mant, "0")
			mant = bytes.TrimSuffix(mant, []byte("."))
		}
		b = append(b, mant...)
		return append(b, e[idx:]...)
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', prec-1-exp, 64)
	end := len(b)
	for end > start && b[end-1] == '0' && b[end-2] != '.' {
		end--
	}
	return b[:end]
}
