package spiro

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// RasterSink is a sink that fills the drawn contours into a
// [vector.Rasterizer], using the nonzero winding rule. Open contours are
// filled as if they were closed.
//
// Points are transformed by Transform before being rasterized. The zero
// value of Transform is treated as [Identity].
type RasterSink struct {
	Rasterizer *vector.Rasterizer
	Transform  Affine

	started bool
}

var _ Sink = (*RasterSink)(nil)

func (rs *RasterSink) pt(x, y float64) (float32, float32) {
	aff := rs.Transform
	if aff == (Affine{}) {
		aff = Identity
	}
	p := Pt(x, y).Transform(aff)
	return float32(p.X), float32(p.Y)
}

func (rs *RasterSink) MoveTo(x, y float64, open bool) error {
	if rs.started {
		rs.Rasterizer.ClosePath()
	}
	rs.started = true
	rs.Rasterizer.MoveTo(rs.pt(x, y))
	return nil
}

func (rs *RasterSink) LineTo(x, y float64) error {
	rs.Rasterizer.LineTo(rs.pt(x, y))
	return nil
}

func (rs *RasterSink) QuadTo(x1, y1, x2, y2 float64) error {
	ax, ay := rs.pt(x1, y1)
	bx, by := rs.pt(x2, y2)
	rs.Rasterizer.QuadTo(ax, ay, bx, by)
	return nil
}

func (rs *RasterSink) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	ax, ay := rs.pt(x1, y1)
	bx, by := rs.pt(x2, y2)
	cx, cy := rs.pt(x3, y3)
	rs.Rasterizer.CubeTo(ax, ay, bx, by, cx, cy)
	return nil
}

// Close closes the last contour. It must be called before drawing the
// rasterizer.
func (rs *RasterSink) Close() {
	if rs.started {
		rs.Rasterizer.ClosePath()
		rs.started = false
	}
}

// Rasterize calls draw with a [RasterSink] and returns the resulting
// coverage mask of the given size. Points are transformed by aff first.
func Rasterize(width, height int, aff Affine, draw func(Sink) error) (*image.Alpha, error) {
	r := vector.NewRasterizer(width, height)
	rs := &RasterSink{Rasterizer: r, Transform: aff}
	if err := draw(rs); err != nil {
		return nil, err
	}
	rs.Close()
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst, nil
}

// Composite paints mask onto dst in color src, for example to render a
// rasterized spline onto a white background.
func Composite(dst draw.Image, mask *image.Alpha, src image.Image) {
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}
