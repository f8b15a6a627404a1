package spiro

import (
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// GeomSink is a sink that builds a [path.Data], for use with renderers that
// consume seehuhn.de/go/geom paths. Closed contours are terminated with a
// close command.
type GeomSink struct {
	data    *path.Data
	pending bool
}

var _ Sink = (*GeomSink)(nil)

func (gs *GeomSink) path() *path.Data {
	if gs.data == nil {
		gs.data = &path.Data{}
	}
	return gs.data
}

func (gs *GeomSink) MoveTo(x, y float64, open bool) error {
	p := gs.path()
	if gs.pending {
		p.Close()
	}
	p.MoveTo(vec.Vec2{X: x, Y: y})
	gs.pending = !open
	return nil
}

func (gs *GeomSink) LineTo(x, y float64) error {
	gs.path().LineTo(vec.Vec2{X: x, Y: y})
	return nil
}

func (gs *GeomSink) QuadTo(x1, y1, x2, y2 float64) error {
	gs.path().QuadTo(vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2})
	return nil
}

func (gs *GeomSink) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	gs.path().CubeTo(vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2}, vec.Vec2{X: x3, Y: y3})
	return nil
}

// Finish closes the last contour if it is closed and returns the path. The
// sink must not be used afterwards.
func (gs *GeomSink) Finish() *path.Data {
	p := gs.path()
	if gs.pending {
		p.Close()
		gs.pending = false
	}
	return p
}

// ReplayGeom draws a [path.Data] into sink. Subpaths ending in a close
// command are reported as closed.
func ReplayGeom(p *path.Data, sink Sink) error {
	var bp BezPath
	idx := 0
	pt := func() Point {
		c := p.Coords[idx]
		idx++
		return Pt(c.X, c.Y)
	}
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			bp.MoveTo(pt())
		case path.CmdLineTo:
			bp.LineTo(pt())
		case path.CmdQuadTo:
			p1 := pt()
			bp.QuadTo(p1, pt())
		case path.CmdCubeTo:
			p1 := pt()
			p2 := pt()
			bp.CubicTo(p1, p2, pt())
		case path.CmdClose:
			bp.ClosePath()
		default:
			return fmt.Errorf("unsupported path command %v", cmd)
		}
	}
	return bp.Replay(sink)
}
