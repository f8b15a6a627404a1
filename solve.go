package spiro

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	DefaultMaxIterations = 20
	DefaultTolerance     = 1e-12
	DefaultMaxDepth      = 5
	DefaultQuadAccuracy  = 0.1
)

// Options configures solving and Bézier conversion. The zero value uses the
// defaults.
type Options struct {
	// Maximum number of Newton iterations. Defaults to
	// [DefaultMaxIterations].
	MaxIterations int
	// The solve has converged once the squared norm of an update falls below
	// Tolerance. Defaults to [DefaultTolerance].
	Tolerance float64
	// Maximum depth of recursive subdivision when converting a segment to
	// Bézier curves. Defaults to [DefaultMaxDepth].
	MaxDepth int
	// If positive, a cubic is only accepted if the spiral deviates from it by
	// at most Accuracy times the cubic's chord length. The default of zero
	// uses libspiro's rule: a piece becomes a single cubic once its bend is
	// below 1, with no bound on the error, which reproduces libspiro's
	// output exactly.
	Accuracy float64
	// Emit quadratic Béziers instead of cubic ones.
	Quadratic bool
	// Maximum distance between a cubic and its quadratic approximation, in
	// user units. Defaults to [DefaultQuadAccuracy].
	QuadAccuracy float64
}

func (o Options) maxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) quadAccuracy() float64 {
	if o.QuadAccuracy <= 0 {
		return DefaultQuadAccuracy
	}
	return o.QuadAccuracy
}

// Segment is the part of a spline between two consecutive knots.
//
// The curve is a polynomial spiral. Parametrized by arc length and scaled to
// unit length, its curvature at s ∈ [-½, ½] is
//
//	K[0] + K[1]s + K[2]s²/2 + K[3]s³/6
type Segment struct {
	Start Point
	End   Point
	// Type of the knot at Start.
	Type PointType
	// Angle between the previous segment's chord and this one's, or 0 if
	// the knot at Start doesn't constrain the tangent.
	Bend float64
	K    [4]float64
	// Length of the chord from Start to End.
	Chord float64
	// Angle of the chord.
	Angle float64
	// Arc length of the curve.
	Length float64
}

// Spline is a solved contour.
type Spline struct {
	// One entry per segment, plus one for the final knot. Only Start and
	// Type of the final entry are meaningful.
	segs       []Segment
	closed     bool
	first      int
	opts       Options
	iterations int
}

// Segments returns a copy of the spline's segments.
func (sp *Spline) Segments() []Segment {
	out := make([]Segment, len(sp.segs)-1)
	copy(out, sp.segs)
	return out
}

// Closed reports whether the spline is a closed contour.
func (sp *Spline) Closed() bool { return sp.closed }

// Iterations returns the number of Newton iterations the solve took. It is
// zero for splines without unknowns, such as polylines.
func (sp *Spline) Iterations() int { return sp.iterations }

// Knots returns the number of knots. For closed splines this equals the
// number of segments, for open splines it is one more.
func (sp *Spline) Knots() int {
	if sp.closed {
		return len(sp.segs) - 1
	}
	return len(sp.segs)
}

// KnotAngle returns the direction of the tangent at knot i, in radians. At
// corners, it is the direction in which the curve arrives at the knot, except
// at the first knot, where it is the direction in which the curve leaves.
//
// It panics if i is out of range.
func (sp *Spline) KnotAngle(i int) float64 {
	if i < 0 || i >= sp.Knots() {
		panic(fmt.Sprintf("knot index %d out of range [0, %d)", i, sp.Knots()))
	}
	if i == 0 {
		seg := &sp.segs[0]
		ends, _ := computeEnds(seg.K, seg.Chord)
		return seg.Angle - ends[0][0]
	}
	seg := &sp.segs[i-1]
	ends, _ := computeEnds(seg.K, seg.Chord)
	return seg.Angle + ends[1][0]
}

// Solve solves a single contour.
//
// If closed is false, the types of the first and last point are ignored and
// treated as [OpenContour] and [EndOpenContour]. Contour markers elsewhere in
// the contour are rejected with [ErrInvalidPointType].
func Solve(points []ControlPoint, closed bool, opts Options) (*Spline, error) {
	cps, err := prepareContour(points, closed)
	if err != nil {
		return nil, err
	}
	return solveContour(cps, 0, opts)
}

// SolveTagged solves every contour of a tagged point list. See
// [ConvertTaggedToBezier] for how contours are delimited.
func SolveTagged(points []ControlPoint, opts Options) ([]*Spline, error) {
	contours, err := splitTagged(points)
	if err != nil {
		return nil, err
	}
	out := make([]*Spline, 0, len(contours))
	for _, c := range contours {
		sp, err := solveContour(points[c.start:c.end], c.start, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}

func validatePoints(points []ControlPoint, offset int) error {
	for i, cp := range points {
		if err := cp.Validate(); err != nil {
			return &PointError{Index: offset + i, Err: err}
		}
	}
	return nil
}

func prepareContour(points []ControlPoint, closed bool) ([]ControlPoint, error) {
	if err := validatePoints(points, 0); err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, ErrContourTooShort
	}
	if closed {
		for i, cp := range points {
			if cp.Type.IsMarker() {
				return nil, &PointError{Index: i, Err: fmt.Errorf("%w: %s in closed contour", ErrInvalidPointType, cp.Type)}
			}
		}
		return points, nil
	}

	for i, cp := range points[1 : len(points)-1] {
		if cp.Type.IsMarker() {
			return nil, &PointError{Index: i + 1, Err: fmt.Errorf("%w: %s inside open contour", ErrInvalidPointType, cp.Type)}
		}
	}
	cps := make([]ControlPoint, len(points))
	copy(cps, points)
	cps[0].Type = OpenContour
	cps[len(cps)-1].Type = EndOpenContour
	return cps, nil
}

// solveContour solves a contour that has already been validated. A contour
// is open if its first point is of type OpenContour, in which case its last
// point is of type EndOpenContour. first is the index of the contour's first
// point in the caller's list, used when marking knots.
func solveContour(cps []ControlPoint, first int, opts Options) (*Spline, error) {
	n := len(cps)
	nseg := n
	if cps[0].Type == OpenContour {
		nseg = n - 1
	}
	segs := make([]Segment, nseg+1)
	for i := range segs {
		cp := cps[i%n]
		segs[i].Start = cp.Point()
		segs[i].Type = cp.Type
	}
	for i := range nseg {
		segs[i].End = segs[i+1].Start
		d := segs[i].End.Sub(segs[i].Start)
		segs[i].Chord = d.Hypot()
		segs[i].Angle = d.Angle()
	}
	ilast := nseg - 1
	for i := range nseg {
		switch segs[i].Type {
		case OpenContour, EndOpenContour, Corner:
			segs[i].Bend = 0
		default:
			segs[i].Bend = mod2pi(segs[i].Angle - segs[ilast].Angle)
		}
		ilast = i
	}

	sp := &Spline{
		segs:   segs,
		closed: cps[0].Type != OpenContour,
		first:  first,
		opts:   opts,
	}
	if err := sp.solve(); err != nil {
		return nil, err
	}
	for i := range nseg {
		seg := &segs[i]
		seg.Length = seg.Chord / integrateSpiro(seg.K).Hypot()
	}
	return sp, nil
}

// unknowns returns the number of curvature coefficients that have to be
// solved for in a segment, given the types of the knots at its ends.
func unknowns(ty0, ty1 PointType) int {
	switch {
	case ty0 == G4 || ty1 == G4 || ty0 == Right || ty1 == Left:
		return 4
	case ty0 == G2 && ty1 == G2:
		return 2
	case (ty0 == OpenContour || ty0 == Corner || ty0 == Left) && ty1 == G2,
		ty0 == G2 && (ty1 == EndOpenContour || ty1 == Corner || ty1 == Right):
		return 1
	default:
		return 0
	}
}

// cyclic reports whether the system of equations wraps around. This is the
// case for closed contours that don't start at a corner.
func (sp *Spline) cyclic() bool {
	ty := sp.segs[0].Type
	return ty != OpenContour && ty != Corner
}

func (sp *Spline) solve() error {
	nseg := len(sp.segs) - 1
	nmat := 0
	for i := range nseg {
		nmat += unknowns(sp.segs[i].Type, sp.segs[i+1].Type)
	}
	if nmat == 0 {
		return nil
	}

	size := nmat
	if sp.cyclic() {
		size *= 3
	}
	// decompose always visits the first five rows.
	size = max(size, 5)
	m := make(bandMatrix, size)
	v := make([]float64, size)
	perm := make([]int, size)

	// Very large or small contours are solved scaled by a power of two that
	// brings the mean chord near 1.
	scale := 1.0
	var total float64
	for i := range nseg {
		total += sp.segs[i].Chord
	}
	if mean := total / float64(nseg); mean > 0 && !math.IsInf(mean, 0) {
		if _, exp := math.Frexp(mean); exp > 10 || exp < -10 {
			scale = math.Ldexp(1, -exp)
		}
	}

	log := Logger()
	maxIter := sp.opts.maxIterations()
	tol := sp.opts.tolerance()
	var norm float64
	for i := range maxIter {
		norm = sp.iterate(m, perm, v, nmat, scale)
		sp.iterations = i + 1
		log.Debug("spiro iteration",
			zap.Int("iteration", sp.iterations),
			zap.Float64("norm", norm),
			zap.Int("unknowns", nmat))
		if norm < tol {
			return nil
		}
		if math.IsNaN(norm) || math.IsInf(norm, 0) {
			break
		}
	}
	log.Warn("spiro solve did not converge",
		zap.Int("iterations", sp.iterations),
		zap.Float64("norm", norm),
		zap.Int("segments", nseg))
	return &ConvergenceError{Iterations: sp.iterations, Norm: norm}
}

// iterate performs one Newton step and returns the squared norm of the
// update. There are nmat unknowns; m, perm and v are scratch space. Chords
// are multiplied by scale.
func (sp *Spline) iterate(m bandMatrix, perm []int, v []float64, nmat int, scale float64) float64 {
	segs := sp.segs
	nseg := len(segs) - 1
	clear(m)
	clear(v)

	// j is the column of the segment's first unknown, jj the row of the
	// next constraint. Constraints crossing the first knot of a cyclic
	// system live at the end of the matrix.
	j := 0
	jj := 0
	switch segs[0].Type {
	case G4:
		jj = nmat - 2
	case G2:
		jj = nmat - 1
	}
	next := func() int {
		row := jj % nmat
		jj = row + 1
		return row
	}

	for i := range nseg {
		seg := &segs[i]
		ty0, ty1 := seg.Type, segs[i+1].Type
		n := unknowns(ty0, ty1)
		ends, derivs := computeDerivs(seg.K, seg.Chord*scale, n)

		jthl, jk0l, jk1l, jk2l := -1, -1, -1, -1
		jthr, jk0r, jk1r, jk2r := -1, -1, -1, -1

		switch ty0 {
		case G4, G2, Left, Right:
			jthl = next()
			jk0l = next()
		}
		if ty0 == G4 {
			jk1l = next()
			jk2l = next()
		}

		if (ty0 == Left || ty0 == Corner || ty0 == OpenContour || ty0 == G2) && n == 4 {
			if ty0 != G2 {
				jk1l = next()
			}
			jk2l = next()
		}
		if (ty1 == Right || ty1 == Corner || ty1 == EndOpenContour || ty1 == G2) && n == 4 {
			if ty1 != G2 {
				jk1r = next()
			}
			jk2r = next()
		}

		switch ty1 {
		case G4, G2, Left, Right:
			jthr = jj % nmat
			jk0r = (jj + 1) % nmat
		}
		if ty1 == G4 {
			jk1r = (jj + 2) % nmat
			jk2r = (jj + 3) % nmat
		}

		m.addRow(v, jthl, j, n, nmat, derivs[0][0], seg.Bend-ends[0][0], 1)
		m.addRow(v, jk0l, j, n, nmat, derivs[1][0], ends[0][1], -1)
		m.addRow(v, jk1l, j, n, nmat, derivs[2][0], ends[0][2], -1)
		m.addRow(v, jk2l, j, n, nmat, derivs[3][0], ends[0][3], -1)
		m.addRow(v, jthr, j, n, nmat, derivs[0][1], -ends[1][0], 1)
		m.addRow(v, jk0r, j, n, nmat, derivs[1][1], -ends[1][1], 1)
		m.addRow(v, jk1r, j, n, nmat, derivs[2][1], -ends[1][2], 1)
		m.addRow(v, jk2r, j, n, nmat, derivs[3][1], -ends[1][3], 1)
		if jthl >= 0 {
			v[jthl] = mod2pi(v[jthl])
		}
		if jthr >= 0 {
			v[jthr] = mod2pi(v[jthr])
		}
		j += n
	}

	size := nmat
	j = 0
	if sp.cyclic() {
		copy(m[nmat:], m[:nmat])
		copy(m[2*nmat:], m[:nmat])
		copy(v[nmat:], v[:nmat])
		copy(v[2*nmat:], v[:nmat])
		size = 3 * nmat
		j = nmat
	}
	m.decompose(perm, size)
	m.solve(perm, v, size)

	var norm float64
	for i := range nseg {
		seg := &segs[i]
		n := unknowns(seg.Type, segs[i+1].Type)
		for k := range n {
			dk := v[j]
			j++
			seg.K[k] += dk
			norm += dk * dk
		}
		seg.K[0] = 2 * mod2pi(0.5*seg.K[0])
	}
	return norm
}

// addRow adds one constraint to row of the system: the residual x, and y
// times the partial derivatives of the constraint with respect to the n
// unknowns starting at column col. Rows are stored in band form, with the
// diagonal at index 5. Negative rows are ignored.
func (m bandMatrix) addRow(v []float64, row, col, n, nmat int, derivs [4]float64, x, y float64) {
	if row < 0 {
		return
	}
	off := (col + 5 - row + nmat) % nmat
	switch {
	case nmat < 6:
		off = col + 5 - row
	case nmat == 6:
		off = 2 + (col+3-row+nmat)%nmat
	}
	v[row] += x
	for k := range n {
		m[row].a[off+k] += y * derivs[k]
	}
}
