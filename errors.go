package spiro

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPointType is returned for unknown point type tags and for
	// contour markers that appear where they aren't allowed.
	ErrInvalidPointType = errors.New("invalid point type")
	// ErrContourTooShort is returned for contours with fewer than two points.
	ErrContourTooShort = errors.New("contour has fewer than two points")
	// ErrNonFinite is returned for control points with NaN or infinite
	// coordinates.
	ErrNonFinite = errors.New("non-finite coordinates")
	// ErrSolverDidNotConverge is returned when the spline solver exceeds its
	// iteration limit. The concrete error is a [*ConvergenceError].
	ErrSolverDidNotConverge = errors.New("solver did not converge")
	// ErrSink matches every [*SinkError].
	ErrSink = errors.New("sink error")
)

// PointError records which control point caused a validation error.
type PointError struct {
	Index int
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("control point %d: %s", e.Index, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

// ConvergenceError describes a solve that didn't reach the requested
// tolerance.
type ConvergenceError struct {
	// Number of iterations performed.
	Iterations int
	// Squared norm of the last update.
	Norm float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d iterations (norm %g)", ErrSolverDidNotConverge, e.Iterations, e.Norm)
}

func (e *ConvergenceError) Unwrap() error { return ErrSolverDidNotConverge }

// SinkError wraps an error returned by a [Sink] method. Emission stops at the
// first such error; whatever the sink consumed up to that point stands.
type SinkError struct {
	// The sink method that failed, such as "CurveTo".
	Op  string
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %s", e.Op, e.Err)
}

func (e *SinkError) Unwrap() []error { return []error{ErrSink, e.Err} }

func sinkErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SinkError{Op: op, Err: err}
}
