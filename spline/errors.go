package spline

import "github.com/pkg/errors"

// ErrDegenerateSpline is returned when waypoints cannot define a smooth curve: fewer than two of
// them, or consecutive waypoints so close that the tangent between them is undefined.
var ErrDegenerateSpline = errors.New("degenerate spline")

// NewDegenerateSplineError returns an error wrapping ErrDegenerateSpline with a description of the
// offending input.
func NewDegenerateSplineError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDegenerateSpline, format, args...)
}
