package timing

import "github.com/pkg/errors"

// ErrInfeasibleConstraints is returned when no velocity profile satisfies every constraint, for
// example when the combined acceleration range at a sample is empty.
var ErrInfeasibleConstraints = errors.New("infeasible constraints")

// NewInfeasibleConstraintsError returns an error wrapping ErrInfeasibleConstraints.
func NewInfeasibleConstraintsError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInfeasibleConstraints, format, args...)
}
