package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError wraps err with the path of the config entry that failed.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError is used when a required field of the config entry at
// path is missing.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}
