package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestConfigValidationErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		err    error
		errStr string
	}{
		{"wrapped", NewConfigValidationError("waypoints.1", errors.New("bad heading")), `error validating "waypoints.1": bad heading`},
		{"required", NewConfigValidationFieldRequiredError("constraints.0", "type"), `error validating "constraints.0": "type" is required`},
		{"root", NewConfigValidationFieldRequiredError("", "waypoints"), `error validating "": "waypoints" is required`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, tc.err, test.ShouldBeError, tc.errStr)
		})
	}
}
