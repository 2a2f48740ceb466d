package timing

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Names of the built-in constraint types.
const (
	VelocityLimitType           = "velocity_limit"
	CentripetalAccelerationType = "centripetal_acceleration"
	AccelerationLimitType       = "acceleration_limit"
	VelocityLimitRegionType     = "velocity_limit_region"
	DifferentialDriveType       = "differential_drive"
)

// NewConstraintFunc returns a pointer to a zero-valued constraint that configuration attributes
// are decoded into.
type NewConstraintFunc func() Constraint

var (
	registryMu          sync.RWMutex
	constraintRegistry = map[string]NewConstraintFunc{}
)

func init() {
	RegisterConstraint(VelocityLimitType, func() Constraint { return &VelocityLimit{} })
	RegisterConstraint(CentripetalAccelerationType, func() Constraint { return &CentripetalAcceleration{} })
	RegisterConstraint(AccelerationLimitType, func() Constraint { return &AccelerationLimit{} })
	RegisterConstraint(VelocityLimitRegionType, func() Constraint { return &VelocityLimitRegion{} })
	RegisterConstraint(DifferentialDriveType, func() Constraint { return &DifferentialDrive{} })
}

// RegisterConstraint makes a constraint type buildable from configuration under name. It panics if
// name is already taken.
func RegisterConstraint(name string, newConstraint NewConstraintFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, old := constraintRegistry[name]; old {
		panic(errors.Errorf("trying to register two constraints with same name %s", name))
	}
	if newConstraint == nil {
		panic(errors.Errorf("cannot register a nil constructor for constraint %s", name))
	}
	constraintRegistry[name] = newConstraint
}

// RegisteredConstraints returns the sorted names of every registered constraint type.
func RegisteredConstraints() []string {
	registryMu.RLock()
	names := lo.Keys(constraintRegistry)
	registryMu.RUnlock()
	sort.Strings(names)
	return names
}

// BuildConstraint creates a constraint of the named type from its configuration attributes.
// Attribute keys match the json tags of the constraint's fields; unknown keys are an error.
func BuildConstraint(name string, attributes map[string]interface{}) (Constraint, error) {
	registryMu.RLock()
	newConstraint, ok := constraintRegistry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown constraint type %q, expected one of: %s",
			name, strings.Join(RegisteredConstraints(), ", "))
	}

	constraint := newConstraint()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      constraint,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrapf(err, "decoding %s attributes", name)
	}
	if v, ok := constraint.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid %s constraint", name)
		}
	}
	return constraint, nil
}
