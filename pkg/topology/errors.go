package topology

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ErrInvalidConfiguration is matched by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid pod configuration")

// ConfigurationError reports a PodSpec that cannot be resolved.
type ConfigurationError struct {
	Pod  string
	Errs field.ErrorList
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for pod %q: %v", e.Pod, e.Errs.ToAggregate())
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func newConfigurationError(pod string, errs ...*field.Error) error {
	return &ConfigurationError{Pod: pod, Errs: errs}
}
