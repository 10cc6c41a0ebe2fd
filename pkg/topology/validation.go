package topology

import (
	"maps"
	"slices"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
)

// Validate checks that spec can be resolved. All problems are reported at
// once in a single ConfigurationError.
func Validate(spec *podv1alpha1.PodSpec) error {
	if spec == nil {
		return newConfigurationError("", field.Required(field.NewPath("spec"), "pod spec must be set"))
	}

	var errs field.ErrorList

	if spec.Name == "" {
		errs = append(errs, field.Required(field.NewPath("name"), ""))
	}
	if spec.Namespace != "" {
		for _, msg := range validation.IsDNS1123Label(spec.Namespace) {
			errs = append(errs, field.Invalid(field.NewPath("namespace"), spec.Namespace, msg))
		}
	}
	switch spec.Role {
	case "", podv1alpha1.PodRoleHead, podv1alpha1.PodRoleWorker, podv1alpha1.PodRoleGateway:
	default:
		errs = append(errs, field.NotSupported(field.NewPath("role"), spec.Role,
			[]string{string(podv1alpha1.PodRoleHead), string(podv1alpha1.PodRoleWorker), string(podv1alpha1.PodRoleGateway)}))
	}
	if spec.Shards != nil && *spec.Shards < 1 {
		errs = append(errs, field.Invalid(field.NewPath("shards"), *spec.Shards, "must be at least 1"))
	}
	if spec.Replicas != nil && *spec.Replicas < 1 {
		errs = append(errs, field.Invalid(field.NewPath("replicas"), *spec.Replicas, "must be at least 1"))
	}
	if !spec.IsGateway() && spec.Uses == "" {
		errs = append(errs, field.Required(field.NewPath("uses"), "an executor reference is required"))
	}
	if spec.Polling != "" && !spec.Polling.IsValid() {
		errs = append(errs, field.NotSupported(field.NewPath("polling"), spec.Polling,
			[]string{string(podv1alpha1.PollingAny), string(podv1alpha1.PollingAll)}))
	}
	if spec.TimeoutCtrl != nil && *spec.TimeoutCtrl < -1 {
		errs = append(errs, field.Invalid(field.NewPath("timeoutCtrl"), *spec.TimeoutCtrl, "must be -1 or greater"))
	}
	if spec.PortExpose != 0 {
		for _, msg := range validation.IsValidPortNum(int(spec.PortExpose)) {
			errs = append(errs, field.Invalid(field.NewPath("portExpose"), spec.PortExpose, msg))
		}
	}
	if spec.GPUs != "" {
		if _, err := resource.ParseQuantity(spec.GPUs); err != nil {
			errs = append(errs, field.Invalid(field.NewPath("gpus"), spec.GPUs, err.Error()))
		}
	}
	if spec.InitContainer != nil && spec.InitContainer.Image == "" {
		errs = append(errs, field.Required(field.NewPath("initContainer", "image"), ""))
	}
	for _, key := range slices.Sorted(maps.Keys(spec.Env)) {
		for _, msg := range validation.IsEnvVarName(key) {
			errs = append(errs, field.Invalid(field.NewPath("env").Key(key), key, msg))
		}
	}

	if len(errs) > 0 {
		return &ConfigurationError{Pod: spec.Name, Errs: errs}
	}
	return nil
}
