package manifest

import (
	"fmt"
	"slices"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// ResourceGPU is the extended resource requested for fragments with GPUs.
const ResourceGPU corev1.ResourceName = "nvidia.com/gpu"

// buildContainer creates the container spec of one fragment.
func buildContainer(f *Fragment) (corev1.Container, error) {
	resources, err := buildResources(f)
	if err != nil {
		return corev1.Container{}, err
	}

	return corev1.Container{
		Name:            f.Name,
		Image:           f.ContainerImage,
		ImagePullPolicy: f.PullPolicy,
		Command:         slices.Clone(f.Command),
		Args:            slices.Clone(f.Args),
		Env:             buildContainerEnv(f.Env),
		Resources:       resources,
		Ports: []corev1.ContainerPort{
			{
				Name:          portName(f),
				ContainerPort: f.Port,
				Protocol:      corev1.ProtocolTCP,
			},
		},
	}, nil
}

// buildResources copies the fragment resources and adds the GPU limit.
func buildResources(f *Fragment) (corev1.ResourceRequirements, error) {
	res := *f.Resources.DeepCopy()
	if f.GPUs == "" {
		return res, nil
	}

	q, err := resource.ParseQuantity(f.GPUs)
	if err != nil {
		return corev1.ResourceRequirements{}, fmt.Errorf("invalid gpu count %q: %w", f.GPUs, err)
	}
	if res.Limits == nil {
		res.Limits = corev1.ResourceList{}
	}
	res.Limits[ResourceGPU] = q
	return res, nil
}

// buildContainerEnv converts env into environment variables sorted by name.
func buildContainerEnv(env map[string]string) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	vars := make([]corev1.EnvVar, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, corev1.EnvVar{Name: k, Value: env[k]})
	}
	return vars
}

// buildInitContainers creates the init containers of a unit.
func buildInitContainers(f *Fragment) []corev1.Container {
	if f.InitContainer == nil {
		return nil
	}
	return []corev1.Container{
		{
			Name:            f.InitContainer.Name,
			Image:           f.InitContainer.Image,
			ImagePullPolicy: f.PullPolicy,
			Command:         slices.Clone(f.InitContainer.Command),
			Args:            slices.Clone(f.InitContainer.Args),
		},
	}
}
