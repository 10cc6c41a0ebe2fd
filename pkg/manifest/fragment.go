package manifest

import (
	corev1 "k8s.io/api/core/v1"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
)

// Container names of the fragments a unit can carry.
const (
	ContainerExecutor   = "executor"
	ContainerUsesBefore = "uses-before"
	ContainerUsesAfter  = "uses-after"
	ContainerGateway    = "gateway"
)

// Unit is one runtime unit with the fragments rendered for it.
type Unit struct {
	// Name is the raw unit name, e.g. "encoder-head" or "encoder-0".
	Name string `json:"name"`
	// DNSName is Name normalized for use as a Kubernetes resource name.
	DNSName string `json:"dnsName"`
	// PodName is the name of the Pod the unit belongs to.
	PodName string `json:"podName"`
	// Namespace is the namespace the unit is deployed into.
	Namespace string `json:"namespace"`
	// Role is the role of the unit.
	Role podv1alpha1.PodRole `json:"role"`
	// ShardID is set for worker units only.
	ShardID *int32 `json:"shardId,omitempty"`
	// Version is the runtime image version resolved for this pass.
	Version string `json:"version"`
	// Fragments lists the main container first, then colocated filters.
	Fragments []Fragment `json:"fragments"`
}

// Fragment is the container-level record of a unit.
type Fragment struct {
	// Name is the container name.
	Name string `json:"name"`
	// Role is the role the container runs with.
	Role podv1alpha1.PodRole `json:"role"`
	// ContainerImage is the image the container runs.
	ContainerImage string `json:"containerImage"`
	// Command is the container entrypoint.
	Command []string `json:"command"`
	// Args are the arguments passed to Command.
	Args []string `json:"args"`
	// ReplicaCount is the number of replicas of the unit.
	ReplicaCount int32 `json:"replicaCount"`
	// InitContainer runs before the runtime containers.
	InitContainer *InitContainer `json:"initContainer,omitempty"`
	// Env is added to the container environment.
	Env map[string]string `json:"env,omitempty"`
	// GPUs is the GPU count requested by the container.
	GPUs string `json:"gpus,omitempty"`
	// Port is the port the container listens on.
	Port int32 `json:"port"`
	// Resources are the compute resources of the container.
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`
	// CustomResourceDir points at base manifests overriding the built-in ones.
	CustomResourceDir string `json:"customResourceDir,omitempty"`
	// PullPolicy is the image pull policy.
	PullPolicy corev1.PullPolicy `json:"pullPolicy,omitempty"`
}

// InitContainer is the init container record of a fragment.
type InitContainer struct {
	Name    string   `json:"name"`
	Image   string   `json:"image"`
	Command []string `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// Main returns the main fragment of the unit, or nil if it has none.
func (u *Unit) Main() *Fragment {
	if len(u.Fragments) == 0 {
		return nil
	}
	return &u.Fragments[0]
}

// portName returns the container port name used for f.
func portName(f *Fragment) string {
	switch f.Name {
	case ContainerExecutor:
		return "port-in"
	case ContainerGateway:
		return "port-expose"
	default:
		return f.Name
	}
}
