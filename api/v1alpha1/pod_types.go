/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
)

// NOTE: json tags are required.  Any new fields you add must have json tags for
// the fields to be serialized.

const (
	// GatewayName is the reserved Pod name that selects the gateway topology.
	GatewayName = "gateway"

	// DefaultShards is the shard count used when Shards is not set.
	DefaultShards int32 = 1

	// DefaultReplicas is the replica count used when Replicas is not set.
	DefaultReplicas int32 = 1

	// DefaultTimeoutCtrl is the control request timeout in milliseconds.
	DefaultTimeoutCtrl int32 = 60
)

// PodSpec declares one logical processing stage.
// The engine treats it as read-only and deep-copies it before deriving any
// per-unit field.
type PodSpec struct {
	// Name identifies the Pod. "gateway" is reserved for the gateway topology.
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`

	// Namespace is the namespace the units are deployed into.
	// +optional
	Namespace string `json:"namespace,omitempty"`

	// Role marks the Pod as the cluster's externally facing unit when set to GATEWAY.
	// +optional
	Role PodRole `json:"role,omitempty"`

	// Shards is the number of independent partitions of the executor.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=1
	// +optional
	Shards *int32 `json:"shards,omitempty"`

	// Replicas is the number of identical copies of every shard.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=1
	// +optional
	Replicas *int32 `json:"replicas,omitempty"`

	// Uses references the executor run by every shard.
	// +optional
	Uses string `json:"uses,omitempty"`

	// UsesBefore references the executor colocated with the head that runs
	// before requests are dispatched to the shards.
	// +optional
	UsesBefore string `json:"usesBefore,omitempty"`

	// UsesAfter references the executor colocated with the head that runs
	// on the merged replies of the shards.
	// +optional
	UsesAfter string `json:"usesAfter,omitempty"`

	// UsesWith holds free-form parameters handed to the executor.
	// +optional
	UsesWith map[string]string `json:"usesWith,omitempty"`

	// Polling is the dispatch strategy of the head.
	// +kubebuilder:default="ANY"
	// +optional
	Polling PollingType `json:"polling,omitempty"`

	// ConnectionPool enables the runtime connection pool that discovers and
	// balances across shard replicas. When disabled, the head gets a static
	// connection list instead. Defaults to true.
	// +optional
	ConnectionPool *bool `json:"connectionPool,omitempty"`

	// Workspace is the working directory for IO operations of the executor.
	// +optional
	Workspace string `json:"workspace,omitempty"`

	// LogConfig is the logger configuration file used by the runtime.
	// +optional
	LogConfig string `json:"logConfig,omitempty"`

	// Quiet disables log output of the runtime.
	// +optional
	Quiet bool `json:"quiet,omitempty"`

	// QuietError drops stack information from error logs.
	// +optional
	QuietError bool `json:"quietError,omitempty"`

	// TimeoutCtrl is the control request timeout in milliseconds, -1 waits forever.
	// +optional
	TimeoutCtrl *int32 `json:"timeoutCtrl,omitempty"`

	// PortExpose is the port the gateway listens on.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=65535
	// +optional
	PortExpose int32 `json:"portExpose,omitempty"`

	// PodAddresses maps Pod names to the addresses the gateway routes to.
	// Ignored when the connection pool is enabled.
	// +optional
	PodAddresses map[string][]string `json:"podAddresses,omitempty"`

	// Env is added to the environment of every container.
	// +optional
	Env map[string]string `json:"env,omitempty"`

	// Resources defines the compute resources of the executor container.
	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// GPUs is the number of GPUs requested by every worker replica.
	// +optional
	GPUs string `json:"gpus,omitempty"`

	// InitContainer runs before the runtime containers of every unit.
	// +optional
	InitContainer *InitContainerSpec `json:"initContainer,omitempty"`

	// CustomResourceDir points at a directory holding base manifests that
	// replace the built-in ones.
	// +optional
	CustomResourceDir string `json:"customResourceDir,omitempty"`
}

// InitContainerSpec describes the init container added to every unit.
type InitContainerSpec struct {
	// Image is the init container image.
	// +kubebuilder:validation:MinLength=1
	Image string `json:"image"`

	// Command overrides the image entrypoint.
	// +optional
	Command []string `json:"command,omitempty"`

	// Args are passed to the command.
	// +optional
	Args []string `json:"args,omitempty"`
}

// IsGateway reports whether the Pod is the reserved gateway sentinel.
func (s *PodSpec) IsGateway() bool {
	return s.Name == GatewayName
}

// ShardCount returns the configured shard count or DefaultShards.
func (s *PodSpec) ShardCount() int32 {
	if s.Shards == nil {
		return DefaultShards
	}
	return *s.Shards
}

// ReplicaCount returns the configured replica count or DefaultReplicas.
func (s *PodSpec) ReplicaCount() int32 {
	if s.Replicas == nil {
		return DefaultReplicas
	}
	return *s.Replicas
}

// ConnectionPoolEnabled reports whether routing is left to the runtime pool.
func (s *PodSpec) ConnectionPoolEnabled() bool {
	return s.ConnectionPool == nil || *s.ConnectionPool
}

// TimeoutCtrlMillis returns the configured control timeout or DefaultTimeoutCtrl.
func (s *PodSpec) TimeoutCtrlMillis() int32 {
	if s.TimeoutCtrl == nil {
		return DefaultTimeoutCtrl
	}
	return *s.TimeoutCtrl
}
