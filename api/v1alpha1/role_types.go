package v1alpha1

import "strings"

// PodRole is the role a runtime unit plays inside a Pod.
// +kubebuilder:validation:Enum=HEAD;WORKER;GATEWAY
type PodRole string

const (
	// PodRoleHead routes requests to the shards of a Pod and merges replies.
	PodRoleHead PodRole = "HEAD"
	// PodRoleWorker runs one shard of the Pod's executor.
	PodRoleWorker PodRole = "WORKER"
	// PodRoleGateway is the externally facing entry unit of the whole system.
	PodRoleGateway PodRole = "GATEWAY"
)

// Component returns the lowercase form used in labels and container names.
func (r PodRole) Component() string {
	return strings.ToLower(string(r))
}

// PollingType is the strategy a head uses to dispatch a request to replicas.
// +kubebuilder:validation:Enum=ANY;ALL
type PollingType string

const (
	// PollingAny sends the request to exactly one replica.
	PollingAny PollingType = "ANY"
	// PollingAll broadcasts the request to every replica.
	PollingAll PollingType = "ALL"
)

// IsValid reports whether p is a known polling strategy.
func (p PollingType) IsValid() bool {
	return p == PollingAny || p == PollingAll
}
