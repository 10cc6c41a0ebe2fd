package metadata

import (
	"maps"
	"strconv"
)

// Standard Kubernetes label keys following kubernetes.io conventions.
//
// See: https://kubernetes.io/docs/concepts/overview/working-with-objects/common-labels/
const (
	// LabelAppName is the standard label key for the application name.
	LabelAppName = "app.kubernetes.io/name"

	// LabelAppInstance is the standard label key for the unique instance name.
	LabelAppInstance = "app.kubernetes.io/instance"

	// LabelAppVersion is the standard label key for the application version.
	LabelAppVersion = "app.kubernetes.io/version"

	// LabelAppComponent is the standard label key for the component within the
	// application.
	LabelAppComponent = "app.kubernetes.io/component"

	// LabelAppPartOf is the standard label key for the name of a higher level
	// application this one is part of.
	LabelAppPartOf = "app.kubernetes.io/part-of"

	// LabelAppManagedBy is the standard label key for the tool managing the
	// resource.
	LabelAppManagedBy = "app.kubernetes.io/managed-by"
)

const (
	// AppName is the fixed application name for all rendered resources.
	AppName = "jina"

	// ManagedBy identifies the tool generating these resources.
	ManagedBy = "podtopology"
)

const (
	// LabelPod identifies which Pod a unit belongs to.
	LabelPod = "podtopology.io/pod"

	// LabelShard identifies the shard index of a worker unit.
	LabelShard = "podtopology.io/shard"
)

// BuildStandardLabels builds the standard Kubernetes labels for a unit.
//
// Parameters:
//   - resourceName: The DNS name of the unit (e.g., "encoder-head")
//   - componentName: The unit role (e.g., "head", "worker", "gateway")
//
// Standard labels include:
//   - app.kubernetes.io/name: "jina"
//   - app.kubernetes.io/instance: <resourceName>
//   - app.kubernetes.io/component: <componentName>
//   - app.kubernetes.io/part-of: "jina"
//   - app.kubernetes.io/managed-by: "podtopology"
func BuildStandardLabels(resourceName, componentName string) map[string]string {
	return map[string]string{
		LabelAppName:      AppName,
		LabelAppInstance:  resourceName,
		LabelAppComponent: componentName,
		LabelAppPartOf:    AppName,
		LabelAppManagedBy: ManagedBy,
	}
}

// AddPodLabel adds the Pod label to the provided labels map.
func AddPodLabel(labels map[string]string, podName string) map[string]string {
	labels[LabelPod] = podName
	return labels
}

// AddShardLabel adds the shard label to the provided labels map.
func AddShardLabel(labels map[string]string, shardID int32) map[string]string {
	labels[LabelShard] = strconv.Itoa(int(shardID))
	return labels
}

// AddVersionLabel adds the version label to the provided labels map.
func AddVersionLabel(labels map[string]string, version string) map[string]string {
	labels[LabelAppVersion] = version
	return labels
}

// MergeLabels merges custom labels with standard labels.
//
// Note that standard labels take precedence over custom labels to prevent users
// from overriding labels the selectors depend on.
func MergeLabels(standardLabels, customLabels map[string]string) map[string]string {
	merged := make(map[string]string)

	// Copy custom labels first (if provided)
	maps.Copy(merged, customLabels)

	// Copy standard labels (overwriting any duplicates from custom)
	maps.Copy(merged, standardLabels)

	return merged
}
