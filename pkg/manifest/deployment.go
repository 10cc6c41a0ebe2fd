package manifest

import (
	"errors"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numtide/podtopology/pkg/manifest/metadata"
)

// ErrNoFragments is returned when a unit has nothing to render.
var ErrNoFragments = errors.New("unit has no fragments")

// BuildDeployment creates the Deployment of a unit.
// Returns a deterministic Deployment based on the unit's fragments.
func BuildDeployment(unit *Unit) (*appsv1.Deployment, error) {
	primary := unit.Main()
	if primary == nil {
		return nil, fmt.Errorf("unit %q: %w", unit.Name, ErrNoFragments)
	}

	containers := make([]corev1.Container, 0, len(unit.Fragments))
	for i := range unit.Fragments {
		c, err := buildContainer(&unit.Fragments[i])
		if err != nil {
			return nil, fmt.Errorf("unit %q container %q: %w", unit.Name, unit.Fragments[i].Name, err)
		}
		containers = append(containers, c)
	}

	base, err := loadDeploymentTemplate(primary.CustomResourceDir)
	if err != nil {
		return nil, err
	}

	labels := buildSelectorLabels(unit)
	podLabels := metadata.MergeLabels(labels, base.Spec.Template.Labels)
	if unit.Version != "" {
		metadata.AddVersionLabel(podLabels, unit.Version)
	}

	replicas := primary.ReplicaCount

	deployment := base
	deployment.TypeMeta = metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"}
	deployment.Name = unit.DNSName
	deployment.Namespace = unit.Namespace
	deployment.Labels = metadata.MergeLabels(labels, base.Labels)
	deployment.Spec.Replicas = &replicas
	deployment.Spec.Selector = &metav1.LabelSelector{MatchLabels: labels}
	deployment.Spec.Template.Labels = podLabels
	deployment.Spec.Template.Spec.InitContainers = buildInitContainers(primary)
	deployment.Spec.Template.Spec.Containers = containers

	return deployment, nil
}

// buildSelectorLabels returns the labels that select exactly one unit.
func buildSelectorLabels(unit *Unit) map[string]string {
	labels := metadata.BuildStandardLabels(unit.DNSName, unit.Role.Component())
	metadata.AddPodLabel(labels, unit.PodName)
	if unit.ShardID != nil {
		metadata.AddShardLabel(labels, *unit.ShardID)
	}
	return labels
}
