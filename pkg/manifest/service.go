package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/numtide/podtopology/pkg/manifest/metadata"
)

// BuildService creates the ClusterIP Service of a unit.
// Only the main fragment port is exposed; colocated filters are reached
// over localhost.
func BuildService(unit *Unit) (*corev1.Service, error) {
	primary := unit.Main()
	if primary == nil {
		return nil, fmt.Errorf("unit %q: %w", unit.Name, ErrNoFragments)
	}

	base, err := loadServiceTemplate(primary.CustomResourceDir)
	if err != nil {
		return nil, err
	}

	labels := buildSelectorLabels(unit)

	svc := base
	svc.TypeMeta = metav1.TypeMeta{APIVersion: "v1", Kind: "Service"}
	svc.Name = unit.DNSName
	svc.Namespace = unit.Namespace
	svc.Labels = metadata.MergeLabels(labels, base.Labels)
	if svc.Spec.Type == "" {
		svc.Spec.Type = corev1.ServiceTypeClusterIP
	}
	svc.Spec.Selector = labels
	svc.Spec.Ports = []corev1.ServicePort{
		{
			Name:       portName(primary),
			Port:       primary.Port,
			TargetPort: intstr.FromString(portName(primary)),
			Protocol:   corev1.ProtocolTCP,
		},
	}

	return svc, nil
}
