package manifest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/yaml"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
)

func TestBuildService(t *testing.T) {
	t.Parallel()

	labels := map[string]string{
		"app.kubernetes.io/name":       "jina",
		"app.kubernetes.io/instance":   "encoder-head",
		"app.kubernetes.io/component":  "head",
		"app.kubernetes.io/part-of":    "jina",
		"app.kubernetes.io/managed-by": "podtopology",
		"podtopology.io/pod":           "encoder",
	}
	want := &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "encoder-head",
			Namespace: "search",
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: labels,
			Ports: []corev1.ServicePort{
				{
					Name:       "port-in",
					Port:       8081,
					TargetPort: intstr.FromString("port-in"),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}

	got, err := BuildService(headUnit())
	if err != nil {
		t.Fatalf("BuildService() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildService() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildService_Gateway(t *testing.T) {
	t.Parallel()

	unit := &Unit{
		Name:      "gateway",
		DNSName:   "gateway",
		PodName:   "gateway",
		Namespace: "search",
		Role:      podv1alpha1.PodRoleGateway,
		Fragments: []Fragment{{Name: ContainerGateway, Port: 8080}},
	}
	got, err := BuildService(unit)
	if err != nil {
		t.Fatalf("BuildService() error: %v", err)
	}
	if len(got.Spec.Ports) != 1 || got.Spec.Ports[0].Port != 8080 || got.Spec.Ports[0].Name != "port-expose" {
		t.Errorf("unexpected gateway service ports: %+v", got.Spec.Ports)
	}
}

func TestBuildObjects(t *testing.T) {
	t.Parallel()

	objs, err := BuildObjects(headUnit())
	if err != nil {
		t.Fatalf("BuildObjects() error: %v", err)
	}
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}
	svc, ok := objs[0].(*corev1.Service)
	if !ok {
		t.Fatalf("first object is %T, want *corev1.Service", objs[0])
	}
	deployment, ok := objs[1].(*appsv1.Deployment)
	if !ok {
		t.Fatalf("second object is %T, want *appsv1.Deployment", objs[1])
	}

	// The service must route to the port the main container opens.
	target := svc.Spec.Ports[0].TargetPort.String()
	found := false
	for _, p := range deployment.Spec.Template.Spec.Containers[0].Ports {
		if p.Name == target && p.ContainerPort == svc.Spec.Ports[0].Port {
			found = true
		}
	}
	if !found {
		t.Errorf("service target port %q is not opened by the main container", target)
	}
	for k, v := range svc.Spec.Selector {
		if deployment.Spec.Template.Labels[k] != v {
			t.Errorf("service selector %s=%s does not match pod labels", k, v)
		}
	}
}

func TestEncodeYAML(t *testing.T) {
	t.Parallel()

	objs, err := BuildObjects(headUnit())
	if err != nil {
		t.Fatalf("BuildObjects() error: %v", err)
	}
	data, err := EncodeYAML(objs)
	if err != nil {
		t.Fatalf("EncodeYAML() error: %v", err)
	}

	docs := strings.Split(string(data), "---\n")
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	var svc corev1.Service
	if err := yaml.Unmarshal([]byte(docs[0]), &svc); err != nil {
		t.Fatalf("failed to decode service: %v", err)
	}
	if svc.Kind != "Service" || svc.Name != "encoder-head" {
		t.Errorf("unexpected first document: kind=%q name=%q", svc.Kind, svc.Name)
	}

	var deployment appsv1.Deployment
	if err := yaml.Unmarshal([]byte(docs[1]), &deployment); err != nil {
		t.Fatalf("failed to decode deployment: %v", err)
	}
	if deployment.Kind != "Deployment" || len(deployment.Spec.Template.Spec.Containers) != 2 {
		t.Errorf("unexpected second document: kind=%q containers=%d",
			deployment.Kind, len(deployment.Spec.Template.Spec.Containers))
	}
}
