package manifest

import (
	"bytes"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"
)

// BuildObjects renders the Service and the Deployment of a unit, in that order.
func BuildObjects(unit *Unit) ([]client.Object, error) {
	svc, err := BuildService(unit)
	if err != nil {
		return nil, fmt.Errorf("failed to build service: %w", err)
	}
	deployment, err := BuildDeployment(unit)
	if err != nil {
		return nil, fmt.Errorf("failed to build deployment: %w", err)
	}
	return []client.Object{svc, deployment}, nil
}

// EncodeYAML writes objs as a multi-document YAML stream.
func EncodeYAML(objs []client.Object) ([]byte, error) {
	var buf bytes.Buffer
	for i, obj := range objs {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %q: %w",
				obj.GetObjectKind().GroupVersionKind().Kind, obj.GetName(), err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
