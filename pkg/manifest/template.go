package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

// Base manifest file names looked up in a custom resource directory.
const (
	DeploymentTemplateFile = "deployment.yml"
	ServiceTemplateFile    = "service.yml"
)

// loadDeploymentTemplate returns the base Deployment found in dir, or an
// empty one when dir is unset or holds no deployment template.
func loadDeploymentTemplate(dir string) (*appsv1.Deployment, error) {
	d := &appsv1.Deployment{}
	if err := loadTemplate(dir, DeploymentTemplateFile, d); err != nil {
		return nil, err
	}
	return d, nil
}

// loadServiceTemplate returns the base Service found in dir, or an empty one
// when dir is unset or holds no service template.
func loadServiceTemplate(dir string) (*corev1.Service, error) {
	svc := &corev1.Service{}
	if err := loadTemplate(dir, ServiceTemplateFile, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func loadTemplate(dir, file string, into any) error {
	if dir == "" {
		return nil
	}
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, into); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return nil
}
