package topology

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numtide/podtopology/pkg/version"
)

const (
	// DefaultUses is the executor reference served by the stock runtime image.
	DefaultUses = "BaseExecutor"

	// DefaultNamespace is used when neither the PodSpec nor Options name one.
	DefaultNamespace = metav1.NamespaceDefault

	// RuntimeCommand is the entrypoint of every runtime container.
	RuntimeCommand = "jina"

	// GeneratedConfigFile is the executor config a custom image ships with.
	GeneratedConfigFile = "config.yml"

	// ImageRepository hosts the stock runtime images.
	ImageRepository = "jinaai/jina"

	// TestImageTag selects the image built from the working tree in tests.
	TestImageTag = "test-pip"

	// DefaultImagePullPolicy is the pull policy of every container.
	DefaultImagePullPolicy = corev1.PullIfNotPresent

	// InitContainerName is the name of the init container of every unit.
	InitContainerName = "init"

	executorImageSuffix = "-py38-perf"
	gatewayImageSuffix  = "-py38-standard"
	dockerScheme        = "docker://"
)

// Options configures a resolution pass.
type Options struct {
	// Namespace is used for Pods that do not set one.
	Namespace string
	// DefaultUses is the executor reference that runs on the stock image.
	DefaultUses string
	// UseTestImage replaces every stock image by the test image. No version
	// lookup is made when set.
	UseTestImage bool
	// Lookup resolves the stock image version. Nil uses version.FallbackVersion.
	Lookup version.Lookup
}

// DefaultOptions returns Options with the stock defaults and no version lookup.
func DefaultOptions() Options {
	return Options{
		Namespace:   DefaultNamespace,
		DefaultUses: DefaultUses,
	}
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.DefaultUses == "" {
		o.DefaultUses = DefaultUses
	}
	return o
}
