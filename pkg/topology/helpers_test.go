package topology

import (
	"context"
	"sync/atomic"

	"k8s.io/utils/ptr"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
)

// countingLookup records how often the image version is looked up.
type countingLookup struct {
	version string
	err     error
	calls   atomic.Int32
}

func (l *countingLookup) ImageVersion(context.Context) (string, error) {
	l.calls.Add(1)
	if l.err != nil {
		return "", l.err
	}
	return l.version, nil
}

func encoderSpec(shards int32) *podv1alpha1.PodSpec {
	return &podv1alpha1.PodSpec{
		Name:      "encoder",
		Namespace: "search",
		Uses:      DefaultUses,
		Shards:    ptr.To(shards),
	}
}
