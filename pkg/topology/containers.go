package topology

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
	"github.com/numtide/podtopology/pkg/cliargs"
	"github.com/numtide/podtopology/pkg/manifest"
)

const (
	workerRuntime = "WorkerRuntime"
	headRuntime   = "HeadRuntime"
)

type usesMetas struct {
	ShardID *int32 `json:"shard_id"`
}

func (d *UnitDescriptor) gatewayFragment(opts Options) manifest.Fragment {
	args := d.Args.DeepCopy()
	if !args.DisableConnectionPool {
		args.PodAddresses = nil
	}

	f := d.baseFragment(manifest.ContainerGateway, podv1alpha1.PodRoleGateway)
	f.ContainerImage = stockImage(d.Version, gatewayImageSuffix, opts.UseTestImage)
	f.Args = append([]string{"gateway"}, cliargs.ToParameters(args, "pod-role")...)
	f.ReplicaCount = 1
	f.Port = args.PortExpose
	f.Resources = *args.Resources.DeepCopy()
	return f
}

func (d *UnitDescriptor) executorFragment(opts Options) (manifest.Fragment, error) {
	cls := workerRuntime
	if d.Role == podv1alpha1.PodRoleHead {
		cls = headRuntime
	}
	args, err := runtimeArgs(d.Args, d.Args.Uses, cls, d.ShardID, opts)
	if err != nil {
		return manifest.Fragment{}, err
	}

	f := d.baseFragment(manifest.ContainerExecutor, d.Role)
	f.ContainerImage = executorImage(d.Args.Uses, d.Version, opts)
	f.Args = args
	f.Port = d.Args.PortIn
	f.Resources = *d.Args.Resources.DeepCopy()
	if d.Role == podv1alpha1.PodRoleWorker {
		f.GPUs = d.Args.GPUs
	}
	return f, nil
}

// sidecarFragment renders a filter executor colocated with the head. It runs
// the worker runtime on its own port and knows nothing about the shards.
func (d *UnitDescriptor) sidecarFragment(
	container, uses string,
	port int32,
	opts Options,
) (manifest.Fragment, error) {
	sidecar := d.Args.DeepCopy()
	sidecar.Role = podv1alpha1.PodRoleWorker
	sidecar.PortIn = port
	sidecar.ConnectionList = ""
	sidecar.UsesBeforeAddress = ""
	sidecar.UsesAfterAddress = ""
	sidecar.UsesWith = nil

	args, err := runtimeArgs(sidecar, uses, workerRuntime, nil, opts)
	if err != nil {
		return manifest.Fragment{}, err
	}

	f := d.baseFragment(container, podv1alpha1.PodRoleWorker)
	f.ContainerImage = executorImage(uses, d.Version, opts)
	f.Args = args
	f.Port = port
	return f, nil
}

// baseFragment carries the fields shared by every fragment of the unit.
func (d *UnitDescriptor) baseFragment(container string, role podv1alpha1.PodRole) manifest.Fragment {
	f := manifest.Fragment{
		Name:              container,
		Role:              role,
		Command:           []string{RuntimeCommand},
		ReplicaCount:      d.Args.Replicas,
		Env:               maps.Clone(d.Args.Env),
		CustomResourceDir: d.Args.CustomResourceDir,
		PullPolicy:        DefaultImagePullPolicy,
	}
	if ic := d.Args.InitContainer; ic != nil {
		f.InitContainer = &manifest.InitContainer{
			Name:    InitContainerName,
			Image:   ic.Image,
			Command: append([]string(nil), ic.Command...),
			Args:    append([]string(nil), ic.Args...),
		}
	}
	return f
}

// runtimeArgs builds the container arguments of an executor runtime.
func runtimeArgs(
	args *DeploymentArgs,
	uses, runtimeCls string,
	shardID *int32,
	opts Options,
) ([]string, error) {
	metas, err := json.Marshal(usesMetas{ShardID: shardID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode uses-metas: %w", err)
	}

	ref := uses
	if uses != opts.DefaultUses {
		ref = GeneratedConfigFile
	}

	out := []string{
		"executor",
		"--native",
		"--uses", ref,
		"--runtime-cls", runtimeCls,
		"--uses-metas", string(metas),
	}
	if len(args.UsesWith) > 0 {
		with, err := json.Marshal(args.UsesWith)
		if err != nil {
			return nil, fmt.Errorf("failed to encode uses-with: %w", err)
		}
		out = append(out, "--uses-with", string(with))
	}
	return append(out, cliargs.ToParameters(args, gatewayOnlyFlags...)...), nil
}

// executorImage returns the image running uses. The default executor runs
// on the stock image, docker references on their own image.
func executorImage(uses, version string, opts Options) string {
	if uses == opts.DefaultUses {
		return stockImage(version, executorImageSuffix, opts.UseTestImage)
	}
	return strings.TrimPrefix(uses, dockerScheme)
}

func stockImage(version, suffix string, test bool) string {
	if test {
		return ImageRepository + ":" + TestImageTag
	}
	return ImageRepository + ":" + version + suffix
}
