package topology

import (
	"fmt"

	"k8s.io/utils/ptr"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
	"github.com/numtide/podtopology/pkg/manifest"
	"github.com/numtide/podtopology/pkg/util/name"
)

// UnitDescriptor wraps the argument set of one unit with the identity and
// image version it is rendered with. It is never modified after creation.
type UnitDescriptor struct {
	Name      string
	DNSName   string
	PodName   string
	Namespace string
	// Role selects how the unit renders. It is WORKER for every shard, even
	// when the shard arguments carry another pod role.
	Role    podv1alpha1.PodRole
	ShardID *int32
	Version string
	Args    *DeploymentArgs
}

// NewUnitDescriptor creates the descriptor of unitName. args is copied.
// The DNS name computed by Expand is reused when args was expanded for
// unitName.
func NewUnitDescriptor(
	unitName string,
	role podv1alpha1.PodRole,
	version string,
	args *DeploymentArgs,
) (*UnitDescriptor, error) {
	if args == nil {
		return nil, fmt.Errorf("unit %q has no arguments", unitName)
	}
	dns := args.DNSName
	if args.UnitName != unitName || dns == "" {
		var err error
		if dns, err = name.ToServiceName(unitName); err != nil {
			return nil, err
		}
	}

	d := &UnitDescriptor{
		Name:      unitName,
		DNSName:   dns,
		PodName:   args.Name,
		Namespace: args.Namespace,
		Role:      role,
		Version:   version,
		Args:      args.DeepCopy(),
	}
	if role == podv1alpha1.PodRoleWorker && args.ShardID != nil {
		d.ShardID = ptr.To(*args.ShardID)
	}
	return d, nil
}

// RenderManifests renders the fragments of the unit, main container first.
// It performs no I/O.
func (d *UnitDescriptor) RenderManifests(opts Options) ([]manifest.Fragment, error) {
	opts = opts.withDefaults()

	switch d.Role {
	case podv1alpha1.PodRoleGateway:
		return []manifest.Fragment{d.gatewayFragment(opts)}, nil

	case podv1alpha1.PodRoleHead:
		head, err := d.executorFragment(opts)
		if err != nil {
			return nil, err
		}
		fragments := []manifest.Fragment{head}
		if d.Args.UsesBefore != "" {
			f, err := d.sidecarFragment(manifest.ContainerUsesBefore, d.Args.UsesBefore, UsesBeforePort, opts)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, f)
		}
		if d.Args.UsesAfter != "" {
			f, err := d.sidecarFragment(manifest.ContainerUsesAfter, d.Args.UsesAfter, UsesAfterPort, opts)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, f)
		}
		return fragments, nil

	case podv1alpha1.PodRoleWorker:
		f, err := d.executorFragment(opts)
		if err != nil {
			return nil, err
		}
		return []manifest.Fragment{f}, nil
	}

	return nil, fmt.Errorf("unit %q has unknown role %q", d.Name, d.Role)
}

// Render renders the unit with its fragments.
func (d *UnitDescriptor) Render(opts Options) (manifest.Unit, error) {
	fragments, err := d.RenderManifests(opts)
	if err != nil {
		return manifest.Unit{}, fmt.Errorf("failed to render unit %q: %w", d.Name, err)
	}
	unit := manifest.Unit{
		Name:      d.Name,
		DNSName:   d.DNSName,
		PodName:   d.PodName,
		Namespace: d.Namespace,
		Role:      d.Role,
		Version:   d.Version,
		Fragments: fragments,
	}
	if d.ShardID != nil {
		unit.ShardID = ptr.To(*d.ShardID)
	}
	return unit, nil
}
