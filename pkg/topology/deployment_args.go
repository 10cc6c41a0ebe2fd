/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package topology

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
	"github.com/numtide/podtopology/pkg/util/name"
)

// Flags that only the gateway understands.
var gatewayOnlyFlags = []string{"port-expose", "pods-addresses"}

// DeploymentArgs is the argument set of one runtime unit.
//
// The exported fields bound in AddFlags are handed to the runtime on its
// command line. The remaining fields drive rendering only.
type DeploymentArgs struct {
	Name                  string
	Workspace             string
	LogConfig             string
	Quiet                 bool
	QuietError            bool
	TimeoutCtrl           int32
	Polling               podv1alpha1.PollingType
	DisableConnectionPool bool
	Shards                int32
	Replicas              int32
	Role                  podv1alpha1.PodRole
	PortIn                int32
	Host                  string
	UsesBeforeAddress     string
	UsesAfterAddress      string
	ConnectionList        string
	PortExpose            int32
	PodAddresses          map[string][]string

	// UnitName is the raw name of the unit and DNSName its normalized form.
	// Both are set by Expand.
	UnitName string
	DNSName  string
	// ShardID is set for workers only.
	ShardID    *int32
	Namespace  string
	Uses       string
	UsesBefore string
	UsesAfter  string
	UsesWith   map[string]string

	Env               map[string]string
	GPUs              string
	Resources         corev1.ResourceRequirements
	InitContainer     *podv1alpha1.InitContainerSpec
	CustomResourceDir string
}

// AddFlags binds the runtime flags of a to fs.
func (a *DeploymentArgs) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.Name, "name", a.Name, "name of the Pod")
	fs.StringVar(&a.Workspace, "workspace", a.Workspace, "working directory for IO operations")
	fs.StringVar(&a.LogConfig, "log-config", a.LogConfig, "logger configuration file")
	fs.BoolVar(&a.Quiet, "quiet", a.Quiet, "disable all log output")
	fs.BoolVar(&a.QuietError, "quiet-error", a.QuietError, "drop stack information from error logs")
	fs.Int32Var(&a.TimeoutCtrl, "timeout-ctrl", a.TimeoutCtrl, "control request timeout in milliseconds, -1 waits forever")
	fs.StringVar((*string)(&a.Polling), "polling", string(a.Polling), "dispatch strategy of the head: ANY or ALL")
	fs.BoolVar(&a.DisableConnectionPool, "k8s-disable-connection-pool", a.DisableConnectionPool,
		"route through the static connection list instead of the connection pool")
	fs.Int32Var(&a.Shards, "shards", a.Shards, "number of shards of the Pod")
	fs.Int32Var(&a.Replicas, "replicas", a.Replicas, "number of replicas of every shard")
	fs.StringVar((*string)(&a.Role), "pod-role", string(a.Role), "role of the unit")
	fs.Int32Var(&a.PortIn, "port-in", a.PortIn, "ingress port of the unit")
	fs.StringVar(&a.Host, "host", a.Host, "interface the unit binds to")
	fs.StringVar(&a.UsesBeforeAddress, "uses-before-address", a.UsesBeforeAddress, "address of the uses-before sidecar")
	fs.StringVar(&a.UsesAfterAddress, "uses-after-address", a.UsesAfterAddress, "address of the uses-after sidecar")
	fs.StringVar(&a.ConnectionList, "connection-list", a.ConnectionList, "static shard routing table")
	fs.Int32Var(&a.PortExpose, "port-expose", a.PortExpose, "port the gateway listens on")
	fs.Var(&addressesValue{m: &a.PodAddresses}, "pods-addresses", "addresses the gateway routes each Pod to")
}

// DeepCopy returns an independent copy of a.
func (a *DeploymentArgs) DeepCopy() *DeploymentArgs {
	if a == nil {
		return nil
	}
	out := *a
	if a.PodAddresses != nil {
		out.PodAddresses = make(map[string][]string, len(a.PodAddresses))
		for k, v := range a.PodAddresses {
			out.PodAddresses[k] = append([]string(nil), v...)
		}
	}
	if a.ShardID != nil {
		out.ShardID = ptr.To(*a.ShardID)
	}
	if a.UsesWith != nil {
		out.UsesWith = make(map[string]string, len(a.UsesWith))
		for k, v := range a.UsesWith {
			out.UsesWith[k] = v
		}
	}
	if a.Env != nil {
		out.Env = make(map[string]string, len(a.Env))
		for k, v := range a.Env {
			out.Env[k] = v
		}
	}
	a.Resources.DeepCopyInto(&out.Resources)
	if a.InitContainer != nil {
		out.InitContainer = a.InitContainer.DeepCopy()
	}
	return &out
}

// Expansion holds the argument sets of every unit of a Pod.
type Expansion struct {
	// Head is nil for the gateway.
	Head *DeploymentArgs
	// Workers holds one entry per shard, or the single gateway entry.
	Workers []*DeploymentArgs
}

// Expand derives the argument set of every unit of spec.
//
// Every argument set is built from its own deep copy of spec, so no two
// units share mutable state and spec is left untouched. The result depends
// only on spec.
//
// Every unit name is normalized exactly once here. The connection list of
// the head is built from the worker DNS names.
func Expand(spec *podv1alpha1.PodSpec) (*Expansion, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	if spec.IsGateway() {
		gw := argsFromSpec(spec)
		if err := gw.setUnitName(podv1alpha1.GatewayName); err != nil {
			return nil, err
		}
		gw.Role = podv1alpha1.PodRoleGateway
		gw.ShardID = ptr.To(int32(0))
		gw.PortIn = HeadPortIn
		if gw.PortExpose == 0 {
			gw.PortExpose = GatewayPortExpose
		}
		return &Expansion{Workers: []*DeploymentArgs{gw}}, nil
	}

	head := argsFromSpec(spec)
	if err := head.setUnitName(HeadUnitName(head.Name)); err != nil {
		return nil, err
	}
	head.Role = podv1alpha1.PodRoleHead
	head.Replicas = 1
	head.PortIn = HeadPortIn

	workerRole := podv1alpha1.PodRoleWorker
	if spec.Role == podv1alpha1.PodRoleGateway {
		workerRole = podv1alpha1.PodRoleGateway
	}
	workers := make([]*DeploymentArgs, 0, head.Shards)
	dnsNames := make([]string, 0, head.Shards)
	for i := range head.Shards {
		w := argsFromSpec(spec)
		if err := w.setUnitName(WorkerUnitName(head.Name, head.Shards, i)); err != nil {
			return nil, err
		}
		w.ShardID = ptr.To(i)
		w.UsesBefore = ""
		w.UsesAfter = ""
		w.PortIn = HeadPortIn
		w.Role = workerRole
		workers = append(workers, w)
		dnsNames = append(dnsNames, w.DNSName)
	}

	if !spec.ConnectionPoolEnabled() {
		list, err := connectionList(dnsNames, head.Namespace, HeadPortIn)
		if err != nil {
			return nil, err
		}
		head.ConnectionList = list
	}
	if spec.UsesBefore != "" {
		head.UsesBeforeAddress = UsesBeforeAddress()
	}
	if spec.UsesAfter != "" {
		head.UsesAfterAddress = UsesAfterAddress()
	}

	return &Expansion{Head: head, Workers: workers}, nil
}

// setUnitName names the unit a describes.
func (a *DeploymentArgs) setUnitName(unitName string) error {
	dns, err := name.ToServiceName(unitName)
	if err != nil {
		return err
	}
	a.UnitName = unitName
	a.DNSName = dns
	return nil
}

// argsFromSpec builds the common argument set of spec from a deep copy.
func argsFromSpec(spec *podv1alpha1.PodSpec) *DeploymentArgs {
	s := spec.DeepCopy()
	polling := s.Polling
	if polling == "" {
		polling = podv1alpha1.PollingAny
	}
	namespace := s.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &DeploymentArgs{
		Name:                  s.Name,
		Workspace:             s.Workspace,
		LogConfig:             s.LogConfig,
		Quiet:                 s.Quiet,
		QuietError:            s.QuietError,
		TimeoutCtrl:           s.TimeoutCtrlMillis(),
		Polling:               polling,
		DisableConnectionPool: !s.ConnectionPoolEnabled(),
		Shards:                s.ShardCount(),
		Replicas:              s.ReplicaCount(),
		Role:                  s.Role,
		Host:                  DefaultHost,
		PortExpose:            s.PortExpose,
		PodAddresses:          s.PodAddresses,
		Namespace:             namespace,
		Uses:                  s.Uses,
		UsesBefore:            s.UsesBefore,
		UsesAfter:             s.UsesAfter,
		UsesWith:              s.UsesWith,
		Env:                   s.Env,
		GPUs:                  s.GPUs,
		Resources:             s.Resources,
		InitContainer:         s.InitContainer,
		CustomResourceDir:     s.CustomResourceDir,
	}
}

// addressesValue renders a Pod address table as a JSON flag value.
type addressesValue struct {
	m *map[string][]string
}

func (v *addressesValue) String() string {
	if v.m == nil || len(*v.m) == 0 {
		return ""
	}
	data, err := json.Marshal(*v.m)
	if err != nil {
		return ""
	}
	return string(data)
}

func (v *addressesValue) Set(s string) error {
	var m map[string][]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return fmt.Errorf("invalid pod address table: %w", err)
	}
	*v.m = m
	return nil
}

func (v *addressesValue) Type() string {
	return "json"
}
