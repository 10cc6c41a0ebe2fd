package topology

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/numtide/podtopology/pkg/util/name"
)

// Well-known ports of the units of a Pod. They never overlap so every unit
// of a Pod can share one host.
const (
	// HeadPortIn is the ingress port of heads and workers.
	HeadPortIn int32 = 8081
	// UsesBeforePort is the ingress port of the uses-before sidecar.
	UsesBeforePort int32 = 8082
	// UsesAfterPort is the ingress port of the uses-after sidecar.
	UsesAfterPort int32 = 8083
	// GatewayPortExpose is the default port the gateway listens on.
	GatewayPortExpose int32 = 8080
)

const (
	// DefaultHost is the interface every runtime container binds to.
	DefaultHost = "0.0.0.0"

	localhost = "127.0.0.1"
)

// UsesBeforeAddress is the address the head reaches its uses-before sidecar on.
func UsesBeforeAddress() string {
	return localhost + ":" + strconv.Itoa(int(UsesBeforePort))
}

// UsesAfterAddress is the address the head reaches its uses-after sidecar on.
func UsesAfterAddress() string {
	return localhost + ":" + strconv.Itoa(int(UsesAfterPort))
}

// HeadUnitName returns the unit name of the head of pod.
func HeadUnitName(pod string) string {
	return pod + "-head"
}

// WorkerUnitName returns the unit name of shard of a pod with shards shards.
// A single shard is named after the Pod itself.
func WorkerUnitName(pod string, shards, shard int32) string {
	if shards > 1 {
		return fmt.Sprintf("%s-%d", pod, shard)
	}
	return pod
}

// ServiceAddress returns the in-cluster address of a unit service.
func ServiceAddress(dnsName, namespace string, port int32) string {
	return fmt.Sprintf("%s.%s.svc:%d", dnsName, namespace, port)
}

// BuildConnectionList renders the static routing table a head uses when the
// connection pool is disabled. It is a JSON object mapping every shard index,
// in ascending order, to the service address of that shard:
//
//	{"0": "encoder-0.search.svc:8081","1": "encoder-1.search.svc:8081"}
func BuildConnectionList(shards int32, pod, namespace string, port int32) (string, error) {
	if shards < 1 {
		return "", newConfigurationError(pod,
			field.Invalid(field.NewPath("shards"), shards, "must be at least 1"))
	}

	dnsNames := make([]string, 0, shards)
	for i := range shards {
		dnsName, err := name.ToServiceName(WorkerUnitName(pod, shards, i))
		if err != nil {
			return "", err
		}
		dnsNames = append(dnsNames, dnsName)
	}
	return connectionList(dnsNames, namespace, port)
}

// connectionList renders the routing table of shards already named.
// dnsNames is indexed by shard.
func connectionList(dnsNames []string, namespace string, port int32) (string, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, dnsName := range dnsNames {
		addr, err := json.Marshal(ServiceAddress(dnsName, namespace, port))
		if err != nil {
			return "", fmt.Errorf("failed to encode address of shard %d: %w", i, err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `"%d": %s`, i, addr)
	}
	b.WriteByte('}')
	return b.String(), nil
}
