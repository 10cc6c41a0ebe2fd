package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Engine metric collectors.
var (
	resolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podtopology_resolve_total",
			Help: "Total number of topology resolutions by result.",
		},
		[]string{"result"},
	)

	resolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "podtopology_resolve_duration_seconds",
			Help:    "Latency of a topology resolution pass in seconds, version lookup included.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	podUnits = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "podtopology_units",
			Help: "Number of runtime units produced by the last resolution of a Pod, by role.",
		},
		[]string{"pod", "namespace", "role"},
	)

	versionLookupFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "podtopology_version_lookup_fallback_total",
			Help: "Total number of failed image version lookups that fell back to the default tag.",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		resolveTotal,
		resolveDuration,
		podUnits,
		versionLookupFallbackTotal,
	)
}

// Collectors returns all registered metric collectors. This is useful for
// testing that metrics are properly registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		resolveTotal,
		resolveDuration,
		podUnits,
		versionLookupFallbackTotal,
	}
}
