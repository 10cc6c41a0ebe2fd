package monitoring

import "time"

// RecordResolve records the result and duration of a resolution pass.
func RecordResolve(err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	resolveTotal.WithLabelValues(result).Inc()
	resolveDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// SetPodUnits sets the unit count gauges of a Pod. Old role label sets are
// cleaned up first so a Pod that lost its head does not keep reporting one.
func SetPodUnits(pod, namespace string, unitsByRole map[string]int) {
	podUnits.DeletePartialMatch(map[string]string{
		"pod":       pod,
		"namespace": namespace,
	})
	for role, n := range unitsByRole {
		podUnits.WithLabelValues(pod, namespace, role).Set(float64(n))
	}
}

// RecordVersionLookupFallback counts a failed version lookup.
func RecordVersionLookupFallback() {
	versionLookupFallbackTotal.Inc()
}
