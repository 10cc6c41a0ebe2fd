// Package monitoring provides Prometheus metrics and tracing helpers for the
// topology engine.
//
// All metrics follow the naming convention podtopology_<metric>_<unit> and are
// registered against controller-runtime's default Prometheus registry on
// import, so any manager or metrics server embedding the engine exposes them.
//
// Usage in the engine:
//
//	ctx, span := monitoring.StartResolveSpan(ctx, spec.Name, namespace)
//	defer span.End()
//	monitoring.RecordResolve(spec.Name, namespace, err, elapsed)
package monitoring
