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
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	podv1alpha1 "github.com/numtide/podtopology/api/v1alpha1"
	"github.com/numtide/podtopology/pkg/manifest"
	"github.com/numtide/podtopology/pkg/monitoring"
	"github.com/numtide/podtopology/pkg/version"
)

// Resolve expands spec into its units and renders the fragments of each.
//
// Units are returned in a fixed order: the head first, then the workers by
// ascending shard index. The gateway Pod resolves to its single gateway
// unit. Either every unit is returned or an error is; the error is a
// ConfigurationError or a name.NamingError.
//
// The image version is looked up at most once per call. A failed lookup is
// logged and the fallback version is used.
func Resolve(
	ctx context.Context,
	spec *podv1alpha1.PodSpec,
	opts Options,
) ([]manifest.Unit, error) {
	start := time.Now()
	opts = opts.withDefaults()

	if spec == nil {
		err := Validate(nil)
		monitoring.RecordResolve(err, time.Since(start))
		return nil, err
	}

	s := spec.DeepCopy()
	if s.Namespace == "" {
		s.Namespace = opts.Namespace
	}

	ctx, span := monitoring.StartResolveSpan(ctx, s.Name, s.Namespace)
	defer span.End()
	ctx = monitoring.EnrichLoggerWithTrace(ctx)
	logger := log.FromContext(ctx).WithValues("pod", s.Name, "namespace", s.Namespace)
	ctx = log.IntoContext(ctx, logger)

	logger.V(1).Info("resolve started")

	units, err := resolve(ctx, s, opts)
	monitoring.RecordResolve(err, time.Since(start))
	if err != nil {
		monitoring.RecordSpanError(span, err)
		logger.Error(err, "Failed to resolve pod topology")
		return nil, err
	}

	unitsByRole := make(map[string]int, 3)
	for _, u := range units {
		unitsByRole[u.Role.Component()]++
	}
	monitoring.SetPodUnits(s.Name, s.Namespace, unitsByRole)

	logger.V(1).Info("resolve complete", "units", len(units), "duration", time.Since(start).String())
	return units, nil
}

func resolve(
	ctx context.Context,
	spec *podv1alpha1.PodSpec,
	opts Options,
) ([]manifest.Unit, error) {
	exp, err := Expand(spec)
	if err != nil {
		return nil, err
	}

	imageVersion := lookupVersion(ctx, opts)

	var descriptors []*UnitDescriptor
	if spec.IsGateway() {
		d, err := NewUnitDescriptor(podv1alpha1.GatewayName, podv1alpha1.PodRoleGateway, imageVersion, exp.Workers[0])
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	} else {
		if exp.Head != nil {
			d, err := NewUnitDescriptor(HeadUnitName(spec.Name), podv1alpha1.PodRoleHead, imageVersion, exp.Head)
			if err != nil {
				return nil, err
			}
			descriptors = append(descriptors, d)
		}
		shards := int32(len(exp.Workers))
		for i, args := range exp.Workers {
			unitName := WorkerUnitName(spec.Name, shards, int32(i))
			d, err := NewUnitDescriptor(unitName, podv1alpha1.PodRoleWorker, imageVersion, args)
			if err != nil {
				return nil, err
			}
			descriptors = append(descriptors, d)
		}
	}

	logger := log.FromContext(ctx)
	units := make([]manifest.Unit, 0, len(descriptors))
	for _, d := range descriptors {
		unit, err := d.Render(opts)
		if err != nil {
			return nil, err
		}
		logger.V(1).Info("rendered unit", "unit", unit.Name, "role", unit.Role, "fragments", len(unit.Fragments))
		units = append(units, unit)
	}
	return units, nil
}

// lookupVersion resolves the image version for one pass. It never fails.
func lookupVersion(ctx context.Context, opts Options) string {
	if opts.UseTestImage {
		return TestImageTag
	}

	ctx, span := monitoring.StartChildSpan(ctx, "Topology.ImageVersion")
	defer span.End()

	v, err := version.Resolve(ctx, opts.Lookup)
	if err != nil {
		monitoring.RecordSpanError(span, err)
		monitoring.RecordVersionLookupFallback()
		log.FromContext(ctx).Info("Image version lookup failed, using fallback",
			"fallback", v, "error", err.Error())
	}
	return v
}
