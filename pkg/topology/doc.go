// Package topology resolves a Pod specification into the runtime units that
// serve it and renders the manifest fragments of every unit.
//
// A regular Pod resolves to one head followed by one worker unit per shard:
//
//	encoder-head  (executor + optional uses-before / uses-after sidecars)
//	encoder-0
//	encoder-1
//	...
//
// The Pod named "gateway" resolves to a single gateway unit.
//
// Resolution runs in three steps. Expand derives one DeploymentArgs per unit
// from a deep copy of the PodSpec. Each argument set is wrapped in a
// UnitDescriptor together with its name and the image version resolved for
// the pass. Every descriptor then renders its own fragments.
//
// Usage:
//
//	opts := topology.DefaultOptions()
//	opts.Lookup = version.NewRegistryLookup("", "2.1.0")
//	units, err := topology.Resolve(ctx, spec, opts)
//
// Resolve is safe for concurrent use on unrelated specs. The PodSpec passed
// in is never modified.
package topology
