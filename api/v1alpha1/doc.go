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

// Package v1alpha1 defines the input types of the topology engine.
//
// A PodSpec declares one logical processing stage: the executor it runs,
// how many shards it is split into, how many replicas each shard has, and the
// optional filter executors that run next to its head. The engine in
// pkg/topology expands one PodSpec into the runtime units needed to run it:
//
//	Pod "encoder" (shards=2, usesBefore set)
//	├── encoder-head (Deployment, 1 replica)
//	│   ├── executor container (HeadRuntime)
//	│   └── uses-before container (WorkerRuntime, port 8082)
//	├── encoder-0 (Deployment, N replicas)
//	└── encoder-1 (Deployment, N replicas)
//
// The reserved name "gateway" selects the gateway topology instead: a single
// unit and no head.
//
// # Versioning
//
// This is the v1alpha1 version, indicating the API is in early development
// and may change in backward-incompatible ways.
//
// +kubebuilder:object:generate=true
package v1alpha1

//go:generate go run sigs.k8s.io/controller-tools/cmd/controller-gen@v0.19.0 object:headerFile=../../hack/boilerplate.go.txt paths=.
