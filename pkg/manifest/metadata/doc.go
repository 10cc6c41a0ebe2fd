// Package metadata provides utilities for building Kubernetes resource metadata
// such as labels used across all rendered units.
//
// This package contains generic, reusable functions that are role-agnostic.
// Role-specific logic should be provided by callers through function parameters.
package metadata
