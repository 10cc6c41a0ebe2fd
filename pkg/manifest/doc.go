// Package manifest holds the data the topology engine emits for each runtime
// unit and turns it into concrete Kubernetes objects.
//
// A Unit carries an ordered list of Fragments. The first fragment is the
// unit's main container; any further fragments are filter executors colocated
// in the same Kubernetes Pod, reachable by the main container on 127.0.0.1.
//
// For every unit, BuildObjects renders:
//   - Service: ClusterIP service named after the unit's DNS name, exposing the
//     main container port so "<dns-name>.<namespace>.svc:<port>" resolves.
//   - Deployment: one container per fragment, the shared init container, and
//     the replica count of the main fragment.
//
// When a fragment names a custom resource directory, "deployment.yml" and
// "service.yml" found there are used as the base objects.
package manifest
