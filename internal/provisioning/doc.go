// Package provisioning drives the ordered provisioning sequence for
// one or more applications against the CloudFormation backend.
//
// The package is organized around three collaborators:
//
//   - Driver issues create/update/delete/describe calls for a single
//     stack and polls it to a terminal state.
//   - Orchestrator walks the unit registry forward (deploy, update,
//     status) or in reverse (delete), feeding each unit's outputs to
//     the parameter resolution of later units.
//   - Deduplicator guarantees environment-scoped shared units are
//     provisioned at most once per invocation.
//
// The backend is the single source of truth: current stack state is
// always rediscovered via Describe, never cached across invocations.
package provisioning
