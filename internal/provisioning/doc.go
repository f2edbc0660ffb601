// Package provisioning provides the shared workflow types used by the
// staging subsystem.
//
// # Core Types
//
// Context carries the deployment configuration, the per-attempt State and
// the Observer. Phase defines a workflow step with Name() and Provision()
// methods; a Pipeline runs phases in order and stops at the first failure.
// State records the artifact set, the staging bucket, and the lifecycle
// Status of the attempt.
package provisioning
