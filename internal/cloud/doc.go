// Package cloud holds typed views of cloud provider describe responses and
// the requests clusterstage sends to the provider's stack service.
//
// Describe payloads are accepted as JSON or YAML, either a single resource
// object or the full describe envelope (Stacks, Reservations, Images). The
// returned values are built once and never modified.
package cloud
