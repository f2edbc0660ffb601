// Package naming provides consistent naming functions for deployment resources.
//
// Stacks are named clusterstage-{cluster}. Staging buckets are named
// {prefix}-{16 hex chars}; the random suffix comes from a UUIDv4 so two
// provisioning attempts never share a bucket.
package naming
