// Package s3 provides the object storage client used for staging buckets.
//
// It creates region-scoped buckets, mirrors local directories into them,
// downloads single objects, and deletes buckets together with their
// contents. Provider error codes are exposed through [ErrorCode] so callers
// can decide on retries.
package s3
