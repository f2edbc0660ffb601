// Package retry provides exponential backoff retry logic for transient failures.
//
// [Do] retries an operation with configurable attempts, initial delay and
// maximum delay. Whether a failure is retried is decided by the [WithRetryIf]
// classifier; errors wrapped with [Fatal] are never retried. It backs the
// caller-level retry of staging bucket creation.
package retry
