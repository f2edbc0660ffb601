// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for deployment configurations
//   - ArtifactTree: On-disk resource directories for staging tests
//   - MockObjectStore: Shared testify mock of the object storage surface
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithScheduler(config.SchedulerAWSBatch).
//	    WithRegion("us-east-1").
//	    Build()
//
//	root := testing.ArtifactTree(t)
package testing
