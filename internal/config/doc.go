// Package config defines the deployment configuration consumed by the
// staging and update subsystems.
//
// A [DeploymentConfig] is loaded from YAML with [Load], validated with
// [DeploymentConfig.Validate], and never mutated afterwards. Settings that
// do not belong in a checked-in file (credentials, endpoint overrides, log
// level) are read from the environment with [LoadEnvironment].
package config
