// Package handlers implements the business logic for CLI commands.
//
// Each handler loads configuration, wires the internal packages together and
// reports the result. Collaborators are created through package-level factory
// variables so tests can replace them.
package handlers
