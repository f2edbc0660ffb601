// Package main is the entry point for the clusterstage CLI.
//
// clusterstage stages the artifacts a cluster deployment needs into a fresh
// object storage bucket, removes that bucket again when staging fails, and
// checks whether an existing deployment can be updated in place.
//
// Commands: init, provision, check-update, component, inspect, image-id, version.
//
// For detailed usage information, run:
//
//	clusterstage --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/clusterstage/cmd/clusterstage/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
