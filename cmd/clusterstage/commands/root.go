// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
)

// Root returns the root command for the clusterstage CLI.
func Root() *cobra.Command {
	var global handlers.GlobalOptions

	cmd := &cobra.Command{
		Use:           "clusterstage",
		Short:         "Stage cluster deployment artifacts in object storage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&global.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default from CLUSTERSTAGE_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&global.DotenvPath, "env-file", ".env", "Optional dotenv file loaded before the environment")

	cmd.AddCommand(Init())
	cmd.AddCommand(Provision(&global))
	cmd.AddCommand(CheckUpdate(&global))
	cmd.AddCommand(Component(&global))
	cmd.AddCommand(Inspect())
	cmd.AddCommand(ImageID())
	cmd.AddCommand(Version())

	return cmd
}
