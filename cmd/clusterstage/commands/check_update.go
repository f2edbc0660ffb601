package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
	"github.com/imamik/clusterstage/internal/compat"
)

// CheckUpdate returns the check-update command.
func CheckUpdate(global *handlers.GlobalOptions) *cobra.Command {
	var opts handlers.CheckUpdateOptions

	cmd := &cobra.Command{
		Use:   "check-update",
		Short: "Check whether a configuration can update an existing deployment",
		Long: `Check-update compares the cluster model of the deployed configuration
(--base) with the configuration to apply (--target).

A deployment keeps its cluster model for its whole lifetime. Moving from the
single instance type model (SIT) to the heterogeneous model (HIT) needs a new
cluster; going back from HIT to SIT requires converting the configuration
to the latest format first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.GlobalOptions = *global
			return handlers.CheckUpdate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.BasePath, "base", "", "Configuration of the existing deployment (required)")
	cmd.Flags().StringVar(&opts.TargetPath, "target", "", "Configuration to apply (required)")
	cmd.Flags().StringVar(&opts.Mode, "mode", string(compat.ModeDefault), "Update mode")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
