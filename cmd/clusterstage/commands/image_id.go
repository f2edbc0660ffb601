package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
)

// ImageID returns the image-id command.
func ImageID() *cobra.Command {
	var opts handlers.ImageIDOptions

	cmd := &cobra.Command{
		Use:   "image-id PARENT",
		Short: "Resolve a parent image reference to an image id",
		Long: `Image-id prints the image id for a parent image reference.

Plain ids are printed unchanged. Image build ARNs are resolved through the
--lookup table, a YAML or JSON map of ARN to image id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Parent = args[0]
			return handlers.ImageID(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.LookupPath, "lookup", "", "ARN to image id table")

	return cmd
}
