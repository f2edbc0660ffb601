package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
)

// Inspect returns the inspect command group.
func Inspect() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Render a saved describe response",
		Long: `Inspect renders a describe response saved as JSON or YAML.

Example:
  aws cloudformation describe-stacks --stack-name clusterstage-demo > stack.json
  clusterstage inspect stack stack.json`,
	}

	for _, kind := range []handlers.InspectKind{handlers.InspectStack, handlers.InspectInstance, handlers.InspectImage} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(kind) + " FILE",
			Short: "Render a " + string(kind) + " describe response",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return handlers.Inspect(kind, args[0])
			},
		})
	}

	return cmd
}
