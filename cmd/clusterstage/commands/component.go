package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
)

// Component returns the component command group.
func Component(global *handlers.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component",
		Short: "Image build component helpers",
	}
	cmd.AddCommand(componentWrap(global))
	return cmd
}

func componentWrap(global *handlers.GlobalOptions) *cobra.Command {
	var opts handlers.ComponentWrapOptions

	cmd := &cobra.Command{
		Use:   "wrap SOURCE",
		Short: "Wrap a bash script into a component document",
		Long: `Wrap fetches a bash script and embeds it into a component template.

SOURCE may be a local path, a file:// URL, an https:// URL or an
s3://bucket/key URL. The script replaces the "{{ place-holder }}" marker in
the first command of the first step of the first phase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = *global
			opts.Source = args[0]
			return handlers.ComponentWrap(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "Component template (default: built-in template)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Region for s3:// sources (default from AWS_DEFAULT_REGION)")

	return cmd
}
