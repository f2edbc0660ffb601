package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
	"github.com/imamik/clusterstage/internal/config"
)

// Init returns the command for interactively creating a deployment configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "clusterstage.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

The wizard asks for:

  - Cluster name and region
  - Scheduler (slurm, awsbatch, sge, torque)
  - An initial queue and its instance types (slurm only)
  - The local artifact root`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
