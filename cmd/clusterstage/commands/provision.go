package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
)

// Provision returns the provision command.
//
// The provision command creates a staging bucket, uploads the artifact
// directories the scheduler needs and deletes the bucket again if an upload
// fails.
func Provision(global *handlers.GlobalOptions) *cobra.Command {
	var opts handlers.ProvisionOptions

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the staging bucket and upload deployment artifacts",
		Long: `Provision creates a uniquely named staging bucket and uploads the
artifact directories required by the configured scheduler:

  slurm     resources/custom_resources
  awsbatch  resources/custom_resources, resources/batch, scheduler context
  sge       nothing (no bucket is created)
  torque    nothing (no bucket is created)

If any upload fails the bucket is deleted before the error is reported.
Bucket creation is not retried unless --create-retries is given.

Example:
  clusterstage provision -c clusterstage.yaml --context job_queue=default`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.GlobalOptions = *global
			return handlers.Provision(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to deployment configuration file")
	cmd.Flags().StringToStringVar(&opts.SchedulerContext, "context", nil, "Scheduler context entries (key=value)")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write staging metrics to this file in Prometheus text format")
	cmd.Flags().IntVar(&opts.CreateRetries, "create-retries", 0, "Retries for transient bucket creation failures")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "Stack template file used when the config has no template_url")

	return cmd
}
