package wizard

import "github.com/imamik/clusterstage/internal/config"

// BuildConfig creates a DeploymentConfig from the wizard result.
func BuildConfig(result *WizardResult) *config.DeploymentConfig {
	cfg := &config.DeploymentConfig{
		ClusterName:  result.ClusterName,
		Region:       result.Region,
		Scheduler:    config.Scheduler(result.Scheduler),
		ArtifactRoot: result.ArtifactRoot,
	}

	// A queue only makes sense for slurm; other schedulers ignore it.
	if cfg.Scheduler == config.SchedulerSlurm && result.QueueName != "" && len(result.InstanceTypes) > 0 {
		cfg.Queues = []config.Queue{
			{Name: result.QueueName, InstanceTypes: result.InstanceTypes},
		}
	}

	return cfg
}
