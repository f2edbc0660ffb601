package config

import "strings"

// DeploymentConfig describes a single cluster deployment as read from the
// user's configuration file. It is owned by the caller and treated as
// read-only by the staging and update subsystems.
type DeploymentConfig struct {
	// ClusterName names the deployment and the stack created for it.
	ClusterName string `yaml:"cluster_name"`

	// Region is the cloud region every resource of the deployment lives in.
	Region string `yaml:"region"`

	// Scheduler selects the workload manager.
	Scheduler Scheduler `yaml:"scheduler"`

	// ClusterModel pins the deployment topology. When empty it is inferred,
	// see EffectiveClusterModel.
	ClusterModel ClusterModel `yaml:"cluster_model,omitempty"`

	// Queues are the scheduler queues. Only slurm supports more than one
	// instance type per queue.
	Queues []Queue `yaml:"queues,omitempty"`

	// ArtifactRoot is the local directory that holds the resource trees
	// (resources/custom_resources, resources/batch, ...).
	ArtifactRoot string `yaml:"artifact_root,omitempty"`

	// BucketPrefix is prepended to generated staging bucket names.
	BucketPrefix string `yaml:"bucket_prefix,omitempty"`

	// TemplateURL points at a pre-rendered stack template. When empty the
	// template body is sent inline.
	TemplateURL string `yaml:"template_url,omitempty"`

	// DisableRollback keeps a failed stack around for debugging.
	DisableRollback bool `yaml:"disable_rollback,omitempty"`

	// Tags are applied to the stack.
	Tags map[string]string `yaml:"tags,omitempty"`

	// ConfigFile is the path the configuration was loaded from. Not serialized.
	ConfigFile string `yaml:"-"`
}

// Queue is a scheduler queue and the instance types it may launch.
type Queue struct {
	Name          string   `yaml:"name"`
	InstanceTypes []string `yaml:"instance_types"`
}

// Scheduler is the workload manager selected for a deployment.
type Scheduler string

const (
	// SchedulerSlurm is the Slurm workload manager.
	SchedulerSlurm Scheduler = "slurm"
	// SchedulerAWSBatch runs jobs through AWS Batch.
	SchedulerAWSBatch Scheduler = "awsbatch"
	// SchedulerSGE is Son of Grid Engine.
	SchedulerSGE Scheduler = "sge"
	// SchedulerTorque is the Torque resource manager.
	SchedulerTorque Scheduler = "torque"
)

// ValidSchedulers returns all recognized schedulers.
func ValidSchedulers() []Scheduler {
	return []Scheduler{SchedulerSlurm, SchedulerAWSBatch, SchedulerSGE, SchedulerTorque}
}

// IsValid returns true if the scheduler is recognized.
func (s Scheduler) IsValid() bool {
	switch s {
	case SchedulerSlurm, SchedulerAWSBatch, SchedulerSGE, SchedulerTorque:
		return true
	default:
		return false
	}
}

// ParseScheduler converts a textual scheduler name into a Scheduler.
func ParseScheduler(value string) (Scheduler, error) {
	s := Scheduler(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", schedulerError(value)
	}
	return s, nil
}

// ClusterModel is the topology classification of a deployment.
type ClusterModel string

const (
	// ClusterModelSIT is the single-instance-type model: one compute
	// instance type for the whole cluster.
	ClusterModelSIT ClusterModel = "SIT"
	// ClusterModelHIT is the heterogeneous-instance-type model: queues may
	// mix instance types. HIT supersedes SIT.
	ClusterModelHIT ClusterModel = "HIT"
)

// IsValid returns true if the model is SIT or HIT.
func (m ClusterModel) IsValid() bool {
	return m == ClusterModelSIT || m == ClusterModelHIT
}

// String returns a human-readable description of the model.
func (m ClusterModel) String() string {
	switch m {
	case ClusterModelSIT:
		return "SIT (single instance type)"
	case ClusterModelHIT:
		return "HIT (heterogeneous instance types)"
	default:
		return string(m)
	}
}

// ParseClusterModel converts a textual model name into a ClusterModel.
func ParseClusterModel(value string) (ClusterModel, error) {
	m := ClusterModel(strings.ToUpper(strings.TrimSpace(value)))
	if !m.IsValid() {
		return "", clusterModelError(value)
	}
	return m, nil
}

// EffectiveClusterModel returns the explicit model, or infers one: slurm
// deployments with queues are HIT, everything else is SIT.
func (c *DeploymentConfig) EffectiveClusterModel() ClusterModel {
	if c.ClusterModel != "" {
		return c.ClusterModel
	}
	if c.Scheduler == SchedulerSlurm && len(c.Queues) > 0 {
		return ClusterModelHIT
	}
	return ClusterModelSIT
}

// EffectiveBucketPrefix returns the configured bucket prefix or the default.
func (c *DeploymentConfig) EffectiveBucketPrefix() string {
	if c.BucketPrefix != "" {
		return c.BucketPrefix
	}
	return DefaultBucketPrefix
}
