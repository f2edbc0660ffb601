package testing

import (
	"maps"
	"slices"

	"github.com/imamik/clusterstage/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.DeploymentConfig
}

// NewConfigBuilder creates a new ConfigBuilder with a valid slurm deployment.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.DeploymentConfig{
			ClusterName: "test-cluster",
			Region:      "eu-west-1",
			Scheduler:   config.SchedulerSlurm,
		},
	}
}

// WithClusterName sets the cluster name.
func (b *ConfigBuilder) WithClusterName(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ClusterName = name
	return nb
}

// WithRegion sets the region.
func (b *ConfigBuilder) WithRegion(region string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Region = region
	return nb
}

// WithScheduler sets the scheduler.
func (b *ConfigBuilder) WithScheduler(s config.Scheduler) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Scheduler = s
	return nb
}

// WithClusterModel pins the cluster model.
func (b *ConfigBuilder) WithClusterModel(m config.ClusterModel) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ClusterModel = m
	return nb
}

// WithQueue adds a queue.
func (b *ConfigBuilder) WithQueue(name string, instanceTypes ...string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Queues = append(nb.cfg.Queues, config.Queue{Name: name, InstanceTypes: slices.Clone(instanceTypes)})
	return nb
}

// WithArtifactRoot sets the local artifact root.
func (b *ConfigBuilder) WithArtifactRoot(root string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ArtifactRoot = root
	return nb
}

// WithBucketPrefix sets the staging bucket prefix.
func (b *ConfigBuilder) WithBucketPrefix(prefix string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.BucketPrefix = prefix
	return nb
}

// WithTag adds a stack tag.
func (b *ConfigBuilder) WithTag(key, value string) *ConfigBuilder {
	nb := b.clone()
	if nb.cfg.Tags == nil {
		nb.cfg.Tags = map[string]string{}
	}
	nb.cfg.Tags[key] = value
	return nb
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.DeploymentConfig {
	cfg := b.clone().cfg
	return &cfg
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	if b.cfg.Queues != nil {
		cfg.Queues = make([]config.Queue, len(b.cfg.Queues))
		for i, q := range b.cfg.Queues {
			cfg.Queues[i] = config.Queue{Name: q.Name, InstanceTypes: slices.Clone(q.InstanceTypes)}
		}
	}
	cfg.Tags = maps.Clone(b.cfg.Tags)
	return &ConfigBuilder{cfg: cfg}
}
