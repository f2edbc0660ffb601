package config

import (
	"errors"
	"fmt"
	"regexp"
)

var clusterNameRegex = regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z][a-zA-Z0-9-]{0,%d}$`, ClusterNameMaxLength-1))

// ErrInvalidClusterName is returned when a cluster name does not match the naming rules.
var ErrInvalidClusterName = fmt.Errorf(
	"the cluster name can contain only alphanumeric characters (case-sensitive) and hyphens. "+
		"It must start with an alphabetic character and can't be longer than %d characters", ClusterNameMaxLength)

// ValidateClusterName checks the cluster naming rules.
func ValidateClusterName(name string) error {
	if !clusterNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidClusterName, name)
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *DeploymentConfig) Validate() error {
	var errs []error

	if c.ClusterName == "" {
		errs = append(errs, errors.New("cluster_name is required"))
	} else if err := ValidateClusterName(c.ClusterName); err != nil {
		errs = append(errs, err)
	}

	if c.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}

	if !c.Scheduler.IsValid() {
		errs = append(errs, schedulerError(string(c.Scheduler)))
	}

	if c.ClusterModel != "" && !c.ClusterModel.IsValid() {
		errs = append(errs, clusterModelError(string(c.ClusterModel)))
	}

	if c.ClusterModel == ClusterModelHIT && c.Scheduler.IsValid() && c.Scheduler != SchedulerSlurm {
		errs = append(errs, fmt.Errorf("cluster_model HIT is only supported with the slurm scheduler"))
	}

	seen := make(map[string]bool, len(c.Queues))
	for i, q := range c.Queues {
		if q.Name == "" {
			errs = append(errs, fmt.Errorf("queues[%d].name is required", i))
			continue
		}
		if seen[q.Name] {
			errs = append(errs, fmt.Errorf("queues[%d].name %q is duplicated", i, q.Name))
		}
		seen[q.Name] = true
		if len(q.InstanceTypes) == 0 {
			errs = append(errs, fmt.Errorf("queues[%d].instance_types must not be empty", i))
		}
	}

	return errors.Join(errs...)
}

func schedulerError(value string) *ConfigurationError {
	return &ConfigurationError{Field: "scheduler", Value: value, Msg: fmt.Sprintf("must be one of %v", ValidSchedulers())}
}

func clusterModelError(value string) *ConfigurationError {
	return &ConfigurationError{Field: "cluster_model", Value: value, Msg: "must be SIT or HIT"}
}
