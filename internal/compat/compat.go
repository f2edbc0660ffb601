// Package compat decides whether an existing deployment can be updated in
// place to a new configuration.
package compat

import (
	"fmt"
	"log/slog"

	"github.com/imamik/clusterstage/internal/config"
)

// UpdateMode selects how strictly an update is checked.
type UpdateMode string

const (
	// ModeDefault rejects any change of cluster model.
	ModeDefault UpdateMode = "default"
)

// ParseUpdateMode converts a flag value. An empty value means ModeDefault.
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch UpdateMode(s) {
	case "", ModeDefault:
		return ModeDefault, nil
	default:
		return "", &config.ConfigurationError{Field: "update mode", Value: s, Msg: "must be default"}
	}
}

// Result is the outcome of a compatibility check.
type Result struct {
	Compatible bool
	// Message is set only when Compatible is false.
	Message string
}

// Check compares the cluster model of the running deployment (base) with
// the one requested (target). HIT supersedes SIT, so the two directions
// produce different messages. Every mode treats a model change the same way.
// A model other than SIT or HIT fails with a *config.ConfigurationError.
func Check(base, target config.ClusterModel, mode UpdateMode) (Result, error) {
	for _, m := range []config.ClusterModel{base, target} {
		if !m.IsValid() {
			return Result{}, &config.ConfigurationError{Field: "cluster_model", Value: string(m), Msg: "must be SIT or HIT"}
		}
	}

	switch {
	case base == target:
		return Result{Compatible: true}, nil
	case base == config.ClusterModelSIT:
		return Result{Message: fmt.Sprintf(
			"The configuration file uses the %s cluster model, which is not compatible with the existing cluster "+
				"created with the %s model. Create a new cluster to use the new model.", target, base)}, nil
	default:
		return Result{Message: fmt.Sprintf(
			"The existing cluster uses the %s cluster model and the configuration file uses %s. "+
				"The configuration file must be converted to the latest format before updating.", base, target)}, nil
	}
}

// CheckAndReport runs Check and logs the message of an incompatible result.
func CheckAndReport(logger *slog.Logger, base, target config.ClusterModel, mode UpdateMode) (bool, error) {
	res, err := Check(base, target, mode)
	if err != nil {
		return false, err
	}
	if !res.Compatible {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error(res.Message, "base", string(base), "target", string(target))
	}
	return res.Compatible, nil
}

// CheckConfigs compares the effective cluster models of two deployment configurations.
func CheckConfigs(base, target *config.DeploymentConfig, mode UpdateMode) (Result, error) {
	return Check(base.EffectiveClusterModel(), target.EffectiveClusterModel(), mode)
}
