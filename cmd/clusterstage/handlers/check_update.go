package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/clusterstage/internal/compat"
)

// ErrIncompatibleUpdate is returned when the target configuration cannot be
// applied to the existing deployment.
var ErrIncompatibleUpdate = errors.New("update is not compatible with the existing cluster")

// CheckUpdateOptions are the inputs of the check-update command.
type CheckUpdateOptions struct {
	GlobalOptions

	BasePath   string
	TargetPath string
	Mode       string
}

// CheckUpdate compares the cluster model of the deployed configuration with
// the target configuration.
func CheckUpdate(_ context.Context, opts CheckUpdateOptions) error {
	env, logger, err := setup(opts.GlobalOptions)
	if err != nil {
		return err
	}

	mode, err := compat.ParseUpdateMode(opts.Mode)
	if err != nil {
		return err
	}

	base, err := loadDeployment(opts.BasePath, env)
	if err != nil {
		return fmt.Errorf("base configuration: %w", err)
	}
	target, err := loadDeployment(opts.TargetPath, env)
	if err != nil {
		return fmt.Errorf("target configuration: %w", err)
	}

	baseModel, targetModel := base.EffectiveClusterModel(), target.EffectiveClusterModel()
	ok, err := compat.CheckAndReport(logger, baseModel, targetModel, mode)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncompatibleUpdate
	}

	fmt.Fprintf(stdout, "%s %s -> %s\n", okStyle.Render("compatible:"), baseModel, targetModel)
	return nil
}
