package provisioning

import (
	"context"

	"github.com/imamik/clusterstage/internal/config"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.DeploymentConfig
	State    *State
	Observer Observer

	// SchedulerContext is opaque data forwarded to the scheduler-specific
	// resource upload step.
	SchedulerContext map[string]string
}

// NewContext creates a new provisioning context with a fresh State.
func NewContext(
	ctx context.Context,
	cfg *config.DeploymentConfig,
	observer Observer,
	schedulerContext map[string]string,
) *Context {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Context{
		Context:          ctx,
		Config:           cfg,
		State:            NewState(),
		Observer:         observer,
		SchedulerContext: schedulerContext,
	}
}
