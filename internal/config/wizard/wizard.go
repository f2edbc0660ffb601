package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/clusterstage/internal/config"
)

var errClusterNameRequired = errors.New("cluster name is required")

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	ClusterName string
	Region      string
	Scheduler   string

	// QueueName and InstanceTypes describe a single initial queue (slurm only).
	QueueName     string
	InstanceTypes []string

	ArtifactRoot string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster identity: %w", err)
	}

	if err := runSchedulerGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	if result.Scheduler == string(config.SchedulerSlurm) {
		if err := runQueueGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("queues: %w", err)
		}
	}

	return result, nil
}

func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description(fmt.Sprintf("Alphanumeric and hyphens, starts with a letter, at most %d characters", config.ClusterNameMaxLength)).
				Placeholder("my-cluster").
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewSelect[string]().
				Title("Region").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

func runSchedulerGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Scheduler").
				Options(SchedulersToOptions()...).
				Value(&result.Scheduler),
			huh.NewInput().
				Title("Artifact Root (Optional)").
				Description("Directory containing resources/custom_resources and resources/batch").
				Placeholder("leave empty for the install location").
				Value(&result.ArtifactRoot),
		).Title("Scheduler"),
	).RunWithContext(ctx)
}

func runQueueGroup(ctx context.Context, result *WizardResult) error {
	var instanceTypes string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Queue Name (Optional)").
				Description("Leave empty to create a single-instance-type cluster").
				Placeholder("compute").
				Value(&result.QueueName),
			huh.NewInput().
				Title("Instance Types").
				Description("Comma-separated, e.g. c5.xlarge, c5.2xlarge").
				Value(&instanceTypes),
		).Title("Queues"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.InstanceTypes = parseList(instanceTypes)
	return nil
}

func validateClusterName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errClusterNameRequired
	}
	return config.ValidateClusterName(s)
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
