package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "clusterstage - deployment artifact staging")
	fmt.Fprintln(stdout, "==========================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates a deployment configuration.")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, cfg *config.DeploymentConfig) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Deployment Summary")
	fmt.Fprintln(stdout, "------------------")
	fmt.Fprintf(stdout, "  Name:          %s\n", cfg.ClusterName)
	fmt.Fprintf(stdout, "  Region:        %s\n", cfg.Region)
	fmt.Fprintf(stdout, "  Scheduler:     %s\n", cfg.Scheduler)
	fmt.Fprintf(stdout, "  Cluster model: %s\n", cfg.EffectiveClusterModel())
	for _, q := range cfg.Queues {
		fmt.Fprintf(stdout, "  Queue:         %s (%d instance types)\n", q.Name, len(q.InstanceTypes))
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintln(stdout, "  1. Provide AWS credentials (environment, profile or .env file)")
	fmt.Fprintf(stdout, "  2. Review %s if needed\n", outputPath)
	fmt.Fprintln(stdout, "  3. Stage the deployment artifacts:")
	fmt.Fprintf(stdout, "     clusterstage provision -c %s\n", outputPath)
	fmt.Fprintln(stdout)
}
