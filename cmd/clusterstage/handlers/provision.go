package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/clusterstage/internal/artifacts"
	"github.com/imamik/clusterstage/internal/cloud"
	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/provisioning"
	"github.com/imamik/clusterstage/internal/staging"
	"github.com/imamik/clusterstage/internal/util/retry"
)

// Factory function variables for provision - can be replaced in tests.
var (
	// newRootResolver maps artifact directories to local paths.
	newRootResolver = func(root string) artifacts.RootResolver {
		return artifacts.NewDirResolver(root)
	}

	// newNameGenerator creates the bucket name generator.
	newNameGenerator = func(prefix string) staging.NameGenerator {
		return staging.PrefixNames{Prefix: prefix}
	}

	// writeMetricsTextfile writes the gathered metrics in text format.
	writeMetricsTextfile = prometheus.WriteToTextfile

	// retryDelay is the initial backoff between bucket creation attempts.
	retryDelay = 2 * time.Second
)

// ProvisionOptions are the inputs of the provision command.
type ProvisionOptions struct {
	GlobalOptions

	ConfigPath string
	// SchedulerContext is forwarded to the scheduler resource upload.
	SchedulerContext map[string]string
	// MetricsTextfile receives the staging metrics when non-empty.
	MetricsTextfile string
	// CreateRetries is how often a retryable bucket creation failure is retried.
	CreateRetries int
	// TemplatePath is an inline stack template used when the config has no template_url.
	TemplatePath string
}

// Provision stages the artifacts of a deployment and prints the bucket and
// stack request summary.
func Provision(ctx context.Context, opts ProvisionOptions) error {
	env, logger, err := setup(opts.GlobalOptions)
	if err != nil {
		return err
	}

	cfg, err := loadDeployment(opts.ConfigPath, env)
	if err != nil {
		return err
	}

	store, err := newObjectStore(ctx, storeOptions(env, cfg.Region))
	if err != nil {
		return fmt.Errorf("failed to create object storage client: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := staging.NewMetrics(registry)

	stager := staging.NewStager(
		staging.NewProvisioner(store, newNameGenerator(cfg.EffectiveBucketPrefix()), logger, metrics),
		staging.NewUploader(store, newRootResolver(artifactRoot(cfg)), staging.NewSchedulerContextUploader(store), logger, metrics),
		provisioning.NewSlogObserver(logger),
		metrics,
	)

	logger.Info("staging deployment artifacts",
		"cluster", cfg.ClusterName,
		"scheduler", string(cfg.Scheduler),
		"region", cfg.Region)

	var bucket string
	err = retry.Do(ctx, func(ctx context.Context) error {
		var stageErr error
		bucket, stageErr = stager.ProvisionStagingBucket(ctx, cfg, opts.SchedulerContext)
		return stageErr
	},
		retry.WithMaxRetries(opts.CreateRetries),
		retry.WithInitialDelay(retryDelay),
		retry.WithRetryIf(retryableCreate),
		retry.WithOnRetry(func(next int, delay time.Duration, err error) {
			logger.Warn("retrying bucket creation", "attempt", next, "delay", delay, "error", err)
		}),
	)

	if opts.MetricsTextfile != "" {
		if werr := writeMetricsTextfile(opts.MetricsTextfile, registry); werr != nil {
			logger.Warn("failed to write metrics", "path", opts.MetricsTextfile, "error", werr)
		}
	}
	if err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}

	req, err := stackRequest(cfg, opts.TemplatePath, bucket)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, renderProvisionSummary(cfg, bucket, req))
	return nil
}

// retryableCreate retries only bucket creation failures the provider marks
// as transient. Upload failures already cleaned up and are returned as is.
func retryableCreate(err error) bool {
	var bce *staging.BucketCreationError
	return errors.As(err, &bce) && bce.Retryable()
}

// stackRequest builds the create-stack call when a template is configured.
// It returns nil when neither template_url nor a template file is given.
func stackRequest(cfg *config.DeploymentConfig, templatePath, bucket string) (*cloud.StackRequest, error) {
	if cfg.TemplateURL == "" && templatePath == "" {
		return nil, nil
	}

	var body string
	if templatePath != "" {
		// #nosec G304
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		body = string(data)
	}

	req, err := cloud.NewStackRequest(cfg, body, bucket)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
