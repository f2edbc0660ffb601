package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/logging"
	s3store "github.com/imamik/clusterstage/internal/platform/s3"
)

// ObjectStore is the object storage surface the handlers need.
type ObjectStore interface {
	CreateBucket(ctx context.Context, name, region string) error
	DeleteBucket(ctx context.Context, name string) error
	UploadDirectory(ctx context.Context, bucket, localPath, keyPrefix string) error
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	DownloadFile(ctx context.Context, bucket, key, dest string) error
}

// Factory function variables shared by handlers - can be replaced in tests.
var (
	// loadEnvironment reads CLUSTERSTAGE_* and AWS_* settings.
	loadEnvironment = config.LoadEnvironment

	// loadConfigFile reads a deployment file without validating it.
	loadConfigFile = config.LoadWithoutValidation

	// newObjectStore creates the object storage client.
	newObjectStore = func(ctx context.Context, opts s3store.Options) (ObjectStore, error) {
		c, err := s3store.NewClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout

	// stderr receives log output.
	stderr io.Writer = os.Stderr
)

// GlobalOptions are the settings shared by every command.
type GlobalOptions struct {
	// LogLevel overrides CLUSTERSTAGE_LOG_LEVEL when set.
	LogLevel string
	// DotenvPath is loaded before the environment is parsed.
	DotenvPath string
}

func setup(g GlobalOptions) (config.Environment, *slog.Logger, error) {
	env, err := loadEnvironment(g.DotenvPath)
	if err != nil {
		return config.Environment{}, nil, err
	}
	level := env.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	return env, logging.NewLogger(stderr, logging.ParseLevel(level)), nil
}

// loadDeployment loads and validates a deployment file. An empty path falls
// back to DefaultConfigFilename; an empty region falls back to AWS_DEFAULT_REGION.
func loadDeployment(path string, env config.Environment) (*config.DeploymentConfig, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigFilename); err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'clusterstage init' to create one", err)
		}
		path = config.DefaultConfigFilename
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		cfg.Region = env.DefaultRegion
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// artifactRoot resolves a relative artifact root against the config file directory.
func artifactRoot(cfg *config.DeploymentConfig) string {
	root := cfg.ArtifactRoot
	if root == "" || filepath.IsAbs(root) || cfg.ConfigFile == "" {
		return root
	}
	return filepath.Join(filepath.Dir(cfg.ConfigFile), root)
}

func storeOptions(env config.Environment, region string) s3store.Options {
	return s3store.Options{
		Region:          region,
		Endpoint:        env.Endpoint,
		UsePathStyle:    env.UsePathStyle,
		AccessKeyID:     env.AccessKeyID,
		SecretAccessKey: env.SecretAccessKey,
		SessionToken:    env.SessionToken,
		Profile:         env.Profile,
	}
}
