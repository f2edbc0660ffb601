package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment holds settings that come from the process environment rather
// than the deployment file: credentials, endpoint overrides and log level.
type Environment struct {
	LogLevel string `env:"CLUSTERSTAGE_LOG_LEVEL" envDefault:"info"`

	// Endpoint overrides the object storage endpoint (S3-compatible stores, tests).
	Endpoint     string `env:"CLUSTERSTAGE_S3_ENDPOINT"`
	UsePathStyle bool   `env:"CLUSTERSTAGE_S3_PATH_STYLE"`

	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`
	Profile         string `env:"AWS_PROFILE"`

	// DefaultRegion is used when the deployment file leaves region empty.
	DefaultRegion string `env:"AWS_DEFAULT_REGION"`
}

// HasStaticCredentials reports whether an access key pair is set.
func (e Environment) HasStaticCredentials() bool {
	return e.AccessKeyID != "" && e.SecretAccessKey != ""
}

// LoadEnvironment parses the environment. When dotenvPath is non-empty the
// file is loaded first; a missing file is not an error. Variables already set
// in the process take precedence over the file.
func LoadEnvironment(dotenvPath string) (Environment, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Environment{}, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

// ParseEnvironment parses settings from an explicit variable map.
func ParseEnvironment(vars map[string]string) (Environment, error) {
	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Environment{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}
