package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/imamik/clusterstage/internal/config"
)

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.DeploymentConfig, outputPath string) error {
	yamlBytes, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath, time.Now()))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func generateHeader(outputPath string, now time.Time) string {
	return fmt.Sprintf(`# clusterstage deployment configuration
# Generated by: clusterstage init
# Generated at: %s
#
# Credentials are read from the environment (AWS_ACCESS_KEY_ID,
# AWS_SECRET_ACCESS_KEY or AWS_PROFILE).
#
# Usage:
#   clusterstage provision -c %s
`, now.Format(time.RFC3339), outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
