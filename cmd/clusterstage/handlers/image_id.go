package handlers

import (
	"context"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/imamik/clusterstage/internal/cloud"
)

// ImageIDOptions are the inputs of the image-id command.
type ImageIDOptions struct {
	Parent string
	// LookupPath is a YAML or JSON map of image build ARN to image id.
	LookupPath string
}

// ImageID prints the image id a parent image reference resolves to.
func ImageID(ctx context.Context, opts ImageIDOptions) error {
	var lookup cloud.ImageLookup
	if opts.LookupPath != "" {
		// #nosec G304
		data, err := os.ReadFile(opts.LookupPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.LookupPath, err)
		}
		table := cloud.MapImageLookup{}
		if err := yaml.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("failed to parse %s: %w", opts.LookupPath, err)
		}
		lookup = table
	}

	id, err := cloud.ResolveImageID(ctx, lookup, opts.Parent)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, id)
	return nil
}
