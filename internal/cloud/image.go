package cloud

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ImageLookup resolves an image build ARN to the image id it produced.
type ImageLookup interface {
	ImageID(ctx context.Context, arn string) (string, error)
}

// ResolveImageID returns the image id for a parent image reference. ARNs are
// resolved through lookup; anything else is already an id.
func ResolveImageID(ctx context.Context, lookup ImageLookup, parent string) (string, error) {
	if !strings.HasPrefix(parent, "arn") {
		return parent, nil
	}
	if lookup == nil {
		return "", errors.New("an image lookup is required to resolve ARN " + parent)
	}
	id, err := lookup.ImageID(ctx, parent)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image %s: %w", parent, err)
	}
	return id, nil
}

// MapImageLookup resolves ARNs from a fixed table, such as one exported from
// the image builder service.
type MapImageLookup map[string]string

// ImageID implements ImageLookup.
func (m MapImageLookup) ImageID(_ context.Context, arn string) (string, error) {
	id, ok := m[arn]
	if !ok {
		return "", fmt.Errorf("image %s: %w", arn, ErrNotFound)
	}
	return id, nil
}
