package handlers

import (
	"bytes"
	"fmt"
	"os"

	"github.com/imamik/clusterstage/internal/cloud"
)

// InspectKind selects the payload type of an inspect command.
type InspectKind string

const (
	InspectStack    InspectKind = "stack"
	InspectInstance InspectKind = "instance"
	InspectImage    InspectKind = "image"
)

// Inspect renders a describe payload (JSON or YAML) saved in path.
func Inspect(kind InspectKind, path string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if looksLikeJSON(data) && !cloud.ValidJSON(data) {
		return fmt.Errorf("%s is not valid JSON", path)
	}

	var out string
	switch kind {
	case InspectStack:
		info, err := cloud.ParseStackInfo(data)
		if err != nil {
			return err
		}
		out = renderStackInfo(info)
	case InspectInstance:
		info, err := cloud.ParseInstanceInfo(data)
		if err != nil {
			return err
		}
		out = renderInstanceInfo(info)
	case InspectImage:
		info, err := cloud.ParseImageInfo(data)
		if err != nil {
			return err
		}
		out = renderImageInfo(info)
	default:
		return fmt.Errorf("unknown payload kind %q", kind)
	}

	fmt.Fprint(stdout, out)
	return nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
