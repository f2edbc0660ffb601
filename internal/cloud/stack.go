package cloud

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/util/naming"
)

// CapabilityIAM acknowledges that the stack may create IAM resources.
const CapabilityIAM = "CAPABILITY_IAM"

// ResourcesBucketParameter carries the staging bucket name into the stack.
const ResourcesBucketParameter = "ResourcesS3Bucket"

// ErrTemplateSource is returned unless exactly one of template URL and
// template body is set.
var ErrTemplateSource = errors.New("exactly one of template URL and template body must be set")

// StackRequest is a create-stack call.
type StackRequest struct {
	Name            string
	TemplateURL     string
	TemplateBody    string
	Capabilities    []string
	DisableRollback bool
	Parameters      map[string]string
	Tags            []Tag
}

// StackCreator creates stacks and returns the stack id.
type StackCreator interface {
	CreateStack(ctx context.Context, req StackRequest) (string, error)
}

// NewStackRequest builds the create-stack call for a deployment. The template
// comes from cfg.TemplateURL or from templateBody, never both. bucket is
// passed as ResourcesBucketParameter when non-empty.
func NewStackRequest(cfg *config.DeploymentConfig, templateBody, bucket string) (StackRequest, error) {
	req := StackRequest{
		Name:            naming.Stack(cfg.ClusterName),
		TemplateURL:     cfg.TemplateURL,
		TemplateBody:    templateBody,
		Capabilities:    []string{CapabilityIAM},
		DisableRollback: cfg.DisableRollback,
		Parameters:      map[string]string{},
	}
	if bucket != "" {
		req.Parameters[ResourcesBucketParameter] = bucket
	}
	for _, k := range slices.Sorted(maps.Keys(cfg.Tags)) {
		req.Tags = append(req.Tags, Tag{Key: k, Value: cfg.Tags[k]})
	}

	if err := req.Validate(); err != nil {
		return StackRequest{}, err
	}
	return req, nil
}

// Validate checks that the request can be sent.
func (r StackRequest) Validate() error {
	if (r.TemplateURL == "") == (r.TemplateBody == "") {
		return ErrTemplateSource
	}
	if r.Name == "" {
		return errors.New("stack name is required")
	}
	return nil
}
