package staging

import (
	"context"

	"github.com/imamik/clusterstage/internal/config"
)

// NameGenerator produces a new candidate bucket name on every call.
type NameGenerator interface {
	Generate() string
}

// BucketStore is the object storage surface used while staging.
// *s3.Client satisfies it.
type BucketStore interface {
	CreateBucket(ctx context.Context, name, region string) error
	DeleteBucket(ctx context.Context, name string) error
	UploadDirectory(ctx context.Context, bucket, localPath, keyPrefix string) error
}

// SchedulerResourceUploader stores scheduler-specific resources after the
// generic directories were uploaded.
type SchedulerResourceUploader interface {
	UploadSchedulerResources(ctx context.Context, bucket string, cfg *config.DeploymentConfig, schedulerContext map[string]string) error
}
