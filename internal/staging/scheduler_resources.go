package staging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imamik/clusterstage/internal/config"
)

// SchedulerContextKey is where the scheduler context document is stored.
const SchedulerContextKey = "configs/scheduler-context.json"

// ObjectPutter writes a single object.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}

// SchedulerContextUploader stores the scheduler context as a JSON document
// next to the uploaded artifacts.
type SchedulerContextUploader struct {
	store ObjectPutter
	now   func() time.Time
}

// NewSchedulerContextUploader creates a SchedulerContextUploader.
func NewSchedulerContextUploader(store ObjectPutter) *SchedulerContextUploader {
	return &SchedulerContextUploader{store: store, now: time.Now}
}

type schedulerDocument struct {
	ClusterName string            `json:"cluster_name"`
	Region      string            `json:"region"`
	Scheduler   string            `json:"scheduler"`
	Bucket      string            `json:"bucket"`
	GeneratedAt time.Time         `json:"generated_at"`
	Context     map[string]string `json:"context"`
}

// UploadSchedulerResources implements SchedulerResourceUploader.
func (u *SchedulerContextUploader) UploadSchedulerResources(
	ctx context.Context,
	bucket string,
	cfg *config.DeploymentConfig,
	schedulerContext map[string]string,
) error {
	doc := schedulerDocument{
		ClusterName: cfg.ClusterName,
		Region:      cfg.Region,
		Scheduler:   string(cfg.Scheduler),
		Bucket:      bucket,
		GeneratedAt: u.now().UTC(),
		Context:     schedulerContext,
	}
	if doc.Context == nil {
		doc.Context = map[string]string{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scheduler context: %w", err)
	}

	if err := u.store.PutObject(ctx, bucket, SchedulerContextKey, data); err != nil {
		return fmt.Errorf("failed to store scheduler context: %w", err)
	}
	return nil
}
