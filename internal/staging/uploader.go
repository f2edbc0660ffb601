package staging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imamik/clusterstage/internal/artifacts"
	"github.com/imamik/clusterstage/internal/config"
)

const (
	// schedulerStep names the scheduler-specific upload in UploadError.Step.
	schedulerStep = "scheduler resources"
	// notStartedStep marks an attempt interrupted between bucket creation and upload.
	notStartedStep = "not started"
)

// Uploader fills a staging bucket and removes it again when that fails.
type Uploader struct {
	store     BucketStore
	roots     artifacts.RootResolver
	scheduler SchedulerResourceUploader
	logger    *slog.Logger
	metrics   *Metrics
}

// NewUploader creates an Uploader. scheduler may be nil when no awsbatch
// deployments are staged; logger and metrics may be nil.
func NewUploader(
	store BucketStore,
	roots artifacts.RootResolver,
	scheduler SchedulerResourceUploader,
	logger *slog.Logger,
	metrics *Metrics,
) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{store: store, roots: roots, scheduler: scheduler, logger: logger, metrics: metrics}
}

// Upload copies every directory into bucket in order, stopping at the first
// failure. For awsbatch the scheduler resources follow the directories.
//
// Any failure deletes the bucket exactly once before returning. The returned
// *UploadError always wraps the upload failure; a failed deletion is logged
// and attached as UploadError.Cleanup.
func (u *Uploader) Upload(
	ctx context.Context,
	bucket string,
	dirs artifacts.Set,
	cfg *config.DeploymentConfig,
	schedulerContext map[string]string,
) error {
	if uerr := u.fill(ctx, bucket, dirs, cfg, schedulerContext); uerr != nil {
		u.discard(ctx, uerr)
		return uerr
	}
	return nil
}

// fill runs the uploads without cleaning up.
func (u *Uploader) fill(
	ctx context.Context,
	bucket string,
	dirs artifacts.Set,
	cfg *config.DeploymentConfig,
	schedulerContext map[string]string,
) *UploadError {
	start := time.Now()
	defer func() { u.metrics.observeUpload(time.Since(start)) }()
	return u.upload(ctx, bucket, dirs, cfg, schedulerContext)
}

// discard reports a failed upload and deletes the bucket.
func (u *Uploader) discard(ctx context.Context, uerr *UploadError) {
	u.metrics.recordUploadFailure(uerr.Step)
	u.logger.Error(fmt.Sprintf("Unable to upload cluster resources to the S3 bucket %s", uerr.Bucket),
		"step", uerr.Step,
		"error", uerr.Err)
	u.cleanup(ctx, uerr)
}

func (u *Uploader) upload(
	ctx context.Context,
	bucket string,
	dirs artifacts.Set,
	cfg *config.DeploymentConfig,
	schedulerContext map[string]string,
) *UploadError {
	for _, dir := range dirs {
		localPath, err := u.roots.ResolveArtifactRoot(dir.ID)
		if err != nil {
			return &UploadError{Bucket: bucket, Step: string(dir.ID), Err: err}
		}
		if err := u.store.UploadDirectory(ctx, bucket, localPath, dir.KeyPrefix); err != nil {
			return &UploadError{Bucket: bucket, Step: string(dir.ID), Err: err}
		}
		u.logger.Debug("uploaded artifact directory", "bucket", bucket, "directory", dir.ID, "prefix", dir.KeyPrefix)
	}

	if cfg.Scheduler != config.SchedulerAWSBatch {
		return nil
	}
	if u.scheduler == nil {
		return &UploadError{Bucket: bucket, Step: schedulerStep, Err: fmt.Errorf("no scheduler resource uploader for %s", cfg.Scheduler)}
	}
	if err := u.scheduler.UploadSchedulerResources(ctx, bucket, cfg, schedulerContext); err != nil {
		return &UploadError{Bucket: bucket, Step: schedulerStep, Err: err}
	}
	return nil
}

// cleanup deletes the bucket after a failed upload. It runs even when ctx was
// canceled, since a canceled upload leaves the bucket behind otherwise.
func (u *Uploader) cleanup(ctx context.Context, uerr *UploadError) {
	uerr.CleanupAttempted = true
	err := u.store.DeleteBucket(context.WithoutCancel(ctx), uerr.Bucket)
	u.metrics.recordCleanup(err)
	if err != nil {
		uerr.Cleanup = &CleanupError{Bucket: uerr.Bucket, Err: err}
		u.logger.Warn("Unable to delete S3 bucket after upload failure",
			"bucket", uerr.Bucket,
			"error", err)
		return
	}
	u.logger.Info("deleted staging bucket after upload failure", "bucket", uerr.Bucket)
}
