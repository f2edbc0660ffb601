package staging

import (
	"context"
	"errors"

	"github.com/imamik/clusterstage/internal/artifacts"
	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/provisioning"
)

const (
	phaseResolve = "resolve"
	phaseBucket  = "create-bucket"
	phaseUpload  = "upload"
)

// Stager runs complete staging attempts: resolve the artifact set, create
// the bucket, upload.
type Stager struct {
	provisioner *Provisioner
	uploader    *Uploader
	observer    provisioning.Observer
	metrics     *Metrics
}

// NewStager creates a Stager. observer and metrics may be nil.
func NewStager(p *Provisioner, u *Uploader, observer provisioning.Observer, metrics *Metrics) *Stager {
	if observer == nil {
		observer = provisioning.NopObserver{}
	}
	return &Stager{provisioner: p, uploader: u, observer: observer, metrics: metrics}
}

// ProvisionStagingBucket stages everything cfg needs and returns the bucket
// name. Deployments without artifacts get "" and no bucket is created.
func (s *Stager) ProvisionStagingBucket(ctx context.Context, cfg *config.DeploymentConfig, schedulerContext map[string]string) (string, error) {
	state, err := s.Stage(ctx, cfg, schedulerContext)
	if err != nil {
		return "", err
	}
	return state.Bucket, nil
}

// Stage runs one attempt and returns its final state, including on failure.
func (s *Stager) Stage(ctx context.Context, cfg *config.DeploymentConfig, schedulerContext map[string]string) (*provisioning.State, error) {
	observer := s.observer.WithFields(map[string]string{
		"cluster":   cfg.ClusterName,
		"scheduler": string(cfg.Scheduler),
	})
	pctx := provisioning.NewContext(ctx, cfg, observer, schedulerContext)

	err := provisioning.NewPipeline(
		resolvePhase{},
		bucketPhase{provisioner: s.provisioner},
		uploadPhase{uploader: s.uploader},
	).Run(pctx)

	// A bucket that was created but never reached the upload phase (the
	// context ended in between) is removed like any other failed upload.
	if err != nil && pctx.State.Status == provisioning.StatusBucketReady {
		err = discardBucket(pctx, s.uploader, &UploadError{Bucket: pctx.State.Bucket, Step: notStartedStep, Err: err})
	}

	s.metrics.recordAttempt(string(cfg.Scheduler), err)
	return pctx.State, err
}

// fail moves the attempt to StatusFailed and returns cause.
func fail(state *provisioning.State, cause error) error {
	if err := state.Transition(provisioning.StatusFailed); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

type resolvePhase struct{}

func (resolvePhase) Name() string { return phaseResolve }

func (resolvePhase) Provision(ctx *provisioning.Context) error {
	dirs, err := artifacts.Resolve(ctx.Config.Scheduler)
	if err != nil {
		return fail(ctx.State, err)
	}
	ctx.State.Directories = dirs
	return nil
}

type bucketPhase struct {
	provisioner *Provisioner
}

func (bucketPhase) Name() string { return phaseBucket }

func (p bucketPhase) Provision(ctx *provisioning.Context) error {
	if ctx.State.Directories.Empty() {
		return ctx.State.Transition(provisioning.StatusProvisioned)
	}

	provisioning.LogResourceCreating(ctx.Observer, phaseBucket, "bucket", "")
	name, err := p.provisioner.Provision(ctx, ctx.Config.Region)
	if err != nil {
		var bce *BucketCreationError
		if errors.As(err, &bce) {
			name = bce.Bucket
		}
		provisioning.LogResourceFailed(ctx.Observer, phaseBucket, name, "Unable to create S3 bucket", err)
		return fail(ctx.State, err)
	}

	ctx.State.Bucket = name
	provisioning.LogResourceCreated(ctx.Observer, phaseBucket, "bucket", name)
	return ctx.State.Transition(provisioning.StatusBucketReady)
}

type uploadPhase struct {
	uploader *Uploader
}

func (uploadPhase) Name() string { return phaseUpload }

func (p uploadPhase) Provision(ctx *provisioning.Context) error {
	if ctx.State.Status == provisioning.StatusProvisioned {
		return nil
	}

	uerr := p.uploader.fill(ctx, ctx.State.Bucket, ctx.State.Directories, ctx.Config, ctx.SchedulerContext)
	if uerr == nil {
		return ctx.State.Transition(provisioning.StatusProvisioned)
	}
	return discardBucket(ctx, p.uploader, uerr)
}

// discardBucket moves the attempt to cleaning, deletes the bucket through
// the uploader and finishes in StatusFailed. It returns uerr.
func discardBucket(ctx *provisioning.Context, u *Uploader, uerr *UploadError) error {
	if terr := ctx.State.Transition(provisioning.StatusCleaning); terr != nil {
		return errors.Join(uerr, terr)
	}
	provisioning.LogResourceFailed(ctx.Observer, phaseUpload, uerr.Bucket, "Unable to upload cluster resources", uerr)
	provisioning.LogResourceDeleting(ctx.Observer, phaseUpload, "bucket", uerr.Bucket)

	u.discard(ctx, uerr)

	if uerr.Cleanup != nil {
		provisioning.LogWarning(ctx.Observer, phaseUpload, "bucket cleanup failed", map[string]string{
			"bucket": uerr.Bucket,
			"error":  uerr.Cleanup.Err.Error(),
		})
	} else {
		provisioning.LogResourceDeleted(ctx.Observer, phaseUpload, "bucket", uerr.Bucket)
	}

	return fail(ctx.State, uerr)
}
