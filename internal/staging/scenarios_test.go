package staging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/imamik/clusterstage/internal/config"
	"github.com/imamik/clusterstage/internal/provisioning"
)

var _ = Describe("ProvisionStagingBucket", func() {
	var (
		ctx     context.Context
		store   *fakeStore
		sched   *mockSchedulerUploader
		logs    *bytes.Buffer
		stager  *Stager
		cfg     *config.DeploymentConfig
		schedCx map[string]string
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = &fakeStore{}
		sched = &mockSchedulerUploader{}
		logs = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logs, nil))
		schedCx = map[string]string{"compute_environment": "ce-1"}

		p := NewProvisioner(store, &StaticNames{Names: []string{"clusterstage-0123456789abcdef"}}, logger, nil)
		u := NewUploader(store, testRoots(), sched, logger, nil)
		stager = NewStager(p, u, provisioning.NewSlogObserver(logger), nil)
	})

	Context("scenario A: slurm, every call succeeds", func() {
		BeforeEach(func() {
			cfg = &config.DeploymentConfig{ClusterName: "demo", Region: "eu-west-1", Scheduler: config.SchedulerSlurm}
		})

		It("returns the generated bucket name", func() {
			bucket, err := stager.ProvisionStagingBucket(ctx, cfg, schedCx)
			Expect(err).NotTo(HaveOccurred())
			Expect(bucket).To(Equal("clusterstage-0123456789abcdef"))
		})

		It("uploads custom_resources only and skips the scheduler step", func() {
			_, err := stager.ProvisionStagingBucket(ctx, cfg, schedCx)
			Expect(err).NotTo(HaveOccurred())
			Expect(store.uploadedPrefixes()).To(Equal([]string{"custom_resources"}))
			Expect(store.CreateBucketCalls).To(ConsistOf(createCall{Name: "clusterstage-0123456789abcdef", Region: "eu-west-1"}))
			Expect(store.DeleteBucketCalls).To(BeEmpty())
			sched.AssertNotCalled(GinkgoT(), "UploadSchedulerResources", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	})

	Context("scenario B: awsbatch, scheduler step fails", func() {
		var schedErr error

		BeforeEach(func() {
			cfg = &config.DeploymentConfig{ClusterName: "batch", Region: "us-east-1", Scheduler: config.SchedulerAWSBatch}
			schedErr = errors.New("scheduler resources rejected")
			sched.On("UploadSchedulerResources", mock.Anything, "clusterstage-0123456789abcdef", cfg, schedCx).Return(schedErr).Once()
		})

		It("deletes the bucket once and surfaces the scheduler error", func() {
			bucket, err := stager.ProvisionStagingBucket(ctx, cfg, schedCx)

			Expect(bucket).To(BeEmpty())
			Expect(err).To(MatchError(schedErr))
			Expect(store.uploadedPrefixes()).To(Equal([]string{"custom_resources", "batch"}))
			Expect(store.DeleteBucketCalls).To(Equal([]string{"clusterstage-0123456789abcdef"}))
			Expect(logs.String()).To(ContainSubstring("Unable to upload cluster resources to the S3 bucket clusterstage-0123456789abcdef"))
			sched.AssertExpectations(GinkgoT())
		})
	})

	Context("scenario C: bucket creation collides", func() {
		BeforeEach(func() {
			cfg = &config.DeploymentConfig{ClusterName: "demo", Region: "eu-west-1", Scheduler: config.SchedulerSlurm}
			store.CreateBucketFunc = func(context.Context, string, string) error {
				return apiError("BucketAlreadyExists")
			}
		})

		It("returns a BucketCreationError and never deletes", func() {
			_, err := stager.ProvisionStagingBucket(ctx, cfg, schedCx)

			var bce *BucketCreationError
			Expect(errors.As(err, &bce)).To(BeTrue())
			Expect(bce.Code).To(Equal("BucketAlreadyExists"))
			Expect(bce.Retryable()).To(BeTrue())
			Expect(store.DeleteBucketCalls).To(BeEmpty())
			Expect(store.UploadDirectoryCalls).To(BeEmpty())
			Expect(logs.String()).To(ContainSubstring("Unable to create S3 bucket"))
		})
	})

	Context("scenario D: upload and cleanup both fail", func() {
		var uploadErr, deleteErr error

		BeforeEach(func() {
			cfg = &config.DeploymentConfig{ClusterName: "demo", Region: "eu-west-1", Scheduler: config.SchedulerSlurm}
			uploadErr = errors.New("upload throttled")
			deleteErr = errors.New("delete denied")
			store.UploadDirectoryFunc = func(context.Context, string, string, string) error { return uploadErr }
			store.DeleteBucketFunc = func(context.Context, string) error { return deleteErr }
		})

		It("surfaces the upload error and records the cleanup failure", func() {
			_, err := stager.ProvisionStagingBucket(ctx, cfg, schedCx)

			Expect(err).To(MatchError(uploadErr))
			Expect(errors.Is(err, deleteErr)).To(BeFalse())

			var uerr *UploadError
			Expect(errors.As(err, &uerr)).To(BeTrue())
			Expect(uerr.CleanupAttempted).To(BeTrue())
			Expect(uerr.Cleanup).NotTo(BeNil())
			Expect(uerr.Cleanup.Err).To(MatchError(deleteErr))

			Expect(store.DeleteBucketCalls).To(HaveLen(1))
			Expect(logs.String()).To(ContainSubstring("Unable to delete S3 bucket after upload failure"))
		})
	})
})
