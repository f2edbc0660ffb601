// Package staging provisions the per-deployment staging bucket and fills it
// with the artifact directories the scheduler needs.
//
// A single attempt runs three phases through a provisioning.Pipeline:
//
//	resolve        artifacts.Resolve(cfg.Scheduler)
//	create-bucket  Provisioner.Provision
//	upload         Uploader.Upload
//
// A bucket is deleted if and only if it was created and a later upload step
// failed. Creation failures are returned as *BucketCreationError and never
// retried here; callers that want retries wrap [Stager.ProvisionStagingBucket]
// and consult [BucketCreationError.Retryable].
package staging
