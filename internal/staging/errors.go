package staging

import (
	"fmt"

	s3store "github.com/imamik/clusterstage/internal/platform/s3"
)

// BucketCreationError is returned when the provider rejected bucket creation.
type BucketCreationError struct {
	Bucket string
	Region string
	// Code is the provider error code, empty when the failure was not an API error.
	Code string
	Err  error
}

func newBucketCreationError(bucket, region string, err error) *BucketCreationError {
	return &BucketCreationError{
		Bucket: bucket,
		Region: region,
		Code:   s3store.ErrorCode(err),
		Err:    err,
	}
}

func (e *BucketCreationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("unable to create staging bucket %s in %s (%s): %v", e.Bucket, e.Region, e.Code, e.Err)
	}
	return fmt.Sprintf("unable to create staging bucket %s in %s: %v", e.Bucket, e.Region, e.Err)
}

func (e *BucketCreationError) Unwrap() error { return e.Err }

// Retryable reports whether a fresh attempt may succeed. Every attempt uses a
// newly generated name, so name collisions are retryable too.
func (e *BucketCreationError) Retryable() bool {
	return s3store.IsThrottling(e.Err) || s3store.IsBucketCollision(e.Err)
}

// UploadError is returned when an artifact or scheduler resource upload failed.
type UploadError struct {
	Bucket string
	// Step names the directory or scheduler step that failed.
	Step string
	Err  error

	// CleanupAttempted is true once deletion of the bucket was tried.
	CleanupAttempted bool
	// Cleanup is set when that deletion failed.
	Cleanup *CleanupError
}

func (e *UploadError) Error() string {
	msg := fmt.Sprintf("unable to upload cluster resources to the S3 bucket %s (%s): %v", e.Bucket, e.Step, e.Err)
	if e.Cleanup != nil {
		msg += "; " + e.Cleanup.Error()
	}
	return msg
}

// Unwrap returns the upload failure. The cleanup failure is reachable only
// through the Cleanup field so that errors.Is matches the originating error.
func (e *UploadError) Unwrap() error { return e.Err }

// CleanupError is recorded when deleting the bucket after an upload failure failed.
type CleanupError struct {
	Bucket string
	Err    error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("unable to delete S3 bucket %s: %v", e.Bucket, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }
