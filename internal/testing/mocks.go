package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock of the object storage surface shared by the
// staging and component code.
type MockObjectStore struct {
	mock.Mock
}

// CreateBucket records the call.
func (m *MockObjectStore) CreateBucket(ctx context.Context, name, region string) error {
	return m.Called(ctx, name, region).Error(0)
}

// DeleteBucket records the call.
func (m *MockObjectStore) DeleteBucket(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// UploadDirectory records the call.
func (m *MockObjectStore) UploadDirectory(ctx context.Context, bucket, localPath, keyPrefix string) error {
	return m.Called(ctx, bucket, localPath, keyPrefix).Error(0)
}

// PutObject records the call.
func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	return m.Called(ctx, bucket, key, data).Error(0)
}

// DownloadFile records the call.
func (m *MockObjectStore) DownloadFile(ctx context.Context, bucket, key, dest string) error {
	return m.Called(ctx, bucket, key, dest).Error(0)
}
