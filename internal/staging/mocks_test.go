package staging

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/clusterstage/internal/artifacts"
	"github.com/imamik/clusterstage/internal/config"
)

// fakeStore is a BucketStore with configurable responses and call tracking.
type fakeStore struct {
	mu sync.Mutex

	CreateBucketFunc    func(ctx context.Context, name, region string) error
	DeleteBucketFunc    func(ctx context.Context, name string) error
	UploadDirectoryFunc func(ctx context.Context, bucket, localPath, keyPrefix string) error

	CreateBucketCalls    []createCall
	DeleteBucketCalls    []string
	UploadDirectoryCalls []uploadCall
}

type createCall struct {
	Name   string
	Region string
}

type uploadCall struct {
	Bucket    string
	LocalPath string
	KeyPrefix string
}

func (f *fakeStore) CreateBucket(ctx context.Context, name, region string) error {
	f.mu.Lock()
	f.CreateBucketCalls = append(f.CreateBucketCalls, createCall{Name: name, Region: region})
	f.mu.Unlock()
	if f.CreateBucketFunc != nil {
		return f.CreateBucketFunc(ctx, name, region)
	}
	return nil
}

func (f *fakeStore) DeleteBucket(ctx context.Context, name string) error {
	f.mu.Lock()
	f.DeleteBucketCalls = append(f.DeleteBucketCalls, name)
	f.mu.Unlock()
	if f.DeleteBucketFunc != nil {
		return f.DeleteBucketFunc(ctx, name)
	}
	return nil
}

func (f *fakeStore) UploadDirectory(ctx context.Context, bucket, localPath, keyPrefix string) error {
	f.mu.Lock()
	f.UploadDirectoryCalls = append(f.UploadDirectoryCalls, uploadCall{Bucket: bucket, LocalPath: localPath, KeyPrefix: keyPrefix})
	f.mu.Unlock()
	if f.UploadDirectoryFunc != nil {
		return f.UploadDirectoryFunc(ctx, bucket, localPath, keyPrefix)
	}
	return nil
}

func (f *fakeStore) uploadedPrefixes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefixes := make([]string, 0, len(f.UploadDirectoryCalls))
	for _, c := range f.UploadDirectoryCalls {
		prefixes = append(prefixes, c.KeyPrefix)
	}
	return prefixes
}

// mockSchedulerUploader is a testify mock for SchedulerResourceUploader.
type mockSchedulerUploader struct {
	mock.Mock
}

func (m *mockSchedulerUploader) UploadSchedulerResources(ctx context.Context, bucket string, cfg *config.DeploymentConfig, schedulerContext map[string]string) error {
	args := m.Called(ctx, bucket, cfg, schedulerContext)
	return args.Error(0)
}

// mapRoots resolves artifact directories from a fixed map.
type mapRoots map[artifacts.DirectoryID]string

func (r mapRoots) ResolveArtifactRoot(id artifacts.DirectoryID) (string, error) {
	p, ok := r[id]
	if !ok {
		return "", fmt.Errorf("artifact directory %s not found", id)
	}
	return p, nil
}

func testRoots() mapRoots {
	return mapRoots{
		artifacts.CustomResources: "/opt/clusterstage/resources/custom_resources",
		artifacts.BatchResources:  "/opt/clusterstage/resources/batch",
	}
}

// fakePutter records PutObject calls.
type fakePutter struct {
	key  string
	data []byte
	err  error
}

func (p *fakePutter) PutObject(_ context.Context, _ string, key string, data []byte) error {
	p.key = key
	p.data = data
	return p.err
}
