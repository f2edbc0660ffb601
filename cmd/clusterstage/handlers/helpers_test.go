package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterstage/internal/config"
	s3store "github.com/imamik/clusterstage/internal/platform/s3"
)

// fakeObjectStore records calls and returns the configured errors.
type fakeObjectStore struct {
	mu sync.Mutex

	createBucketFn    func(name, region string) error
	deleteBucketFn    func(name string) error
	uploadDirectoryFn func(bucket, localPath, keyPrefix string) error
	downloadFileFn    func(bucket, key, dest string) error

	created  []string
	deleted  []string
	uploaded []string
	objects  map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) CreateBucket(_ context.Context, name, region string) error {
	f.mu.Lock()
	f.created = append(f.created, name)
	f.mu.Unlock()
	if f.createBucketFn != nil {
		return f.createBucketFn(name, region)
	}
	return nil
}

func (f *fakeObjectStore) DeleteBucket(_ context.Context, name string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, name)
	f.mu.Unlock()
	if f.deleteBucketFn != nil {
		return f.deleteBucketFn(name)
	}
	return nil
}

func (f *fakeObjectStore) UploadDirectory(_ context.Context, bucket, localPath, keyPrefix string) error {
	f.mu.Lock()
	f.uploaded = append(f.uploaded, keyPrefix)
	f.mu.Unlock()
	if f.uploadDirectoryFn != nil {
		return f.uploadDirectoryFn(bucket, localPath, keyPrefix)
	}
	return nil
}

func (f *fakeObjectStore) PutObject(_ context.Context, _, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStore) DownloadFile(_ context.Context, bucket, key, dest string) error {
	if f.downloadFileFn != nil {
		return f.downloadFileFn(bucket, key, dest)
	}
	return os.WriteFile(dest, f.objects[key], 0o600)
}

// captureOutput redirects handler stdout and stderr into buffers for the
// duration of the test.
func captureOutput(t *testing.T) (out, logs *bytes.Buffer) {
	t.Helper()
	origStdout, origStderr := stdout, stderr
	out, logs = &bytes.Buffer{}, &bytes.Buffer{}
	stdout, stderr = out, logs
	t.Cleanup(func() {
		stdout, stderr = origStdout, origStderr
	})
	return out, logs
}

// useEnvironment replaces the environment loader with a fixed result.
func useEnvironment(t *testing.T, env config.Environment) {
	t.Helper()
	orig := loadEnvironment
	loadEnvironment = func(string) (config.Environment, error) { return env, nil }
	t.Cleanup(func() { loadEnvironment = orig })
}

// useObjectStore makes newObjectStore return store and records the options.
func useObjectStore(t *testing.T, store ObjectStore) *s3store.Options {
	t.Helper()
	orig := newObjectStore
	var got s3store.Options
	newObjectStore = func(_ context.Context, opts s3store.Options) (ObjectStore, error) {
		got = opts
		return store, nil
	}
	t.Cleanup(func() { newObjectStore = orig })
	return &got
}

// writeDeployment writes a deployment file plus the artifact tree into a
// temporary directory and returns the config path.
func writeDeployment(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"custom_resources", "batch"} {
		path := filepath.Join(dir, "artifacts", "resources", sub)
		require.NoError(t, os.MkdirAll(path, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(path, "handler.py"), []byte("# handler"), 0o600))
	}
	path := filepath.Join(dir, "clusterstage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
