package component

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	bucket, key string
	err         error
}

func (d *fakeDownloader) DownloadFile(_ context.Context, bucket, key, dest string) error {
	d.bucket, d.key = bucket, key
	if d.err != nil {
		return d.err
	}
	return os.WriteFile(dest, []byte("from s3"), 0o600)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLocalFetcher(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(src, []byte("echo local"), 0o600))

	for _, source := range []string{src, "file://" + src} {
		dest := filepath.Join(dir, "out.sh")
		require.NoError(t, LocalFetcher{}.Fetch(context.Background(), source, dest))
		assert.Equal(t, "echo local", readFile(t, dest))
	}

	err := LocalFetcher{}.Fetch(context.Background(), filepath.Join(dir, "missing.sh"), filepath.Join(dir, "x"))
	assert.Error(t, err)
}

func TestHTTPSFetcher(t *testing.T) {
	t.Parallel()
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.sh" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("echo remote"))
	}))
	t.Cleanup(server.Close)

	f := HTTPSFetcher{Client: server.Client()}
	dest := filepath.Join(t.TempDir(), "out.sh")

	require.NoError(t, f.Fetch(context.Background(), server.URL+"/script.sh", dest))
	assert.Equal(t, "echo remote", readFile(t, dest))

	err := f.Fetch(context.Background(), server.URL+"/missing.sh", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestS3Fetcher(t *testing.T) {
	t.Parallel()
	d := &fakeDownloader{}
	dest := filepath.Join(t.TempDir(), "out.sh")

	require.NoError(t, S3Fetcher{Downloader: d}.Fetch(context.Background(), "s3://my-bucket/scripts/setup.sh", dest))
	assert.Equal(t, "my-bucket", d.bucket)
	assert.Equal(t, "scripts/setup.sh", d.key)
	assert.Equal(t, "from s3", readFile(t, dest))

	assert.Error(t, S3Fetcher{Downloader: d}.Fetch(context.Background(), "s3://my-bucket/", dest))
	assert.Error(t, S3Fetcher{}.Fetch(context.Background(), "s3://b/k", dest))

	d.err = errors.New("NoSuchKey")
	err := S3Fetcher{Downloader: d}.Fetch(context.Background(), "s3://b/k", dest)
	assert.ErrorIs(t, err, d.err)
}

func TestSchemeFetcher_Dispatch(t *testing.T) {
	t.Parallel()
	var got []string
	record := func(name string) Fetcher {
		return fetcherFunc(func(_ context.Context, source, _ string) error {
			got = append(got, name+":"+source)
			return nil
		})
	}
	f := &SchemeFetcher{Local: record("local"), HTTPS: record("https"), S3: record("s3")}

	for _, src := range []string{"/tmp/a.sh", "file:///tmp/b.sh", "https://example.com/c.sh", "s3://bkt/d.sh"} {
		require.NoError(t, f.Fetch(context.Background(), src, "dest"))
	}
	assert.Equal(t, []string{
		"local:/tmp/a.sh",
		"local:file:///tmp/b.sh",
		"https:https://example.com/c.sh",
		"s3:s3://bkt/d.sh",
	}, got)

	err := f.Fetch(context.Background(), "ftp://example.com/e.sh", "dest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported script source scheme "ftp"`)
}

type fetcherFunc func(ctx context.Context, source, dest string) error

func (f fetcherFunc) Fetch(ctx context.Context, source, dest string) error {
	return f(ctx, source, dest)
}
