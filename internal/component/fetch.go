package component

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetcher copies the script named by source to dest.
type Fetcher interface {
	Fetch(ctx context.Context, source, dest string) error
}

// LocalFetcher copies plain paths and file:// URLs.
type LocalFetcher struct{}

// Fetch implements Fetcher.
func (LocalFetcher) Fetch(_ context.Context, source, dest string) error {
	src := strings.TrimPrefix(source, "file://")
	// #nosec G304
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()
	return writeFile(dest, in)
}

// HTTPSFetcher downloads https:// URLs.
type HTTPSFetcher struct {
	Client *http.Client
}

// Fetch implements Fetcher.
func (f HTTPSFetcher) Fetch(ctx context.Context, source, dest string) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return fmt.Errorf("invalid URL %s: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status %s", source, resp.Status)
	}
	return writeFile(dest, resp.Body)
}

// ObjectDownloader downloads one object to a local file.
// *s3.Client satisfies it.
type ObjectDownloader interface {
	DownloadFile(ctx context.Context, bucket, key, dest string) error
}

// S3Fetcher downloads s3://bucket/key URLs.
type S3Fetcher struct {
	Downloader ObjectDownloader
}

// Fetch implements Fetcher.
func (f S3Fetcher) Fetch(ctx context.Context, source, dest string) error {
	u, err := url.Parse(source)
	if err != nil {
		return fmt.Errorf("invalid URL %s: %w", source, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return fmt.Errorf("invalid S3 URL %s: want s3://bucket/key", source)
	}
	if f.Downloader == nil {
		return fmt.Errorf("no object storage client configured for %s", source)
	}
	if err := f.Downloader.DownloadFile(ctx, u.Host, key, dest); err != nil {
		return fmt.Errorf("failed to download %s: %w", source, err)
	}
	return nil
}

// SchemeFetcher dispatches on the URL scheme of the source.
type SchemeFetcher struct {
	Local Fetcher
	HTTPS Fetcher
	S3    Fetcher
}

// NewSchemeFetcher returns a fetcher for local files, https and s3 sources.
// downloader may be nil when s3 sources are not needed.
func NewSchemeFetcher(client *http.Client, downloader ObjectDownloader) *SchemeFetcher {
	return &SchemeFetcher{
		Local: LocalFetcher{},
		HTTPS: HTTPSFetcher{Client: client},
		S3:    S3Fetcher{Downloader: downloader},
	}
}

// Fetch implements Fetcher.
func (f *SchemeFetcher) Fetch(ctx context.Context, source, dest string) error {
	scheme := ""
	if u, err := url.Parse(source); err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "https":
		return f.HTTPS.Fetch(ctx, source, dest)
	case "s3":
		return f.S3.Fetch(ctx, source, dest)
	case "", "file":
		return f.Local.Fetch(ctx, source, dest)
	default:
		return fmt.Errorf("unsupported script source scheme %q", scheme)
	}
}

func writeFile(dest string, r io.Reader) error {
	// #nosec G304
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return out.Close()
}
