package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/imamik/clusterstage/internal/component"
	"github.com/imamik/clusterstage/internal/workspace"
)

// Factory function variables for component - can be replaced in tests.
var (
	// newWorkspace creates the scratch directory of one wrap run.
	newWorkspace = workspace.New

	// httpClient downloads https script sources.
	httpClient = &http.Client{Timeout: 60 * time.Second}
)

// ComponentWrapOptions are the inputs of the component wrap command.
type ComponentWrapOptions struct {
	GlobalOptions

	Source       string
	TemplatePath string
	OutputPath   string
	// Region is used for s3:// sources.
	Region string
}

// ComponentWrap wraps a bash script into an image build component document.
func ComponentWrap(ctx context.Context, opts ComponentWrapOptions) error {
	env, logger, err := setup(opts.GlobalOptions)
	if err != nil {
		return err
	}

	ws, err := newWorkspace("")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			logger.Warn("failed to remove workspace", "error", cerr)
		}
	}()

	var downloader component.ObjectDownloader
	if strings.HasPrefix(opts.Source, "s3://") {
		region := opts.Region
		if region == "" {
			region = env.DefaultRegion
		}
		store, err := newObjectStore(ctx, storeOptions(env, region))
		if err != nil {
			return fmt.Errorf("failed to create object storage client: %w", err)
		}
		downloader = store
	}

	wrapper := &component.Wrapper{
		Fetcher:   component.NewSchemeFetcher(httpClient, downloader),
		Workspace: ws,
	}
	if opts.TemplatePath != "" {
		// #nosec G304
		tmpl, err := os.ReadFile(opts.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		wrapper.Template = tmpl
	}

	logger.Debug("wrapping script", "source", opts.Source, "workspace", ws.Dir())
	doc, err := wrapper.Wrap(ctx, opts.Source)
	if err != nil {
		return fmt.Errorf("failed to wrap %s: %w", opts.Source, err)
	}

	if opts.OutputPath == "" {
		_, err = stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(opts.OutputPath, doc, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
	}
	logger.Info("component written", "path", opts.OutputPath)
	return nil
}
