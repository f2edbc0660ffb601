package component

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/imamik/clusterstage/internal/util/naming"
	"github.com/imamik/clusterstage/internal/workspace"
)

const (
	scriptDir       = "bash_component"
	timestampLayout = "20060102-150405"
)

// Wrapper fetches a script into a workspace and renders it into a template.
type Wrapper struct {
	Fetcher   Fetcher
	Workspace *workspace.Workspace
	// Template defaults to DefaultTemplate when nil.
	Template []byte
	Now      func() time.Time
}

// Wrap fetches source and returns the rendered component document.
func (w *Wrapper) Wrap(ctx context.Context, source string) ([]byte, error) {
	if _, err := w.Workspace.MkdirAll(scriptDir); err != nil {
		return nil, err
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	dest, err := w.Workspace.Path(scriptDir, naming.ComponentScript(now().Format(timestampLayout), source))
	if err != nil {
		return nil, err
	}

	if err := w.Fetcher.Fetch(ctx, source, dest); err != nil {
		return nil, err
	}

	// #nosec G304
	script, err := os.ReadFile(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to read fetched script: %w", err)
	}

	tmpl := w.Template
	if tmpl == nil {
		tmpl = defaultTemplate
	}
	return Render(tmpl, script)
}
