// Package workspace provides a temporary directory owned by one workflow.
//
// A Workspace is created at the start of a workflow, passed to whatever needs
// scratch space, and removed with Close when the workflow ends:
//
//	ws, err := workspace.New("")
//	if err != nil {
//		return err
//	}
//	defer ws.Close()
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrClosed is returned by operations on a closed Workspace.
var ErrClosed = errors.New("workspace is closed")

// Workspace is a scratch directory removed on Close.
type Workspace struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

// New creates a workspace below parent, or below os.TempDir when parent is empty.
func New(parent string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, "clusterstage-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the absolute path of a workspace-relative name. Names that
// escape the workspace are rejected.
func (w *Workspace) Path(elem ...string) (string, error) {
	rel := filepath.Join(elem...)
	if rel == "" || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid workspace path %q", rel)
	}
	return filepath.Join(w.dir, rel), nil
}

// MkdirAll creates a directory inside the workspace and returns its path.
func (w *Workspace) MkdirAll(elem ...string) (string, error) {
	if err := w.checkOpen(); err != nil {
		return "", err
	}
	p, err := w.Path(elem...)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", p, err)
	}
	return p, nil
}

// Close removes the workspace. It is safe to call more than once.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.dir, err)
	}
	return nil
}

func (w *Workspace) checkOpen() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	return nil
}
