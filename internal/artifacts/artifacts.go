// Package artifacts decides which local resource directories a deployment
// needs staged and where they live on disk.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/clusterstage/internal/config"
)

// DirectoryID identifies a logical artifact directory.
type DirectoryID string

const (
	// CustomResources holds the custom resource handlers every staged deployment needs.
	CustomResources DirectoryID = "custom_resources"
	// BatchResources holds the AWS Batch specific artifacts.
	BatchResources DirectoryID = "batch_resources"
)

// Directory is a logical artifact directory: where it lives relative to the
// artifact root and which key prefix it gets in the staging bucket.
type Directory struct {
	ID        DirectoryID
	Path      string
	KeyPrefix string
}

var directories = map[DirectoryID]Directory{
	CustomResources: {ID: CustomResources, Path: filepath.Join("resources", "custom_resources"), KeyPrefix: "custom_resources"},
	BatchResources:  {ID: BatchResources, Path: filepath.Join("resources", "batch"), KeyPrefix: "batch"},
}

// Lookup returns the directory registered for id.
func Lookup(id DirectoryID) (Directory, bool) {
	d, ok := directories[id]
	return d, ok
}

// Set is an ordered, duplicate-free list of directories. Common resources
// come first, scheduler-specific ones last.
type Set []Directory

// IDs returns the directory identifiers in order.
func (s Set) IDs() []DirectoryID {
	ids := make([]DirectoryID, len(s))
	for i, d := range s {
		ids[i] = d.ID
	}
	return ids
}

// Empty reports whether nothing needs staging.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Resolve returns the directories that must be staged for a scheduler.
// Schedulers without staging needs get an empty set; unrecognized values
// fail with a *config.ConfigurationError.
func Resolve(scheduler config.Scheduler) (Set, error) {
	switch scheduler {
	case config.SchedulerSlurm:
		return Set{directories[CustomResources]}, nil
	case config.SchedulerAWSBatch:
		return Set{directories[CustomResources], directories[BatchResources]}, nil
	case config.SchedulerSGE, config.SchedulerTorque:
		return Set{}, nil
	default:
		return nil, &config.ConfigurationError{
			Field: "scheduler",
			Value: string(scheduler),
			Msg:   fmt.Sprintf("must be one of %v", config.ValidSchedulers()),
		}
	}
}

// RootResolver maps a logical directory to a local path.
type RootResolver interface {
	ResolveArtifactRoot(id DirectoryID) (string, error)
}

// DirResolver resolves directories below a fixed root.
type DirResolver struct {
	Root string
}

// NewDirResolver returns a resolver rooted at root. An empty root resolves
// relative to the running executable.
func NewDirResolver(root string) *DirResolver {
	if root == "" {
		root = defaultRoot()
	}
	return &DirResolver{Root: root}
}

// ResolveArtifactRoot returns the on-disk path of the directory and checks that it exists.
func (r *DirResolver) ResolveArtifactRoot(id DirectoryID) (string, error) {
	d, ok := directories[id]
	if !ok {
		return "", &config.ConfigurationError{Field: "artifact directory", Value: string(id)}
	}

	path := filepath.Join(r.Root, d.Path)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("artifact directory %s: %w", id, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("artifact directory %s: %s is not a directory", id, path)
	}
	return path, nil
}

func defaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
