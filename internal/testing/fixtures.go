package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterstage/internal/artifacts"
	"github.com/imamik/clusterstage/internal/config"
)

// ArtifactTree creates every known artifact directory below a fresh temp
// root, each holding one file, and returns the root.
func ArtifactTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, id := range []artifacts.DirectoryID{artifacts.CustomResources, artifacts.BatchResources} {
		dir, ok := artifacts.Lookup(id)
		require.True(t, ok, "unknown artifact directory %s", id)

		path := filepath.Join(root, dir.Path)
		require.NoError(t, os.MkdirAll(path, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(path, "handler.py"), []byte("# "+string(id)+"\n"), 0o600))
	}
	return root
}

// WriteConfigFile marshals cfg into dir and returns the file path.
func WriteConfigFile(t *testing.T, dir string, cfg *config.DeploymentConfig) string {
	t.Helper()
	data, err := config.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(dir, config.DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
