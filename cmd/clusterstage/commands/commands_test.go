package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterstage/cmd/clusterstage/handlers"
)

func findSubcommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, sub := range parent.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	t.Fatalf("subcommand %s not found", name)
	return nil
}

func TestInit(t *testing.T) {
	cmd := Init()

	require.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "clusterstage.yaml", flag.DefValue)
}

func TestProvision_Flags(t *testing.T) {
	cmd := Provision(&handlers.GlobalOptions{})

	assert.Equal(t, "provision", cmd.Use)
	assert.Contains(t, cmd.Long, "awsbatch")

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"config", "c", ""},
		{"context", "", "[]"},
		{"metrics-textfile", "", ""},
		{"create-retries", "", "0"},
		{"template", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestProvision_ParsesContext(t *testing.T) {
	cmd := Provision(&handlers.GlobalOptions{})

	require.NoError(t, cmd.ParseFlags([]string{"--context", "job_queue=default,compute_env=spot", "--create-retries", "2"}))

	ctx, err := cmd.Flags().GetStringToString("context")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"job_queue": "default", "compute_env": "spot"}, ctx)

	retries, err := cmd.Flags().GetInt("create-retries")
	require.NoError(t, err)
	assert.Equal(t, 2, retries)
}

func TestCheckUpdate_Flags(t *testing.T) {
	cmd := CheckUpdate(&handlers.GlobalOptions{})

	assert.Equal(t, "check-update", cmd.Use)

	mode := cmd.Flags().Lookup("mode")
	require.NotNil(t, mode)
	assert.Equal(t, "default", mode.DefValue)

	for _, name := range []string{"base", "target"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
	}
}

func TestComponent_Wrap(t *testing.T) {
	cmd := Component(&handlers.GlobalOptions{})
	assert.Equal(t, "component", cmd.Use)

	wrap := findSubcommand(t, cmd, "wrap")
	assert.Equal(t, "wrap SOURCE", wrap.Use)
	assert.Error(t, wrap.Args(wrap, nil))
	assert.NoError(t, wrap.Args(wrap, []string{"setup.sh"}))

	output := wrap.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.NotNil(t, wrap.Flags().Lookup("template"))
	assert.NotNil(t, wrap.Flags().Lookup("region"))
}

func TestInspect_Subcommands(t *testing.T) {
	cmd := Inspect()

	assert.Len(t, cmd.Commands(), 3)
	for _, kind := range []string{"stack", "instance", "image"} {
		sub := findSubcommand(t, cmd, kind)
		assert.Equal(t, kind+" FILE", sub.Use)
		assert.Error(t, sub.Args(sub, nil))
	}
}

func TestImageID(t *testing.T) {
	cmd := ImageID()

	assert.Equal(t, "image-id PARENT", cmd.Use)
	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.NotNil(t, cmd.Flags().Lookup("lookup"))
}
