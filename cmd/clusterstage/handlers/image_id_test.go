package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterstage/internal/cloud"
)

const parentARN = "arn:aws:imagebuilder:eu-west-1:123456789012:image/base/1.0.0/1"

func TestImageID(t *testing.T) {
	t.Run("plain id is printed unchanged", func(t *testing.T) {
		out, _ := captureOutput(t)

		require.NoError(t, ImageID(context.Background(), ImageIDOptions{Parent: "ami-0123"}))
		assert.Equal(t, "ami-0123\n", out.String())
	})

	t.Run("arn resolved through lookup", func(t *testing.T) {
		out, _ := captureOutput(t)
		lookup := writeFile(t, "lookup.json", `{"`+parentARN+`": "ami-0456"}`)

		require.NoError(t, ImageID(context.Background(), ImageIDOptions{Parent: parentARN, LookupPath: lookup}))
		assert.Equal(t, "ami-0456\n", out.String())
	})

	t.Run("arn without lookup", func(t *testing.T) {
		captureOutput(t)

		err := ImageID(context.Background(), ImageIDOptions{Parent: parentARN})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "image lookup is required")
	})

	t.Run("arn missing from lookup", func(t *testing.T) {
		captureOutput(t)
		lookup := writeFile(t, "lookup.json", `{}`)

		err := ImageID(context.Background(), ImageIDOptions{Parent: parentARN, LookupPath: lookup})
		require.Error(t, err)
		assert.True(t, errors.Is(err, cloud.ErrNotFound))
	})

	t.Run("unreadable lookup", func(t *testing.T) {
		err := ImageID(context.Background(), ImageIDOptions{Parent: parentARN, LookupPath: "/nonexistent/lookup.yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})
}
