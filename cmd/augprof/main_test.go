package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augkit/transform"
	"augkit/transform/geometric"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return buf.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "augkit.geometric.HorizontalFlip")
	assert.Contains(t, out, "augkit.compose.OneOf")

	out, err = execute(t, "list", "--method", "apply_to_keypoint")
	require.NoError(t, err)
	assert.Contains(t, out, "augkit.geometric.VerticalFlip")
	assert.NotContains(t, out, "augkit.color.Normalize")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	pipe := filepath.Join(dir, "pipeline.yml")
	require.NoError(t, os.WriteFile(pipe, []byte("pipeline:\n  name: HorizontalFlip\n"), 0o644))

	_, err := execute(t, "run", "-c", filepath.Join(dir, "none.yml"), "-p", pipe, "-n", "2", "--sink", "stdout", "--frames")
	require.NoError(t, err)
	assert.False(t, geometric.HorizontalFlip.Hooked(transform.MethodCall))

	_, err = execute(t, "run", "-c", filepath.Join(dir, "none.yml"))
	require.Error(t, err)
}
