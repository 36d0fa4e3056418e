package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-fixture/internal/fixture"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCLI(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootWritesModelInWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "✅")
	assert.Equal(t, fixture.SuccessMessage+"\n", out)

	_, err = os.Stat(fixture.DefaultPath)
	require.NoError(t, err)
	require.NoError(t, fixture.Verify(fixture.DefaultPath, fixture.DefaultConfig()))
}

func TestRootOutputFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.onnx")

	_, err := run(t, "--output", path, "--vocab-size", "1000")
	require.NoError(t, err)

	cfg := fixture.DefaultConfig()
	cfg.VocabSize = 1000
	require.NoError(t, fixture.Verify(path, cfg))

	out, err := run(t, "verify", path, "--vocab-size", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "matches the fixture")
}

func TestRootUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "model.onnx")

	out, err := run(t, "-o", path)
	require.Error(t, err)
	assert.NotContains(t, out, "✅")
}

func TestRootRejectsUnknownLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "--log-level", "wraning")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wraning")
	assert.NotContains(t, out, "✅")

	_, statErr := os.Stat(fixture.DefaultPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestVocabSizeFlagScope(t *testing.T) {
	cmd := NewCLI(&bytes.Buffer{})
	for _, name := range []string{"inspect", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Nil(t, sub.Flags().Lookup("vocab-size"), name)
	}
	verify, _, err := cmd.Find([]string{"verify"})
	require.NoError(t, err)
	assert.NotNil(t, verify.Flags().Lookup("vocab-size"))
	assert.NotNil(t, cmd.Flags().Lookup("vocab-size"))

	_, err = run(t, "version", "--vocab-size", "7")
	require.Error(t, err)
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := run(t, "extra")
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.onnx")
	require.NoError(t, fixture.BuildAndSave(path))

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "test_model")
	assert.Contains(t, out, "Identity")
	assert.Contains(t, out, "input_ids")
	assert.Contains(t, out, "[1, ?, 50257]")
	assert.Contains(t, out, "float32")
}

func TestVerifyMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.onnx")
	require.NoError(t, fixture.BuildAndSave(path))

	_, err := run(t, "verify", path, "--vocab-size", "7")
	require.ErrorIs(t, err, fixture.ErrMismatch)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "born-fixture "+version+"\n", out)
}
