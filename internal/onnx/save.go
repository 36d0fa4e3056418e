package onnx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/born-ml/born-fixture/internal/logger"
)

// Save serializes model and writes it to path.
//
// The bytes go to a temporary file in the destination directory which is
// renamed over path once fully written, so a failed save never leaves a
// partial file behind. When path is a symlink the model is written to the
// file it points to and the link is kept. Filesystem errors are wrapped and
// keep their *fs.PathError cause.
func Save(model *ModelProto, path string) error {
	data, err := Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to serialize model: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	logger.Log.Debug("saved onnx model", "path", path, "bytes", len(data))
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	// CreateTemp creates files with mode 0600.
	if err = os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // G302: fixture files are not secret.
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
