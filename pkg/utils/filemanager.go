// =============================================================================
// nodeidgen - File Management Utilities
// =============================================================================
//
// This module provides the file operations used around generation:
//   - Writing the generated header atomically
//   - Detecting the table format from the file name
//   - File existence checks
//   - Run identifiers for log correlation
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILES
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file in the same
// directory and renames it into place, so readers never observe a partially
// written header. The parent directory is created if needed.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The complete file contents.
//   - perm: The permissions for the final file.
//
// RETURNS:
//   - An error if the file cannot be written. The temporary file is removed
//     on every failure path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// =============================================================================
// TABLE FORMAT DETECTION
// =============================================================================

// IsWorkbook reports whether path names an Excel workbook rather than a
// delimited text table.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// NewRunID returns a random identifier for one generation run.
func NewRunID() string {
	return uuid.New().String()
}
