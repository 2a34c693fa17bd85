// Package storage holds the low-level file plumbing shared by the settings
// sync: atomic replaces and rotating backups.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileExists reports whether a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// AtomicFileUpdate replaces the file's content via a temp file and rename so
// a crash never leaves a half-written file. With createBackup a timestamped
// copy of the old content is kept first.
func AtomicFileUpdate(filePath string, newContent string, createBackup bool) error {
	if createBackup && FileExists(filePath) {
		bm := NewBackupManager(DefaultBackupRetention)
		if _, err := bm.CreateBackup(filePath); err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(newContent); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	// Rename is atomic on POSIX filesystems.
	if err := os.Rename(tmpFile.Name(), filePath); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	if createBackup {
		bm := NewBackupManager(DefaultBackupRetention)
		// Non-fatal: the update itself succeeded.
		_ = bm.CleanupOldBackups(filePath)
	}
	return nil
}
