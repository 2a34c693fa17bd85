package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultBackupRetention is the default number of backups to keep.
const DefaultBackupRetention = 3

// BackupManager creates and rotates timestamped copies of a file.
type BackupManager struct {
	MaxBackups int
}

// NewBackupManager creates a BackupManager keeping at most maxBackups copies.
func NewBackupManager(maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{MaxBackups: maxBackups}
}

// CreateBackup copies the file to <path>.backup-<timestamp>-<pid>.
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	timestamp := time.Now().Format("20060102150405")
	backupPath := fmt.Sprintf("%s.backup-%s-%d", filePath, timestamp, os.Getpid())

	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if srcInfo, err := os.Stat(filePath); err == nil {
		// Non-fatal: the backup content is already in place.
		_ = os.Chmod(backupPath, srcInfo.Mode())
	}
	return backupPath, nil
}

// CleanupOldBackups removes the oldest backups beyond MaxBackups.
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	pattern := filePath + ".backup-*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(matches) <= bm.MaxBackups {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(matches)
	for _, stale := range matches[:len(matches)-bm.MaxBackups] {
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("failed to remove stale backup %s: %w", stale, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
