package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicFileUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := AtomicFileUpdate(path, "new", false); err != nil {
		t.Fatalf("AtomicFileUpdate failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("Expected 'new', got %q", data)
	}

	// No backup was requested, none should exist.
	matches, _ := filepath.Glob(path + ".backup-*")
	if len(matches) != 0 {
		t.Errorf("Unexpected backups: %v", matches)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file in %s, got %d entries", dir, len(entries))
	}
}

func TestAtomicFileUpdateCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.json")

	if err := AtomicFileUpdate(path, "content", true); err != nil {
		t.Fatalf("AtomicFileUpdate failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("Expected the file to be created")
	}
}

func TestAtomicFileUpdateBackupAndRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")
	if err := os.WriteFile(path, []byte("v0"), 0600); err != nil {
		t.Fatal(err)
	}

	// One update keeps a copy of the previous content.
	if err := AtomicFileUpdate(path, "v1", true); err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(path + ".backup-*")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 backup, got %d", len(matches))
	}
	backup, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != "v0" {
		t.Errorf("Backup holds %q, want previous content 'v0'", backup)
	}
}

func TestBackupManagerCleanup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// Fabricate more backups than the retention allows.
	for i := 0; i < 5; i++ {
		name := path + ".backup-2026010100000" + string(rune('0'+i)) + "-1"
		if err := os.WriteFile(name, []byte("b"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	bm := NewBackupManager(3)
	if err := bm.CleanupOldBackups(path); err != nil {
		t.Fatalf("CleanupOldBackups failed: %v", err)
	}

	matches, _ := filepath.Glob(path + ".backup-*")
	if len(matches) != 3 {
		t.Errorf("Expected 3 backups after cleanup, got %d", len(matches))
	}
	// The newest backups survive.
	for _, m := range matches {
		if m < path+".backup-20260101000002" {
			t.Errorf("Stale backup survived cleanup: %s", m)
		}
	}
}
