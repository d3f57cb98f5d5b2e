package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	if err := AtomicWriteFile(path, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("content: got %q", data)
	}

	// Overwrite replaces the previous content in full.
	if err := AtomicWriteFile(path, []byte(`{"b":2}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != `{"b":2}` {
		t.Errorf("overwritten content: got %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file in %s, found %d entries", dir, len(entries))
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCleanupLISFiles(t *testing.T) {
	dir := t.TempDir()

	recent := time.Now().Format("010206") + ".LIS"
	touch(t, dir, "010110.LIS") // Jan 1 2010: far past any retention window
	touch(t, dir, recent)
	touch(t, dir, "badname.LIS") // unparseable prefix: skipped, retained
	touch(t, dir, "notes.txt")   // not a .LIS file: untouched

	result, err := CleanupLISFiles(dir, 13, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("CleanupLISFiles: %v", err)
	}

	if result.Removed != 1 {
		t.Errorf("Removed: got %d, want 1", result.Removed)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped: got %d, want 1", result.Skipped)
	}

	if FileExists(filepath.Join(dir, "010110.LIS")) {
		t.Error("stale file not removed")
	}
	for _, name := range []string{recent, "badname.LIS", "notes.txt"} {
		if !FileExists(filepath.Join(dir, name)) {
			t.Errorf("file %s should have been retained", name)
		}
	}
}

func TestCleanupLISFilesDryRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "010110.LIS")

	result, err := CleanupLISFiles(dir, 13, true, zerolog.Nop())
	if err != nil {
		t.Fatalf("CleanupLISFiles: %v", err)
	}

	if result.Removed != 1 {
		t.Errorf("Removed: got %d, want 1", result.Removed)
	}
	if len(result.RemovedFiles) != 1 || result.RemovedFiles[0] != "010110.LIS" {
		t.Errorf("RemovedFiles: got %v", result.RemovedFiles)
	}
	if !FileExists(filepath.Join(dir, "010110.LIS")) {
		t.Error("dry run deleted a file")
	}
}

func TestCleanupLISFilesMissingDir(t *testing.T) {
	_, err := CleanupLISFiles(filepath.Join(t.TempDir(), "nope"), 13, false, zerolog.Nop())
	if err == nil {
		t.Error("expected an error for a missing directory")
	}
}
