// =============================================================================
// LIS Ticket Tracker - File Manager Utility
// =============================================================================
//
// This module provides file management utilities shared across the
// application:
//   - Atomic file writes (temp file + rename) for the ticket store
//   - Retention sweeping of stale .LIS log files
//   - Small file helpers
//
// RETENTION STRATEGY:
//   The press controller names .LIS files with an MMDDYY date prefix.
//   Files older than the retention window are deleted; files whose name
//   prefix does not parse as a date are skipped and reported, never
//   deleted. The sweep only ever touches files ending in ".LIS", so the
//   ledger's JSON store is structurally out of reach.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// lisDateLayout is the MMDDYY prefix the press controller stamps on
// .LIS filenames (Go reference time form).
const lisDateLayout = "010206"

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// AtomicWriteFile writes data to path through a temporary file in the
// same directory followed by a rename, so readers never observe a
// partially written file and a crash mid-write leaves the previous
// content intact.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// On any failure past this point, remove the temp file.
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("failed to close temp file: %w", err))
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return cleanup(fmt.Errorf("failed to set temp file mode: %w", err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return cleanup(fmt.Errorf("failed to rename temp file: %w", err))
	}
	return nil
}

// =============================================================================
// RETENTION SWEEP
// =============================================================================

// SweepResult summarizes one retention sweep of the .LIS data directory.
type SweepResult struct {
	// Removed is the number of files deleted.
	Removed int

	// Skipped is the number of .LIS files whose name prefix did not parse
	// as an MMDDYY date. These are retained.
	Skipped int

	// RemovedFiles lists the names of the deleted files.
	RemovedFiles []string
}

// CleanupLISFiles deletes .LIS files in dir whose MMDDYY name prefix is
// older than retentionDays. Files with unparseable prefixes are skipped
// and logged. When dryRun is set, candidates are reported but nothing is
// deleted.
func CleanupLISFiles(dir string, retentionDays int, dryRun bool, log zerolog.Logger) (SweepResult, error) {
	var result SweepResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		return result, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".LIS") {
			continue
		}

		fileDate, err := parseLISDate(name)
		if err != nil {
			result.Skipped++
			log.Info().Str("file", name).Msg("skipping file with unparseable date prefix")
			continue
		}

		if !fileDate.Before(cutoff) {
			continue
		}

		if !dryRun {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return result, fmt.Errorf("failed to remove %s: %w", name, err)
			}
		}
		result.Removed++
		result.RemovedFiles = append(result.RemovedFiles, name)
		log.Info().Str("file", name).Bool("dry_run", dryRun).Msg("removed stale log file")
	}

	return result, nil
}

// parseLISDate parses the MMDDYY prefix of a .LIS filename.
func parseLISDate(name string) (time.Time, error) {
	if len(name) < 6 {
		return time.Time{}, fmt.Errorf("filename %q too short for a date prefix", name)
	}
	return time.Parse(lisDateLayout, name[:6])
}

// =============================================================================
// FILE HELPERS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
