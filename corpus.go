package nforeport

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the recognized sidecar file extension.
const Extension = ".nfo"

// BuildCorpus walks root recursively, extracts every .nfo file it finds,
// and returns the records that carry a non-empty title, in traversal
// order. Ordering by tag is imposed later by the composer.
//
// A missing or unreadable root yields an empty corpus plus a diagnostic,
// not an error; unreadable or titleless files are skipped with a per-file
// diagnostic. A nil reporter discards diagnostics.
func BuildCorpus(root string, reporter Reporter) []Record {
	if reporter == nil {
		reporter = NopReporter{}
	}

	info, err := os.Stat(root)
	if err != nil {
		reporter.Warnf("directory %s does not exist", root)
		return nil
	}
	if !info.IsDir() {
		reporter.Warnf("%s is not a directory", root)
		return nil
	}

	var records []Record
	found := 0

	// The walk callback always returns nil: every per-file failure is a
	// diagnostic, never a reason to halt the run.
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			reporter.Warnf("scanning %s: %v", path, walkErr)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), Extension) {
			return nil
		}
		found++

		raw, readErr := os.ReadFile(path) // #nosec G304 -- paths come from the directory walk itself
		if readErr != nil {
			reporter.Warnf("reading %s: %v", path, readErr)
			return nil
		}

		rec, extErr := Extract(raw, path)
		if extErr != nil {
			reporter.Warnf("parsing %s: %v", path, extErr)
			return nil
		}
		if rec.Title == "" {
			reporter.Infof("skipping %s: no title", path)
			return nil
		}

		records = append(records, rec)
		return nil
	})

	reporter.Infof("found %d nfo files, %d valid", found, len(records))
	return records
}
