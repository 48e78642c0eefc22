package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/domain"
)

// Merge reconciles the existing metadata rows against the current
// directory listing. Rows whose file still exists are preserved
// verbatim, so curated edits survive a resync. Rows whose file is gone
// are dropped and counted. Files without a row get a placeholder built
// by the callback. Output order follows the lexicographic order of the
// listing. Filename matching is Unicode-normalization-insensitive on
// both sides.
//
// Merge is pure over its inputs; storage and tag probing stay outside.
func Merge(existing map[string]domain.MetadataRow, files []string, placeholder func(filename string) domain.MetadataRow) (rows []domain.MetadataRow, added, removed int) {
	normalized := make(map[string]domain.MetadataRow, len(existing))
	for key, row := range existing {
		normalized[normalizeKey(key)] = row
	}

	sorted := sortedCopy(files)

	present := make(map[string]bool, len(sorted))
	for _, f := range sorted {
		present[normalizeKey(f)] = true
	}
	for key := range normalized {
		if !present[key] {
			removed++
		}
	}

	rows = make([]domain.MetadataRow, 0, len(sorted))
	for _, f := range sorted {
		if row, ok := normalized[normalizeKey(f)]; ok {
			rows = append(rows, row)
			continue
		}
		rows = append(rows, placeholder(f))
		added++
	}

	return rows, added, removed
}

// Sync brings the metadata table up to date with the media directory.
// The replacement table is built fully in memory, validated, and then
// atomically swapped into place, so a reader never observes a
// half-written table and an interrupted sync leaves the old one intact.
// A media directory that cannot be read is not the same as an empty
// one: pruning against it would wipe every curated row, so the table
// is left untouched with a warning.
func (r *Reconciler) Sync() (added, removed int, err error) {
	files, err := r.listMediaFiles()
	if err != nil {
		r.log.Warn("media directory not readable, leaving metadata table untouched",
			"dir", r.MediaDir, "error", err)
		return 0, 0, nil
	}

	existing := r.LoadMetadata()

	rows, added, removed := Merge(existing, files, func(filename string) domain.MetadataRow {
		ts := r.probe(filepath.Join(r.MediaDir, filename))
		return placeholderRow(filename, ts)
	})

	if err := validateRows(rows); err != nil {
		return 0, 0, fmt.Errorf("refusing to write metadata table: %w", err)
	}

	if err := r.writeTable(rows); err != nil {
		return 0, 0, err
	}

	if added > 0 || removed > 0 {
		r.log.Info("metadata table updated", "added", added, "removed", removed)
		if added > 0 {
			r.log.Info("new rows carry placeholder values, complete them by hand",
				"path", r.TablePath)
		}
	} else {
		r.log.Debug("metadata table already up to date", "path", r.TablePath)
	}

	return added, removed, nil
}

// validateRows rejects a replacement table with duplicate or missing
// keys before it can reach disk.
func validateRows(rows []domain.MetadataRow) error {
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := normalizeKey(row.Filename)
		if key == "" {
			return fmt.Errorf("row with empty filename")
		}
		if seen[key] {
			return fmt.Errorf("duplicate filename %q", row.Filename)
		}
		seen[key] = true
	}
	return nil
}

// writeTable writes the full table to a temp file in the target
// directory and renames it over the old one.
func (r *Reconciler) writeTable(rows []domain.MetadataRow) error {
	dir := filepath.Dir(r.TablePath)
	tmp, err := os.CreateTemp(dir, ".songs-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(constants.MetadataColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(recordFromRow(row)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush table: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp table: %w", err)
	}

	if err := os.Rename(tmpPath, r.TablePath); err != nil {
		return fmt.Errorf("failed to replace metadata table: %w", err)
	}
	success = true
	return nil
}
