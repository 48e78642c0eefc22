package library

import (
	"os"

	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/domain"
)

// ScanCatalog lists the media directory in lexicographic filename
// order and produces the song catalog. Identifiers are sequential in
// scan order; they are stable across runs only while filenames stay
// unchanged, so they serve as seeds for the persistent store rather
// than as durable keys. A missing or unreadable directory yields an
// empty catalog with a warning.
//
// A file with a matching metadata row gets the row's feature vector; a
// file without one gets a derived title, the unknown-artist sentinel
// and a nil vector, so callers can tell "no data supplied" apart from
// "data explicitly zero".
func (r *Reconciler) ScanCatalog(meta map[string]domain.MetadataRow) []domain.Song {
	files, err := r.listMediaFiles()
	if err != nil {
		r.log.Warn("media directory not readable, catalog is empty",
			"dir", r.MediaDir, "error", err)
	}

	songs := make([]domain.Song, 0, len(files))
	for _, filename := range files {
		id := int64(len(songs) + 1)

		row, ok := meta[normalizeKey(filename)]
		if !ok {
			songs = append(songs, domain.Song{
				ID:     id,
				Title:  deriveTitle(filename),
				Artist: constants.UnknownArtist,
				URL:    r.trackURL(filename),
			})
			continue
		}

		title := row.Title
		if title == "" {
			title = deriveTitle(filename)
		}
		songs = append(songs, domain.Song{
			ID:       id,
			Title:    title,
			Artist:   row.Artist,
			URL:      r.trackURL(filename),
			Features: featuresFromRow(row),
		})
	}

	return songs
}

// listMediaFiles returns the supported media filenames in the media
// directory, lexicographically ordered. The error is surfaced so each
// caller can decide whether a missing directory degrades to an empty
// listing or aborts.
func (r *Reconciler) listMediaFiles() ([]string, error) {
	entries, err := os.ReadDir(r.MediaDir)
	if err != nil {
		return nil, err
	}

	// os.ReadDir already sorts entries by filename.
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isAudioFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}
