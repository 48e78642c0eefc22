package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tomotune/tomotune/internal/domain"
)

const songColumns = `id, title, artist, url, parameters, created_at, updated_at`

// SeedCatalog upserts the scanned catalog into the songs table, keyed
// by title so repeated scans never create duplicate rows. Identifiers
// are assigned once at first insert and persist afterwards; the
// scanner's scan-order IDs only decide initial insert order. The whole
// seed runs in one transaction so readers never see a partial refresh.
//
// An incoming nil feature vector leaves a previously stored vector
// alone; a non-nil vector replaces the stored one wholesale.
func (db *DB) SeedCatalog(songs []domain.Song) (added int, err error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now()
	for _, song := range songs {
		params, err := encodeFeatures(song.Features)
		if err != nil {
			return 0, fmt.Errorf("failed to encode features for %q: %w", song.Title, err)
		}

		var existingID int64
		err = tx.Get(&existingID, `SELECT id FROM songs WHERE title = ?`, song.Title)
		switch {
		case err == sql.ErrNoRows:
			_, err = tx.Exec(`INSERT INTO songs (title, artist, url, parameters, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				song.Title, song.Artist, song.URL, params, now, now)
			if err != nil {
				return 0, fmt.Errorf("failed to insert song %q: %w", song.Title, err)
			}
			added++
		case err != nil:
			return 0, fmt.Errorf("failed to look up song %q: %w", song.Title, err)
		default:
			if song.Features != nil {
				_, err = tx.Exec(`UPDATE songs SET artist = ?, url = ?, parameters = ?, updated_at = ? WHERE id = ?`,
					song.Artist, song.URL, params, now, existingID)
			} else {
				_, err = tx.Exec(`UPDATE songs SET artist = ?, url = ?, updated_at = ? WHERE id = ?`,
					song.Artist, song.URL, now, existingID)
			}
			if err != nil {
				return 0, fmt.Errorf("failed to update song %q: %w", song.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return added, nil
}

func (db *DB) GetSongByID(id int64) (*domain.Song, error) {
	row := db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	return scanSong(row)
}

func (db *DB) GetSongByTitle(title string) (*domain.Song, error) {
	row := db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE title = ?`, title)
	return scanSong(row)
}

func (db *DB) ListSongs() ([]*domain.Song, error) {
	rows, err := db.Query(`SELECT ` + songColumns + ` FROM songs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	var songs []*domain.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSong reads one songs row. The parameters column round-trips the
// feature vector as an opaque blob; NULL stays a nil vector.
func scanSong(row rowScanner) (*domain.Song, error) {
	var song domain.Song
	var params []byte

	if err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.URL, &params,
		&song.CreatedAt, &song.UpdatedAt); err != nil {
		return nil, err
	}

	if len(params) > 0 {
		var fv domain.FeatureVector
		if err := fv.Scan(params); err != nil {
			return nil, fmt.Errorf("failed to decode features for song %d: %w", song.ID, err)
		}
		song.Features = &fv
	}

	return &song, nil
}

func encodeFeatures(f *domain.FeatureVector) (any, error) {
	if f == nil {
		return nil, nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
