// Package app wires the reconciler and the taste scorer to persistent
// state. State is constructed explicitly and refreshed on demand;
// nothing is computed once at startup and then held ambiently.
package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomotune/tomotune/internal/domain"
	"github.com/tomotune/tomotune/internal/library"
	"github.com/tomotune/tomotune/internal/logger"
	"github.com/tomotune/tomotune/internal/store"
)

// LibraryService owns catalog refresh and metadata sync.
type LibraryService struct {
	reconciler *library.Reconciler
	db         *store.DB
	log        *logger.Logger
}

func NewLibraryService(reconciler *library.Reconciler, db *store.DB, log *logger.Logger) *LibraryService {
	return &LibraryService{
		reconciler: reconciler,
		db:         db,
		log:        log.WithComponent("library_service"),
	}
}

// Refresh rebuilds the catalog from the media directory and metadata
// table and seeds it into the store. Songs already present keep their
// persisted identifiers.
func (s *LibraryService) Refresh() (int, error) {
	meta := s.reconciler.LoadMetadata()
	songs := s.reconciler.ScanCatalog(meta)

	added, err := s.db.SeedCatalog(songs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}

	s.log.Info("catalog refreshed", "scanned", len(songs), "added", added)
	return len(songs), nil
}

// Songs lists the persisted catalog in identifier order.
func (s *LibraryService) Songs() ([]*domain.Song, error) {
	return s.db.ListSongs()
}

// Song returns one catalog entry by its persisted identifier.
func (s *LibraryService) Song(id int64) (*domain.Song, error) {
	song, err := s.db.GetSongByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("song %d: %w", id, store.ErrNotFound)
		}
		return nil, err
	}
	s.log.WithSong(song.ID, song.Title).Debug("song loaded")
	return song, nil
}

// SyncResult reports what a metadata sync changed.
type SyncResult struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Songs   int `json:"songs"`
}

// Sync reconciles the metadata table with the media directory, then
// refreshes the catalog from the result.
func (s *LibraryService) Sync() (*SyncResult, error) {
	added, removed, err := s.reconciler.Sync()
	if err != nil {
		return nil, fmt.Errorf("failed to sync metadata table: %w", err)
	}

	songs, err := s.Refresh()
	if err != nil {
		return nil, err
	}

	return &SyncResult{Added: added, Removed: removed, Songs: songs}, nil
}
