package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/library"
	"github.com/tomotune/tomotune/internal/logger"
	"github.com/tomotune/tomotune/internal/store"
)

func setupServices(t *testing.T) (*LibraryService, *TasteService, string) {
	t.Helper()

	dir := t.TempDir()
	mediaDir := filepath.Join(dir, "static")
	if err := os.Mkdir(mediaDir, constants.DirPermissions); err != nil {
		t.Fatal(err)
	}
	tablePath := filepath.Join(dir, "songs.csv")

	db, err := store.NewSQLiteDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	})

	log := logger.Default()
	reconciler := library.New(mediaDir, tablePath, "http://127.0.0.1:8000", log)
	return NewLibraryService(reconciler, db, log), NewTasteService(db, 0.05, log), mediaDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), constants.FilePermissions); err != nil {
		t.Fatal(err)
	}
}

func TestLibraryService_SyncAndRefresh(t *testing.T) {
	libSvc, _, mediaDir := setupServices(t)

	writeFile(t, filepath.Join(mediaDir, "first_song.mp3"), "audio")
	writeFile(t, filepath.Join(mediaDir, "second_song.mp3"), "audio")

	result, err := libSvc.Sync()
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.Added != 2 || result.Removed != 0 || result.Songs != 2 {
		t.Errorf("Sync result = %+v, want 2 added, 0 removed, 2 songs", result)
	}

	songs, err := libSvc.Songs()
	if err != nil {
		t.Fatalf("Songs failed: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if songs[0].Title != "first song" {
		t.Errorf("songs[0].Title = %q, want %q", songs[0].Title, "first song")
	}

	// A file disappears; the next sync prunes its row but the song row
	// keeps its persisted identifier space intact.
	if err := os.Remove(filepath.Join(mediaDir, "second_song.mp3")); err != nil {
		t.Fatal(err)
	}
	result, err = libSvc.Sync()
	if err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
}

func TestTasteService_LikeFlow(t *testing.T) {
	libSvc, tasteSvc, mediaDir := setupServices(t)

	writeFile(t, filepath.Join(mediaDir, "song.mp3"), "audio")
	if _, err := libSvc.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	songs, err := libSvc.Songs()
	if err != nil || len(songs) != 1 {
		t.Fatalf("Songs() = %v, %v", songs, err)
	}

	user, err := tasteSvc.Login("tomo")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ScoreVC != 0.5 {
		t.Errorf("new user ScoreVC = %g, want 0.5", user.ScoreVC)
	}

	// Logging in again returns the same user.
	again, err := tasteSvc.Login("tomo")
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("Login created a duplicate user: %s vs %s", again.ID, user.ID)
	}

	// The placeholder row parses to an all-defaults vector, so the like
	// drags every axis toward 0.
	updated, count, err := tasteSvc.Like(user.ID, songs[0].ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if count != 1 {
		t.Errorf("like count = %d, want 1", count)
	}
	if updated.MusicTypeCode != "CMRS" {
		t.Errorf("code = %q, want CMRS", updated.MusicTypeCode)
	}

	recomputed, err := tasteSvc.Recompute(user.ID)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if recomputed.MusicTypeCode != updated.MusicTypeCode {
		t.Errorf("recomputed code = %q, want %q", recomputed.MusicTypeCode, updated.MusicTypeCode)
	}

	if _, _, err := tasteSvc.Like("no-such-user", songs[0].ID); err == nil {
		t.Error("expected error liking as missing user")
	}
}
