package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomotune/tomotune/internal/domain"
	"github.com/tomotune/tomotune/internal/logger"
	"github.com/tomotune/tomotune/internal/store"
	"github.com/tomotune/tomotune/internal/taste"
)

// TasteService runs the like flow: record the like and drift the
// user's profile, atomically, at a fixed learning rate.
type TasteService struct {
	db    *store.DB
	alpha float64
	log   *logger.Logger
}

func NewTasteService(db *store.DB, alpha float64, log *logger.Logger) *TasteService {
	return &TasteService{
		db:    db,
		alpha: alpha,
		log:   log.WithComponent("taste_service"),
	}
}

// Login returns the user with the given name, registering them with a
// neutral profile on first login.
func (s *TasteService) Login(name string) (*domain.User, error) {
	user, err := s.db.GetUserByName(name)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user %q: %w", name, err)
	}

	user, err = s.db.CreateUser(name)
	if err != nil {
		return nil, err
	}
	s.log.WithUser(user.ID, user.Name).Info("registered new user")
	return user, nil
}

// Like records a like for the song and returns the user's updated
// profile together with their like count for the song.
func (s *TasteService) Like(userID string, songID int64) (*domain.User, int, error) {
	user, err := s.db.ApplyLike(userID, songID, s.alpha)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.db.CountLikes(userID, songID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count likes: %w", err)
	}

	s.log.WithUser(user.ID, user.Name).Debug("like applied",
		"song_id", songID, "code", user.MusicTypeCode)
	return user, count, nil
}

// Recompute replays the user's like log from the neutral profile.
func (s *TasteService) Recompute(userID string) (*domain.User, error) {
	return s.db.RecomputeTaste(userID, s.alpha)
}

// Rediagnose overwrites the user's profile with an explicitly supplied
// vector.
func (s *TasteService) Rediagnose(userID string, v taste.Vector) (*domain.User, error) {
	return s.db.Rediagnose(userID, v)
}

// Profile returns a user by ID.
func (s *TasteService) Profile(userID string) (*domain.User, error) {
	user, err := s.db.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
