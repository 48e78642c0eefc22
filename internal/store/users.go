package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomotune/tomotune/internal/domain"
	"github.com/tomotune/tomotune/internal/taste"
)

// CreateUser registers a user with the neutral taste profile. The
// classification code stays empty until the first like event.
func (db *DB) CreateUser(name string) (*domain.User, error) {
	neutral := taste.Neutral()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		ScoreVC:   neutral.VC,
		ScoreMA:   neutral.MA,
		ScorePR:   neutral.PR,
		ScoreHS:   neutral.HS,
		CreatedAt: time.Now(),
	}

	_, err := db.Exec(`INSERT INTO users (id, name, score_vc, score_ma, score_pr, score_hs, music_type_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.ScoreVC, user.ScoreMA, user.ScorePR, user.ScoreHS, user.MusicTypeCode, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", name, err)
	}
	return user, nil
}

func (db *DB) GetUserByID(id string) (*domain.User, error) {
	var user domain.User
	if err := db.Get(&user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DB) GetUserByName(name string) (*domain.User, error) {
	var user domain.User
	if err := db.Get(&user, `SELECT * FROM users WHERE name = ?`, name); err != nil {
		return nil, err
	}
	return &user, nil
}

// Rediagnose replaces a user's full taste vector, the one sanctioned
// way to reset a profile. The classification code is rederived from
// the supplied vector.
func (db *DB) Rediagnose(userID string, v taste.Vector) (*domain.User, error) {
	code := taste.Classify(v)

	result, err := db.Exec(`UPDATE users SET score_vc = ?, score_ma = ?, score_pr = ?, score_hs = ?, music_type_code = ? WHERE id = ?`,
		v.VC, v.MA, v.PR, v.HS, code, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to rediagnose user %s: %w", userID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return db.GetUserByID(userID)
}
