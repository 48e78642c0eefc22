package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tomotune/tomotune/internal/domain"
	"github.com/tomotune/tomotune/internal/taste"
)

// ApplyLike records one like event and moves the user's taste profile
// in the same transaction, an atomic read-modify-write: concurrent
// likes for the same user cannot both read the same current vector,
// and a score update can never exist without its like row. A missing
// user or song is a caller bug and is surfaced as an error.
func (db *DB) ApplyLike(userID string, songID int64, alpha float64) (*domain.User, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin like transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var user domain.User
	if err := tx.Get(&user, `SELECT * FROM users WHERE id = ?`, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	song, err := scanSong(tx.QueryRow(`SELECT `+songColumns+` FROM songs WHERE id = ?`, songID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("song %d: %w", songID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load song %d: %w", songID, err)
	}

	// Record the like first; the score update rides the same commit.
	if _, err := tx.Exec(`INSERT INTO like_logs (user_id, song_id, created_at) VALUES (?, ?, ?)`,
		userID, songID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}

	current := taste.Vector{VC: user.ScoreVC, MA: user.ScoreMA, PR: user.ScorePR, HS: user.ScoreHS}
	updated := taste.Update(current, song.Features, alpha)
	code := taste.Classify(updated)

	if _, err := tx.Exec(`UPDATE users SET score_vc = ?, score_ma = ?, score_pr = ?, score_hs = ?, music_type_code = ? WHERE id = ?`,
		updated.VC, updated.MA, updated.PR, updated.HS, code, userID); err != nil {
		return nil, fmt.Errorf("failed to update taste profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit like transaction: %w", err)
	}

	user.ScoreVC = updated.VC
	user.ScoreMA = updated.MA
	user.ScorePR = updated.PR
	user.ScoreHS = updated.HS
	user.MusicTypeCode = code
	return &user, nil
}

// CountLikes returns how many times a user has liked a song.
func (db *DB) CountLikes(userID string, songID int64) (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM like_logs WHERE user_id = ? AND song_id = ?`, userID, songID)
	return count, err
}

// RecomputeTaste replays a user's like log from the neutral profile,
// the recovery path for a recorded like whose score update was lost.
// Likes are replayed in recorded order; songs deleted since a like was
// recorded replay as nil feature vectors.
func (db *DB) RecomputeTaste(userID string, alpha float64) (*domain.User, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin recompute transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var user domain.User
	if err := tx.Get(&user, `SELECT * FROM users WHERE id = ?`, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	rows, err := tx.Query(`SELECT s.parameters FROM like_logs l
		LEFT JOIN songs s ON s.id = l.song_id
		WHERE l.user_id = ? ORDER BY l.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load like log: %w", err)
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	v := taste.Neutral()
	likes := 0
	for rows.Next() {
		var params []byte
		if err := rows.Scan(&params); err != nil {
			return nil, fmt.Errorf("failed to scan like log row: %w", err)
		}
		var features *domain.FeatureVector
		if len(params) > 0 {
			var fv domain.FeatureVector
			if err := fv.Scan(params); err != nil {
				return nil, fmt.Errorf("failed to decode features: %w", err)
			}
			features = &fv
		}
		v = taste.Update(v, features, alpha)
		likes++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate like log: %w", err)
	}

	code := ""
	if likes > 0 {
		code = taste.Classify(v)
	}

	if _, err := tx.Exec(`UPDATE users SET score_vc = ?, score_ma = ?, score_pr = ?, score_hs = ?, music_type_code = ? WHERE id = ?`,
		v.VC, v.MA, v.PR, v.HS, code, userID); err != nil {
		return nil, fmt.Errorf("failed to store recomputed profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recompute transaction: %w", err)
	}

	user.ScoreVC = v.VC
	user.ScoreMA = v.MA
	user.ScorePR = v.PR
	user.ScoreHS = v.HS
	user.MusicTypeCode = code
	return &user, nil
}
