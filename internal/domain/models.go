package domain

import (
	"time"
)

// Song is one entry of the catalog. URL may be empty, meaning the song
// has no playable audio. Features is nil until curated metadata for the
// underlying file exists; nil is distinct from an all-zero vector.
type Song struct {
	ID        int64          `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"`
	Artist    string         `json:"artist" db:"artist"`
	URL       string         `json:"url" db:"url"`
	Features  *FeatureVector `json:"features,omitempty" db:"-"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// MetadataRow is one row of the curated metadata table, keyed by media
// filename. Numeric columns are kept as raw strings; they are parsed
// into a FeatureVector on load so that hand-edited values survive a
// write-back byte for byte.
type MetadataRow struct {
	Filename         string
	Title            string
	Artist           string
	Acousticness     string
	Danceability     string
	Energy           string
	Instrumentalness string
	Liveness         string
	Loudness         string
	Speechiness      string
	Valence          string
	Tempo            string
	Key              string
	Mode             string
	TimeSignature    string
}

// User is a registered listener together with their taste profile.
// Axis scores start at the neutral 0.5 and drift with every like.
type User struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	ScoreVC       float64   `json:"score_vc" db:"score_vc"`
	ScoreMA       float64   `json:"score_ma" db:"score_ma"`
	ScorePR       float64   `json:"score_pr" db:"score_pr"`
	ScoreHS       float64   `json:"score_hs" db:"score_hs"`
	MusicTypeCode string    `json:"music_type_code" db:"music_type_code"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// LikeLog records one like event. The taste profile update for a like
// is applied in the same transaction that records it, so a score update
// without a like row can never be observed.
type LikeLog struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	SongID    int64     `json:"song_id" db:"song_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
