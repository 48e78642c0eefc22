// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort         = "8000"
	DefaultDBPath       = "tomotune.db"
	DefaultMediaDir     = "static"
	DefaultTablePath    = "songs.csv"
	DefaultBaseURL      = "http://127.0.0.1:8000"
	DefaultLearningRate = 0.05
	ShutdownTimeout     = 5 * time.Second
)

// AxisMidpoint is the threshold each taste axis is compared against when
// deriving the 4-letter classification code.
const AxisMidpoint = 0.5

// MetadataColumns is the column order of the curated metadata table.
// It is the on-disk contract of the table and must not be reordered.
var MetadataColumns = []string{
	"filename", "title", "artist",
	"acousticness", "danceability", "energy", "instrumentalness",
	"liveness", "loudness", "speechiness", "valence",
	"tempo", "key", "mode", "time_signature",
}

// Placeholder defaults for a freshly discovered media file. Numeric
// columns are stored as text and parsed on load.
const (
	DefaultFeatureValue  = "0.0"
	DefaultLoudness      = "-60.0"
	DefaultTempo         = "120"
	DefaultKey           = "0"
	DefaultMode          = "1"
	DefaultTimeSignature = "4"
	UnknownArtist        = "Unknown Artist"
)

// File Extensions
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
)

// AudioExtensions lists the media suffixes the catalog scanner accepts.
var AudioExtensions = map[string]bool{
	ExtMP3:  true,
	ExtFLAC: true,
}

// Filesystem permissions
const (
	FilePermissions = 0644
	DirPermissions  = 0755
)
