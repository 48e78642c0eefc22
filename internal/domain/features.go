package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FeatureVector is a song's audio-descriptor set. Values are supplied
// by curated metadata, never computed from audio. Continuous fields are
// conventionally in [0,1] except Loudness (dB, typically negative).
type FeatureVector struct {
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	TimeSignature    int     `json:"time_signature"`
}

// Value serializes the vector for storage as an opaque blob.
func (f FeatureVector) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan deserializes a stored vector blob.
func (f *FeatureVector) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FeatureVector", value)
	}

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	return json.Unmarshal(data, f)
}
