package domain

import (
	"encoding/json"
	"testing"
)

func TestFeatureVector_RoundTrip(t *testing.T) {
	original := FeatureVector{
		Acousticness:     0.834,
		Danceability:     0.51,
		Energy:           0.27,
		Instrumentalness: 0.901,
		Liveness:         0.11,
		Loudness:         -7.53,
		Speechiness:      0.043,
		Valence:          0.62,
		Tempo:            128.02,
		Key:              5,
		Mode:             1,
		TimeSignature:    3,
	}

	// Through the JSON surface.
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded FeatureVector
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != original {
		t.Errorf("JSON round-trip changed the vector:\n%+v\n%+v", decoded, original)
	}

	// Through the database surface.
	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	var scanned FeatureVector
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if scanned != original {
		t.Errorf("Value/Scan round-trip changed the vector:\n%+v\n%+v", scanned, original)
	}
}

func TestFeatureVector_ScanNil(t *testing.T) {
	var fv FeatureVector
	if err := fv.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if fv != (FeatureVector{}) {
		t.Errorf("Scan(nil) mutated the vector: %+v", fv)
	}
}

func TestFeatureVector_ScanString(t *testing.T) {
	var fv FeatureVector
	if err := fv.Scan(`{"valence":0.9,"time_signature":4}`); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if fv.Valence != 0.9 || fv.TimeSignature != 4 {
		t.Errorf("Scan from string = %+v", fv)
	}
}

func TestFeatureVector_ScanInvalidType(t *testing.T) {
	var fv FeatureVector
	if err := fv.Scan(42); err == nil {
		t.Error("expected error scanning an int")
	}
}
