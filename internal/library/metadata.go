package library

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/domain"
)

// LoadMetadata parses the curated metadata table into a mapping from
// normalized filename to row. A missing or unreadable table is not an
// error: the catalog degrades to tag-derived entries and the condition
// is logged as a warning. A malformed row is skipped, never fatal.
func (r *Reconciler) LoadMetadata() map[string]domain.MetadataRow {
	rows := make(map[string]domain.MetadataRow)

	f, err := os.Open(r.TablePath)
	if err != nil {
		r.log.Warn("metadata table not readable, continuing without curated data",
			"path", r.TablePath, "error", err)
		return rows
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		r.log.Warn("metadata table has no header, continuing without curated data",
			"path", r.TablePath, "error", err)
		return rows
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			r.log.Warn("skipping malformed metadata row", "error", err)
			continue
		}

		row := rowFromRecord(record, index)
		if row.Filename == "" {
			r.log.Warn("skipping metadata row without filename")
			continue
		}
		rows[normalizeKey(row.Filename)] = row
	}

	return rows
}

// rowFromRecord maps a CSV record onto a MetadataRow using the header
// index. Absent columns yield empty fields, which parse to defaults.
func rowFromRecord(record []string, index map[string]int) domain.MetadataRow {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	return domain.MetadataRow{
		Filename:         field("filename"),
		Title:            field("title"),
		Artist:           field("artist"),
		Acousticness:     field("acousticness"),
		Danceability:     field("danceability"),
		Energy:           field("energy"),
		Instrumentalness: field("instrumentalness"),
		Liveness:         field("liveness"),
		Loudness:         field("loudness"),
		Speechiness:      field("speechiness"),
		Valence:          field("valence"),
		Tempo:            field("tempo"),
		Key:              field("key"),
		Mode:             field("mode"),
		TimeSignature:    field("time_signature"),
	}
}

// recordFromRow serializes a MetadataRow in the fixed column order of
// constants.MetadataColumns.
func recordFromRow(row domain.MetadataRow) []string {
	return []string{
		row.Filename, row.Title, row.Artist,
		row.Acousticness, row.Danceability, row.Energy, row.Instrumentalness,
		row.Liveness, row.Loudness, row.Speechiness, row.Valence,
		row.Tempo, row.Key, row.Mode, row.TimeSignature,
	}
}

// featuresFromRow coerces the raw string fields of a row into a
// feature vector. Missing or unparsable values default to 0, except
// time_signature which defaults to the conventional 4.
func featuresFromRow(row domain.MetadataRow) *domain.FeatureVector {
	return &domain.FeatureVector{
		Acousticness:     parseFloat(row.Acousticness, 0),
		Danceability:     parseFloat(row.Danceability, 0),
		Energy:           parseFloat(row.Energy, 0),
		Instrumentalness: parseFloat(row.Instrumentalness, 0),
		Liveness:         parseFloat(row.Liveness, 0),
		Loudness:         parseFloat(row.Loudness, 0),
		Speechiness:      parseFloat(row.Speechiness, 0),
		Valence:          parseFloat(row.Valence, 0),
		Tempo:            parseFloat(row.Tempo, 0),
		Key:              parseInt(row.Key, 0),
		Mode:             parseInt(row.Mode, 0),
		TimeSignature:    parseInt(row.TimeSignature, 4),
	}
}

func parseFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func parseInt(s string, def int) int {
	trimmed := strings.TrimSpace(s)
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		// Curated sheets sometimes carry integers as "4.0".
		f, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return v
}

// placeholderRow builds the neutral-default row for a newly discovered
// media file. Feature values are deliberately inert placeholders to be
// completed by hand, never fabricated from audio analysis; only the
// time signature is probed from an embedded tag.
func placeholderRow(filename, timeSignature string) domain.MetadataRow {
	return domain.MetadataRow{
		Filename:         filename,
		Title:            deriveTitle(filename),
		Artist:           constants.UnknownArtist,
		Acousticness:     constants.DefaultFeatureValue,
		Danceability:     constants.DefaultFeatureValue,
		Energy:           constants.DefaultFeatureValue,
		Instrumentalness: constants.DefaultFeatureValue,
		Liveness:         constants.DefaultFeatureValue,
		Loudness:         constants.DefaultLoudness,
		Speechiness:      constants.DefaultFeatureValue,
		Valence:          constants.DefaultFeatureValue,
		Tempo:            constants.DefaultTempo,
		Key:              constants.DefaultKey,
		Mode:             constants.DefaultMode,
		TimeSignature:    timeSignature,
	}
}
