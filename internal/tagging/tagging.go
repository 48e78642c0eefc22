// Package tagging reads embedded metadata tags from audio files.
package tagging

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/tomotune/tomotune/internal/constants"
)

// ReadTimeSignature extracts a time-signature tag from the file at
// path. Players rarely write one, so this is best effort: any missing
// tag, unreadable file or malformed value falls back to the
// conventional "4".
func ReadTimeSignature(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtMP3:
		return mp3TimeSignature(path)
	case constants.ExtFLAC:
		return flacTimeSignature(path)
	}
	return constants.DefaultTimeSignature
}

// mp3TimeSignature looks for a TXXX frame whose description mentions a
// time signature.
func mp3TimeSignature(path string) string {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return constants.DefaultTimeSignature
	}
	defer tag.Close()

	frames := tag.GetFrames(tag.CommonID("User defined text information frame"))
	for _, frame := range frames {
		udf, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		desc := strings.ToLower(udf.Description)
		if !strings.Contains(desc, "time_signature") && !strings.Contains(desc, "timesignature") {
			continue
		}
		if ts, ok := parseTimeSignature(udf.Value); ok {
			return ts
		}
	}

	return constants.DefaultTimeSignature
}

// flacTimeSignature looks for a TIME_SIGNATURE Vorbis comment.
func flacTimeSignature(path string) string {
	f, err := flac.ParseFile(path)
	if err != nil {
		return constants.DefaultTimeSignature
	}

	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			continue
		}
		values, err := cmt.Get("TIME_SIGNATURE")
		if err != nil || len(values) == 0 {
			continue
		}
		if ts, ok := parseTimeSignature(values[0]); ok {
			return ts
		}
	}

	return constants.DefaultTimeSignature
}

// parseTimeSignature coerces a raw tag value into a small positive
// integer rendered as a string.
func parseTimeSignature(raw string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 16 {
		return "", false
	}
	return strconv.Itoa(n), true
}
