// Package library builds the song catalog from a directory of media
// files cross-referenced with a curated metadata table, and keeps the
// table itself in sync with the directory contents.
package library

import (
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/logger"
	"github.com/tomotune/tomotune/internal/tagging"
)

// Reconciler reconciles a media directory against the curated metadata
// table. It holds no catalog state of its own; callers own the catalog
// value it produces and refresh it explicitly.
type Reconciler struct {
	MediaDir  string
	TablePath string
	BaseURL   string

	// probe reads an embedded time-signature tag from a media file,
	// returning the conventional "4" when unavailable. Replaceable in
	// tests.
	probe func(path string) string

	log *logger.Logger
}

// New creates a Reconciler for the given media directory and table.
func New(mediaDir, tablePath, baseURL string, log *logger.Logger) *Reconciler {
	return &Reconciler{
		MediaDir:  mediaDir,
		TablePath: tablePath,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		probe:     tagging.ReadTimeSignature,
		log:       log.WithComponent("library"),
	}
}

// normalizeKey canonicalizes a filename before it is used as a join
// key, so visually identical names from different sources collide.
func normalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// deriveTitle turns a media filename into a display title: extension
// stripped, underscores replaced with spaces.
func deriveTitle(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(base, "_", " ")
}

// trackURL builds the playback locator for a media file.
func (r *Reconciler) trackURL(filename string) string {
	return r.BaseURL + "/static/" + url.PathEscape(filename)
}

// isAudioFile reports whether the filename carries a supported suffix.
func isAudioFile(filename string) bool {
	return constants.AudioExtensions[strings.ToLower(filepath.Ext(filename))]
}

// sortedCopy returns the filenames in lexicographic order without
// mutating the input.
func sortedCopy(files []string) []string {
	out := make([]string, len(files))
	copy(out, files)
	sort.Strings(out)
	return out
}
