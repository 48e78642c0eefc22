package tagging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/tomotune/tomotune/internal/constants"
)

func TestReadTimeSignature_UnsupportedExtension(t *testing.T) {
	if got := ReadTimeSignature("whatever.wav"); got != "4" {
		t.Errorf("ReadTimeSignature = %q, want fallback %q", got, "4")
	}
}

func TestReadTimeSignature_MissingFile(t *testing.T) {
	if got := ReadTimeSignature(filepath.Join(t.TempDir(), "nope.mp3")); got != "4" {
		t.Errorf("ReadTimeSignature = %q, want fallback %q", got, "4")
	}
}

func TestReadTimeSignature_GarbageFLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flac")
	if err := os.WriteFile(path, []byte("not a flac stream"), constants.FilePermissions); err != nil {
		t.Fatal(err)
	}
	if got := ReadTimeSignature(path); got != "4" {
		t.Errorf("ReadTimeSignature = %q, want fallback %q", got, "4")
	}
}

func TestReadTimeSignature_MP3TXXXFrame(t *testing.T) {
	path := writeTaggedMP3(t, "TIME_SIGNATURE", "3")
	if got := ReadTimeSignature(path); got != "3" {
		t.Errorf("ReadTimeSignature = %q, want %q", got, "3")
	}
}

func TestReadTimeSignature_MP3MalformedValue(t *testing.T) {
	path := writeTaggedMP3(t, "time_signature", "waltz")
	if got := ReadTimeSignature(path); got != "4" {
		t.Errorf("ReadTimeSignature = %q, want fallback %q", got, "4")
	}
}

func TestReadTimeSignature_MP3NoTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untagged.mp3")
	if err := os.WriteFile(path, []byte{0xFF, 0xFB, 0x90, 0x00}, constants.FilePermissions); err != nil {
		t.Fatal(err)
	}
	if got := ReadTimeSignature(path); got != "4" {
		t.Errorf("ReadTimeSignature = %q, want fallback %q", got, "4")
	}
}

// writeTaggedMP3 creates a minimal MP3 file carrying one TXXX frame.
func writeTaggedMP3(t *testing.T, description, value string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tagged.mp3")
	// id3v2.Open reads a full 10-byte tag header before deciding the
	// file has no tag, so the stub audio data must be at least that long.
	audio := []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if err := os.WriteFile(path, audio, constants.FilePermissions); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open failed: %v", err)
	}
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       value,
	})
	if err := tag.Save(); err != nil {
		t.Fatalf("tag.Save failed: %v", err)
	}
	if err := tag.Close(); err != nil {
		t.Fatalf("tag.Close failed: %v", err)
	}
	return path
}
