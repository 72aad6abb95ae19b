package assemble

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeFileRoundTrip(t *testing.T) {
	// 257 bytes so the base64 output spans several lines and doesn't end
	// on a line border.
	content := make([]byte, 257)
	for i := range content {
		content[i] = byte(i % 251)
	}
	path := filepath.Join(t.TempDir(), "blob.bin")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	lines, err := encodeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.Join(lines, ""))
	if err != nil {
		t.Fatalf("encoded body is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, content) {
		t.Error("decoding the encoded body did not reproduce the original bytes")
	}
}

func TestEncodeFileLineLength(t *testing.T) {
	content := make([]byte, 4000)
	path := filepath.Join(t.TempDir(), "blob.bin")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	lines, err := encodeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("expected at least one encoded line")
	}
	for i, l := range lines {
		if len(l) > lineLength {
			t.Errorf("line %v is %v characters, over the %v limit", i, len(l), lineLength)
		}
	}
	// Every line except the last must be exactly full.
	for i, l := range lines[:len(lines)-1] {
		if len(l) != lineLength {
			t.Errorf("non-final line %v is %v characters, wanted %v", i, len(l), lineLength)
		}
	}
}

func TestEncodeFileMissing(t *testing.T) {
	_, err := encodeFile(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	if !errors.Is(err, ErrFileUnreadable) {
		t.Errorf("expected ErrFileUnreadable, got %v", err)
	}
}

func TestEncodeLinesEmptyInput(t *testing.T) {
	if lines := encodeLines(nil); len(lines) != 0 {
		t.Errorf("expected no lines for empty input, got %v", lines)
	}
}
