package assemble

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
)

// lineLength is the maximum base64 line width RFC 2045 allows for
// content-transfer-encoding payloads.
const lineLength = 76

// ErrFileUnreadable reports an attachment or embedded-file path that does
// not exist or cannot be opened.
var ErrFileUnreadable = errors.New("file unreadable")

// encodeFile reads a file's raw bytes and returns its base64 body as
// wrapped lines.
func encodeFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	return encodeLines(data), nil
}

// encodeLines base64-encodes data and splits the result into lines of at
// most lineLength characters. Empty input yields no lines.
func encodeLines(data []byte) []string {
	enc := base64.StdEncoding.EncodeToString(data)
	lines := make([]string, 0, len(enc)/lineLength+1)
	for len(enc) > lineLength {
		lines = append(lines, enc[:lineLength])
		enc = enc[lineLength:]
	}
	if len(enc) > 0 {
		lines = append(lines, enc)
	}
	return lines
}
