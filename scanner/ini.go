// ABOUTME: Tolerant song.ini reader
// ABOUTME: Handles BOMs, latin-1 fallback and sloppy real-world formatting

package scanner

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// utf8BOM prefixes song.ini files written by some Windows tools
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readSongINI reads the [song] (or [Song]) section of a song.ini into a map
// of lowercased keys. Charting tools produce wildly inconsistent files, so
// parsing is deliberately forgiving: unknown sections and malformed lines
// are skipped, "=" is the only delimiter, and no value interpolation is
// performed. Only unreadable files produce an error.
func readSongINI(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read song.ini: %w", err)
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)

	text := decodeTolerant(raw)

	data := make(map[string]string)
	inSongSection := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section := strings.TrimSpace(line[1 : len(line)-1])
			inSongSection = strings.EqualFold(section, "song")

			continue
		}

		if !inSongSection {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		data[key] = strings.TrimSpace(value)
	}

	return data, nil
}

// decodeTolerant returns the input as valid UTF-8, reinterpreting it as
// latin-1 when it is not. Old charts predate the UTF-8 convention.
func decodeTolerant(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}

	return string(runes)
}
