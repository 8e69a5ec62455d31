// ABOUTME: Chart file discovery, guitar part detection and content hashing
// ABOUTME: Works on raw bytes so malformed charts never abort a scan

package scanner

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// chartPriority is the preferred chart file order within a song folder
var chartPriority = []string{"notes.chart", "notes.mid", "song.chart", "song.mid"}

// findChartFile returns the song folder's playable chart, preferring the
// conventional names before falling back to any .chart or .mid file found
// in a recursive walk. Empty string when the folder has no chart at all.
func findChartFile(songDir string) string {
	for _, name := range chartPriority {
		p := filepath.Join(songDir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	var found string
	_ = filepath.WalkDir(songDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".chart" || ext == ".mid" {
			found = path

			return filepath.SkipAll
		}

		return nil
	})

	return found
}

// chartSectionTokens mark 5-fret guitar tracks in .chart files
var chartSectionTokens = [][]byte{
	[]byte("[expertsingle]"),
	[]byte("[hardsingle]"),
	[]byte("[mediumsingle]"),
	[]byte("[easysingle]"),
}

// midiTrackTokens mark guitar tracks in .mid files
var midiTrackTokens = [][]byte{
	[]byte("part guitar"),
	[]byte("part guitar coop"),
	[]byte("part lead"),
	[]byte("part rhythm"),
}

// hasGuitarPart reports whether a chart file contains a 5-fret guitar part.
// This is a byte-level heuristic, not a full parse: it lowercases the file
// and looks for the known track markers, which is reliable in practice and
// orders of magnitude faster than parsing every chart in a large library.
func hasGuitarPart(chartPath string) bool {
	if chartPath == "" {
		return false
	}

	raw, err := os.ReadFile(chartPath)
	if err != nil {
		return false
	}

	lower := bytes.ToLower(raw)

	tokens := midiTrackTokens
	if strings.HasSuffix(strings.ToLower(chartPath), ".chart") {
		tokens = chartSectionTokens
	}

	for _, token := range tokens {
		if bytes.Contains(lower, token) {
			return true
		}
	}

	return false
}

// md5File returns the uppercase hex MD5 of a file's contents. The hash
// doubles as the chart's identity for deduplication and setlist export.
func md5File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash chart: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash chart: %w", err)
	}

	return strings.ToUpper(fmt.Sprintf("%x", h.Sum(nil))), nil
}
