// ABOUTME: Walks a Clone Hero library and produces normalized song records
// ABOUTME: Combines ini metadata, chart heuristics, audio tags and the cache

// Package scanner discovers Clone Hero songs under a library root, reads
// their metadata and produces the normalized records the allocator consumes.
// Results are cached in SQLite so unchanged songs cost one stat call on
// subsequent scans.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/dhowden/tag"

	"careergen/pool"
	"careergen/song"
)

// Progress reports how far a scan has advanced
type Progress struct {
	Processed   int
	Total       int
	CurrentPath string
}

// Scanner walks song libraries. Both fields are optional: without a Cache
// every song is parsed fresh, without a Progress callback the scan is silent.
type Scanner struct {
	Cache    *Cache
	Progress func(Progress)
}

// Scan walks root and returns every playable song found, deduplicated by
// chart hash. Songs without a guitar part or a positive guitar difficulty
// are dropped. Folders are parsed in parallel, but IDs are assigned
// sequentially in discovery order so results stay deterministic.
func (sc *Scanner) Scan(ctx context.Context, root string) ([]song.Song, error) {
	dirs, err := sc.findSongDirs(root)
	if err != nil {
		return nil, err
	}

	type scanResult struct {
		song song.Song
		ok   bool
	}

	wp := pool.New[scanResult](ctx, len(dirs))
	defer wp.Close()

	var mu sync.Mutex
	done := 0

	for i, iniPath := range dirs {
		wp.Submit(i, func() scanResult {
			s, ok := sc.loadSong(iniPath)

			mu.Lock()
			done++
			sc.report(Progress{Processed: done, Total: len(dirs), CurrentPath: iniPath})
			mu.Unlock()

			return scanResult{song: s, ok: ok}
		})
	}

	loaded := wp.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []song.Song
	seenMD5 := make(map[string]bool)

	for _, r := range loaded {
		if !r.ok {
			continue
		}

		s := r.song
		if s.ChartMD5 != "" && seenMD5[s.ChartMD5] {
			continue
		}

		s.ID = len(results) + 1
		results = append(results, s)
		if s.ChartMD5 != "" {
			seenMD5[s.ChartMD5] = true
		}
	}

	sc.report(Progress{Processed: len(dirs), Total: len(dirs)})

	return results, nil
}

func (sc *Scanner) report(p Progress) {
	if sc.Progress != nil {
		sc.Progress(p)
	}
}

// findSongDirs returns the song.ini path of every song folder under root
func (sc *Scanner) findSongDirs(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if strings.EqualFold(d.Name(), "song.ini") {
			dirs = append(dirs, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk library: %w", err)
	}

	return dirs, nil
}

// loadSong produces a song record for one song.ini, from the cache when the
// file is unchanged, otherwise by parsing the folder's contents
func (sc *Scanner) loadSong(iniPath string) (song.Song, bool) {
	info, err := os.Stat(iniPath)
	if err != nil {
		return song.Song{}, false
	}
	mtime := info.ModTime().Unix()

	if sc.Cache != nil {
		if s, ok, err := sc.Cache.Lookup(iniPath, mtime); err == nil && ok {
			return s, s.DiffGuitar >= 1
		}
	}

	s, ok := sc.parseSong(iniPath)
	if !ok {
		return song.Song{}, false
	}

	if sc.Cache != nil {
		// Cache failures never fail the scan
		_ = sc.Cache.Store(s, mtime)
	}

	return s, true
}

func (sc *Scanner) parseSong(iniPath string) (song.Song, bool) {
	data, err := readSongINI(iniPath)
	if err != nil || len(data) == 0 {
		return song.Song{}, false
	}

	songDir := filepath.Dir(iniPath)

	s := song.Song{
		Path:    iniPath,
		Name:    data["name"],
		Artist:  data["artist"],
		Charter: data["charter"],
		Genre:   data["genre"],
	}
	if s.Name == "" {
		s.Name = filepath.Base(songDir)
	}

	s.LengthMS = parseLengthMS(data["song_length"])
	s.DiffGuitar = parseDiff(data["diff_guitar"])

	if s.DiffGuitar <= 0 {
		return song.Song{}, false
	}

	chart := findChartFile(songDir)
	if !hasGuitarPart(chart) {
		return song.Song{}, false
	}
	s.ChartPath = chart

	md5, err := md5File(chart)
	if err != nil {
		return song.Song{}, false
	}
	s.ChartMD5 = md5

	nps := chartNPS(chart)
	s.NPSAvg = nps.avg
	s.NPSPeak = nps.peak

	if s.Genre == "" {
		s.Genre = audioTagGenre(songDir)
	}

	s.IsVeryLong = s.LengthMS >= song.VeryLongThresholdMS
	s.Normalize()

	return s, true
}

// parseLengthMS reads the song_length field, which some charters write as a
// float. Unparseable or missing lengths are zero, never an error.
func parseLengthMS(raw string) int64 {
	if raw == "" {
		return 0
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f <= 0 {
		return 0
	}

	return int64(f)
}

func parseDiff(raw string) int {
	d, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}

	return d
}

// audioFileNames are the stem audio files conventionally found in song
// folders, tried in order for tag fallback
var audioFileNames = []string{"song.ogg", "song.mp3", "song.opus", "guitar.ogg", "guitar.mp3"}

// audioTagGenre reads the genre from the folder's audio file tags when the
// song.ini omits it. Best effort: any failure just means no genre.
func audioTagGenre(songDir string) string {
	for _, name := range audioFileNames {
		f, err := os.Open(filepath.Join(songDir, name))
		if err != nil {
			continue
		}

		meta, err := tag.ReadFrom(f)
		f.Close()
		if err != nil {
			continue
		}

		if genre := strings.TrimSpace(meta.Genre()); genre != "" {
			return genre
		}
	}

	return ""
}
