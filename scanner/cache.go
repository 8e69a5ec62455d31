// ABOUTME: SQLite-backed scan cache keyed by song.ini path and mtime
// ABOUTME: Skips re-hashing and re-parsing unchanged songs between scans

package scanner

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"careergen/song"
)

const cacheFileName = "careergen/songs.db"

// Cache persists scanned song metadata between runs. Entries are keyed by
// the song.ini path; an entry is valid only while the file's mtime matches.
type Cache struct {
	db *sql.DB
}

// DefaultCachePath returns the per-user cache database location
func DefaultCachePath() (string, error) {
	path, err := xdg.CacheFile(cacheFileName)
	if err != nil {
		return "", fmt.Errorf("resolve cache path: %w", err)
	}

	return path, nil
}

// OpenCache opens or creates the scan cache at the given path
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()

		return nil, err
	}

	return &Cache{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			path TEXT PRIMARY KEY,
			mtime INTEGER NOT NULL,
			name TEXT NOT NULL,
			artist TEXT,
			charter TEXT,
			genre TEXT,
			length_ms INTEGER,
			diff_guitar INTEGER,
			chart_path TEXT,
			chart_md5 TEXT,
			nps_avg REAL,
			nps_peak REAL
		);
	`)
	if err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}

	return nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached record for a song.ini, valid only when the
// stored mtime matches the file's current one
func (c *Cache) Lookup(path string, mtime int64) (song.Song, bool, error) {
	var s song.Song
	var storedMtime int64

	row := c.db.QueryRow(`
		SELECT mtime, name, artist, charter, genre, length_ms, diff_guitar,
		       chart_path, chart_md5, nps_avg, nps_peak
		FROM songs WHERE path = ?`, path)

	err := row.Scan(&storedMtime, &s.Name, &s.Artist, &s.Charter, &s.Genre,
		&s.LengthMS, &s.DiffGuitar, &s.ChartPath, &s.ChartMD5,
		&s.NPSAvg, &s.NPSPeak)
	if err == sql.ErrNoRows {
		return song.Song{}, false, nil
	}
	if err != nil {
		return song.Song{}, false, fmt.Errorf("cache lookup: %w", err)
	}

	if storedMtime != mtime {
		return song.Song{}, false, nil
	}

	s.Path = path
	s.IsVeryLong = s.LengthMS >= song.VeryLongThresholdMS

	return s, true, nil
}

// Store saves or replaces the cached record for a song.ini
func (c *Cache) Store(s song.Song, mtime int64) error {
	_, err := c.db.Exec(`
		REPLACE INTO songs
			(path, mtime, name, artist, charter, genre, length_ms,
			 diff_guitar, chart_path, chart_md5, nps_avg, nps_peak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Path, mtime, s.Name, s.Artist, s.Charter, s.Genre, s.LengthMS,
		s.DiffGuitar, s.ChartPath, s.ChartMD5, s.NPSAvg, s.NPSPeak)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}

	return nil
}
