// ABOUTME: Defines the Song record shared by the scanner, allocator and exporter
// ABOUTME: Provides color-tag stripping and normalized metadata accessors

// Package song defines the normalized song record used across the toolchain
// and the challenge-score formulas that grade it.
package song

import (
	"fmt"
	"regexp"
	"strings"
)

// colorTagRe matches Clone Hero-style <color=...> markup in metadata fields
var colorTagRe = regexp.MustCompile(`(?i)</?color\b[^>]*>`)

// VeryLongThresholdMS marks a track as "very long" (kept out of early tiers)
const VeryLongThresholdMS = 7 * 60 * 1000

// Song is a normalized, read-only snapshot of one library entry.
// The allocator never mutates a Song; identity is the ID assigned at load
// time, never structural equality.
type Song struct {
	ID        int     // Assigned sequentially when the library is loaded
	Path      string  // Absolute path to the song.ini that produced this record
	Name      string  // Track title (color tags stripped)
	Artist    string  // Artist name, may be empty
	Charter   string  // Chart author, used for official-chart detection
	Genre     string  // Raw genre tag from metadata, may be empty
	LengthMS  int64   // Track length in milliseconds, 0 if unknown
	DiffGuitar int    // Guitar difficulty 1-9 (records with <=0 are excluded upstream)
	IsVeryLong bool   // LengthMS >= VeryLongThresholdMS
	ChartPath string  // Path to the chart file, may be empty
	ChartMD5  string  // Uppercase hex MD5 of the chart file; required for export
	NPSAvg    float64 // Average notes per second, 0 if not computed
	NPSPeak   float64 // Peak notes per second over a one-second window
	Score     float64 // Challenge score, see DifficultyScore
}

// StripColorTags removes Clone Hero <color=...> markup from a metadata field
func StripColorTags(text string) string {
	if text == "" {
		return ""
	}

	return strings.TrimSpace(colorTagRe.ReplaceAllString(text, ""))
}

// Normalize strips color tags from every free-text field in place.
// Called once by the scanner so downstream code can treat fields as clean.
func (s *Song) Normalize() {
	s.Name = StripColorTags(s.Name)
	s.Artist = StripColorTags(s.Artist)
	s.Charter = StripColorTags(s.Charter)
	s.Genre = StripColorTags(s.Genre)
}

// ArtistKey returns the case-folded artist name used for per-tier diversity
// limiting. Empty artists are never counted against the cap.
func (s *Song) ArtistKey() string {
	return strings.ToLower(strings.TrimSpace(s.Artist))
}

// SortName returns the case-folded title used as a stable tie-break key
func (s *Song) SortName() string {
	return strings.ToLower(s.Name)
}

// String returns a formatted one-line representation of the song
func (s *Song) String() string {
	return fmt.Sprintf("%-30s - %-20s diff: %d score: %.1f", s.Name, s.Artist, s.DiffGuitar, s.Score)
}
