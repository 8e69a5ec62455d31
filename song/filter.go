// ABOUTME: Library filtering applied before allocation
// ABOUTME: Handles minimum difficulty, meme-genre exclusion and artist queries

package song

import "strings"

// MemeGenres are genre tags excluded when the "no meme songs" filter is on.
// Matched against the case-folded raw genre tag, not the classified family.
var MemeGenres = map[string]bool{
	"meme":             true,
	"memes":            true,
	"heavy memes":      true,
	"meme mashup":      true,
	"nu-disco meme":    true,
	"drum & bass meme": true,
}

// Filter selects the subset of the library eligible for tiering
type Filter struct {
	MinDifficulty int    // Songs below this effective difficulty are dropped
	ExcludeMemes  bool   // Drop songs whose genre tag is in MemeGenres
	LowerOfficial bool   // Apply the official-charter adjustment before the difficulty check
	ArtistQuery   string // When non-empty, keep only songs whose artist contains this (case-insensitive)
}

// Eligible returns the songs passing the filter, preserving input order
func (f Filter) Eligible(songs []Song) []Song {
	query := strings.ToLower(strings.TrimSpace(f.ArtistQuery))

	out := make([]Song, 0, len(songs))

	for i := range songs {
		s := &songs[i]

		if EffectiveDiff(s, f.LowerOfficial) < f.MinDifficulty {
			continue
		}

		if f.ExcludeMemes && MemeGenres[strings.ToLower(strings.TrimSpace(s.Genre))] {
			continue
		}

		if query != "" && !strings.Contains(strings.ToLower(s.Artist), query) {
			continue
		}

		out = append(out, *s)
	}

	return out
}
