// ABOUTME: Display formatting helpers for tier tables
// ABOUTME: Formats song lengths and per-tier score ranges for CLI output

package main

import (
	"fmt"

	"careergen/song"
)

// formatDuration renders a song length in milliseconds as m:ss.
// Unknown lengths (zero) render as a dash.
func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}

	totalSec := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSec/60, totalSec%60)
}

// formatScoreRange summarizes a tier's difficulty spread for its header line
func formatScoreRange(tier []song.Song) string {
	if len(tier) == 0 {
		return ""
	}

	lo, hi := tier[0].Score, tier[0].Score
	for _, s := range tier[1:] {
		if s.Score < lo {
			lo = s.Score
		}
		if s.Score > hi {
			hi = s.Score
		}
	}

	if hi-lo < 0.05 {
		return fmt.Sprintf("%.1f", lo)
	}

	return fmt.Sprintf("%.1f-%.1f", lo, hi)
}
