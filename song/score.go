// ABOUTME: Challenge-score formulas mapping difficulty and length to a scalar
// ABOUTME: Includes official-charter adjustment and optional NPS weighting

package song

import "strings"

// OfficialCharters are chart authors whose difficulty ratings run hot
// compared to community charts; the "lower official" option knocks their
// rating down one step.
var OfficialCharters = map[string]bool{
	"harmonix":  true,
	"neversoft": true,
}

// ScoreOptions selects the optional scoring adjustments.
// The zero value reproduces the plain base formula.
type ScoreOptions struct {
	LowerOfficial bool    // Lower official-charter difficulty by one (floor 1)
	WeightByNPS   bool    // Add note-density bonuses on top of the base score
	NPSAvgWeight  float64 // Bonus per average note-per-second
	NPSPeakWeight float64 // Bonus per peak note-per-second
}

// DifficultyScore maps a guitar difficulty (clamped to 0-9) and track length
// to a challenge score. Base is diff/9*100; known lengths add up to 10 points
// (2 points per minute past the second). Result range is roughly 0-110.
func DifficultyScore(diffGuitar int, lengthMS int64) float64 {
	d := diffGuitar
	if d < 0 {
		d = 0
	}
	if d > 9 {
		d = 9
	}
	base := float64(d) / 9.0 * 100.0

	if lengthMS <= 0 {
		return base
	}

	minutes := float64(lengthMS) / 60000.0
	boost := (minutes - 2.0) * 2.0
	if boost < 0 {
		boost = 0
	}
	if boost > 10 {
		boost = 10
	}

	return base + boost
}

// EffectiveDiff returns the difficulty with any official-charter adjustment
// applied. Unknown difficulty (<= 0) passes through unchanged.
func EffectiveDiff(s *Song, lowerOfficial bool) int {
	diff := s.DiffGuitar
	if diff <= 0 {
		return diff
	}

	if lowerOfficial && OfficialCharters[s.CharterKey()] {
		if diff > 1 {
			return diff - 1
		}

		return 1
	}

	return diff
}

// CharterKey returns the case-folded charter name for official-chart detection
func (s *Song) CharterKey() string {
	return strings.ToLower(strings.TrimSpace(s.Charter))
}

// EffectiveScore computes the challenge score with all requested adjustments.
// NPS bonuses are purely additive and never change the base formula.
func EffectiveScore(s *Song, opts ScoreOptions) float64 {
	score := DifficultyScore(EffectiveDiff(s, opts.LowerOfficial), s.LengthMS)

	if opts.WeightByNPS {
		score += s.NPSAvg*opts.NPSAvgWeight + s.NPSPeak*opts.NPSPeakWeight
	}

	return score
}
