// ABOUTME: Final tier ordering by robust score statistics
// ABOUTME: Sorts tiers ascending so the output reads easiest to hardest

package tiering

import (
	"math"
	"slices"

	"careergen/song"
)

// tierKey is the ordering tuple for one tier
type tierKey struct {
	min, mean, max float64
	index          int // Allocation index, stable tie-break
}

// SortTiers re-sorts tiers into ascending difficulty order by
// (min score, mean score, max score, allocation index). Empty tiers compare
// as +Inf on all score components and therefore sort last, keeping their
// relative order via the index. The result is independent of the internal
// allocation order, which matters for the genre-aware allocator because it
// assigns tiers to families in shuffled order.
func SortTiers(tiers [][]song.Song) [][]song.Song {
	keys := make([]tierKey, len(tiers))
	for i, tier := range tiers {
		keys[i] = keyFor(tier, i)
	}

	order := make([]int, len(tiers))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return compareKeys(keys[a], keys[b])
	})

	out := make([][]song.Song, len(tiers))
	for i, idx := range order {
		out[i] = tiers[idx]
	}

	return out
}

func keyFor(tier []song.Song, index int) tierKey {
	if len(tier) == 0 {
		return tierKey{
			min:   math.Inf(1),
			mean:  math.Inf(1),
			max:   math.Inf(1),
			index: index,
		}
	}

	minScore := tier[0].Score
	maxScore := tier[0].Score
	sum := 0.0

	for i := range tier {
		s := tier[i].Score
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
		sum += s
	}

	return tierKey{
		min:   minScore,
		mean:  sum / float64(len(tier)),
		max:   maxScore,
		index: index,
	}
}

func compareKeys(a, b tierKey) int {
	if c := compareFloat(a.min, b.min); c != 0 {
		return c
	}
	if c := compareFloat(a.mean, b.mean); c != 0 {
		return c
	}
	if c := compareFloat(a.max, b.max); c != 0 {
		return c
	}

	return a.index - b.index
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
