// ABOUTME: Standard quantile-bucket allocator without genre constraints
// ABOUTME: Samples each score bucket under artist and length rules, widening on shortfall

package tiering

import (
	"math/rand/v2"
	"slices"

	"careergen/song"
)

// standardTier performs stratified tiering with randomness inside difficulty
// quantiles. Tier ti draws from the ti-th quantile bucket of the score-sorted
// library; when a bucket cannot supply enough songs under the constraints,
// the candidate window widens symmetrically one index at a time until the
// tier fills or the whole library is in view.
func standardTier(songs []song.Song, opts Options, rnd *rand.Rand) [][]song.Song {
	tiers := make([][]song.Song, opts.NTiers)

	n := len(songs)
	if n == 0 {
		for i := range tiers {
			tiers[i] = []song.Song{}
		}

		return tiers
	}

	sorted := slices.Clone(songs)
	slices.SortStableFunc(sorted, func(a, b song.Song) int {
		return compareFloat(a.Score, b.Score)
	})

	picked := make(map[int]bool) // Song IDs taken by any tier

	for ti := 0; ti < opts.NTiers; ti++ {
		lo := ti * n / opts.NTiers
		hi := (ti + 1) * n / opts.NTiers

		bucket := slices.Clone(sorted[lo:hi])

		sel := newSelection(ti, opts, picked)
		sel.take(bucket, opts.SongsPerTier, rnd)

		// Widen symmetrically around [lo,hi) until full or exhausted
		for expand := 1; len(sel.picks) < opts.SongsPerTier && (lo-expand >= 0 || hi+expand <= n); expand++ {
			leftLo := max(0, lo-expand)
			rightHi := min(n, hi+expand)

			extra := make([]song.Song, 0, (lo-leftLo)+(rightHi-hi))
			extra = append(extra, sorted[leftLo:lo]...)
			extra = append(extra, sorted[hi:rightHi]...)

			sel.take(extra, opts.SongsPerTier, rnd)
		}

		tier := sel.picks
		if len(tier) > opts.SongsPerTier {
			tier = tier[:opts.SongsPerTier]
		}
		sortTierSongs(tier)

		tiers[ti] = tier
	}

	return tiers
}

// selection accumulates constrained picks for one tier. The picked set is
// shared across tiers so no song lands in two tiers; artist counts reset
// per tier.
type selection struct {
	tierIndex    int
	opts         Options
	picks        []song.Song
	picked       map[int]bool   // Shared: Song IDs taken by any tier
	artistCounts map[string]int // Case-folded artist -> picks this tier
}

func newSelection(tierIndex int, opts Options, picked map[int]bool) *selection {
	return &selection{
		tierIndex:    tierIndex,
		opts:         opts,
		picked:       picked,
		artistCounts: make(map[string]int),
	}
}

// take shuffles the pool and greedily accepts songs until k picks are held
// or the pool runs out. Constraints: no song twice, very long tracks stay
// out of tiers 0 and 1 when the rule is on, and no artist exceeds the cap.
func (sel *selection) take(pool []song.Song, k int, rnd *rand.Rand) {
	rnd.Shuffle(len(pool), func(a, b int) {
		pool[a], pool[b] = pool[b], pool[a]
	})

	for i := range pool {
		if len(sel.picks) >= k {
			break
		}

		s := pool[i]

		if sel.picked[s.ID] {
			continue
		}

		if sel.opts.KeepVeryLongOutOfFirstTwo && sel.tierIndex < 2 && s.IsVeryLong {
			continue
		}

		artist := s.ArtistKey()
		if sel.opts.MaxTracksPerArtist > 0 && artist != "" &&
			sel.artistCounts[artist] >= sel.opts.MaxTracksPerArtist {
			continue
		}

		sel.picks = append(sel.picks, s)
		sel.picked[s.ID] = true
		if artist != "" {
			sel.artistCounts[artist]++
		}
	}
}

// sortTierSongs orders a finished tier by (score, case-folded name) for
// stable display
func sortTierSongs(tier []song.Song) {
	slices.SortStableFunc(tier, func(a, b song.Song) int {
		if c := compareFloat(a.Score, b.Score); c != 0 {
			return c
		}

		an, bn := a.SortName(), b.SortName()
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	})
}
