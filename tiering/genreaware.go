// ABOUTME: Genre-aware tier allocator assigning each tier a dominant family
// ABOUTME: Fills tiers from family pools inside score bands with escalating relaxation

package tiering

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"careergen/genre"
	"careergen/song"
)

// scoreBand describes one quantile band of the score-sorted library.
// Tolerance grants narrow bands room to search beyond their literal edges.
type scoreBand struct {
	min       float64
	max       float64
	tolerance float64
}

func newScoreBand(songs []song.Song) scoreBand {
	b := scoreBand{
		min: songs[0].Score,
		max: songs[len(songs)-1].Score,
	}
	b.tolerance = math.Max(2.5, (b.max-b.min)*0.75)

	return b
}

// genreAwareTier partitions songs into tiers where each tier is dominated by
// one genre family. A family plan reserves one family per tier; filling then
// walks a relaxation ladder: primary family within the score window under
// the artist cap, other families by remaining slack, then the same two
// without the artist cap. Stalled rounds widen the window; a final sweep
// with a doubled window force-fills whatever is left.
func genreAwareTier(songs []song.Song, opts Options, rnd *rand.Rand) [][]song.Song {
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

	globalSpan := sorted[n-1].Score - sorted[0].Score
	whole := newScoreBand(sorted)

	bands := make([]scoreBand, opts.NTiers)
	for ti := 0; ti < opts.NTiers; ti++ {
		lo := ti * n / opts.NTiers
		hi := (ti + 1) * n / opts.NTiers
		if hi <= lo {
			// Library smaller than the tier count; fall back to the full span
			bands[ti] = whole
			continue
		}

		bands[ti] = newScoreBand(sorted[lo:hi])
	}

	pools := make(map[string][]song.Song)
	counts := make(map[string]int)
	for _, s := range sorted {
		fam := genre.Classify(s.Genre)
		pools[fam] = append(pools[fam], s)
		counts[fam]++
	}

	families := make([]string, 0, len(pools))
	for fam := range pools {
		families = append(families, fam)
	}
	sort.Strings(families)

	plan := buildFamilyPlan(counts, opts.NTiers, rnd)

	// Remaining plan slots per family, consumed tier by tier so slack
	// ranking accounts only for future reservations
	planned := make(map[string]int, len(pools))
	for _, fam := range plan {
		planned[fam]++
	}

	for ti := 0; ti < opts.NTiers; ti++ {
		var primary string
		if ti < len(plan) {
			primary = plan[ti]
			planned[primary]--
		}

		fill := &tierFill{
			tierIndex: ti,
			opts:      opts,
			pools:     pools,
			rnd:       rnd,
			artists:   make(map[string]int),
		}

		band := bands[ti]
		step := math.Max(2.5, band.tolerance)
		maxExpand := math.Max(globalSpan, band.tolerance*4)

		expand := 0.0
		for len(fill.picks) < opts.SongsPerTier {
			lo := band.min - band.tolerance - expand
			hi := band.max + band.tolerance + expand

			progress := 0
			progress += fill.takeFamily(primary, lo, hi, true)
			for _, fam := range fill.othersBySlack(families, planned, primary) {
				progress += fill.takeFamily(fam, lo, hi, true)
			}
			progress += fill.takeFamily(primary, lo, hi, false)
			for _, fam := range fill.othersBySlack(families, planned, primary) {
				progress += fill.takeFamily(fam, lo, hi, false)
			}

			if progress == 0 {
				if expand >= maxExpand {
					break
				}
				expand = math.Min(expand+step, maxExpand)
			}
		}

		// Forced sweep: doubled window, no artist or length constraints,
		// so a small library still yields full tiers where possible
		if len(fill.picks) < opts.SongsPerTier {
			lo := band.min - band.tolerance - maxExpand*2
			hi := band.max + band.tolerance + maxExpand*2
			for _, fam := range families {
				fill.takeForced(fam, lo, hi)
			}
		}

		sortTierSongs(fill.picks)
		tiers[ti] = fill.picks
	}

	return tiers
}

// tierFill holds the in-progress picks for one tier and mutates the shared
// family pools as songs are consumed
type tierFill struct {
	tierIndex int
	opts      Options
	pools     map[string][]song.Song
	rnd       *rand.Rand
	picks     []song.Song
	artists   map[string]int
}

// othersBySlack ranks non-primary families by remaining slack: pool size
// minus the songs still reserved for that family's future tiers. Families
// with the most surplus give first.
func (tf *tierFill) othersBySlack(families []string, planned map[string]int, primary string) []string {
	others := make([]string, 0, len(families))
	for _, fam := range families {
		if fam != primary && len(tf.pools[fam]) > 0 {
			others = append(others, fam)
		}
	}

	slack := func(fam string) int {
		return len(tf.pools[fam]) - planned[fam]*tf.opts.SongsPerTier
	}
	slices.SortStableFunc(others, func(a, b string) int {
		return slack(b) - slack(a)
	})

	return others
}

// takeFamily accepts songs from one family pool whose score falls in
// [lo, hi], in shuffled order, honoring the very-long rule and optionally
// the artist cap. Accepted songs leave the pool. Returns how many were taken.
func (tf *tierFill) takeFamily(fam string, lo, hi float64, enforceArtist bool) int {
	return tf.take(fam, lo, hi, enforceArtist, true)
}

// takeForced is the last-resort variant with every soft constraint off
func (tf *tierFill) takeForced(fam string, lo, hi float64) int {
	return tf.take(fam, lo, hi, false, false)
}

func (tf *tierFill) take(fam string, lo, hi float64, enforceArtist, keepLongRule bool) int {
	pool := tf.pools[fam]
	if len(pool) == 0 {
		return 0
	}

	idx := make([]int, 0, len(pool))
	for i, s := range pool {
		if s.Score >= lo && s.Score <= hi {
			idx = append(idx, i)
		}
	}
	tf.rnd.Shuffle(len(idx), func(a, b int) {
		idx[a], idx[b] = idx[b], idx[a]
	})

	taken := make(map[int]bool) // IDs leaving the pool
	accepted := 0

	for _, i := range idx {
		if len(tf.picks) >= tf.opts.SongsPerTier {
			break
		}

		s := pool[i]

		if keepLongRule && tf.opts.KeepVeryLongOutOfFirstTwo && tf.tierIndex < 2 && s.IsVeryLong {
			continue
		}

		artist := s.ArtistKey()
		if enforceArtist && tf.opts.MaxTracksPerArtist > 0 && artist != "" &&
			tf.artists[artist] >= tf.opts.MaxTracksPerArtist {
			continue
		}

		tf.picks = append(tf.picks, s)
		taken[s.ID] = true
		if artist != "" {
			tf.artists[artist]++
		}
		accepted++
	}

	if accepted > 0 {
		kept := pool[:0:0]
		for _, s := range pool {
			if !taken[s.ID] {
				kept = append(kept, s)
			}
		}
		tf.pools[fam] = kept
	}

	return accepted
}
