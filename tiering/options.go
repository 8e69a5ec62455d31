// ABOUTME: Allocation options, validation and seedable RNG construction
// ABOUTME: Entry point routing between the standard and genre-aware allocators

// Package tiering partitions a scored song library into ordered difficulty
// tiers. Two allocators share the same option surface: a quantile-bucket
// allocator and a genre-aware allocator that balances genre families across
// tiers. Both are deterministic under a fixed shuffle seed.
package tiering

import (
	"fmt"
	"math/rand/v2"
	"time"

	"careergen/song"
)

// Options configures one allocation run
type Options struct {
	NTiers       int // Number of tiers to produce, must be >= 1
	SongsPerTier int // Target size of each tier, must be >= 1

	// MaxTracksPerArtist caps how many songs by the same artist (case-
	// insensitive) may land in one tier. 0 disables the cap entirely.
	MaxTracksPerArtist int

	// KeepVeryLongOutOfFirstTwo keeps very long tracks out of the two
	// easiest tiers, except as a last resort when nothing else fits.
	KeepVeryLongOutOfFirstTwo bool

	// GroupByGenre selects the genre-aware allocator
	GroupByGenre bool

	// ShuffleSeed fixes the RNG for reproducible output. Nil derives a
	// fresh seed from the clock so repeated runs vary.
	ShuffleSeed *int64
}

func (o Options) validate() error {
	if o.NTiers < 1 {
		return fmt.Errorf("tiering: n_tiers must be positive, got %d", o.NTiers)
	}
	if o.SongsPerTier < 1 {
		return fmt.Errorf("tiering: songs_per_tier must be positive, got %d", o.SongsPerTier)
	}

	return nil
}

// newRand builds the single RNG instance threaded through one allocation
// call. Every randomized step shares it, so a fixed seed reproduces the
// whole run.
func (o Options) newRand() *rand.Rand {
	seed := time.Now().UnixNano()
	if o.ShuffleSeed != nil {
		seed = *o.ShuffleSeed
	}

	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
}

// AutoTier partitions songs into exactly NTiers tiers of up to SongsPerTier
// songs each, sorted ascending by difficulty. The input slice is never
// mutated. Data sparsity (empty input, under-populated libraries) yields
// shorter tiers, never an error; only invalid options fail.
func AutoTier(songs []song.Song, opts Options) ([][]song.Song, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	rnd := opts.newRand()

	var tiers [][]song.Song
	if opts.GroupByGenre {
		tiers = genreAwareTier(songs, opts, rnd)
	} else {
		tiers = standardTier(songs, opts, rnd)
	}

	return SortTiers(tiers), nil
}
