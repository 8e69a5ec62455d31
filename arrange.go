// ABOUTME: Glue between configuration and the scoring, filtering and tiering layers
// ABOUTME: Turns a scanned library plus Config into ordered career tiers

package main

import (
	"careergen/config"
	"careergen/song"
	"careergen/tiering"
)

// filterFromConfig maps config fields to the library filter
func filterFromConfig(cfg config.Config, artistQuery string) song.Filter {
	return song.Filter{
		MinDifficulty: cfg.MinDifficulty,
		ExcludeMemes:  cfg.ExcludeMemes,
		LowerOfficial: cfg.LowerOfficial,
		ArtistQuery:   artistQuery,
	}
}

// scoreOptionsFromConfig maps config fields to the scoring adjustments
func scoreOptionsFromConfig(cfg config.Config) song.ScoreOptions {
	return song.ScoreOptions{
		LowerOfficial: cfg.LowerOfficial,
		WeightByNPS:   cfg.WeightByNPS,
		NPSAvgWeight:  cfg.NPSAvgWeight,
		NPSPeakWeight: cfg.NPSPeakWeight,
	}
}

// tieringOptionsFromConfig maps config fields to allocator options
func tieringOptionsFromConfig(cfg config.Config, seed *int64) tiering.Options {
	return tiering.Options{
		NTiers:                    cfg.Tiers,
		SongsPerTier:              cfg.SongsPerTier,
		MaxTracksPerArtist:        cfg.MaxTracksPerArtist,
		KeepVeryLongOutOfFirstTwo: cfg.KeepVeryLongOutOfFirstTwo,
		GroupByGenre:              cfg.GroupByGenre,
		ShuffleSeed:               seed,
	}
}

// Arrange filters and scores the library, then allocates it into tiers.
// A nil seed gives a fresh arrangement on every call.
func Arrange(library []song.Song, cfg config.Config, artistQuery string, seed *int64) ([][]song.Song, error) {
	eligible := filterFromConfig(cfg, artistQuery).Eligible(library)

	scoreOpts := scoreOptionsFromConfig(cfg)
	for i := range eligible {
		eligible[i].Score = song.EffectiveScore(&eligible[i], scoreOpts)
	}

	return tiering.AutoTier(eligible, tieringOptionsFromConfig(cfg, seed))
}
