// ABOUTME: TUI mode configuration and injected dependencies
// ABOUTME: Defines input parameters and the seams to the scan and tiering layers

package tui

import (
	"context"

	"careergen/config"
	"careergen/song"
)

// Options contains configuration for running the TUI
type Options struct {
	LibraryRoot string // Song library to scan
	OutputPath  string // Setlist path for saving (defaults to career.setlist)
	ArtistQuery string // Optional artist restriction
	Seed        *int64 // Optional fixed shuffle seed for the first arrangement
	DryRun      bool   // If true, don't write a setlist on save
	NoCache     bool   // If true, bypass the scan cache
}

// Deps holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Deps struct {
	// Scan walks the library, reporting (processed, total) as it goes
	Scan func(ctx context.Context, progress func(done, total int)) ([]song.Song, error)

	// Arrange allocates the scanned library into tiers
	Arrange func(songs []song.Song, cfg config.Config, seed *int64) ([][]song.Song, error)

	// Export writes the tiers to a .setlist file
	Export func(tiers [][]song.Song, path string) error

	// Debugf logs debug messages when enabled
	Debugf func(string, ...interface{})
}
