// ABOUTME: Shared initialization code for CLI and TUI modes
// ABOUTME: Provides library loading, config setup and debug logging

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"careergen/config"
	"careergen/scanner"
	"careergen/song"
)

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	LibraryRoot string
	OutputPath  string
	ArtistQuery string
	Seed        *int64
	DryRun      bool
	NoCache     bool
	DebugLog    bool
}

// LibraryContext contains the scanned library and associated configuration
type LibraryContext struct {
	Songs        []song.Song
	Config       config.Config
	SharedConfig *config.SharedConfig
	ConfigPath   string
}

// InitializeLibrary scans the song library and loads configuration
func InitializeLibrary(ctx context.Context, opts RunOptions, progress func(scanner.Progress)) (*LibraryContext, error) {
	configPath := config.GetConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	songs, err := ScanLibrary(ctx, opts, progress)
	if err != nil {
		return nil, err
	}

	return &LibraryContext{
		Songs:        songs,
		Config:       cfg,
		SharedConfig: config.NewSharedConfig(cfg),
		ConfigPath:   configPath,
	}, nil
}

// ScanLibrary walks the library root, using the on-disk cache unless disabled
func ScanLibrary(ctx context.Context, opts RunOptions, progress func(scanner.Progress)) ([]song.Song, error) {
	sc := &scanner.Scanner{Progress: progress}

	if !opts.NoCache {
		cachePath, err := scanner.DefaultCachePath()
		if err != nil {
			debugf("cache path unavailable: %v", err)
		} else if cache, err := scanner.OpenCache(cachePath); err != nil {
			debugf("cache disabled: %v", err)
		} else {
			sc.Cache = cache
			defer cache.Close()
		}
	}

	songs, err := sc.Scan(ctx, opts.LibraryRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}

	if len(songs) == 0 {
		return nil, errors.New("no playable songs found in library")
	}

	return songs, nil
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	fileInfo, _ := os.Stdout.Stat()
	if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
