// ABOUTME: Configuration management for tiering and scan parameters
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config holds all tunable arrangement and scan parameters
type Config struct {
	// Tier layout
	Tiers        int `toml:"tiers"`
	SongsPerTier int `toml:"songs_per_tier"`

	// Allocation constraints
	MaxTracksPerArtist        int  `toml:"max_tracks_per_artist"` // 0 disables the cap
	KeepVeryLongOutOfFirstTwo bool `toml:"keep_very_long_out_of_first_two"`
	GroupByGenre              bool `toml:"group_by_genre"`

	// Library filtering
	MinDifficulty int  `toml:"min_difficulty"`
	ExcludeMemes  bool `toml:"exclude_memes"`

	// Scoring adjustments
	LowerOfficial bool    `toml:"lower_official_difficulty"`
	WeightByNPS   bool    `toml:"weight_by_nps"`
	NPSAvgWeight  float64 `toml:"nps_avg_weight"`
	NPSPeakWeight float64 `toml:"nps_peak_weight"`

	// Output
	TierTheme string `toml:"tier_theme"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/careergen/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./careergen.toml"); err == nil {
		return "./careergen.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./careergen.toml"
	}

	return filepath.Join(home, ".config", "careergen", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns default config without error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so fields absent from the file keep sane values
	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default arrangement configuration
func DefaultConfig() Config {
	return Config{
		Tiers:                     8,
		SongsPerTier:              5,
		MaxTracksPerArtist:        1,
		KeepVeryLongOutOfFirstTwo: true,
		GroupByGenre:              false,
		MinDifficulty:             1,
		ExcludeMemes:              false,
		LowerOfficial:             false,
		WeightByNPS:               false,
		NPSAvgWeight:              1.0,
		NPSPeakWeight:             0.25,
		TierTheme:                 "procedural",
	}
}

// Validate reports configuration values the allocator would reject
func (c Config) Validate() error {
	if c.Tiers < 1 {
		return fmt.Errorf("tiers must be at least 1, got %d", c.Tiers)
	}
	if c.SongsPerTier < 1 {
		return fmt.Errorf("songs_per_tier must be at least 1, got %d", c.SongsPerTier)
	}
	if c.MaxTracksPerArtist < 0 {
		return fmt.Errorf("max_tracks_per_artist must not be negative, got %d", c.MaxTracksPerArtist)
	}

	return nil
}

// SharedConfig wraps Config with a mutex for thread-safe access between the
// TUI event loop and background reload watchers
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

func NewSharedConfig(config Config) *SharedConfig {
	return &SharedConfig{config: config}
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Update updates the config (thread-safe write)
func (sc *SharedConfig) Update(config Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = config
}
