// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing and default config fallback behavior

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tiers != 8 {
		t.Errorf("Expected Tiers 8, got %d", cfg.Tiers)
	}
	if cfg.SongsPerTier != 5 {
		t.Errorf("Expected SongsPerTier 5, got %d", cfg.SongsPerTier)
	}
	if !cfg.KeepVeryLongOutOfFirstTwo {
		t.Error("Expected KeepVeryLongOutOfFirstTwo enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careergen.toml")

	cfg := DefaultConfig()
	cfg.Tiers = 12
	cfg.GroupByGenre = true
	cfg.NPSAvgWeight = 1.5
	cfg.TierTheme = "venues"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Tiers != 12 {
		t.Errorf("Tiers mismatch: got %d, want 12", loaded.Tiers)
	}
	if !loaded.GroupByGenre {
		t.Error("GroupByGenre not persisted")
	}
	if loaded.NPSAvgWeight != 1.5 {
		t.Errorf("NPSAvgWeight mismatch: got %.2f, want 1.5", loaded.NPSAvgWeight)
	}
	if loaded.TierTheme != "venues" {
		t.Errorf("TierTheme mismatch: got %q, want venues", loaded.TierTheme)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Loading non-existent file should return defaults without error
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Tiers != defaults.Tiers {
		t.Errorf("Expected default Tiers %d, got %d", defaults.Tiers, cfg.Tiers)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte("tiers = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Tiers != 3 {
		t.Errorf("Tiers = %d, want 3 from file", cfg.Tiers)
	}
	if cfg.SongsPerTier != DefaultConfig().SongsPerTier {
		t.Errorf("SongsPerTier = %d, want default for missing key", cfg.SongsPerTier)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero tiers", func(c *Config) { c.Tiers = 0 }, true},
		{"zero songs per tier", func(c *Config) { c.SongsPerTier = 0 }, true},
		{"negative artist cap", func(c *Config) { c.MaxTracksPerArtist = -1 }, true},
		{"zero artist cap disables", func(c *Config) { c.MaxTracksPerArtist = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSharedConfig(t *testing.T) {
	sc := NewSharedConfig(DefaultConfig())

	cfg := sc.Get()
	cfg.Tiers = 20
	sc.Update(cfg)

	if got := sc.Get().Tiers; got != 20 {
		t.Errorf("SharedConfig.Get().Tiers = %d, want 20", got)
	}
}
