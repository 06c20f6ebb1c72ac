// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/draftly/draftly-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete draftly configuration.
type Config struct {
	Version string `toml:"version"`

	// Generation service endpoint
	Service ServiceConfig `toml:"service"`

	// Default generation options
	Generation GenerationConfig `toml:"generation"`

	// Typewriter pacing for incoming drafts
	Reveal RevealConfig `toml:"reveal"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServiceConfig contains generation service settings.
type ServiceConfig struct {
	// URL is the base URL of the generation service
	URL string `toml:"url"`
	// TimeoutSecs is the request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// GenerationConfig contains the default persona and tone sent with drafts.
type GenerationConfig struct {
	Persona string `toml:"persona"`
	Tone    string `toml:"tone"`
}

// RevealConfig controls how incoming drafts are typed out.
type RevealConfig struct {
	// CharsPerTick is how many characters each tick exposes
	CharsPerTick int `toml:"chars_per_tick"`
	// TickIntervalMS is the delay between ticks, in milliseconds
	TickIntervalMS int `toml:"tick_interval_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode"`
}

// Personas lists the persona values the composer cycles through.
var Personas = []string{"expert", "researcher", "storyteller", "marketer"}

// Tones lists the tone values the composer cycles through.
var Tones = []string{"casual", "formal", "playful", "direct"}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Service: ServiceConfig{
			URL:         "http://localhost:5000",
			TimeoutSecs: 60,
		},

		Generation: GenerationConfig{
			Persona: Personas[0],
			Tone:    Tones[0],
		},

		Reveal: RevealConfig{
			CharsPerTick:   1,
			TickIntervalMS: 6,
		},

		UI: UIConfig{
			Theme:       "dark",
			CompactMode: false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the draftly configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".draftly"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.draftly/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadTOML loads configuration from a TOML file.
func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Service.URL == "" {
		c.Service.URL = defaults.Service.URL
	}
	if c.Service.TimeoutSecs <= 0 {
		c.Service.TimeoutSecs = defaults.Service.TimeoutSecs
	}
	if c.Generation.Persona == "" {
		c.Generation.Persona = defaults.Generation.Persona
	}
	if c.Generation.Tone == "" {
		c.Generation.Tone = defaults.Generation.Tone
	}
	if c.Reveal.CharsPerTick <= 0 {
		c.Reveal.CharsPerTick = defaults.Reveal.CharsPerTick
	}
	if c.Reveal.TickIntervalMS <= 0 {
		c.Reveal.TickIntervalMS = defaults.Reveal.TickIntervalMS
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies DRAFTLY_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DRAFTLY_SERVICE_URL"); v != "" {
		c.Service.URL = v
	}
	if v := os.Getenv("DRAFTLY_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Service.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("DRAFTLY_PERSONA"); v != "" {
		c.Generation.Persona = v
	}
	if v := os.Getenv("DRAFTLY_TONE"); v != "" {
		c.Generation.Tone = v
	}
	if v := os.Getenv("DRAFTLY_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Service.URL)
	if err != nil {
		return fmt.Errorf("invalid service URL %q: %w", c.Service.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("service URL %q must use http or https", c.Service.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("service URL %q has no host", c.Service.URL)
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("unknown theme %q (valid: dark, light, auto)", c.UI.Theme)
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic so
// a crash mid-save never leaves a truncated config behind.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// Timeout returns the service timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.TimeoutSecs) * time.Second
}

// TickInterval returns the reveal tick interval as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Reveal.TickIntervalMS) * time.Millisecond
}
