// Package config loads application configuration from YAML files and the
// environment. Precedence, lowest to highest: built-in defaults, the YAML
// file, APP_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lanternworks/lantern-common/envcfg"
	"github.com/lanternworks/lantern-common/window"
)

var (
	// ErrJournalDirRequired is returned when journaling is enabled without
	// a target directory.
	ErrJournalDirRequired = errors.New("journal directory is required when journaling is enabled")

	// ErrNegativeStrength is returned when a post-processing strength is
	// below zero.
	ErrNegativeStrength = errors.New("post-processing strength must not be negative")
)

// Config is the root application configuration.
type Config struct {
	Window   window.Config `yaml:"window"`
	Graphics Graphics      `yaml:"graphics"`
	Journal  Journal       `yaml:"journal"`
}

// Graphics holds rendering options.
type Graphics struct {
	VSync          bool           `yaml:"vsync"`
	FrameLimit     uint32         `yaml:"frame_limit"`
	DebugGrid      bool           `yaml:"debug_grid"`
	PostProcessing PostProcessing `yaml:"post_processing"`
}

// PostProcessing holds full-screen effect strengths. Zero disables an
// effect.
type PostProcessing struct {
	FilmGrain           float64 `yaml:"film_grain"`
	ChromaticAberration float64 `yaml:"chromatic_aberration"`
}

// Journal controls lifecycle journaling.
type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: window.DefaultConfig(),
		Graphics: Graphics{
			VSync: true,
		},
		Journal: Journal{
			Dir: "journals",
		},
	}
}

// Load reads configuration from the given path, then applies environment
// overrides. An empty path skips the file and uses defaults plus the
// environment.
func Load(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		applyEnv(ctx, cfg)

		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return FromBytes(ctx, data)
}

// FromBytes parses YAML configuration, applies environment overrides, and
// validates the result. Fields absent from the YAML keep their defaults.
func FromBytes(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyEnv(ctx, cfg)

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overwrites config fields from APP_* environment variables.
// Unset or unparseable variables leave the config untouched.
func applyEnv(ctx context.Context, cfg *Config) {
	envcfg.Uint[uint32](ctx, "APP_WINDOW_WIDTH").DoWithValue(func(v uint32) {
		cfg.Window.Width = v
	})
	envcfg.Uint[uint32](ctx, "APP_WINDOW_HEIGHT").DoWithValue(func(v uint32) {
		cfg.Window.Height = v
	})
	envcfg.String(ctx, "APP_WINDOW_TITLE").DoWithValue(func(v string) {
		cfg.Window.Title = v
	})
	envcfg.Bool(ctx, "APP_FULLSCREEN").DoWithValue(func(v bool) {
		cfg.Window.Fullscreen = v
	})
	envcfg.Bool(ctx, "APP_VSYNC").DoWithValue(func(v bool) {
		cfg.Graphics.VSync = v
	})
	envcfg.Uint[uint32](ctx, "APP_FRAME_LIMIT").DoWithValue(func(v uint32) {
		cfg.Graphics.FrameLimit = v
	})
	envcfg.Bool(ctx, "APP_DEBUG_GRID").DoWithValue(func(v bool) {
		cfg.Graphics.DebugGrid = v
	})
	envcfg.Bool(ctx, "APP_JOURNAL").DoWithValue(func(v bool) {
		cfg.Journal.Enabled = v
	})
	envcfg.String(ctx, "APP_JOURNAL_DIR").DoWithValue(func(v string) {
		cfg.Journal.Dir = v
	})
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return err
	}

	if c.Journal.Enabled && c.Journal.Dir == "" {
		return ErrJournalDirRequired
	}

	if c.Graphics.PostProcessing.FilmGrain < 0 {
		return fmt.Errorf("film grain: %w", ErrNegativeStrength)
	}

	if c.Graphics.PostProcessing.ChromaticAberration < 0 {
		return fmt.Errorf("chromatic aberration: %w", ErrNegativeStrength)
	}

	return nil
}

// Save writes the configuration to the given path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write config file %q: %w", path, err)
	}

	return nil
}
