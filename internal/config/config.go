// Package config loads user settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go-puzzles/internal/midend"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Config is the contents of config.yaml.
type Config struct {
	// DefaultGame is played when no game is named on the command line.
	DefaultGame string `yaml:"default_game"`
	// SaveDir overrides where save slots are kept.
	SaveDir string `yaml:"save_dir,omitempty"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
	// LogFile overrides where the log is written.
	LogFile string `yaml:"log_file,omitempty"`

	Games map[string]GameConfig `yaml:"games,omitempty"`
}

// GameConfig holds per-game settings, keyed by lower-case game name.
type GameConfig struct {
	// Params is an encoded params string applied before the first game.
	Params  string   `yaml:"params,omitempty"`
	Presets []Preset `yaml:"presets,omitempty"`
}

type Preset struct {
	Title  string `yaml:"title"`
	Params string `yaml:"params"`
}

// Default returns the settings used when there is no config file.
func Default() *Config {
	return &Config{
		DefaultGame: "fifteen",
		LogLevel:    "info",
	}
}

// DefaultPath returns the config file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "go-puzzles", "config.yaml"), nil
}

// Load reads the config file at path. A missing or empty file yields the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for name, gc := range c.Games {
		for i, p := range gc.Presets {
			if p.Title == "" {
				return fmt.Errorf("games.%s.presets[%d]: missing title", name, i)
			}
		}
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Game returns the settings for the named game.
func (c *Config) Game(name string) GameConfig {
	return c.Games[strings.ToLower(name)]
}

// Presets returns the extra presets configured for a game. Titles are
// NFC-normalised so that menus compare and sort consistently.
func (c *Config) Presets(game string) []midend.PresetSpec {
	var specs []midend.PresetSpec
	for _, p := range c.Game(game).Presets {
		specs = append(specs, midend.PresetSpec{Title: norm.NFC.String(p.Title), Params: p.Params})
	}
	return specs
}

// LoadEnv loads dotenv files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}
