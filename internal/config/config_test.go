package config

import (
	"os"
	"path/filepath"
	"testing"

	"go-puzzles/internal/midend"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, "fifteen", cfg.DefaultGame)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad_Full(t *testing.T) {
	path := writeFile(t, "config.yaml", `
default_game: fifteen
save_dir: /tmp/saves
log_level: debug
games:
  fifteen:
    params: 3x3
    presets:
      - title: Tiny
        params: 2x2
      - title: "Café"
        params: 5x5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/saves", cfg.SaveDir)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "3x3", cfg.Game("Fifteen").Params)

	assert.Equal(t, []midend.PresetSpec{
		{Title: "Tiny", Params: "2x2"},
		{Title: "Café", Params: "5x5"},
	}, cfg.Presets("FIFTEEN"))
	assert.Nil(t, cfg.Presets("other"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "default_gmae: fifteen\n", "field default_gmae not found"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"untitled preset", "games:\n  fifteen:\n    presets:\n      - params: 2x2\n", "missing title"},
		{"not yaml", "default_game: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "GO_PUZZLES_TEST_PRESETS=Small:2x2\nGO_PUZZLES_TEST_KEEP=file\n")
	t.Setenv("GO_PUZZLES_TEST_KEEP", "env")
	t.Setenv("GO_PUZZLES_TEST_PRESETS", "")
	require.NoError(t, os.Unsetenv("GO_PUZZLES_TEST_PRESETS"))

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "Small:2x2", os.Getenv("GO_PUZZLES_TEST_PRESETS"))
	assert.Equal(t, "env", os.Getenv("GO_PUZZLES_TEST_KEEP"), "existing variables win")
}
