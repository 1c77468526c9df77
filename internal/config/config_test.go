package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/playlist"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testEnv(vars map[string]string) env.Options {
	if vars == nil {
		vars = map[string]string{}
	}
	return env.Options{Prefix: envPrefix, Environment: vars}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music/cadence.db",
			expected: filepath.Join(home, "music", "cadence.db"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/cadence.db",
			expected: "/var/lib/cadence.db",
		},
		{
			name:     "relative path unchanged",
			input:    "data/cadence.db",
			expected: "data/cadence.db",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "cadence", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(nil, testEnv(nil))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.InDelta(t, 0.4, cfg.Volume, 1e-9)
	assert.Equal(t, playlist.RepeatNone, cfg.RepeatMode())
	assert.True(t, cfg.MPRIS)
	assert.True(t, cfg.Notifications)
	assert.Equal(t, 5*time.Second, cfg.SeekStep)
	assert.Equal(t, "cadence.db", filepath.Base(cfg.Database))
}

func TestLoad_MissingFilesAreSkipped(t *testing.T) {
	cfg, err := load([]string{filepath.Join(t.TempDir(), "absent.toml")}, testEnv(nil))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
database = "/tmp/music.db"
volume = 0.7
repeat = "all"
mpris = false
seek_step = "10s"
`)

	cfg, err := load([]string{path}, testEnv(nil))

	require.NoError(t, err)
	assert.Equal(t, "/tmp/music.db", cfg.Database)
	assert.InDelta(t, 0.7, cfg.Volume, 1e-9)
	assert.Equal(t, playlist.RepeatAll, cfg.RepeatMode())
	assert.False(t, cfg.MPRIS)
	assert.True(t, cfg.Notifications, "unset keys keep their default")
	assert.Equal(t, 10*time.Second, cfg.SeekStep)
}

func TestLoad_LaterFileWins(t *testing.T) {
	global := writeConfig(t, `
volume = 0.2
repeat = "one"
`)
	local := writeConfig(t, `volume = 0.9`)

	cfg, err := load([]string{global, local}, testEnv(nil))

	require.NoError(t, err)
	assert.InDelta(t, 0.9, cfg.Volume, 1e-9)
	assert.Equal(t, playlist.RepeatOne, cfg.RepeatMode())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
volume = 0.2
notifications = true
`)

	cfg, err := load([]string{path}, testEnv(map[string]string{
		"CADENCE_VOLUME":        "0.6",
		"CADENCE_NOTIFICATIONS": "false",
		"CADENCE_SEEK_STEP":     "2s",
		"CADENCE_DATABASE":      "~/cadence.db",
	}))

	require.NoError(t, err)
	assert.InDelta(t, 0.6, cfg.Volume, 1e-9)
	assert.False(t, cfg.Notifications)
	assert.Equal(t, 2*time.Second, cfg.SeekStep)
	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, "cadence.db"), cfg.Database)
	}
}

func TestLoad_Normalizes(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		volume   float64
		seekStep time.Duration
	}{
		{"volume above range", "volume = 1.5", 1, 5 * time.Second},
		{"volume below range", "volume = -0.5", 0, 5 * time.Second},
		{"non-positive seek step", `seek_step = "0s"`, 0.4, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load([]string{writeConfig(t, tt.content)}, testEnv(nil))

			require.NoError(t, err)
			assert.InDelta(t, tt.volume, cfg.Volume, 1e-9)
			assert.Equal(t, tt.seekStep, cfg.SeekStep)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown repeat mode", func(t *testing.T) {
		_, err := load([]string{writeConfig(t, `repeat = "forever"`)}, testEnv(nil))
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := load([]string{writeConfig(t, `volume = [`)}, testEnv(nil))
		require.Error(t, err)
	})

	t.Run("malformed variable", func(t *testing.T) {
		_, err := load(nil, testEnv(map[string]string{"CADENCE_VOLUME": "loud"}))
		require.Error(t, err)
	})
}
