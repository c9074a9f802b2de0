package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:5000", c.APIBaseURL)
	assert.Equal(t, 500*time.Millisecond, c.DebounceDelay)
	assert.Equal(t, "/login", c.LoginRoute)
	assert.Equal(t, "/profile", c.ProfileRoute)
	assert.Equal(t, filepath.Join(".plated", "session.db"), c.DBPath())
	assert.Zero(t, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	if diff := cmp.Diff(defaults(), *cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"api_base_url":   "https://json.example",
		"debounce_delay": "250ms",
		"log_format":     "json",
	})
	t.Setenv("PLATED_API_BASE_URL", "https://env.example")
	t.Setenv("PLATED_LOG_LEVEL", "warn")
	t.Setenv("PLATED_DATA_DIR", "/tmp/plated")
	withArgs(t, "-config", path, "-l", "debug")

	cfg := LoadConfig()

	want := defaults()
	want.APIBaseURL = "https://json.example"
	want.DebounceDelay = 250 * time.Millisecond
	want.LogFormat = "json"
	want.LogLevel = "debug"
	want.DataDir = "/tmp/plated"
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
