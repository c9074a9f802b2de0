package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"-a", "https://api.example", "-d", "200", "-l", "debug"},
			expected: &Config{APIBaseURL: "https://api.example", DebounceDelay: 200 * time.Millisecond, LogLevel: "debug"}},
		{name: "config file flag is ignored", args: []string{"-c", "cfg.json", "-a=https://api.example"},
			expected: &Config{APIBaseURL: "https://api.example"}},
		{name: "incorrect debounce", args: []string{"-d", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			if diff := cmp.Diff(tt.expected, config); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
