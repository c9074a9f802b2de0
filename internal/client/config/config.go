package config

import (
	"path/filepath"
	"time"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "PLATED"

// Config holds runtime settings for the Plated client.
//
// Units: DebounceDelay and RequestTimeout are time.Duration values. A zero
// RequestTimeout leaves the transport default in place.
type Config struct {
	APIBaseURL     string        `split_words:"true"`
	DataDir        string        `split_words:"true"`
	DBFile         string        `split_words:"true"`
	LoginRoute     string        `split_words:"true"`
	ProfileRoute   string        `split_words:"true"`
	DebounceDelay  time.Duration `split_words:"true"`
	RequestTimeout time.Duration `split_words:"true"`
	LogLevel       string        `split_words:"true"`
	LogFormat      string        `split_words:"true"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.DataDir = ".plated"
	c.DBFile = "session.db"
	c.LoginRoute = "/login"
	c.ProfileRoute = "/profile"
	c.DebounceDelay = 500 * time.Millisecond
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "console"
}

// DBPath is the location of the local session database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a .env file, the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
