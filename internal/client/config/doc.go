// Package config loads runtime configuration for the Plated client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional .env file in the working directory (godotenv). It never
//     overrides variables that are already set.
//  3. PLATED_* environment variables (envconfig), e.g. PLATED_API_BASE_URL,
//     PLATED_DEBOUNCE_DELAY=250ms, PLATED_LOG_LEVEL=debug.
//  4. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-d int      username availability debounce (milliseconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for delays, so values can be either
// strings like "500ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.plated.example",
//	  "data_dir": ".plated",
//	  "debounce_delay": "500ms",
//	  "log_level": "debug"
//	}
package config
