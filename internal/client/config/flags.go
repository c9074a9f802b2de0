package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/plated/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL (default from Config)
//	-d int      username availability debounce in milliseconds
//	-l string   log level: debug, info, warn, error
//
// os.Args is filtered down to these flags with flagx.FilterArgs so the
// config file flag does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	debounce := fs.Int("d", int(cfg.DebounceDelay.Milliseconds()), "username availability debounce (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.DebounceDelay = time.Duration(*debounce) * time.Millisecond
}
