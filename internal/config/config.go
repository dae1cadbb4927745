package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"settlement-quote/internal/dateutil"
)

// Config holds process settings. Pricing inputs live in the rate table file, not here.
type Config struct {
	ListenAddr    string
	RateTablePath string
	LogLevel      zerolog.Level
	// Today pins the valuation date when non-zero.
	Today time.Time
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8080",
		LogLevel:   zerolog.InfoLevel,
	}
}

// Load reads QUOTE_* environment variables over the defaults. PORT is honoured
// for platforms that only provide a port.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if port := getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if addr := getenv("QUOTE_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	cfg.RateTablePath = getenv("QUOTE_RATE_TABLE")

	if lvl := getenv("QUOTE_LOG_LEVEL"); lvl != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(lvl))
		if err != nil {
			return nil, fmt.Errorf("QUOTE_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = parsed
	}

	if today := getenv("QUOTE_TODAY"); today != "" {
		t, ok := dateutil.Parse(today)
		if !ok {
			return nil, fmt.Errorf("QUOTE_TODAY: invalid date %q, want YYYY-MM-DD", today)
		}
		cfg.Today = t
	}

	return cfg, nil
}

// Clock returns the valuation clock: the pinned date if set, wall time otherwise.
func (c *Config) Clock() func() time.Time {
	if c.Today.IsZero() {
		return time.Now
	}
	today := c.Today
	return func() time.Time { return today }
}
