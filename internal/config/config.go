package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/naveenspark/moviemania/internal/session"
)

// Config holds the client configuration loaded from environment variables.
type Config struct {
	APIURL        string        `env:"MOVIEMANIA_API_URL" envDefault:"http://localhost:4000"`
	SessionFile   string        `env:"MOVIEMANIA_SESSION_FILE"` // defaults to ~/.moviemania/session.json
	HTTPTimeout   time.Duration `env:"MOVIEMANIA_HTTP_TIMEOUT" envDefault:"30s"`
	FeaturedCount int           `env:"MOVIEMANIA_FEATURED_COUNT" envDefault:"6"`

	LogLevel  string `env:"MOVIEMANIA_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MOVIEMANIA_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"MOVIEMANIA_LOG_FILE"` // TUI logs are discarded when empty
}

// Load parses environment variables and fills defaults. It does not validate:
// callers apply their overrides first, then call Validate.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.SessionFile == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.SessionFile = p
	}
	return cfg, nil
}

// Validate normalizes the API URL and checks value ranges.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("MOVIEMANIA_API_URL must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("MOVIEMANIA_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.FeaturedCount < 1 {
		return fmt.Errorf("MOVIEMANIA_FEATURED_COUNT must be at least 1, got %d", c.FeaturedCount)
	}
	return nil
}
