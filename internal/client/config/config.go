package config

import (
	"time"

	"github.com/mkalinins/commportal/internal/client/session"
)

// Config holds runtime settings for the portal CLI.
//
// Fields:
//   - ServerURL: base URL of the portal backend (scheme://host:port).
//   - RequestTimeout: per-request bound for backend calls.
//   - DatabasePath: sqlite file holding durable client state (the token).
//   - RestoreMode: what the startup session check does with a persisted
//     token; see session.RestoreMode.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	RestoreMode    session.RestoreMode
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "portal.db"
	c.RestoreMode = session.RestoreVerify
}

// Load constructs a Config, applies defaults, then overlays values from a
// JSON file (if given) and command-line flags. Later sources win.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
