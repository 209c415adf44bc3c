package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/flagx"
)

// Config holds runtime settings for the Bookwise CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - HealthAddr: host:port of the gRPC health endpoint.
//   - OnlineCheckInterval: how often the client probes server health.
//   - RequestTimeout: per-request timeout; recommendations can be slow.
type Config struct {
	ServerURL           string
	HealthAddr          string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 45 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
