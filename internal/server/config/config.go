// Package config handles configuration for the Bookwise server: defaults,
// a JSON file overlay, BOOKWISE_* environment variables and command-line
// flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/flagx"
	"golang.org/x/crypto/bcrypt"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DevSecretKey is the built-in signing secret. It is public and only fit for
// local development.
const DevSecretKey = "secretKey"

// Config holds runtime settings for the Bookwise server.
//
// An empty DatabaseDSN selects the in-memory stores. SecretKey signs access
// tokens (HS256) and must never be logged.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	DatabaseDSN      string
	LogLevel         string

	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	DirectoryTimeout            time.Duration

	ModelProvider    string
	ModelName        string
	ModelAPIKey      string
	ModelBaseURL     string
	ModelTimeout     time.Duration
	BreakerThreshold uint32

	// RecommendationCacheTTL of zero turns the result cache off.
	RecommendationCacheTTL  time.Duration
	RecommendationCacheSize int

	RateLimitRequests  int
	RateLimitWindow    time.Duration
	CORSAllowedOrigins []string

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.LogLevel = "info"

	c.SecretKey = DevSecretKey
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
	c.DirectoryTimeout = 3 * time.Second

	c.ModelProvider = ProviderGemini
	c.ModelName = "gemini-2.0-flash"
	c.ModelAPIKey = ""
	c.ModelBaseURL = ""
	c.ModelTimeout = 30 * time.Second
	c.BreakerThreshold = 5
	c.RecommendationCacheTTL = time.Hour
	c.RecommendationCacheSize = 100

	c.RateLimitRequests = 60
	c.RateLimitWindow = time.Minute
	c.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "bookwise"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must not be empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.ModelProvider != ProviderGemini && c.ModelProvider != ProviderOpenAI {
		errs = append(errs, fmt.Errorf("unknown model provider %q", c.ModelProvider))
	}
	if c.BreakerThreshold == 0 {
		errs = append(errs, errors.New("breaker threshold must be positive"))
	}
	if c.RecommendationCacheTTL < 0 || c.RecommendationCacheSize < 1 {
		errs = append(errs, errors.New("recommendation cache ttl must not be negative and size must be positive"))
	}
	if c.ModelTimeout <= 0 || c.DirectoryTimeout <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate limit must be positive"))
	}
	return errors.Join(errs...)
}

// InsecureSecret reports whether tokens would be signed with DevSecretKey.
func (c *Config) InsecureSecret() bool {
	return c.SecretKey == DevSecretKey
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file (-c/-config), the environment and finally the
// command-line flags found in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
