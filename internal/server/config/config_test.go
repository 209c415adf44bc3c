package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
	assert.Equal(t, ProviderGemini, c.ModelProvider)
	assert.Equal(t, 30*time.Second, c.ModelTimeout)
	assert.Equal(t, uint32(5), c.BreakerThreshold)
	assert.Equal(t, time.Hour, c.RecommendationCacheTTL)
	assert.Equal(t, 100, c.RecommendationCacheSize)
	assert.Equal(t, "bookwise", c.S3Bucket)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"zero ttl", func(c *Config) { c.AccessTokenValidityDuration = 0 }},
		{"cost too low", func(c *Config) { c.BcryptCost = 1 }},
		{"cost too high", func(c *Config) { c.BcryptCost = 40 }},
		{"unknown provider", func(c *Config) { c.ModelProvider = "oracle" }},
		{"zero model timeout", func(c *Config) { c.ModelTimeout = 0 }},
		{"negative directory timeout", func(c *Config) { c.DirectoryTimeout = -time.Second }},
		{"zero rate limit", func(c *Config) { c.RateLimitRequests = 0 }},
		{"zero breaker threshold", func(c *Config) { c.BreakerThreshold = 0 }},
		{"negative cache ttl", func(c *Config) { c.RecommendationCacheTTL = -time.Minute }},
		{"zero cache size", func(c *Config) { c.RecommendationCacheSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	c, err := LoadConfig(nil)
	require.NoError(t, err)

	if diff := cmp.Diff(defaults(), c); diff != "" {
		t.Fatalf("LoadConfig(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http": ":7000",
		"database_dsn":       "postgres://file",
		"model_name":         "from-file",
	})
	t.Setenv("BOOKWISE_DATABASE_DSN", "postgres://env")
	t.Setenv("BOOKWISE_MODEL_NAME", "from-env")

	c, err := LoadConfig([]string{"-c", path, "-n", "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.EndpointAddrHTTP, "file beats defaults")
	assert.Equal(t, "postgres://env", c.DatabaseDSN, "env beats file")
	assert.Equal(t, "from-flag", c.ModelName, "flags beat env")
}

func TestLoadConfig_InvalidResult(t *testing.T) {
	_, err := LoadConfig([]string{"-p", "oracle"})
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig([]string{"-config", "/does/not/exist.json"})
	require.Error(t, err)
}

func TestInsecureSecret(t *testing.T) {
	c := defaults()
	assert.True(t, c.InsecureSecret())

	c.SecretKey = "a-real-secret"
	assert.False(t, c.InsecureSecret())
}
