package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept "30s"-style strings or integer nanoseconds. Only the
// fields present (non-zero) in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	LogLevel                    string         `json:"log_level"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	DirectoryTimeout            timex.Duration `json:"directory_timeout"`
	ModelProvider               string         `json:"model_provider"`
	ModelName                   string         `json:"model_name"`
	ModelAPIKey                 string         `json:"model_api_key"`
	ModelBaseURL                string         `json:"model_base_url"`
	ModelTimeout                timex.Duration `json:"model_timeout"`
	BreakerThreshold            uint32         `json:"breaker_threshold"`
	RecommendationCacheTTL      timex.Duration `json:"recommendation_cache_ttl"`
	RecommendationCacheSize     int            `json:"recommendation_cache_size"`
	RateLimitRequests           int            `json:"rate_limit_requests"`
	RateLimitWindow             timex.Duration `json:"rate_limit_window"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson overlays the file at path onto config. An empty path is a no-op.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	setDuration(&config.DirectoryTimeout, c.DirectoryTimeout.Duration)
	setString(&config.ModelProvider, c.ModelProvider)
	setString(&config.ModelName, c.ModelName)
	setString(&config.ModelAPIKey, c.ModelAPIKey)
	setString(&config.ModelBaseURL, c.ModelBaseURL)
	setDuration(&config.ModelTimeout, c.ModelTimeout.Duration)
	if c.BreakerThreshold != 0 {
		config.BreakerThreshold = c.BreakerThreshold
	}
	setDuration(&config.RecommendationCacheTTL, c.RecommendationCacheTTL.Duration)
	if c.RecommendationCacheSize != 0 {
		config.RecommendationCacheSize = c.RecommendationCacheSize
	}
	if c.RateLimitRequests != 0 {
		config.RateLimitRequests = c.RateLimitRequests
	}
	setDuration(&config.RateLimitWindow, c.RateLimitWindow.Duration)
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
