package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables read by the server, e.g.
// BOOKWISE_DATABASE_DSN or BOOKWISE_MODEL_TIMEOUT=45s. Key names match the
// JSON config keys.
const EnvPrefix = "BOOKWISE_"

func envTransformFunc(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

// parseEnv overlays BOOKWISE_* variables onto config.
func parseEnv(config *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return err
	}

	strs := map[string]*string{
		"endpoint_addr_http": &config.EndpointAddrHTTP,
		"endpoint_addr_grpc": &config.EndpointAddrGRPC,
		"database_dsn":       &config.DatabaseDSN,
		"log_level":          &config.LogLevel,
		"secret_key":         &config.SecretKey,
		"model_provider":     &config.ModelProvider,
		"model_name":         &config.ModelName,
		"model_api_key":      &config.ModelAPIKey,
		"model_base_url":     &config.ModelBaseURL,
		"s3_root_user":       &config.S3RootUser,
		"s3_root_password":   &config.S3RootPassword,
		"s3_bucket":          &config.S3Bucket,
		"s3_region":          &config.S3Region,
		"s3_base_endpoint":   &config.S3BaseEndpoint,
	}
	for key, dst := range strs {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}

	if k.Exists("access_token_validity_duration") {
		config.AccessTokenValidityDuration = k.Duration("access_token_validity_duration")
	}
	if k.Exists("directory_timeout") {
		config.DirectoryTimeout = k.Duration("directory_timeout")
	}
	if k.Exists("model_timeout") {
		config.ModelTimeout = k.Duration("model_timeout")
	}
	if k.Exists("recommendation_cache_ttl") {
		config.RecommendationCacheTTL = k.Duration("recommendation_cache_ttl")
	}
	if k.Exists("recommendation_cache_size") {
		config.RecommendationCacheSize = k.Int("recommendation_cache_size")
	}
	if k.Exists("rate_limit_window") {
		config.RateLimitWindow = k.Duration("rate_limit_window")
	}
	if k.Exists("bcrypt_cost") {
		config.BcryptCost = k.Int("bcrypt_cost")
	}
	if k.Exists("breaker_threshold") {
		n := k.Int64("breaker_threshold")
		if n < 0 || n > math.MaxUint32 {
			return fmt.Errorf("breaker_threshold out of range: %d", n)
		}
		config.BreakerThreshold = uint32(n)
	}
	if k.Exists("rate_limit_requests") {
		config.RateLimitRequests = k.Int("rate_limit_requests")
	}
	if k.Exists("cors_allowed_origins") {
		config.CORSAllowedOrigins = splitList(k.String("cors_allowed_origins"))
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
