package config

import (
	"fmt"
	"net/url"
	"strings"
)

func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateCatalogConfig(&config.Catalog); err != nil {
		return fmt.Errorf("catalog config validation failed: %w", err)
	}

	if err := validateCacheConfig(&config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 || config.WriteTimeout <= 0 || config.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", config.RequestTimeout)
	}

	return nil
}

func validateCatalogConfig(config *CatalogConfig) error {
	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("catalog base URL must be an absolute http(s) URL, got %q", config.BaseURL)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive, got %v", config.Timeout)
	}

	if config.RateLimitInterval < 0 {
		return fmt.Errorf("rate limit interval cannot be negative, got %v", config.RateLimitInterval)
	}

	if config.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", config.RateLimitBurst)
	}

	if config.MaxBodyBytes < 1024 {
		return fmt.Errorf("max body bytes must be at least 1024, got %d", config.MaxBodyBytes)
	}

	return nil
}

func validateCacheConfig(config *CacheConfig) error {
	if config.RedisURL != "" {
		u, err := url.Parse(config.RedisURL)
		if err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			return fmt.Errorf("cache redis URL must use redis:// or rediss://")
		}
	}

	if config.MemoryEntries < 1 {
		return fmt.Errorf("memory entries must be at least 1, got %d", config.MemoryEntries)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	switch strings.ToLower(config.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level %q", config.Level)
	}
}
