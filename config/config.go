package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig  `json:"server"`
	Catalog CatalogConfig `json:"catalog"`
	Cache   CacheConfig   `json:"cache"`
	Logging LoggingConfig `json:"logging"`
	Admin   AdminConfig   `json:"admin"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9010"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
	RequestTimeout  time.Duration `json:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" default:"25s"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  string        `json:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// CatalogConfig describes the upstream plugin directory API.
type CatalogConfig struct {
	BaseURL           string        `json:"base_url" env:"CATALOG_API_URL" default:"https://api.wordpress.org/plugins/info/1.2/"`
	Timeout           time.Duration `json:"timeout" env:"CATALOG_API_TIMEOUT" default:"15s"`
	UserAgent         string        `json:"user_agent" env:"CATALOG_USER_AGENT" default:"plugin-browser/1.0"`
	RateLimitInterval time.Duration `json:"rate_limit_interval" env:"CATALOG_RATE_LIMIT_INTERVAL" default:"0s"`
	RateLimitBurst    int           `json:"rate_limit_burst" env:"CATALOG_RATE_LIMIT_BURST" default:"1"`
	MaxBodyBytes      int64         `json:"max_body_bytes" env:"CATALOG_MAX_BODY_BYTES" default:"8388608"`
}

// CacheConfig picks the query cache backend. Redis is used when RedisURL is
// set; otherwise an in-process LRU holds up to MemoryEntries responses.
type CacheConfig struct {
	RedisURL      string `json:"-" env:"CACHE_REDIS_URL"`
	MemoryEntries int    `json:"memory_entries" env:"CACHE_MEMORY_ENTRIES" default:"1024"`
}

type LoggingConfig struct {
	Level string `json:"level" env:"LOG_LEVEL" default:"info"`
}

// AdminConfig gates the cache admin routes. An empty secret leaves them open.
type AdminConfig struct {
	TokenSecret     string `json:"-" env:"ADMIN_TOKEN_SECRET"`
	TokenSecretFile string `json:"-" env:"ADMIN_TOKEN_SECRET_FILE"`
	TokenIssuer     string `json:"token_issuer" env:"ADMIN_TOKEN_ISSUER" default:"plugin-browser"`
}

// NewConfig reads an optional .env file, then the environment.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	if config.Admin.TokenSecretFile != "" {
		if content, err := os.ReadFile(config.Admin.TokenSecretFile); err == nil {
			config.Admin.TokenSecret = strings.TrimSpace(string(content))
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// AdminGated reports whether admin routes require a bearer token.
func (c *Config) AdminGated() bool {
	return c.Admin.TokenSecret != ""
}
