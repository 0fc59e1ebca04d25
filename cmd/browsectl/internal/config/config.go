// Package config loads browsectl settings from .browsectl.yaml, BROWSECTL_*
// environment variables and flags.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Preview PreviewConfig `mapstructure:"preview"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ServerConfig points at a running plugin-browser proxy.
type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type BrowseConfig struct {
	PerPage int    `mapstructure:"per_page"`
	Sort    string `mapstructure:"sort"`
}

// PreviewConfig tunes screenshot probing.
type PreviewConfig struct {
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchPause   time.Duration `mapstructure:"batch_pause"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// AdminConfig holds either a ready token or the secret to sign one.
type AdminConfig struct {
	Token  string `mapstructure:"token"`
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration. v may carry flag bindings; nil uses a fresh
// instance.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".browsectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/browsectl")
	}

	v.SetEnvPrefix("BROWSECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "http://localhost:9010")
	v.SetDefault("server.timeout", 30*time.Second)

	v.SetDefault("browse.per_page", 12)
	v.SetDefault("browse.sort", "popular")

	v.SetDefault("preview.probe_timeout", 2*time.Second)
	v.SetDefault("preview.batch_size", 3)
	v.SetDefault("preview.batch_pause", 100*time.Millisecond)
	v.SetDefault("preview.user_agent", "browsectl")

	v.SetDefault("admin.token", "")
	v.SetDefault("admin.secret", "")
	v.SetDefault("admin.issuer", "plugin-browser")

	v.SetDefault("logging.level", "info")
	v.SetDefault("output.colors", true)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url: %q", cfg.Server.URL)
	}
	if cfg.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", cfg.Server.Timeout)
	}
	if cfg.Browse.PerPage < 1 || cfg.Browse.PerPage > 100 {
		return fmt.Errorf("browse.per_page must be between 1 and 100, got %d", cfg.Browse.PerPage)
	}
	switch cfg.Browse.Sort {
	case "popular", "new", "updated":
	default:
		return fmt.Errorf("invalid browse.sort: %s (must be popular, new, or updated)", cfg.Browse.Sort)
	}
	if cfg.Preview.ProbeTimeout <= 0 {
		return fmt.Errorf("preview.probe_timeout must be positive")
	}
	if cfg.Preview.BatchSize < 1 {
		return fmt.Errorf("preview.batch_size must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}
	return nil
}
