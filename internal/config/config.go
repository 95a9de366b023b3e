// Package config loads the server configuration: compiled defaults,
// then an optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ProviderConfig configures the upstream gateway client.
type ProviderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

// CacheConfig configures the response cache. An empty RedisURL selects
// the in-process store.
type CacheConfig struct {
	RedisURL   string        `yaml:"redis_url"`
	QuoteTTL   time.Duration `yaml:"quote_ttl"`
	TopicTTL   time.Duration `yaml:"topic_ttl"`
	StaticTTL  time.Duration `yaml:"static_ttl"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig configures the local SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures session issuing.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	SeedDemo  bool   `yaml:"seed_demo"`
}

// LoggingConfig configures the zerolog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:   "https://api.fundgw.example.com/v1",
			Timeout:   10 * time.Second,
			RateLimit: 10,
			Burst:     20,
		},
		Cache: CacheConfig{
			QuoteTTL:   60 * time.Second,
			TopicTTL:   time.Hour,
			StaticTTL:  30 * time.Minute,
			DefaultTTL: 5 * time.Minute,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "data/fundboard.db",
		},
		Auth: AuthConfig{
			SeedDemo: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. A non-empty path must name a readable
// YAML file; environment variables override both defaults and file
// values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Environment variable names.
const (
	EnvProviderBaseURL = "PROVIDER_BASE_URL"
	EnvProviderAPIKey  = "PROVIDER_API_KEY"
	EnvProviderTimeout = "PROVIDER_TIMEOUT"
	EnvCacheTTLQuote   = "CACHE_TTL_QUOTE"
	EnvCacheTTLTopic   = "CACHE_TTL_TOPIC"
	EnvCacheTTLStatic  = "CACHE_TTL_STATIC"
	EnvCacheTTLDefault = "CACHE_TTL_DEFAULT"
	EnvRedisURL        = "REDIS_URL"
	EnvPort            = "PORT"
	EnvDatabasePath    = "DATABASE_PATH"
	EnvJWTSecret       = "JWT_SECRET"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFile         = "LOG_FILE"
)

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvProviderBaseURL); v != "" {
		cfg.Provider.BaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvProviderAPIKey); v != "" {
		cfg.Provider.APIKey = strings.TrimSpace(v)
	}
	if err := envDuration(EnvProviderTimeout, &cfg.Provider.Timeout); err != nil {
		return err
	}
	if err := envDuration(EnvCacheTTLQuote, &cfg.Cache.QuoteTTL); err != nil {
		return err
	}
	if err := envDuration(EnvCacheTTLTopic, &cfg.Cache.TopicTTL); err != nil {
		return err
	}
	if err := envDuration(EnvCacheTTLStatic, &cfg.Cache.StaticTTL); err != nil {
		return err
	}
	if err := envDuration(EnvCacheTTLDefault, &cfg.Cache.DefaultTTL); err != nil {
		return err
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.Cache.RedisURL = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.Database.Path = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = strings.TrimSpace(v)
	}
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = d
	return nil
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks every field the server cannot run without.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required (set %s)", EnvProviderAPIKey)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be greater than 0")
	}
	if c.Provider.RateLimit <= 0 {
		return fmt.Errorf("provider.rate_limit must be greater than 0")
	}
	if c.Provider.Burst <= 0 {
		return fmt.Errorf("provider.burst must be greater than 0")
	}
	if c.Cache.QuoteTTL <= 0 || c.Cache.TopicTTL <= 0 || c.Cache.StaticTTL <= 0 || c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache TTLs must be greater than 0")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set %s)", EnvJWTSecret)
	}
	if !logLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
