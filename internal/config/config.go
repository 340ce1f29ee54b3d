// Package config provides configuration management for newsurl. Values come
// from defaults, an optional YAML config file, environment variables, and
// command-line flags, in increasing order of precedence, all through Viper.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/newsurl/internal/logger"
)

// Default configuration values.
const (
	DefaultAppName     = "newsurl"
	DefaultVersion     = "0.1.0"
	DefaultEnvironment = "production"

	DefaultServerAddress   = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultEndpoint is the batch-execute RPC endpoint the resolver posts to.
	DefaultEndpoint = "https://news.google.com/_/DotsSplashUi/data/batchexecute"
	// DefaultUserAgent is a browser user agent; the endpoint rejects
	// obviously non-browser clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
		" (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36"
	DefaultResolveTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 10 * 1024 * 1024 // 10MB

	DefaultFeedLanguage = "en-US"
	DefaultFeedCountry  = "US"
	DefaultFeedEdition  = "US:en"
	DefaultFeedLimit    = 20
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   logger.Config  `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Feed     FeedConfig     `mapstructure:"feed"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server configuration for serve mode.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ResolverConfig holds the redirect resolver configuration.
type ResolverConfig struct {
	// Endpoint is the batch-execute RPC URL.
	Endpoint string `mapstructure:"endpoint"`
	// UserAgent is sent on both the page fetch and the RPC call.
	UserAgent string `mapstructure:"user_agent"`
	// Timeout bounds one whole resolve operation (both network calls).
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// FeedConfig holds Google News RSS feed discovery configuration.
type FeedConfig struct {
	Language string `mapstructure:"language"`
	Country  string `mapstructure:"country"`
	Edition  string `mapstructure:"edition"`
	Limit    int    `mapstructure:"limit"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load unmarshals the current Viper state into a Config and validates it.
// Setup must have been called first.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Resolver.Validate(); err != nil {
		return err
	}
	return c.Feed.Validate()
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return &ValidationError{Field: "server.address", Message: "is required"}
	}
	return nil
}

// Validate validates the resolver configuration.
func (c *ResolverConfig) Validate() error {
	if c.Endpoint == "" {
		return &ValidationError{Field: "resolver.endpoint", Message: "is required"}
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "resolver.endpoint", Message: "must be an absolute URL"}
	}
	if c.UserAgent == "" {
		return &ValidationError{Field: "resolver.user_agent", Message: "is required"}
	}
	if c.Timeout <= 0 {
		return &ValidationError{Field: "resolver.timeout", Message: "must be positive"}
	}
	if c.MaxBodyBytes <= 0 {
		return &ValidationError{Field: "resolver.max_body_bytes", Message: "must be positive"}
	}
	return nil
}

// Validate validates the feed configuration.
func (c *FeedConfig) Validate() error {
	if c.Limit < 1 {
		return &ValidationError{Field: "feed.limit", Message: "must be at least 1"}
	}
	return nil
}
