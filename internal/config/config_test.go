package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// setupTest resets global Viper state and runs Setup so each test starts
// from pristine defaults. Tests in this file must not run in parallel.
func setupTest(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := Setup(""); err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setupTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	assertStringEqual(t, "app.name", DefaultAppName, cfg.App.Name)
	assertStringEqual(t, "app.environment", DefaultEnvironment, cfg.App.Environment)
	assertStringEqual(t, "server.address", DefaultServerAddress, cfg.Server.Address)
	assertStringEqual(t, "resolver.endpoint", DefaultEndpoint, cfg.Resolver.Endpoint)
	assertStringEqual(t, "resolver.user_agent", DefaultUserAgent, cfg.Resolver.UserAgent)
	assertStringEqual(t, "feed.language", DefaultFeedLanguage, cfg.Feed.Language)
	assertStringEqual(t, "logger.level", "info", cfg.Logger.Level)

	if cfg.Resolver.Timeout != DefaultResolveTimeout {
		t.Errorf("resolver.timeout: got %v, want %v", cfg.Resolver.Timeout, DefaultResolveTimeout)
	}
	if cfg.Resolver.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("resolver.max_body_bytes: got %d, want %d", cfg.Resolver.MaxBodyBytes, int64(DefaultMaxBodyBytes))
	}
	if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("server.shutdown_timeout: got %v, want %v", cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.Feed.Limit != DefaultFeedLimit {
		t.Errorf("feed.limit: got %d, want %d", cfg.Feed.Limit, DefaultFeedLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NEWSURL_RESOLVER_TIMEOUT", "5s")
	t.Setenv("NEWSURL_SERVER_ADDRESS", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	setupTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Resolver.Timeout != 5*time.Second {
		t.Errorf("resolver.timeout: got %v, want 5s", cfg.Resolver.Timeout)
	}
	assertStringEqual(t, "server.address", ":9999", cfg.Server.Address)
	assertStringEqual(t, "logger.level", "debug", cfg.Logger.Level)
}

func TestLoad_DebugForcesDebugLevel(t *testing.T) {
	t.Setenv("APP_DEBUG", "true")
	setupTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertStringEqual(t, "logger.level", "debug", cfg.Logger.Level)
}

func TestLoad_DevelopmentSwitchesConsole(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	setupTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Logger.Development {
		t.Error("logger.development: got false, want true in development environment")
	}
	assertStringEqual(t, "logger.format", "console", cfg.Logger.Format)
}

func TestValidate_BadResolverValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ResolverConfig)
		field  string
	}{
		{"empty endpoint", func(c *ResolverConfig) { c.Endpoint = "" }, "resolver.endpoint"},
		{"relative endpoint", func(c *ResolverConfig) { c.Endpoint = "/batchexecute" }, "resolver.endpoint"},
		{"empty user agent", func(c *ResolverConfig) { c.UserAgent = "" }, "resolver.user_agent"},
		{"zero timeout", func(c *ResolverConfig) { c.Timeout = 0 }, "resolver.timeout"},
		{"zero body cap", func(c *ResolverConfig) { c.MaxBodyBytes = 0 }, "resolver.max_body_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validResolverConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if vErr.Field != tt.field {
				t.Errorf("field: got %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestValidate_FeedLimit(t *testing.T) {
	cfg := FeedConfig{Limit: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero feed limit, got nil")
	}
}

// validResolverConfig returns a resolver config that passes validation.
func validResolverConfig() ResolverConfig {
	return ResolverConfig{
		Endpoint:     DefaultEndpoint,
		UserAgent:    DefaultUserAgent,
		Timeout:      DefaultResolveTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// assertStringEqual is a test helper that checks string equality.
func assertStringEqual(t *testing.T, field, want, got string) {
	t.Helper()

	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}
