package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Setup initializes Viper from environment variables and an optional config
// file. It must be called before Load.
func Setup(cfgFile string) error {
	loadEnvFile()
	setupViper(cfgFile)
	setDefaults()
	readConfigFile()

	if err := bindEnvironmentVariables(); err != nil {
		return fmt.Errorf("bind environment variables: %w", err)
	}

	applyDevelopmentLogging()
	return nil
}

// loadEnvFile loads .env file (ignores error if file doesn't exist).
func loadEnvFile() {
	_ = godotenv.Load()
}

// setupViper configures Viper for environment variable and config file reading.
func setupViper(cfgFile string) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("NEWSURL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
}

// readConfigFile reads the config file (ignores error if file doesn't exist).
func readConfigFile() {
	_ = viper.ReadInConfig()
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        DefaultAppName,
		"version":     DefaultVersion,
		"environment": DefaultEnvironment,
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"format":       "json",
		"development":  false,
		"output_paths": []string{"stderr"},
	})

	viper.SetDefault("server", map[string]any{
		"address":          DefaultServerAddress,
		"read_timeout":     DefaultReadTimeout.String(),
		"write_timeout":    DefaultWriteTimeout.String(),
		"idle_timeout":     DefaultIdleTimeout.String(),
		"shutdown_timeout": DefaultShutdownTimeout.String(),
	})

	viper.SetDefault("resolver", map[string]any{
		"endpoint":       DefaultEndpoint,
		"user_agent":     DefaultUserAgent,
		"timeout":        DefaultResolveTimeout.String(),
		"max_body_bytes": DefaultMaxBodyBytes,
	})

	viper.SetDefault("feed", map[string]any{
		"language": DefaultFeedLanguage,
		"country":  DefaultFeedCountry,
		"edition":  DefaultFeedEdition,
		"limit":    DefaultFeedLimit,
	})
}

// bindEnvironmentVariables binds well-known unprefixed environment variables
// to config keys.
func bindEnvironmentVariables() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.format", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("bind LOG_FORMAT: %w", err)
	}
	return nil
}

// applyDevelopmentLogging adjusts logger settings from the app environment.
// APP_DEBUG controls the level alone; development mode also switches the
// encoding so the two can be combined independently.
func applyDevelopmentLogging() {
	if viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
	}
	if viper.GetString("app.environment") == "development" {
		viper.Set("logger.development", true)
		viper.Set("logger.format", "console")
	}
}
