package common

import (
	"fmt"

	"github.com/jonesrussell/newsurl/internal/config"
	"github.com/jonesrussell/newsurl/internal/httpclient"
	"github.com/jonesrussell/newsurl/internal/logger"
	"github.com/jonesrussell/newsurl/internal/resolver"
)

// NewCommandDeps creates CommandDeps by loading config and creating the
// logger. Config setup must have run first.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Config: cfg,
		Logger: log.With(logger.String("service", cfg.App.Name)),
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// NewResolver builds a resolver from the loaded configuration.
func NewResolver(deps CommandDeps) *resolver.Resolver {
	client := httpclient.New(httpclient.Config{
		Timeout: deps.Config.Resolver.Timeout,
	})

	return resolver.New(resolver.Config{
		Endpoint:     deps.Config.Resolver.Endpoint,
		UserAgent:    deps.Config.Resolver.UserAgent,
		MaxBodyBytes: deps.Config.Resolver.MaxBodyBytes,
	}, client, deps.Logger)
}
