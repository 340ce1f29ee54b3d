// Package common provides shared utilities for command implementations.
package common

import (
	"github.com/jonesrussell/newsurl/internal/config"
	"github.com/jonesrussell/newsurl/internal/logger"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Config *config.Config
	Logger logger.Logger
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}
