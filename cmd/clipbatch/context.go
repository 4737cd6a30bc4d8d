package main

import (
	"log/slog"
	"strings"
	"sync"

	"clipbatch/internal/config"
	"clipbatch/internal/logging"
)

// commandContext shares lazily-loaded tool settings and the logger across
// subcommands.
type commandContext struct {
	settingsFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(settingsFlag *string) *commandContext {
	return &commandContext{settingsFlag: settingsFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.settingsFlag != nil {
			path = strings.TrimSpace(*c.settingsFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}
