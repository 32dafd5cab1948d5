package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/config"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/orchestrator"
	"bulkscrape/internal/stash"
	"bulkscrape/internal/stashbox"
)

var (
	_ orchestrator.Catalog  = (*stash.Client)(nil)
	_ orchestrator.Registry = (*stashbox.Client)(nil)
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// ensureLogger builds the CLI logger once and reports config warnings on it.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		for _, warning := range cfg.Warnings {
			logging.WarnWithContext(logger, "configuration warning", "config_warning",
				logging.String("warning", warning),
				logging.String(logging.FieldImpact, "default value used"),
				logging.String(logging.FieldErrorHint, "fix the value in "+c.configPath),
			)
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// newController wires the catalog client, the registry factory and opts into
// an orchestrator for cfg.
func newController(cfg *config.Config, logger *slog.Logger, opts ...orchestrator.Option) *orchestrator.Controller {
	registry := func(box catalog.StashBox) orchestrator.Registry {
		return stashbox.New(box, cfg.RequestTimeout(), logger)
	}
	opts = append([]orchestrator.Option{orchestrator.WithRegistry(registry)}, opts...)
	return orchestrator.New(stash.NewFromConfig(cfg, logger), orchestrator.SettingsFromConfig(cfg), logger, opts...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
