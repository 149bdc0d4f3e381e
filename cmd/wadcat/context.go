package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"wadcat/internal/config"
	"wadcat/internal/logging"
)

type rootFlags struct {
	config    string
	input     string
	outputDir string
	index     string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *rootFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	runID string
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags, runID: logging.NewRunID()}
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}
	overridden := false
	if changed("input") {
		cfg.Paths.Input = c.flags.input
		overridden = true
	}
	if changed("output-dir") {
		cfg.Paths.OutputDir = c.flags.outputDir
		overridden = true
	}
	if changed("index") {
		cfg.Index.Enabled = true
		cfg.Index.Path = c.flags.index
		overridden = true
	}
	if changed("log-level") {
		cfg.Logging.Level = c.flags.logLevel
		overridden = true
	}
	if changed("log-format") {
		cfg.Logging.Format = c.flags.logFormat
		overridden = true
	}
	if !overridden {
		return nil
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	return nil
}

// logger builds the run logger. The returned func closes the log file.
func (c *commandContext) logger() (*slog.Logger, func() error, error) {
	if c.config == nil {
		return nil, nil, fmt.Errorf("configuration not loaded")
	}
	return logging.NewFromConfig(c.config, c.runID)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
