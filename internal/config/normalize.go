package config

import (
	"fmt"
	"strings"

	"wadcat/internal/textutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeParse()
	if err := c.normalizeIndex(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

// Normalize re-applies normalization after fields were overridden in code,
// for example from command-line flags.
func (c *Config) Normalize() error {
	return c.normalize()
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.Input = strings.TrimSpace(c.Paths.Input)
	if c.Paths.Input == "" {
		c.Paths.Input = defaultInput
	}
	if c.Paths.Input, err = expandHome(c.Paths.Input); err != nil {
		return fmt.Errorf("paths.input: %w", err)
	}
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandHome(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

// The marker is kept verbatim; the default one ends in a space.
func (c *Config) normalizeParse() {
	c.Parse.InputEncoding = textutil.NormalizeEncoding(c.Parse.InputEncoding)
}

func (c *Config) normalizeIndex() error {
	var err error
	c.Index.Path = strings.TrimSpace(c.Index.Path)
	if c.Index.Path, err = expandHome(c.Index.Path); err != nil {
		return fmt.Errorf("index.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	var err error
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File, err = expandHome(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
