package config

import (
	"errors"
	"fmt"

	"wadcat/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateParse(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateIndex(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateParse() error {
	if c.Parse.HeaderMarker == "" {
		return errors.New("parse.header_marker must be set")
	}
	if err := textutil.CheckEncoding(c.Parse.InputEncoding); err != nil {
		return fmt.Errorf("parse.input_encoding: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Indent < 0 || c.Output.Indent > maxIndent {
		return fmt.Errorf("output.indent must be between 0 and %d", maxIndent)
	}
	return nil
}

func (c *Config) validateIndex() error {
	if c.Index.Enabled && c.Index.Path == "" {
		return errors.New("index.path must be set when index.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}
