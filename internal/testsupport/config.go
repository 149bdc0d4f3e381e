package testsupport

import (
	"path/filepath"
	"testing"

	"wadcat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose input and output paths live in a unique
// temp directory per test. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Input = filepath.Join(base, "hashes.csv")
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Index.Path = filepath.Join(base, "hashes.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithInput writes content to the configured input listing.
func WithInput(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteInput(b.t, b.cfg.Paths.Input, content)
	}
}

// WithIndex enables the hash index at its temp-directory location.
func WithIndex() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Index.Enabled = true
	}
}

// WithOutputDir points document output at a subdirectory of the test base dir.
func WithOutputDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputDir = filepath.Join(b.baseDir, name)
	}
}

// WithoutLock disables the output directory lock.
func WithoutLock() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Lock = false
	}
}
