package testsupport

import (
	"path/filepath"
	"testing"

	"cropall/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose history database lives in a fresh temp
// directory and whose logging is quiet. Options are applied last.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.History.Path = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSuffix enables suffixed output names.
func WithSuffix(suffix string) ConfigOption {
	return func(c *config.Config) {
		c.Cropall.AppendSuffix = true
		c.Cropall.OutputSuffix = suffix
		c.Cropper.ConfirmOverwrite = false
	}
}

// WithOutputFolder overrides cropall.output_folder.
func WithOutputFolder(name string) ConfigOption {
	return func(c *config.Config) {
		c.Cropall.OutputFolder = name
	}
}

// WithoutHistory disables the history database.
func WithoutHistory() ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.History.Path)
}

// WriteConfig saves cfg to path, failing the test on error.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
}
