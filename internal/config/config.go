package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"cropall/internal/fileutil"
)

//go:embed cropall_default.toml
var defaultConfig []byte

// lockWait bounds how long Save polls for the config lock.
const lockWait = 2 * time.Second

// DefaultFileName is the name of the user configuration file.
const DefaultFileName = "cropall.toml"

// Cropall contains the batch-level settings: where images come from, where
// crops go, and how output files are named.
type Cropall struct {
	InputFolder     string `toml:"input_folder"`
	OutputFolder    string `toml:"output_folder"`
	AppendSuffix    bool   `toml:"append_suffix"`
	OutputSuffix    string `toml:"output_suffix"`
	FirstRun        bool   `toml:"first_run"`
	ImageExtensions string `toml:"image_extensions"`
}

// Cropper contains settings for the per-image crop step.
type Cropper struct {
	ConfirmOverwrite bool    `toml:"confirm_overwrite"`
	JPEGQuality      int     `toml:"jpeg_quality"`
	AspectRatio      string  `toml:"aspect_ratio"`
	AutoDetect       bool    `toml:"auto_detect"`
	BorderThreshold  int     `toml:"border_threshold"`
	InsetPercent     float64 `toml:"inset_percent"`
	StepPercent      float64 `toml:"step_percent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// History contains configuration for the crop history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for cropall.
//
// Configuration sections:
//   - Cropall: input/output folders, suffix naming, accepted extensions
//   - Cropper: overwrite confirmation, encoding quality, aspect and border detection
//   - Logging: log format, level, and optional file
//   - History: SQLite crop history
type Config struct {
	Cropall Cropall `toml:"cropall"`
	Cropper Cropper `toml:"cropper"`
	Logging Logging `toml:"logging"`
	History History `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return expandPath(filepath.Join(base, "cropall", DefaultFileName))
	}
	return expandPath("~/.config/cropall/" + DefaultFileName)
}

// Load reads the bundled defaults, layers the user file on top when it exists,
// then normalizes and validates the result. The returned string is the path
// the user file was (or would be) read from; the bool reports whether it existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if err := decodeInto(&cfg, bytes.NewReader(defaultConfig)); err != nil {
		return nil, "", false, fmt.Errorf("parse bundled defaults: %w", err)
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := decodeInto(&cfg, file); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	cfg.applyForcedRules()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decodeInto(cfg *Config, r io.Reader) error {
	decoder := toml.NewDecoder(r)
	return decoder.Decode(cfg)
}

// applyForcedRules enforces settings that override whatever the files say.
func (c *Config) applyForcedRules() {
	// Suffixed output can never clobber the source, so there is nothing to confirm.
	if c.Cropall.AppendSuffix {
		c.Cropper.ConfirmOverwrite = false
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(DefaultFileName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Save writes the configuration to path. The write goes through a temporary
// file and a rename while holding an exclusive lock beside the target, so two
// sessions exiting together cannot interleave their output.
func (c *Config) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("save config: empty path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockWait)
	defer cancel()
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock config: %s is held by another process", lock.Path())
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := fileutil.WriteAtomic(path, 0o644, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	}); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// RememberSession records the state a finished session leaves behind: the
// first-run flag is cleared and the input folder is remembered for the next
// directory picker.
func (c *Config) RememberSession(inputFolder string) {
	c.Cropall.FirstRun = false
	if strings.TrimSpace(inputFolder) != "" {
		c.Cropall.InputFolder = filepath.Clean(inputFolder)
	}
}

// EnsureDirectories creates directories the CLI writes into.
func (c *Config) EnsureDirectories() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dir := filepath.Dir(c.History.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		dir := filepath.Dir(c.Logging.File)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	return nil
}

// JPEGQualityOrDefault returns the configured JPEG quality, falling back to
// the repository default for out-of-range values.
func (c *Config) JPEGQualityOrDefault() int {
	if c.Cropper.JPEGQuality < 1 || c.Cropper.JPEGQuality > 100 {
		return defaultJPEGQuality
	}
	return c.Cropper.JPEGQuality
}

// StepFraction returns the TUI edge step as a fraction of the image dimension.
func (c *Config) StepFraction() float64 {
	return c.Cropper.StepPercent / 100
}

// InsetFraction returns the border-detection inset as a fraction.
func (c *Config) InsetFraction() float64 {
	return c.Cropper.InsetPercent / 100
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the bundled default configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
