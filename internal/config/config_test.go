package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cropall/internal/config"
)

func TestLoadDefaultsWhenNoUserFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantPath := filepath.Join(tempHome, ".config", "cropall", "cropall.toml")
	if resolved != wantPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, wantPath)
	}

	if cfg.Cropall.OutputFolder != "crops" {
		t.Fatalf("unexpected output folder: %q", cfg.Cropall.OutputFolder)
	}
	if cfg.Cropall.AppendSuffix {
		t.Fatal("expected append_suffix disabled by default")
	}
	if cfg.Cropall.OutputSuffix != "-crop" {
		t.Fatalf("unexpected output suffix: %q", cfg.Cropall.OutputSuffix)
	}
	if !cfg.Cropall.FirstRun {
		t.Fatal("expected first_run true by default")
	}
	if !cfg.Cropper.ConfirmOverwrite {
		t.Fatal("expected confirm_overwrite true by default")
	}
	if cfg.Cropall.ImageExtensions != ".jpg .jpeg .png .bmp .gif .tif .tiff" {
		t.Fatalf("unexpected extensions: %q", cfg.Cropall.ImageExtensions)
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "cropall", "history.db")
	if cfg.History.Path != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, wantHistory)
	}
}

func TestBundledDefaultsMatchDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var fromFile config.Config
	if err := toml.Unmarshal(contents, &fromFile); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	want := config.Default()
	if fromFile.Cropall != want.Cropall {
		t.Fatalf("cropall section drifted: file %+v default %+v", fromFile.Cropall, want.Cropall)
	}
	if fromFile.Cropper != want.Cropper {
		t.Fatalf("cropper section drifted: file %+v default %+v", fromFile.Cropper, want.Cropper)
	}
	if fromFile.History != want.History {
		t.Fatalf("history section drifted: file %+v default %+v", fromFile.History, want.History)
	}
}

func TestLoadLayersUserFileOverDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cropall.toml")
	writeFile(t, configPath, `
[cropall]
output_folder = "out"
image_extensions = "PNG .Jpg .png"

[cropper]
jpeg_quality = 80
`)

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Cropall.OutputFolder != "out" {
		t.Fatalf("expected output folder override, got %q", cfg.Cropall.OutputFolder)
	}
	if cfg.Cropall.ImageExtensions != ".png .jpg" {
		t.Fatalf("expected normalized extensions, got %q", cfg.Cropall.ImageExtensions)
	}
	if cfg.Cropper.JPEGQuality != 80 {
		t.Fatalf("expected jpeg quality 80, got %d", cfg.Cropper.JPEGQuality)
	}
	if cfg.Cropall.OutputSuffix != "-crop" {
		t.Fatalf("expected untouched keys to keep defaults, got suffix %q", cfg.Cropall.OutputSuffix)
	}
	if !cfg.Cropper.ConfirmOverwrite {
		t.Fatal("expected confirm_overwrite to keep its default")
	}
}

func TestAppendSuffixForcesConfirmOverwriteOff(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cropall.toml")
	writeFile(t, configPath, `
[cropall]
append_suffix = true

[cropper]
confirm_overwrite = true
`)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Cropper.ConfirmOverwrite {
		t.Fatal("expected confirm_overwrite forced off when append_suffix is true")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "cropall.toml")
	inputDir := filepath.Join(dir, "photos")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	cfg.RememberSession(inputDir)
	cfg.Cropall.AppendSuffix = true
	cfg.Cropall.OutputSuffix = "_trim"
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if _, err := os.Stat(configPath + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("expected lock file to be removed, stat err=%v", err)
	}

	reloaded, _, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected saved config to exist")
	}
	if reloaded.Cropall.FirstRun {
		t.Fatal("expected first_run false after RememberSession")
	}
	if reloaded.Cropall.InputFolder != inputDir {
		t.Fatalf("expected input folder %q, got %q", inputDir, reloaded.Cropall.InputFolder)
	}
	if reloaded.Cropall.OutputSuffix != "_trim" {
		t.Fatalf("expected suffix _trim, got %q", reloaded.Cropall.OutputSuffix)
	}
	if reloaded.Cropper.ConfirmOverwrite {
		t.Fatal("expected confirm_overwrite false after reload with append_suffix")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cropall.toml")
	writeFile(t, configPath, "[cropall\noutput_folder = ")

	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"jpeg quality", func(c *config.Config) { c.Cropper.JPEGQuality = 0 }, "cropper.jpeg_quality"},
		{"threshold", func(c *config.Config) { c.Cropper.BorderThreshold = 300 }, "cropper.border_threshold"},
		{"inset", func(c *config.Config) { c.Cropper.InsetPercent = 60 }, "cropper.inset_percent"},
		{"step", func(c *config.Config) { c.Cropper.StepPercent = -1 }, "cropper.step_percent"},
		{"aspect", func(c *config.Config) { c.Cropper.AspectRatio = "wide" }, "cropper.aspect_ratio"},
		{"aspect zero", func(c *config.Config) { c.Cropper.AspectRatio = "0:1" }, "cropper.aspect_ratio"},
		{"suffix separator", func(c *config.Config) { c.Cropall.OutputSuffix = "a/b" }, "cropall.output_suffix"},
		{"extensions", func(c *config.Config) { c.Cropall.ImageExtensions = " " }, "cropall.image_extensions"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"history path", func(c *config.Config) { c.History.Path = "" }, "history.path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error mentioning %s", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}

	cfg := config.Default()
	cfg.Cropper.AspectRatio = "3:2"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected 3:2 to validate, got %v", err)
	}
}

func TestCreateSampleIsValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropall.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample to load, exists=%v err=%v", exists, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
