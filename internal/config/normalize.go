package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCropall(); err != nil {
		return err
	}
	c.normalizeCropper()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeHistory()
}

func (c *Config) normalizeCropall() error {
	var err error
	c.Cropall.InputFolder = strings.TrimSpace(c.Cropall.InputFolder)
	if c.Cropall.InputFolder, err = expandPath(c.Cropall.InputFolder); err != nil {
		return fmt.Errorf("cropall.input_folder: %w", err)
	}
	c.Cropall.OutputFolder = strings.TrimSpace(c.Cropall.OutputFolder)
	if c.Cropall.OutputFolder == "" {
		c.Cropall.OutputFolder = defaultOutputFolder
	}
	if strings.HasPrefix(c.Cropall.OutputFolder, "~") {
		if c.Cropall.OutputFolder, err = expandPath(c.Cropall.OutputFolder); err != nil {
			return fmt.Errorf("cropall.output_folder: %w", err)
		}
	}
	if c.Cropall.OutputSuffix == "" {
		c.Cropall.OutputSuffix = defaultOutputSuffix
	}
	c.Cropall.ImageExtensions = normalizeExtensions(c.Cropall.ImageExtensions)
	if c.Cropall.ImageExtensions == "" {
		c.Cropall.ImageExtensions = defaultImageExtensions
	}
	return nil
}

// normalizeExtensions lowercases the list, adds missing leading dots, and
// drops duplicates while keeping the first-seen order.
func normalizeExtensions(value string) string {
	fields := strings.Fields(value)
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		ext := strings.ToLower(field)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext == "." {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return strings.Join(out, " ")
}

func (c *Config) normalizeCropper() {
	c.Cropper.AspectRatio = strings.ToLower(strings.TrimSpace(c.Cropper.AspectRatio))
	if c.Cropper.AspectRatio == "" {
		c.Cropper.AspectRatio = defaultAspectRatio
	}
	if c.Cropper.StepPercent == 0 {
		c.Cropper.StepPercent = defaultStepPercent
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
