package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCropall(); err != nil {
		return err
	}
	if err := c.validateCropper(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCropall() error {
	if strings.TrimSpace(c.Cropall.ImageExtensions) == "" {
		return errors.New("cropall.image_extensions must list at least one extension")
	}
	if strings.ContainsAny(c.Cropall.OutputSuffix, `/\`) {
		return fmt.Errorf("cropall.output_suffix %q must not contain path separators", c.Cropall.OutputSuffix)
	}
	return nil
}

func (c *Config) validateCropper() error {
	if c.Cropper.JPEGQuality < 1 || c.Cropper.JPEGQuality > 100 {
		return errors.New("cropper.jpeg_quality must be between 1 and 100")
	}
	if c.Cropper.BorderThreshold < 0 || c.Cropper.BorderThreshold > 255 {
		return errors.New("cropper.border_threshold must be between 0 and 255")
	}
	if c.Cropper.InsetPercent < 0 || c.Cropper.InsetPercent >= 50 {
		return errors.New("cropper.inset_percent must be >= 0 and < 50")
	}
	if c.Cropper.StepPercent <= 0 || c.Cropper.StepPercent > 50 {
		return errors.New("cropper.step_percent must be > 0 and <= 50")
	}
	if err := validateAspect(c.Cropper.AspectRatio); err != nil {
		return fmt.Errorf("cropper.aspect_ratio: %w", err)
	}
	return nil
}

func validateAspect(value string) error {
	if value == "free" {
		return nil
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%q is not \"free\" or W:H", value)
	}
	for _, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%q is not \"free\" or W:H", value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}
