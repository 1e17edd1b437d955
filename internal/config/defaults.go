package config

const (
	defaultOutputFolder     = "crops"
	defaultOutputSuffix     = "-crop"
	defaultImageExtensions  = ".jpg .jpeg .png .bmp .gif .tif .tiff"
	defaultJPEGQuality      = 95
	defaultAspectRatio      = "free"
	defaultBorderThreshold  = 24
	defaultInsetPercent     = 0.5
	defaultStepPercent      = 1.0
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultHistoryPath      = "~/.local/share/cropall/history.db"
	defaultHistoryEnabled   = true
	defaultConfirmOverwrite = true
)

// Default returns a Config populated with repository defaults. Load layers the
// bundled cropall_default.toml over these values, so the two should agree.
func Default() Config {
	return Config{
		Cropall: Cropall{
			OutputFolder:    defaultOutputFolder,
			OutputSuffix:    defaultOutputSuffix,
			FirstRun:        true,
			ImageExtensions: defaultImageExtensions,
		},
		Cropper: Cropper{
			ConfirmOverwrite: defaultConfirmOverwrite,
			JPEGQuality:      defaultJPEGQuality,
			AspectRatio:      defaultAspectRatio,
			BorderThreshold:  defaultBorderThreshold,
			InsetPercent:     defaultInsetPercent,
			StepPercent:      defaultStepPercent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
	}
}
