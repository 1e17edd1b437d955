// Package naming derives where a cropped image is written.
package naming

import (
	"path/filepath"
	"strings"

	"cropall/internal/textutil"
)

// DefaultSuffix is inserted when suffix appending is on and no suffix is configured.
const DefaultSuffix = "-crop"

// OutputFilename returns the name a crop of input is saved under. With
// appendSuffix off the name is returned unchanged; with it on, suffix (or
// DefaultSuffix when empty) goes between the base name and the extension:
// "photo.jpg" becomes "photo-crop.jpg".
func OutputFilename(input string, appendSuffix bool, suffix string) string {
	if !appendSuffix {
		return input
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	suffix = textutil.SanitizeFileName(suffix)
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + suffix + ext
}

// OutputFolder resolves the configured output folder against the input
// folder. Relative names become subfolders of input; absolute paths are kept.
func OutputFolder(input, outputFolder string) string {
	if filepath.IsAbs(outputFolder) {
		return filepath.Clean(outputFolder)
	}
	return filepath.Join(input, outputFolder)
}

// OutputPath joins OutputFolder and OutputFilename.
func OutputPath(inputDir, outputFolder, filename string, appendSuffix bool, suffix string) string {
	return filepath.Join(OutputFolder(inputDir, outputFolder), OutputFilename(filename, appendSuffix, suffix))
}
