// Package scanner lists the images a crop session will visit.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cropall/internal/logging"
	"cropall/internal/textutil"
)

// ErrNoImages reports that a directory holds no file with an accepted extension.
var ErrNoImages = errors.New("no images found")

// Scan returns the names of the files directly inside dir whose extension is
// in the whitespace-separated extensions list, compared case-insensitively.
// Subdirectories and non-matching files are ignored. Names come back in
// directory-listing order, which os.ReadDir sorts by filename. An empty,
// non-nil slice means nothing matched.
func Scan(ctx context.Context, logger *slog.Logger, dir, extensions string) ([]string, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "scanner"))
	logger.Info("scanning", logging.String("dir", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	accepted := textutil.NewExtensionSet(extensions)
	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !accepted.Contains(filepath.Ext(name)) {
			continue
		}
		logger.Debug("found image", logging.String("file", name))
		images = append(images, name)
	}

	logger.Info("scan complete", logging.Int("images", len(images)))
	return images, nil
}

// Require wraps Scan for callers that cannot proceed without images: an
// empty result becomes an error wrapping ErrNoImages that names the directory.
func Require(ctx context.Context, logger *slog.Logger, dir, extensions string) ([]string, error) {
	images, err := Scan(ctx, logger, dir, extensions)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w in '%s'", ErrNoImages, dir)
	}
	return images, nil
}
