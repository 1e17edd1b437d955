package cropper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"cropall/internal/fileutil"
	"cropall/internal/logging"
)

// ErrSkipped reports that a crop was not written because the output exists
// and overwriting was declined.
var ErrSkipped = errors.New("crop skipped")

// Confirmer decides whether an existing output file may be replaced.
type Confirmer interface {
	ConfirmOverwrite(ctx context.Context, path string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, path string) (bool, error)

func (f ConfirmFunc) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	return f(ctx, path)
}

// Options configures a Cropper.
type Options struct {
	JPEGQuality      int
	ConfirmOverwrite bool
	DryRun           bool
}

// Cropper writes cropped images.
type Cropper struct {
	opts      Options
	logger    *slog.Logger
	confirmer Confirmer
}

// New constructs a Cropper. A nil confirmer declines every overwrite when
// ConfirmOverwrite is set.
func New(opts Options, logger *slog.Logger, confirmer Confirmer) *Cropper {
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 95
	}
	return &Cropper{
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "cropper"),
		confirmer: confirmer,
	}
}

// Load decodes path with EXIF orientation applied.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Crop writes the r region of img to dst. The encoder is chosen from the dst
// extension. Existing files are replaced only when overwrite confirmation is
// off or the confirmer agrees; otherwise ErrSkipped is returned.
func (c *Cropper) Crop(ctx context.Context, img image.Image, r Rect, dst string) error {
	return c.CropSource(ctx, "", img, r, dst)
}

// CropSource is Crop for an image decoded from src. A full-frame crop into the
// same format copies src byte for byte instead of re-encoding it.
func (c *Cropper) CropSource(ctx context.Context, src string, img image.Image, r Rect, dst string) error {
	logger := logging.WithContext(ctx, c.logger)

	r = r.Clamp(img.Bounds())
	if r.Empty() {
		return fmt.Errorf("crop %s: empty rectangle", filepath.Base(dst))
	}

	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return fmt.Errorf("crop %s: %w", filepath.Base(dst), err)
	}

	if err := c.checkOverwrite(ctx, dst); err != nil {
		if errors.Is(err, ErrSkipped) {
			logger.Info("output exists, skipping", logging.String("output", dst))
		}
		return err
	}

	if c.opts.DryRun {
		logger.Info("dry run, not writing", logging.String("output", dst), logging.String("rect", r.String()))
		return nil
	}

	if c.canCopy(src, img, r, format) && src != dst {
		if err := fileutil.CopyFileVerified(src, dst); err != nil {
			return fmt.Errorf("copy %s: %w", filepath.Base(dst), err)
		}
		logger.Info("copied full frame", logging.String("output", dst))
		return nil
	}

	cropped := imaging.Crop(img, r.Image())
	if err := fileutil.WriteAtomic(dst, 0o644, func(f *os.File) error {
		return imaging.Encode(f, cropped, format, imaging.JPEGQuality(c.opts.JPEGQuality))
	}); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(dst), err)
	}

	logger.Info("cropped",
		logging.String("output", dst),
		logging.String("rect", r.String()),
	)
	return nil
}

func (c *Cropper) canCopy(src string, img image.Image, r Rect, dstFormat imaging.Format) bool {
	if src == "" || r != FromImage(img.Bounds()) {
		return false
	}
	srcFormat, err := imaging.FormatFromFilename(src)
	return err == nil && srcFormat == dstFormat
}

// CropFile loads src and writes the r region to dst.
func (c *Cropper) CropFile(ctx context.Context, src string, r Rect, dst string) error {
	img, err := Load(src)
	if err != nil {
		return err
	}
	return c.CropSource(ctx, src, img, r, dst)
}

func (c *Cropper) checkOverwrite(ctx context.Context, dst string) error {
	if !c.opts.ConfirmOverwrite {
		return nil
	}
	if _, err := os.Stat(dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dst, err)
	}
	if c.confirmer == nil {
		return ErrSkipped
	}
	ok, err := c.confirmer.ConfirmOverwrite(ctx, dst)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSkipped
	}
	return nil
}
