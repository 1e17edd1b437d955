package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cropall/internal/cropper"
	"cropall/internal/history"
	"cropall/internal/logging"
	"cropall/internal/naming"
)

// LockFileName is created inside the output folder while a session runs.
const LockFileName = ".cropall.lock"

// ErrNoDirectory reports that no input folder was given or picked.
var ErrNoDirectory = errors.New("no directory selected")

// ErrLocked reports that another session holds the output folder.
var ErrLocked = errors.New("output folder is in use by another cropall session")

// History is the subset of the history store a session uses.
type History interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
	Last(ctx context.Context, inputPath string) (history.Entry, bool, error)
}

// Options configures Run.
type Options struct {
	InputDir     string
	OutputDir    string
	Images       []string
	AppendSuffix bool
	Suffix       string

	Selector Selector
	Cropper  *cropper.Cropper
	History  History // optional
	Logger   *slog.Logger

	// SessionID tags logs and history rows; generated when empty.
	SessionID string

	Detect          bool
	BorderThreshold int
	Inset           float64
	Aspect          cropper.Aspect
	// ReusePrevious starts an image from its last recorded crop when the
	// source size still matches.
	ReusePrevious bool
}

// Status is the outcome for one image.
type Status string

const (
	StatusCropped Status = "cropped"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome for one image.
type Result struct {
	Name   string
	Output string
	Status Status
	Rect   cropper.Rect
	Err    error
}

// Summary totals a session.
type Summary struct {
	SessionID string
	Cropped   int
	Skipped   int
	Failed    int
	// Quit is set when the selector ended the session early.
	Quit    bool
	Elapsed time.Duration
	Results []Result
}

// Run visits opts.Images in order. It returns an error only when the session
// cannot start or the selector fails; per-image failures land in Summary.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Selector == nil || opts.Cropper == nil {
		return Summary{}, errors.New("session requires a selector and a cropper")
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	ctx = logging.WithSessionID(ctx, opts.SessionID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "session"))

	summary := Summary{SessionID: opts.SessionID}
	started := time.Now()

	if err := ensureOutputDir(opts.OutputDir, logger); err != nil {
		return summary, err
	}

	lock := flock.New(filepath.Join(opts.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("lock output folder: %w", err)
	}
	if !locked {
		return summary, fmt.Errorf("%w: %s", ErrLocked, opts.OutputDir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	logger.Info("session started",
		logging.String("input", opts.InputDir),
		logging.String("output", opts.OutputDir),
		logging.Int("images", len(opts.Images)),
	)

	for idx, name := range opts.Images {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(started)
			return summary, err
		}

		result, action, err := processImage(ctx, opts, idx, name)
		if err != nil {
			summary.Elapsed = time.Since(started)
			return summary, err
		}
		if action == ActionQuit {
			summary.Quit = true
			logger.Info("session ended by user", logging.Int("remaining", len(opts.Images)-idx))
			break
		}
		summary.Results = append(summary.Results, result)
		switch result.Status {
		case StatusCropped:
			summary.Cropped++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}
	}

	summary.Elapsed = time.Since(started)
	logger.Info("session finished",
		logging.Int("cropped", summary.Cropped),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func processImage(ctx context.Context, opts Options, idx int, name string) (Result, Action, error) {
	ctx = logging.WithImage(ctx, name)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "session"))

	src := filepath.Join(opts.InputDir, name)
	dst := filepath.Join(opts.OutputDir, naming.OutputFilename(name, opts.AppendSuffix, opts.Suffix))
	result := Result{Name: name, Output: dst}

	img, err := cropper.Load(src)
	if err != nil {
		logger.Warn("image could not be decoded", logging.Error(err))
		result.Status, result.Err = StatusFailed, err
		return result, ActionSkip, nil
	}

	frame := Frame{
		Index:  idx,
		Total:  len(opts.Images),
		Name:   name,
		Path:   src,
		Output: dst,
		Image:  img,
		Aspect: opts.Aspect,
	}
	if _, err := os.Stat(dst); err == nil {
		frame.OutputExists = true
	}
	frame.Detected, frame.Initial = initialRect(ctx, opts, src, img, logger)

	decision, err := opts.Selector.Select(ctx, frame)
	if err != nil {
		return result, ActionQuit, fmt.Errorf("select crop for %s: %w", name, err)
	}

	switch decision.Action {
	case ActionQuit:
		return result, ActionQuit, nil
	case ActionSkip:
		logger.Info("skipped")
		result.Status = StatusSkipped
		return result, ActionSkip, nil
	}

	rect := decision.Rect.Clamp(img.Bounds())
	result.Rect = rect
	if err := opts.Cropper.CropSource(ctx, src, img, rect, dst); err != nil {
		if errors.Is(err, cropper.ErrSkipped) {
			result.Status = StatusSkipped
			return result, ActionSkip, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ActionQuit, ctxErr
		}
		logger.Warn("crop failed", logging.Error(err))
		result.Status, result.Err = StatusFailed, err
		return result, ActionCrop, nil
	}
	result.Status = StatusCropped

	if opts.History != nil {
		b := img.Bounds()
		if _, err := opts.History.Record(ctx, history.Entry{
			SessionID:    opts.SessionID,
			InputPath:    src,
			OutputPath:   dst,
			Rect:         rect,
			SourceWidth:  b.Dx(),
			SourceHeight: b.Dy(),
		}); err != nil {
			logger.Warn("history record failed", logging.Error(err))
		}
	}
	return result, ActionCrop, nil
}

// initialRect returns the detected border (full frame when detection is off)
// and the suggested starting rectangle.
func initialRect(ctx context.Context, opts Options, src string, img image.Image, logger *slog.Logger) (cropper.Rect, cropper.Rect) {
	bounds := img.Bounds()
	full := cropper.FromImage(bounds)
	detected := full
	if opts.Detect {
		detected = cropper.DetectBorders(img, opts.BorderThreshold, opts.Inset)
		if detected != full {
			logger.Debug("border detected", logging.String("rect", detected.String()))
		}
	}

	if opts.ReusePrevious && opts.History != nil {
		last, ok, err := opts.History.Last(ctx, src)
		if err != nil {
			logger.Warn("history lookup failed", logging.Error(err))
		} else if ok && last.SourceWidth == bounds.Dx() && last.SourceHeight == bounds.Dy() {
			logger.Debug("reusing previous crop", logging.String("rect", last.Rect.String()))
			return detected, last.Rect.Clamp(bounds)
		}
	}
	return detected, cropper.ConstrainAspect(detected, opts.Aspect, bounds)
}

func ensureOutputDir(dir string, logger *slog.Logger) error {
	if dir == "" {
		return errors.New("output folder is empty")
	}
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("output folder %s is not a directory", dir)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat output folder: %w", err)
	}
	logger.Info("creating output directory", logging.String("dir", dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}
	return nil
}
