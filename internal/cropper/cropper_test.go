package cropper_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"cropall/internal/cropper"
	"cropall/internal/logging"
)

// framed returns a w x h image with a dark border of the given width around
// a light interior.
func framed(w, h, border int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	light := color.NRGBA{R: 230, G: 220, B: 210, A: 255}
	for y := border; y < h-border; y++ {
		for x := border; x < w-border; x++ {
			img.Set(x, y, light)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func TestCropFileWritesRectSize(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "in.png", framed(120, 80, 10))
	dst := filepath.Join(dir, "out", "in.jpg")

	c := cropper.New(cropper.Options{JPEGQuality: 90}, logging.NewNop(), nil)
	if err := c.CropFile(context.Background(), src, cropper.Rect{X0: 10, Y0: 5, X1: 70, Y1: 45}, dst); err != nil {
		t.Fatalf("CropFile returned error: %v", err)
	}

	out, err := imaging.Open(dst)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got := out.Bounds().Size(); got != (image.Point{X: 60, Y: 40}) {
		t.Fatalf("unexpected output size %v", got)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "out", ".cropall-*"))
	if len(leftovers) != 0 {
		t.Fatalf("expected no temp files, found %v", leftovers)
	}
}

func TestCropClampsRectangleToBounds(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "c.png")
	c := cropper.New(cropper.Options{}, logging.NewNop(), nil)

	if err := c.Crop(context.Background(), framed(50, 40, 0), cropper.Rect{X0: 30, Y0: -5, X1: 90, Y1: 20}, dst); err != nil {
		t.Fatalf("Crop returned error: %v", err)
	}
	out, err := imaging.Open(dst)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got := out.Bounds().Size(); got != (image.Point{X: 20, Y: 20}) {
		t.Fatalf("unexpected output size %v", got)
	}
}

func TestCropRejectsEmptyRectAndUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	c := cropper.New(cropper.Options{}, logging.NewNop(), nil)
	img := framed(20, 20, 0)

	if err := c.Crop(context.Background(), img, cropper.Rect{X0: 5, Y0: 5, X1: 5, Y1: 10}, filepath.Join(dir, "a.png")); err == nil {
		t.Fatal("expected error for empty rectangle")
	}
	if err := c.Crop(context.Background(), img, cropper.Rect{X1: 10, Y1: 10}, filepath.Join(dir, "a.xyz")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestCropOverwritePolicy(t *testing.T) {
	dir := t.TempDir()
	dst := writePNG(t, dir, "exists.png", framed(10, 10, 0))
	img := framed(40, 40, 0)
	rect := cropper.Rect{X1: 30, Y1: 30}
	ctx := context.Background()

	declined := cropper.New(cropper.Options{ConfirmOverwrite: true}, logging.NewNop(), nil)
	if err := declined.Crop(ctx, img, rect, dst); !errors.Is(err, cropper.ErrSkipped) {
		t.Fatalf("expected ErrSkipped without confirmer, got %v", err)
	}

	var asked string
	no := cropper.ConfirmFunc(func(_ context.Context, path string) (bool, error) {
		asked = path
		return false, nil
	})
	if err := cropper.New(cropper.Options{ConfirmOverwrite: true}, logging.NewNop(), no).Crop(ctx, img, rect, dst); !errors.Is(err, cropper.ErrSkipped) {
		t.Fatalf("expected ErrSkipped when declined, got %v", err)
	}
	if asked != dst {
		t.Fatalf("expected confirmer to be asked about %q, got %q", dst, asked)
	}

	yes := cropper.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	if err := cropper.New(cropper.Options{ConfirmOverwrite: true}, logging.NewNop(), yes).Crop(ctx, img, rect, dst); err != nil {
		t.Fatalf("expected overwrite when confirmed, got %v", err)
	}
	assertSize(t, dst, 30, 30)

	silent := cropper.New(cropper.Options{ConfirmOverwrite: false}, logging.NewNop(), nil)
	if err := silent.Crop(ctx, img, cropper.Rect{X1: 20, Y1: 20}, dst); err != nil {
		t.Fatalf("expected silent overwrite, got %v", err)
	}
	assertSize(t, dst, 20, 20)
}

func TestCropDryRunWritesNothing(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dry.png")
	c := cropper.New(cropper.Options{DryRun: true}, logging.NewNop(), nil)
	if err := c.Crop(context.Background(), framed(10, 10, 0), cropper.Rect{X1: 5, Y1: 5}, dst); err != nil {
		t.Fatalf("Crop returned error: %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("expected no output in dry run, stat err=%v", err)
	}
}

func TestLoadReportsDecodeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cropper.Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func assertSize(t *testing.T, path string, w, h int) {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	if got := img.Bounds().Size(); got != (image.Point{X: w, Y: h}) {
		t.Fatalf("%s: size %v, want %dx%d", path, got, w, h)
	}
}

func TestCropSourceCopiesFullFrame(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scan.jpg")
	img := framed(32, 24, 4)
	if err := imaging.Save(img, src, imaging.JPEGQuality(70)); err != nil {
		t.Fatalf("save: %v", err)
	}
	decoded, err := cropper.Load(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := cropper.New(cropper.Options{JPEGQuality: 100}, logging.NewNop(), nil)
	ctx := context.Background()

	full := filepath.Join(dir, "out", "full.jpg")
	if err := c.CropSource(ctx, src, decoded, cropper.FromImage(decoded.Bounds()), full); err != nil {
		t.Fatalf("CropSource full frame: %v", err)
	}
	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != string(want) {
		t.Fatal("expected full-frame crop to copy the source bytes")
	}

	// a format change re-encodes even at full frame
	png := filepath.Join(dir, "out", "full.png")
	if err := c.CropSource(ctx, src, decoded, cropper.FromImage(decoded.Bounds()), png); err != nil {
		t.Fatalf("CropSource to png: %v", err)
	}
	assertSize(t, png, 32, 24)

	part := filepath.Join(dir, "out", "part.jpg")
	if err := c.CropSource(ctx, src, decoded, cropper.Rect{X0: 4, Y0: 4, X1: 28, Y1: 20}, part); err != nil {
		t.Fatalf("CropSource part: %v", err)
	}
	assertSize(t, part, 24, 16)
}
