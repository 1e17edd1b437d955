package testsupport

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

var (
	// Dark is the border colour of framed test images.
	Dark = color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	// Light is the interior colour of framed test images.
	Light = color.NRGBA{R: 230, G: 220, B: 210, A: 255}
)

// FramedImage returns a w x h image with a Dark border of the given width
// around a Light interior. A border of 0 gives a plain Light image.
func FramedImage(w, h, border int) *image.NRGBA {
	img := imaging.New(w, h, Dark)
	for y := border; y < h-border; y++ {
		for x := border; x < w-border; x++ {
			img.SetNRGBA(x, y, Light)
		}
	}
	return img
}

// WriteImage encodes img to path using the format implied by its extension.
func WriteImage(t testing.TB, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// WriteFramedImages writes a FramedImage under each name in dir.
func WriteFramedImages(t testing.TB, dir string, w, h, border int, names ...string) {
	t.Helper()
	for _, name := range names {
		WriteImage(t, filepath.Join(dir, name), FramedImage(w, h, border))
	}
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
