package cropper

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// detectSize bounds the longest side of the working copy used for detection.
const detectSize = 512

// DetectBorders finds the exposed area inside uniform scanner or mat borders.
//
// Each edge is walked inward until the mean luminance of a row (or column)
// differs from the outermost one by more than threshold (0-255). Walking
// stops at the centre line, so an image with no border comes back whole.
// The result is shrunk by inset (a fraction of each side) to drop the soft
// transition at the border.
func DetectBorders(img image.Image, threshold int, inset float64) Rect {
	bounds := img.Bounds()
	full := FromImage(bounds)
	if bounds.Dx() < 4 || bounds.Dy() < 4 {
		return full
	}

	small := imaging.Grayscale(imaging.Fit(img, detectSize, detectSize, imaging.Box))
	sb := small.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w < 4 || h < 4 {
		return full
	}

	rowMean := func(y int) float64 {
		var sum float64
		for x := 0; x < w; x++ {
			sum += float64(small.Pix[y*small.Stride+x*4])
		}
		return sum / float64(w)
	}
	colMean := func(x int) float64 {
		var sum float64
		for y := 0; y < h; y++ {
			sum += float64(small.Pix[y*small.Stride+x*4])
		}
		return sum / float64(h)
	}

	limit := float64(threshold)
	top := walk(0, h/2, 1, rowMean, limit)
	bottom := walk(h-1, h/2, -1, rowMean, limit) + 1
	left := walk(0, w/2, 1, colMean, limit)
	right := walk(w-1, w/2, -1, colMean, limit) + 1

	if right-left < 2 || bottom-top < 2 {
		return full
	}

	sx := float64(bounds.Dx()) / float64(w)
	sy := float64(bounds.Dy()) / float64(h)
	r := Rect{
		X0: bounds.Min.X + int(math.Floor(float64(left)*sx)),
		Y0: bounds.Min.Y + int(math.Floor(float64(top)*sy)),
		X1: bounds.Min.X + int(math.Ceil(float64(right)*sx)),
		Y1: bounds.Min.Y + int(math.Ceil(float64(bottom)*sy)),
	}
	if r == full {
		return full
	}
	return r.Inset(inset).Clamp(bounds)
}

// walk returns the first index from start towards stop whose mean differs from
// the mean at start by more than limit, or start when none does.
func walk(start, stop, step int, mean func(int) float64, limit float64) int {
	ref := mean(start)
	for i := start; i != stop; i += step {
		if math.Abs(mean(i)-ref) > limit {
			return i
		}
	}
	return start
}
