package cropper

import (
	"fmt"
	"image"
)

// Rect is a crop rectangle in source pixels covering [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// FromImage returns the rectangle covering the whole of b.
func FromImage(b image.Rectangle) Rect {
	return Rect{X0: b.Min.X, Y0: b.Min.Y, X1: b.Max.X, Y1: b.Max.Y}
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle { return image.Rect(r.X0, r.Y0, r.X1, r.Y1) }

// Clamp orders the corners and limits r to bounds.
func (r Rect) Clamp(bounds image.Rectangle) Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	r.X0 = clampInt(r.X0, bounds.Min.X, bounds.Max.X)
	r.X1 = clampInt(r.X1, bounds.Min.X, bounds.Max.X)
	r.Y0 = clampInt(r.Y0, bounds.Min.Y, bounds.Max.Y)
	r.Y1 = clampInt(r.Y1, bounds.Min.Y, bounds.Max.Y)
	return r
}

// Inset shrinks every side by fraction of the corresponding dimension.
func (r Rect) Inset(fraction float64) Rect {
	if fraction <= 0 {
		return r
	}
	dx := int(float64(r.Width()) * fraction)
	dy := int(float64(r.Height()) * fraction)
	out := Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 - dx, Y1: r.Y1 - dy}
	if out.Empty() {
		return r
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width(), r.Height(), r.X0, r.Y0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
