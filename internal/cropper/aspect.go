package cropper

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Aspect is a width:height ratio. The zero value means unconstrained.
type Aspect struct {
	W, H float64
}

// Free reports whether a imposes no constraint.
func (a Aspect) Free() bool { return a.W <= 0 || a.H <= 0 }

// Ratio returns W/H, or 0 for a free aspect.
func (a Aspect) Ratio() float64 {
	if a.Free() {
		return 0
	}
	return a.W / a.H
}

// Rotate swaps W and H, turning 3:2 into 2:3.
func (a Aspect) Rotate() Aspect { return Aspect{W: a.H, H: a.W} }

func (a Aspect) String() string {
	if a.Free() {
		return "free"
	}
	return strconv.FormatFloat(a.W, 'f', -1, 64) + ":" + strconv.FormatFloat(a.H, 'f', -1, 64)
}

// ParseAspect accepts "free" (or empty) and "W:H" with positive numbers.
func ParseAspect(value string) (Aspect, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "free" {
		return Aspect{}, nil
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return Aspect{}, fmt.Errorf("aspect %q: want \"free\" or W:H", value)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Aspect{}, fmt.Errorf("aspect %q: want \"free\" or W:H", value)
	}
	return Aspect{W: w, H: h}, nil
}

// ConstrainAspect shrinks the longer side of r around its centre until
// width/height matches a, then clamps to bounds. The orientation of a is
// flipped to match r when r is portrait and a is landscape (or the reverse),
// so a 3:2 setting also serves portrait shots.
func ConstrainAspect(r Rect, a Aspect, bounds image.Rectangle) Rect {
	r = r.Clamp(bounds)
	if a.Free() || r.Empty() {
		return r
	}
	if (r.Width() >= r.Height()) != (a.W >= a.H) {
		a = a.Rotate()
	}
	ratio := a.Ratio()
	w, h := float64(r.Width()), float64(r.Height())
	if w/h > ratio {
		newW := int(h*ratio + 0.5)
		if newW < 1 {
			newW = 1
		}
		r.X0 += (r.Width() - newW) / 2
		r.X1 = r.X0 + newW
	} else {
		newH := int(w/ratio + 0.5)
		if newH < 1 {
			newH = 1
		}
		r.Y0 += (r.Height() - newH) / 2
		r.Y1 = r.Y0 + newH
	}
	return r.Clamp(bounds)
}
