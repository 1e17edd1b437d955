package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"cropall/internal/cropper"
)

const halfBlock = "▀"

// thumbnail is a downscaled copy of the source sized for a cell grid. Each
// terminal cell shows two vertically stacked pixels.
type thumbnail struct {
	img    *image.NRGBA
	source image.Rectangle
}

func newThumbnail(src image.Image, cols, rows int) thumbnail {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return thumbnail{
		img:    imaging.Fit(src, cols, rows*2, imaging.Box),
		source: src.Bounds(),
	}
}

// project maps r from source pixels into thumbnail pixels.
func (t thumbnail) project(r cropper.Rect) image.Rectangle {
	tb := t.img.Bounds()
	sw, sh := t.source.Dx(), t.source.Dy()
	if sw == 0 || sh == 0 {
		return image.Rectangle{}
	}
	scaleX := func(x int) int { return (x - t.source.Min.X) * tb.Dx() / sw }
	scaleY := func(y int) int { return (y - t.source.Min.Y) * tb.Dy() / sh }
	out := image.Rect(scaleX(r.X0), scaleY(r.Y0), ceilDiv((r.X1-t.source.Min.X)*tb.Dx(), sw), ceilDiv((r.Y1-t.source.Min.Y)*tb.Dy(), sh))
	return out.Intersect(tb)
}

// render draws the thumbnail with r framed and everything outside r dimmed.
// active names the edge to highlight.
func (t thumbnail) render(r cropper.Rect, active Edge) string {
	if t.img == nil {
		return ""
	}
	tb := t.img.Bounds()
	crop := t.project(r)

	pixel := func(x, y int) color.NRGBA {
		if y >= tb.Max.Y {
			return color.NRGBA{A: 0xff}
		}
		c := t.img.NRGBAAt(x, y)
		p := image.Pt(x, y)
		if !p.In(crop) {
			return dim(c)
		}
		if edge, ok := edgeAt(crop, p); ok {
			if active == EdgeAll || edge == active {
				return activeColor
			}
			return frameColor
		}
		return c
	}

	var b strings.Builder
	for y := tb.Min.Y; y < tb.Max.Y; y += 2 {
		for x := tb.Min.X; x < tb.Max.X; x++ {
			top, bottom := pixel(x, y), pixel(x, y+1)
			style := lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom))
			b.WriteString(style.Render(halfBlock))
		}
		if y+2 < tb.Max.Y {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// edgeAt reports which edge of r the pixel p sits on.
func edgeAt(r image.Rectangle, p image.Point) (Edge, bool) {
	switch {
	case p.X == r.Min.X:
		return EdgeLeft, true
	case p.X == r.Max.X-1:
		return EdgeRight, true
	case p.Y == r.Min.Y:
		return EdgeTop, true
	case p.Y == r.Max.Y-1:
		return EdgeBottom, true
	}
	return 0, false
}

func dim(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * dimFactor),
		G: uint8(float64(c.G) * dimFactor),
		B: uint8(float64(c.B) * dimFactor),
		A: 0xff,
	}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
