package cropper

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
)

func TestRectClampOrdersAndLimits(t *testing.T) {
	b := image.Rect(0, 0, 100, 50)
	got := Rect{X0: 120, Y0: 40, X1: -10, Y1: 10}.Clamp(b)
	want := Rect{X0: 0, Y0: 10, X1: 100, Y1: 40}
	if got != want {
		t.Fatalf("Clamp = %+v, want %+v", got, want)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X1: 200, Y1: 100}.Inset(0.05)
	if r != (Rect{X0: 10, Y0: 5, X1: 190, Y1: 95}) {
		t.Fatalf("Inset = %+v", r)
	}
	tiny := Rect{X1: 2, Y1: 2}
	if got := tiny.Inset(0.6); got != tiny {
		t.Fatalf("expected collapsing inset to be ignored, got %+v", got)
	}
}

func TestParseAspect(t *testing.T) {
	for _, in := range []string{"", "free", " FREE "} {
		a, err := ParseAspect(in)
		if err != nil || !a.Free() {
			t.Fatalf("ParseAspect(%q) = %+v, %v; want free", in, a, err)
		}
	}
	a, err := ParseAspect("3:2")
	if err != nil || a.Ratio() != 1.5 || a.String() != "3:2" {
		t.Fatalf("ParseAspect(3:2) = %+v, %v", a, err)
	}
	for _, in := range []string{"3", "a:b", "0:1", "-1:2", "16:"} {
		if _, err := ParseAspect(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestConstrainAspect(t *testing.T) {
	b := image.Rect(0, 0, 300, 300)
	a := Aspect{W: 3, H: 2}

	wide := ConstrainAspect(Rect{X1: 300, Y1: 100}, a, b)
	if wide != (Rect{X0: 75, Y0: 0, X1: 225, Y1: 100}) {
		t.Fatalf("landscape constrain = %+v", wide)
	}

	tall := ConstrainAspect(Rect{X1: 100, Y1: 300}, a, b)
	if tall.Width() != 100 || tall.Height() != 150 {
		t.Fatalf("portrait constrain = %+v (%dx%d)", tall, tall.Width(), tall.Height())
	}
	if tall.Y0 != 75 {
		t.Fatalf("expected portrait crop centred, got %+v", tall)
	}

	free := Rect{X0: 3, Y0: 4, X1: 50, Y1: 70}
	if got := ConstrainAspect(free, Aspect{}, b); got != free {
		t.Fatalf("free aspect changed rect: %+v", got)
	}

	for _, r := range []Rect{{X1: 299, Y1: 17}, {X0: 13, X1: 41, Y1: 290}} {
		got := ConstrainAspect(r, a, b)
		ratio := float64(got.Width()) / float64(got.Height())
		if ratio < 1 {
			ratio = 1 / ratio
		}
		if math.Abs(ratio-1.5) > 0.1 {
			t.Fatalf("ConstrainAspect(%+v) = %+v ratio %.3f", r, got, ratio)
		}
	}
}

func TestDetectBordersFindsFrame(t *testing.T) {
	img := imaging.New(100, 80, color.NRGBA{A: 255})
	for y := 10; y < 70; y++ {
		for x := 12; x < 90; x++ {
			img.Set(x, y, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}

	got := DetectBorders(img, 24, 0)
	want := Rect{X0: 12, Y0: 10, X1: 90, Y1: 70}
	if got != want {
		t.Fatalf("DetectBorders = %+v, want %+v", got, want)
	}

	inset := DetectBorders(img, 24, 0.05)
	if inset.X0 <= want.X0 || inset.X1 >= want.X1 || inset.Y0 <= want.Y0 || inset.Y1 >= want.Y1 {
		t.Fatalf("expected inset inside %+v, got %+v", want, inset)
	}
}

func TestDetectBordersUniformImageIsWhole(t *testing.T) {
	img := imaging.New(64, 48, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	if got := DetectBorders(img, 24, 0.05); got != FromImage(img.Bounds()) {
		t.Fatalf("expected full frame for uniform image, got %+v", got)
	}
}
