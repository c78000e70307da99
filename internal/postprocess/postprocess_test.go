package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func close8(a, b color.NRGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 1 || y-x <= 1 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestDownsample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	out := Downsample(img, 2)
	if out.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("bounds = %v, want 20x10", out.Bounds())
	}
	if c := out.NRGBAAt(10, 5); !close8(c, color.NRGBA{200, 100, 50, 255}) {
		t.Errorf("center = %v", c)
	}
	if Downsample(img, 1) != img {
		t.Error("factor 1 should return the input")
	}
}

func TestDownsampleKeepsTransparentColorless(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	out := Downsample(img, 4)
	if c := out.NRGBAAt(0, 0); c != (color.NRGBA{}) {
		t.Errorf("transparent pixel = %v", c)
	}
}

func TestCropAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(3, 4, color.NRGBA{R: 1, A: 255})
	img.SetNRGBA(6, 5, color.NRGBA{R: 2, A: 255})

	out := CropAlpha(img)
	if out.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds = %v, want 4x2", out.Bounds())
	}
	if out.NRGBAAt(0, 0).R != 1 || out.NRGBAAt(3, 1).R != 2 {
		t.Errorf("content not preserved")
	}

	empty := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	if CropAlpha(empty) != empty {
		t.Error("transparent image should be returned unchanged")
	}
}

func TestCropAndCenter(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	for y := 10; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
		}
	}
	out := CropAndCenter(img, 100, 0.8)
	if out.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	// 40x10 scaled to 80x20, centered at (10,40)-(90,60).
	if a := out.NRGBAAt(50, 50).A; a < 250 {
		t.Errorf("center alpha = %d", a)
	}
	if a := out.NRGBAAt(50, 20).A; a != 0 {
		t.Errorf("above content alpha = %d", a)
	}
	if a := out.NRGBAAt(5, 50).A; a != 0 {
		t.Errorf("left of content alpha = %d", a)
	}
}
