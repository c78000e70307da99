package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 20, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	return img
}

func writeFile(t *testing.T, path string, encode func(*bytes.Buffer) error) {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	src := sample()
	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"a.png", func(b *bytes.Buffer) error { return png.Encode(b, src) }},
		{"a.bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }},
		{"a.tiff", func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) }},
		{"a.webp", func(b *bytes.Buffer) error { return nativewebp.Encode(b, src, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			writeFile(t, path, tt.encode)

			img, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			if got := img.NRGBAAt(0, 0); got != src.NRGBAAt(0, 0) {
				t.Errorf("pixel (0,0) = %v, want %v", got, src.NRGBAAt(0, 0))
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file: expected error")
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("corrupt file: expected error")
	}
	if _, err := Decode(bytes.NewReader(nil), ".psd"); err == nil {
		t.Error("unsupported extension: expected error")
	}
}

func TestToNRGBANormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{G: 255, A: 255})
	dst := ToNRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if dst.NRGBAAt(0, 0).G != 255 {
		t.Fatalf("origin pixel = %v", dst.NRGBAAt(0, 0))
	}
	n := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if ToNRGBA(n) != n {
		t.Error("origin-based NRGBA should be returned as is")
	}
}

func TestIndexPrefersAlphaFormats(t *testing.T) {
	dir := t.TempDir()
	src := sample()
	pngEnc := func(b *bytes.Buffer) error { return png.Encode(b, src) }
	bmpEnc := func(b *bytes.Buffer) error { return bmp.Encode(b, src) }

	writeFile(t, filepath.Join(dir, "Brand.bmp"), bmpEnc)
	writeFile(t, filepath.Join(dir, "logos", "brand.png"), pngEnc)
	writeFile(t, filepath.Join(dir, "other.bmp"), bmpEnc)
	writeFile(t, filepath.Join(dir, "notes.txt"), func(b *bytes.Buffer) error { _, err := b.WriteString("x"); return err })

	idx := BuildIndex(dir)
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}
	path, ok := idx.ResolvePath(`assets\Brand.JPG`)
	if !ok {
		t.Fatal("brand not resolved")
	}
	if want := filepath.Join(dir, "logos", "brand.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, ok := idx.ResolvePath("missing"); ok {
		t.Error("missing stem resolved")
	}
}

func TestBuildIndexEmptyDir(t *testing.T) {
	if BuildIndex("").Len() != 0 {
		t.Error("empty dir should give an empty index")
	}
	if BuildIndex(filepath.Join(t.TempDir(), "nope")).Len() != 0 {
		t.Error("missing dir should give an empty index")
	}
}

func TestCacheReturnsSameImage(t *testing.T) {
	dir := t.TempDir()
	src := sample()
	writeFile(t, filepath.Join(dir, "logo.png"), func(b *bytes.Buffer) error { return png.Encode(b, src) })
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCache(BuildIndex(dir))
	a := c.Resolve("logo")
	if a == nil {
		t.Fatal("logo not loaded")
	}
	if b := c.Resolve("LOGO.png"); b != a {
		t.Error("second resolve returned a different image")
	}
	if c.Resolve("broken") != nil {
		t.Error("broken file should resolve to nil")
	}
	if c.Resolve("unknown") != nil {
		t.Error("unknown ref should resolve to nil")
	}
}
