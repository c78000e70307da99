package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/decal"
	"box-net-renderer/internal/face"
	"box-net-renderer/internal/material"
	"box-net-renderer/internal/netmap"
	"box-net-renderer/internal/texture"
)

func writeSheet(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func testConfig(out string) Config {
	return Config{
		OutputDir:   out,
		Regions:     netmap.Default(),
		Dims:        box.FromMillimeters(box.Dimensions{Width: 107, Height: 270, Depth: 82}),
		Decals:      []decal.Decal{{Face: face.Front, Image: "logo", Scale: 0.5}},
		Images:      texture.NewCache(texture.BuildIndex("")),
		RenderSize:  32,
		Supersample: 2,
		FillRatio:   0.85,
		Workers:     2,
	}
}

func TestFindSheets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.tiff", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindSheets(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.tiff"), filepath.Join(dir, "b.png")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindSheets() = %v, want %v", got, want)
	}

	single, err := FindSheets(want[1])
	if err != nil || len(single) != 1 || single[0] != want[1] {
		t.Fatalf("single file: %v, %v", single, err)
	}
	if _, err := FindSheets(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing path: expected error")
	}
}

func TestRunWritesOutputs(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	sheet := filepath.Join(in, "carton.png")
	writeSheet(t, sheet, 200, 100)

	cfg := testConfig(out)
	delete(cfg.Regions, "back")
	results := Run(cfg, []string{sheet, filepath.Join(in, "missing.png")})

	if len(results) != 2 {
		t.Fatalf("len(results) = %d", len(results))
	}
	r := results[0]
	if !r.Success {
		t.Fatalf("sheet failed: %s", r.Error)
	}
	if r.Width != 200 || r.Height != 100 || len(r.Faces) != face.Count {
		t.Fatalf("result = %+v", r)
	}
	for _, f := range r.Faces {
		if f.Key == "back" {
			if f.Image != "" || f.Material != material.Flat {
				t.Errorf("back = %+v, want flat with no image", f)
			}
			continue
		}
		if f.Material != material.Textured {
			t.Errorf("%s material = %v", f.Key, f.Material)
		}
		if _, err := os.Stat(filepath.Join(out, f.Image)); err != nil {
			t.Errorf("%s: %v", f.Key, err)
		}
	}
	for _, name := range []string{"preview.webp", "regions.webp"} {
		if _, err := os.Stat(filepath.Join(out, "carton", name)); err != nil {
			t.Error(err)
		}
	}

	if results[1].Success || results[1].Error == "" {
		t.Errorf("missing sheet should fail: %+v", results[1])
	}
}

func TestProcessSheetFaceRects(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	sheet := filepath.Join(in, "s.png")
	writeSheet(t, sheet, 100, 100)

	cfg := testConfig(out)
	cfg.Regions = netmap.Map{"front": {X: 0.9, Y: 0.5, Width: 0.5, Height: 0.25}}
	r := processSheet(cfg, sheet)
	if !r.Success {
		t.Fatal(r.Error)
	}
	front := r.Faces[face.Front]
	if front.Rect != image.Rect(90, 50, 100, 75) {
		t.Errorf("front rect = %v, want clamped", front.Rect)
	}
	if r.Faces[face.Top].Rect != (image.Rectangle{}) {
		t.Errorf("top rect = %v, want empty", r.Faces[face.Top].Rect)
	}
}

func TestWriteManifest(t *testing.T) {
	results := []Result{
		{
			Sheet: "/in/a.png", Stem: "a", Width: 10, Height: 20, Success: true,
			Faces: []FaceOutput{
				{Key: "front", Image: "a/front.webp", Rect: image.Rect(1, 2, 5, 8), Material: material.Textured},
				{Key: "top", Material: material.Flat, Color: "#bfa2cd"},
			},
		},
		{Sheet: "/in/b.png", Stem: "b", Error: "boom"},
	}
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, results, 3); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Sheet != "a.png" || e.DPIScale != 3 || e.Preview != "a/preview.webp" {
		t.Errorf("entry = %+v", e)
	}
	if e.Faces[0].Rect != [4]int{1, 2, 4, 6} || e.Faces[0].Material != "textured" {
		t.Errorf("front = %+v", e.Faces[0])
	}
	if e.Faces[1].Material != "flat" || e.Faces[1].Image != "" {
		t.Errorf("top = %+v", e.Faces[1])
	}
}
