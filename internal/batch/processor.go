package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/decal"
	"box-net-renderer/internal/extract"
	"box-net-renderer/internal/face"
	"box-net-renderer/internal/logx"
	"box-net-renderer/internal/material"
	"box-net-renderer/internal/mathutil"
	"box-net-renderer/internal/netmap"
	"box-net-renderer/internal/postprocess"
	"box-net-renderer/internal/raster"
	"box-net-renderer/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Regions     netmap.Map
	Dims        box.Dimensions
	Palette     *material.Palette
	Decals      []decal.Decal
	Images      texture.Resolver
	Camera      mathutil.Vec3
	RenderSize  int
	Supersample int
	FillRatio   float64
	Workers     int
}

// FaceOutput describes one face of a processed sheet.
type FaceOutput struct {
	Key      string
	Image    string // path relative to the output dir; empty for flat faces
	Rect     image.Rectangle
	Material material.Kind
	Color    string
}

// Result holds the outcome of processing one sheet.
type Result struct {
	Sheet   string
	Stem    string
	Width   int
	Height  int
	Faces   []FaceOutput
	Success bool
	Error   string
}

// FindSheets returns path itself when it is a file, or the decodable images
// directly inside it, sorted by name.
func FindSheets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("batch: stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var sheets []string
	for _, e := range entries {
		if e.IsDir() || !texture.Supported(e.Name()) {
			continue
		}
		sheets = append(sheets, filepath.Join(path, e.Name()))
	}
	sort.Strings(sheets)
	return sheets, nil
}

// Run processes all sheets using a worker pool.
func Run(cfg Config, sheets []string) []Result {
	total := len(sheets)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f sheets/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	sheetChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sheetChan {
				results[idx] = processSheet(cfg, sheets[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range sheets {
		sheetChan <- i
	}
	close(sheetChan)

	wg.Wait()
	close(done)

	return results
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func processSheet(cfg Config, path string) Result {
	res := Result{Sheet: path, Stem: stemOf(path)}
	fail := func(err error) Result {
		logx.Logger().Warn("batch: sheet failed", "sheet", path, "err", err)
		res.Error = err.Error()
		return res
	}

	img, err := texture.Load(path)
	if err != nil {
		return fail(err)
	}
	sheet := extract.NewImageSheet(img)
	res.Width, res.Height = sheet.Width(), sheet.Height()

	dir := filepath.Join(cfg.OutputDir, res.Stem)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fail(fmt.Errorf("batch: mkdir %s: %w", dir, err))
	}

	crops := extract.ExtractAll(sheet, cfg.Regions)
	images := extract.FaceImages(crops)
	mats := material.Resolve(images, cfg.Palette)

	for _, f := range face.All {
		out := FaceOutput{Key: f.Key(), Material: mats[f].Kind, Color: mats[f].Color}
		if r, ok := cfg.Regions[f.Key()]; ok {
			out.Rect = extract.Clamp(sheet, r)
		}
		if images[f] != nil {
			out.Image = filepath.ToSlash(filepath.Join(res.Stem, f.Key()+".webp"))
			if err := writeWebP(filepath.Join(cfg.OutputDir, out.Image), crops[f]); err != nil {
				return fail(err)
			}
		}
		res.Faces = append(res.Faces, out)
	}

	scene := raster.Scene{
		Dims:      cfg.Dims,
		Materials: mats,
		Decals:    decal.PlaceAll(cfg.Decals, cfg.Dims),
		Images:    cfg.Images,
		Camera:    cfg.Camera,
	}
	preview := raster.RenderBox(scene, cfg.RenderSize, cfg.Supersample)
	preview = postprocess.Downsample(preview, cfg.Supersample)
	preview = postprocess.CropAndCenter(preview, cfg.RenderSize, cfg.FillRatio)
	if err := writeWebP(filepath.Join(dir, "preview.webp"), preview); err != nil {
		return fail(err)
	}

	if err := writeWebP(filepath.Join(dir, "regions.webp"), extract.Overlay(sheet, cfg.Regions, "")); err != nil {
		return fail(err)
	}

	res.Success = true
	return res
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("batch: WebP encode %s: %w", path, err)
	}
	return nil
}
