package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"box-net-renderer/internal/batch"
	"box-net-renderer/internal/config"
	"box-net-renderer/internal/logx"
	"box-net-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sheet := flag.String("sheet", "", "Rasterized sheet image or directory of sheets")
	outputDir := flag.String("output", "", "Output directory (default: boxnet-out)")
	assetDir := flag.String("assets", "", "Directory of decal images")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	verbose := flag.Bool("v", false, "Log diagnostics to stderr")

	flag.Parse()

	if *verbose {
		logx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Sheet:     *sheet,
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Workers:   *workers,
		Size:      *size,
	})

	if cfg.Sheet == "" {
		fmt.Fprintln(os.Stderr, "Error: no sheet given. Use -sheet flag or config.json.")
		os.Exit(1)
	}

	dims, err := cfg.Dimensions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	regions, err := cfg.RegionMap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	decals, err := cfg.DecalList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sheets, err := batch.FindSheets(cfg.Sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(sheets) == 0 {
		fmt.Println("No sheets to process.")
		os.Exit(0)
	}

	// Build decal image index
	assetIndex := texture.BuildIndex(cfg.AssetDir)
	assetCache := texture.NewCache(assetIndex)
	fmt.Printf("Decal images: %d indexed\n", assetIndex.Len())

	// Print summary
	fmt.Println("Box net face extractor → WebP")
	fmt.Printf("Box: %v mm, Decals: %d, Regions: %d\n", cfg.BoxMM, len(decals), len(regions))
	fmt.Printf("Sheets: %d, Workers: %d\n", len(sheets), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Regions:     regions,
		Dims:        dims,
		Palette:     cfg.Palette,
		Decals:      decals,
		Images:      assetCache,
		Camera:      cfg.CameraPos(),
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FillRatio:   cfg.FillRatio,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, sheets)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Processed: %d/%d\n", success, len(sheets))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Sheet, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results, cfg.DPIScale); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
