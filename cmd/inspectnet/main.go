package main

import (
	"flag"
	"fmt"
	"os"

	"box-net-renderer/internal/config"
	"box-net-renderer/internal/decal"
	"box-net-renderer/internal/extract"
	"box-net-renderer/internal/face"
	"box-net-renderer/internal/netmap"
	"box-net-renderer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspectnet [-config config.json] sheet.png")
		os.Exit(2)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{})

	dims, err := cfg.Dimensions()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	regions, err := cfg.RegionMap()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	decals, err := cfg.DecalList()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	img, err := texture.Load(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	sheet := extract.NewImageSheet(img)
	fmt.Printf("Sheet: %d x %d px (dpi scale %g)\n", sheet.Width(), sheet.Height(), cfg.DPIScale)

	fmt.Println("--- Regions ---")
	for _, key := range netmap.Keys(regions) {
		r := regions[key]
		px := netmap.ResolvePixels(r, sheet.Width(), sheet.Height())
		clamped := extract.Clamp(sheet, r)
		fmt.Printf("  %-8s x=%5d y=%5d w=%5d h=%5d", key, px.X, px.Y, px.W, px.H)
		if !r.InBounds() {
			fmt.Printf("  WARNING: outside sheet, clamped to %v", clamped)
		}
		if clamped.Empty() {
			fmt.Print("  (empty, flat color)")
		}
		fmt.Println()
	}
	for _, k := range face.Keys() {
		if _, ok := regions[k]; !ok {
			fmt.Printf("  %-8s missing (flat color)\n", k)
		}
	}

	fmt.Printf("--- Faces (box %v units) ---\n", dims)
	counts := decal.CountPerFace(decals)
	for _, f := range face.All {
		w, h := face.Extent(f, dims)
		fmt.Printf("  %-12s extent %.3f x %.3f  center %v  decals %d\n", f.Label(), w, h, face.Center(f, dims), counts[f])
	}

	if len(decals) == 0 {
		return
	}
	fmt.Println("--- Decals (render order) ---")
	for _, p := range decal.PlaceAll(decals, dims) {
		t := p.Transform
		fmt.Printf("  #%d %-6s %-20s layer %d  size %.3f  pos (%.4f, %.4f, %.4f)  rot (%.3f, %.3f, %.3f)\n",
			p.RenderOrder, p.Decal.Face, p.Decal.Image, p.Decal.Layer, t.Size,
			t.Position[0], t.Position[1], t.Position[2],
			t.Rotation[0], t.Rotation[1], t.Rotation[2])
	}
}
