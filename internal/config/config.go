package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/decal"
	"box-net-renderer/internal/material"
	"box-net-renderer/internal/mathutil"
	"box-net-renderer/internal/netmap"
)

// Config holds paths, box description and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	Sheet     string `json:"sheet"` // rasterized sheet file or directory of sheets
	AssetDir  string `json:"asset_dir"`
	OutputDir string `json:"output_dir"`

	// Box
	BoxMM        box.Dimensions           `json:"box_mm"`
	DPIScale     float64                  `json:"dpi_scale"`
	Palette      *material.Palette        `json:"palette,omitempty"`
	Regions      map[string]netmap.Patch  `json:"regions,omitempty"`
	ExtraRegions map[string]netmap.Region `json:"extra_regions,omitempty"`
	Decals       []decal.Decal            `json:"decals,omitempty"`
	Camera       *mathutil.Vec3           `json:"camera,omitempty"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	FillRatio   float64 `json:"fill_ratio"`
	Workers     int     `json:"workers"`
}

// DefaultBoxMM is the reference carton, in millimeters.
var DefaultBoxMM = box.Dimensions{Width: 107, Height: 270, Depth: 82}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Sheet     string
	AssetDir  string
	OutputDir string
	Workers   int
	Size      int
}

// Resolve applies flags over the file values, then fills empty fields with
// defaults. Relative paths from the file are taken against BaseDir.
func (c *Config) Resolve(flags Flags) {
	if c.BaseDir != "" {
		c.Sheet = rebase(c.BaseDir, c.Sheet)
		c.AssetDir = rebase(c.BaseDir, c.AssetDir)
		c.OutputDir = rebase(c.BaseDir, c.OutputDir)
	}

	// CLI flags override config file
	if flags.Sheet != "" {
		c.Sheet = flags.Sheet
	}
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}

	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "boxnet-out")
	}
	if c.BoxMM == (box.Dimensions{}) {
		c.BoxMM = DefaultBoxMM
	}
	if c.DPIScale <= 0 {
		c.DPIScale = 3
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = 0.85
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func rebase(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Dimensions converts BoxMM to rendering units.
func (c *Config) Dimensions() (box.Dimensions, error) {
	if err := c.BoxMM.Validate(); err != nil {
		return box.Dimensions{}, fmt.Errorf("config: box_mm: %w", err)
	}
	return box.FromMillimeters(c.BoxMM), nil
}

// RegionMap applies the region patches over netmap.Default, then adds the
// extra regions. Keys are applied in sorted order so errors are stable.
func (c *Config) RegionMap() (netmap.Map, error) {
	m := netmap.Default()
	for _, key := range sortedKeys(c.Regions) {
		var err error
		if m, err = netmap.Update(m, key, c.Regions[key]); err != nil {
			return nil, fmt.Errorf("config: regions: %w", err)
		}
	}
	for _, key := range sortedKeys(c.ExtraRegions) {
		var err error
		if m, err = netmap.Set(m, key, c.ExtraRegions[key]); err != nil {
			return nil, fmt.Errorf("config: extra_regions: %w", err)
		}
	}
	return m, nil
}

// DecalList validates the configured decals and applies Add defaults.
func (c *Config) DecalList() ([]decal.Decal, error) {
	var list []decal.Decal
	for i, d := range c.Decals {
		if err := decal.Validate(d); err != nil {
			return nil, fmt.Errorf("config: decals[%d]: %w", i, err)
		}
		list = decal.Add(list, d)
	}
	return list, nil
}

// CameraPos returns the preview camera position.
func (c *Config) CameraPos() mathutil.Vec3 {
	if c.Camera == nil || *c.Camera == (mathutil.Vec3{}) {
		return mathutil.DefaultCameraPos
	}
	return *c.Camera
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
