package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestFace is one face of a sheet in the output manifest.
type ManifestFace struct {
	Key      string `json:"key"`
	Image    string `json:"image,omitempty"`
	Rect     [4]int `json:"rect"` // x, y, width, height in sheet pixels
	Material string `json:"material"`
	Color    string `json:"color,omitempty"`
}

// ManifestEntry represents one sheet in the output manifest.
type ManifestEntry struct {
	Sheet    string         `json:"sheet"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	DPIScale float64        `json:"dpi_scale"`
	Faces    []ManifestFace `json:"faces"`
	Preview  string         `json:"preview"`
	Regions  string         `json:"regions"`
}

// WriteManifest writes the successful results to path as JSON.
func WriteManifest(path string, results []Result, dpiScale float64) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		e := ManifestEntry{
			Sheet:    filepath.Base(r.Sheet),
			Width:    r.Width,
			Height:   r.Height,
			DPIScale: dpiScale,
			Preview:  r.Stem + "/preview.webp",
			Regions:  r.Stem + "/regions.webp",
		}
		for _, f := range r.Faces {
			e.Faces = append(e.Faces, ManifestFace{
				Key:      f.Key,
				Image:    f.Image,
				Rect:     [4]int{f.Rect.Min.X, f.Rect.Min.Y, f.Rect.Dx(), f.Rect.Dy()},
				Material: f.Material.String(),
				Color:    f.Color,
			})
		}
		entries = append(entries, e)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
