// Package netmap holds the normalized crop regions laid over a box-net sheet.
//
// A Map stores intent only: regions may extend past the sheet, and the
// extractor clamps when it copies pixels. Maps are treated as values;
// Update and Set return a new Map and never modify their input.
package netmap

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"box-net-renderer/internal/face"
)

var (
	// ErrUnknownRegion is returned by Update for a key absent from the map.
	ErrUnknownRegion = errors.New("netmap: unknown region")
	// ErrInvalidRegion is returned for non-positive sizes or non-finite coordinates.
	ErrInvalidRegion = errors.New("netmap: invalid region")
)

// Region is a rectangle in sheet-normalized coordinates (0..1 on both axes).
// Label and Color are display hints for region overlays.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// InBounds reports whether the region lies entirely within the unit sheet.
func (r Region) InBounds() bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.Width <= 1 && r.Y+r.Height <= 1
}

// Validate rejects regions with non-positive size or non-finite coordinates.
func Validate(r Region) error {
	for _, v := range [4]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %+v", ErrInvalidRegion, r)
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidRegion, r.Width, r.Height)
	}
	return nil
}

// Map maps a region key (a face key or any extra name) to its Region.
type Map map[string]Region

// Patch replaces a subset of a region's geometry. Nil fields are kept.
type Patch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Apply returns r with the non-nil patch fields replaced.
func (p Patch) Apply(r Region) Region {
	if p.X != nil {
		r.X = *p.X
	}
	if p.Y != nil {
		r.Y = *p.Y
	}
	if p.Width != nil {
		r.Width = *p.Width
	}
	if p.Height != nil {
		r.Height = *p.Height
	}
	return r
}

// Default returns the hand-tuned layout for the reference die-cut sheet.
func Default() Map {
	return Map{
		"front":  {X: 0.02, Y: 0.22, Width: 0.22, Height: 0.65, Label: "Front", Color: "#ff4444"},
		"back":   {X: 0.24, Y: 0.22, Width: 0.17, Height: 0.65, Label: "Back", Color: "#44ff44"},
		"left":   {X: 0.41, Y: 0.22, Width: 0.12, Height: 0.65, Label: "Left", Color: "#4444ff"},
		"right":  {X: 0.53, Y: 0.30, Width: 0.22, Height: 0.55, Label: "Right", Color: "#ffff44"},
		"top":    {X: 0.02, Y: 0.08, Width: 0.22, Height: 0.12, Label: "Top", Color: "#ff44ff"},
		"bottom": {X: 0.02, Y: 0.88, Width: 0.22, Height: 0.10, Label: "Bottom", Color: "#44ffff"},
	}
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, r := range m {
		out[k] = r
	}
	return out
}

// Update returns a copy of m with the patch applied to the region at key.
func Update(m Map, key string, p Patch) (Map, error) {
	r, ok := m[key]
	if !ok {
		return m, fmt.Errorf("%w: %q", ErrUnknownRegion, key)
	}
	r = p.Apply(r)
	if err := Validate(r); err != nil {
		return m, fmt.Errorf("netmap: update %q: %w", key, err)
	}
	out := m.Clone()
	out[key] = r
	return out, nil
}

// Set returns a copy of m with key bound to r. Extra (non-face) keys are allowed.
func Set(m Map, key string, r Region) (Map, error) {
	if key == "" {
		return m, fmt.Errorf("%w: empty key", ErrInvalidRegion)
	}
	if err := Validate(r); err != nil {
		return m, fmt.Errorf("netmap: set %q: %w", key, err)
	}
	out := m.Clone()
	out[key] = r
	return out, nil
}

// Keys returns the face keys present in m in canonical order, followed by
// any extra keys sorted lexically.
func Keys(m Map) []string {
	keys := make([]string, 0, len(m))
	for _, k := range face.Keys() {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range m {
		if _, isFace := face.ParseKey(k); !isFace {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// PixelRect is a region resolved against a sheet, in whole pixels.
type PixelRect struct {
	X, Y, W, H int
}

// Rect converts to an image.Rectangle.
func (p PixelRect) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// ResolvePixels maps r onto a sheet of w×h pixels. Every product is
// truncated toward negative infinity (floor), never rounded, so crop edges
// are reproducible. The result is not clamped to the sheet.
func ResolvePixels(r Region, w, h int) PixelRect {
	return PixelRect{
		X: int(math.Floor(r.X * float64(w))),
		Y: int(math.Floor(r.Y * float64(h))),
		W: int(math.Floor(r.Width * float64(w))),
		H: int(math.Floor(r.Height * float64(h))),
	}
}
