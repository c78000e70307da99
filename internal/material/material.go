// Package material decides how each box face is shaded: with its extracted
// image, or with a flat palette color when no image is available.
package material

import (
	"image"
	"image/color"

	"box-net-renderer/internal/colorutil"
	"box-net-renderer/internal/face"
)

// Kind tags a Material.
type Kind int

const (
	Flat Kind = iota
	Textured
)

func (k Kind) String() string {
	if k == Textured {
		return "textured"
	}
	return "flat"
}

// Surface response per kind.
const (
	TexturedRoughness = 0.4
	TexturedMetalness = 0.05
	FlatRoughness     = 0.5
	FlatMetalness     = 0.1
)

// Palette is a brand's color set. Primary colors the side faces, Secondary
// the top and bottom. Accent is carried for callers and not used here.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent,omitempty"`
}

// DefaultPalette is used when no palette, or an incomplete one, is supplied.
var DefaultPalette = Palette{Primary: "#dfd8ec", Secondary: "#bfa2cd", Accent: "#332231"}

// Material describes one face. Image is set for Textured, Color for Flat.
type Material struct {
	Kind      Kind
	Image     image.Image
	Color     string
	Roughness float64
	Metalness float64
}

// NRGBA returns the flat color. Unparseable colors come back as opaque black.
func (m Material) NRGBA() color.NRGBA {
	c, err := colorutil.Parse(m.Color)
	if err != nil {
		return colorutil.Black
	}
	return c
}

// FaceColor returns the fallback color of face i: secondary for top and
// bottom, primary otherwise. A nil palette or an empty slot uses
// DefaultPalette.
func FaceColor(i face.Index, p *Palette) string {
	secondary := i == face.Top || i == face.Bottom
	if p != nil {
		if secondary && p.Secondary != "" {
			return p.Secondary
		}
		if !secondary && p.Primary != "" {
			return p.Primary
		}
	}
	if secondary {
		return DefaultPalette.Secondary
	}
	return DefaultPalette.Primary
}

// present reports whether img has pixels to draw. Nil interfaces, typed nil
// pointers and empty bounds all count as missing.
func present(img image.Image) bool {
	switch v := img.(type) {
	case nil:
		return false
	case *image.NRGBA:
		if v == nil {
			return false
		}
	case *image.RGBA:
		if v == nil {
			return false
		}
	case *image.Gray:
		if v == nil {
			return false
		}
	}
	return !img.Bounds().Empty()
}

// Resolve builds the six face materials in canonical order. A present
// image always wins; otherwise the face falls back to FaceColor.
func Resolve(images [face.Count]image.Image, p *Palette) [face.Count]Material {
	var out [face.Count]Material
	for _, f := range face.All {
		if img := images[f]; present(img) {
			out[f] = Material{Kind: Textured, Image: img, Roughness: TexturedRoughness, Metalness: TexturedMetalness}
			continue
		}
		out[f] = Material{Kind: Flat, Color: FaceColor(f, p), Roughness: FlatRoughness, Metalness: FlatMetalness}
	}
	return out
}
