package raster

import (
	"math"

	"box-net-renderer/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in
// camera space (+Z toward the viewer).
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light above and right of the camera with
// a rim light from behind, tuned for matte cardboard.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{5, 5, 5}.Normalize()
	rimDir := mathutil.Vec3{-5, 3, -5}.Normalize()
	viewDir := mathutil.Vec3{0, 0, -1}

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.45,
		Hemi:      0.35,
		Direct:    1.00,
		Rim:       0.30,
		SpecInt:   0.20,
		SpecPow:   16.0,
		Exposure:  1.00,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// ShadeSurface returns the flat lighting scalar for a camera-space face
// normal. Rougher surfaces get a broader, dimmer highlight; metalness
// darkens the diffuse term.
func (lc *LightConfig) ShadeSurface(normal mathutil.Vec3, roughness, metalness float64) float64 {
	diffuse := math.Abs(normal.Dot(lc.LightDir))*lc.Direct + math.Abs(normal.Dot(lc.RimDir))*lc.Rim
	hemi := ((1.0-math.Abs(normal[1]))*0.5 + 0.5) * lc.Hemi

	ndh := math.Max(normal.Dot(lc.HalfMain), 0)
	gloss := 1 - roughness
	spec := math.Pow(ndh, lc.SpecPow*(0.25+gloss)) * lc.SpecInt * 2 * gloss

	return lc.Ambient + hemi + diffuse*(1-0.5*metalness) + spec
}
