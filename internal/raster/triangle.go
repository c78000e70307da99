package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected vertex: screen position, depth and texture coords.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// RasterizeTriangle fills one triangle into fb with z-buffering, sRGB-aware
// shading and ACES tone mapping. When tex is nil the triangle is filled
// with fill. Translucent texels are blended over what is already drawn.
//
// Shading is flat: the caller computes shade once per face.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, tex *image.NRGBA, fill color.NRGBA, shade float64, lc *LightConfig) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	gain := shade * lc.Exposure
	invGamma := lc.InvGamma

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := fill.R, fill.G, fill.B, fill.A
			if tex != nil {
				u := w0*v[0].U + w1*v[1].U + w2*v[2].U
				vv := w0*v[0].V + w1*v[1].V + w2*v[2].V
				cr, cg, cb, ca = SampleTexture(tex, u, vv)
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			fr := math.Pow(ACESTonemap(srgbToLinear[cr]*gain), invGamma) * 255
			fg := math.Pow(ACESTonemap(srgbToLinear[cg]*gain), invGamma) * 255
			fbl := math.Pow(ACESTonemap(srgbToLinear[cb]*gain), invGamma) * 255

			i := zIdx * 4
			if ca == 255 || fb.Color[i+3] == 0 {
				fb.Color[i] = clamp255(fr)
				fb.Color[i+1] = clamp255(fg)
				fb.Color[i+2] = clamp255(fbl)
				fb.Color[i+3] = ca
				continue
			}

			// Blend over the existing pixel.
			a := float64(ca) / 255
			fb.Color[i] = clamp255(fr*a + float64(fb.Color[i])*(1-a))
			fb.Color[i+1] = clamp255(fg*a + float64(fb.Color[i+1])*(1-a))
			fb.Color[i+2] = clamp255(fbl*a + float64(fb.Color[i+2])*(1-a))
			fb.Color[i+3] = clamp255(float64(ca) + float64(fb.Color[i+3])*(1-a))
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
