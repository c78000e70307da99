package raster

import (
	"image"
	"image/color"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/decal"
	"box-net-renderer/internal/face"
	"box-net-renderer/internal/logx"
	"box-net-renderer/internal/material"
	"box-net-renderer/internal/mathutil"
	"box-net-renderer/internal/texture"
	"box-net-renderer/internal/view"
)

// decalZBias separates coplanar decals by render order.
const decalZBias = 1e-6

// Scene is everything RenderBox draws.
type Scene struct {
	Dims      box.Dimensions
	Materials [face.Count]material.Material
	Decals    []decal.Placement
	Images    texture.Resolver // decal images; nil skips decals
	Camera    mathutil.Vec3    // zero uses mathutil.DefaultCameraPos
}

// quad is a textured rectangle: corners in box space ordered top-left,
// top-right, bottom-right, bottom-left as seen from outside.
type quad [4]mathutil.Vec3

var quadUV = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// FaceQuad returns the corners of face i on a box of the given dimensions.
func FaceQuad(i face.Index, dims box.Dimensions) [4]mathutil.Vec3 {
	c := face.Center(i, dims)
	w, h := face.Extent(i, dims)
	hx := face.Horizontal(i).Scale(w / 2)
	vy := face.Vertical(i).Scale(h / 2)
	return quad{
		c.Sub(hx).Add(vy),
		c.Add(hx).Add(vy),
		c.Add(hx).Sub(vy),
		c.Sub(hx).Sub(vy),
	}
}

// DecalQuad returns the corners of a placed decal.
func DecalQuad(t decal.Transform) [4]mathutil.Vec3 {
	m := t.Matrix()
	return quad{
		m.MulPoint(mathutil.Vec3{-0.5, 0.5, 0}),
		m.MulPoint(mathutil.Vec3{0.5, 0.5, 0}),
		m.MulPoint(mathutil.Vec3{0.5, -0.5, 0}),
		m.MulPoint(mathutil.Vec3{-0.5, -0.5, 0}),
	}
}

// RenderBox renders the decorated box at size*supersample pixels square.
// Pixels outside the box are transparent.
func RenderBox(s Scene, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	cam := s.Camera
	if cam == (mathutil.Vec3{}) {
		cam = mathutil.DefaultCameraPos
	}

	var corners []mathutil.Vec3
	for _, f := range face.All {
		q := FaceQuad(f, s.Dims)
		corners = append(corners, q[:]...)
	}
	proj := view.Fit(cam, corners, renderSize, 16*supersample)

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for _, f := range face.All {
		if !proj.Facing(face.Normal(f)) {
			continue
		}
		m := s.Materials[f]
		var tex *image.NRGBA
		fill := m.NRGBA()
		if m.Kind == material.Textured && m.Image != nil {
			tex = texture.ToNRGBA(m.Image)
		}
		shade := lc.ShadeSurface(proj.R.MulVec3(face.Normal(f)), m.Roughness, m.Metalness)
		drawQuad(fb, proj, FaceQuad(f, s.Dims), 0, tex, fill, shade, &lc)
	}

	if s.Images != nil {
		for _, p := range s.Decals {
			f := p.Decal.Face
			if !proj.Facing(face.Normal(f)) {
				continue
			}
			img := s.Images.Resolve(p.Decal.Image)
			if img == nil {
				logx.Logger().Debug("raster: decal image missing", "image", p.Decal.Image, "face", f.String())
				continue
			}
			shade := lc.ShadeSurface(proj.R.MulVec3(face.Normal(f)), material.TexturedRoughness, material.TexturedMetalness)
			bias := decalZBias * float64(p.RenderOrder+1)
			drawQuad(fb, proj, DecalQuad(p.Transform), bias, img, color.NRGBA{}, shade, &lc)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}

func drawQuad(fb *FrameBuffer, proj view.Projection, q quad, zBias float64, tex *image.NRGBA, fill color.NRGBA, shade float64, lc *LightConfig) {
	var v [4]Vertex
	for k, p := range q {
		x, y, z := proj.Project(p)
		v[k] = Vertex{X: x, Y: y, Z: z + zBias, U: quadUV[k][0], V: quadUV[k][1]}
	}
	RasterizeTriangle(fb, [3]Vertex{v[0], v[1], v[2]}, tex, fill, shade, lc)
	RasterizeTriangle(fb, [3]Vertex{v[0], v[2], v[3]}, tex, fill, shade, lc)
}
