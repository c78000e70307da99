// Package view projects box-space points onto the preview image plane.
package view

import (
	"math"

	"box-net-renderer/internal/mathutil"
)

// Projection is an orthographic camera fitted to a point set. Screen X grows
// right, screen Y grows down and larger Z is closer to the camera.
type Projection struct {
	R      mathutil.Mat3
	Center mathutil.Vec3 // bounding-box center in camera space
	Scale  float64       // pixels per unit
	Size   int           // square render size in pixels
}

// Fit builds a projection that looks at the origin from camera position
// pos and scales the rotated points to fill size pixels minus margin on
// every side.
func Fit(pos mathutil.Vec3, points []mathutil.Vec3, size, margin int) Projection {
	r := mathutil.LookAtOrigin(pos)

	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		t := r.MulVec3(p)
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], t[k])
			hi[k] = math.Max(hi[k], t[k])
		}
	}
	if len(points) == 0 {
		lo, hi = mathutil.Vec3{}, mathutil.Vec3{}
	}

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	avail := size - 2*margin
	if avail < 1 {
		avail = 1
	}
	return Projection{
		R:      r,
		Center: lo.Add(hi).Scale(0.5),
		Scale:  float64(avail) / span,
		Size:   size,
	}
}

// Project maps a box-space point to (screen x, screen y, depth).
func (p Projection) Project(v mathutil.Vec3) (x, y, z float64) {
	t := p.R.MulVec3(v)
	half := float64(p.Size) / 2
	return (t[0]-p.Center[0])*p.Scale + half, -(t[1]-p.Center[1])*p.Scale + half, t[2]
}

// ProjectVertices projects every vertex and returns screen X, screen Y and
// depth slices.
func (p Projection) ProjectVertices(verts []mathutil.Vec3) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)
	for i, v := range verts {
		px[i], py[i], pz[i] = p.Project(v)
	}
	return px, py, pz
}

// Facing reports whether a surface with the given outward normal faces the
// camera.
func (p Projection) Facing(normal mathutil.Vec3) bool {
	return p.R.MulVec3(normal)[2] > 1e-9
}
