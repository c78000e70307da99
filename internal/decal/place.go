package decal

import (
	"math"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/face"
	"box-net-renderer/internal/mathutil"
)

// Transform is the model transform of a placed decal quad. The quad is a
// unit square in local XY facing +Z.
type Transform struct {
	Position   mathutil.Vec3
	Rotation   mathutil.Vec3 // Euler radians, see mathutil.EulerToMat3
	Quaternion mathutil.Quat
	Basis      mathutil.Mat3 // exact rotation matrix
	Scale      mathutil.Vec3
	Size       float64 // side of the square quad
}

// Matrix returns T @ R @ S for the transform.
func (t Transform) Matrix() mathutil.Mat4 {
	return mathutil.Compose(t.Position, t.Basis, t.Scale)
}

// Placement pairs a decal with its transform and draw position.
type Placement struct {
	Decal       Decal
	Transform   Transform
	RenderOrder int
}

func clampScale(s float64) float64 {
	return math.Min(math.Max(s, 0), 1)
}

// Place computes the transform of d on a box of the given dimensions.
// Only layers above zero move the quad outward; all layers at or below zero
// share the base offset and are separated by Placement.RenderOrder instead.
// Panics if d.Face is out of range.
func Place(d Decal, dims box.Dimensions) Transform {
	fw, fh := face.Extent(d.Face, dims)
	size := clampScale(d.Scale) * math.Min(fw, fh)

	pos := face.BaseCenter(d.Face, dims, face.DefaultEpsilon)
	pos = pos.Add(face.Horizontal(d.Face).Scale(d.Position.X * fw))
	pos = pos.Add(face.Vertical(d.Face).Scale(d.Position.Y * fh))
	if d.Layer > 0 {
		pos = pos.Add(face.Normal(d.Face).Scale(LayerStep * float64(d.Layer)))
	}

	e := face.Euler(d.Face)
	return Transform{
		Position:   pos,
		Rotation:   e,
		Quaternion: mathutil.EulerToQuat(e[0], e[1], e[2]),
		Basis:      face.Rotation(d.Face),
		Scale:      mathutil.Vec3{size, size, Thickness},
		Size:       size,
	}
}

// PlaceAll sorts list for rendering and places every decal. Decals that
// fail Validate are skipped.
func PlaceAll(list []Decal, dims box.Dimensions) []Placement {
	sorted := SortForRender(list)
	out := make([]Placement, 0, len(sorted))
	for _, d := range sorted {
		if Validate(d) != nil {
			continue
		}
		out = append(out, Placement{Decal: d, Transform: Place(d, dims), RenderOrder: len(out)})
	}
	return out
}
