package mathutil

import "math"

// DefaultCameraPos is the preview camera position, looking at the origin.
var DefaultCameraPos = Vec3{4, 3, 5}

// LookAtOrigin returns the view rotation that brings a camera at pos onto
// the +Z axis: RotX(elevation) @ RotY(-azimuth). World +Y stays screen-up.
func LookAtOrigin(pos Vec3) Mat3 {
	azimuth := math.Atan2(pos[0], pos[2])
	elevation := math.Atan2(pos[1], math.Hypot(pos[0], pos[2]))
	return Mat3Mul(RotX(elevation), RotY(-azimuth))
}
