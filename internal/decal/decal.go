// Package decal places flat image quads ("logos") on the faces of a box.
//
// A Decal stores only face-relative intent: a scale factor of the face's
// shorter side and an offset normalized to the face extent. The absolute
// size and 3-D transform are derived at placement time, so resizing the box
// moves and rescales every decal with no bookkeeping.
package decal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"box-net-renderer/internal/face"
)

const (
	// DefaultScale is applied by Add when a decal has no scale.
	DefaultScale = 0.5
	// LayerStep is the extra outward offset per layer above zero.
	LayerStep = 0.0005
	// Thickness is the Z scale of a placed quad.
	Thickness = 0.001
)

var (
	ErrIndexOutOfRange = errors.New("decal: index out of range")
	ErrInvalidDecal    = errors.New("decal: invalid decal")
)

// Offset is a position in the face plane, normalized to the face extent.
// (0,0) is the face center; ±0.5 reaches an edge.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Decal is one image placed on one face.
type Decal struct {
	ID       string     `json:"id,omitempty"`
	Face     face.Index `json:"face"`
	Image    string     `json:"image"`
	Scale    float64    `json:"scale"`
	Position Offset     `json:"position"`
	Layer    int        `json:"layer"`
}

// Patch replaces a subset of a decal's mutable fields. Nil fields are kept.
type Patch struct {
	Scale    *float64 `json:"scale,omitempty"`
	Position *Offset  `json:"position,omitempty"`
	Layer    *int     `json:"layer,omitempty"`
}

// Validate checks a decoded decal before it is placed.
func Validate(d Decal) error {
	if !d.Face.Valid() {
		return fmt.Errorf("%w: face %d", ErrInvalidDecal, int(d.Face))
	}
	for _, v := range [3]float64{d.Scale, d.Position.X, d.Position.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidDecal, d)
		}
	}
	if d.Scale < 0 {
		return fmt.Errorf("%w: negative scale %g", ErrInvalidDecal, d.Scale)
	}
	return nil
}

// Add returns a copy of list with d appended.
func Add(list []Decal, d Decal) []Decal {
	if d.Scale == 0 {
		d.Scale = DefaultScale
	}
	out := make([]Decal, len(list), len(list)+1)
	copy(out, list)
	return append(out, d)
}

// Remove returns a copy of list without the decal at i.
func Remove(list []Decal, i int) ([]Decal, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(list))
	}
	out := make([]Decal, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

// RemoveID returns a copy of list without any decal whose ID is id.
func RemoveID(list []Decal, id string) []Decal {
	out := make([]Decal, 0, len(list))
	for _, d := range list {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// Update returns a copy of list with p applied to the decal at i.
func Update(list []Decal, i int, p Patch) ([]Decal, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(list))
	}
	d := list[i]
	if p.Scale != nil {
		d.Scale = *p.Scale
	}
	if p.Position != nil {
		d.Position = *p.Position
	}
	if p.Layer != nil {
		d.Layer = *p.Layer
	}
	if err := Validate(d); err != nil {
		return list, fmt.Errorf("decal: update %d: %w", i, err)
	}
	out := make([]Decal, len(list))
	copy(out, list)
	out[i] = d
	return out, nil
}

// SortForRender returns a copy of list ordered by layer, keeping insertion
// order among equal layers.
func SortForRender(list []Decal) []Decal {
	out := make([]Decal, len(list))
	copy(out, list)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Layer < out[b].Layer })
	return out
}

// CountPerFace returns how many decals sit on each face, in canonical order.
// Decals with an invalid face are not counted.
func CountPerFace(list []Decal) [face.Count]int {
	var n [face.Count]int
	for _, d := range list {
		if d.Face.Valid() {
			n[d.Face]++
		}
	}
	return n
}
