// Package face describes the six faces of an axis-aligned box.
//
// Every face-indexed collection in the module (materials, extracted images,
// region keys, decal grouping) uses the canonical order defined here:
//
//	right(+X), left(-X), top(+Y), bottom(-Y), front(+Z), back(-Z)
//
// All per-face geometry comes from a single table. A flat decal quad is
// authored facing +Z with +Y up; a face's rotation maps local +X to the
// face's horizontal axis, local +Y to its vertical axis and local +Z to its
// outward normal, so positive in-face offsets always mean right and up as
// seen from outside the box.
package face

import (
	"encoding/json"
	"fmt"
	"math"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/mathutil"
)

// Index identifies a face in canonical order.
type Index int

const (
	Right Index = iota
	Left
	Top
	Bottom
	Front
	Back
)

// Count is the number of faces.
const Count = 6

// DefaultEpsilon is the outward offset keeping decals off the box surface.
const DefaultEpsilon = 0.002

// All lists the faces in canonical order.
var All = [Count]Index{Right, Left, Top, Bottom, Front, Back}

type row struct {
	key   string
	label string
	axis  int // axis of the outward normal
	sign  float64
	horiz mathutil.Vec3
	vert  mathutil.Vec3
	// extent axes: horizontal span, vertical span
	extent [2]int
	euler  mathutil.Vec3
}

var table = [Count]row{
	Right:  {"right", "Right (+X)", 0, +1, mathutil.Vec3{0, 0, -1}, mathutil.Vec3{0, 1, 0}, [2]int{2, 1}, mathutil.Vec3{0, math.Pi / 2, 0}},
	Left:   {"left", "Left (-X)", 0, -1, mathutil.Vec3{0, 0, 1}, mathutil.Vec3{0, 1, 0}, [2]int{2, 1}, mathutil.Vec3{0, -math.Pi / 2, 0}},
	Top:    {"top", "Top (+Y)", 1, +1, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, -1}, [2]int{0, 2}, mathutil.Vec3{-math.Pi / 2, 0, 0}},
	Bottom: {"bottom", "Bottom (-Y)", 1, -1, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, 1}, [2]int{0, 2}, mathutil.Vec3{math.Pi / 2, 0, 0}},
	Front:  {"front", "Front (+Z)", 2, +1, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 1, 0}, [2]int{0, 1}, mathutil.Vec3{0, 0, 0}},
	Back:   {"back", "Back (-Z)", 2, -1, mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{0, 1, 0}, [2]int{0, 1}, mathutil.Vec3{0, math.Pi, 0}},
}

func lookup(i Index) *row {
	if !i.Valid() {
		panic(fmt.Sprintf("face: index %d out of range", int(i)))
	}
	return &table[i]
}

// Valid reports whether i is one of the six canonical faces.
func (i Index) Valid() bool {
	return i >= 0 && i < Count
}

// Key returns the region/material key, e.g. "front".
func (i Index) Key() string {
	return lookup(i).key
}

// Label returns a display label, e.g. "Front (+Z)".
func (i Index) Label() string {
	return lookup(i).label
}

func (i Index) String() string {
	if !i.Valid() {
		return fmt.Sprintf("face(%d)", int(i))
	}
	return table[i].key
}

// ParseKey maps a key such as "top" to its Index.
func ParseKey(key string) (Index, bool) {
	for i := range table {
		if table[i].key == key {
			return Index(i), true
		}
	}
	return 0, false
}

// UnmarshalJSON accepts either a numeric index or a key such as "front".
// Numeric values are not range-checked here; use Valid.
func (i *Index) UnmarshalJSON(b []byte) error {
	var key string
	if err := json.Unmarshal(b, &key); err == nil {
		f, ok := ParseKey(key)
		if !ok {
			return fmt.Errorf("face: unknown key %q", key)
		}
		*i = f
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("face: %w", err)
	}
	*i = Index(n)
	return nil
}

// Keys returns the canonical face keys in canonical order.
func Keys() [Count]string {
	var keys [Count]string
	for i := range table {
		keys[i] = table[i].key
	}
	return keys
}

// Normal returns the outward unit normal.
func Normal(i Index) mathutil.Vec3 {
	r := lookup(i)
	var n mathutil.Vec3
	n[r.axis] = r.sign
	return n
}

// Horizontal returns the in-plane unit axis for positive decal x.
func Horizontal(i Index) mathutil.Vec3 {
	return lookup(i).horiz
}

// Vertical returns the in-plane unit axis for positive decal y.
func Vertical(i Index) mathutil.Vec3 {
	return lookup(i).vert
}

// Extent returns the physical (horizontal, vertical) size of the face plane.
func Extent(i Index, dims box.Dimensions) (w, h float64) {
	r := lookup(i)
	return dims.Axis(r.extent[0]), dims.Axis(r.extent[1])
}

// BaseCenter returns the center of the face's outer surface pushed outward
// by epsilon. Exactly one coordinate is nonzero.
func BaseCenter(i Index, dims box.Dimensions, epsilon float64) mathutil.Vec3 {
	r := lookup(i)
	var c mathutil.Vec3
	c[r.axis] = r.sign * (dims.Axis(r.axis)/2 + epsilon)
	return c
}

// Center returns the center of the face's outer surface.
func Center(i Index, dims box.Dimensions) mathutil.Vec3 {
	return BaseCenter(i, dims, 0)
}

// Rotation returns the exact rotation taking a +Z facing, +Y up quad onto
// the face. Its columns are Horizontal, Vertical and Normal.
func Rotation(i Index) mathutil.Mat3 {
	return mathutil.Mat3FromColumns(Horizontal(i), Vertical(i), Normal(i))
}

// Euler returns Rotation as Euler angles in radians (see mathutil.EulerToMat3).
func Euler(i Index) mathutil.Vec3 {
	return lookup(i).euler
}
