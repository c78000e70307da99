// Package box holds the physical dimensions of the rendered box.
package box

import (
	"errors"
	"fmt"
	"math"

	"box-net-renderer/internal/mathutil"
)

// UnitsPerMillimeter converts millimeters to render units.
const UnitsPerMillimeter = 0.01

// ErrInvalidDimensions is returned when a dimension is not a positive finite number.
var ErrInvalidDimensions = errors.New("box: invalid dimensions")

// Dimensions is the (width, height, depth) of the box along X, Y and Z.
// Unit-agnostic; FromMillimeters produces render units.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// FromMillimeters converts millimeter dimensions to render units.
func FromMillimeters(mm Dimensions) Dimensions {
	return Dimensions{
		Width:  mm.Width * UnitsPerMillimeter,
		Height: mm.Height * UnitsPerMillimeter,
		Depth:  mm.Depth * UnitsPerMillimeter,
	}
}

// Vec returns the dimensions as {W, H, D}, indexable by axis.
func (d Dimensions) Vec() mathutil.Vec3 {
	return mathutil.Vec3{d.Width, d.Height, d.Depth}
}

// Axis returns the dimension along axis 0 (X), 1 (Y) or 2 (Z).
func (d Dimensions) Axis(a int) float64 {
	return d.Vec()[a]
}

// Validate rejects zero, negative, NaN and infinite dimensions.
func (d Dimensions) Validate() error {
	for i, v := range d.Vec() {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidDimensions, axisNames[i], v)
		}
	}
	return nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%g × %g × %g", d.Width, d.Height, d.Depth)
}

var axisNames = [3]string{"width", "height", "depth"}
