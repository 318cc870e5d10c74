// Package spatialmath contains the geometric primitives the locator works with: axis aligned
// boxes, octants and triangles.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// degenerateAxisPadding is added to the max of any axis whose extent is zero or negative so that
// bucket math never divides by zero.
const degenerateAxisPadding = 1.0

// BoundingBox is an axis aligned box given by its minimum and maximum corners.
type BoundingBox struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewBoundingBox returns the box spanned by the two corners, with each axis ordered.
func NewBoundingBox(a, b r3.Vector) BoundingBox {
	return BoundingBox{
		Min: r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// EmptyBoundingBox returns an inverted box that any call to Merge will replace.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{
		Min: r3.Vector{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: r3.Vector{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Merge grows the box to include p.
func (bb *BoundingBox) Merge(p r3.Vector) {
	bb.Min.X = math.Min(bb.Min.X, p.X)
	bb.Min.Y = math.Min(bb.Min.Y, p.Y)
	bb.Min.Z = math.Min(bb.Min.Z, p.Z)
	bb.Max.X = math.Max(bb.Max.X, p.X)
	bb.Max.Y = math.Max(bb.Max.Y, p.Y)
	bb.Max.Z = math.Max(bb.Max.Z, p.Z)
}

// IsEmpty is true for a box that has not had any point merged into it.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y || bb.Min.Z > bb.Max.Z
}

// ExpandDegenerate returns a copy of the box where every axis with max <= min has its max
// pushed out to min + 1.
func (bb BoundingBox) ExpandDegenerate() BoundingBox {
	out := bb
	if out.Max.X <= out.Min.X {
		out.Max.X = out.Min.X + degenerateAxisPadding
	}
	if out.Max.Y <= out.Min.Y {
		out.Max.Y = out.Min.Y + degenerateAxisPadding
	}
	if out.Max.Z <= out.Min.Z {
		out.Max.Z = out.Min.Z + degenerateAxisPadding
	}
	return out
}

// Contains reports whether p lies inside the box, boundary included.
func (bb BoundingBox) Contains(p r3.Vector) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y &&
		p.Z >= bb.Min.Z && p.Z <= bb.Max.Z
}

// Size returns the extent of the box along each axis.
func (bb BoundingBox) Size() r3.Vector {
	return bb.Max.Sub(bb.Min)
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() r3.Vector {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Axis returns the min and max of the given axis (0 = x, 1 = y, 2 = z).
func (bb BoundingBox) Axis(axis int) (float64, float64) {
	return VectorComponent(bb.Min, axis), VectorComponent(bb.Max, axis)
}

func (bb BoundingBox) String() string {
	return fmt.Sprintf("[(%g, %g, %g) - (%g, %g, %g)]", bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z)
}

// VectorComponent returns the x, y or z component of v for axis 0, 1 or 2.
func VectorComponent(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
