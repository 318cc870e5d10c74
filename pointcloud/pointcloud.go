// Package pointcloud defines the point sources a locator indexes and a slice backed
// implementation of them.
//
// A locator never copies coordinates out of a source. It only remembers ids (indices into the
// source) and the source's modification marker, so anything that can hand out points by index
// can be indexed.
package pointcloud

import (
	"github.com/golang/geo/r3"

	"go.viam.com/pointlocator/spatialmath"
)

// Source is a read only, randomly indexable collection of points.
type Source interface {
	// Size returns the number of points.
	Size() int

	// At returns the point with the given id, 0 <= i < Size().
	At(i int) r3.Vector

	// ModTime is a marker that changes every time the points change. Locators compare it
	// against the marker they saw at build time to decide whether to rebuild.
	ModTime() uint64
}

// Sink is a Source that points can also be written into. Incremental insertion writes through
// a Sink owned by the caller.
type Sink interface {
	Source

	// Append adds p and returns its id.
	Append(p r3.Vector) int

	// Set stores p at id, growing the sink if needed.
	Set(id int, p r3.Vector) error
}

// MetaData is data about what's stored in a point buffer.
type MetaData struct {
	bounds spatialmath.BoundingBox
}

// NewMetaData returns meta data with an empty bounding box.
func NewMetaData() MetaData {
	return MetaData{bounds: spatialmath.EmptyBoundingBox()}
}

// Merge updates the meta data with a new point.
func (meta *MetaData) Merge(p r3.Vector) {
	meta.bounds.Merge(p)
}

// Bounds returns the box around every point ever merged. Points that were later overwritten
// still count, so this can be larger than the tight box of the current points.
func (meta MetaData) Bounds() spatialmath.BoundingBox {
	return meta.bounds
}

// ComputeBounds returns the tight bounding box of every point in src. The box is empty when src
// has no points.
func ComputeBounds(src Source) spatialmath.BoundingBox {
	bb := spatialmath.EmptyBoundingBox()
	for i := 0; i < src.Size(); i++ {
		bb.Merge(src.At(i))
	}
	return bb
}

// Centroid returns the mean of every point in src, or the zero vector for an empty source.
func Centroid(src Source) r3.Vector {
	if src.Size() == 0 {
		return r3.Vector{}
	}
	var total r3.Vector
	for i := 0; i < src.Size(); i++ {
		total = total.Add(src.At(i))
	}
	return total.Mul(1. / float64(src.Size()))
}
