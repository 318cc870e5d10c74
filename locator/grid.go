// Package locator indexes a point source with a uniform grid of buckets and answers proximity
// queries against it: closest point, closest N points, closest points per octant and points
// within a radius. An Inserter builds the same grid incrementally while deduplicating points.
package locator

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/pointlocator/spatialmath"
	"go.viam.com/pointlocator/utils"
)

// BucketCoord is the integer (i, j, k) position of a bucket in a Grid.
type BucketCoord [3]int

// chebyshev returns the largest per axis distance between two bucket coordinates.
func chebyshev(a, b BucketCoord) int {
	return utils.MaxInt(utils.AbsInt(a[0]-b[0]), utils.MaxInt(utils.AbsInt(a[1]-b[1]), utils.AbsInt(a[2]-b[2])))
}

// Grid is a fixed box split into divisions[0] x divisions[1] x divisions[2] buckets, each
// holding the ids of the points that fall in it. Buckets never hold coordinates.
type Grid struct {
	bounds    spatialmath.BoundingBox
	divisions [3]int
	width     r3.Vector
	buckets   [][]int
	numPoints int
}

// newGrid allocates an empty grid. Degenerate axes of bounds are expanded and divisions are
// clamped to at least one. A table of more than maxBuckets entries is refused.
func newGrid(bounds spatialmath.BoundingBox, divisions [3]int, maxBuckets int) (*Grid, error) {
	bounds = bounds.ExpandDegenerate()
	for i := range divisions {
		divisions[i] = utils.MaxInt(divisions[i], 1)
	}
	nx, ny, nz := divisions[0], divisions[1], divisions[2]
	if utils.MulOverflows(nx, ny) || utils.MulOverflows(nx*ny, nz) || nx*ny*nz > maxBuckets {
		return nil, newAllocationError(nx, ny, nz, maxBuckets)
	}
	size := bounds.Size()
	return &Grid{
		bounds:    bounds,
		divisions: divisions,
		width: r3.Vector{
			X: size.X / float64(nx),
			Y: size.Y / float64(ny),
			Z: size.Z / float64(nz),
		},
		buckets: make([][]int, nx*ny*nz),
	}, nil
}

// Bounds returns the box the grid covers.
func (g *Grid) Bounds() spatialmath.BoundingBox {
	return g.bounds
}

// Divisions returns the number of buckets along each axis.
func (g *Grid) Divisions() [3]int {
	return g.divisions
}

// BucketWidth returns the extent of the box divided by the divisions, per axis.
func (g *Grid) BucketWidth() r3.Vector {
	return g.width
}

// NumBuckets returns the size of the bucket table.
func (g *Grid) NumBuckets() int {
	return len(g.buckets)
}

// NumPoints returns how many ids have been added to the grid.
func (g *Grid) NumPoints() int {
	return g.numPoints
}

// maxLevel is the ring level that, from any bucket, reaches every other bucket.
func (g *Grid) maxLevel() int {
	return utils.MaxInt(g.divisions[0], utils.MaxInt(g.divisions[1], g.divisions[2])) - 1
}

// CoordToBucket maps a point to the bucket containing it. Each axis is scaled by
// (divisions - 1) over the box extent and floored, so the max face of the box maps to the last
// bucket. Points outside the box land in the nearest edge bucket.
func (g *Grid) CoordToBucket(p r3.Vector) BucketCoord {
	var c BucketCoord
	for axis := 0; axis < 3; axis++ {
		lo, hi := g.bounds.Axis(axis)
		v := spatialmath.VectorComponent(p, axis)
		scaled := math.Floor((v - lo) / (hi - lo) * float64(g.divisions[axis]-1))
		switch {
		case math.IsNaN(scaled) || scaled < 0:
			c[axis] = 0
		case scaled >= float64(g.divisions[axis]-1):
			c[axis] = g.divisions[axis] - 1
		default:
			c[axis] = int(scaled)
		}
	}
	return c
}

// BucketIndex returns the position of c in the bucket table.
func (g *Grid) BucketIndex(c BucketCoord) int {
	return c[0] + c[1]*g.divisions[0] + c[2]*g.divisions[0]*g.divisions[1]
}

// Contains reports whether c is inside the grid.
func (g *Grid) Contains(c BucketCoord) bool {
	for axis := 0; axis < 3; axis++ {
		if c[axis] < 0 || c[axis] >= g.divisions[axis] {
			return false
		}
	}
	return true
}

// Bucket returns the ids in the bucket at index, nil if it is empty.
func (g *Grid) Bucket(index int) []int {
	return g.buckets[index]
}

// Occupied reports whether c is inside the grid and has at least one id.
func (g *Grid) Occupied(c BucketCoord) bool {
	return g.Contains(c) && len(g.buckets[g.BucketIndex(c)]) > 0
}

// AddToBucket appends id to the bucket at index.
func (g *Grid) AddToBucket(index, id int) {
	g.buckets[index] = append(g.buckets[index], id)
	g.numPoints++
}

// BucketBounds returns the region of space bucket c covers, using BucketWidth.
func (g *Grid) BucketBounds(c BucketCoord) spatialmath.BoundingBox {
	lo := g.corner(c)
	return spatialmath.BoundingBox{Min: lo, Max: lo.Add(g.width)}
}

// corner returns the lattice point at the min corner of bucket c. c may be one past the last
// bucket on any axis.
func (g *Grid) corner(c BucketCoord) r3.Vector {
	return r3.Vector{
		X: g.bounds.Min.X + float64(c[0])*g.width.X,
		Y: g.bounds.Min.Y + float64(c[1])*g.width.Y,
		Z: g.bounds.Min.Z + float64(c[2])*g.width.Z,
	}
}

// Clear drops every bucket. It is safe to call more than once.
func (g *Grid) Clear() {
	g.buckets = nil
	g.numPoints = 0
}
