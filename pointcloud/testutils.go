package pointcloud

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"go.viam.com/pointlocator/spatialmath"
)

// MakeTestPoints returns the four point buffer used across the locator tests:
// (0,0,0), (1,0,0), (0,1,0) and a far away (5,5,5).
func MakeTestPoints() *Buffer {
	return NewBufferFromPoints([]r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 5, Y: 5, Z: 5},
	})
}

// RandomPoint returns a point drawn uniformly from bb.
func RandomPoint(rng *rand.Rand, bb spatialmath.BoundingBox) r3.Vector {
	size := bb.Size()
	return r3.Vector{
		X: bb.Min.X + rng.Float64()*size.X,
		Y: bb.Min.Y + rng.Float64()*size.Y,
		Z: bb.Min.Z + rng.Float64()*size.Z,
	}
}

// MakeUniformPoints returns n points drawn uniformly from bb.
func MakeUniformPoints(rng *rand.Rand, n int, bb spatialmath.BoundingBox) *Buffer {
	buf := NewBuffer(n)
	for i := 0; i < n; i++ {
		buf.Append(RandomPoint(rng, bb))
	}
	return buf
}

// MakeClusteredPoints returns n points split between numClusters tight gaussian blobs whose
// centers are drawn uniformly from bb.
func MakeClusteredPoints(rng *rand.Rand, n, numClusters int, spread float64, bb spatialmath.BoundingBox) *Buffer {
	centers := make([]r3.Vector, numClusters)
	for i := range centers {
		centers[i] = RandomPoint(rng, bb)
	}
	buf := NewBuffer(n)
	for i := 0; i < n; i++ {
		c := centers[rng.Intn(numClusters)]
		buf.Append(r3.Vector{
			X: c.X + rng.NormFloat64()*spread,
			Y: c.Y + rng.NormFloat64()*spread,
			Z: c.Z + rng.NormFloat64()*spread,
		})
	}
	return buf
}

// MakePlanarPoints returns n points drawn uniformly from bb, all with the same z.
func MakePlanarPoints(rng *rand.Rand, n int, z float64, bb spatialmath.BoundingBox) *Buffer {
	buf := NewBuffer(n)
	for i := 0; i < n; i++ {
		p := RandomPoint(rng, bb)
		p.Z = z
		buf.Append(p)
	}
	return buf
}
