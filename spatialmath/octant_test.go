package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestOctant(t *testing.T) {
	center := r3.Vector{X: 1, Y: 1, Z: 1}
	test.That(t, Octant(r3.Vector{X: 0, Y: 0, Z: 0}, center), test.ShouldEqual, 0)
	test.That(t, Octant(r3.Vector{X: 2, Y: 0, Z: 0}, center), test.ShouldEqual, 1)
	test.That(t, Octant(r3.Vector{X: 0, Y: 2, Z: 0}, center), test.ShouldEqual, 2)
	test.That(t, Octant(r3.Vector{X: 0, Y: 0, Z: 2}, center), test.ShouldEqual, 4)
	test.That(t, Octant(r3.Vector{X: 2, Y: 2, Z: 0}, center), test.ShouldEqual, 3)
	test.That(t, Octant(r3.Vector{X: 2, Y: 2, Z: 2}, center), test.ShouldEqual, 7)

	// ties count as non negative
	test.That(t, Octant(center, center), test.ShouldEqual, 7)
	test.That(t, Octant(r3.Vector{X: 1, Y: 0, Z: 1}, center), test.ShouldEqual, 5)

	seen := map[int]bool{}
	for _, dx := range []float64{-1, 1} {
		for _, dy := range []float64{-1, 1} {
			for _, dz := range []float64{-1, 1} {
				o := Octant(center.Add(r3.Vector{X: dx, Y: dy, Z: dz}), center)
				test.That(t, o, test.ShouldBeBetweenOrEqual, 0, NumOctants-1)
				seen[o] = true
			}
		}
	}
	test.That(t, len(seen), test.ShouldEqual, NumOctants)
}
