package spatialmath

import "github.com/golang/geo/r3"

// NumOctants is the number of regions the three coordinate signs split space into.
const NumOctants = 8

// Octant returns which of the eight regions around center p falls in. Bit 0 is set when
// p.X >= center.X, bit 1 for Y and bit 2 for Z, so a point equal to center is in octant 7.
func Octant(p, center r3.Vector) int {
	octant := 0
	if p.X >= center.X {
		octant |= 1
	}
	if p.Y >= center.Y {
		octant |= 2
	}
	if p.Z >= center.Z {
		octant |= 4
	}
	return octant
}
