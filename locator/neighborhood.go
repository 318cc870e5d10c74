package locator

import (
	"github.com/golang/geo/r3"

	"go.viam.com/pointlocator/utils"
)

// RingNeighbors appends to buf the buckets whose Chebyshev distance from center is exactly
// level, skipping those outside the grid, and returns the extended slice. Level 0 is center
// itself.
func (g *Grid) RingNeighbors(center BucketCoord, level int, buf []BucketCoord) []BucketCoord {
	if level < 0 {
		return buf
	}
	if level == 0 {
		if g.Contains(center) {
			buf = append(buf, center)
		}
		return buf
	}

	var lo, hi BucketCoord
	for axis := 0; axis < 3; axis++ {
		lo[axis] = utils.MaxInt(center[axis]-level, 0)
		hi[axis] = utils.MinInt(center[axis]+level, g.divisions[axis]-1)
	}
	for i := lo[0]; i <= hi[0]; i++ {
		onX := utils.AbsInt(i-center[0]) == level
		for j := lo[1]; j <= hi[1]; j++ {
			if onX || utils.AbsInt(j-center[1]) == level {
				for k := lo[2]; k <= hi[2]; k++ {
					buf = append(buf, BucketCoord{i, j, k})
				}
				continue
			}
			// only the two z caps of this column are on the shell
			if k := center[2] - level; k >= 0 {
				buf = append(buf, BucketCoord{i, j, k})
			}
			if k := center[2] + level; k < g.divisions[2] {
				buf = append(buf, BucketCoord{i, j, k})
			}
		}
	}
	return buf
}

// OverlappingBuckets appends to buf every bucket that intersects the axis aligned cube of half
// width radius around p, except those within excludeLevel of center, and returns the extended
// slice. A negative excludeLevel excludes nothing.
func (g *Grid) OverlappingBuckets(
	p r3.Vector,
	radius float64,
	center BucketCoord,
	excludeLevel int,
	buf []BucketCoord,
) []BucketCoord {
	if radius < 0 {
		return buf
	}
	offset := r3.Vector{X: radius, Y: radius, Z: radius}
	lo := g.CoordToBucket(p.Sub(offset))
	hi := g.CoordToBucket(p.Add(offset))
	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				c := BucketCoord{i, j, k}
				if chebyshev(c, center) <= excludeLevel {
					continue
				}
				buf = append(buf, c)
			}
		}
	}
	return buf
}
