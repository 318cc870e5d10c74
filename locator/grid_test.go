package locator

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/pointlocator/spatialmath"
)

func makeTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := newGrid(spatialmath.NewBoundingBox(r3.Vector{}, r3.Vector{X: 10, Y: 10, Z: 10}), [3]int{5, 5, 5}, 1000)
	test.That(t, err, test.ShouldBeNil)
	return g
}

func TestNewGrid(t *testing.T) {
	g := makeTestGrid(t)
	test.That(t, g.NumBuckets(), test.ShouldEqual, 125)
	test.That(t, g.BucketWidth(), test.ShouldResemble, r3.Vector{X: 2, Y: 2, Z: 2})

	// flat box, zero divisions
	g, err := newGrid(spatialmath.NewBoundingBox(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 3, Y: 1, Z: 1}), [3]int{2, 0, -3}, 1000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.Divisions(), test.ShouldResemble, [3]int{2, 1, 1})
	test.That(t, g.Bounds().Max, test.ShouldResemble, r3.Vector{X: 3, Y: 2, Z: 2})
	test.That(t, g.BucketWidth(), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	_, err = newGrid(spatialmath.NewBoundingBox(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}), [3]int{10, 10, 11}, 1000)
	test.That(t, errors.Is(err, ErrAllocation), test.ShouldBeTrue)

	_, err = newGrid(spatialmath.NewBoundingBox(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}), [3]int{1 << 40, 1 << 40, 1 << 40}, 1<<62)
	test.That(t, errors.Is(err, ErrAllocation), test.ShouldBeTrue)
}

func TestCoordToBucket(t *testing.T) {
	g := makeTestGrid(t)
	for _, tc := range []struct {
		p        r3.Vector
		expected BucketCoord
	}{
		{r3.Vector{X: 0, Y: 0, Z: 0}, BucketCoord{0, 0, 0}},
		{r3.Vector{X: 10, Y: 10, Z: 10}, BucketCoord{4, 4, 4}},
		{r3.Vector{X: 5, Y: 2.4, Z: 7.5}, BucketCoord{2, 0, 3}},
		{r3.Vector{X: -1, Y: 11, Z: 5}, BucketCoord{0, 4, 2}},
	} {
		test.That(t, g.CoordToBucket(tc.p), test.ShouldResemble, tc.expected)
	}

	test.That(t, g.BucketIndex(BucketCoord{1, 2, 3}), test.ShouldEqual, 86)
	test.That(t, g.Contains(BucketCoord{4, 4, 4}), test.ShouldBeTrue)
	test.That(t, g.Contains(BucketCoord{5, 0, 0}), test.ShouldBeFalse)
	test.That(t, g.Contains(BucketCoord{0, -1, 0}), test.ShouldBeFalse)
}

func TestBuckets(t *testing.T) {
	g := makeTestGrid(t)
	test.That(t, g.Bucket(0), test.ShouldBeNil)
	test.That(t, g.Occupied(BucketCoord{0, 0, 0}), test.ShouldBeFalse)

	g.AddToBucket(0, 7)
	g.AddToBucket(0, 9)
	test.That(t, g.Bucket(0), test.ShouldResemble, []int{7, 9})
	test.That(t, g.Occupied(BucketCoord{0, 0, 0}), test.ShouldBeTrue)
	test.That(t, g.Occupied(BucketCoord{-1, 0, 0}), test.ShouldBeFalse)
	test.That(t, g.NumPoints(), test.ShouldEqual, 2)

	bb := g.BucketBounds(BucketCoord{1, 0, 4})
	test.That(t, bb.Min, test.ShouldResemble, r3.Vector{X: 2, Y: 0, Z: 8})
	test.That(t, bb.Max, test.ShouldResemble, r3.Vector{X: 4, Y: 2, Z: 10})

	g.Clear()
	g.Clear()
	test.That(t, g.NumBuckets(), test.ShouldEqual, 0)
	test.That(t, g.NumPoints(), test.ShouldEqual, 0)
}

func TestRingNeighbors(t *testing.T) {
	g := makeTestGrid(t)

	checkRing := func(center BucketCoord, level, expected int) {
		t.Helper()
		ring := g.RingNeighbors(center, level, nil)
		test.That(t, len(ring), test.ShouldEqual, expected)
		seen := map[BucketCoord]bool{}
		for _, c := range ring {
			test.That(t, g.Contains(c), test.ShouldBeTrue)
			test.That(t, chebyshev(c, center), test.ShouldEqual, level)
			test.That(t, seen[c], test.ShouldBeFalse)
			seen[c] = true
		}
	}
	checkRing(BucketCoord{2, 2, 2}, 0, 1)
	checkRing(BucketCoord{2, 2, 2}, 1, 26)
	checkRing(BucketCoord{2, 2, 2}, 2, 98)
	checkRing(BucketCoord{2, 2, 2}, 3, 0)
	checkRing(BucketCoord{0, 0, 0}, 1, 7)
	checkRing(BucketCoord{4, 0, 2}, 1, 11)

	total := 0
	for level := 0; level <= g.maxLevel(); level++ {
		total += len(g.RingNeighbors(BucketCoord{0, 4, 1}, level, nil))
	}
	test.That(t, total, test.ShouldEqual, g.NumBuckets())

	buf := []BucketCoord{{9, 9, 9}}
	buf = g.RingNeighbors(BucketCoord{2, 2, 2}, 0, buf)
	test.That(t, buf, test.ShouldResemble, []BucketCoord{{9, 9, 9}, {2, 2, 2}})
	test.That(t, g.RingNeighbors(BucketCoord{2, 2, 2}, -1, nil), test.ShouldBeEmpty)
}

func TestOverlappingBuckets(t *testing.T) {
	g := makeTestGrid(t)
	center := g.CoordToBucket(r3.Vector{X: 5, Y: 5, Z: 5})
	test.That(t, center, test.ShouldResemble, BucketCoord{2, 2, 2})

	all := g.OverlappingBuckets(r3.Vector{X: 5, Y: 5, Z: 5}, 1, center, -1, nil)
	test.That(t, len(all), test.ShouldEqual, 8)

	excluded := g.OverlappingBuckets(r3.Vector{X: 5, Y: 5, Z: 5}, 1, center, 0, nil)
	test.That(t, len(excluded), test.ShouldEqual, 7)
	for _, c := range excluded {
		test.That(t, c, test.ShouldNotResemble, center)
	}

	everything := g.OverlappingBuckets(r3.Vector{X: 5, Y: 5, Z: 5}, 100, center, -1, nil)
	test.That(t, len(everything), test.ShouldEqual, g.NumBuckets())

	test.That(t, g.OverlappingBuckets(r3.Vector{X: 5, Y: 5, Z: 5}, -1, center, -1, nil), test.ShouldBeEmpty)
}
