package locator

import (
	"github.com/golang/geo/r3"
)

// ready builds the grid if needed and reports whether x can be queried.
func (l *Locator) ready(x r3.Vector) bool {
	if err := l.Build(); err != nil {
		l.logger.Debugw("locator query without a grid", "error", err)
		return false
	}
	return l.grid.Bounds().Contains(x)
}

// ClosestPoint returns the id of the point nearest x. ok is false when there are no points or
// x is outside the indexed bounds.
func (l *Locator) ClosestPoint(x r3.Vector) (id int, ok bool) {
	if !l.ready(x) {
		return -1, false
	}
	id, _, ok = l.search.closestPoint(x)
	return id, ok
}

// ClosestPointWithinRadius returns the id of the point nearest x that is at most radius away,
// along with its squared distance.
func (l *Locator) ClosestPointWithinRadius(radius float64, x r3.Vector) (id int, dist2 float64, ok bool) {
	if !l.ready(x) {
		return -1, 0, false
	}
	return l.search.closestWithinRadius(radius, x)
}

// ClosestNPoints returns the n ids nearest x in ascending distance, or every id when there are
// fewer than n points.
func (l *Locator) ClosestNPoints(n int, x r3.Vector) []int {
	if !l.ready(x) {
		return nil
	}
	return l.search.closestN(n, x)
}

// ClosestPointsPerOctant returns up to n ids nearest x from each of the eight octants around x,
// concatenated octant 0 to 7 and each ascending by distance. An octant's bit 0 is set for points
// with x >= x.X, bit 1 for y and bit 2 for z. Each search phase stops after maxPointsChecked
// points, so a dense cloud may leave octants short; zero or less means no limit.
func (l *Locator) ClosestPointsPerOctant(n int, x r3.Vector, maxPointsChecked int) []int {
	if !l.ready(x) {
		return nil
	}
	return l.search.closestPerOctant(n, x, maxPointsChecked)
}

// PointsWithinRadius returns every id within radius of x, in no particular order.
func (l *Locator) PointsWithinRadius(radius float64, x r3.Vector) []int {
	if !l.ready(x) {
		return nil
	}
	return l.search.withinRadius(radius, x)
}

// PointsInBucket returns the ids that share x's bucket.
func (l *Locator) PointsInBucket(x r3.Vector) ([]int, bool) {
	if !l.ready(x) {
		return nil, false
	}
	return l.grid.Bucket(l.grid.BucketIndex(l.grid.CoordToBucket(x))), true
}

// GenerateSurface builds the grid if needed and returns its boundary surface.
func (l *Locator) GenerateSurface() (*Surface, error) {
	if err := l.Build(); err != nil {
		return nil, err
	}
	return l.grid.GenerateSurface(), nil
}
