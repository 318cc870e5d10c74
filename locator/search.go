package locator

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"go.viam.com/pointlocator/pointcloud"
	"go.viam.com/pointlocator/spatialmath"
	"go.viam.com/pointlocator/utils"
)

type candidate struct {
	id    int
	dist2 float64
}

// candidateList keeps the best max candidates seen so far, sorted by ascending distance.
type candidateList struct {
	max   int
	items []candidate
}

func newCandidateList(max int) *candidateList {
	return &candidateList{max: max, items: make([]candidate, 0, max)}
}

func (cl *candidateList) full() bool {
	return len(cl.items) >= cl.max
}

// worst returns the largest kept distance, or +Inf when nothing is kept.
func (cl *candidateList) worst() float64 {
	if len(cl.items) == 0 {
		return math.Inf(1)
	}
	return cl.items[len(cl.items)-1].dist2
}

// insert keeps the candidate if the list has room or it beats the current worst.
func (cl *candidateList) insert(id int, dist2 float64) {
	if cl.max <= 0 {
		return
	}
	if cl.full() {
		if dist2 >= cl.worst() {
			return
		}
		cl.items = cl.items[:len(cl.items)-1]
	}
	at := sort.Search(len(cl.items), func(i int) bool {
		return cl.items[i].dist2 > dist2
	})
	cl.items = append(cl.items, candidate{})
	copy(cl.items[at+1:], cl.items[at:])
	cl.items[at] = candidate{id: id, dist2: dist2}
}

func (cl *candidateList) ids() []int {
	out := make([]int, len(cl.items))
	for i, c := range cl.items {
		out[i] = c.id
	}
	return out
}

// scannedExtraRing is the ring phase stop rule: once some ring, firstHit, produced a result, one
// more ring is scanned before stopping. A negative firstHit means nothing was found yet.
func scannedExtraRing(level, firstHit int) bool {
	if firstHit < 0 {
		return false
	}
	ringsSinceFirstHit := level - firstHit
	return ringsSinceFirstHit >= 1
}

// searcher runs the two phase ring then refinement searches over a grid and the source its ids
// refer to. The scratch slice is reused between calls.
type searcher struct {
	grid    *Grid
	src     pointcloud.Source
	scratch []BucketCoord
}

func (s *searcher) ring(center BucketCoord, level int) []BucketCoord {
	s.scratch = s.grid.RingNeighbors(center, level, s.scratch[:0])
	return s.scratch
}

func (s *searcher) overlapping(x r3.Vector, radius float64, center BucketCoord, excludeLevel int) []BucketCoord {
	s.scratch = s.grid.OverlappingBuckets(x, radius, center, excludeLevel, s.scratch[:0])
	return s.scratch
}

// scan calls visit for every id in the given buckets along with its squared distance to x.
// Returning false from visit stops the scan early.
func (s *searcher) scan(x r3.Vector, buckets []BucketCoord, visit func(id int, dist2 float64) bool) bool {
	for _, c := range buckets {
		for _, id := range s.grid.Bucket(s.grid.BucketIndex(c)) {
			if !visit(id, s.src.At(id).Sub(x).Norm2()) {
				return false
			}
		}
	}
	return true
}

// closestPoint returns the id nearest x and its squared distance.
//
// Rings are scanned outward from x's bucket until the ring after the first one that held a
// point. Points in a farther bucket may still beat the best found, so every bucket overlapping a
// cube of the best distance around x that wasn't already scanned is checked as well.
func (s *searcher) closestPoint(x r3.Vector) (int, float64, bool) {
	center := s.grid.CoordToBucket(x)
	maxLevel := s.grid.maxLevel()

	best, bestDist2 := -1, math.Inf(1)
	visit := func(id int, dist2 float64) bool {
		if dist2 < bestDist2 {
			best, bestDist2 = id, dist2
		}
		return true
	}

	firstHit := -1
	level := 0
	for ; level <= maxLevel; level++ {
		s.scan(x, s.ring(center, level), visit)
		if best >= 0 && firstHit < 0 {
			firstHit = level
		}
		if scannedExtraRing(level, firstHit) {
			break
		}
	}
	if best < 0 {
		return -1, 0, false
	}
	if lastScanned := level; lastScanned < maxLevel && bestDist2 > 0 {
		s.scan(x, s.overlapping(x, math.Sqrt(bestDist2), center, lastScanned), visit)
	}
	return best, bestDist2, true
}

// closestN returns up to n ids nearest x in ascending distance.
func (s *searcher) closestN(n int, x r3.Vector) []int {
	if n <= 0 {
		return nil
	}
	center := s.grid.CoordToBucket(x)
	maxLevel := s.grid.maxLevel()
	candidates := newCandidateList(n)
	visit := func(id int, dist2 float64) bool {
		candidates.insert(id, dist2)
		return true
	}

	filledAt := -1
	level := 0
	for ; level <= maxLevel; level++ {
		s.scan(x, s.ring(center, level), visit)
		if candidates.full() && filledAt < 0 {
			filledAt = level
		}
		if scannedExtraRing(level, filledAt) {
			break
		}
	}
	if lastScanned := level; lastScanned < maxLevel && candidates.worst() > 0 {
		s.scan(x, s.overlapping(x, math.Sqrt(candidates.worst()), center, lastScanned), visit)
	}
	return candidates.ids()
}

// closestPerOctant returns up to n ids nearest x in each of the eight octants around x,
// octant 0 first. maxChecked bounds how many points each phase examines; zero or less means no
// bound.
func (s *searcher) closestPerOctant(n int, x r3.Vector, maxChecked int) []int {
	if n <= 0 {
		return nil
	}
	if maxChecked <= 0 {
		maxChecked = math.MaxInt
	}
	center := s.grid.CoordToBucket(x)
	maxLevel := s.grid.maxLevel()

	var octants [spatialmath.NumOctants]*candidateList
	for i := range octants {
		octants[i] = newCandidateList(n)
	}
	allFull := func() bool {
		for _, cl := range octants {
			if !cl.full() {
				return false
			}
		}
		return true
	}

	checked := 0
	visit := func(id int, dist2 float64) bool {
		octants[spatialmath.Octant(s.src.At(id), x)].insert(id, dist2)
		checked++
		return checked < maxChecked
	}

	level := 0
	for ; level <= maxLevel; level++ {
		if !s.scan(x, s.ring(center, level), visit) {
			break
		}
		if allFull() {
			break
		}
	}

	if lastScanned := level; lastScanned < maxLevel {
		radius2 := 0.
		for _, cl := range octants {
			if len(cl.items) > 0 {
				radius2 = math.Max(radius2, cl.worst())
			}
		}
		if radius2 > 0 {
			checked = 0
			s.scan(x, s.overlapping(x, math.Sqrt(radius2), center, lastScanned), visit)
		}
	}

	var out []int
	for _, cl := range octants {
		out = append(out, cl.ids()...)
	}
	return out
}

// withinRadius returns every id within radius of x, unordered.
func (s *searcher) withinRadius(radius float64, x r3.Vector) []int {
	if radius < 0 {
		return nil
	}
	radius2 := utils.Square(radius)
	var out []int
	s.scan(x, s.overlapping(x, radius, s.grid.CoordToBucket(x), -1), func(id int, dist2 float64) bool {
		if dist2 <= radius2 {
			out = append(out, id)
		}
		return true
	})
	return out
}

// closestWithinRadius returns the id nearest x among those within radius of it.
func (s *searcher) closestWithinRadius(radius float64, x r3.Vector) (int, float64, bool) {
	if radius < 0 {
		return -1, 0, false
	}
	best, bestDist2 := -1, utils.Square(radius)
	s.scan(x, s.overlapping(x, radius, s.grid.CoordToBucket(x), -1), func(id int, dist2 float64) bool {
		if dist2 < bestDist2 || (best < 0 && dist2 <= bestDist2) {
			best, bestDist2 = id, dist2
		}
		return true
	})
	if best < 0 {
		return -1, 0, false
	}
	return best, bestDist2, true
}
