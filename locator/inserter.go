package locator

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/pointlocator/logging"
	"go.viam.com/pointlocator/pointcloud"
	"go.viam.com/pointlocator/spatialmath"
)

// Inserter builds a grid one point at a time over a caller owned sink, optionally refusing
// points within a tolerance of one already inserted. Points already in the sink when
// insertion starts are not indexed.
//
// An Inserter is not safe for concurrent use.
type Inserter struct {
	logger logging.Logger
	cfg    Config

	sink           pointcloud.Sink
	grid           *Grid
	search         searcher
	insertionLevel int
	tolerance2     float64
}

// NewInserter returns an Inserter configured by cfg. A nil cfg means DefaultConfig.
func NewInserter(cfg *Config, logger logging.Logger) *Inserter {
	if logger == nil {
		logger = logging.NewBlankLogger("inserter")
	}
	return &Inserter{logger: logger, cfg: cfg.withDefaults()}
}

// InitInsertion starts inserting into sink over bounds. Divisions come from estimatedPointCount
// in automatic mode and from the config otherwise.
func (ins *Inserter) InitInsertion(sink pointcloud.Sink, bounds spatialmath.BoundingBox, estimatedPointCount int) error {
	if sink == nil {
		return errors.New("cannot insert into a nil sink")
	}
	if bounds.IsEmpty() {
		return errors.Errorf("cannot insert into empty bounds %s", bounds)
	}
	divisions := [3]int{ins.cfg.Divisions[0], ins.cfg.Divisions[1], ins.cfg.Divisions[2]}
	if ins.cfg.Automatic {
		divisions = automaticDivisions(estimatedPointCount, ins.cfg.PointsPerBucket)
	}
	grid, err := newGrid(bounds, divisions, ins.cfg.MaxBuckets)
	if err != nil {
		return err
	}

	ins.sink = sink
	ins.grid = grid
	ins.search = searcher{grid: grid, src: sink, scratch: ins.search.scratch}
	ins.tolerance2 = ins.cfg.Tolerance * ins.cfg.Tolerance
	ins.insertionLevel = insertionLevel(grid, ins.cfg.Tolerance)

	ins.logger.Debugw("initialized insertion",
		"bounds", grid.Bounds().String(),
		"divisions", grid.Divisions(),
		"tolerance", ins.cfg.Tolerance,
		"insertion_level", ins.insertionLevel,
	)
	return nil
}

// insertionLevel is how many rings around a bucket can hold a point within tolerance of a point
// in that bucket.
func insertionLevel(grid *Grid, tolerance float64) int {
	width := grid.BucketWidth()
	minWidth := math.Min(width.X, math.Min(width.Y, width.Z))
	// clamp as a float, a huge ratio would overflow int
	level := math.Min(math.Ceil(tolerance/minWidth), float64(grid.maxLevel()+1))
	if !(level > 0) {
		return 0
	}
	return int(level)
}

// Grid returns the grid being inserted into, nil before InitInsertion.
func (ins *Inserter) Grid() *Grid {
	return ins.grid
}

// InsertionLevel returns the ring depth IsInsertedPoint searches.
func (ins *Inserter) InsertionLevel() int {
	return ins.insertionLevel
}

// Tolerance returns the distance under which two points are considered the same.
func (ins *Inserter) Tolerance() float64 {
	return ins.cfg.Tolerance
}

func (ins *Inserter) mustBeInitialized() {
	if ins.grid == nil {
		panic(errors.New("inserter used before InitInsertion"))
	}
}

// InsertNextPoint appends x to the sink, indexes it and returns its id. Points outside the
// insertion bounds are indexed in the nearest edge bucket.
func (ins *Inserter) InsertNextPoint(x r3.Vector) int {
	ins.mustBeInitialized()
	id := ins.sink.Append(x)
	ins.grid.AddToBucket(ins.grid.BucketIndex(ins.grid.CoordToBucket(x)), id)
	return id
}

// InsertPoint stores x at id in the sink and indexes it.
func (ins *Inserter) InsertPoint(id int, x r3.Vector) error {
	ins.mustBeInitialized()
	if err := ins.sink.Set(id, x); err != nil {
		return err
	}
	ins.grid.AddToBucket(ins.grid.BucketIndex(ins.grid.CoordToBucket(x)), id)
	return nil
}

// IsInsertedPoint returns the id of an inserted point within tolerance of x. When several are,
// the first one found wins, not necessarily the nearest.
func (ins *Inserter) IsInsertedPoint(x r3.Vector) (int, bool) {
	if ins.grid == nil {
		return -1, false
	}
	center := ins.grid.CoordToBucket(x)
	for level := 0; level <= ins.insertionLevel; level++ {
		for _, c := range ins.search.ring(center, level) {
			for _, id := range ins.grid.Bucket(ins.grid.BucketIndex(c)) {
				if ins.sink.At(id).Sub(x).Norm2() <= ins.tolerance2 {
					return id, true
				}
			}
		}
	}
	return -1, false
}

// InsertUniquePoint inserts x unless a point within tolerance was already inserted, in which
// case that point's id is returned and wasNew is false.
func (ins *Inserter) InsertUniquePoint(x r3.Vector) (id int, wasNew bool) {
	if id, ok := ins.IsInsertedPoint(x); ok {
		return id, false
	}
	return ins.InsertNextPoint(x), true
}

// FindClosestInsertedPoint returns the inserted point nearest x. ok is false when nothing was
// inserted or x is outside the insertion bounds.
func (ins *Inserter) FindClosestInsertedPoint(x r3.Vector) (int, bool) {
	if ins.grid == nil || !ins.grid.Bounds().Contains(x) {
		return -1, false
	}
	id, _, ok := ins.search.closestPoint(x)
	return id, ok
}
