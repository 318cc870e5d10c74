package locator

import (
	"math"

	"go.viam.com/pointlocator/logging"
	"go.viam.com/pointlocator/pointcloud"
	"go.viam.com/pointlocator/utils"
)

// Locator answers proximity queries over a borrowed point source. The grid is built lazily on
// the first query, and rebuilt whenever the source or the grid parameters change.
//
// A Locator is not safe for concurrent use.
type Locator struct {
	logger logging.Logger

	automatic       bool
	divisions       [3]int
	pointsPerBucket int
	maxBuckets      int

	src    pointcloud.Source
	grid   *Grid
	search searcher

	// dirty is set whenever a parameter or the source itself changes.
	dirty      bool
	builtMTime uint64
}

// New returns a Locator with no source. A nil cfg means DefaultConfig and a nil logger discards
// everything.
func New(cfg *Config, logger logging.Logger) *Locator {
	conf := cfg.withDefaults()
	if logger == nil {
		logger = logging.NewBlankLogger("locator")
	}
	return &Locator{
		logger:          logger,
		automatic:       conf.Automatic,
		divisions:       [3]int{utils.MaxInt(conf.Divisions[0], 1), utils.MaxInt(conf.Divisions[1], 1), utils.MaxInt(conf.Divisions[2], 1)},
		pointsPerBucket: conf.PointsPerBucket,
		maxBuckets:      conf.MaxBuckets,
		dirty:           true,
	}
}

// SetSource replaces the indexed points.
func (l *Locator) SetSource(src pointcloud.Source) {
	l.src = src
	l.dirty = true
}

// Source returns the indexed points.
func (l *Locator) Source() pointcloud.Source {
	return l.src
}

// SetDivisions sets explicit divisions, used when not automatic. Values below one become one.
func (l *Locator) SetDivisions(nx, ny, nz int) {
	divs := [3]int{utils.MaxInt(nx, 1), utils.MaxInt(ny, 1), utils.MaxInt(nz, 1)}
	if divs != l.divisions {
		l.divisions = divs
		l.dirty = true
	}
}

// SetAutomatic toggles picking divisions from the point count.
func (l *Locator) SetAutomatic(automatic bool) {
	if automatic != l.automatic {
		l.automatic = automatic
		l.dirty = true
	}
}

// SetPointsPerBucket sets the average bucket occupancy automatic mode aims for. Values below
// one become one.
func (l *Locator) SetPointsPerBucket(n int) {
	n = utils.MaxInt(n, 1)
	if n != l.pointsPerBucket {
		l.pointsPerBucket = n
		l.dirty = true
	}
}

// Grid returns the current grid, nil before the first successful build. It may be stale.
func (l *Locator) Grid() *Grid {
	return l.grid
}

// Stale reports whether the next query would rebuild the grid.
func (l *Locator) Stale() bool {
	return l.grid == nil || l.dirty || l.src == nil || l.src.ModTime() != l.builtMTime
}

// Build indexes the source if the grid is stale and does nothing otherwise. On error the
// previous grid, if any, is kept and the locator stays stale.
func (l *Locator) Build() error {
	if !l.Stale() {
		return nil
	}
	if l.src == nil || l.src.Size() == 0 {
		return ErrEmptyInput
	}

	numPoints := l.src.Size()
	divisions := l.divisions
	if l.automatic {
		divisions = automaticDivisions(numPoints, l.pointsPerBucket)
	}
	bounds := pointcloud.ComputeBounds(l.src)
	grid, err := newGrid(bounds, divisions, l.maxBuckets)
	if err != nil {
		return err
	}
	for id := 0; id < numPoints; id++ {
		grid.AddToBucket(grid.BucketIndex(grid.CoordToBucket(l.src.At(id))), id)
	}

	if l.grid != nil {
		l.grid.Clear()
	}
	l.grid = grid
	l.search = searcher{grid: grid, src: l.src, scratch: l.search.scratch}
	l.builtMTime = l.src.ModTime()
	l.dirty = false

	stats := grid.Stats()
	l.logger.Debugw("built locator",
		"points", numPoints,
		"divisions", grid.Divisions(),
		"bounds", grid.Bounds().String(),
		"occupied", stats.Occupied,
		"mean_per_occupied", stats.MeanPerOccupied,
	)
	return nil
}

// Reset drops the grid. The next query rebuilds it.
func (l *Locator) Reset() {
	if l.grid != nil {
		l.grid.Clear()
	}
	l.grid = nil
	l.search.grid = nil
	l.dirty = true
}

// automaticDivisions gives every axis ceil((numPoints / pointsPerBucket)^(1/3)) buckets.
func automaticDivisions(numPoints, pointsPerBucket int) [3]int {
	n := int(math.Ceil(utils.CubeRoot(float64(numPoints) / float64(utils.MaxInt(pointsPerBucket, 1)))))
	n = utils.MaxInt(n, 1)
	return [3]int{n, n, n}
}
