package cli

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/pointlocator/locator"
	"go.viam.com/pointlocator/pointcloud"
	"go.viam.com/pointlocator/spatialmath"
)

// buildLocator loads the config and point cloud for c and indexes them.
func buildLocator(c *cli.Context) (*locator.Locator, *pointcloud.Buffer, error) {
	logger := newLogger(c)
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	src, err := loadSource(c, logger)
	if err != nil {
		return nil, nil, err
	}
	l := locator.New(cfg, logger.Sublogger("locator"))
	l.SetSource(src)
	if err := l.Build(); err != nil {
		return nil, nil, err
	}
	return l, src, nil
}

func renderTable(c *cli.Context, t table.Writer) {
	if c.String(formatFlag) == formatCSV {
		printf(c.App.Writer, "%s", t.RenderCSV())
		return
	}
	printf(c.App.Writer, "%s", t.Render())
}

// StatsAction prints how a point cloud is laid out in the locator grid.
func StatsAction(c *cli.Context) error {
	l, src, err := buildLocator(c)
	if err != nil {
		return err
	}
	grid := l.Grid()
	stats := grid.Stats()
	divs := grid.Divisions()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"Points", src.Size()},
		{"Centroid", formatVector(pointcloud.Centroid(src))},
		{"Bounds", grid.Bounds().String()},
		{"Divisions", fmt.Sprintf("%d x %d x %d", divs[0], divs[1], divs[2])},
		{"Bucket width", formatVector(grid.BucketWidth())},
		{"Buckets", stats.Buckets},
		{"Occupied buckets", stats.Occupied},
		{"Points per occupied bucket", fmt.Sprintf("%.2f ± %.2f", stats.MeanPerOccupied, stats.StdDevPerOccupied)},
		{"Most points in a bucket", stats.MaxPerBucket},
	})
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

func outsideError(p r3.Vector, l *locator.Locator) error {
	return errors.Errorf("query point (%s) is outside the point cloud bounds %s", formatVector(p), l.Grid().Bounds())
}

// ClosestAction prints the points closest to --point.
func ClosestAction(c *cli.Context) error {
	p, err := parsePoint(c.String(pointFlag))
	if err != nil {
		return err
	}
	n := c.Int(nFlag)
	if n < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", nFlag, n)
	}
	l, src, err := buildLocator(c)
	if err != nil {
		return err
	}
	if !l.Grid().Bounds().Contains(p) {
		return outsideError(p, l)
	}

	var ids []int
	switch {
	case c.Bool(octantFlag):
		ids = l.ClosestPointsPerOctant(n, p, c.Int(maxCheckedFlag))
	case n == 1:
		if id, ok := l.ClosestPoint(p); ok {
			ids = []int{id}
		}
	default:
		ids = l.ClosestNPoints(n, p)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "ID", "Point", "Distance", "Octant"})
	t.AppendRows(lo.Map(ids, func(id int, i int) table.Row {
		pt := src.At(id)
		return table.Row{i + 1, id, formatVector(pt), pt.Sub(p).Norm(), spatialmath.Octant(pt, p)}
	}))
	renderTable(c, t)
	return nil
}

// RadiusAction prints every point within --radius of --point, nearest first.
func RadiusAction(c *cli.Context) error {
	p, err := parsePoint(c.String(pointFlag))
	if err != nil {
		return err
	}
	radius := c.Float64(radiusFlag)
	if radius < 0 || math.IsNaN(radius) {
		return errors.Errorf("--%s must not be negative, got %v", radiusFlag, radius)
	}
	l, src, err := buildLocator(c)
	if err != nil {
		return err
	}
	if !l.Grid().Bounds().Contains(p) {
		return outsideError(p, l)
	}

	ids := l.PointsWithinRadius(radius, p)
	sort.Slice(ids, func(i, j int) bool {
		return src.At(ids[i]).Sub(p).Norm2() < src.At(ids[j]).Sub(p).Norm2()
	})

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "ID", "Point", "Distance"})
	t.AppendRows(lo.Map(ids, func(id int, i int) table.Row {
		pt := src.At(id)
		return table.Row{i + 1, id, formatVector(pt), pt.Sub(p).Norm()}
	}))
	renderTable(c, t)
	return nil
}

// DedupeAction writes the input points to --output, skipping points within tolerance of one
// already kept.
func DedupeAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet(toleranceFlag) {
		cfg.Tolerance = c.Float64(toleranceFlag)
		if err := cfg.Validate(toleranceFlag); err != nil {
			return err
		}
	}
	src, err := loadSource(c, logger)
	if err != nil {
		return err
	}
	if src.Size() == 0 {
		return locator.ErrEmptyInput
	}

	out := pointcloud.NewBuffer(src.Size())
	ins := locator.NewInserter(cfg, logger.Sublogger("inserter"))
	if err := ins.InitInsertion(out, pointcloud.ComputeBounds(src), src.Size()); err != nil {
		return err
	}
	for i := 0; i < src.Size(); i++ {
		ins.InsertUniquePoint(src.At(i))
	}

	fn := c.Path(outputFlag)
	if err := pointcloud.WriteToFile(out, fn); err != nil {
		return errors.Wrapf(err, "cannot write %q", fn)
	}
	infof(c.App.Writer, "kept %d of %d points (tolerance %g), wrote %s", out.Size(), src.Size(), cfg.Tolerance, fn)
	return nil
}

// SurfaceAction writes the boundary of the occupied buckets to --output as a Wavefront OBJ.
func SurfaceAction(c *cli.Context) (err error) {
	l, _, err := buildLocator(c)
	if err != nil {
		return err
	}
	surf, err := l.GenerateSurface()
	if err != nil {
		return err
	}

	fn := c.Path(outputFlag)
	//nolint:gosec
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	if err := surf.WriteOBJ(f); err != nil {
		return errors.Wrapf(err, "cannot write %q", fn)
	}
	infof(c.App.Writer, "wrote %d quads covering %.4g square units to %s", len(surf.Quads), surf.Area(), fn)
	return nil
}
