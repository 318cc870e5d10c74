package locator

import (
	"gonum.org/v1/gonum/stat"
)

// OccupancyStats summarizes how points are spread over a grid's buckets.
type OccupancyStats struct {
	Buckets  int
	Occupied int
	Points   int
	// MeanPerOccupied and StdDevPerOccupied describe the point count of non empty buckets.
	MeanPerOccupied   float64
	StdDevPerOccupied float64
	MaxPerBucket      int
}

// Stats computes occupancy statistics for the grid.
func (g *Grid) Stats() OccupancyStats {
	stats := OccupancyStats{Buckets: len(g.buckets), Points: g.numPoints}
	var counts []float64
	for _, bucket := range g.buckets {
		if len(bucket) == 0 {
			continue
		}
		counts = append(counts, float64(len(bucket)))
		if len(bucket) > stats.MaxPerBucket {
			stats.MaxPerBucket = len(bucket)
		}
	}
	stats.Occupied = len(counts)
	switch len(counts) {
	case 0:
	case 1:
		stats.MeanPerOccupied = counts[0]
	default:
		stats.MeanPerOccupied, stats.StdDevPerOccupied = stat.MeanStdDev(counts, nil)
	}
	return stats
}
