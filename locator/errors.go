package locator

import "github.com/pkg/errors"

var (
	// ErrEmptyInput is returned when asked to build over a source with no points.
	ErrEmptyInput = errors.New("no points to build a locator over")

	// ErrAllocation is returned when the requested grid has more buckets than allowed.
	ErrAllocation = errors.New("cannot allocate bucket table")
)

func newAllocationError(nx, ny, nz, maxBuckets int) error {
	return errors.Wrapf(ErrAllocation, "%dx%dx%d buckets exceeds the limit of %d", nx, ny, nz, maxBuckets)
}
