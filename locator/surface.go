package locator

import (
	"bufio"
	"fmt"
	"io"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"go.viam.com/pointlocator/spatialmath"
)

// Surface is a quad mesh outlining the occupied buckets of a grid. Corners shared by several
// quads appear once in Points.
type Surface struct {
	Points []r3.Vector
	Quads  [][4]int
}

// Triangles splits every quad into two triangles with the same winding.
func (s *Surface) Triangles() []*spatialmath.Triangle {
	tris := make([]*spatialmath.Triangle, 0, 2*len(s.Quads))
	for _, q := range s.Quads {
		tris = append(tris,
			spatialmath.NewTriangle(s.Points[q[0]], s.Points[q[1]], s.Points[q[2]]),
			spatialmath.NewTriangle(s.Points[q[0]], s.Points[q[2]], s.Points[q[3]]),
		)
	}
	return tris
}

// Area returns the total area of the surface.
func (s *Surface) Area() float64 {
	total := 0.
	for _, t := range s.Triangles() {
		total += t.Area()
	}
	return total
}

// WriteOBJ writes the surface as a Wavefront OBJ mesh.
func (s *Surface) WriteOBJ(out io.Writer) (err error) {
	w := bufio.NewWriter(out)
	defer func() {
		err = multierr.Combine(err, w.Flush())
	}()
	for _, p := range s.Points {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for _, q := range s.Quads {
		if _, err := fmt.Fprintf(w, "f %d %d %d %d\n", q[0]+1, q[1]+1, q[2]+1, q[3]+1); err != nil {
			return err
		}
	}
	return nil
}

// faceCorners are the (u, v) offsets of a face's corners, counter clockwise when looking down
// the face's axis.
var faceCorners = [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// GenerateSurface returns a quad for every face shared by an occupied bucket and an unoccupied
// one, treating everything outside the grid as unoccupied. Quads face away from the occupied
// bucket.
func (g *Grid) GenerateSurface() *Surface {
	surf := &Surface{}
	corners := map[BucketCoord]int{}
	cornerIndex := func(c BucketCoord) int {
		if idx, ok := corners[c]; ok {
			return idx
		}
		idx := len(surf.Points)
		corners[c] = idx
		surf.Points = append(surf.Points, g.corner(c))
		return idx
	}

	for k := 0; k < g.divisions[2]; k++ {
		for j := 0; j < g.divisions[1]; j++ {
			for i := 0; i < g.divisions[0]; i++ {
				c := BucketCoord{i, j, k}
				if !g.Occupied(c) {
					continue
				}
				for axis := 0; axis < 3; axis++ {
					for _, dir := range []int{-1, 1} {
						neighbor := c
						neighbor[axis] += dir
						if g.Occupied(neighbor) {
							continue
						}
						surf.Quads = append(surf.Quads, g.face(c, axis, dir, cornerIndex))
					}
				}
			}
		}
	}
	return surf
}

// face returns the quad on the dir side of bucket c along axis, wound so its normal points
// along dir.
func (g *Grid) face(c BucketCoord, axis, dir int, cornerIndex func(BucketCoord) int) [4]int {
	u, v := (axis+1)%3, (axis+2)%3
	base := c
	if dir > 0 {
		base[axis]++
	}
	var quad [4]int
	for i, off := range faceCorners {
		corner := base
		corner[u] += off[0]
		corner[v] += off[1]
		quad[i] = cornerIndex(corner)
	}
	if dir < 0 {
		quad[1], quad[3] = quad[3], quad[1]
	}
	return quad
}
