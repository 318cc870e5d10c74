package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Buffer is the slice backed Source and Sink. It is not safe for concurrent mutation.
type Buffer struct {
	points  []r3.Vector
	meta    MetaData
	modTime uint64
}

// NewBuffer returns an empty Buffer with room for size points.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		points: make([]r3.Vector, 0, size),
		meta:   NewMetaData(),
	}
}

// NewBufferFromPoints returns a Buffer that takes ownership of pts.
func NewBufferFromPoints(pts []r3.Vector) *Buffer {
	buf := &Buffer{points: pts, meta: NewMetaData()}
	for _, p := range pts {
		buf.meta.Merge(p)
	}
	buf.modified()
	return buf
}

// Size returns the number of points.
func (buf *Buffer) Size() int {
	return len(buf.points)
}

// At returns the point with id i.
func (buf *Buffer) At(i int) r3.Vector {
	return buf.points[i]
}

// ModTime returns the modification counter.
func (buf *Buffer) ModTime() uint64 {
	return buf.modTime
}

// MetaData returns meta data.
func (buf *Buffer) MetaData() MetaData {
	return buf.meta
}

// Points returns the underlying points. The slice must not be modified.
func (buf *Buffer) Points() []r3.Vector {
	return buf.points
}

// Append adds p to the end of the buffer and returns its id.
func (buf *Buffer) Append(p r3.Vector) int {
	buf.points = append(buf.points, p)
	buf.meta.Merge(p)
	buf.modified()
	return len(buf.points) - 1
}

// Set stores p at id. Setting past the end grows the buffer, filling the gap with the origin.
func (buf *Buffer) Set(id int, p r3.Vector) error {
	if id < 0 {
		return errors.Errorf("invalid point id %d", id)
	}
	if id >= len(buf.points) {
		if id < cap(buf.points) {
			buf.points = buf.points[:id+1]
		} else {
			grown := make([]r3.Vector, id+1, 2*(id+1))
			copy(grown, buf.points)
			buf.points = grown
		}
	}
	buf.points[id] = p
	buf.meta.Merge(p)
	buf.modified()
	return nil
}

// Reset removes every point but keeps the allocated storage.
func (buf *Buffer) Reset() {
	buf.points = buf.points[:0]
	buf.meta = NewMetaData()
	buf.modified()
}

func (buf *Buffer) modified() {
	buf.modTime++
}

// NewVector convenience method for creating a vector.
func NewVector(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}
