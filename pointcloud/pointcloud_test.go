package pointcloud

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/pointlocator/spatialmath"
)

func TestBufferBasic(t *testing.T) {
	buf := NewBuffer(0)
	test.That(t, buf.Size(), test.ShouldEqual, 0)
	test.That(t, buf.MetaData().Bounds().IsEmpty(), test.ShouldBeTrue)
	mtime := buf.ModTime()

	id := buf.Append(NewVector(1, 2, 3))
	test.That(t, id, test.ShouldEqual, 0)
	test.That(t, buf.ModTime(), test.ShouldBeGreaterThan, mtime)
	mtime = buf.ModTime()

	id = buf.Append(NewVector(-1, 0, 1))
	test.That(t, id, test.ShouldEqual, 1)
	test.That(t, buf.Size(), test.ShouldEqual, 2)
	test.That(t, buf.At(0), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, buf.At(1), test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 1})
	test.That(t, buf.ModTime(), test.ShouldBeGreaterThan, mtime)

	bounds := buf.MetaData().Bounds()
	test.That(t, bounds.Min, test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 1})
	test.That(t, bounds.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
}

func TestBufferSet(t *testing.T) {
	buf := NewBuffer(2)
	test.That(t, buf.Set(-1, r3.Vector{}), test.ShouldNotBeNil)

	// growing past capacity and within it
	test.That(t, buf.Set(4, NewVector(4, 4, 4)), test.ShouldBeNil)
	test.That(t, buf.Size(), test.ShouldEqual, 5)
	test.That(t, buf.At(4), test.ShouldResemble, r3.Vector{X: 4, Y: 4, Z: 4})
	test.That(t, buf.At(2), test.ShouldResemble, r3.Vector{})

	test.That(t, buf.Set(1, NewVector(1, 1, 1)), test.ShouldBeNil)
	test.That(t, buf.Size(), test.ShouldEqual, 5)
	test.That(t, buf.At(1), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	mtime := buf.ModTime()
	buf.Reset()
	test.That(t, buf.Size(), test.ShouldEqual, 0)
	test.That(t, buf.ModTime(), test.ShouldBeGreaterThan, mtime)
}

func TestComputeBoundsAndCentroid(t *testing.T) {
	buf := MakeTestPoints()
	bounds := ComputeBounds(buf)
	test.That(t, bounds.Min, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
	test.That(t, bounds.Max, test.ShouldResemble, r3.Vector{X: 5, Y: 5, Z: 5})
	test.That(t, Centroid(buf), test.ShouldResemble, r3.Vector{X: 1.5, Y: 1.5, Z: 1.25})

	test.That(t, ComputeBounds(NewBuffer(0)).IsEmpty(), test.ShouldBeTrue)
	test.That(t, Centroid(NewBuffer(0)), test.ShouldResemble, r3.Vector{})
}

func TestGenerators(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bb := spatialmath.NewBoundingBox(r3.Vector{X: -1, Y: -2, Z: -3}, r3.Vector{X: 1, Y: 2, Z: 3})

	uniform := MakeUniformPoints(rng, 500, bb)
	test.That(t, uniform.Size(), test.ShouldEqual, 500)
	for i := 0; i < uniform.Size(); i++ {
		test.That(t, bb.Contains(uniform.At(i)), test.ShouldBeTrue)
	}

	planar := MakePlanarPoints(rng, 100, 0.5, bb)
	planarBounds := ComputeBounds(planar)
	test.That(t, planarBounds.Min.Z, test.ShouldEqual, 0.5)
	test.That(t, planarBounds.Max.Z, test.ShouldEqual, 0.5)

	clustered := MakeClusteredPoints(rng, 300, 3, 0.01, bb)
	test.That(t, clustered.Size(), test.ShouldEqual, 300)
}
