package locator

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestScannedExtraRing(t *testing.T) {
	test.That(t, scannedExtraRing(0, -1), test.ShouldBeFalse)
	test.That(t, scannedExtraRing(5, -1), test.ShouldBeFalse)
	test.That(t, scannedExtraRing(2, 2), test.ShouldBeFalse)
	test.That(t, scannedExtraRing(3, 2), test.ShouldBeTrue)
	test.That(t, scannedExtraRing(1, 0), test.ShouldBeTrue)
}

func TestCandidateList(t *testing.T) {
	cl := newCandidateList(3)
	test.That(t, cl.full(), test.ShouldBeFalse)
	test.That(t, math.IsInf(cl.worst(), 1), test.ShouldBeTrue)

	cl.insert(0, 4)
	cl.insert(1, 1)
	cl.insert(2, 9)
	test.That(t, cl.full(), test.ShouldBeTrue)
	test.That(t, cl.ids(), test.ShouldResemble, []int{1, 0, 2})
	test.That(t, cl.worst(), test.ShouldEqual, 9)

	// worse than everything kept
	cl.insert(3, 10)
	test.That(t, cl.ids(), test.ShouldResemble, []int{1, 0, 2})

	cl.insert(4, 2)
	test.That(t, cl.ids(), test.ShouldResemble, []int{1, 4, 0})
	test.That(t, cl.worst(), test.ShouldEqual, 4)

	// ties keep insertion order
	cl.insert(5, 1)
	test.That(t, cl.ids(), test.ShouldResemble, []int{1, 5, 4})

	empty := newCandidateList(0)
	empty.insert(0, 1)
	test.That(t, empty.ids(), test.ShouldBeEmpty)
}
