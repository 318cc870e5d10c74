package pointcloud

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/pointlocator/logging"
)

var filePoints = []r3.Vector{
	{X: 0, Y: 0, Z: 0},
	{X: 1.5, Y: -2.25, Z: 3},
	{X: -4, Y: 0.5, Z: 100},
}

func TestPCDRoundTrip(t *testing.T) {
	for _, pcdType := range []PCDType{PCDAscii, PCDBinary} {
		var out bytes.Buffer
		test.That(t, ToPCD(NewBufferFromPoints(filePoints), &out, pcdType), test.ShouldBeNil)

		buf, err := ReadPCD(&out)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, buf.Points(), test.ShouldResemble, filePoints)
	}

	var out bytes.Buffer
	test.That(t, ToPCD(NewBufferFromPoints(filePoints), &out, PCDCompressed), test.ShouldNotBeNil)
}

func TestReadPCDExtraFields(t *testing.T) {
	ascii := strings.Join([]string{
		"# .PCD v0.7 - Point Cloud Data file format",
		"VERSION .7",
		"FIELDS x y z rgb",
		"SIZE 4 4 4 4",
		"TYPE F F F U",
		"COUNT 1 1 1 1",
		"WIDTH 2",
		"HEIGHT 1",
		"VIEWPOINT 0 0 0 1 0 0 0",
		"POINTS 2",
		"DATA ascii",
		"1 2 3 255",
		"-1 -2 -3 0",
	}, "\n")
	buf, err := ReadPCD(strings.NewReader(ascii))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.Points(), test.ShouldResemble, []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -1, Y: -2, Z: -3}})

	// doubles followed by a skipped field
	var data bytes.Buffer
	data.WriteString("VERSION .7\nFIELDS x y z intensity\nSIZE 8 8 8 2\nTYPE F F F U\nCOUNT 1 1 1 1\n" +
		"WIDTH 1\nHEIGHT 1\nVIEWPOINT 0 0 0 1 0 0 0\nPOINTS 1\nDATA binary\n")
	record := make([]byte, 26)
	binary.LittleEndian.PutUint64(record, math.Float64bits(0.1))
	binary.LittleEndian.PutUint64(record[8:], math.Float64bits(0.2))
	binary.LittleEndian.PutUint64(record[16:], math.Float64bits(0.3))
	data.Write(record)
	buf, err = ReadPCD(&data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.Points(), test.ShouldResemble, []r3.Vector{{X: 0.1, Y: 0.2, Z: 0.3}})
}

func TestReadPCDErrors(t *testing.T) {
	header := func(lines ...string) string {
		return strings.Join(lines, "\n") + "\n"
	}
	for _, tc := range []struct {
		name   string
		input  string
		errStr string
	}{
		{"empty", "", "header line 0"},
		{"version", header("VERSION .6"), "unsupported pcd version"},
		{"order", header("VERSION .7", "SIZE 4 4 4"), "supposed to start with FIELDS"},
		{"fields", header("VERSION .7", "FIELDS a b c"), "first three must be x y z"},
		{"type", header("VERSION .7", "FIELDS x y z", "SIZE 4 4 4", "TYPE F U F"), "4 or 8 byte float"},
		{
			"points",
			header("VERSION .7", "FIELDS x y z", "SIZE 4 4 4", "TYPE F F F", "COUNT 1 1 1",
				"WIDTH 2", "HEIGHT 1", "VIEWPOINT 0 0 0 1 0 0 0", "POINTS 3"),
			"does not match",
		},
		{
			"short binary",
			header("VERSION .7", "FIELDS x y z", "SIZE 4 4 4", "TYPE F F F", "COUNT 1 1 1",
				"WIDTH 2", "HEIGHT 1", "VIEWPOINT 0 0 0 1 0 0 0", "POINTS 2", "DATA binary") + "abc",
			"reading point 0",
		},
		{
			"compressed",
			header("VERSION .7", "FIELDS x y z", "SIZE 4 4 4", "TYPE F F F", "COUNT 1 1 1",
				"WIDTH 1", "HEIGHT 1", "VIEWPOINT 0 0 0 1 0 0 0", "POINTS 1", "DATA binary_compressed"),
			"compressed",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadPCD(strings.NewReader(tc.input))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}
}

func TestLASRoundTrip(t *testing.T) {
	logger := logging.NewTestLogger(t)
	fn := filepath.Join(t.TempDir(), "cloud.las")
	test.That(t, WriteToLASFile(NewBufferFromPoints(filePoints), fn), test.ShouldBeNil)

	buf, err := NewFromLASFile(fn, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.Size(), test.ShouldEqual, len(filePoints))
	// LAS stores positions as scaled integers
	for i, p := range filePoints {
		got := buf.At(i)
		test.That(t, got.X, test.ShouldAlmostEqual, p.X, 1e-3)
		test.That(t, got.Y, test.ShouldAlmostEqual, p.Y, 1e-3)
		test.That(t, got.Z, test.ShouldAlmostEqual, p.Z, 1e-3)
	}

	// the extension picks the LAS codec
	viaExt := filepath.Join(t.TempDir(), "ext.las")
	test.That(t, WriteToFile(buf, viaExt), test.ShouldBeNil)
	again, err := NewFromFile(viaExt, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again.Size(), test.ShouldEqual, len(filePoints))

	_, err = NewFromLASFile(filepath.Join(t.TempDir(), "missing.las"), logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFileExtensions(t *testing.T) {
	logger := logging.NewTestLogger(t)
	dir := t.TempDir()

	fn := filepath.Join(dir, "cloud.pcd")
	test.That(t, WriteToFile(NewBufferFromPoints(filePoints), fn), test.ShouldBeNil)
	buf, err := NewFromFile(fn, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.Points(), test.ShouldResemble, filePoints)

	test.That(t, WriteToFile(buf, filepath.Join(dir, "cloud.ply")), test.ShouldNotBeNil)
	_, err = NewFromFile(filepath.Join(dir, "cloud.ply"), logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewFromFile(filepath.Join(dir, "missing.pcd"), logger)
	test.That(t, err, test.ShouldNotBeNil)
}
