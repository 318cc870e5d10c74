package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/pointlocator/locator"
	"go.viam.com/pointlocator/logging"
	"go.viam.com/pointlocator/pointcloud"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	printf(w, "Info: "+format, a...)
}

// newLogger returns a logger writing to the app's error writer so results stay machine readable.
func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("pointlocator")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if c.Bool(debugFlag) {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.INFO)
	}
	return logger
}

// loadConfig reads the --config file, falling back to the defaults.
func loadConfig(c *cli.Context) (*locator.Config, error) {
	path := c.Path(configFlag)
	if path == "" {
		return locator.DefaultConfig(), nil
	}
	return locator.ReadConfig(path)
}

// loadSource reads the point cloud named by the first argument.
func loadSource(c *cli.Context, logger logging.Logger) (*pointcloud.Buffer, error) {
	if c.Args().Len() != 1 {
		return nil, errors.New("expected exactly one point cloud file argument")
	}
	fn := c.Args().First()
	buf, err := pointcloud.NewFromFile(fn, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load point cloud %q", fn)
	}
	logger.Debugw("loaded point cloud", "file", fn, "points", buf.Size())
	return buf, nil
}

// parsePoint parses "x,y,z".
func parsePoint(raw string) (r3.Vector, error) {
	parts := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("point %q must have three comma separated coordinates", raw)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "invalid coordinate %q in point %q", part, raw)
		}
		coords[i] = v
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("%g, %g, %g", v.X, v.Y, v.Z)
}
