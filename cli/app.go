// Package cli contains the point locator command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	configFlag     = "config"
	debugFlag      = "debug"
	pointFlag      = "point"
	nFlag          = "n"
	octantFlag     = "octant"
	maxCheckedFlag = "max-checked"
	radiusFlag     = "radius"
	outputFlag     = "output"
	toleranceFlag  = "tolerance"
	formatFlag     = "format"

	formatTable = "table"
	formatCSV   = "csv"
)

// pointFlags returns the flags shared by the query commands.
func pointFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     pointFlag,
			Aliases:  []string{"p"},
			Required: true,
			Usage:    "query point as `X,Y,Z`",
		},
		&cli.StringFlag{
			Name:  formatFlag,
			Value: formatTable,
			Usage: fmt.Sprintf("output format, either %s or %s", formatTable, formatCSV),
		},
	}
}

var app = &cli.App{
	Name:            "pointlocator",
	Usage:           "answer proximity queries over point cloud files",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "load locator configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "stats",
			Usage:     "build a locator over a point cloud and print the grid layout",
			ArgsUsage: "<file.pcd|file.las>",
			Action:    StatsAction,
		},
		{
			Name:      "closest",
			Usage:     "find the points closest to a query point",
			ArgsUsage: "<file.pcd|file.las>",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  nFlag,
					Value: 1,
					Usage: "number of points to return",
				},
				&cli.BoolFlag{
					Name:  octantFlag,
					Usage: "return up to n points from each of the eight octants around the query point",
				},
				&cli.IntFlag{
					Name:  maxCheckedFlag,
					Usage: "with --octant, stop after examining this many points per search phase",
				},
			}, pointFlags()...),
			Action: ClosestAction,
		},
		{
			Name:      "radius",
			Usage:     "find every point within a radius of a query point",
			ArgsUsage: "<file.pcd|file.las>",
			Flags: append([]cli.Flag{
				&cli.Float64Flag{
					Name:     radiusFlag,
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "search radius",
				},
			}, pointFlags()...),
			Action: RadiusAction,
		},
		{
			Name:      "dedupe",
			Usage:     "drop points closer than a tolerance to an earlier point",
			ArgsUsage: "<file.pcd|file.las>",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     outputFlag,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "write the kept points to `FILE` (.pcd or .las)",
				},
				&cli.Float64Flag{
					Name:  toleranceFlag,
					Usage: "distance under which two points are the same, overriding the config",
				},
			},
			Action: DedupeAction,
		},
		{
			Name:      "surface",
			Usage:     "write the outline of the occupied buckets as an OBJ mesh",
			ArgsUsage: "<file.pcd|file.las>",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     outputFlag,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "write the mesh to `FILE`",
				},
			},
			Action: SurfaceAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
