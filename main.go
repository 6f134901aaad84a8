package main

import (
	"fmt"
	"os"

	"github.com/marchelbling/osg/asset/filter"
	"github.com/marchelbling/osg/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	containerFlag := cli.StringFlag{
		Name:  "container",
		Value: "zstd",
		Usage: "block compression of the written scene: none, lz4 or zstd",
	}

	app := cli.NewApp()
	app.Name = "osg"
	app.Usage = "compress scene vertex attributes and run scene filters"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set the log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compress",
			Usage: "compress the vertex attributes of a scene",
			Description: `
Read a scene from a wavefront obj or zip file, quantize and/or predict its
vertex attributes and write the result to a zip archive. The compression
parameters are stored on each geometry so the decompress command can restore
the attributes.

The input file name may carry filter extensions (e.g. scene.obj.cleaner) which
are applied while reading.`,
			ArgsUsage: "scene.obj out.zip",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "profile, p",
					Usage: "YAML compression profile",
				},
				cli.StringFlag{
					Name:  "options, o",
					Usage: `compression options overriding the profile (e.g. "vertex normal prediction quantization=2")`,
				},
				cli.StringFlag{
					Name:  "container",
					Usage: "block compression of the written scene: none, lz4 or zstd (overrides the profile)",
				},
				cli.BoolFlag{
					Name:  "stripify",
					Usage: "convert triangle lists into strips before compressing",
				},
			},
			Action: cmd.CompressScene,
		},
		{
			Name:      "decompress",
			Usage:     "restore the vertex attributes of a compressed scene",
			ArgsUsage: "in.zip out.zip",
			Flags:     []cli.Flag{containerFlag},
			Action:    cmd.DecompressScene,
		},
		{
			Name:      "stats",
			Usage:     "display scene statistics",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "json",
					Usage: `merge the stats under the "stats" key of this JSON file`,
				},
			},
			Action: cmd.ShowSceneStats,
		},
		{
			Name:      "filter",
			Usage:     "apply filters to a scene",
			ArgsUsage: "in_scene out.zip",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "name, n",
					Value: &cli.StringSlice{},
					Usage: "filter to apply; may be repeated",
				},
				cli.StringFlag{
					Name:  "meta",
					Value: filter.DefaultMetaPath,
					Usage: "texture mapping used by the resolve filter",
				},
				cli.StringFlag{
					Name:  "metadata",
					Value: filter.DefaultMetadataPath,
					Usage: "output file of the meta filter",
				},
				cli.StringFlag{
					Name:  "stats-json",
					Usage: "JSON file receiving the output of the stats filter",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed of the strip filter colors",
				},
				containerFlag,
			},
			Action: cmd.FilterScene,
		},
		{
			Name:   "filters",
			Usage:  "list available filters",
			Action: cmd.ListFilters,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
