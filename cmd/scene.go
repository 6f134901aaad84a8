package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"

	"github.com/marchelbling/osg/asset/filter"
	"github.com/marchelbling/osg/asset/scene/container"
	"github.com/marchelbling/osg/asset/scene/reader"
	"github.com/marchelbling/osg/asset/scene/writer"
	"github.com/urfave/cli"
)

// Display scene info.
func ShowSceneStats(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file")
	}

	root, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	return filter.NewStats(ctx.String("json")).Apply(root)
}

// Apply one or more filters to a scene.
func FilterScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected an input and an output scene file")
	}

	cfg := filter.Config{
		StatsPath:    ctx.String("stats-json"),
		MetaPath:     ctx.String("meta"),
		MetadataPath: ctx.String("metadata"),
	}
	if ctx.IsSet("seed") {
		cfg.Rand = rand.New(rand.NewSource(ctx.Int64("seed")))
	}

	method, err := container.ParseMethod(ctx.String("container"))
	if err != nil {
		return err
	}
	return filterScene(ctx.Args().Get(0), ctx.Args().Get(1), ctx.StringSlice("name"), cfg, writer.Options{Container: method})
}

func filterScene(in, out string, names []string, cfg filter.Config, opts writer.Options) error {
	if len(names) == 0 {
		return errors.New("no filter selected")
	}

	// resolve every filter before reading the scene
	filters := make([]filter.Filter, 0, len(names))
	for _, name := range names {
		f, err := filter.New(name, cfg)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}

	root, err := reader.ReadSceneWithConfig(in, cfg)
	if err != nil {
		return err
	}
	for _, f := range filters {
		logger.Infof("applying %s filter", f.Name())
		if err = f.Apply(root); err != nil {
			return err
		}
	}
	return writer.WriteScene(root, out, opts)
}

// List the available filters.
func ListFilters(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	var buf bytes.Buffer
	names := filter.Names()
	buf.WriteString(fmt.Sprintf("\n%d filter(s) available; append .<name> to a scene file to apply one while reading:\n\n", len(names)))
	for _, name := range names {
		buf.WriteString(fmt.Sprintf("  %s\n", name))
	}

	logger.Notice(buf.String())
	return nil
}
