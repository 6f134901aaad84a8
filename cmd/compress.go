package cmd

import (
	"errors"
	"strings"

	"github.com/marchelbling/osg/asset/compressor"
	"github.com/marchelbling/osg/asset/filter"
	"github.com/marchelbling/osg/asset/scene/container"
	"github.com/marchelbling/osg/asset/scene/reader"
	"github.com/marchelbling/osg/asset/scene/writer"
	"github.com/marchelbling/osg/config"
	"github.com/urfave/cli"
)

const compressedExt = ".qtz"

// Compress the vertex attributes of a scene and write it to a zip file.
func CompressScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected an input and an output scene file")
	}

	profile := config.Default()
	if path := ctx.String("profile"); path != "" {
		var err error
		if profile, err = config.Load(path); err != nil {
			return err
		}
	}
	if ctx.Bool("stripify") {
		profile.Stripify = true
	}

	opts, err := profile.Options()
	if err != nil {
		return err
	}
	if optString := ctx.String("options"); optString != "" {
		if opts, err = compressor.ParseOptions(optString); err != nil {
			return err
		}
	}

	method, err := profile.ContainerMethod()
	if err != nil {
		return err
	}
	if name := ctx.String("container"); name != "" {
		if method, err = container.ParseMethod(name); err != nil {
			return err
		}
	}

	return compressScene(ctx.Args().Get(0), ctx.Args().Get(1), profile.Stripify, writer.Options{Container: method, Compressor: opts})
}

func compressScene(in, out string, stripify bool, opts writer.Options) error {
	logger.Noticef("compressing scene %s (%s, container=%s)", in, opts.Compressor, opts.Container)
	root, err := reader.ReadScene(in)
	if err != nil {
		return err
	}

	if stripify {
		if err = filter.NewTriStrip().Apply(root); err != nil {
			return err
		}
	}

	if !strings.HasSuffix(out, compressedExt) {
		out += compressedExt
	}
	return writer.WriteScene(root, out, opts)
}

// Restore the vertex attributes of a compressed scene.
func DecompressScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected an input and an output scene file")
	}

	method, err := container.ParseMethod(ctx.String("container"))
	if err != nil {
		return err
	}
	return decompressScene(ctx.Args().Get(0), ctx.Args().Get(1), writer.Options{Container: method})
}

func decompressScene(in, out string, opts writer.Options) error {
	logger.Noticef("decompressing scene %s", in)
	if !strings.HasSuffix(in, compressedExt) {
		in += compressedExt
	}
	root, err := reader.ReadScene(in)
	if err != nil {
		return err
	}
	return writer.WriteScene(root, out, opts)
}
