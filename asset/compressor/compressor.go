package compressor

import (
	"errors"
	"fmt"
	"time"

	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/codec"
	"github.com/marchelbling/osg/log"
	"github.com/marchelbling/osg/types"
)

// Report summarises a compression or decompression pass.
type Report struct {
	// Number of visited geometries.
	Geometries int

	// Geometries whose selected attributes were all transformed.
	Converted int

	// Geometries left untouched because they had nothing to process or
	// their compression parameters were unavailable.
	Skipped int

	// Geometries where at least one attribute failed and was left untouched.
	Failed int
}

func (r Report) String() string {
	return fmt.Sprintf("%d geometries: %d converted, %d skipped, %d failed", r.Geometries, r.Converted, r.Skipped, r.Failed)
}

// Compressor walks a scene graph and compresses or decompresses the
// attribute arrays of every geometry it finds.
type Compressor struct {
	logger   log.Logger
	compress bool
	opts     Options
}

// Create a compressor. The options are only used when compressing; a
// decompressing pass reads its parameters back from each geometry.
func New(compress bool, opts Options) *Compressor {
	if opts.Bytes != 0 {
		opts.SetBytes(opts.Bytes)
	}
	return &Compressor{
		logger:   log.New("compressor"),
		compress: compress,
		opts:     opts,
	}
}

// Apply the compressor to every geometry below root, in place.
func (c *Compressor) Apply(root *scene.Node) Report {
	var report Report
	start := time.Now()

	_ = root.WalkGeometries(func(_ *scene.Node, geom *scene.Geometry) error {
		report.Geometries++

		var ok bool
		var err error
		if c.compress {
			ok, err = c.compressGeometry(geom)
		} else {
			ok, err = c.decompressGeometry(geom)
		}

		switch {
		case err != nil && errors.Is(err, codec.ErrParamsUnavailable):
			c.logger.Warningf("skipping geometry %q: %s", geom.Name, err)
			report.Skipped++
		case err != nil:
			c.logger.Errorf("geometry %q: %s", geom.Name, err)
			report.Failed++
		case !ok:
			report.Skipped++
		default:
			report.Converted++
		}
		return nil
	})

	verb := "decompressed"
	if c.compress {
		verb = "compressed"
	}
	c.logger.Noticef("%s %s in %d ms", verb, report, time.Since(start).Nanoseconds()/1e6)
	return report
}

func (c *Compressor) compressGeometry(geom *scene.Geometry) (bool, error) {
	if geom.Vertices.Empty() {
		c.logger.Debugf("geometry %q has no vertices", geom.Name)
		return false, nil
	}
	if _, exists := geom.UserValue(keyMode); exists {
		c.logger.Warningf("geometry %q is already compressed", geom.Name)
		return false, nil
	}

	params := codec.Params{Mode: c.opts.Mode, Bytes: c.opts.Bytes}
	if geom.Vertices.Vec3 != nil {
		bbox := types.BBox3(geom.Vertices.Vec3)
		params.VertexBBox = &bbox
	}
	if uvBBox, exists := texCoordBBox(geom.TexCoords); exists {
		params.UvBBox = &uvBBox
	}

	cdc, err := codec.New(params)
	if err != nil {
		return false, err
	}

	c.logger.Debugf("compressing geometry %q (%s)", geom.Name, c.opts)
	done, err := c.transform(geom, c.opts.Attributes, cdc.Compress)

	// only attributes that were actually compressed get flagged
	if done != 0 {
		storeParams(geom, geometryParams{attributes: done, params: params})
	}
	return done != 0, err
}

func (c *Compressor) decompressGeometry(geom *scene.Geometry) (bool, error) {
	gp, err := loadParams(geom)
	if err != nil {
		return false, err
	}

	cdc, err := codec.New(gp.params)
	if err != nil {
		return false, err
	}

	c.logger.Debugf("decompressing geometry %q (attributes=%s mode=%s bytes=%d)", geom.Name, gp.attributes, gp.params.Mode, gp.params.Bytes)
	done, err := c.transform(geom, gp.attributes, cdc.Decompress)

	// keep the parameters of attributes that are still compressed
	clearParams(geom)
	if pending := gp.attributes &^ done; pending != 0 {
		gp.attributes = pending
		storeParams(geom, gp)
	}
	return true, err
}

type transformFn func(kind codec.Kind, in types.Array, strips []codec.Strip) (types.Array, error)

// Run fn over the selected attributes. A failing attribute is left untouched
// and does not stop the remaining ones. Returns the attributes that were
// transformed and the joined errors.
func (c *Compressor) transform(geom *scene.Geometry, attrs Attribute, fn transformFn) (Attribute, error) {
	var done Attribute
	var errs []error
	strips := geometryStrips(geom)

	apply := func(attr Attribute, kind codec.Kind, target *types.Array, strips []codec.Strip) {
		if !attrs.Has(attr) || target.Empty() {
			return
		}
		out, err := fn(kind, *target, strips)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			return
		}
		*target = out
		done |= attr
	}

	apply(VertexAttribute, codec.Vertex, &geom.Vertices, strips)
	apply(NormalAttribute, codec.Normal, &geom.Normals, nil)
	apply(ColorAttribute, codec.Color, &geom.Colors, nil)

	if attrs.Has(UVAttribute) && len(geom.TexCoords) != 0 {
		// every unit shares the uv flag; it only counts once all units succeed
		units := make([]types.Array, len(geom.TexCoords))
		copy(units, geom.TexCoords)
		var unitErrs []error
		for unit := range units {
			if units[unit].Empty() {
				continue
			}
			out, err := fn(codec.UV, units[unit], strips)
			if err != nil {
				unitErrs = append(unitErrs, fmt.Errorf("uv unit %d: %w", unit, err))
				continue
			}
			units[unit] = out
		}
		if len(unitErrs) == 0 {
			geom.TexCoords = units
			done |= UVAttribute
		}
		errs = append(errs, unitErrs...)
	}

	return done, errors.Join(errs...)
}

// Compute the bounding box of all 2 component texture coordinate arrays.
func texCoordBBox(units []types.Array) ([2]types.Vec2, bool) {
	var bbox [2]types.Vec2
	found := false
	for _, unit := range units {
		if len(unit.Vec2) == 0 {
			continue
		}
		unitBBox := types.BBox2(unit.Vec2)
		if !found {
			bbox, found = unitBBox, true
			continue
		}
		bbox[0] = types.MinVec2(bbox[0], unitBBox[0])
		bbox[1] = types.MaxVec2(bbox[1], unitBBox[1])
	}
	return bbox, found
}
