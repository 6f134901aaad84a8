package filter

import (
	"math/rand"

	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
	"github.com/marchelbling/osg/types"
)

const (
	stripAlpha     = 0.2
	stripShininess = 96
)

// Strip replaces every geometry holding triangle strips by one clone per
// strip, each with a random translucent diffuse color.
type Strip struct {
	logger log.Logger
	rng    *rand.Rand
}

func NewStrip(rng *rand.Rand) *Strip {
	return &Strip{
		logger: log.New("strip"),
		rng:    rng,
	}
}

func (f *Strip) Name() string { return "strip" }

func (f *Strip) Apply(root *scene.Node) error {
	clones := 0
	err := root.Walk(func(node *scene.Node) error {
		geometries := make([]*scene.Geometry, 0, len(node.Geometries))
		for _, geom := range node.Geometries {
			split := f.split(geom)
			if len(split) == 0 {
				geometries = append(geometries, geom)
				continue
			}
			geometries = append(geometries, split...)
			clones += len(split)
		}
		node.Geometries = geometries
		return nil
	})
	f.logger.Infof("split geometries into %d strips", clones)
	return err
}

func (f *Strip) split(geom *scene.Geometry) []*scene.Geometry {
	var clones []*scene.Geometry
	for _, ps := range geom.PrimitiveSets {
		if ps.Mode != scene.TriangleStrip {
			continue
		}

		clone := geom.Clone()
		clone.PrimitiveSets = []scene.PrimitiveSet{{
			Mode:    ps.Mode,
			Indices: append([]uint32(nil), ps.Indices...),
		}}
		if clone.StateSet == nil {
			clone.StateSet = &scene.StateSet{}
		}
		clone.StateSet.Diffuse = f.randomColor()
		clone.StateSet.Shininess = stripShininess
		clones = append(clones, clone)
	}
	return clones
}

func (f *Strip) randomColor() types.Vec4 {
	return types.Vec4{f.rng.Float32(), f.rng.Float32(), f.rng.Float32(), stripAlpha}
}
