package filter

import (
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
	"github.com/marchelbling/osg/types"
)

// Cleaner converts 3 component texture coordinates into 2 component ones.
type Cleaner struct {
	logger log.Logger
}

func NewCleaner() *Cleaner {
	return &Cleaner{logger: log.New("cleaner")}
}

func (f *Cleaner) Name() string { return "cleaner" }

func (f *Cleaner) Apply(root *scene.Node) error {
	cleaned := 0
	err := root.WalkGeometries(func(_ *scene.Node, geom *scene.Geometry) error {
		for unit, tc := range geom.TexCoords {
			if tc.Vec3 == nil {
				continue
			}
			uvs := make([]types.Vec2, len(tc.Vec3))
			for i, uvw := range tc.Vec3 {
				uvs[i] = uvw.Vec2()
			}
			geom.TexCoords[unit] = types.Vec2Array(uvs)
			cleaned++
		}
		return nil
	})
	f.logger.Infof("converted %d texture coordinate arrays", cleaned)
	return err
}
