package compressor

import (
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/codec"
)

// Collect the strip topology of a geometry. Triangle strips are used as-is
// while independent triangles become strips of three indices.
func geometryStrips(geom *scene.Geometry) []codec.Strip {
	var strips []codec.Strip
	for _, ps := range geom.PrimitiveSets {
		switch ps.Mode {
		case scene.TriangleStrip:
			strips = append(strips, codec.Strip(ps.Indices))
		case scene.Triangles:
			for tri := 0; tri+2 < len(ps.Indices); tri += 3 {
				strips = append(strips, codec.Strip(ps.Indices[tri:tri+3]))
			}
		}
	}
	return strips
}
