package codec

import (
	"github.com/chewxy/math32"
	"github.com/marchelbling/osg/types"
)

// Guards the projection singularity at z = 1.
const projectionEpsilon float32 = 1e-4

// Project maps unit normals onto the plane using an azimuthal projection
// centered on the (0, 0, -1) pole. Projected points lie inside a disk of
// radius 2. Normals close to the (0, 0, 1) pole are not recoverable but
// still produce finite values.
func Project(normals []types.Vec3) []types.Vec2 {
	out := make([]types.Vec2, len(normals))
	for index, n := range normals {
		alpha := math32.Sqrt(2 / math32.Max(projectionEpsilon, 1-n[2]))
		out[index] = types.Vec2{n[0] * alpha, n[1] * alpha}
	}
	return out
}

// Unproject reverses Project.
func Unproject(projections []types.Vec2) []types.Vec3 {
	out := make([]types.Vec3, len(projections))
	for index, p := range projections {
		r2 := p.Dot(p)
		beta := math32.Sqrt(math32.Max(0, 1-r2/4))
		out[index] = types.Vec3{p[0] * beta, p[1] * beta, -1 + r2/2}
	}
	return out
}
