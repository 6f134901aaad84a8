package codec

import "github.com/marchelbling/osg/types"

// Vector is the closed set of vector types the codec can transform.
type Vector[V any] interface {
	types.Vec2 | types.Vec3

	Add(V) V
	Sub(V) V
	Map(func(float32) float32) V
	Zip(a, b V, fn func(x, y, z float32) float32) V
}
