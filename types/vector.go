package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

const floatCmpEpsilon = 1e-6

type Vec2 f32.Vec2
type Vec3 f32.Vec3
type Vec4 f32.Vec4

// Expand a 2 component vector to a Vec3
func (v Vec2) Vec3(z float32) Vec3 {
	return Vec3{v[0], v[1], z}
}

// Expand a 3 component vector to a Vec4.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// Drop the z component.
func (v Vec3) Vec2() Vec2 {
	return Vec2{v[0], v[1]}
}

// Add a vector.
func (v Vec2) Add(v2 Vec2) Vec2 {
	return Vec2{v[0] + v2[0], v[1] + v2[1]}
}

// Subtract a vector.
func (v Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v[0] - v2[0], v[1] - v2[1]}
}

// Multiply a 2 component vector with a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Calculate dot product of 2 vectors
func (v Vec2) Dot(v2 Vec2) float32 {
	return v[0]*v2[0] + v[1]*v2[1]
}

// Apply fn to each component.
func (v Vec2) Map(fn func(float32) float32) Vec2 {
	return Vec2{fn(v[0]), fn(v[1])}
}

// Combine the components of v, a and b with fn.
func (v Vec2) Zip(a, b Vec2, fn func(x, y, z float32) float32) Vec2 {
	return Vec2{fn(v[0], a[0], b[0]), fn(v[1], a[1], b[1])}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Apply fn to each component.
func (v Vec3) Map(fn func(float32) float32) Vec3 {
	return Vec3{fn(v[0]), fn(v[1]), fn(v[2])}
}

// Combine the components of v, a and b with fn.
func (v Vec3) Zip(a, b Vec3, fn func(x, y, z float32) float32) Vec3 {
	return Vec3{fn(v[0], a[0], b[0]), fn(v[1], a[1], b[1]), fn(v[2], a[2], b[2])}
}

// Get 3 component vector length.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Normalize 3 component vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	return v.Mul(1.0 / l)
}

// Calculate dot product of 2 vectors
func (v Vec3) Dot(v2 Vec3) float32 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Reduce a 4 component vector to a Vec3.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Calc min component from two vectors
func MinVec2(v1, v2 Vec2) Vec2 {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	return out
}

// Calc max component from two vectors
func MaxVec2(v1, v2 Vec2) Vec2 {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	return out
}

// Calc min component from two vectors
func MinVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	if v2[2] < out[2] {
		out[2] = v2[2]
	}
	return out
}

// Calc maxcomponent from two vectors
func MaxVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	if v2[2] > out[2] {
		out[2] = v2[2]
	}
	return out
}

// Check if two vectors are equal within the given tolerance.
func ApproxEqual(v1, v2 Vec3, tolerance float32) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(v1[i]-v2[i])) > float64(tolerance) {
			return false
		}
	}
	return true
}

// Calculate the AABB of a list of points. An empty list yields a zero box.
func BBox3(points []Vec3) [2]Vec3 {
	if len(points) == 0 {
		return [2]Vec3{}
	}

	bbox := [2]Vec3{points[0], points[0]}
	for _, p := range points[1:] {
		bbox[0] = MinVec3(bbox[0], p)
		bbox[1] = MaxVec3(bbox[1], p)
	}
	return bbox
}

// Calculate the AABB of a list of 2D points. An empty list yields a zero box.
func BBox2(points []Vec2) [2]Vec2 {
	if len(points) == 0 {
		return [2]Vec2{}
	}

	bbox := [2]Vec2{points[0], points[0]}
	for _, p := range points[1:] {
		bbox[0] = MinVec2(bbox[0], p)
		bbox[1] = MaxVec2(bbox[1], p)
	}
	return bbox
}
