package types

// Array holds a per-vertex attribute channel. At most one of the slices is
// populated; the populated slice determines the array dimension.
type Array struct {
	Vec2 []Vec2
	Vec3 []Vec3
	Vec4 []Vec4
}

// Wrap a list of 2 component vectors.
func Vec2Array(data []Vec2) Array {
	return Array{Vec2: data}
}

// Wrap a list of 3 component vectors.
func Vec3Array(data []Vec3) Array {
	return Array{Vec3: data}
}

// Wrap a list of 4 component vectors.
func Vec4Array(data []Vec4) Array {
	return Array{Vec4: data}
}

// Get the number of elements in the array.
func (a Array) Len() int {
	switch {
	case a.Vec2 != nil:
		return len(a.Vec2)
	case a.Vec3 != nil:
		return len(a.Vec3)
	case a.Vec4 != nil:
		return len(a.Vec4)
	}
	return 0
}

// Get the number of components per element or 0 for an empty array.
func (a Array) Dim() int {
	switch {
	case a.Vec2 != nil:
		return 2
	case a.Vec3 != nil:
		return 3
	case a.Vec4 != nil:
		return 4
	}
	return 0
}

// Returns true if the array holds no data.
func (a Array) Empty() bool {
	return a.Len() == 0
}

// Get the size of the array contents in bytes.
func (a Array) SizeInBytes() int {
	return a.Len() * a.Dim() * 4
}

// Create a deep copy of the array.
func (a Array) Clone() Array {
	var out Array
	if a.Vec2 != nil {
		out.Vec2 = append(make([]Vec2, 0, len(a.Vec2)), a.Vec2...)
	}
	if a.Vec3 != nil {
		out.Vec3 = append(make([]Vec3, 0, len(a.Vec3)), a.Vec3...)
	}
	if a.Vec4 != nil {
		out.Vec4 = append(make([]Vec4, 0, len(a.Vec4)), a.Vec4...)
	}
	return out
}
