package scene

import (
	"fmt"
	"maps"

	"github.com/marchelbling/osg/types"
)

// The topology of a primitive set.
type PrimitiveMode uint8

const (
	Triangles PrimitiveMode = iota
	TriangleStrip
)

func (m PrimitiveMode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// A PrimitiveSet indexes into the vertex attributes of its geometry.
type PrimitiveSet struct {
	Mode    PrimitiveMode
	Indices []uint32
}

// Number of triangles described by this primitive set.
func (ps *PrimitiveSet) NumTriangles() int {
	switch ps.Mode {
	case Triangles:
		return len(ps.Indices) / 3
	case TriangleStrip:
		if len(ps.Indices) < 3 {
			return 0
		}
		return len(ps.Indices) - 2
	}
	return 0
}

// A texture reference. Only the image file name is tracked; pixel data is
// never loaded.
type Texture struct {
	ImageFile string
}

// StateSet holds the render state attached to a node or geometry.
type StateSet struct {
	Textures    []*Texture
	Diffuse     types.Vec4
	Shininess   float32
	UserStrings map[string]string
}

// Clone performs a deep copy of the state set.
func (ss *StateSet) Clone() *StateSet {
	if ss == nil {
		return nil
	}

	clone := &StateSet{
		Diffuse:     ss.Diffuse,
		Shininess:   ss.Shininess,
		UserStrings: maps.Clone(ss.UserStrings),
	}
	if ss.Textures != nil {
		clone.Textures = make([]*Texture, len(ss.Textures))
		for idx, tex := range ss.Textures {
			if tex != nil {
				texCopy := *tex
				clone.Textures[idx] = &texCopy
			}
		}
	}
	return clone
}

// Geometry holds per-vertex attribute arrays and the primitive sets
// indexing them.
type Geometry struct {
	Name string

	Vertices  types.Array
	Normals   types.Array
	Colors    types.Array
	TexCoords []types.Array

	PrimitiveSets []PrimitiveSet
	StateSet      *StateSet

	// Numeric annotations that travel with the geometry through
	// serialization. Compression parameters are stored here.
	UserValues map[string]float64
}

// Set a numeric user value.
func (g *Geometry) SetUserValue(key string, value float64) {
	if g.UserValues == nil {
		g.UserValues = make(map[string]float64)
	}
	g.UserValues[key] = value
}

// Get a numeric user value and whether it was defined.
func (g *Geometry) UserValue(key string) (float64, bool) {
	value, exists := g.UserValues[key]
	return value, exists
}

// Remove a numeric user value.
func (g *Geometry) DeleteUserValue(key string) {
	delete(g.UserValues, key)
}

// Get the number of vertices in this geometry.
func (g *Geometry) NumVertices() int {
	return g.Vertices.Len()
}

// Get the number of triangles across all primitive sets.
func (g *Geometry) NumTriangles() int {
	count := 0
	for idx := range g.PrimitiveSets {
		count += g.PrimitiveSets[idx].NumTriangles()
	}
	return count
}

// Clone performs a deep copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	clone := &Geometry{
		Name:       g.Name,
		Vertices:   g.Vertices.Clone(),
		Normals:    g.Normals.Clone(),
		Colors:     g.Colors.Clone(),
		StateSet:   g.StateSet.Clone(),
		UserValues: maps.Clone(g.UserValues),
	}
	if g.TexCoords != nil {
		clone.TexCoords = make([]types.Array, len(g.TexCoords))
		for unit, tc := range g.TexCoords {
			clone.TexCoords[unit] = tc.Clone()
		}
	}
	if g.PrimitiveSets != nil {
		clone.PrimitiveSets = make([]PrimitiveSet, len(g.PrimitiveSets))
		for idx, ps := range g.PrimitiveSets {
			clone.PrimitiveSets[idx] = PrimitiveSet{
				Mode:    ps.Mode,
				Indices: append([]uint32(nil), ps.Indices...),
			}
		}
	}
	return clone
}
