package filter

import (
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
)

// TriStrip converts independent triangles into triangle strips using a
// greedy walk over shared edges. Triangles that cannot be chained stay in a
// single Triangles primitive set.
type TriStrip struct {
	logger log.Logger
}

func NewTriStrip() *TriStrip {
	return &TriStrip{logger: log.New("tristrip")}
}

func (f *TriStrip) Name() string { return "tristrip" }

func (f *TriStrip) Apply(root *scene.Node) error {
	var triangles, strips int
	err := root.WalkGeometries(func(_ *scene.Node, geom *scene.Geometry) error {
		sets := make([]scene.PrimitiveSet, 0, len(geom.PrimitiveSets))
		for _, ps := range geom.PrimitiveSets {
			if ps.Mode != scene.Triangles {
				sets = append(sets, ps)
				continue
			}
			triangles += ps.NumTriangles()
			stripified := Stripify(ps.Indices)
			for _, out := range stripified {
				if out.Mode == scene.TriangleStrip {
					strips++
				}
			}
			sets = append(sets, stripified...)
		}
		geom.PrimitiveSets = sets
		return nil
	})
	f.logger.Infof("stripified %d triangles into %d strips", triangles, strips)
	return err
}

type directedEdge struct {
	from, to uint32
}

// Stripify converts a triangle list into triangle strips that preserve the
// winding of every triangle. Chains covering a single triangle are returned
// as one trailing Triangles set.
func Stripify(indices []uint32) []scene.PrimitiveSet {
	numTris := len(indices) / 3
	visited := make([]bool, numTris)

	// triangles are indexed by each of their directed edges
	edges := make(map[directedEdge][]int, 3*numTris)
	for tri := 0; tri < numTris; tri++ {
		a, b, c := indices[3*tri], indices[3*tri+1], indices[3*tri+2]
		edges[directedEdge{a, b}] = append(edges[directedEdge{a, b}], tri)
		edges[directedEdge{b, c}] = append(edges[directedEdge{b, c}], tri)
		edges[directedEdge{c, a}] = append(edges[directedEdge{c, a}], tri)
	}

	var out []scene.PrimitiveSet
	var loose []uint32
	for tri := 0; tri < numTris; tri++ {
		if visited[tri] {
			continue
		}

		// pick the rotation of the seed triangle yielding the longest strip
		var best []uint32
		var bestTris []int
		for rot := 0; rot < 3; rot++ {
			strip, tris := growStrip(indices, edges, visited, tri, rot)
			if len(strip) > len(best) {
				best, bestTris = strip, tris
			}
		}
		for _, t := range bestTris {
			visited[t] = true
		}

		if len(best) == 3 {
			loose = append(loose, best...)
			continue
		}
		out = append(out, scene.PrimitiveSet{Mode: scene.TriangleStrip, Indices: best})
	}

	if len(loose) != 0 {
		out = append(out, scene.PrimitiveSet{Mode: scene.Triangles, Indices: loose})
	}
	return out
}

// Grow a strip from a seed triangle without marking triangles as visited.
func growStrip(indices []uint32, edges map[directedEdge][]int, visited []bool, seed, rot int) ([]uint32, []int) {
	corner := func(tri, i int) uint32 { return indices[3*tri+(i+rot)%3] }
	strip := []uint32{corner(seed, 0), corner(seed, 1), corner(seed, 2)}
	tris := []int{seed}
	used := map[int]bool{seed: true}

	for {
		// the next triangle is (s[i], s[i+1], x) for even i and
		// (s[i+1], s[i], x) for odd i
		i := len(strip) - 2
		edge := directedEdge{strip[i], strip[i+1]}
		if i%2 == 1 {
			edge = directedEdge{strip[i+1], strip[i]}
		}

		next := -1
		for _, candidate := range edges[edge] {
			if !visited[candidate] && !used[candidate] {
				next = candidate
				break
			}
		}
		if next == -1 {
			return strip, tris
		}

		strip = append(strip, thirdVertex(indices, next, edge))
		tris = append(tris, next)
		used[next] = true
	}
}

// Get the vertex of a triangle that follows the given directed edge.
func thirdVertex(indices []uint32, tri int, edge directedEdge) uint32 {
	for i := 0; i < 3; i++ {
		if indices[3*tri+i] == edge.from && indices[3*tri+(i+1)%3] == edge.to {
			return indices[3*tri+(i+2)%3]
		}
	}
	return indices[3*tri+2]
}
