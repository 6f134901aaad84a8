package scene

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/marchelbling/osg/types"
)

func quadGeometry(name string) *Geometry {
	return &Geometry{
		Name:     name,
		Vertices: types.Vec3Array([]types.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}),
		Normals:  types.Vec3Array([]types.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}),
		TexCoords: []types.Array{
			types.Vec2Array([]types.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}),
		},
		PrimitiveSets: []PrimitiveSet{
			{Mode: Triangles, Indices: []uint32{0, 1, 2, 0, 2, 3}},
		},
		StateSet: &StateSet{
			Textures: []*Texture{{ImageFile: "brick.png"}},
			Diffuse:  types.Vec4{1, 1, 1, 1},
		},
	}
}

func testGraph() *Node {
	root := NewNode("root")
	left := NewNode("left")
	left.AddGeometry(quadGeometry("quad"))
	right := NewNode("right")
	right.AddChild(NewNode("leaf"))
	strip := quadGeometry("strip")
	strip.PrimitiveSets = []PrimitiveSet{{Mode: TriangleStrip, Indices: []uint32{0, 1, 3, 2}}}
	strip.StateSet.Textures[0].ImageFile = "wood.png"
	right.AddGeometry(strip)
	root.AddChild(left)
	root.AddChild(right)
	return root
}

func TestWalkOrder(t *testing.T) {
	var visited []string
	err := testGraph().Walk(func(n *Node) error {
		visited = append(visited, n.Name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	expVisited := []string{"root", "left", "right", "leaf"}
	if !reflect.DeepEqual(visited, expVisited) {
		t.Fatalf("expected walk order %v; got %v", expVisited, visited)
	}
}

func TestWalkSkipChildrenAndAbort(t *testing.T) {
	var visited []string
	err := testGraph().Walk(func(n *Node) error {
		visited = append(visited, n.Name)
		if n.Name == "right" {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(visited) != 3 {
		t.Fatalf("expected leaf to be skipped; visited %v", visited)
	}

	expErr := errors.New("boom")
	err = testGraph().Walk(func(n *Node) error {
		if n.Name == "left" {
			return expErr
		}
		return nil
	})
	if err != expErr {
		t.Fatalf("expected walk to abort with %v; got %v", expErr, err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := testGraph()
	root.SetUserString("source_tool", "sketchup")
	clone := root.Clone()

	if !reflect.DeepEqual(root, clone) {
		t.Fatal("expected clone to equal the original graph")
	}

	geom := clone.Children[0].Geometries[0]
	geom.Vertices.Vec3[0][0] = 42
	geom.TexCoords[0].Vec2[0][0] = 42
	geom.PrimitiveSets[0].Indices[0] = 42
	geom.StateSet.Textures[0].ImageFile = "changed.png"
	geom.SetUserValue("bytes", 2)
	clone.SetUserString("source_tool", "changed")

	orig := root.Children[0].Geometries[0]
	if orig.Vertices.Vec3[0][0] != 0 || orig.TexCoords[0].Vec2[0][0] != 0 || orig.PrimitiveSets[0].Indices[0] != 0 {
		t.Fatal("expected clone attribute arrays to not alias the original")
	}
	if orig.StateSet.Textures[0].ImageFile != "brick.png" {
		t.Fatal("expected clone state set to not alias the original")
	}
	if _, exists := orig.UserValue("bytes"); exists {
		t.Fatal("expected clone user values to not alias the original")
	}
	if v, _ := root.UserString("source_tool"); v != "sketchup" {
		t.Fatalf("expected original user string to be preserved; got %q", v)
	}
}

func TestUserValues(t *testing.T) {
	geom := &Geometry{}
	if _, exists := geom.UserValue("mode"); exists {
		t.Fatal("expected missing user value")
	}

	geom.SetUserValue("mode", 3)
	if v, exists := geom.UserValue("mode"); !exists || v != 3 {
		t.Fatalf("expected user value 3; got %v (exists: %t)", v, exists)
	}

	geom.DeleteUserValue("mode")
	if _, exists := geom.UserValue("mode"); exists {
		t.Fatal("expected user value to be deleted")
	}
}

func TestCollectStats(t *testing.T) {
	root := testGraph()
	root.Children[1].Geometries[0].SetUserValue("mode", 1)

	s := Collect(root)
	exp := Summary{
		Nodes:         4,
		Geometries:    2,
		Vertices:      8,
		Triangles:     4,
		PrimitiveSets: 2,
		Strips:        1,
		Textures:      2,
		VertexBytes:   96,
		NormalBytes:   96,
		TexCoordBytes: 64,
		IndexBytes:    40,
		Compressed:    1,
	}
	if s != exp {
		t.Fatalf("expected summary %+v; got %+v", exp, s)
	}

	table := Stats(root)
	for _, exp := range []string{"Geometries", "Triangles", "Total", "296 bytes"} {
		if !strings.Contains(table, exp) {
			t.Fatalf("expected stats table to contain %q; got\n%s", exp, table)
		}
	}
}

func TestTextureFiles(t *testing.T) {
	files := TextureFiles(testGraph())
	expFiles := []string{"brick.png", "wood.png"}
	if !reflect.DeepEqual(files, expFiles) {
		t.Fatalf("expected texture files %v; got %v", expFiles, files)
	}
}

func TestFmtSize(t *testing.T) {
	type spec struct {
		sizes []int
		exp   string
	}
	specs := []spec{
		{[]int{12}, " 12 bytes"},
		{[]int{1000, 500}, "1.5 kb"},
		{[]int{2500000}, "  2.5 mb"},
	}
	for idx, s := range specs {
		if got := fmtSize(s.sizes...); got != s.exp {
			t.Fatalf("[spec %d] expected %q; got %q", idx, s.exp, got)
		}
	}
}
