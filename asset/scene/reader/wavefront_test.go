package reader

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/marchelbling/osg/asset"
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/types"
)

const testObj = `
mtllib scene.mtl
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl brick
f 1/1/1 2/2/1 3/3/1 4/4/1
o empty
o tri
usemtl red
# Comment
f -4 -3 -2
`

const testMtl = `
newmtl brick
Kd 1 0.5 0.25
Ns 10
map_Kd -bm 1 brick.png
newmtl red
include brick
d 0.5
`

func writeTestFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, payload := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func mockResource(payload string) *asset.Resource {
	return asset.NewResourceFromStream("mock.obj", strings.NewReader(payload))
}

func TestFloat32Parser(t *testing.T) {
	expError := `unsupported syntax for "Ns"; expected 1 argument; got 0`
	_, err := parseFloat32([]string{"Ns"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseFloat32([]string{"Ns", "not-a-float"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseFloat32([]string{"Ns", "3.14"})
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.14 {
		t.Fatalf("expected parsed value to be 3.14; got %f", v)
	}
}

func TestVec3Parser(t *testing.T) {
	expError := `unsupported syntax for "v"; expected 3 arguments; got 0`
	_, err := parseVec3([]string{"v"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseVec3([]string{"v", "not-a-float", "2", "3"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseVec3([]string{"v", "3.14", "0", "0.4"})
	if err != nil {
		t.Fatal(err)
	}
	expVal := types.Vec3{3.14, 0, 0.4}
	if !reflect.DeepEqual(v, expVal) {
		t.Fatalf("expected parsed value to be %v; got %v", expVal, v)
	}
}

func TestUVParser(t *testing.T) {
	expError := `unsupported syntax for "vt"; expected 2 arguments; got 1`
	_, err := parseUV([]string{"vt", "1"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	type spec struct {
		in  []string
		exp types.Vec3
	}
	specs := []spec{
		{[]string{"vt", "0.5", "0.25"}, types.Vec3{0.5, 0.25, 0}},
		{[]string{"vt", "0.5", "0.25", "1"}, types.Vec3{0.5, 0.25, 1}},
	}
	for idx, s := range specs {
		v, err := parseUV(s.in)
		if err != nil {
			t.Fatalf("[spec %d] %v", idx, err)
		}
		if v != s.exp {
			t.Fatalf("[spec %d] expected parsed value to be %v; got %v", idx, s.exp, v)
		}
	}
}

func TestSelectFaceCoordinate(t *testing.T) {
	expError := "index out of bounds"
	type spec struct {
		in        string
		listLen   int
		relOffset int
		out       int
		expError  string
	}
	specs := []spec{
		{"2", 1, 0, -1, expError},
		{"-2", 1, 0, -1, expError},
		{"1", 10, 0, 0, ""}, // indices are 1-based
		{"-1", 10, 0, 9, ""},
		{"1", 10, 4, 4, ""}, // included files index from their own first vertex
		{"-1", 10, 4, 9, ""},
	}

	for idx, s := range specs {
		v, err := selectFaceCoordIndex(s.in, s.listLen, s.relOffset)
		if s.expError != "" && (err == nil || err.Error() != s.expError) {
			t.Fatalf("[spec %d] expected error %s; got %v", idx, s.expError, err)
		} else if v != s.out {
			t.Fatalf("[spec %d] expected index to be %d; got %d", idx, s.out, v)
		}
	}
}

func TestReadWavefront(t *testing.T) {
	dir := writeTestFiles(t, map[string]string{"scene.obj": testObj, "scene.mtl": testMtl})
	res, err := asset.NewResource(filepath.Join(dir, "scene.obj"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	root, err := newWavefrontReader().Read(res)
	if err != nil {
		t.Fatal(err)
	}

	if root.Name != "scene" {
		t.Fatalf("expected root to be named after the file; got %q", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected empty objects to be dropped leaving 2 children; got %d", len(root.Children))
	}

	quad := root.Children[0].Geometries[0]
	if quad.Name != "quad_0" {
		t.Fatalf("expected geometry name quad_0; got %q", quad.Name)
	}
	expIndices := []uint32{0, 1, 2, 0, 2, 3}
	if len(quad.PrimitiveSets) != 1 || quad.PrimitiveSets[0].Mode != scene.Triangles || !reflect.DeepEqual(quad.PrimitiveSets[0].Indices, expIndices) {
		t.Fatalf("expected quad to be split into triangles %v; got %v", expIndices, quad.PrimitiveSets)
	}
	if quad.NumVertices() != 4 {
		t.Fatalf("expected 4 de-duplicated vertices; got %d", quad.NumVertices())
	}
	expUVs := []types.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if len(quad.TexCoords) != 1 || !reflect.DeepEqual(quad.TexCoords[0].Vec2, expUVs) {
		t.Fatalf("expected uvs %v; got %v", expUVs, quad.TexCoords)
	}

	brick := quad.StateSet
	if brick == nil || brick.Diffuse != (types.Vec4{1, 0.5, 0.25, 1}) || brick.Shininess != 10 {
		t.Fatalf("expected brick material state set; got %+v", brick)
	}
	if len(brick.Textures) != 1 || brick.Textures[0].ImageFile != "brick.png" {
		t.Fatalf("expected texture options to be skipped; got %v", brick.Textures)
	}

	tri := root.Children[1].Geometries[0]
	if tri.TexCoords != nil {
		t.Fatalf("expected no texture coordinates; got %v", tri.TexCoords)
	}
	expNormal := types.Vec3{0, 0, 1}
	for i, n := range tri.Normals.Vec3 {
		if !types.ApproxEqual(n, expNormal, 1e-6) {
			t.Fatalf("expected generated normal %d to be %v; got %v", i, expNormal, n)
		}
	}
	red := tri.StateSet
	if red.Diffuse != (types.Vec4{1, 0.5, 0.25, 0.5}) || len(red.Textures) != 1 {
		t.Fatalf("expected included material with its own dissolve factor; got %+v", red)
	}
}

func TestReadWavefrontUVW(t *testing.T) {
	payload := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0 1
vt 1 0 1
vt 0 1
f 1/1 2/2 3/3
`
	root, err := newWavefrontReader().Read(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}

	geom := root.Children[0].Geometries[0]
	if root.Children[0].Name != "default" {
		t.Fatalf("expected faces without an object to go to the default object; got %q", root.Children[0].Name)
	}
	expUVW := []types.Vec3{{0, 0, 1}, {1, 0, 1}, {0, 1, 0}}
	if len(geom.TexCoords) != 1 || !reflect.DeepEqual(geom.TexCoords[0].Vec3, expUVW) {
		t.Fatalf("expected 3 component uvs %v; got %v", expUVW, geom.TexCoords)
	}
	if geom.StateSet != nil {
		t.Fatalf("expected no state set without a material; got %+v", geom.StateSet)
	}
}

func TestReadWavefrontErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}
	specs := []spec{
		{"usemtl missing", `undefined material with name "missing"`},
		{"v 0 0 0\nf 1 1 1 1 1", `expected 3 arguments for triangular face or 4 arguments for a quad face; got 5`},
		{"v 0 0 0\nf 1 1/1 1", `expected each face argument to contain 1 indices; arg 1 contains 2 indices`},
		{"v 0 0 0\nf 1 2 3", `index out of bounds`},
		{"v 0 0", `expected 3 arguments; got 2`},
		{"o", `expected 1 argument for object name; got 0`},
		{"mtllib a.mtl b.mtl", `expected 1 argument; got 2`},
	}

	for idx, s := range specs {
		_, err := newWavefrontReader().Read(mockResource(s.payload))
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", idx, s.expError, err)
		}
	}
}

func TestReadMaterialErrors(t *testing.T) {
	type spec struct {
		mtl      string
		expError string
	}
	specs := []spec{
		{"Kd 1 1 1", `got "Kd" without a "newmtl"`},
		{"newmtl a\nnewmtl a", `material "a" already defined`},
		{"newmtl a\ninclude b", `could not include unknown material "b"`},
		{"newmtl a\nNs shiny", `invalid syntax`},
	}

	for idx, s := range specs {
		dir := writeTestFiles(t, map[string]string{"scene.obj": "mtllib scene.mtl\n", "scene.mtl": s.mtl})
		res, err := asset.NewResource(filepath.Join(dir, "scene.obj"), nil)
		if err != nil {
			t.Fatal(err)
		}
		_, err = newWavefrontReader().Read(res)
		res.Close()
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", idx, s.expError, err)
		}
		if !strings.Contains(err.Error(), "referenced from") {
			t.Fatalf("[spec %d] expected error to include the include stack; got %v", idx, err)
		}
	}
}

func TestReadWavefrontSmoothNormals(t *testing.T) {
	// two triangles folded along the edge (1, 2)
	payload := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 1
f 1 2 3
f 2 4 3
`
	root, err := newWavefrontReader().Read(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}

	geom := root.Children[0].Geometries[0]
	if geom.NumVertices() != 4 {
		t.Fatalf("expected faces without normals to share vertices; got %d vertices", geom.NumVertices())
	}
	expIndices := []uint32{0, 1, 2, 1, 3, 2}
	if !reflect.DeepEqual(geom.PrimitiveSets[0].Indices, expIndices) {
		t.Fatalf("expected indices %v; got %v", expIndices, geom.PrimitiveSets[0].Indices)
	}

	// face normals are (0,0,1) and (-1,-1,1) with the second face sqrt(3)
	// times the area
	first := types.Vec3{0, 0, 1}
	second := types.Vec3{-1, -1, 1}
	expNormals := []types.Vec3{
		first,
		first.Add(second).Normalize(),
		first.Add(second).Normalize(),
		second.Normalize(),
	}
	for i, exp := range expNormals {
		if !types.ApproxEqual(geom.Normals.Vec3[i], exp, 1e-6) {
			t.Fatalf("expected normal %d to be %v; got %v", i, exp, geom.Normals.Vec3[i])
		}
	}
}
