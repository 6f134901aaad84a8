package cmd

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marchelbling/osg/asset/compressor"
	"github.com/marchelbling/osg/asset/filter"
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/asset/scene/container"
	"github.com/marchelbling/osg/asset/scene/reader"
	"github.com/marchelbling/osg/asset/scene/writer"
	"github.com/marchelbling/osg/codec"
	"github.com/marchelbling/osg/types"
)

const testObj = `
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0.6 0.8
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func writeTestScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(testObj), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompressDecompress(t *testing.T) {
	in := writeTestScene(t)
	dir := filepath.Dir(in)
	opts := writer.Options{
		Container: container.Zstd,
		Compressor: compressor.Options{
			Attributes: compressor.VertexAttribute | compressor.NormalAttribute | compressor.UVAttribute,
			Mode:       codec.Quantization | codec.Prediction,
			Bytes:      2,
		},
	}

	compressed := filepath.Join(dir, "quad.zip")
	if err := compressScene(in, compressed, true, opts); err != nil {
		t.Fatal(err)
	}

	root, err := reader.ReadScene(compressed)
	if err != nil {
		t.Fatal(err)
	}
	geom := root.Children[0].Geometries[0]
	if geom.PrimitiveSets[0].Mode != scene.TriangleStrip {
		t.Fatalf("expected the scene to be stripified; got %v", geom.PrimitiveSets)
	}
	if _, exists := geom.UserValue("mode"); !exists {
		t.Fatalf("expected compression parameters; got %v", geom.UserValues)
	}

	out := filepath.Join(dir, "restored.zip")
	if err = decompressScene(compressed, out, writer.Options{Container: container.LZ4}); err != nil {
		t.Fatal(err)
	}
	root, err = reader.ReadScene(out)
	if err != nil {
		t.Fatal(err)
	}
	geom = root.Children[0].Geometries[0]
	expVertices := []types.Vec3{{1, 0, 0}, {1, 1, 0}, {0, 0, 0}, {0, 1, 0}}
	for i, v := range geom.Vertices.Vec3 {
		found := false
		for _, exp := range expVertices {
			found = found || types.ApproxEqual(v, exp, 1e-4)
		}
		if !found {
			t.Fatalf("expected restored vertex %d to be a quad corner; got %v", i, v)
		}
	}
	if len(geom.UserValues) != 0 {
		t.Fatalf("expected restored scene without compression parameters; got %v", geom.UserValues)
	}
}

func TestFilterScene(t *testing.T) {
	in := writeTestScene(t)
	dir := filepath.Dir(in)
	cfg := filter.Config{
		MetadataPath: filepath.Join(dir, "model_metadata"),
		Rand:         rand.New(rand.NewSource(1)),
	}

	out := filepath.Join(dir, "filtered.zip")
	if err := filterScene(in+".cleaner", out, []string{"tristrip", "strip", "meta"}, cfg, writer.Options{Container: container.None}); err != nil {
		t.Fatal(err)
	}

	root, err := reader.ReadScene(out)
	if err != nil {
		t.Fatal(err)
	}
	geom := root.Children[0].Geometries[0]
	if geom.StateSet == nil || geom.StateSet.Shininess != 96 {
		t.Fatalf("expected strip filter to color the geometry; got %+v", geom.StateSet)
	}
	if _, err = os.Stat(cfg.MetadataPath); err != nil {
		t.Fatalf("expected meta filter to write %s; got %v", cfg.MetadataPath, err)
	}
}

func TestFilterSceneErrors(t *testing.T) {
	in := writeTestScene(t)
	out := filepath.Join(filepath.Dir(in), "out.zip")

	if err := filterScene(in, out, nil, filter.Config{}, writer.Options{}); err == nil {
		t.Fatal("expected an error when no filter is selected")
	}

	err := filterScene(in, out, []string{"blur"}, filter.Config{}, writer.Options{})
	if err == nil || !strings.Contains(err.Error(), `unknown filter "blur"`) {
		t.Fatalf("expected an unknown filter error; got %v", err)
	}
	if _, err = os.Stat(out); err == nil {
		t.Fatal("expected no output to be written")
	}
}
