package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marchelbling/osg/asset/compressor"
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/asset/scene/container"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene graph
	Write(*scene.Node) error
}

// Options control how scenes are written.
type Options struct {
	// Block compression applied to the zip scene payload.
	Container container.Method

	// Attribute compression settings used for ".qtz" outputs.
	Compressor compressor.Options
}

// Zstd payloads with 3 byte quantized vertices.
func DefaultOptions() Options {
	return Options{
		Container:  container.Zstd,
		Compressor: compressor.DefaultOptions(),
	}
}

// Write scene to file. A trailing ".qtz" extension compresses the vertex
// attributes of a copy of the scene before writing it with the writer
// matching the remaining extension; the input graph is left untouched.
func WriteScene(root *scene.Node, filename string, opts Options) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".zip":
		return newZipSceneWriter(filename, opts.Container).Write(root)
	case ".qtz":
		clone := root.Clone()
		compressor.New(true, opts.Compressor).Apply(clone)
		return WriteScene(clone, strings.TrimSuffix(filename, filepath.Ext(filename)), opts)
	default:
		return fmt.Errorf("writeScene: unsupported file format %q", ext)
	}
}
