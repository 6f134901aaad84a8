package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marchelbling/osg/asset"
	"github.com/marchelbling/osg/asset/compressor"
	"github.com/marchelbling/osg/asset/filter"
	"github.com/marchelbling/osg/asset/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Node, error)
}

// Extension of scenes holding compressed vertex attributes.
const compressedExt = ".qtz"

// Read scene from file using the default filter configuration.
func ReadScene(filename string) (*scene.Node, error) {
	return ReadSceneWithConfig(filename, filter.Config{})
}

// Read scene from file. Pseudo extensions such as ".qtz" or ".stats" are
// stripped and the remaining file is read recursively before the matching
// pass is applied, so "model.obj.tristrip.stats" reads model.obj, builds
// strips and then logs the scene stats.
func ReadSceneWithConfig(filename string, cfg filter.Config) (*scene.Node, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".obj":
		return readWith(newWavefrontReader(), filename)
	case ".zip":
		return readWith(newZipSceneReader(), filename)
	case compressedExt:
		root, err := ReadSceneWithConfig(strings.TrimSuffix(filename, filepath.Ext(filename)), cfg)
		if err != nil {
			return nil, err
		}
		compressor.New(false, compressor.Options{}).Apply(root)
		return root, nil
	case "":
		return nil, fmt.Errorf("readScene: missing file extension for %q", filename)
	}

	f, err := filter.New(ext[1:], cfg)
	if err != nil {
		return nil, fmt.Errorf("readScene: unsupported file format %q", ext)
	}
	root, err := ReadSceneWithConfig(strings.TrimSuffix(filename, filepath.Ext(filename)), cfg)
	if err != nil {
		return nil, err
	}
	if err = f.Apply(root); err != nil {
		return nil, err
	}
	return root, nil
}

func readWith(reader Reader, filename string) (*scene.Node, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
