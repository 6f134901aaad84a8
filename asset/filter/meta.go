package filter

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
)

const sourceToolKey = "source_tool"

// Meta writes a model metadata listing: the first line holds the tool that
// produced the model (blank when unknown), followed by the sorted texture
// file names. Textures without a file name get a generated one.
type Meta struct {
	logger log.Logger
	path   string
}

func NewMeta(path string) *Meta {
	return &Meta{
		logger: log.New("meta"),
		path:   path,
	}
}

func (f *Meta) Name() string { return "meta" }

func (f *Meta) Apply(root *scene.Node) error {
	var source string
	orphans := 0
	textures := make(map[string]struct{})

	collect := func(ss *scene.StateSet) {
		if ss == nil {
			return
		}
		if tool, exists := ss.UserStrings[sourceToolKey]; exists && source == "" {
			source = tool
		}
		for _, tex := range ss.Textures {
			if tex == nil {
				continue
			}
			if tex.ImageFile == "" {
				tex.ImageFile = fmt.Sprintf("texture_extract_%d.jpg", orphans)
				orphans++
			}
			textures[tex.ImageFile] = struct{}{}
		}
	}

	_ = root.Walk(func(node *scene.Node) error {
		if tool, exists := node.UserString(sourceToolKey); exists && source == "" {
			source = tool
		}
		collect(node.StateSet)
		for _, geom := range node.Geometries {
			collect(geom.StateSet)
		}
		return nil
	})

	names := make([]string, 0, len(textures))
	for name := range textures {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := writeMetadata(f.path, source, names); err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	f.logger.Infof("wrote metadata for %d textures to %s", len(names), f.path)
	return nil
}

func writeMetadata(path, source string, textures []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, source)
	for _, tex := range textures {
		fmt.Fprintln(w, tex)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	return file.Close()
}
