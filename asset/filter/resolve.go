package filter

import (
	"encoding/json"
	"fmt"

	"github.com/marchelbling/osg/asset"
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
)

// Resolve renames texture image files using the mapping of a meta.json file:
//
//	{"textures": ["a.png"], "a.png": "b.jpg"}
//
// Every texture of the scene must be mapped.
type Resolve struct {
	logger   log.Logger
	metaPath string
}

func NewResolve(metaPath string) *Resolve {
	return &Resolve{
		logger:   log.New("resolve"),
		metaPath: metaPath,
	}
}

func (f *Resolve) Name() string { return "resolve" }

func (f *Resolve) Apply(root *scene.Node) error {
	data, err := asset.ReadResource(f.metaPath, nil)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	mapping, err := parseTextureMapping(data)
	if err != nil {
		return err
	}

	resolved := 0
	resolveStateSet := func(ss *scene.StateSet) error {
		if ss == nil {
			return nil
		}
		for _, tex := range ss.Textures {
			if tex == nil {
				continue
			}
			target, exists := mapping[tex.ImageFile]
			if !exists {
				return fmt.Errorf("resolve: no mapping for texture %q in %s", tex.ImageFile, f.metaPath)
			}
			f.logger.Debugf("resolved texture %q to %q", tex.ImageFile, target)
			tex.ImageFile = target
			resolved++
		}
		return nil
	}

	// state sets may be shared; resolve each one once
	seen := make(map[*scene.StateSet]struct{})
	err = root.Walk(func(node *scene.Node) error {
		stateSets := []*scene.StateSet{node.StateSet}
		for _, geom := range node.Geometries {
			stateSets = append(stateSets, geom.StateSet)
		}
		for _, ss := range stateSets {
			if _, done := seen[ss]; done {
				continue
			}
			seen[ss] = struct{}{}
			if err := resolveStateSet(ss); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	f.logger.Infof("resolved %d textures", resolved)
	return nil
}

// Extract the texture rename mapping. Only names listed under "textures"
// whose entry is a string are mapped.
func parseTextureMapping(data []byte) (map[string]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("resolve: could not parse texture mapping: %w", err)
	}

	var textures []string
	if raw, exists := doc["textures"]; exists {
		if err := json.Unmarshal(raw, &textures); err != nil {
			return nil, fmt.Errorf("resolve: expected \"textures\" to be a list of names: %w", err)
		}
	}

	mapping := make(map[string]string, len(textures))
	for _, name := range textures {
		raw, exists := doc[name]
		if !exists {
			continue
		}
		var target string
		if err := json.Unmarshal(raw, &target); err != nil {
			continue
		}
		mapping[name] = target
	}
	return mapping, nil
}
