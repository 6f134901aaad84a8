package filter

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/marchelbling/osg/asset/scene"
)

// Filter transforms a scene graph in place.
type Filter interface {
	// The filter name; it doubles as the pseudo-extension selecting it.
	Name() string

	Apply(root *scene.Node) error
}

// Config carries the settings of filters that read or write sidecar files.
type Config struct {
	// JSON file receiving scene stats. Stats are only logged when empty.
	StatsPath string

	// JSON file holding the texture rename mapping.
	MetaPath string

	// Output file for the model metadata listing.
	MetadataPath string

	// Random source for strip colors. Seeded from the clock when nil.
	Rand *rand.Rand
}

// Defaults for unset Config paths.
const (
	DefaultMetaPath     = "meta.json"
	DefaultMetadataPath = "model_metadata"
)

var registry = map[string]func(Config) Filter{
	"cleaner":  func(Config) Filter { return NewCleaner() },
	"strip":    func(cfg Config) Filter { return NewStrip(cfg.Rand) },
	"tristrip": func(Config) Filter { return NewTriStrip() },
	"stats":    func(cfg Config) Filter { return NewStats(cfg.StatsPath) },
	"resolve":  func(cfg Config) Filter { return NewResolve(cfg.MetaPath) },
	"meta":     func(cfg Config) Filter { return NewMeta(cfg.MetadataPath) },
}

// Create a filter by name.
func New(name string, cfg Config) (Filter, error) {
	factory, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("filter: unknown filter %q", name)
	}
	if cfg.MetaPath == "" {
		cfg.MetaPath = DefaultMetaPath
	}
	if cfg.MetadataPath == "" {
		cfg.MetadataPath = DefaultMetadataPath
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return factory(cfg), nil
}

// List the names of all registered filters.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
