package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
)

// Stats logs a summary table of the scene and optionally merges the
// summary under the "stats" key of a JSON file.
type Stats struct {
	logger   log.Logger
	jsonPath string
}

func NewStats(jsonPath string) *Stats {
	return &Stats{
		logger:   log.New("stats"),
		jsonPath: jsonPath,
	}
}

func (f *Stats) Name() string { return "stats" }

func (f *Stats) Apply(root *scene.Node) error {
	f.logger.Noticef("scene stats\n%s", scene.Stats(root))
	if f.jsonPath == "" {
		return nil
	}
	return mergeStats(f.jsonPath, scene.Collect(root))
}

// Merge a summary into a JSON object file, preserving its other keys. The
// file is created when missing.
func mergeStats(path string, summary scene.Summary) error {
	doc := make(map[string]json.RawMessage)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err = json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("stats: could not parse %s: %w", path, err)
		}
	}

	if doc["stats"], err = json.Marshal(summary); err != nil {
		return err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
