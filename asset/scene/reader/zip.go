package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/marchelbling/osg/asset"
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/asset/scene/container"
	"github.com/marchelbling/osg/log"
)

const (
	dataFile = "scene.bin"
)

type zipSceneReader struct {
	logger log.Logger
}

// Create a new zip scene reader
func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read scene graph from zip file.
func (p *zipSceneReader) Read(sceneRes *asset.Resource) (*scene.Node, error) {
	p.logger.Noticef(`parsing compiled scene from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := io.ReadAll(sceneRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var root *scene.Node
	for _, f := range zr.File {
		switch f.Name {
		case dataFile:
		default:
			p.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		if root, err = p.decode(f); err != nil {
			return nil, fmt.Errorf("zipSceneReader: failed to load %s: %w", f.Name, err)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("zipSceneReader: %s not found in %s", dataFile, sceneRes.Path())
	}

	p.logger.Noticef("loaded scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return root, nil
}

func (p *zipSceneReader) decode(f *zip.File) (*scene.Node, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	block, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	method, _, rawSize, err := container.ReadHeader(block)
	if err != nil {
		return nil, err
	}
	p.logger.Debugf("decoding %d byte %s block", rawSize, method)

	payload, err := container.DecodeBlock(block)
	if err != nil {
		return nil, err
	}

	root := &scene.Node{}
	if err = gob.NewDecoder(bytes.NewReader(payload)).Decode(root); err != nil {
		return nil, err
	}
	return root, nil
}
