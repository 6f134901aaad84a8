package writer

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/asset/scene/container"
	"github.com/marchelbling/osg/log"
)

const (
	dataFile = "scene.bin"
)

type zipSceneWriter struct {
	logger    log.Logger
	sceneFile string
	method    container.Method
}

// Create a new zip scene writer. An unset method stores the payload as is.
func newZipSceneWriter(sceneFile string, method container.Method) *zipSceneWriter {
	if method == 0 {
		method = container.None
	}
	return &zipSceneWriter{
		logger:    log.New("zip writer"),
		sceneFile: sceneFile,
		method:    method,
	}
}

// Write scene graph to zip file.
func (w *zipSceneWriter) Write(root *scene.Node) error {
	w.logger.Noticef("writing compiled scene to %s", w.sceneFile)
	start := time.Now()

	codec, err := container.CodecFor(w.method)
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	if err = gob.NewEncoder(&payload).Encode(root); err != nil {
		return fmt.Errorf("zipSceneWriter: could not encode scene: %w", err)
	}
	block, err := container.EncodeBlock(codec, payload.Bytes())
	if err != nil {
		return fmt.Errorf("zipSceneWriter: could not compress scene: %w", err)
	}

	zipFile, err := os.Create(w.sceneFile)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	// the payload is already compressed
	zw := zip.NewWriter(zipFile)
	cw, err := zw.CreateHeader(&zip.FileHeader{Name: dataFile, Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err = cw.Write(block); err != nil {
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}

	w.logger.Noticef("wrote %d byte scene (%d bytes raw) in %d ms", len(block), payload.Len(), time.Since(start).Nanoseconds()/1e6)
	return zipFile.Close()
}
