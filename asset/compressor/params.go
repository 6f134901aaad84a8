package compressor

import (
	"fmt"

	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/codec"
	"github.com/marchelbling/osg/types"
)

// User value keys holding the compression parameters of a geometry.
const (
	keyAttributes = "attributes"
	keyMode       = "mode"
	keyBytes      = "bytes"
)

var (
	vertexBBoxKeys = [2][3]string{
		{"bbl_x", "bbl_y", "bbl_z"},
		{"ufr_x", "ufr_y", "ufr_z"},
	}
	uvBBoxKeys = [2][2]string{
		{"uv_bbl_x", "uv_bbl_y"},
		{"uv_ufr_x", "uv_ufr_y"},
	}
)

// Persisted parameters of a compressed geometry.
type geometryParams struct {
	attributes Attribute
	params     codec.Params
}

// Store compression parameters as geometry user values.
func storeParams(geom *scene.Geometry, gp geometryParams) {
	geom.SetUserValue(keyAttributes, float64(gp.attributes))
	geom.SetUserValue(keyMode, float64(gp.params.Mode))
	geom.SetUserValue(keyBytes, float64(gp.params.Bytes))

	if bbox := gp.params.VertexBBox; bbox != nil {
		for corner := range vertexBBoxKeys {
			for axis, key := range vertexBBoxKeys[corner] {
				geom.SetUserValue(key, float64(bbox[corner][axis]))
			}
		}
	}
	if bbox := gp.params.UvBBox; bbox != nil {
		for corner := range uvBBoxKeys {
			for axis, key := range uvBBoxKeys[corner] {
				geom.SetUserValue(key, float64(bbox[corner][axis]))
			}
		}
	}
}

// Load compression parameters from geometry user values. Any missing value
// yields codec.ErrParamsUnavailable. The uv interval is optional.
func loadParams(geom *scene.Geometry) (geometryParams, error) {
	var gp geometryParams

	scalars := make(map[string]float64, 3)
	for _, key := range []string{keyAttributes, keyMode, keyBytes} {
		value, exists := geom.UserValue(key)
		if !exists {
			return gp, fmt.Errorf("%w: missing user value %q", codec.ErrParamsUnavailable, key)
		}
		scalars[key] = value
	}
	gp.attributes = Attribute(scalars[keyAttributes])
	gp.params.Mode = codec.Mode(scalars[keyMode])
	gp.params.Bytes = int(scalars[keyBytes])

	var vertexBBox [2]types.Vec3
	for corner := range vertexBBoxKeys {
		for axis, key := range vertexBBoxKeys[corner] {
			value, exists := geom.UserValue(key)
			if !exists {
				return gp, fmt.Errorf("%w: missing user value %q", codec.ErrParamsUnavailable, key)
			}
			vertexBBox[corner][axis] = float32(value)
		}
	}
	gp.params.VertexBBox = &vertexBBox

	var uvBBox [2]types.Vec2
	for corner := range uvBBoxKeys {
		for axis, key := range uvBBoxKeys[corner] {
			value, exists := geom.UserValue(key)
			if !exists {
				return gp, nil
			}
			uvBBox[corner][axis] = float32(value)
		}
	}
	gp.params.UvBBox = &uvBBox
	return gp, nil
}

// Remove compression parameters from a geometry.
func clearParams(geom *scene.Geometry) {
	for _, key := range []string{keyAttributes, keyMode, keyBytes} {
		geom.DeleteUserValue(key)
	}
	for corner := range vertexBBoxKeys {
		for _, key := range vertexBBoxKeys[corner] {
			geom.DeleteUserValue(key)
		}
	}
	for corner := range uvBBoxKeys {
		for _, key := range uvBBoxKeys[corner] {
			geom.DeleteUserValue(key)
		}
	}
}
