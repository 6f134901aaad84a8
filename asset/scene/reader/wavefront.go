package reader

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/marchelbling/osg/asset"
	"github.com/marchelbling/osg/asset/scene"
	"github.com/marchelbling/osg/log"
	"github.com/marchelbling/osg/types"
)

type wavefrontMaterial struct {
	Name string

	// Diffuse color and dissolve factor.
	Kd types.Vec3
	D  float32

	// Specular exponent.
	Ns float32

	// Diffuse texture.
	KdTex string

	// Lazily built state set shared by all geometries using the material.
	stateSet *scene.StateSet
}

func (m *wavefrontMaterial) StateSet() *scene.StateSet {
	if m.stateSet == nil {
		m.stateSet = &scene.StateSet{
			Diffuse:   m.Kd.Vec4(m.D),
			Shininess: m.Ns,
		}
		if m.KdTex != "" {
			m.stateSet.Textures = []*scene.Texture{{ImageFile: m.KdTex}}
		}
	}
	return m.stateSet
}

// A face corner referencing the global coordinate lists.
type faceVertex struct {
	v, vt, vn int
}

const (
	noIndex = -1

	// Normal index of corners whose normal is generated from the faces
	// sharing their position.
	smoothNormal = -2
)

// Accumulates indexed geometry for one (object, material) pair.
type geometryBuilder struct {
	material *wavefrontMaterial

	vertices []types.Vec3
	normals  []types.Vec3
	uvs      []types.Vec3
	hasUVs   bool
	indices  []uint32

	// Vertices whose normal is filled in from the smooth normal of their
	// position once parsing completes.
	smoothVertices map[uint32]int

	vertexIndex map[faceVertex]uint32
}

type wavefrontObject struct {
	name       string
	geometries []*geometryBuilder
	byMaterial map[*wavefrontMaterial]*geometryBuilder
}

type wavefrontSceneReader struct {
	logger log.Logger

	// Parsed objects in declaration order.
	objects []*wavefrontObject

	// A map of material names to parsed wavefront materials.
	materials map[string]*wavefrontMaterial

	// Currently selected material.
	curMaterial *wavefrontMaterial

	// List of vertices, normals and uv coords.
	vertexList []types.Vec3
	normalList []types.Vec3
	uvList     []types.Vec3

	// Area weighted sums of the face normals of faces that do not specify
	// any, keyed by position index.
	smoothNormals map[int]types.Vec3

	// True if any uv coordinate defines a third (w) component.
	uvw bool

	// An error stack that provides additional error information when
	// scene files include other files (models, mat libs e.t.c)
	errStack []string
}

// Create a new wavefront scene reader.
func newWavefrontReader() *wavefrontSceneReader {
	return &wavefrontSceneReader{
		logger:        log.New("wavefront reader"),
		materials:     make(map[string]*wavefrontMaterial),
		smoothNormals: make(map[int]types.Vec3),
	}
}

// Read scene definition.
func (r *wavefrontSceneReader) Read(sceneRes *asset.Resource) (*scene.Node, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}

	root := r.buildGraph(strings.TrimSuffix(sceneRes.Name(), filepath.Ext(sceneRes.Name())))
	r.logger.Noticef("parsed scene with %d objects in %d ms", len(root.Children), time.Since(start).Nanoseconds()/1e6)
	return root, nil
}

// Convert parsed objects into a scene graph with one child node per object
// and one geometry per material used by the object.
func (r *wavefrontSceneReader) buildGraph(name string) *scene.Node {
	root := scene.NewNode(name)
	for _, obj := range r.objects {
		node := scene.NewNode(obj.name)
		for idx, gb := range obj.geometries {
			for index, position := range gb.smoothVertices {
				gb.normals[index] = r.smoothNormals[position].Normalize()
			}
			geom := &scene.Geometry{
				Name:     fmt.Sprintf("%s_%d", obj.name, idx),
				Vertices: types.Vec3Array(gb.vertices),
				Normals:  types.Vec3Array(gb.normals),
				PrimitiveSets: []scene.PrimitiveSet{
					{Mode: scene.Triangles, Indices: gb.indices},
				},
			}
			if gb.hasUVs {
				if r.uvw {
					geom.TexCoords = []types.Array{types.Vec3Array(gb.uvs)}
				} else {
					uvs := make([]types.Vec2, len(gb.uvs))
					for i, uv := range gb.uvs {
						uvs[i] = uv.Vec2()
					}
					geom.TexCoords = []types.Array{types.Vec2Array(uvs)}
				}
			}
			if gb.material != nil {
				geom.StateSet = gb.material.StateSet()
			}
			node.AddGeometry(geom)
		}
		root.AddChild(node)
	}
	return root
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}

	return fmt.Errorf("%s", strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *wavefrontSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Get the object receiving parsed faces, creating a default one if needed.
func (r *wavefrontSceneReader) currentObject() *wavefrontObject {
	if len(r.objects) == 0 {
		r.startObject("default")
	}
	return r.objects[len(r.objects)-1]
}

func (r *wavefrontSceneReader) startObject(name string) {
	r.dropEmptyObject()
	r.objects = append(r.objects, &wavefrontObject{
		name:       name,
		byMaterial: make(map[*wavefrontMaterial]*geometryBuilder),
	})
}

// Drop the last parsed object if it contains no faces.
func (r *wavefrontSceneReader) dropEmptyObject() {
	last := len(r.objects) - 1
	if last >= 0 && len(r.objects[last].geometries) == 0 {
		r.logger.Warningf(`dropping object "%s" as it contains no polygons`, r.objects[last].name)
		r.objects = r.objects[:last]
	}
}

// Parse wavefront object scene format.
func (r *wavefrontSceneReader) parse(res *asset.Resource) error {
	var lineNum int

	// The main obj file may include (call) several other object files. Each
	// object file contains 1-based indices (when they are positive). By
	// tracking the current vertex/uv/normal offsets we can apply them
	// while parsing faces to select the correct coordinates.
	relVertexOffset := len(r.vertexList)
	relUvOffset := len(r.uvList)
	relNormalOffset := len(r.normalList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call", "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := res.Sibling(lineTokens[1])
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			switch lineTokens[0] {
			case "call":
				err = r.parse(incRes)
			case "mtllib":
				err = r.parseMaterials(incRes)
			}
			incRes.Close()

			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for 'usemtl'; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			mat, exists := r.materials[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, lineTokens[1])
			}
			r.curMaterial = mat
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.normalList = append(r.normalList, v)
		case "vt":
			v, err := parseUV(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			if len(lineTokens) > 3 {
				r.uvw = true
			}
			r.uvList = append(r.uvList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			r.startObject(lineTokens[1])
		case "f":
			err := r.parseFace(lineTokens, relVertexOffset, relUvOffset, relNormalOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "%s", err.Error())
	}

	r.dropEmptyObject()
	return nil
}

// Parse face definition. Each face definitions consists of 3 arguments,
// one for each vertex. Each one of the vertex arguments is comprised of
// 1, 2 or 3 args separated by a slash character. The following formats are
// supported:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate
// an offset off the end of the vertex/uv list.
//
// This method only works with triangular/quad faces and will return an error if a
// face with more than 4 vertices is encountered.
func (r *wavefrontSceneReader) parseFace(lineTokens []string, relVertexOffset, relUvOffset, relNormalOffset int) error {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d. Select the triangulation option in your exporter`, len(lineTokens)-1)
	}

	var corners [4]faceVertex
	var err error
	expIndices := 0
	hasNormals := true
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		corner := faceVertex{v: noIndex, vt: noIndex, vn: noIndex}
		corner.v, err = selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}

		if expIndices > 1 && vTokens[1] != "" {
			corner.vt, err = selectFaceCoordIndex(vTokens[1], len(r.uvList), relUvOffset)
			if err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
		}

		if expIndices > 2 && vTokens[2] != "" {
			corner.vn, err = selectFaceCoordIndex(vTokens[2], len(r.normalList), relNormalOffset)
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
		} else {
			hasNormals = false
		}
		corners[arg] = corner
	}

	// If no normals are available accumulate the face normal on each
	// position so that faces sharing a position also share its vertex
	if !hasNormals {
		e01 := r.vertexList[corners[1].v].Sub(r.vertexList[corners[0].v])
		e02 := r.vertexList[corners[2].v].Sub(r.vertexList[corners[0].v])
		faceNormal := e01.Cross(e02)
		for arg := 0; arg < len(lineTokens)-1; arg++ {
			corners[arg].vn = smoothNormal
			r.smoothNormals[corners[arg].v] = r.smoothNormals[corners[arg].v].Add(faceNormal)
		}
	}

	gb := r.geometryFor(r.currentObject(), r.curMaterial)
	triangles := [][3]int{{0, 1, 2}}
	if len(lineTokens) == 5 {
		triangles = append(triangles, [3]int{0, 2, 3})
	}
	for _, tri := range triangles {
		for _, corner := range tri {
			gb.indices = append(gb.indices, r.emitVertex(gb, corners[corner]))
		}
	}

	return nil
}

// Get the geometry builder of an object for the given material.
func (r *wavefrontSceneReader) geometryFor(obj *wavefrontObject, mat *wavefrontMaterial) *geometryBuilder {
	gb, exists := obj.byMaterial[mat]
	if !exists {
		gb = &geometryBuilder{
			material:       mat,
			smoothVertices: make(map[uint32]int),
			vertexIndex:    make(map[faceVertex]uint32),
		}
		obj.byMaterial[mat] = gb
		obj.geometries = append(obj.geometries, gb)
	}
	return gb
}

// Get the index of a face corner in the geometry, appending a new vertex the
// first time a (v, vt, vn) tuple is seen.
func (r *wavefrontSceneReader) emitVertex(gb *geometryBuilder, corner faceVertex) uint32 {
	if index, exists := gb.vertexIndex[corner]; exists {
		return index
	}

	index := uint32(len(gb.vertices))
	gb.vertexIndex[corner] = index
	gb.vertices = append(gb.vertices, r.vertexList[corner.v])
	if corner.vn == smoothNormal {
		gb.smoothVertices[index] = corner.v
		gb.normals = append(gb.normals, types.Vec3{})
	} else {
		gb.normals = append(gb.normals, r.normalList[corner.vn])
	}

	var uv types.Vec3
	if corner.vt != noIndex {
		uv = r.uvList[corner.vt]
		gb.hasUVs = true
	}
	gb.uvs = append(gb.uvs, uv)
	return index
}

// Parse a wavefront material library.
func (r *wavefrontSceneReader) parseMaterials(res *asset.Resource) error {
	var lineNum int
	var err error

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)

	var curMaterial *wavefrontMaterial
	var matName string

	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "newmtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName = lineTokens[1]
			if _, exists := r.materials[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			curMaterial = &wavefrontMaterial{
				Name: matName,
				Kd:   types.Vec3{0.7, 0.7, 0.7},
				D:    1,
			}
			r.materials[matName] = curMaterial
		default:
			if curMaterial == nil {
				return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
			}

			switch lineTokens[0] {
			case "include":
				if len(lineTokens) < 2 {
					return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
				}

				baseMaterial, exists := r.materials[lineTokens[1]]
				if !exists {
					return r.emitError(res.Path(), lineNum, `could not include unknown material "%s"`, lineTokens[1])
				}

				// Overwrite material but keep the original name
				*curMaterial = *baseMaterial
				curMaterial.Name = matName
				curMaterial.stateSet = nil
			case "Kd":
				curMaterial.Kd, err = parseVec3(lineTokens)
			case "Ns":
				curMaterial.Ns, err = parseFloat32(lineTokens)
			case "d":
				curMaterial.D, err = parseFloat32(lineTokens)
			case "Tr":
				var tr float32
				tr, err = parseFloat32(lineTokens)
				curMaterial.D = 1 - tr
			case "map_Kd":
				if len(lineTokens) < 2 {
					return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
				}
				// texture options precede the file name
				curMaterial.KdTex = lineTokens[len(lineTokens)-1]
			}

			// Report any errors
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		}
	}

	return scanner.Err()
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a float scalar value.
func parseFloat32(lineTokens []string) (float32, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseFloat(lineTokens[1], 32)
	if err != nil {
		return 0, err
	}

	return float32(val), nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}
	return parseComponents(lineTokens, 3)
}

// Parse a uv row with an optional third (w) component.
func parseUV(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 3 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}
	return parseComponents(lineTokens, min(3, len(lineTokens)-1))
}

func parseComponents(lineTokens []string, count int) (types.Vec3, error) {
	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= count; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
