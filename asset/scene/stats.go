package scene

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Summary aggregates scene graph statistics.
type Summary struct {
	Nodes         int `json:"nodes"`
	Geometries    int `json:"geometries"`
	Vertices      int `json:"vertices"`
	Triangles     int `json:"triangles"`
	PrimitiveSets int `json:"primitive_sets"`
	Strips        int `json:"strips"`
	Textures      int `json:"textures"`

	// Attribute array sizes in bytes.
	VertexBytes   int `json:"vertex_bytes"`
	NormalBytes   int `json:"normal_bytes"`
	TexCoordBytes int `json:"texcoord_bytes"`
	ColorBytes    int `json:"color_bytes"`
	IndexBytes    int `json:"index_bytes"`

	// Number of geometries carrying compression parameters.
	Compressed int `json:"compressed"`
}

// Total attribute and index size in bytes.
func (s Summary) TotalBytes() int {
	return s.VertexBytes + s.NormalBytes + s.TexCoordBytes + s.ColorBytes + s.IndexBytes
}

// Collect statistics for the subtree rooted at root. Textures are counted
// once per distinct image file.
func Collect(root *Node) Summary {
	var s Summary
	textures := make(map[string]struct{})
	countTextures := func(ss *StateSet) {
		if ss == nil {
			return
		}
		for _, tex := range ss.Textures {
			if tex != nil {
				textures[tex.ImageFile] = struct{}{}
			}
		}
	}

	_ = root.Walk(func(node *Node) error {
		s.Nodes++
		countTextures(node.StateSet)
		for _, geom := range node.Geometries {
			s.Geometries++
			s.Vertices += geom.NumVertices()
			s.Triangles += geom.NumTriangles()
			s.VertexBytes += geom.Vertices.SizeInBytes()
			s.NormalBytes += geom.Normals.SizeInBytes()
			s.ColorBytes += geom.Colors.SizeInBytes()
			for _, tc := range geom.TexCoords {
				s.TexCoordBytes += tc.SizeInBytes()
			}
			for _, ps := range geom.PrimitiveSets {
				s.PrimitiveSets++
				if ps.Mode == TriangleStrip {
					s.Strips++
				}
				s.IndexBytes += 4 * len(ps.Indices)
			}
			if _, exists := geom.UserValue("mode"); exists {
				s.Compressed++
			}
			countTextures(geom.StateSet)
		}
		return nil
	})

	s.Textures = len(textures)
	return s
}

// Build a tabular representation of scene statistics.
func Stats(root *Node) string {
	s := Collect(root)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"Graph", "---", " ", " "})
	table.Append([]string{"", "Nodes", fmt.Sprint(s.Nodes), " "})
	table.Append([]string{"", "Geometries", fmt.Sprint(s.Geometries), " "})
	table.Append([]string{"", "Compressed", fmt.Sprint(s.Compressed), " "})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Attributes", "---", " ", fmtSize(s.VertexBytes, s.NormalBytes, s.TexCoordBytes, s.ColorBytes)})
	table.Append([]string{"", "Vertices", fmt.Sprint(s.Vertices), fmtSize(s.VertexBytes)})
	table.Append([]string{"", "Normals", " ", fmtSize(s.NormalBytes)})
	table.Append([]string{"", "UVs", " ", fmtSize(s.TexCoordBytes)})
	table.Append([]string{"", "Colors", " ", fmtSize(s.ColorBytes)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Primitives", "---", fmt.Sprint(s.PrimitiveSets), fmtSize(s.IndexBytes)})
	table.Append([]string{"", "Triangles", fmt.Sprint(s.Triangles), " "})
	table.Append([]string{"", "Strips", fmt.Sprint(s.Strips), " "})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Textures", "---", fmt.Sprint(s.Textures), " "})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtSize(s.TotalBytes()), " ")})

	table.Render()
	return buf.String()
}

// List the distinct texture image files referenced below root, sorted.
func TextureFiles(root *Node) []string {
	seen := make(map[string]struct{})
	collect := func(ss *StateSet) {
		if ss == nil {
			return
		}
		for _, tex := range ss.Textures {
			if tex != nil && tex.ImageFile != "" {
				seen[tex.ImageFile] = struct{}{}
			}
		}
	}
	_ = root.Walk(func(node *Node) error {
		collect(node.StateSet)
		for _, geom := range node.Geometries {
			collect(geom.StateSet)
		}
		return nil
	})

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Sum a set of byte counts and return back a formatted value with the
// appropriate byte/kb/mb unit.
func fmtSize(sizes ...int) string {
	var totalBytes float32
	for _, size := range sizes {
		totalBytes += float32(size)
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
