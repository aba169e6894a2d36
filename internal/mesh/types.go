// Package mesh accumulates re-projection geometry: one independently
// textured face per processed quad.
package mesh

import (
	"github.com/Faultbox/parviews/pkg/math"
)

// Face references four vertices, four texture coordinates and one normal.
// Indices are 1-based, as Wavefront OBJ expects. Vertex and UV share the
// same winding.
type Face struct {
	Object   string
	Material string
	Vertex   [4]int
	UV       [4]int
	Normal   int
}

// MaterialBinding maps a material name to the image rendered for it.
type MaterialBinding struct {
	Name    string
	Texture string
	// Source is the scene material the quad was modified by.
	Source string
}

// Bounds holds the axis-aligned bounding box of the document's vertices.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Document is the finished mesh handed to the emitters.
type Document struct {
	// MaterialLib is the file name of the companion material library.
	MaterialLib string

	Vertices  []math.Vec3
	UVs       []math.Vec2
	Normals   []math.Vec3
	Faces     []Face
	Materials []MaterialBinding
	Bounds    Bounds
}
