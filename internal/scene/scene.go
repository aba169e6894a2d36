// Package scene turns parsed Radiance primitives into the ordered quad
// sequence the projection pipeline consumes.
package scene

import (
	"github.com/Faultbox/parviews/internal/projection"
	"github.com/Faultbox/parviews/pkg/formats"
	"github.com/Faultbox/parviews/pkg/math"
)

// VertexTolerance is the per-axis distance below which two triangle
// vertices are treated as the same point when pairing triangles.
const VertexTolerance = 1e-4

// Polygon is a polygon primitive that did not become a quad.
type Polygon struct {
	ID       string
	Line     int
	Vertices int
}

// Scene is the result of extracting quads from a scene description.
type Scene struct {
	// Quads are numbered in scene order. A merged triangle pair takes the
	// position of its first triangle.
	Quads []projection.Quad

	// Merged counts quads built from triangle pairs.
	Merged int

	// UnpairedTriangles could not be combined with a neighbour.
	UnpairedTriangles []Polygon

	// Unsupported holds polygons with more than four vertices.
	Unsupported []Polygon

	// Materials is the number of material primitives seen.
	Materials int
}

// Extract collects the quads of rad in file order. Triangles are paired
// in the order they appear among the triangles alone, so polygons of other
// sizes between two triangles do not prevent a merge. A merged pair takes
// the position of its first triangle.
func Extract(rad *formats.RAD) *Scene {
	s := &Scene{Materials: len(rad.Materials())}
	polys := rad.Polygons()

	verts := make([][]math.Vec3, len(polys))
	var triangles []int
	for i, p := range polys {
		verts[i] = toVec3(p.Vertices())
		if len(verts[i]) == 3 {
			triangles = append(triangles, i)
		}
	}

	// merged[i] is the quad built from triangle i and its partner.
	merged := make(map[int][4]math.Vec3)
	partner := make(map[int]bool)
	for k := 0; k+1 < len(triangles); {
		a, b := triangles[k], triangles[k+1]
		quad, ok := MergeTriangles(
			[3]math.Vec3{verts[a][0], verts[a][1], verts[a][2]},
			[3]math.Vec3{verts[b][0], verts[b][1], verts[b][2]},
		)
		if !ok {
			k++
			continue
		}
		merged[a] = quad
		partner[b] = true
		k += 2
	}

	add := func(id, material string, v [4]math.Vec3) {
		s.Quads = append(s.Quads, projection.Quad{
			Index:    len(s.Quads),
			ID:       id,
			Material: material,
			Vertices: v,
		})
	}

	for i, p := range polys {
		v := verts[i]
		switch len(v) {
		case 4:
			add(p.ID, p.Modifier, [4]math.Vec3{v[0], v[1], v[2], v[3]})
		case 3:
			if quad, ok := merged[i]; ok {
				add(p.ID, p.Modifier, quad)
				s.Merged++
			} else if !partner[i] {
				s.UnpairedTriangles = append(s.UnpairedTriangles, Polygon{ID: p.ID, Line: p.Line, Vertices: 3})
			}
		default:
			s.Unsupported = append(s.Unsupported, Polygon{ID: p.ID, Line: p.Line, Vertices: len(v)})
		}
	}

	return s
}

func toVec3(raw [][3]float64) []math.Vec3 {
	out := make([]math.Vec3, len(raw))
	for i, r := range raw {
		out[i] = math.Vec3{X: r[0], Y: r[1], Z: r[2]}
	}
	return out
}

// MergeTriangles combines two triangles that share exactly one edge into a
// quad. The quad keeps a's winding: the vertex of b that is not on the
// shared edge is inserted between the two shared vertices.
func MergeTriangles(a, b [3]math.Vec3) ([4]math.Vec3, bool) {
	var sharedA [3]bool
	shared := 0
	unique := -1

	for j := range b {
		found := false
		for i := range a {
			if a[i].ApproxEqual(b[j], VertexTolerance) {
				sharedA[i] = true
				found = true
				break
			}
		}
		if found {
			shared++
		} else {
			unique = j
		}
	}
	if shared != 2 || unique < 0 {
		return [4]math.Vec3{}, false
	}

	// Rotate a so the vertex off the shared edge comes first:
	// a[k], a[k+1], a[k+2] where a[k+1] and a[k+2] are shared.
	k := 0
	for i := range sharedA {
		if !sharedA[i] {
			k = i
			break
		}
	}

	return [4]math.Vec3{
		a[k],
		a[(k+1)%3],
		b[unique],
		a[(k+2)%3],
	}, true
}
