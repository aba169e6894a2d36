package mesh

import (
	gomath "math"

	"github.com/Faultbox/parviews/internal/projection"
	"github.com/Faultbox/parviews/pkg/math"
)

// Assembler builds a Document one quad at a time. It is append-only and
// must be used from a single goroutine.
type Assembler struct {
	doc Document
}

// NewAssembler returns an empty assembler whose document references
// materialLib.
func NewAssembler(materialLib string) *Assembler {
	return &Assembler{
		doc: Document{
			MaterialLib: materialLib,
			Bounds: Bounds{
				Min: math.Vec3{X: gomath.Inf(1), Y: gomath.Inf(1), Z: gomath.Inf(1)},
				Max: math.Vec3{X: gomath.Inf(-1), Y: gomath.Inf(-1), Z: gomath.Inf(-1)},
			},
		},
	}
}

// AddQuad appends the quad's vertices, UVs and normal and one face bound to
// material. Vertices are never shared between quads.
func (a *Assembler) AddQuad(q projection.Quad, f projection.Frame, uv projection.UVSet, material MaterialBinding) {
	d := &a.doc
	face := Face{
		Object:   q.ID,
		Material: material.Name,
	}

	for i, p := range q.Vertices {
		d.Vertices = append(d.Vertices, p)
		d.UVs = append(d.UVs, uv[i])
		face.Vertex[i] = len(d.Vertices)
		face.UV[i] = len(d.UVs)
		a.grow(p)
	}

	d.Normals = append(d.Normals, f.Normal)
	face.Normal = len(d.Normals)

	d.Faces = append(d.Faces, face)
	d.Materials = append(d.Materials, material)
}

func (a *Assembler) grow(p math.Vec3) {
	b := &a.doc.Bounds
	b.Min = math.Vec3{X: gomath.Min(b.Min.X, p.X), Y: gomath.Min(b.Min.Y, p.Y), Z: gomath.Min(b.Min.Z, p.Z)}
	b.Max = math.Vec3{X: gomath.Max(b.Max.X, p.X), Y: gomath.Max(b.Max.Y, p.Y), Z: gomath.Max(b.Max.Z, p.Z)}
}

// Document returns a copy of the accumulated document. Later AddQuad calls
// do not affect it.
func (a *Assembler) Document() Document {
	d := a.doc
	d.Vertices = append([]math.Vec3(nil), a.doc.Vertices...)
	d.UVs = append([]math.Vec2(nil), a.doc.UVs...)
	d.Normals = append([]math.Vec3(nil), a.doc.Normals...)
	d.Faces = append([]Face(nil), a.doc.Faces...)
	d.Materials = append([]MaterialBinding(nil), a.doc.Materials...)
	if len(d.Faces) == 0 {
		d.Bounds = Bounds{}
	}
	return d
}
