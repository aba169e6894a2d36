// Package output writes mesh documents as Wavefront OBJ/MTL file pairs.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/parviews/internal/mesh"
	"github.com/Faultbox/parviews/pkg/formats"
	"github.com/Faultbox/parviews/pkg/math"
)

// Files holds the paths of a written OBJ/MTL pair.
type Files struct {
	OBJ string
	MTL string
}

// Paths returns where Write puts the files for base in dir.
func Paths(dir, base string) Files {
	return Files{
		OBJ: filepath.Join(dir, base+".obj"),
		MTL: filepath.Join(dir, base+".mtl"),
	}
}

// MaterialLib returns the mtllib reference for base.
func MaterialLib(base string) string {
	return base + ".mtl"
}

// ToOBJ converts a document to its OBJ representation. Every corner of a
// face references the face's single normal.
func ToOBJ(doc mesh.Document) *formats.OBJ {
	comments := []string{"Parallel projection OBJ file"}
	if len(doc.Faces) > 0 {
		comments = append(comments, fmt.Sprintf("Bounds: min %s max %s", vec(doc.Bounds.Min), vec(doc.Bounds.Max)))
	}
	obj := &formats.OBJ{
		Comments:    comments,
		MaterialLib: doc.MaterialLib,
		Vertices:    doc.Vertices,
		TexCoords:   doc.UVs,
		Normals:     doc.Normals,
		Faces:       make([]formats.OBJFace, len(doc.Faces)),
	}
	for i, f := range doc.Faces {
		obj.Faces[i] = formats.OBJFace{
			Object:   f.Object,
			Material: f.Material,
			Vertex:   f.Vertex[:],
			TexCoord: f.UV[:],
			Normal:   []int{f.Normal, f.Normal, f.Normal, f.Normal},
		}
	}
	return obj
}

func vec(v math.Vec3) string {
	return strconv.FormatFloat(v.X, 'g', -1, 64) + " " +
		strconv.FormatFloat(v.Y, 'g', -1, 64) + " " +
		strconv.FormatFloat(v.Z, 'g', -1, 64)
}

// ToMTL converts a document's material bindings to an MTL library.
func ToMTL(doc mesh.Document) *formats.MTL {
	mtl := &formats.MTL{
		Comments:  []string{"Parallel projection MTL file"},
		Materials: make([]formats.MTLMaterial, len(doc.Materials)),
	}
	for i, m := range doc.Materials {
		comment := ""
		if m.Source != "" {
			comment = "source material " + m.Source
		}
		mtl.Materials[i] = formats.MTLMaterial{
			Name:    m.Name,
			Comment: comment,
			Ka:      [3]float64{1, 1, 1},
			Kd:      [3]float64{1, 1, 1},
			D:       1,
			Illum:   1,
			MapKd:   m.Texture,
		}
	}
	return mtl
}

// Write writes doc as <dir>/<base>.obj and <dir>/<base>.mtl, creating dir
// if needed. Existing files are replaced.
func Write(dir, base string, doc mesh.Document) (Files, error) {
	files := Paths(dir, base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return files, fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeFile(files.OBJ, func(f *os.File) error {
		return formats.WriteOBJ(f, ToOBJ(doc))
	}); err != nil {
		return files, err
	}
	if err := writeFile(files.MTL, func(f *os.File) error {
		return formats.WriteMTL(f, ToMTL(doc))
	}); err != nil {
		return files, err
	}
	return files, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
