package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/parviews/pkg/math"
)

// OBJFace is one polygon of an OBJ file. Indices are 1-based; TexCoord and
// Normal may be empty or must have the same length as Vertex.
type OBJFace struct {
	Object   string
	Material string
	Vertex   []int
	TexCoord []int
	Normal   []int
}

// OBJ is the content of a Wavefront OBJ file.
type OBJ struct {
	Comments    []string
	MaterialLib string
	Vertices    []math.Vec3
	TexCoords   []math.Vec2
	Normals     []math.Vec3
	Faces       []OBJFace
}

// MTLMaterial is one entry of a Wavefront MTL library.
type MTLMaterial struct {
	Name    string
	Comment string
	Ka      [3]float64
	Kd      [3]float64
	D       float64
	Illum   int
	MapKd   string
}

// MTL is the content of a Wavefront material library.
type MTL struct {
	Comments  []string
	Materials []MTLMaterial
}

func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', 6, 64)
	if s == "-0.000000" {
		return "0.000000"
	}
	return s
}

// WriteOBJ writes obj to w. Elements are written in the order: vertices,
// texture coordinates, normals, then faces grouped by object and material.
func WriteOBJ(w io.Writer, obj *OBJ) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format+"\n", args...)
	}

	for _, c := range obj.Comments {
		line("# %s", c)
	}
	if len(obj.Comments) > 0 {
		line("")
	}
	if obj.MaterialLib != "" {
		line("mtllib %s", obj.MaterialLib)
		line("")
	}

	for _, v := range obj.Vertices {
		line("v %s %s %s", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	for _, vt := range obj.TexCoords {
		line("vt %s %s", formatFloat(vt.X), formatFloat(vt.Y))
	}
	for _, vn := range obj.Normals {
		line("vn %s %s %s", formatFloat(vn.X), formatFloat(vn.Y), formatFloat(vn.Z))
	}

	lastObject, lastMaterial := "", ""
	for i, f := range obj.Faces {
		if len(f.Vertex) < 3 {
			return fmt.Errorf("face %d: %d vertices, need at least 3", i, len(f.Vertex))
		}
		if (len(f.TexCoord) != 0 && len(f.TexCoord) != len(f.Vertex)) ||
			(len(f.Normal) != 0 && len(f.Normal) != len(f.Vertex)) {
			return fmt.Errorf("face %d: index lists differ in length", i)
		}

		if f.Object != "" && f.Object != lastObject {
			line("")
			line("o %s", f.Object)
			lastObject = f.Object
		}
		if f.Material != "" && f.Material != lastMaterial {
			line("usemtl %s", f.Material)
			lastMaterial = f.Material
		}

		corners := make([]string, len(f.Vertex))
		for k := range f.Vertex {
			c := strconv.Itoa(f.Vertex[k])
			switch {
			case len(f.TexCoord) > 0 && len(f.Normal) > 0:
				c += "/" + strconv.Itoa(f.TexCoord[k]) + "/" + strconv.Itoa(f.Normal[k])
			case len(f.TexCoord) > 0:
				c += "/" + strconv.Itoa(f.TexCoord[k])
			case len(f.Normal) > 0:
				c += "//" + strconv.Itoa(f.Normal[k])
			}
			corners[k] = c
		}
		line("f %s", strings.Join(corners, " "))
	}

	return bw.Flush()
}

// WriteMTL writes mtl to w.
func WriteMTL(w io.Writer, mtl *MTL) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format+"\n", args...)
	}
	rgb := func(c [3]float64) string {
		return strconv.FormatFloat(c[0], 'f', 3, 64) + " " +
			strconv.FormatFloat(c[1], 'f', 3, 64) + " " +
			strconv.FormatFloat(c[2], 'f', 3, 64)
	}

	for _, c := range mtl.Comments {
		line("# %s", c)
	}

	for _, m := range mtl.Materials {
		line("")
		if m.Comment != "" {
			line("# %s", m.Comment)
		}
		line("newmtl %s", m.Name)
		line("Ka %s", rgb(m.Ka))
		line("Kd %s", rgb(m.Kd))
		line("d %s", strconv.FormatFloat(m.D, 'f', 1, 64))
		line("illum %d", m.Illum)
		if m.MapKd != "" {
			line("map_Kd %s", m.MapKd)
		}
	}

	return bw.Flush()
}
