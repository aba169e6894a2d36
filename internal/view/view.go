// Package view formats Radiance parallel-projection views and the names that
// tie a quad's view to its rendered texture and mesh material.
//
// Naming contract, for prefix P and quad index N:
//
//	view name      P_N        (N when P is empty)
//	material name  P_N_texture
//	texture file   P_N.<ext>
//
// A rendering script that writes one picture per view name produces exactly
// the texture files the material library references.
package view

import (
	"strconv"
	"strings"

	"github.com/Faultbox/parviews/internal/projection"
	"github.com/Faultbox/parviews/pkg/math"
)

// Precision is the number of significant digits written for every number.
const Precision = 6

// DefaultTextureExt is the picture format rpict writes.
const DefaultTextureExt = "hdr"

// Naming holds the settings that derive per-quad names.
type Naming struct {
	Prefix     string
	TextureExt string
}

// Name returns the view name for the quad at index.
func (n Naming) Name(index int) string {
	if n.Prefix == "" {
		return strconv.Itoa(index)
	}
	return n.Prefix + "_" + strconv.Itoa(index)
}

// MaterialName returns the material bound to the quad at index.
func (n Naming) MaterialName(index int) string {
	return n.Name(index) + "_texture"
}

// TextureName returns the image file the renderer writes for the quad at index.
func (n Naming) TextureName(index int) string {
	ext := strings.TrimPrefix(n.TextureExt, ".")
	if ext == "" {
		ext = DefaultTextureExt
	}
	return n.Name(index) + "." + ext
}

// Format returns the view line for one frame:
//
//	view=<name> -vtl -vp X Y Z -vd X Y Z -vu X Y Z -vh W -vv H
func Format(f projection.Frame, n Naming, index int) string {
	var b strings.Builder
	b.WriteString("view=")
	b.WriteString(n.Name(index))
	b.WriteString(" -vtl")
	writeVec(&b, "-vp", f.Origin)
	writeVec(&b, "-vd", f.Direction)
	writeVec(&b, "-vu", f.Up)
	b.WriteString(" -vh ")
	b.WriteString(Number(f.Width))
	b.WriteString(" -vv ")
	b.WriteString(Number(f.Height))
	return b.String()
}

func writeVec(b *strings.Builder, flag string, v math.Vec3) {
	b.WriteString(" ")
	b.WriteString(flag)
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		b.WriteString(" ")
		b.WriteString(Number(c))
	}
}

// Number formats x with Precision significant digits. Negative zero is
// written as 0 so identical geometry always yields identical text.
func Number(x float64) string {
	s := strconv.FormatFloat(x, 'g', Precision, 64)
	if s == "-0" {
		return "0"
	}
	return s
}
