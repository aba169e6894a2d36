package projection

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/parviews/pkg/math"
)

// Options control how frames are derived.
type Options struct {
	// Up is the scene's global up direction (unit length).
	Up math.Vec3

	// ViewOffset is how far the eye sits in front of the quad along its
	// outward normal.
	ViewOffset float64

	// Padding widens the view symmetrically by this fraction of the extent.
	Padding float64

	// PlanarityTolerance is the largest accepted distance of a vertex from
	// the quad's plane, relative to the longer diagonal.
	PlanarityTolerance float64
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Up:                 math.Vec3{X: 0, Y: 0, Z: 1},
		ViewOffset:         0.1,
		Padding:            0,
		PlanarityTolerance: 1e-3,
	}
}

// Frame is the parallel-projection camera for one quad.
// Direction, Up and Right form a right-handed orthonormal triple with
// Right = Direction x Up.
type Frame struct {
	Origin    math.Vec3
	Direction math.Vec3
	Up        math.Vec3
	Right     math.Vec3

	// Normal is the quad's outward normal (-Direction).
	Normal math.Vec3

	// Center is the point on the quad's plane the view is centred on.
	Center math.Vec3

	Width  float64
	Height float64

	// Offset is the distance between Origin and Center.
	Offset float64

	// UsedFallback is set when Up came from the quad's first edge because
	// the global up was parallel to the normal.
	UsedFallback bool
}

// UVSet holds one texture coordinate per quad vertex, in vertex order.
type UVSet [4]math.Vec2

// Process derives the frame and UVs for q.
func Process(q Quad, opts Options) (Frame, UVSet, error) {
	v := q.Vertices

	for i, p := range v {
		if !p.IsFinite() {
			return Frame{}, UVSet{}, degenerate(&q, fmt.Sprintf("vertex %d is not finite", i), nil)
		}
	}

	for i := 0; i < len(v); i++ {
		for j := i + 1; j < len(v); j++ {
			if v[i].Distance(v[j]) < math.Epsilon {
				return Frame{}, UVSet{}, degenerate(&q, fmt.Sprintf("vertices %d and %d coincide", i, j), nil)
			}
		}
	}

	normal, err := math.NormalOf(v)
	if err != nil {
		return Frame{}, UVSet{}, degenerate(&q, "cannot compute normal", err)
	}

	basis, err := math.OrthonormalBasis(normal, opts.Up, q.FirstEdge())
	if err != nil {
		return Frame{}, UVSet{}, degenerate(&q, "cannot compute up vector", err)
	}

	diag := gomath.Max(v[0].Distance(v[2]), v[1].Distance(v[3]))
	for i, p := range v {
		if d := gomath.Abs(p.Sub(v[0]).Dot(normal)); d > opts.PlanarityTolerance*diag {
			return Frame{}, UVSet{}, degenerate(&q, fmt.Sprintf("vertex %d is %.4g off the plane", i, d), nil)
		}
	}

	centroid := q.Centroid()

	var pts [4]math.Vec2
	minR, minU := gomath.Inf(1), gomath.Inf(1)
	maxR, maxU := gomath.Inf(-1), gomath.Inf(-1)
	for i, p := range v {
		pts[i] = math.ProjectToPlane(p, centroid, basis.Right, basis.Up)
		minR = gomath.Min(minR, pts[i].X)
		maxR = gomath.Max(maxR, pts[i].X)
		minU = gomath.Min(minU, pts[i].Y)
		maxU = gomath.Max(maxU, pts[i].Y)
	}

	if maxR-minR < math.Epsilon || maxU-minU < math.Epsilon {
		return Frame{}, UVSet{}, degenerate(&q, "zero view extent", nil)
	}

	if opts.Padding > 0 {
		padR := (maxR - minR) * opts.Padding / 2
		padU := (maxU - minU) * opts.Padding / 2
		minR, maxR = minR-padR, maxR+padR
		minU, maxU = minU-padU, maxU+padU
	}

	width := maxR - minR
	height := maxU - minU

	center := centroid.
		Add(basis.Right.Scale((minR + maxR) / 2)).
		Add(basis.Up.Scale((minU + maxU) / 2))

	frame := Frame{
		Origin:       center.Add(normal.Scale(opts.ViewOffset)),
		Direction:    normal.Neg(),
		Up:           basis.Up,
		Right:        basis.Right,
		Normal:       normal,
		Center:       center,
		Width:        width,
		Height:       height,
		Offset:       opts.ViewOffset,
		UsedFallback: basis.Fallback,
	}

	var uv UVSet
	for i, p := range pts {
		uv[i] = math.Vec2{
			X: (p.X - minR) / width,
			Y: (p.Y - minU) / height,
		}
	}

	return frame, uv, nil
}

// Reconstruct maps a texture coordinate back onto the quad's plane.
func (f Frame) Reconstruct(uv math.Vec2) math.Vec3 {
	return f.Center.
		Add(f.Right.Scale((uv.X - 0.5) * f.Width)).
		Add(f.Up.Scale((uv.Y - 0.5) * f.Height))
}

// ViewProjection returns the matrix that maps world points into the
// frame's normalized device coordinates. Points on the quad land in
// [-1, 1] on X and Y.
func (f Frame) ViewProjection() math.Mat4 {
	view := math.LookAt(f.Origin, f.Origin.Add(f.Direction), f.Up)
	proj := math.Ortho(-f.Width/2, f.Width/2, -f.Height/2, f.Height/2, 0, 2*f.Offset)
	return proj.Mul(view)
}
