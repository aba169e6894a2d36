package projection

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/parviews/pkg/math"
)

// CheckTolerance is the default tolerance for Check, relative to the larger
// view extent for positions and absolute for device coordinates.
const CheckTolerance = 1e-6

// Check verifies that f and uv describe q: every UV maps back onto its
// vertex, and the frame's view-projection puts each vertex at the device
// coordinate its UV names. A failure is reported as a degenerate quad.
func Check(q Quad, f Frame, uv UVSet, tol float64) error {
	scale := gomath.Max(f.Width, f.Height)
	vp := f.ViewProjection()

	for i, p := range q.Vertices {
		c := uv[i]
		if c.X < -tol || c.X > 1+tol || c.Y < -tol || c.Y > 1+tol {
			return degenerate(&q, fmt.Sprintf("uv %d = %v outside the unit square", i, c), nil)
		}
		if back := f.Reconstruct(c); back.Distance(p) > tol*scale {
			return degenerate(&q, fmt.Sprintf("uv %d maps back to %v, not %v", i, back, p), nil)
		}
		ndc := vp.TransformPoint(p)
		want := math.Vec2{X: 2*c.X - 1, Y: 2*c.Y - 1}
		if !(math.Vec2{X: ndc.X, Y: ndc.Y}).ApproxEqual(want, tol) {
			return degenerate(&q, fmt.Sprintf("vertex %d projects to %v, uv says %v", i, ndc, want), nil)
		}
	}
	return nil
}
