// Package projection derives parallel-projection frames and UV mappings for
// planar quads.
package projection

import (
	"fmt"

	"github.com/Faultbox/parviews/pkg/math"
)

// Quad is a planar four-sided face read from the scene.
type Quad struct {
	// Index is the quad's position in the scene's quad sequence. It is kept
	// when earlier quads are skipped so names stay stable.
	Index    int
	ID       string
	Material string
	Vertices [4]math.Vec3
}

// Centroid returns the average of the four vertices.
func (q *Quad) Centroid() math.Vec3 {
	return math.Centroid(q.Vertices[:]...)
}

// FirstEdge returns v1 - v0.
func (q *Quad) FirstEdge() math.Vec3 {
	return q.Vertices[1].Sub(q.Vertices[0])
}

// DegenerateGeometryError reports a quad whose frame cannot be computed.
type DegenerateGeometryError struct {
	Index    int
	ID       string
	Vertices [4]math.Vec3
	Reason   string
	Err      error
}

func (e *DegenerateGeometryError) Error() string {
	msg := fmt.Sprintf("quad %d", e.Index)
	if e.ID != "" {
		msg += fmt.Sprintf(" (%s)", e.ID)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s; vertices %v %v %v %v", msg,
		e.Vertices[0], e.Vertices[1], e.Vertices[2], e.Vertices[3])
}

func (e *DegenerateGeometryError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return math.ErrDegenerate
}

func degenerate(q *Quad, reason string, err error) *DegenerateGeometryError {
	return &DegenerateGeometryError{
		Index:    q.Index,
		ID:       q.ID,
		Vertices: q.Vertices,
		Reason:   reason,
		Err:      err,
	}
}
