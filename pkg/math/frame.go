package math

import (
	"errors"
	"fmt"
	"math"
)

// Tolerances shared by the frame routines.
const (
	// Epsilon is the smallest vector length treated as non-zero.
	Epsilon = 1e-9

	// MinCornerSine is the smallest accepted sine of the angle between the
	// two edges used for the normal. Below it the points are considered
	// collinear even though the cross product is technically non-zero.
	MinCornerSine = 1e-4

	// ParallelTolerance is the |ref x normal| below which the reference up
	// vector counts as parallel to the normal.
	ParallelTolerance = 1e-6
)

// ErrDegenerate is returned when a normal or basis cannot be derived.
var ErrDegenerate = errors.New("degenerate geometry")

// Basis is a right-handed orthonormal frame attached to a plane.
// Right x Up == Normal.
type Basis struct {
	Right  Vec3
	Up     Vec3
	Normal Vec3

	// Fallback is set when the reference up vector was parallel to the
	// normal and the secondary axis was used instead.
	Fallback bool
}

// NormalOf returns the unit normal of the plane through v[0], v[1], v[2],
// computed as (v1-v0) x (v2-v0). The fourth vertex is ignored, so for a
// concave quad whose reflex corner is v[1] the normal points against the
// winding and the view faces the back of the quad.
func NormalOf(v [4]Vec3) (Vec3, error) {
	a := v[1].Sub(v[0])
	b := v[2].Sub(v[0])
	c := a.Cross(b)

	cl := c.Length()
	if cl < Epsilon {
		return Vec3{}, fmt.Errorf("%w: zero-area corner at vertex 0", ErrDegenerate)
	}
	if sine := cl / (a.Length() * b.Length()); sine < MinCornerSine {
		return Vec3{}, fmt.Errorf("%w: nearly collinear corner at vertex 0 (sin=%.3g)", ErrDegenerate, sine)
	}
	return c.Scale(1 / cl), nil
}

// OrthonormalBasis builds {right, up} for a plane with the given unit
// normal, keeping up as close as possible to ref.
//
// When ref is (nearly) parallel to normal, ref x normal vanishes and the
// fallback axis, projected into the plane, becomes right instead.
func OrthonormalBasis(normal, ref, fallback Vec3) (Basis, error) {
	right := ref.Cross(normal)
	usedFallback := false

	if right.Length() < ParallelTolerance {
		right = fallback.Sub(normal.Scale(fallback.Dot(normal)))
		if right.Length() < ParallelTolerance {
			return Basis{}, fmt.Errorf("%w: fallback axis is parallel to the normal", ErrDegenerate)
		}
		usedFallback = true
	}

	right = right.Normalize()
	return Basis{
		Right:    right,
		Up:       normal.Cross(right),
		Normal:   normal,
		Fallback: usedFallback,
	}, nil
}

// ProjectToPlane returns p in the 2D coordinates of the plane spanned by
// right and up around origin.
func ProjectToPlane(p, origin, right, up Vec3) Vec2 {
	d := p.Sub(origin)
	return Vec2{d.Dot(right), d.Dot(up)}
}

// IsUnit reports whether v has length 1 within tol.
func IsUnit(v Vec3, tol float64) bool {
	return math.Abs(v.Length()-1) <= tol
}
