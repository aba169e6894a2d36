package math

import "math"

// Vec2 is a 2D vector. Plane coordinates and UVs use it.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// ApproxEqual reports whether both components differ by at most tol.
func (v Vec2) ApproxEqual(other Vec2, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol
}
