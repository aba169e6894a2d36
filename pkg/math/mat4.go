package math

// Mat4 is a column-major 4x4 matrix: element (row r, column c) is m[c*4+r].
// Points are column vectors, so a.Mul(b) applies b first.
type Mat4 [16]float64

// Ortho maps the box [left,right]x[bottom,top]x[-near,-far] in eye space
// onto the [-1,1] cube.
func Ortho(left, right, bottom, top, near, far float64) Mat4 {
	w := right - left
	h := top - bottom
	d := far - near

	var m Mat4
	m[0] = 2 / w
	m[5] = 2 / h
	m[10] = -2 / d
	m[12] = -(right + left) / w
	m[13] = -(top + bottom) / h
	m[14] = -(far + near) / d
	m[15] = 1
	return m
}

// LookAt returns the eye-space transform of a camera at eye looking toward
// target. up need not be orthogonal to the view direction.
func LookAt(eye, target, up Vec3) Mat4 {
	fwd := target.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	camUp := side.Cross(fwd)

	var m Mat4
	for i, axis := range [3]Vec3{side, camUp, fwd.Neg()} {
		m[0*4+i] = axis.X
		m[1*4+i] = axis.Y
		m[2*4+i] = axis.Z
		m[3*4+i] = -axis.Dot(eye)
	}
	m[15] = 1
	return m
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * other[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies m to p with w = 1 and divides by the resulting w
// when it is neither 0 nor 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	var out [4]float64
	for r := 0; r < 4; r++ {
		out[r] = m[r]*p.X + m[4+r]*p.Y + m[8+r]*p.Z + m[12+r]
	}
	if w := out[3]; w != 0 && w != 1 {
		return Vec3{out[0] / w, out[1] / w, out[2] / w}
	}
	return Vec3{out[0], out[1], out[2]}
}
