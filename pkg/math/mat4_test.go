package math

import (
	"testing"
)

func TestMulAppliesRightOperandFirst(t *testing.T) {
	view := LookAt(Vec3{1, 2, 3}, Vec3{1, 2, 0}, Vec3{0, 1, 0})
	proj := Ortho(-2, 2, -1, 1, 0, 10)
	vp := proj.Mul(view)

	for _, p := range []Vec3{{0, 0, 0}, {1, 2, 1}, {-3, 0.5, 2}} {
		got := vp.TransformPoint(p)
		want := proj.TransformPoint(view.TransformPoint(p))
		if !got.ApproxEqual(want, 1e-12) {
			t.Errorf("vp(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestLookAtEyeSpace(t *testing.T) {
	// Looking down -Z from (0,0,5): eye space equals world shifted by -5 on Z.
	view := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	tests := []struct {
		point Vec3
		want  Vec3
	}{
		{Vec3{0, 0, 5}, Vec3{0, 0, 0}},
		{Vec3{1, 2, 0}, Vec3{1, 2, -5}},
		{Vec3{-1, 0, 7}, Vec3{-1, 0, 2}},
	}
	for _, tc := range tests {
		if got := view.TransformPoint(tc.point); !got.ApproxEqual(tc.want, 1e-12) {
			t.Errorf("LookAt(%v) = %v, want %v", tc.point, got, tc.want)
		}
	}
}

func TestLookAtOrtho(t *testing.T) {
	// Camera 5 units above the XY plane looking down with +Y up.
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	proj := Ortho(-1, 1, -2, 2, 0.1, 10)
	vp := proj.Mul(view)

	tests := []struct {
		point Vec3
		want  Vec3
	}{
		{Vec3{0, 0, 0}, Vec3{0, 0, 0}},
		{Vec3{1, 0, 0}, Vec3{1, 0, 0}},
		{Vec3{0, 2, 0}, Vec3{0, 1, 0}},
		{Vec3{-1, -2, 0}, Vec3{-1, -1, 0}},
	}

	for _, tc := range tests {
		got := vp.TransformPoint(tc.point)
		if !(Vec2{got.X, got.Y}).ApproxEqual(Vec2{tc.want.X, tc.want.Y}, 1e-9) {
			t.Errorf("project %v: got %v, want xy %v", tc.point, got, tc.want)
		}
	}
}

func TestOrthoDepth(t *testing.T) {
	proj := Ortho(-1, 1, -1, 1, 0, 2)
	// Eye-space z = -near maps to -1 and z = -far to +1.
	if got := proj.TransformPoint(Vec3{0, 0, 0}); got.Z != -1 {
		t.Errorf("near plane depth = %v, want -1", got.Z)
	}
	if got := proj.TransformPoint(Vec3{0, 0, -2}); got.Z != 1 {
		t.Errorf("far plane depth = %v, want 1", got.Z)
	}
}
