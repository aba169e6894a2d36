package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999999 || l > 1.000001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing the zero vector should return the zero vector")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid(Vec3{0, 0, 0}, Vec3{2, 0, 0}, Vec3{2, 2, 0}, Vec3{0, 2, 4})
	want := Vec3{1, 1, 1}
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
	if Centroid() != (Vec3{}) {
		t.Error("Centroid() of no points should be zero")
	}
}

func TestVec3IsFinite(t *testing.T) {
	tests := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{1, -2, 3}, true},
		{Vec3{math.NaN(), 0, 0}, false},
		{Vec3{0, math.Inf(1), 0}, false},
		{Vec3{0, 0, math.Inf(-1)}, false},
	}
	for _, tc := range tests {
		if got := tc.v.IsFinite(); got != tc.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tc.v, got, tc.want)
		}
	}
}
