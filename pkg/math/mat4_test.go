package math

import (
	"testing"
)

func mat4Near(a, b Mat4, eps float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

func TestIdentityMul(t *testing.T) {
	m := Translate(1, 2, 3)
	got := Identity().Mul(m)
	if got != m {
		t.Errorf("Identity().Mul(m) = %v, want %v", got, m)
	}
}

func TestTranslateTransformPoint(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}

func TestScaleThenTranslate(t *testing.T) {
	// Column-major: Translate.Mul(Scale) scales first, then translates.
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{12, 0, 0}
	if got != want {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -2, 5).Mul(RotateY(0.7)).Mul(Scale(2, 2, 2))
	got := m.Mul(m.Inverse())
	if !mat4Near(got, Identity(), 1e-5) {
		t.Errorf("m.Mul(m.Inverse()) = %v, want identity", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tt := m.Transpose().Transpose()
	if tt != m {
		t.Errorf("double Transpose() = %v, want %v", tt, m)
	}
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 10}
	view := LookAt(eye, Vec3{}, Vec3{Y: 1})
	got := view.TransformPoint(eye)
	if got.Length() > 1e-5 {
		t.Errorf("view * eye = %v, want origin", got)
	}
}
