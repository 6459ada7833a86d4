package math

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := Vec3{1, 2, 3}
	result := m.TransformPoint(p)

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := Vec3{1, 2, 3}
	result := m.TransformPoint(p)

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := Vec3{1, 0, 0}                 // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"translation", Translate(3, -2, 5)},
		{"model", ModelMatrix(Vec3{12, -4, 7}, 30, 45, 60, 2)},
		{"view", ViewMatrix(Vec3{400, 12, -150}, 25, 160, 0)},
		{"non-uniform", Translate(1, 2, 3).Mul(Scale(0.5, 4, 2)).Mul(RotateZ(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Inverse()
			if err != nil {
				t.Fatalf("Inverse: %v", err)
			}
			back, err := inv.Inverse()
			if err != nil {
				t.Fatalf("Inverse of inverse: %v", err)
			}
			for i := range back {
				if abs(back[i]-tt.m[i]) > 1e-3 {
					t.Errorf("element %d: got %f, want %f", i, back[i], tt.m[i])
				}
			}

			id := tt.m.Mul(inv)
			want := Identity()
			for i := range id {
				if abs(id[i]-want[i]) > 1e-4 {
					t.Errorf("M * M^-1 element %d: got %f, want %f", i, id[i], want[i])
				}
			}
		})
	}
}

func TestInverseMatchesMathgl(t *testing.T) {
	m := ModelMatrix(Vec3{-8, 3, 20}, 10, 200, -35, 0.3)
	got, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	want := mgl32.Mat4(m).Inv()
	for i := range got {
		if abs(got[i]-want[i]) > 1e-3 {
			t.Errorf("element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	_, err := Scale(1, 0, 1).Inverse()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Inverse of singular matrix: got %v, want ErrSingularMatrix", err)
	}
}

func TestDeterminant(t *testing.T) {
	if got := Scale(2, 3, 4).Determinant(); got != 24 {
		t.Errorf("Determinant = %f, want 24", got)
	}
	if got := Translate(9, 9, 9).Determinant(); got != 1 {
		t.Errorf("Determinant of translation = %f, want 1", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3).Transpose()
	if m[3] != 1 || m[7] != 2 || m[11] != 3 || m[12] != 0 {
		t.Errorf("Transpose: got %v", m)
	}
}

func TestFloatsOrder(t *testing.T) {
	m := Translate(7, 8, 9)
	f := m.Floats()
	// m30, m31, m32 hold the translation in column-major order
	if f[12] != 7 || f[13] != 8 || f[14] != 9 || f[15] != 1 {
		t.Errorf("Floats translation = %v, want 7 8 9 1 at 12..15", f[12:])
	}
}

func TestWithoutTranslation(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateY(0.5)).WithoutTranslation()
	if m.Translation() != (Vec3{}) {
		t.Errorf("translation = %v, want zero", m.Translation())
	}
	if m[0] != RotateY(0.5)[0] {
		t.Errorf("rotation part changed: %f", m[0])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
