package common

import (
	"math"
	"testing"
)

func mat4Equal(t *testing.T, got, want []float32, tol float64) {
	t.Helper()
	for i := range 16 {
		if math.Abs(float64(got[i]-want[i])) > tol {
			t.Fatalf("matrix mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}
	Identity(m)
	want := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	mat4Equal(t, m, want, 0)
}

func TestMul4_IdentityIsNeutral(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	m := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := make([]float32, 16)

	Mul4(out, id, m)
	mat4Equal(t, out, m, 0)
	Mul4(out, m, id)
	mat4Equal(t, out, m, 0)
}

func TestMul4_TranslationsCompose(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	Identity(a)
	Identity(b)
	a[12], a[13], a[14] = 1, 2, 3
	b[12], b[13], b[14] = 10, 20, 30

	out := make([]float32, 16)
	Mul4(out, a, b)
	if out[12] != 11 || out[13] != 22 || out[14] != 33 {
		t.Errorf("composed translation = (%v, %v, %v), want (11, 22, 33)", out[12], out[13], out[14])
	}
}

func TestMul4_AliasesWithOutput(t *testing.T) {
	a := make([]float32, 16)
	Identity(a)
	a[12] = 5
	// out aliasing an operand must still produce a * a.
	Mul4(a, a, a)
	if a[12] != 10 {
		t.Errorf("aliased multiply translation = %v, want 10", a[12])
	}
}

func TestMulVec4(t *testing.T) {
	m := make([]float32, 16)
	Identity(m)
	m[12], m[13], m[14] = 1, 2, 3

	if got := MulVec4(m, [4]float32{0, 0, 0, 1}); got != [4]float32{1, 2, 3, 1} {
		t.Errorf("point transform = %v, want (1, 2, 3, 1)", got)
	}
	// Direction vectors (w = 0) ignore translation.
	if got := MulVec4(m, [4]float32{1, 0, 0, 0}); got != [4]float32{1, 0, 0, 0} {
		t.Errorf("direction transform = %v, want (1, 0, 0, 0)", got)
	}
}

func TestTranspose(t *testing.T) {
	m := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := make([]float32, 16)
	Transpose(out, m)
	want := []float32{
		1, 5, 9, 13,
		2, 6, 10, 14,
		3, 7, 11, 15,
		4, 8, 12, 16,
	}
	mat4Equal(t, out, want, 0)

	// Aliased transpose must still be correct.
	Transpose(m, m)
	mat4Equal(t, m, want, 0)
}

func TestPerspective_DepthRange(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, math.Pi/2, 1, 1, 100)

	// A point on the near plane maps to clip depth 0, the far plane to 1.
	near := MulVec4(m, [4]float32{0, 0, -1, 1})
	if got := near[2] / near[3]; math.Abs(float64(got)) > 1e-5 {
		t.Errorf("near plane depth = %v, want 0", got)
	}
	far := MulVec4(m, [4]float32{0, 0, -100, 1})
	if got := far[2] / far[3]; math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("far plane depth = %v, want 1", got)
	}
	if m[11] != -1 {
		t.Errorf("m[11] = %v, want -1 (w receives view -z)", m[11])
	}
}

func TestLookAt_TargetOnViewAxis(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 10, 0, 0, 0, 0, 1, 0)

	// The target sits on the negative view z axis at the eye distance.
	v := MulVec4(m, [4]float32{0, 0, 0, 1})
	want := [4]float32{0, 0, -10, 1}
	for i := range 4 {
		if math.Abs(float64(v[i]-want[i])) > 1e-5 {
			t.Fatalf("view-space target = %v, want %v", v, want)
		}
	}

	// The eye maps to the view-space origin.
	v = MulVec4(m, [4]float32{0, 0, 10, 1})
	for i := range 3 {
		if math.Abs(float64(v[i])) > 1e-5 {
			t.Fatalf("view-space eye = %v, want origin", v)
		}
	}
}

func TestInvert4(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 3, -2, 5, 0.3, 1.1, -0.4, 2, 2, 2)

	inv := make([]float32, 16)
	if !Invert4(inv, m) {
		t.Fatal("Invert4 reported singular for an invertible matrix")
	}

	out := make([]float32, 16)
	Mul4(out, m, inv)
	id := make([]float32, 16)
	Identity(id)
	mat4Equal(t, out, id, 1e-4)
}

func TestInvert4_Singular(t *testing.T) {
	m := make([]float32, 16) // all zeros
	out := []float32{
		9, 9, 9, 9,
		9, 9, 9, 9,
		9, 9, 9, 9,
		9, 9, 9, 9,
	}
	if Invert4(out, m) {
		t.Fatal("Invert4 inverted a singular matrix")
	}
	if out[0] != 9 {
		t.Error("Invert4 modified the output for a singular matrix")
	}
}

func TestInverseTranspose_PreservesNormalsUnderNonUniformScale(t *testing.T) {
	// Scale x by 2: a surface normal along x must stay along x after the
	// inverse-transpose, while the naive transform would stretch it.
	m := make([]float32, 16)
	Identity(m)
	m[0] = 2

	it := make([]float32, 16)
	if !InverseTranspose(it, m) {
		t.Fatal("InverseTranspose reported singular")
	}
	n := MulVec4(it, [4]float32{1, 0, 0, 0})
	if math.Abs(float64(n[0])-0.5) > 1e-5 || n[1] != 0 || n[2] != 0 {
		t.Errorf("transformed normal = %v, want (0.5, 0, 0, 0)", n)
	}
}

func TestBuildModelMatrix_TranslationAndScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 1, 2, 3, 0, 0, 0, 2, 3, 4)

	v := MulVec4(m, [4]float32{1, 1, 1, 1})
	want := [4]float32{3, 5, 7, 1}
	for i := range 4 {
		if math.Abs(float64(v[i]-want[i])) > 1e-5 {
			t.Fatalf("transformed point = %v, want %v", v, want)
		}
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Errorf("len = %d, want 8", len(b))
	}
	// 1.0 is 0x3f800000 little-endian.
	if b[0] != 0 || b[1] != 0 || b[2] != 0x80 || b[3] != 0x3f {
		t.Errorf("first element bytes = % x, want 00 00 80 3f", b[:4])
	}
	if got := SliceToBytes([]float32(nil)); got != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", got)
	}
}

func TestStructToBytes(t *testing.T) {
	type payload struct {
		A float32
		B uint32
	}
	p := payload{A: 1, B: 0x01020304}
	b := StructToBytes(&p)
	if len(b) != 8 {
		t.Errorf("len = %d, want 8", len(b))
	}
	if b[4] != 0x04 || b[7] != 0x01 {
		t.Errorf("uint32 bytes = % x, want little-endian 04 03 02 01", b[4:8])
	}
}
