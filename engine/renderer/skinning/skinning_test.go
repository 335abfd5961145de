package skinning

import (
	"math"
	"testing"
)

// translation returns a column-major transform that offsets by (x, y, z).
func translation(x, y, z float32) Mat4 {
	m := IdentityMat4()
	m[12], m[13], m[14] = x, y, z
	return m
}

func almostEqual3(a, b [3]float32, eps float64) bool {
	for i := range 3 {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func TestBlendTransform(t *testing.T) {
	bones := BoneSet{
		translation(1, 0, 0),
		translation(0, 1, 0),
		translation(0, 0, 1),
	}

	tests := []struct {
		name    string
		indices [MaxInfluences]int32
		weights [MaxInfluences]float32
		pos     [3]float32
		want    [3]float32
	}{
		{
			name:    "all-zero weights deform by identity",
			indices: [MaxInfluences]int32{2, 2, 2, 2},
			weights: [MaxInfluences]float32{0, 0, 0, 0},
			pos:     [3]float32{1, 2, 3},
			want:    [3]float32{1, 2, 3},
		},
		{
			name:    "single full weight passes the bone through",
			indices: [MaxInfluences]int32{1, 0, 0, 0},
			weights: [MaxInfluences]float32{1, 0, 0, 0},
			pos:     [3]float32{0, 0, 0},
			want:    [3]float32{0, 1, 0},
		},
		{
			name:    "two half weights average the translations",
			indices: [MaxInfluences]int32{0, 1, 0, 0},
			weights: [MaxInfluences]float32{0.5, 0.5, 0, 0},
			pos:     [3]float32{0, 0, 0},
			want:    [3]float32{0.5, 0.5, 0},
		},
		{
			name:    "negative index clamps to the first bone",
			indices: [MaxInfluences]int32{-5, 0, 0, 0},
			weights: [MaxInfluences]float32{1, 0, 0, 0},
			pos:     [3]float32{0, 0, 0},
			want:    [3]float32{1, 0, 0},
		},
		{
			name:    "overflowing index clamps to the last bone",
			indices: [MaxInfluences]int32{99, 0, 0, 0},
			weights: [MaxInfluences]float32{1, 0, 0, 0},
			pos:     [3]float32{0, 0, 0},
			want:    [3]float32{0, 0, 1},
		},
		{
			name:    "zero-weight influences are skipped entirely",
			indices: [MaxInfluences]int32{0, 99, -3, 2},
			weights: [MaxInfluences]float32{1, 0, 0, 0},
			pos:     [3]float32{0, 0, 0},
			want:    [3]float32{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform := BlendTransform(tt.indices, tt.weights, bones)
			got := DeformPosition(transform, tt.pos)
			if !almostEqual3(got, tt.want, 1e-6) {
				t.Errorf("DeformPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlendTransform_ZeroSumIsExact(t *testing.T) {
	// Tiny but nonzero weights must NOT trip the identity sentinel; the check
	// is exact equality with zero, not an epsilon.
	bones := BoneSet{translation(10, 0, 0)}
	weights := [MaxInfluences]float32{1e-30, 0, 0, 0}
	transform := BlendTransform([MaxInfluences]int32{0, 0, 0, 0}, weights, bones)
	if transform == IdentityMat4() {
		t.Error("BlendTransform() with denormal weight sum returned identity, want weighted blend")
	}
}

func TestBlendTransform_EmptyBoneSet(t *testing.T) {
	transform := BlendTransform(
		[MaxInfluences]int32{3, 1, 0, 2},
		[MaxInfluences]float32{1, 0, 0, 0},
		nil,
	)
	if transform != IdentityMat4() {
		t.Errorf("BlendTransform() with empty bone set = %v, want identity", transform)
	}
}

func TestDeformNormal_IgnoresTranslation(t *testing.T) {
	transform := translation(5, 6, 7)
	got := DeformNormal(transform, [3]float32{0, 0, 1})
	want := [3]float32{0, 0, 1}
	if !almostEqual3(got, want, 1e-6) {
		t.Errorf("DeformNormal() = %v, want %v", got, want)
	}
}

func TestBakeTransforms_MatchesBlendTransform(t *testing.T) {
	bones := BoneSet{
		translation(1, 0, 0),
		translation(0, 2, 0),
		translation(0, 0, 3),
	}
	indices := [][MaxInfluences]int32{
		{0, 1, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
	}
	weights := [][MaxInfluences]float32{
		{0.25, 0.75, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 0},
	}

	dst := make([]float32, len(indices)*16)
	BakeTransforms(dst, indices, weights, bones, 0, len(indices))

	for i := range indices {
		want := BlendTransform(indices[i], weights[i], bones)
		var got Mat4
		copy(got[:], dst[i*16:(i+1)*16])
		if got != want {
			t.Errorf("vertex %d: baked transform = %v, want %v", i, got, want)
		}
	}
}

func TestBakeTransforms_RespectsRange(t *testing.T) {
	bones := BoneSet{translation(1, 0, 0)}
	indices := [][MaxInfluences]int32{{0}, {0}, {0}}
	weights := [][MaxInfluences]float32{{1}, {1}, {1}}

	dst := make([]float32, len(indices)*16)
	BakeTransforms(dst, indices, weights, bones, 1, 2)

	for i := range 16 {
		if dst[i] != 0 {
			t.Fatalf("vertex 0 written outside bake range: dst[%d] = %v", i, dst[i])
		}
		if dst[32+i] != 0 {
			t.Fatalf("vertex 2 written outside bake range: dst[%d] = %v", 32+i, dst[32+i])
		}
	}
	var got Mat4
	copy(got[:], dst[16:32])
	if got != bones[0] {
		t.Errorf("vertex 1 baked transform = %v, want %v", got, bones[0])
	}
}

func TestTransformColumnsRoundTrip(t *testing.T) {
	var m Mat4
	for i := range m {
		m[i] = float32(i) * 0.5
	}
	cols := m.Columns()
	got := TransformFromColumns(cols[0], cols[1], cols[2], cols[3])
	if got != m {
		t.Errorf("TransformFromColumns(Columns()) = %v, want %v", got, m)
	}
}

func TestBoneSetSnapshot(t *testing.T) {
	set := BoneSet{translation(1, 2, 3)}
	snap := set.Snapshot()
	set[0][12] = 99
	if snap[0][12] != 1 {
		t.Errorf("snapshot observed mutation: got %v, want 1", snap[0][12])
	}

	if got := BoneSet(nil).Snapshot(); got != nil {
		t.Errorf("nil Snapshot() = %v, want nil", got)
	}
}

func TestBoneSetBytes(t *testing.T) {
	set := BoneSet{IdentityMat4(), IdentityMat4()}
	got := set.Bytes()
	if len(got) != 2*64 {
		t.Errorf("Bytes() length = %d, want %d", len(got), 2*64)
	}
}
