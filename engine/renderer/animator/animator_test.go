package animator

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

func TestFixedBackend_DefaultsToBindPose(t *testing.T) {
	a := NewAnimator(BackendTypeFixed, WithBoneCount(3))
	if a.BoneCount() != 3 {
		t.Fatalf("BoneCount() = %d, want 3", a.BoneCount())
	}
	for i, m := range a.Pose() {
		if m != skinning.IdentityMat4() {
			t.Errorf("bone %d = %v, want identity", i, m)
		}
	}
}

func TestFixedBackend_SetBoneTransform(t *testing.T) {
	a := NewAnimator(BackendTypeFixed, WithBoneCount(2))

	m := skinning.IdentityMat4()
	m[13] = 4
	a.SetBoneTransform(1, m)
	if got := a.Pose()[1]; got != m {
		t.Errorf("Pose()[1] = %v, want %v", got, m)
	}

	// Out-of-range writes are dropped, not panics.
	a.SetBoneTransform(99, m)
	a.Advance(1) // no-op for fixed backends
	if got := a.Pose()[0]; got != skinning.IdentityMat4() {
		t.Errorf("Pose()[0] = %v, want identity", got)
	}
}

// chainAnimator rigs two bones: a root and a child offset +2 in y, with the
// identity bind pose baked into the inverse bind matrices.
func chainAnimator() Animator {
	a := NewAnimator(BackendTypeClip, WithBoneCount(2))

	identityRot := [4]float32{0, 0, 0, 1}
	unitScale := [3]float32{1, 1, 1}

	rootInverseBind := skinning.IdentityMat4()
	a.SetBone(0, rootInverseBind, [3]float32{0, 0, 0}, identityRot, unitScale, -1)

	childInverseBind := skinning.IdentityMat4()
	childInverseBind[13] = -2
	a.SetBone(1, childInverseBind, [3]float32{0, 2, 0}, identityRot, unitScale, 0)

	return a
}

func TestClipBackend_RestPoseIsIdentityPalette(t *testing.T) {
	a := chainAnimator()
	a.Advance(0)
	for i, m := range a.Pose() {
		if m != skinning.IdentityMat4() {
			t.Errorf("bone %d rest palette = %v, want identity", i, m)
		}
	}
}

func TestClipBackend_TranslationChannelPropagatesToChild(t *testing.T) {
	a := chainAnimator()

	// Root slides +1 in x over one second (30 ticks at 30 ticks/second).
	channels := []uint32{
		0,    // bone
		0, 2, // translation keys
		0, 0, // rotation keys
		0, 0, // scale keys
	}
	times := []float32{0, 30}
	translations := [][3]float32{{0, 0, 0}, {1, 0, 0}}

	clip := a.AddClip(1, 30, channels, times, translations, nil, nil)
	a.PlayAnimation(clip, false)
	a.SetAnimationTime(0.5)

	pose := a.Pose()
	// Halfway through, both bones carry the interpolated +0.5 x offset; the
	// child's own +2 y local offset cancels against its inverse bind.
	for bone := range 2 {
		origin := skinning.DeformPosition(pose[bone], [3]float32{0, float32(bone) * 2, 0})
		wantX := float32(0.5)
		if math.Abs(float64(origin[0]-wantX)) > 1e-5 {
			t.Errorf("bone %d deformed x = %v, want %v", bone, origin[0], wantX)
		}
		if math.Abs(float64(origin[1]-float32(bone)*2)) > 1e-5 {
			t.Errorf("bone %d deformed y = %v, want %v", bone, origin[1], float32(bone)*2)
		}
	}
}

func TestClipBackend_LoopWrapsTime(t *testing.T) {
	a := chainAnimator()
	clip := a.AddClip(1, 30, []uint32{0, 0, 2, 0, 0, 0, 0}, []float32{0, 30}, [][3]float32{{0, 0, 0}, {1, 0, 0}}, nil, nil)
	a.PlayAnimation(clip, true)

	a.Advance(1.25)
	if got := a.AnimationTime(); math.Abs(float64(got-0.25)) > 1e-5 {
		t.Errorf("AnimationTime() after looping advance = %v, want 0.25", got)
	}
}

func TestClipBackend_StopsAtEndWhenNotLooping(t *testing.T) {
	a := chainAnimator()
	clip := a.AddClip(1, 30, []uint32{0, 0, 2, 0, 0, 0, 0}, []float32{0, 30}, [][3]float32{{0, 0, 0}, {1, 0, 0}}, nil, nil)
	a.PlayAnimation(clip, false)

	a.Advance(5)
	if got := a.AnimationTime(); got != 1 {
		t.Errorf("AnimationTime() after overrun = %v, want clamped to 1", got)
	}

	// The clip has ended; the pose holds the final keyframe.
	origin := skinning.DeformPosition(a.Pose()[0], [3]float32{0, 0, 0})
	if math.Abs(float64(origin[0]-1)) > 1e-5 {
		t.Errorf("final pose x = %v, want 1", origin[0])
	}
}

func TestClipBackend_SpeedScalesAdvance(t *testing.T) {
	a := chainAnimator()
	clip := a.AddClip(1, 30, []uint32{0, 0, 2, 0, 0, 0, 0}, []float32{0, 30}, [][3]float32{{0, 0, 0}, {1, 0, 0}}, nil, nil)
	a.PlayAnimation(clip, false)
	a.SetAnimationSpeed(0.5)

	a.Advance(1)
	if got := a.AnimationTime(); math.Abs(float64(got-0.5)) > 1e-5 {
		t.Errorf("AnimationTime() at half speed = %v, want 0.5", got)
	}
}

func TestClipBackend_RotationChannelBendsChild(t *testing.T) {
	a := chainAnimator()

	// Root rotates 90 degrees about z; the child origin at (0, 2, 0) must
	// swing to (-2, 0, 0).
	half := math.Pi / 4
	rot := [4]float32{0, 0, float32(math.Sin(half)), float32(math.Cos(half))}
	channels := []uint32{
		0,
		0, 0,
		0, 2,
		0, 0,
	}
	times := []float32{0, 30}
	rotations := [][4]float32{rot, rot}

	clip := a.AddClip(1, 30, channels, times, nil, rotations, nil)
	a.PlayAnimation(clip, false)

	origin := skinning.DeformPosition(a.Pose()[1], [3]float32{0, 2, 0})
	want := [3]float32{-2, 0, 0}
	for i := range 3 {
		if math.Abs(float64(origin[i]-want[i])) > 1e-5 {
			t.Fatalf("child origin = %v, want %v", origin, want)
		}
	}
}

func TestBackendTypeExposed(t *testing.T) {
	if got := NewAnimator(BackendTypeFixed).BackendType(); got != BackendTypeFixed {
		t.Errorf("BackendType() = %v, want fixed", got)
	}
	if got := NewAnimator(BackendTypeClip).BackendType(); got != BackendTypeClip {
		t.Errorf("BackendType() = %v, want clip", got)
	}
}
