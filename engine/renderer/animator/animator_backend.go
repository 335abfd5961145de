package animator

import (
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// AnimatorBackendType identifies the type of pose backend used by an Animator.
type AnimatorBackendType int

const (
	// BackendTypeFixed is the fixed-pose backend. The caller supplies final
	// skinning matrices directly and Advance is a no-op.
	BackendTypeFixed AnimatorBackendType = iota

	// BackendTypeClip is the keyframe clip backend. A skeleton with rest-pose
	// locals and inverse bind matrices is evaluated against animation clips
	// each Advance to produce the palette.
	BackendTypeClip
)

// AnimatorBackend is the union interface that all pose backends must implement.
// Methods that do not apply to a given backend type are implemented as no-ops.
type AnimatorBackend interface {
	BoneCount() uint32
	Pose() skinning.BoneSet
	Advance(deltaTime float32)
	SetBoneCount(count uint32)
	SetBoneTransform(index uint32, transform skinning.Mat4)
	SetBone(index uint32, inverseBindMatrix [16]float32, localTranslation [3]float32, localRotation [4]float32, localScale [3]float32, parentIndex int32)
	AddClip(duration, ticksPerSecond float32, channels []uint32, keyframeTimes []float32, keyframeTranslations [][3]float32, keyframeRotations [][4]float32, keyframeScales [][3]float32) uint32
	PlayAnimation(clipIndex uint32, loop bool)
	SetAnimationTime(time float32)
	SetAnimationSpeed(speed float32)
	AnimationTime() float32
}
