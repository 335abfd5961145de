package animator

import (
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// animator is the implementation of the Animator interface.
type animator struct {
	backendType AnimatorBackendType
	backend     AnimatorBackend
}

// Animator defines the public interface for the pose evaluation system.
//
// An Animator produces the per-frame bone matrix palette that the deformation
// stage consumes. It delegates to an AnimatorBackend which provides the actual
// implementation: the fixed backend holds a caller-supplied pose directly,
// while the clip backend evaluates keyframe animation clips against a skeleton.
//
// Methods specific to a particular backend type no-op when called on an
// Animator using a different backend. SetBoneTransform is fixed-only; the
// skeleton and clip methods (SetBone, AddClip, PlayAnimation, SetAnimationTime,
// SetAnimationSpeed) are clip-only.
//
// The palette returned by Pose is live backend state. Callers that need a
// stable view for a full frame should take a skinning BoneSet Snapshot of it
// before any pass reads begin.
type Animator interface {
	// BoneCount returns the number of bones in the palette.
	//
	// Returns:
	//   - uint32: the number of bones
	BoneCount() uint32

	// Pose returns the current evaluated bone matrix palette.
	// Each entry is the final skinning matrix for one joint.
	//
	// Returns:
	//   - skinning.BoneSet: the current palette
	Pose() skinning.BoneSet

	// Advance moves animation playback forward by deltaTime seconds and
	// re-evaluates the palette. No-op on fixed backends.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Advance(deltaTime float32)

	// SetBoneCount allocates the palette (and skeleton storage on clip
	// backends) for the given number of bones. Must be called before SetBone
	// or SetBoneTransform.
	//
	// Parameters:
	//   - count: the number of bones in the skeleton
	SetBoneCount(count uint32)

	// SetBoneTransform sets the final skinning matrix for a bone directly.
	// No-op on clip backends.
	//
	// Parameters:
	//   - index: the bone index
	//   - transform: the skinning matrix to set
	SetBoneTransform(index uint32, transform skinning.Mat4)

	// SetBone sets skeleton data for a bone at the given index.
	// No-op on fixed backends.
	//
	// Parameters:
	//   - index: the bone index
	//   - inverseBindMatrix: the 4x4 inverse bind matrix as 16 floats (column-major)
	//   - localTranslation: the bone's rest local translation as [3]float32
	//   - localRotation: the bone's rest local rotation quaternion as [4]float32 (x, y, z, w)
	//   - localScale: the bone's rest local scale as [3]float32
	//   - parentIndex: the parent bone index, or -1 for root bones; parents must precede children
	SetBone(index uint32, inverseBindMatrix [16]float32, localTranslation [3]float32, localRotation [4]float32, localScale [3]float32, parentIndex int32)

	// AddClip adds an animation clip from pre-flattened channel and keyframe data.
	// No-op on fixed backends (returns 0).
	//
	// Parameters:
	//   - duration: the total clip duration in seconds
	//   - ticksPerSecond: the playback tick rate
	//   - channels: flat slice of channel data, 7 uint32 values per channel: [boneIndex, posKeyOffset, posKeyCount, rotKeyOffset, rotKeyCount, scaleKeyOffset, scaleKeyCount, ...]
	//   - keyframeTimes: time value for each keyframe
	//   - keyframeTranslations: translation per keyframe as [][3]float32
	//   - keyframeRotations: rotation per keyframe as [][4]float32
	//   - keyframeScales: scale per keyframe as [][3]float32
	//
	// Returns:
	//   - uint32: the index of the added clip
	AddClip(duration, ticksPerSecond float32, channels []uint32, keyframeTimes []float32, keyframeTranslations [][3]float32, keyframeRotations [][4]float32, keyframeScales [][3]float32) uint32

	// PlayAnimation starts playback of an animation clip from time zero.
	// No-op on fixed backends.
	//
	// Parameters:
	//   - clipIndex: the index of the animation clip to play
	//   - loop: whether the animation should loop
	PlayAnimation(clipIndex uint32, loop bool)

	// SetAnimationTime sets the playback position. No-op on fixed backends.
	//
	// Parameters:
	//   - time: the playback time in seconds
	SetAnimationTime(time float32)

	// SetAnimationSpeed sets the playback speed multiplier. No-op on fixed backends.
	//
	// Parameters:
	//   - speed: the speed multiplier (1.0 = normal, 0.5 = half speed)
	SetAnimationSpeed(speed float32)

	// AnimationTime returns the current playback position in seconds.
	// Always 0 on fixed backends.
	//
	// Returns:
	//   - float32: the playback time in seconds
	AnimationTime() float32

	// BackendType returns the type of backend this animator is using.
	//
	// Returns:
	//   - AnimatorBackendType: the backend type (BackendTypeFixed or BackendTypeClip)
	BackendType() AnimatorBackendType
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with the specified backend type.
//
// Parameters:
//   - backendType: the type of animation backend to use
//   - options: variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: a new Animator instance
func NewAnimator(backendType AnimatorBackendType, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		backendType: backendType,
	}

	switch backendType {
	case BackendTypeClip:
		a.backend = newClipAnimatorBackend()
	case BackendTypeFixed:
		fallthrough
	default:
		a.backend = newFixedAnimatorBackend()
	}

	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) BoneCount() uint32 {
	return a.backend.BoneCount()
}

func (a *animator) Pose() skinning.BoneSet {
	return a.backend.Pose()
}

func (a *animator) Advance(deltaTime float32) {
	a.backend.Advance(deltaTime)
}

func (a *animator) SetBoneCount(count uint32) {
	a.backend.SetBoneCount(count)
}

func (a *animator) SetBoneTransform(index uint32, transform skinning.Mat4) {
	a.backend.SetBoneTransform(index, transform)
}

func (a *animator) SetBone(index uint32, inverseBindMatrix [16]float32, localTranslation [3]float32, localRotation [4]float32, localScale [3]float32, parentIndex int32) {
	a.backend.SetBone(index, inverseBindMatrix, localTranslation, localRotation, localScale, parentIndex)
}

func (a *animator) AddClip(duration, ticksPerSecond float32, channels []uint32, keyframeTimes []float32, keyframeTranslations [][3]float32, keyframeRotations [][4]float32, keyframeScales [][3]float32) uint32 {
	return a.backend.AddClip(duration, ticksPerSecond, channels, keyframeTimes, keyframeTranslations, keyframeRotations, keyframeScales)
}

func (a *animator) PlayAnimation(clipIndex uint32, loop bool) {
	a.backend.PlayAnimation(clipIndex, loop)
}

func (a *animator) SetAnimationTime(time float32) {
	a.backend.SetAnimationTime(time)
}

func (a *animator) SetAnimationSpeed(speed float32) {
	a.backend.SetAnimationSpeed(speed)
}

func (a *animator) AnimationTime() float32 {
	return a.backend.AnimationTime()
}

func (a *animator) BackendType() AnimatorBackendType {
	return a.backendType
}
