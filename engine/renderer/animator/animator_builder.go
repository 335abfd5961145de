package animator

import (
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithBoneCount is an option builder that allocates the palette for the given
// number of bones, initialized to identity.
//
// Parameters:
//   - count: the number of bones in the skeleton
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the bone count option to an animator
func WithBoneCount(count uint32) AnimatorBuilderOption {
	return func(a *animator) {
		a.backend.SetBoneCount(count)
	}
}

// WithPose is an option builder that seeds a fixed-backend animator with an
// initial pose. The palette is sized to the pose and each matrix applied via
// SetBoneTransform. No-op on clip backends.
//
// Parameters:
//   - pose: the initial bone matrix palette
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the pose option to an animator
func WithPose(pose skinning.BoneSet) AnimatorBuilderOption {
	return func(a *animator) {
		a.backend.SetBoneCount(uint32(len(pose)))
		for i, m := range pose {
			a.backend.SetBoneTransform(uint32(i), m)
		}
	}
}
