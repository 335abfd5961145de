package animator

import (
	"sync"

	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// fixedAnimatorBackendImpl is the concrete implementation of the fixed-pose backend.
// The palette holds caller-supplied matrices, defaulting to identity, so a model
// with no pose applied renders in its bind pose.
type fixedAnimatorBackendImpl struct {
	mu *sync.Mutex

	palette skinning.BoneSet
}

var _ AnimatorBackend = &fixedAnimatorBackendImpl{}

func newFixedAnimatorBackend() AnimatorBackend {
	return &fixedAnimatorBackendImpl{
		mu: &sync.Mutex{},
	}
}

func (b *fixedAnimatorBackendImpl) BoneCount() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint32(len(b.palette))
}

func (b *fixedAnimatorBackendImpl) Pose() skinning.BoneSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.palette
}

func (b *fixedAnimatorBackendImpl) Advance(deltaTime float32) {
	// fixed pose — nothing to advance
}

func (b *fixedAnimatorBackendImpl) SetBoneCount(count uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.palette = make(skinning.BoneSet, count)
	for i := range b.palette {
		b.palette[i] = skinning.IdentityMat4()
	}
}

func (b *fixedAnimatorBackendImpl) SetBoneTransform(index uint32, transform skinning.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index >= uint32(len(b.palette)) {
		return
	}
	b.palette[index] = transform
}

func (b *fixedAnimatorBackendImpl) SetBone(index uint32, inverseBindMatrix [16]float32, localTranslation [3]float32, localRotation [4]float32, localScale [3]float32, parentIndex int32) {
	// skeleton data only applies to clip backends
}

func (b *fixedAnimatorBackendImpl) AddClip(duration, ticksPerSecond float32, channels []uint32, keyframeTimes []float32, keyframeTranslations [][3]float32, keyframeRotations [][4]float32, keyframeScales [][3]float32) uint32 {
	return 0
}

func (b *fixedAnimatorBackendImpl) PlayAnimation(clipIndex uint32, loop bool) {}

func (b *fixedAnimatorBackendImpl) SetAnimationTime(time float32) {}

func (b *fixedAnimatorBackendImpl) SetAnimationSpeed(speed float32) {}

func (b *fixedAnimatorBackendImpl) AnimationTime() float32 {
	return 0
}
