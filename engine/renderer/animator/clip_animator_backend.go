package animator

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// boneInfo holds the skeleton data for a single bone: the inverse bind matrix
// that maps model space into the bone's local space, the rest-pose local
// transform, and the parent index. Parents must precede children so world
// transforms can be composed in a single forward pass.
type boneInfo struct {
	inverseBind skinning.Mat4

	localTranslation [3]float32
	localRotation    [4]float32
	localScale       [3]float32

	parentIndex int32
}

// clipChannel addresses one bone's keyframe ranges within a clip's flattened
// keyframe arrays. A count of zero for any track means the bone keeps its
// rest-pose value for that track.
type clipChannel struct {
	boneIndex uint32

	posKeyOffset, posKeyCount     uint32
	rotKeyOffset, rotKeyCount     uint32
	scaleKeyOffset, scaleKeyCount uint32
}

// clip is one animation clip with flattened keyframe storage.
type clip struct {
	duration       float32
	ticksPerSecond float32

	channels []clipChannel

	keyframeTimes        []float32
	keyframeTranslations [][3]float32
	keyframeRotations    [][4]float32
	keyframeScales       [][3]float32
}

// clipAnimatorBackendImpl is the concrete implementation of the clip backend.
// It evaluates keyframe clips against the skeleton on the CPU each Advance,
// composing world transforms parent-first and multiplying by the inverse bind
// matrices to produce the final skinning palette.
type clipAnimatorBackendImpl struct {
	mu *sync.Mutex

	bones   []boneInfo
	clips   []clip
	palette skinning.BoneSet

	// scratch world matrices reused across evaluations to avoid per-frame allocation
	worlds []skinning.Mat4

	clipIndex   uint32
	time, speed float32
	loop        bool
	playing     bool
}

var _ AnimatorBackend = &clipAnimatorBackendImpl{}

func newClipAnimatorBackend() AnimatorBackend {
	return &clipAnimatorBackendImpl{
		mu:    &sync.Mutex{},
		speed: 1.0,
	}
}

func (b *clipAnimatorBackendImpl) BoneCount() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint32(len(b.bones))
}

func (b *clipAnimatorBackendImpl) Pose() skinning.BoneSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.palette
}

func (b *clipAnimatorBackendImpl) Advance(deltaTime float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.playing && int(b.clipIndex) < len(b.clips) {
		c := &b.clips[b.clipIndex]
		b.time += deltaTime * b.speed
		if c.duration > 0 {
			if b.loop {
				b.time = float32(math.Mod(float64(b.time), float64(c.duration)))
				if b.time < 0 {
					b.time += c.duration
				}
			} else if b.time > c.duration {
				b.time = c.duration
				b.playing = false
			}
		}
	}

	b.evaluateLocked()
}

func (b *clipAnimatorBackendImpl) SetBoneCount(count uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bones = make([]boneInfo, count)
	for i := range b.bones {
		b.bones[i] = boneInfo{
			inverseBind:   skinning.IdentityMat4(),
			localRotation: [4]float32{0, 0, 0, 1},
			localScale:    [3]float32{1, 1, 1},
			parentIndex:   -1,
		}
	}
	b.worlds = make([]skinning.Mat4, count)
	b.palette = make(skinning.BoneSet, count)
	for i := range b.palette {
		b.palette[i] = skinning.IdentityMat4()
	}
}

func (b *clipAnimatorBackendImpl) SetBoneTransform(index uint32, transform skinning.Mat4) {
	// direct palette writes only apply to fixed backends
}

func (b *clipAnimatorBackendImpl) SetBone(index uint32, inverseBindMatrix [16]float32, localTranslation [3]float32, localRotation [4]float32, localScale [3]float32, parentIndex int32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index >= uint32(len(b.bones)) {
		return
	}
	b.bones[index] = boneInfo{
		inverseBind:      skinning.Mat4(inverseBindMatrix),
		localTranslation: localTranslation,
		localRotation:    localRotation,
		localScale:       localScale,
		parentIndex:      parentIndex,
	}
}

func (b *clipAnimatorBackendImpl) AddClip(duration, ticksPerSecond float32, channels []uint32, keyframeTimes []float32, keyframeTranslations [][3]float32, keyframeRotations [][4]float32, keyframeScales [][3]float32) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := clip{
		duration:             duration,
		ticksPerSecond:       ticksPerSecond,
		keyframeTimes:        keyframeTimes,
		keyframeTranslations: keyframeTranslations,
		keyframeRotations:    keyframeRotations,
		keyframeScales:       keyframeScales,
	}

	// 7 uint32 values per channel, matching the flattened loader layout
	for i := 0; i+6 < len(channels); i += 7 {
		c.channels = append(c.channels, clipChannel{
			boneIndex:      channels[i],
			posKeyOffset:   channels[i+1],
			posKeyCount:    channels[i+2],
			rotKeyOffset:   channels[i+3],
			rotKeyCount:    channels[i+4],
			scaleKeyOffset: channels[i+5],
			scaleKeyCount:  channels[i+6],
		})
	}

	b.clips = append(b.clips, c)
	return uint32(len(b.clips) - 1)
}

func (b *clipAnimatorBackendImpl) PlayAnimation(clipIndex uint32, loop bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if int(clipIndex) >= len(b.clips) {
		return
	}
	b.clipIndex = clipIndex
	b.time = 0
	b.loop = loop
	b.playing = true
	b.evaluateLocked()
}

func (b *clipAnimatorBackendImpl) SetAnimationTime(time float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.time = time
	b.evaluateLocked()
}

func (b *clipAnimatorBackendImpl) SetAnimationSpeed(speed float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.speed = speed
}

func (b *clipAnimatorBackendImpl) AnimationTime() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.time
}

// evaluateLocked recomputes the palette from the current clip time.
// Caller must hold b.mu.
func (b *clipAnimatorBackendImpl) evaluateLocked() {
	if len(b.bones) == 0 {
		return
	}

	// Start from rest pose locals.
	type trs struct {
		t [3]float32
		r [4]float32
		s [3]float32
	}
	locals := make([]trs, len(b.bones))
	for i, bone := range b.bones {
		locals[i] = trs{t: bone.localTranslation, r: bone.localRotation, s: bone.localScale}
	}

	// Override from the active clip's sampled channels.
	if b.playing || b.time > 0 {
		if int(b.clipIndex) < len(b.clips) {
			c := &b.clips[b.clipIndex]
			ticks := b.time * c.ticksPerSecond
			for _, ch := range c.channels {
				if ch.boneIndex >= uint32(len(locals)) {
					continue
				}
				l := &locals[ch.boneIndex]
				if ch.posKeyCount > 0 {
					l.t = sampleVec3(c.keyframeTimes, c.keyframeTranslations, ch.posKeyOffset, ch.posKeyCount, ticks)
				}
				if ch.rotKeyCount > 0 {
					l.r = sampleQuat(c.keyframeTimes, c.keyframeRotations, ch.rotKeyOffset, ch.rotKeyCount, ticks)
				}
				if ch.scaleKeyCount > 0 {
					l.s = sampleVec3(c.keyframeTimes, c.keyframeScales, ch.scaleKeyOffset, ch.scaleKeyCount, ticks)
				}
			}
		}
	}

	// Compose world transforms in a single forward pass (parents precede
	// children), then multiply by inverse bind to produce skinning matrices.
	for i := range b.bones {
		local := composeTRS(locals[i].t, locals[i].r, locals[i].s)
		if p := b.bones[i].parentIndex; p >= 0 && int(p) < i {
			b.worlds[i] = mulMat4(b.worlds[p], local)
		} else {
			b.worlds[i] = local
		}
		b.palette[i] = mulMat4(b.worlds[i], b.bones[i].inverseBind)
	}
}

// sampleVec3 interpolates a vec3 track at the given tick time.
func sampleVec3(times []float32, values [][3]float32, offset, count uint32, t float32) [3]float32 {
	i, frac := findKey(times, offset, count, t)
	if frac == 0 || i+1 >= offset+count {
		return values[i]
	}
	a, b := values[i], values[i+1]
	return [3]float32{
		a[0] + (b[0]-a[0])*frac,
		a[1] + (b[1]-a[1])*frac,
		a[2] + (b[2]-a[2])*frac,
	}
}

// sampleQuat interpolates a quaternion track at the given tick time using
// normalized lerp with hemisphere correction.
func sampleQuat(times []float32, values [][4]float32, offset, count uint32, t float32) [4]float32 {
	i, frac := findKey(times, offset, count, t)
	if frac == 0 || i+1 >= offset+count {
		return values[i]
	}
	a, b := values[i], values[i+1]

	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if dot < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
	}

	q := [4]float32{
		a[0] + (b[0]-a[0])*frac,
		a[1] + (b[1]-a[1])*frac,
		a[2] + (b[2]-a[2])*frac,
		a[3] + (b[3]-a[3])*frac,
	}
	length := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if length > 0 {
		q[0] /= length
		q[1] /= length
		q[2] /= length
		q[3] /= length
	}
	return q
}

// findKey locates the keyframe pair bracketing tick time t within a track and
// returns the lower key index plus the interpolation fraction. Before the
// first key or after the last, the fraction is zero and the clamped key index
// is returned.
func findKey(times []float32, offset, count uint32, t float32) (uint32, float32) {
	first, last := offset, offset+count-1
	if t <= times[first] {
		return first, 0
	}
	if t >= times[last] {
		return last, 0
	}
	for i := first; i < last; i++ {
		if t < times[i+1] {
			span := times[i+1] - times[i]
			if span <= 0 {
				return i, 0
			}
			return i, (t - times[i]) / span
		}
	}
	return last, 0
}

// composeTRS builds a column-major transform from translation, rotation
// quaternion (x, y, z, w), and scale.
func composeTRS(t [3]float32, r [4]float32, s [3]float32) skinning.Mat4 {
	x, y, z, w := r[0], r[1], r[2], r[3]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return skinning.Mat4{
		(1 - 2*(yy+zz)) * s[0], 2 * (xy + wz) * s[0], 2 * (xz - wy) * s[0], 0,
		2 * (xy - wz) * s[1], (1 - 2*(xx+zz)) * s[1], 2 * (yz + wx) * s[1], 0,
		2 * (xz + wy) * s[2], 2 * (yz - wx) * s[2], (1 - 2*(xx+yy)) * s[2], 0,
		t[0], t[1], t[2], 1,
	}
}

// mulMat4 multiplies two column-major matrices (a * b).
func mulMat4(a, b skinning.Mat4) skinning.Mat4 {
	var out skinning.Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}
