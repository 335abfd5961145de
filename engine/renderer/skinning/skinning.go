// Package skinning implements the CPU side of the linear-blend-skinning
// deformation used by every render pass. The WGSL shaders carry the exact
// same formula (see the skin_*.wgsl includes in engine/renderer/shaders);
// this package is the reference the baked-transform vertex path and the
// test suite are built on.
package skinning

import "github.com/Carmen-Shannon/mmd-go/common"

// MaxInfluences is the number of bones that may influence one vertex.
const MaxInfluences = 4

// Mat4 is a 4x4 matrix stored column-major, matching the WGSL mat4x4<f32>
// memory layout so a []Mat4 can be uploaded to the bone storage buffer as-is.
type Mat4 [16]float32

// IdentityMat4 returns the identity matrix.
//
// Returns:
//   - Mat4: the 4x4 identity matrix
func IdentityMat4() Mat4 {
	var m Mat4
	common.Identity(m[:])
	return m
}

// MulVec4 multiplies the matrix by a 4-component vector.
//
// Parameters:
//   - v: input vector
//
// Returns:
//   - [4]float32: m * v
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	return common.MulVec4(m[:], v)
}

// BoneSet is an ordered sequence of joint transforms, indexed 0..N-1. It is
// produced fresh each frame by the external animation evaluator and handed to
// the render pipeline as an immutable-for-the-frame snapshot. A bone index
// referenced by a vertex must be < len(set); out-of-range indices are the
// loader's responsibility and are not validated per vertex at render time.
type BoneSet []Mat4

// Snapshot returns a copy of the bone set. The orchestrator snapshots the
// evaluator's pose once at frame start so that every pass in the frame
// observes the same transforms even if the caller mutates its set mid-frame.
//
// Returns:
//   - BoneSet: an independent copy of the bone transforms
func (b BoneSet) Snapshot() BoneSet {
	if b == nil {
		return nil
	}
	out := make(BoneSet, len(b))
	copy(out, b)
	return out
}

// Bytes returns the bone set as a raw byte slice for GPU upload. The returned
// slice aliases the bone data; callers must copy it into a staging buffer
// before the set is mutated.
//
// Returns:
//   - []byte: byte view over the bone matrices
func (b BoneSet) Bytes() []byte {
	return common.SliceToBytes(b)
}

// BlendTransform computes the skinning transform for one vertex as the
// weighted sum of up to four bone matrices. A weight sum of exactly 0.0 is
// the sentinel for "no skinning" and yields the identity transform; the
// equality check is intentionally exact, not epsilon-based, because loaders
// emit literal zeros for unskinned vertices.
//
// Out-of-range bone indices produce a clamped lookup rather than a panic,
// mirroring the undefined-but-not-crashing GPU behavior.
//
// Parameters:
//   - indices: four bone indices into the bone set
//   - weights: four blend weights (sum 1.0, or all zero for the sentinel)
//   - bones: the bone transform set for this frame
//
// Returns:
//   - Mat4: the blended vertex transform
func BlendTransform(indices [MaxInfluences]int32, weights [MaxInfluences]float32, bones BoneSet) Mat4 {
	weightSum := weights[0] + weights[1] + weights[2] + weights[3]
	if weightSum == 0.0 {
		return IdentityMat4()
	}

	var out Mat4
	for i := 0; i < MaxInfluences; i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		bone := clampedBone(bones, indices[i])
		for j := 0; j < 16; j++ {
			out[j] += w * bone[j]
		}
	}
	return out
}

// clampedBone looks up a bone matrix, clamping the index into the valid
// range. Garbage-in stays garbage-out visually, but never out-of-bounds.
func clampedBone(bones BoneSet, index int32) Mat4 {
	if len(bones) == 0 {
		return IdentityMat4()
	}
	if index < 0 {
		index = 0
	}
	if int(index) >= len(bones) {
		index = int32(len(bones) - 1)
	}
	return bones[index]
}

// DeformPosition applies a blended skinning transform to an object-space
// position (w=1).
//
// Parameters:
//   - transform: the blended vertex transform
//   - position: object-space position (x, y, z)
//
// Returns:
//   - [3]float32: the deformed position
func DeformPosition(transform Mat4, position [3]float32) [3]float32 {
	v := transform.MulVec4([4]float32{position[0], position[1], position[2], 1})
	return [3]float32{v[0], v[1], v[2]}
}

// DeformNormal carries a normal direction through the blended transform
// (w=0, so translation does not apply). The result is not renormalized here;
// the lighting stage normalizes after the model-view inverse-transpose.
//
// Parameters:
//   - transform: the blended vertex transform
//   - normal: object-space normal direction
//
// Returns:
//   - [3]float32: the deformed direction
func DeformNormal(transform Mat4, normal [3]float32) [3]float32 {
	v := transform.MulVec4([4]float32{normal[0], normal[1], normal[2], 0})
	return [3]float32{v[0], v[1], v[2]}
}

// TransformFromColumns reassembles a skinning transform from four column
// vectors, the form the baked-transform vertex layout delivers it in
// (attributes aTransform0..aTransform3).
//
// Parameters:
//   - c0, c1, c2, c3: matrix columns
//
// Returns:
//   - Mat4: the assembled transform
func TransformFromColumns(c0, c1, c2, c3 [4]float32) Mat4 {
	var m Mat4
	copy(m[0:4], c0[:])
	copy(m[4:8], c1[:])
	copy(m[8:12], c2[:])
	copy(m[12:16], c3[:])
	return m
}

// Columns decomposes the transform into the four column vectors used by the
// baked-transform vertex layout.
//
// Returns:
//   - [4][4]float32: the matrix columns in order
func (m Mat4) Columns() [4][4]float32 {
	var out [4][4]float32
	for c := 0; c < 4; c++ {
		copy(out[c][:], m[c*4:c*4+4])
	}
	return out
}

// BakeTransforms computes the per-vertex skinning transform for every vertex
// in the given range and writes it into dst, 16 floats per vertex. This is
// the CPU-baked path behind the baked-transform vertex layout: it trades
// per-frame CPU blend cost for attribute bandwidth, and it MUST agree with
// BlendTransform exactly because both variants feed the same passes.
//
// dst must have room for (end-start)*16 floats starting at (start-base)*16;
// the range split lets the caller fan vertex ranges out across a worker pool.
//
// Parameters:
//   - dst: destination transform stream (16 floats per vertex, column-major)
//   - indices: per-vertex bone index 4-tuples
//   - weights: per-vertex bone weight 4-tuples
//   - bones: the frame's bone transform set
//   - start, end: half-open vertex index range to bake
func BakeTransforms(dst []float32, indices [][MaxInfluences]int32, weights [][MaxInfluences]float32, bones BoneSet, start, end int) {
	for i := start; i < end; i++ {
		t := BlendTransform(indices[i], weights[i], bones)
		copy(dst[i*16:(i+1)*16], t[:])
	}
}
