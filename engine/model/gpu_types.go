package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexIndexedSource is the canonical WGSL definition of the VertexInput
// struct for indexed-bone pipelines, where the vertex carries bone indices and
// weights and the transform blend happens on the GPU against the bone storage
// buffer. Matches GPUVertexIndexed layout exactly (68 bytes, tightly packed).
//
//go:embed assets/vertex_indexed.wgsl
var GPUVertexIndexedSource string

// GPUVertexIndexed is the GPU representation of a single character vertex for
// the indexed-bone deformation path. Matches the WGSL VertexInput struct
// layout for indexed pipelines (see GPUVertexIndexedSource). Size: 68 bytes.
//
// BoneIndices are carried as floats and truncated to integers in the shader;
// this mirrors how the vertex stream is authored and keeps the two deformation
// paths' attribute formats uniform.
type GPUVertexIndexed struct {
	Position    [3]float32 // offset  0: aVertex, model-space position
	Normal      [3]float32 // offset 12: aNormal
	UV          [2]float32 // offset 24: aUV
	EdgeScale   float32    // offset 32: aEdgeScale, per-vertex outline scale
	BoneIndices [4]float32 // offset 36: aBoneIndex (float-encoded)
	BoneWeights [4]float32 // offset 52: aBoneWeights
}

// Size returns the size of the GPUVertexIndexed struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (68)
func (g *GPUVertexIndexed) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertexIndexed struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 68-byte buffer ready for GPU upload
func (g *GPUVertexIndexed) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	put(g.Position[0])
	put(g.Position[1])
	put(g.Position[2])
	put(g.Normal[0])
	put(g.Normal[1])
	put(g.Normal[2])
	put(g.UV[0])
	put(g.UV[1])
	put(g.EdgeScale)
	for i := range 4 {
		put(g.BoneIndices[i])
	}
	for i := range 4 {
		put(g.BoneWeights[i])
	}
	return buf
}

// GPUVertexBakedSource is the canonical WGSL definition of the VertexInput
// struct for baked-transform pipelines, where the per-vertex blended bone
// transform is computed on the CPU and streamed as four vec4 columns.
// Matches GPUVertexBaked layout exactly (100 bytes, tightly packed).
//
//go:embed assets/vertex_baked.wgsl
var GPUVertexBakedSource string

// GPUVertexBaked is the GPU representation of a single character vertex for
// the baked-transform deformation path. The Transform columns hold the
// pre-blended bone matrix for this vertex, column-major. Matches the WGSL
// VertexInput struct layout for baked pipelines (see GPUVertexBakedSource).
// Size: 100 bytes.
type GPUVertexBaked struct {
	Position  [3]float32  // offset  0: aVertex
	Normal    [3]float32  // offset 12: aNormal
	UV        [2]float32  // offset 24: aUV
	EdgeScale float32     // offset 32: aEdgeScale
	Transform [16]float32 // offset 36: aTransform0..aTransform3, column-major
}

// Size returns the size of the GPUVertexBaked struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (100)
func (g *GPUVertexBaked) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertexBaked struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 100-byte buffer ready for GPU upload
func (g *GPUVertexBaked) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	put(g.Position[0])
	put(g.Position[1])
	put(g.Position[2])
	put(g.Normal[0])
	put(g.Normal[1])
	put(g.Normal[2])
	put(g.UV[0])
	put(g.UV[1])
	put(g.EdgeScale)
	for i := range 16 {
		put(g.Transform[i])
	}
	return buf
}

// GPUSkinIndexedSource is the WGSL skinTransform function for the indexed-bone
// path. It blends up to four bone matrices from the uBoneTransform storage
// buffer by the vertex weights; a weight sum of exactly zero yields the
// identity so unrigged vertices pass through undeformed. Injected into every
// stage shader of an indexed pipeline so the three passes deform identically.
//
//go:embed assets/skin_indexed.wgsl
var GPUSkinIndexedSource string

// GPUSkinBakedSource is the WGSL skinTransform function for the baked path.
// It reassembles the pre-blended matrix from the four column attributes.
//
//go:embed assets/skin_baked.wgsl
var GPUSkinBakedSource string

// ComputeBoundingRadius calculates the bounding sphere radius from vertex
// positions, measured as the maximum distance from the origin.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []Vertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
