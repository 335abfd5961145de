package model

import (
	"encoding/binary"
	"fmt"

	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/material"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	layout         VertexLayout
	vertices       []Vertex
	indices        []uint32
	subMeshes      []SubMesh
	materials      []material.Material
	boneCount      int
	boundingRadius float32
	meshProvider   bind_group_provider.BindGroupProvider
}

// Model defines the interface for a loaded character mesh. A Model holds the
// CPU-side vertex and index streams, the submesh table partitioning the index
// buffer by material, and the GPU resources via a BindGroupProvider. All
// submeshes share one vertex buffer and one index buffer.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Layout reports which deformation path this model's vertex stream is packed for.
	//
	// Returns:
	//   - VertexLayout: LayoutIndexed or LayoutBaked
	Layout() VertexLayout

	// BoneCount returns the number of bones in this model's skeleton.
	//
	// Returns:
	//   - int: the bone count
	BoneCount() int

	// Vertices returns the CPU-side vertex stream.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices returns the triangle index stream.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SubMeshes returns the submesh table partitioning the index buffer by material.
	//
	// Returns:
	//   - []SubMesh: the submeshes
	SubMeshes() []SubMesh

	// Materials retrieves the render-ready materials for this model, indexed
	// by SubMesh.MaterialIndex.
	//
	// Returns:
	//   - []material.Material: the materials
	Materials() []material.Material

	// SetMaterials replaces the material list for this model.
	//
	// Parameters:
	//   - mats: the materials to set
	SetMaterials(mats []material.Material)

	// MeshProvider retrieves the BindGroupProvider holding this model's
	// shared vertex and index buffers and the bone storage buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider sets the BindGroupProvider for mesh GPU resources.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// BoundingRadius returns the bounding sphere radius for this model,
	// measured as the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Validate checks the internal consistency of the mesh: submesh ranges
	// must lie within the index buffer, indices must address existing
	// vertices, and every submesh material reference must resolve. Bone
	// indices are NOT validated here; out-of-range influences are clamped
	// during deformation instead of rejected.
	//
	// Returns:
	//   - error: a descriptive error for the first inconsistency found, or nil
	Validate() error

	// PackIndexed packs the vertex stream into the interleaved byte layout of
	// the indexed-bone pipeline (see GPUVertexIndexed). Bone indices are
	// float-encoded to match the attribute format.
	//
	// Returns:
	//   - []byte: the packed vertex buffer
	PackIndexed() []byte

	// PackBaked packs the vertex stream into the interleaved byte layout of
	// the baked-transform pipeline (see GPUVertexBaked). vertexTransforms
	// must hold 16 floats per vertex: the pre-blended bone matrix produced by
	// skinning.BakeTransforms for the current pose.
	//
	// Parameters:
	//   - vertexTransforms: per-vertex column-major matrices, 16 floats each
	//
	// Returns:
	//   - []byte: the packed vertex buffer
	//   - error: an error if vertexTransforms does not cover every vertex
	PackBaked(vertexTransforms []float32) ([]byte, error)

	// PackIndices packs the index stream as little-endian uint32 bytes for
	// GPU upload.
	//
	// Returns:
	//   - []byte: the packed index buffer
	PackIndices() []byte

	// BakePose computes the pre-blended per-vertex transforms for a bone pose
	// over a vertex range. dst must hold 16 floats per vertex of the full
	// stream; only [start, end) is written, allowing the caller to fan ranges
	// out across workers.
	//
	// Parameters:
	//   - dst: the destination transform buffer, 16 floats per vertex
	//   - bones: the pose's bone matrices
	//   - start: the first vertex index to bake
	//   - end: one past the last vertex index to bake
	BakePose(dst []float32, bones skinning.BoneSet, start, end int)
}

var _ Model = &model{}

// NewModel creates a new Model with all specified options applied. Panics if
// the model is constructed without vertices or indices, since a mesh without
// geometry cannot be drawn.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		layout: LayoutIndexed,
	}
	for _, opt := range options {
		opt(m)
	}
	if len(m.vertices) == 0 {
		panic(fmt.Sprintf("model: %s must have vertices", m.name))
	}
	if len(m.indices) == 0 {
		panic(fmt.Sprintf("model: %s must have indices", m.name))
	}
	if m.boundingRadius == 0 {
		m.boundingRadius = ComputeBoundingRadius(m.vertices)
	}
	if len(m.subMeshes) == 0 {
		// A mesh with no explicit table draws as a single submesh covering
		// the whole index buffer with material 0.
		m.subMeshes = []SubMesh{{
			Name:       m.name,
			IndexCount: len(m.indices),
		}}
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Layout() VertexLayout {
	return m.layout
}

func (m *model) BoneCount() int {
	return m.boneCount
}

func (m *model) Vertices() []Vertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) SubMeshes() []SubMesh {
	return m.subMeshes
}

func (m *model) Materials() []material.Material {
	return m.materials
}

func (m *model) SetMaterials(mats []material.Material) {
	m.materials = mats
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Validate() error {
	for i, sm := range m.subMeshes {
		if sm.IndexOffset < 0 || sm.IndexCount < 0 || sm.IndexOffset+sm.IndexCount > len(m.indices) {
			return fmt.Errorf("model %s: submesh %d (%s) range [%d, %d) exceeds index buffer of %d", m.name, i, sm.Name, sm.IndexOffset, sm.IndexOffset+sm.IndexCount, len(m.indices))
		}
		if sm.MaterialIndex < 0 || sm.MaterialIndex >= len(m.materials) {
			return fmt.Errorf("model %s: submesh %d (%s) references material %d of %d", m.name, i, sm.Name, sm.MaterialIndex, len(m.materials))
		}
	}
	for i, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("model %s: index %d addresses vertex %d of %d", m.name, i, idx, len(m.vertices))
		}
	}
	return nil
}

func (m *model) PackIndexed() []byte {
	var g GPUVertexIndexed
	stride := g.Size()
	buf := make([]byte, 0, stride*len(m.vertices))
	for _, v := range m.vertices {
		g = GPUVertexIndexed{
			Position:  v.Position,
			Normal:    v.Normal,
			UV:        v.UV,
			EdgeScale: v.EdgeScale,
			BoneIndices: [4]float32{
				float32(v.BoneIndices[0]),
				float32(v.BoneIndices[1]),
				float32(v.BoneIndices[2]),
				float32(v.BoneIndices[3]),
			},
			BoneWeights: v.BoneWeights,
		}
		buf = append(buf, g.Marshal()...)
	}
	return buf
}

func (m *model) PackBaked(vertexTransforms []float32) ([]byte, error) {
	if len(vertexTransforms) != len(m.vertices)*16 {
		return nil, fmt.Errorf("model %s: baked transforms hold %d floats, need %d", m.name, len(vertexTransforms), len(m.vertices)*16)
	}
	var g GPUVertexBaked
	stride := g.Size()
	buf := make([]byte, 0, stride*len(m.vertices))
	for i, v := range m.vertices {
		g = GPUVertexBaked{
			Position:  v.Position,
			Normal:    v.Normal,
			UV:        v.UV,
			EdgeScale: v.EdgeScale,
		}
		copy(g.Transform[:], vertexTransforms[i*16:(i+1)*16])
		buf = append(buf, g.Marshal()...)
	}
	return buf, nil
}

func (m *model) PackIndices() []byte {
	buf := make([]byte, 4*len(m.indices))
	for i, idx := range m.indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func (m *model) BakePose(dst []float32, bones skinning.BoneSet, start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(m.vertices) {
		end = len(m.vertices)
	}
	for i := start; i < end; i++ {
		v := m.vertices[i]
		t := skinning.BlendTransform(v.BoneIndices, v.BoneWeights, bones)
		copy(dst[i*16:(i+1)*16], t[:])
	}
}
