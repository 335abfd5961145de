package model

import (
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithLayout is an option builder that selects the deformation path the
// vertex stream is packed for.
//
// Parameters:
//   - layout: LayoutIndexed or LayoutBaked
//
// Returns:
//   - ModelBuilderOption: a function that applies the layout option to a model
func WithLayout(layout VertexLayout) ModelBuilderOption {
	return func(m *model) {
		m.layout = layout
	}
}

// WithVertices is an option builder that sets the vertex stream of the Model.
//
// Parameters:
//   - vertices: the vertices to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertices option to a model
func WithVertices(vertices []Vertex) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the triangle index stream of the Model.
//
// Parameters:
//   - indices: the indices to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
	}
}

// WithSubMeshes is an option builder that sets the submesh table of the Model.
//
// Parameters:
//   - subMeshes: the submeshes to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the submesh option to a model
func WithSubMeshes(subMeshes []SubMesh) ModelBuilderOption {
	return func(m *model) {
		m.subMeshes = subMeshes
	}
}

// WithMaterials is an option builder that sets the render-ready materials of the Model.
//
// Parameters:
//   - mats: the materials to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = mats
	}
}

// WithBoneCount is an option builder that sets the skeleton bone count of the Model.
//
// Parameters:
//   - count: the bone count
//
// Returns:
//   - ModelBuilderOption: a function that applies the bone count option to a model
func WithBoneCount(count int) ModelBuilderOption {
	return func(m *model) {
		m.boneCount = count
	}
}

// WithBoundingRadius is an option builder that manually sets the bounding
// sphere radius, overriding the auto-computed value from ComputeBoundingRadius.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for
// mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers and the bone storage buffer
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
