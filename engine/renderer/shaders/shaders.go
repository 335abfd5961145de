// Package shaders embeds the WGSL stage shaders for the three render passes
// and constructs parsed shader.Shader values from them. Each pass has one
// fragment shader and one vertex shader per deformation layout; the two
// vertex variants differ only in which VertexInput struct and skinTransform
// function the pre-processor injects, so the three passes of a pipeline
// deform geometry through identical code.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/shader"
)

// Pass identifies one of the three render passes.
type Pass int

const (
	// PassColor is the lit, textured main pass.
	PassColor Pass = iota

	// PassEdge is the inverted-hull outline pass.
	PassEdge

	// PassDepth is the linearized grayscale depth visualization pass.
	PassDepth
)

// String returns the pass name for logging and pipeline keys.
func (p Pass) String() string {
	switch p {
	case PassColor:
		return "color"
	case PassEdge:
		return "edge"
	case PassDepth:
		return "depth"
	default:
		return "unknown"
	}
}

//go:embed assets/color_vertex_indexed.wgsl
var colorVertexIndexedSource string

//go:embed assets/color_vertex_baked.wgsl
var colorVertexBakedSource string

//go:embed assets/color_fragment.wgsl
var colorFragmentSource string

//go:embed assets/edge_vertex_indexed.wgsl
var edgeVertexIndexedSource string

//go:embed assets/edge_vertex_baked.wgsl
var edgeVertexBakedSource string

//go:embed assets/edge_fragment.wgsl
var edgeFragmentSource string

//go:embed assets/depth_vertex_indexed.wgsl
var depthVertexIndexedSource string

//go:embed assets/depth_vertex_baked.wgsl
var depthVertexBakedSource string

//go:embed assets/depth_fragment.wgsl
var depthFragmentSource string

// vertexSources maps pass and layout to the embedded vertex stage source.
var vertexSources = map[Pass]map[model.VertexLayout]string{
	PassColor: {
		model.LayoutIndexed: colorVertexIndexedSource,
		model.LayoutBaked:   colorVertexBakedSource,
	},
	PassEdge: {
		model.LayoutIndexed: edgeVertexIndexedSource,
		model.LayoutBaked:   edgeVertexBakedSource,
	},
	PassDepth: {
		model.LayoutIndexed: depthVertexIndexedSource,
		model.LayoutBaked:   depthVertexBakedSource,
	},
}

// fragmentSources maps pass to the embedded fragment stage source. The
// fragment stages are layout-independent.
var fragmentSources = map[Pass]string{
	PassColor: colorFragmentSource,
	PassEdge:  edgeFragmentSource,
	PassDepth: depthFragmentSource,
}

// VertexShader constructs the parsed vertex shader for a pass and deformation
// layout. Panics for an unknown combination, which indicates a programming
// error rather than bad input.
//
// Parameters:
//   - pass: the render pass
//   - layout: the deformation layout
//
// Returns:
//   - shader.Shader: the parsed vertex shader
func VertexShader(pass Pass, layout model.VertexLayout) shader.Shader {
	byLayout, ok := vertexSources[pass]
	if !ok {
		panic(fmt.Sprintf("shaders: unknown pass %d", pass))
	}
	src, ok := byLayout[layout]
	if !ok {
		panic(fmt.Sprintf("shaders: pass %s has no %s vertex variant", pass, layout))
	}
	return shader.NewShaderFromSource(VertexKey(pass, layout), shader.ShaderTypeVertex, src)
}

// FragmentShader constructs the parsed fragment shader for a pass.
//
// Parameters:
//   - pass: the render pass
//
// Returns:
//   - shader.Shader: the parsed fragment shader
func FragmentShader(pass Pass) shader.Shader {
	src, ok := fragmentSources[pass]
	if !ok {
		panic(fmt.Sprintf("shaders: unknown pass %d", pass))
	}
	return shader.NewShaderFromSource(FragmentKey(pass), shader.ShaderTypeFragment, src)
}

// VertexKey returns the cache key for a pass's vertex shader under a layout.
//
// Parameters:
//   - pass: the render pass
//   - layout: the deformation layout
//
// Returns:
//   - string: the vertex shader key
func VertexKey(pass Pass, layout model.VertexLayout) string {
	return fmt.Sprintf("%s_vertex_%s", pass, layout)
}

// FragmentKey returns the cache key for a pass's fragment shader.
//
// Parameters:
//   - pass: the render pass
//
// Returns:
//   - string: the fragment shader key
func FragmentKey(pass Pass) string {
	return fmt.Sprintf("%s_fragment", pass)
}

// PipelineKey returns the cache key for the render pipeline combining a
// pass's shaders under a layout.
//
// Parameters:
//   - pass: the render pass
//   - layout: the deformation layout
//
// Returns:
//   - string: the pipeline key
func PipelineKey(pass Pass, layout model.VertexLayout) string {
	return fmt.Sprintf("%s_%s", pass, layout)
}
