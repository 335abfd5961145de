package pipeline

import (
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option for configuring a pipeline during creation.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex shader for the pipeline.
//
// Parameters:
//   - s: the vertex shader to attach
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment shader for the pipeline.
//
// Parameters:
//   - s: the fragment shader to attach
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled toggles depth testing for the pipeline.
//
// Parameters:
//   - enabled: true to enable depth testing, false to disable
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled toggles depth writes for the pipeline.
//
// Parameters:
//   - enabled: true to enable depth writes, false to disable
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled toggles alpha blending for the pipeline.
//
// Parameters:
//   - enabled: true to enable blending, false to disable
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithCullMode sets the cull mode for the pipeline.
//
// Parameters:
//   - mode: the cull mode to use
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for the pipeline.
//
// Parameters:
//   - topology: the primitive topology to use
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order for the pipeline.
//
// Parameters:
//   - face: the front face winding order to use
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithFrontFace(face wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = face
	}
}

// WithWriteMask sets the color write mask for the pipeline.
//
// Parameters:
//   - mask: the color write mask to use
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}

// WithBlendState sets a custom blend state for the pipeline, replacing the
// default alpha blend configuration.
//
// Parameters:
//   - state: the blend state to use
//
// Returns:
//   - PipelineBuilderOption: the option function
func WithBlendState(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = state
	}
}
