package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/shaders"
	"github.com/cogentcore/webgpu/wgpu"
)

// NewColorPipeline creates the lit, textured main-pass pipeline for the given
// vertex layout. Double-sided materials disable back-face culling; the cull
// mode is folded into the pipeline key so both variants can coexist in the
// renderer cache.
//
// Parameters:
//   - layout: the vertex layout the pipeline consumes
//   - doubleSided: true to disable back-face culling
//
// Returns:
//   - Pipeline: the configured color pass pipeline
func NewColorPipeline(layout model.VertexLayout, doubleSided bool) Pipeline {
	cullMode := wgpu.CullModeBack
	suffix := "back"
	if doubleSided {
		cullMode = wgpu.CullModeNone
		suffix = "none"
	}
	key := fmt.Sprintf("%s_%s", shaders.PipelineKey(shaders.PassColor, layout), suffix)
	return NewPipeline(key,
		WithVertexShader(shaders.VertexShader(shaders.PassColor, layout)),
		WithFragmentShader(shaders.FragmentShader(shaders.PassColor)),
		WithDepthTestEnabled(true),
		WithDepthWriteEnabled(true),
		WithBlendEnabled(true),
		WithCullMode(cullMode),
	)
}

// NewEdgePipeline creates the inverted-hull outline pipeline for the given
// vertex layout. Front faces are culled so only the extruded back shell of the
// silhouette is visible.
//
// Parameters:
//   - layout: the vertex layout the pipeline consumes
//
// Returns:
//   - Pipeline: the configured edge pass pipeline
func NewEdgePipeline(layout model.VertexLayout) Pipeline {
	return NewPipeline(shaders.PipelineKey(shaders.PassEdge, layout),
		WithVertexShader(shaders.VertexShader(shaders.PassEdge, layout)),
		WithFragmentShader(shaders.FragmentShader(shaders.PassEdge)),
		WithDepthTestEnabled(true),
		WithDepthWriteEnabled(true),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeFront),
	)
}

// NewDepthPipeline creates the linearized grayscale depth visualization
// pipeline for the given vertex layout.
//
// Parameters:
//   - layout: the vertex layout the pipeline consumes
//
// Returns:
//   - Pipeline: the configured depth pass pipeline
func NewDepthPipeline(layout model.VertexLayout) Pipeline {
	return NewPipeline(shaders.PipelineKey(shaders.PassDepth, layout),
		WithVertexShader(shaders.VertexShader(shaders.PassDepth, layout)),
		WithFragmentShader(shaders.FragmentShader(shaders.PassDepth)),
		WithDepthTestEnabled(true),
		WithDepthWriteEnabled(true),
		WithBlendEnabled(false),
		WithCullMode(wgpu.CullModeBack),
	)
}
