package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline("test")
	if got := p.PipelineKey(); got != "test" {
		t.Errorf("PipelineKey() = %q, want %q", got, "test")
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test/write should default to enabled")
	}
	if p.BlendEnabled() {
		t.Error("blending should default to disabled")
	}
	if got := p.CullMode(); got != wgpu.CullModeNone {
		t.Errorf("CullMode() = %v, want none", got)
	}
	if got := p.Topology(); got != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want triangle list", got)
	}
	if got := p.FrontFace(); got != wgpu.FrontFaceCCW {
		t.Errorf("FrontFace() = %v, want CCW", got)
	}
	if got := p.WriteMask(); got != wgpu.ColorWriteMaskAll {
		t.Errorf("WriteMask() = %v, want all", got)
	}
	if p.Pipeline() != nil {
		t.Error("Pipeline() should be nil before initialization")
	}

	// Premultiplied-style alpha blending is the default blend state.
	bs := p.BlendState()
	if bs.Color.SrcFactor != wgpu.BlendFactorSrcAlpha || bs.Color.DstFactor != wgpu.BlendFactorOneMinusSrcAlpha {
		t.Errorf("color blend = %+v, want src-alpha over", bs.Color)
	}
}

func TestNewPipeline_Options(t *testing.T) {
	p := NewPipeline("test",
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeFront),
	)
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("depth test/write options not applied")
	}
	if !p.BlendEnabled() {
		t.Error("blend option not applied")
	}
	if got := p.CullMode(); got != wgpu.CullModeFront {
		t.Errorf("CullMode() = %v, want front", got)
	}
}

func TestNewColorPipeline(t *testing.T) {
	tests := []struct {
		name        string
		layout      model.VertexLayout
		doubleSided bool
		wantKey     string
		wantCull    wgpu.CullMode
	}{
		{"indexed single sided", model.LayoutIndexed, false, "color_indexed_back", wgpu.CullModeBack},
		{"indexed double sided", model.LayoutIndexed, true, "color_indexed_none", wgpu.CullModeNone},
		{"baked single sided", model.LayoutBaked, false, "color_baked_back", wgpu.CullModeBack},
		{"baked double sided", model.LayoutBaked, true, "color_baked_none", wgpu.CullModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewColorPipeline(tt.layout, tt.doubleSided)
			if got := p.PipelineKey(); got != tt.wantKey {
				t.Errorf("PipelineKey() = %q, want %q", got, tt.wantKey)
			}
			if got := p.CullMode(); got != tt.wantCull {
				t.Errorf("CullMode() = %v, want %v", got, tt.wantCull)
			}
			if !p.BlendEnabled() {
				t.Error("color pass must blend for translucent materials")
			}
			if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
				t.Error("color pass must test and write depth")
			}
			if p.Shader(shader.ShaderTypeVertex) == nil || p.Shader(shader.ShaderTypeFragment) == nil {
				t.Error("color pipeline missing a stage shader")
			}
		})
	}
}

func TestNewEdgePipeline(t *testing.T) {
	p := NewEdgePipeline(model.LayoutIndexed)
	if got := p.PipelineKey(); got != "edge_indexed" {
		t.Errorf("PipelineKey() = %q, want %q", got, "edge_indexed")
	}
	// Inverted hull: cull front faces so only the extruded back shell shows.
	if got := p.CullMode(); got != wgpu.CullModeFront {
		t.Errorf("CullMode() = %v, want front", got)
	}
	if !p.BlendEnabled() {
		t.Error("edge pass must blend for translucent outlines")
	}
}

func TestNewDepthPipeline(t *testing.T) {
	p := NewDepthPipeline(model.LayoutBaked)
	if got := p.PipelineKey(); got != "depth_baked" {
		t.Errorf("PipelineKey() = %q, want %q", got, "depth_baked")
	}
	if got := p.CullMode(); got != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want back", got)
	}
	if p.BlendEnabled() {
		t.Error("depth visualization writes opaque values, blending must be off")
	}
}

func TestPipeline_ShaderAccessor(t *testing.T) {
	p := NewColorPipeline(model.LayoutIndexed, false)
	vs := p.Shader(shader.ShaderTypeVertex)
	if vs == nil || vs.ShaderType() != shader.ShaderTypeVertex {
		t.Fatal("vertex shader accessor returned wrong stage")
	}
	fs := p.Shader(shader.ShaderTypeFragment)
	if fs == nil || fs.ShaderType() != shader.ShaderTypeFragment {
		t.Fatal("fragment shader accessor returned wrong stage")
	}
	if got := p.Shader(shader.ShaderType(99)); got != nil {
		t.Errorf("Shader(99) = %v, want nil", got)
	}
}
