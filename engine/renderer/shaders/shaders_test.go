package shaders

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/shader"
)

var allPasses = []Pass{PassColor, PassEdge, PassDepth}

var allLayouts = []model.VertexLayout{model.LayoutIndexed, model.LayoutBaked}

func TestKeys(t *testing.T) {
	tests := []struct {
		pass        Pass
		layout      model.VertexLayout
		vertexKey   string
		fragmentKey string
		pipelineKey string
	}{
		{PassColor, model.LayoutIndexed, "color_vertex_indexed", "color_fragment", "color_indexed"},
		{PassColor, model.LayoutBaked, "color_vertex_baked", "color_fragment", "color_baked"},
		{PassEdge, model.LayoutIndexed, "edge_vertex_indexed", "edge_fragment", "edge_indexed"},
		{PassDepth, model.LayoutBaked, "depth_vertex_baked", "depth_fragment", "depth_baked"},
	}
	for _, tt := range tests {
		if got := VertexKey(tt.pass, tt.layout); got != tt.vertexKey {
			t.Errorf("VertexKey(%s, %s) = %q, want %q", tt.pass, tt.layout, got, tt.vertexKey)
		}
		if got := FragmentKey(tt.pass); got != tt.fragmentKey {
			t.Errorf("FragmentKey(%s) = %q, want %q", tt.pass, got, tt.fragmentKey)
		}
		if got := PipelineKey(tt.pass, tt.layout); got != tt.pipelineKey {
			t.Errorf("PipelineKey(%s, %s) = %q, want %q", tt.pass, tt.layout, got, tt.pipelineKey)
		}
	}
}

func TestVertexShaders_ParseForAllPassesAndLayouts(t *testing.T) {
	for _, pass := range allPasses {
		for _, layout := range allLayouts {
			t.Run(PipelineKey(pass, layout), func(t *testing.T) {
				s := VertexShader(pass, layout)
				if s.ShaderType() != shader.ShaderTypeVertex {
					t.Errorf("ShaderType() = %v, want vertex", s.ShaderType())
				}
				if s.EntryPoint() == "" {
					t.Error("EntryPoint() is empty")
				}
				if got := s.Key(); got != VertexKey(pass, layout) {
					t.Errorf("Key() = %q, want %q", got, VertexKey(pass, layout))
				}
				if strings.Contains(s.Source(), "@mmd:") {
					t.Error("processed source still contains @mmd annotations")
				}
				if len(s.VertexLayouts()) == 0 {
					t.Error("no vertex buffer layouts parsed")
				}
			})
		}
	}
}

func TestVertexShaders_BufferStrides(t *testing.T) {
	// The indexed layout interleaves position, normal, UV, edge scale, and
	// float-encoded bone indices and weights. The baked layout replaces the
	// bone fields with four pre-composed transform columns.
	tests := []struct {
		layout model.VertexLayout
		stride uint64
	}{
		{model.LayoutIndexed, 68},
		{model.LayoutBaked, 100},
	}
	for _, tt := range tests {
		for _, pass := range allPasses {
			s := VertexShader(pass, tt.layout)
			layout := s.VertexLayout(0)
			if len(layout) != 1 {
				t.Fatalf("%s %s: len(VertexLayout(0)) = %d, want 1", pass, tt.layout, len(layout))
			}
			if got := layout[0].ArrayStride; got != tt.stride {
				t.Errorf("%s %s: ArrayStride = %d, want %d", pass, tt.layout, got, tt.stride)
			}
		}
	}
}

func TestVertexShaders_ShareDeformationFunction(t *testing.T) {
	// Every vertex stage must deform through the same injected skinTransform
	// so the passes agree on final geometry.
	for _, pass := range allPasses {
		for _, layout := range allLayouts {
			s := VertexShader(pass, layout)
			if !strings.Contains(s.Source(), "fn skinTransform") {
				t.Errorf("%s %s vertex source missing skinTransform", pass, layout)
			}
		}
	}
}

func TestFragmentShaders_Parse(t *testing.T) {
	for _, pass := range allPasses {
		t.Run(pass.String(), func(t *testing.T) {
			s := FragmentShader(pass)
			if s.ShaderType() != shader.ShaderTypeFragment {
				t.Errorf("ShaderType() = %v, want fragment", s.ShaderType())
			}
			if s.EntryPoint() == "" {
				t.Error("EntryPoint() is empty")
			}
			if got := s.Key(); got != FragmentKey(pass) {
				t.Errorf("Key() = %q, want %q", got, FragmentKey(pass))
			}
		})
	}
}

func TestBindGroupsAreContiguousPerPipeline(t *testing.T) {
	// wgpu pipeline layouts are positional arrays, so the merged vertex and
	// fragment declarations of a pass must cover group indices 0..n with no
	// gaps.
	for _, pass := range allPasses {
		for _, layout := range allLayouts {
			groups := make(map[int]bool)
			for g := range VertexShader(pass, layout).BindGroupLayoutDescriptors() {
				groups[g] = true
			}
			for g := range FragmentShader(pass).BindGroupLayoutDescriptors() {
				groups[g] = true
			}
			for g := range len(groups) {
				if !groups[g] {
					t.Errorf("%s: group %d missing from contiguous range 0..%d", PipelineKey(pass, layout), g, len(groups)-1)
				}
			}
		}
	}
}

func TestCameraUniformDeclaredInEveryVertexStage(t *testing.T) {
	for _, pass := range allPasses {
		for _, layout := range allLayouts {
			s := VertexShader(pass, layout)
			if name := s.BindGroupVarName(0, 0); name != "uCamera" {
				t.Errorf("%s %s: group 0 binding 0 var = %q, want uCamera", pass, layout, name)
			}
		}
	}
}

func TestPassString(t *testing.T) {
	tests := []struct {
		pass Pass
		want string
	}{
		{PassColor, "color"},
		{PassEdge, "edge"},
		{PassDepth, "depth"},
		{Pass(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.pass.String(); got != tt.want {
			t.Errorf("Pass(%d).String() = %q, want %q", tt.pass, got, tt.want)
		}
	}
}
