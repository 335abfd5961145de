package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestProcess_IncludeInjectsRegisteredSource(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@mmd:include camera\n")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(out, "struct CameraUniform") {
		t.Errorf("processed source missing injected CameraUniform struct:\n%s", out)
	}
	if strings.Contains(out, "@mmd:") {
		t.Errorf("annotation survived processing:\n%s", out)
	}
}

func TestProcess_GroupEmitsDeclaration(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@mmd:group 0 0 storage_uniform uCamera camera")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := "@group(0) @binding(0) var<uniform> uCamera: CameraUniform;"
	if !strings.Contains(out, want) {
		t.Errorf("Process() = %q, want declaration %q", out, want)
	}

	decls := pp.Declarations()
	if len(decls) != 1 {
		t.Fatalf("len(Declarations()) = %d, want 1", len(decls))
	}
	d := decls[0]
	if d.Type != AnnotationTypeBindingGroup {
		t.Errorf("declaration type = %q, want %q", d.Type, AnnotationTypeBindingGroup)
	}
	if *d.Group != 0 || *d.Binding != 0 {
		t.Errorf("declaration group/binding = %d/%d, want 0/0", *d.Group, *d.Binding)
	}
	if d.Args[1] != "uCamera" || d.Args[2] != AnnotationArgCamera {
		t.Errorf("declaration args = %v, want [storage_uniform uCamera camera]", d.Args)
	}
}

func TestProcess_ProviderRecordedWithoutOutput(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@mmd:provider 2 1 material diffuse_texture")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("provider annotation produced WGSL output: %q", out)
	}

	decls := pp.Declarations()
	if len(decls) != 1 {
		t.Fatalf("len(Declarations()) = %d, want 1", len(decls))
	}
	d := decls[0]
	if d.Type != AnnotationTypeProvider {
		t.Errorf("declaration type = %q, want %q", d.Type, AnnotationTypeProvider)
	}
	if *d.Group != 2 || *d.Binding != 1 {
		t.Errorf("declaration group/binding = %d/%d, want 2/1", *d.Group, *d.Binding)
	}
	if len(d.Args) != 2 || d.Args[0] != AnnotationArgMaterialProvider || d.Args[1] != AnnotationArgDiffuseTexture {
		t.Errorf("declaration args = %v, want [material diffuse_texture]", d.Args)
	}
}

func TestProcess_MalformedAnnotations(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty annotation", "//@mmd:"},
		{"unknown annotation type", "//@mmd:binding 0 0"},
		{"include missing key", "//@mmd:include"},
		{"include unknown key", "//@mmd:include shadow"},
		{"group wrong arity", "//@mmd:group 0 0 storage_uniform uCamera"},
		{"group bad group number", "//@mmd:group zero 0 storage_uniform uCamera camera"},
		{"group bad binding number", "//@mmd:group 0 zero storage_uniform uCamera camera"},
		{"group unknown address space", "//@mmd:group 0 0 push_constant uCamera camera"},
		{"group unknown struct type", "//@mmd:group 0 0 storage_uniform uShadow shadow"},
		{"provider wrong arity", "//@mmd:provider 2 1"},
		{"provider unknown identity", "//@mmd:provider 2 1 shadow"},
		{"provider unknown role", "//@mmd:provider 2 1 material shadow_texture"},
	}
	pp := NewPreProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := pp.Process(tt.line); err == nil {
				t.Errorf("Process(%q) succeeded, want error", tt.line)
			}
		})
	}
}

func TestProcess_DeclarationsResetPerCall(t *testing.T) {
	pp := NewPreProcessor()
	if _, err := pp.Process("//@mmd:group 0 0 storage_uniform uCamera camera\n//@mmd:provider 3 0 mesh"); err != nil {
		t.Fatalf("first Process() error = %v", err)
	}
	if got := len(pp.Declarations()); got != 2 {
		t.Fatalf("len(Declarations()) after first call = %d, want 2", got)
	}
	if _, err := pp.Process("fn main() {}"); err != nil {
		t.Fatalf("second Process() error = %v", err)
	}
	if got := len(pp.Declarations()); got != 0 {
		t.Errorf("len(Declarations()) after annotation-free call = %d, want 0", got)
	}
}

func TestProcess_PassesPlainWGSLThrough(t *testing.T) {
	pp := NewPreProcessor()
	src := "// just a comment, nothing to expand\n@vertex\nfn main() {}\n"
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out != src {
		t.Errorf("Process() altered annotation-free source:\n%q", out)
	}
}

const testVertexSource = `
//@mmd:group 0 0 storage_uniform uCamera camera
//@mmd:include camera
//@mmd:provider 1 0 mesh
@group(1) @binding(0) var<storage, read> uBoneTransform: array<mat4x4<f32>>;

struct VertexIn {
    @location(0) aPosition: vec3<f32>,
    @location(1) aNormal: vec3<f32>,
    @location(2) aTexCoord: vec2<f32>,
}

struct VertexOut {
    @builtin(position) Position: vec4<f32>,
    @location(0) vTexCoord: vec2<f32>,
}

@vertex
fn vertexMain(in: VertexIn) -> VertexOut {
    var out: VertexOut;
    return out;
}
`

const testFragmentSource = `
struct ToneUniform {
    uColor: vec4<f32>,
    uStrength: f32,
}

@group(0) @binding(0) var<uniform> uTone: ToneUniform;
@group(0) @binding(1) var uTexture: texture_2d<f32>;
@group(0) @binding(2) var uSampler: sampler;

@fragment
fn fragmentMain() -> @location(0) vec4<f32> {
    return vec4<f32>(0.0);
}
`

func TestShader_VertexParsing(t *testing.T) {
	s := NewShaderFromSource("test_vertex", ShaderTypeVertex, testVertexSource)

	if got := s.EntryPoint(); got != "vertexMain" {
		t.Errorf("EntryPoint() = %q, want %q", got, "vertexMain")
	}
	if got := s.ShaderType(); got != ShaderTypeVertex {
		t.Errorf("ShaderType() = %v, want vertex", got)
	}
	if s.Module() == nil || s.Module().WGSLDescriptor.Code != s.Source() {
		t.Error("Module() does not carry the processed source")
	}

	// VertexIn is the only pure vertex input struct; VertexOut carries a
	// @builtin field and must be excluded.
	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("len(VertexLayouts()) = %d, want 1", len(layouts))
	}
	layout := s.VertexLayout(0)
	if len(layout) != 1 {
		t.Fatalf("len(VertexLayout(0)) = %d, want 1", len(layout))
	}
	if got := layout[0].ArrayStride; got != 32 {
		t.Errorf("ArrayStride = %d, want 32", got)
	}
	wantAttrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	}
	for i, want := range wantAttrs {
		if layout[0].Attributes[i] != want {
			t.Errorf("attribute %d = %+v, want %+v", i, layout[0].Attributes[i], want)
		}
	}
}

func TestShader_VertexBindGroupLayouts(t *testing.T) {
	s := NewShaderFromSource("test_vertex", ShaderTypeVertex, testVertexSource)

	camDesc := s.BindGroupLayoutDescriptor(0)
	if len(camDesc.Entries) != 1 {
		t.Fatalf("group 0 entry count = %d, want 1", len(camDesc.Entries))
	}
	cam := camDesc.Entries[0]
	if cam.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("camera buffer type = %v, want uniform", cam.Buffer.Type)
	}
	if cam.Visibility != wgpu.ShaderStageVertex {
		t.Errorf("camera visibility = %v, want vertex", cam.Visibility)
	}
	if cam.Buffer.MinBindingSize == 0 {
		t.Error("camera MinBindingSize = 0, want the CameraUniform struct size")
	}

	boneDesc := s.BindGroupLayoutDescriptor(1)
	if len(boneDesc.Entries) != 1 {
		t.Fatalf("group 1 entry count = %d, want 1", len(boneDesc.Entries))
	}
	bone := boneDesc.Entries[0]
	if bone.Buffer.Type != wgpu.BufferBindingTypeReadOnlyStorage {
		t.Errorf("bone buffer type = %v, want read-only storage", bone.Buffer.Type)
	}
	// Runtime-sized array reports one element stride as the minimum.
	if bone.Buffer.MinBindingSize != 64 {
		t.Errorf("bone MinBindingSize = %d, want 64", bone.Buffer.MinBindingSize)
	}
}

func TestShader_FragmentBindGroupLayouts(t *testing.T) {
	s := NewShaderFromSource("test_fragment", ShaderTypeFragment, testFragmentSource)

	if got := s.EntryPoint(); got != "fragmentMain" {
		t.Errorf("EntryPoint() = %q, want %q", got, "fragmentMain")
	}

	desc := s.BindGroupLayoutDescriptor(0)
	if len(desc.Entries) != 3 {
		t.Fatalf("group 0 entry count = %d, want 3", len(desc.Entries))
	}

	uniform := desc.Entries[0]
	if uniform.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("binding 0 buffer type = %v, want uniform", uniform.Buffer.Type)
	}
	// vec4<f32> at 0, f32 at 16, rounded to 16-byte struct alignment.
	if uniform.Buffer.MinBindingSize != 32 {
		t.Errorf("binding 0 MinBindingSize = %d, want 32", uniform.Buffer.MinBindingSize)
	}
	if uniform.Visibility != wgpu.ShaderStageFragment {
		t.Errorf("binding 0 visibility = %v, want fragment", uniform.Visibility)
	}

	texture := desc.Entries[1]
	if texture.Texture.SampleType != wgpu.TextureSampleTypeFloat {
		t.Errorf("binding 1 sample type = %v, want float", texture.Texture.SampleType)
	}
	if texture.Texture.ViewDimension != wgpu.TextureViewDimension2D {
		t.Errorf("binding 1 view dimension = %v, want 2D", texture.Texture.ViewDimension)
	}
	if texture.Texture.Multisampled {
		t.Error("binding 1 multisampled = true, want false")
	}

	sampler := desc.Entries[2]
	if sampler.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("binding 2 sampler type = %v, want filtering", sampler.Sampler.Type)
	}
}

func TestShader_BindGroupVarNames(t *testing.T) {
	s := NewShaderFromSource("test_vertex", ShaderTypeVertex, testVertexSource)

	if got := s.BindGroupVarName(0, 0); got != "uCamera" {
		t.Errorf("BindGroupVarName(0, 0) = %q, want uCamera", got)
	}
	if got := s.BindGroupVarName(1, 0); got != "uBoneTransform" {
		t.Errorf("BindGroupVarName(1, 0) = %q, want uBoneTransform", got)
	}
	if got := s.BindGroupVarName(5, 0); got != "" {
		t.Errorf("BindGroupVarName(5, 0) = %q, want empty", got)
	}

	binding, ok := s.BindGroupFromVarName(1, "uBoneTransform")
	if !ok || binding != 0 {
		t.Errorf("BindGroupFromVarName(1, uBoneTransform) = %d, %v, want 0, true", binding, ok)
	}
	if _, ok := s.BindGroupFromVarName(1, "uMissing"); ok {
		t.Error("BindGroupFromVarName(1, uMissing) found a binding, want none")
	}
}

func TestShader_Declarations(t *testing.T) {
	s := NewShaderFromSource("test_vertex", ShaderTypeVertex, testVertexSource)

	decls := s.Declarations()
	if len(decls) != 2 {
		t.Fatalf("len(Declarations()) = %d, want 2", len(decls))
	}
	if decls[0].Type != AnnotationTypeBindingGroup {
		t.Errorf("declaration 0 type = %q, want group", decls[0].Type)
	}
	if decls[1].Type != AnnotationTypeProvider || decls[1].Args[0] != AnnotationArgMeshProvider {
		t.Errorf("declaration 1 = %+v, want mesh provider", decls[1])
	}
}
