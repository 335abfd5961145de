package viewer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestOrbitFromLookAt_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		eye, target [3]float32
	}{
		{"behind target", [3]float32{0, 10, -30}, [3]float32{0, 10, 0}},
		{"above target", [3]float32{0, 20, 0.001}, [3]float32{0, 0, 0}},
		{"offset diagonal", [3]float32{5, 3, -7}, [3]float32{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := orbitFromLookAt(tt.eye, tt.target)
			got := o.eye()
			for i := range 3 {
				if math.Abs(float64(got[i]-tt.eye[i])) > 1e-3 {
					t.Fatalf("eye() = %v, want %v", got, tt.eye)
				}
			}
		})
	}
}

func TestOrbitFromLookAt_CoincidentEyeAndTarget(t *testing.T) {
	o := orbitFromLookAt([3]float32{1, 2, 3}, [3]float32{1, 2, 3})
	if o.distance != 1 {
		t.Errorf("distance = %v, want fallback 1", o.distance)
	}
}

func TestOrbitRotate_ClampsPitch(t *testing.T) {
	o := orbitFromLookAt([3]float32{0, 0, -10}, [3]float32{0, 0, 0})

	o.rotate(0, 1e6)
	maxPitch := float32(math.Pi/2) - 0.01
	if o.pitch != maxPitch {
		t.Errorf("pitch after large upward drag = %v, want clamp %v", o.pitch, maxPitch)
	}

	o.rotate(0, -1e6)
	if o.pitch != -maxPitch {
		t.Errorf("pitch after large downward drag = %v, want clamp %v", o.pitch, -maxPitch)
	}
}

func TestOrbitRotate_YawAccumulates(t *testing.T) {
	o := orbitFromLookAt([3]float32{0, 0, 10}, [3]float32{0, 0, 0})
	before := o.yaw
	o.rotate(100, 0)
	if got := o.yaw - before; math.Abs(float64(got)-0.8) > 1e-5 {
		t.Errorf("yaw delta = %v, want 0.8", got)
	}
}

func TestOrbitZoom(t *testing.T) {
	o := orbitState{distance: 10}

	o.zoom(1, 0.5, 100)
	if math.Abs(float64(o.distance)-9) > 1e-5 {
		t.Errorf("distance after zoom in = %v, want 9", o.distance)
	}

	o.zoom(1e6, 0.5, 100)
	if o.distance != 0.5 {
		t.Errorf("distance = %v, want clamp to min 0.5", o.distance)
	}

	o.zoom(-1e6, 0.5, 100)
	if o.distance != 100 {
		t.Errorf("distance = %v, want clamp to max 100", o.distance)
	}
}

func TestColorPipelineKey(t *testing.T) {
	tests := []struct {
		layout      model.VertexLayout
		doubleSided bool
		want        string
	}{
		{model.LayoutIndexed, false, "color_indexed_back"},
		{model.LayoutIndexed, true, "color_indexed_none"},
		{model.LayoutBaked, false, "color_baked_back"},
		{model.LayoutBaked, true, "color_baked_none"},
	}
	for _, tt := range tests {
		if got := colorPipelineKey(tt.layout, tt.doubleSided); got != tt.want {
			t.Errorf("colorPipelineKey(%s, %v) = %q, want %q", tt.layout, tt.doubleSided, got, tt.want)
		}
	}
}

func TestMsaaFromCount(t *testing.T) {
	tests := []struct {
		count int
		want  renderer.MSAASampleCount
	}{
		{1, renderer.MSAAOff},
		{4, renderer.MSAA4x},
		{8, renderer.MSAA8x},
		{16, renderer.MSAA16x},
		{2, renderer.MSAAOff},
	}
	for _, tt := range tests {
		if got := msaaFromCount(tt.count); got != tt.want {
			t.Errorf("msaaFromCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestBoneGroupForLayout(t *testing.T) {
	if got := boneGroupForLayout(model.LayoutIndexed); got != 3 {
		t.Errorf("boneGroupForLayout(indexed) = %d, want 3", got)
	}
	if got := boneGroupForLayout(model.LayoutBaked); got != -1 {
		t.Errorf("boneGroupForLayout(baked) = %d, want -1", got)
	}
}

func TestMergeStageVisibility(t *testing.T) {
	in := wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
		},
	}
	out := mergeStageVisibility(in)

	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for i, e := range out.Entries {
		if e.Visibility != both {
			t.Errorf("entry %d visibility = %v, want vertex|fragment", i, e.Visibility)
		}
	}

	// The source descriptor must stay untouched; shaders share their parsed
	// descriptors across bind group creations.
	if in.Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Error("mergeStageVisibility mutated its input descriptor")
	}
}
