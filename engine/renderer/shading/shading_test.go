package shading

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

func identity16() [16]float32 {
	var m [16]float32
	common.Identity(m[:])
	return m
}

func translation(x, y, z float32) skinning.Mat4 {
	m := skinning.IdentityMat4()
	m[12], m[13], m[14] = x, y, z
	return m
}

func almostEqual3(a, b [3]float32, eps float64) bool {
	for i := range 3 {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func neutralMaterial() MaterialState {
	return MaterialState{
		Ambient:   [3]float32{1, 1, 1},
		Diffuse:   [3]float32{0, 0, 0},
		Specular:  [3]float32{0, 0, 0},
		Shininess: 1,
		Alpha:     1,
	}
}

func neutralLight() LightState {
	return LightState{
		Ambient:  [3]float32{1, 1, 1},
		Diffuse:  [3]float32{1, 1, 1},
		Specular: [3]float32{1, 1, 1},
		Position: [3]float32{0, 10, 0},
	}
}

func neutralSurface() Surface {
	return Surface{
		ViewPosition: [3]float32{0, 0, -5},
		Normal:       [3]float32{0, 0, 1},
		TexColor:     [4]float32{1, 1, 1, 1},
		SphereColor:  [3]float32{0.5, 0.5, 0.5},
	}
}

// Every pass must deform geometry identically: the view-space position the
// color stage computes has to match the depth stage, and the edge stage with
// a zero offset.
func TestStagesShareDeformation(t *testing.T) {
	position := [3]float32{1, 2, 3}
	normal := [3]float32{0, 1, 0}
	transform := translation(0.5, -1, 2)
	modelView := identity16()
	modelView[12], modelView[13], modelView[14] = -1, 0, -10

	colorPos, _ := ColorVertex(position, normal, transform, modelView, identity16())
	depthPos := DepthVertex(position, transform, modelView)
	edgePos := EdgeVertex(position, normal, 1, 0, transform, modelView)

	if !almostEqual3(colorPos, depthPos, 1e-5) {
		t.Errorf("color stage position %v differs from depth stage %v", colorPos, depthPos)
	}
	if !almostEqual3(colorPos, edgePos, 1e-5) {
		t.Errorf("color stage position %v differs from zero-offset edge stage %v", colorPos, edgePos)
	}
}

func TestEdgeVertex(t *testing.T) {
	position := [3]float32{0, 0, 0}
	normal := [3]float32{1, 0, 0}
	base := EdgeVertex(position, normal, 1, 0, skinning.IdentityMat4(), identity16())

	tests := []struct {
		name      string
		edgeScale float32
		edgeSize  float32
		want      [3]float32
	}{
		{
			name:      "zero edge scale keeps the base position",
			edgeScale: 0,
			edgeSize:  100,
			want:      base,
		},
		{
			name:      "zero edge size keeps the base position",
			edgeScale: 1,
			edgeSize:  0,
			want:      base,
		},
		{
			name:      "unit scale and size extrude by the 0.05 constant",
			edgeScale: 1,
			edgeSize:  1,
			want:      [3]float32{0.05, 0, 0},
		},
		{
			name:      "extrusion is linear in edge size",
			edgeScale: 1,
			edgeSize:  10,
			want:      [3]float32{0.5, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgeVertex(position, normal, tt.edgeScale, tt.edgeSize, skinning.IdentityMat4(), identity16())
			if !almostEqual3(got, tt.want, 1e-6) {
				t.Errorf("EdgeVertex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShadeFragment_SphereModes(t *testing.T) {
	tests := []struct {
		name string
		mode float32
		want [3]float32 // pre-lighting base color given white texture and 0.5 sphere
	}{
		{name: "mode 0 ignores the sphere sample", mode: 0, want: [3]float32{1, 1, 1}},
		{name: "mode 1 multiplies", mode: 1, want: [3]float32{0.5, 0.5, 0.5}},
		{name: "mode 2 is off", mode: 2, want: [3]float32{1, 1, 1}},
		{name: "mode 3 adds", mode: 3, want: [3]float32{1.5, 1.5, 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := neutralMaterial()
			m.SphereMode = tt.mode
			// Ambient-only lighting with a white ambient makes the lit color
			// equal the clamped base color.
			got := ShadeFragment(neutralSurface(), m, neutralLight(), [3]float32{0, 0, 0}, nil)
			want := [3]float32{
				float32(math.Min(float64(tt.want[0]), 1)),
				float32(math.Min(float64(tt.want[1]), 1)),
				float32(math.Min(float64(tt.want[2]), 1)),
			}
			if !almostEqual3([3]float32{got[0], got[1], got[2]}, want, 1e-6) {
				t.Errorf("ShadeFragment() rgb = %v, want %v", [3]float32{got[0], got[1], got[2]}, want)
			}
		})
	}
}

func TestShadeFragment_ToonRampNeverBrightens(t *testing.T) {
	m := neutralMaterial()
	m.ToonFlag = 2
	ramp := func(v float32) [3]float32 {
		// A ramp darkening with v; values stay in [0, 1].
		return [3]float32{1 - v/2, 1 - v/2, 1 - v/2}
	}

	base := ShadeFragment(neutralSurface(), neutralMaterial(), neutralLight(), [3]float32{}, nil)
	toon := ShadeFragment(neutralSurface(), m, neutralLight(), [3]float32{}, ramp)

	for i := range 3 {
		if toon[i] > base[i] {
			t.Errorf("channel %d: toon %v brighter than base %v", i, toon[i], base[i])
		}
	}
}

func TestShadeFragment_ToonFlagGating(t *testing.T) {
	ramp := func(v float32) [3]float32 { return [3]float32{0, 0, 0} }
	for _, flag := range []float32{0, 1, 3} {
		m := neutralMaterial()
		m.ToonFlag = flag
		got := ShadeFragment(neutralSurface(), m, neutralLight(), [3]float32{}, ramp)
		if got[0] == 0 && got[1] == 0 && got[2] == 0 {
			t.Errorf("toon flag %v applied the ramp, want ramp only at 2.0", flag)
		}
	}
}

func TestToonCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lightDir [3]float32
		normal   [3]float32
		want     float32
	}{
		{name: "facing the light", lightDir: [3]float32{0, 0, 1}, normal: [3]float32{0, 0, 1}, want: 0},
		{name: "perpendicular", lightDir: [3]float32{0, 0, 1}, normal: [3]float32{1, 0, 0}, want: 0.5},
		{name: "facing away", lightDir: [3]float32{0, 0, 1}, normal: [3]float32{0, 0, -1}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToonCoordinate(tt.lightDir, tt.normal)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("ToonCoordinate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShadeFragment_CorrectedSpecular(t *testing.T) {
	// Surface at the origin so the raw-position dot is zero; only the
	// corrected variant can produce a specular term here.
	s := neutralSurface()
	s.ViewPosition = [3]float32{0, 0, 0}
	s.Normal = [3]float32{0, 1, 0}

	l := neutralLight()
	l.Ambient = [3]float32{0, 0, 0}
	l.Position = [3]float32{0, 10, 0}

	m := neutralMaterial()
	m.Ambient = [3]float32{0, 0, 0}
	m.Specular = [3]float32{1, 1, 1}
	m.Shininess = 1

	camera := [3]float32{0, 5, 0}

	raw := ShadeFragment(s, m, l, camera, nil)
	m.SpecBlendsNormal = true
	corrected := ShadeFragment(s, m, l, camera, nil)

	if raw[0] != 0 {
		t.Errorf("raw-position specular at origin = %v, want 0", raw[0])
	}
	if corrected[0] <= 0 {
		t.Errorf("corrected specular = %v, want > 0", corrected[0])
	}
}

func TestShadeFragment_AlphaCombines(t *testing.T) {
	s := neutralSurface()
	s.TexColor[3] = 0.5
	m := neutralMaterial()
	m.Alpha = 0.5
	got := ShadeFragment(s, m, neutralLight(), [3]float32{}, nil)
	if math.Abs(float64(got[3]-0.25)) > 1e-6 {
		t.Errorf("alpha = %v, want 0.25", got[3])
	}
}

func TestEdgeFragment(t *testing.T) {
	got := EdgeFragment([4]float32{0.1, 0.2, 0.3, 0.8}, 0.5)
	want := [4]float32{0.1, 0.2, 0.3, 0.4}
	for i := range 4 {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("EdgeFragment()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinearizeDepth(t *testing.T) {
	const near, far = 0.1, 100.0

	tests := []struct {
		name  string
		depth float32
		want  float32
	}{
		{name: "near plane maps to near/far", depth: 0, want: near / far},
		{name: "far plane maps to one", depth: 1, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearizeDepth(tt.depth, near, far)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("LinearizeDepth(%v) = %v, want %v", tt.depth, got, tt.want)
			}
		})
	}

	t.Run("monotonically increasing", func(t *testing.T) {
		prev := LinearizeDepth(0, near, far)
		for d := float32(0.1); d <= 1; d += 0.1 {
			cur := LinearizeDepth(d, near, far)
			if cur <= prev {
				t.Fatalf("LinearizeDepth(%v) = %v not greater than previous %v", d, cur, prev)
			}
			prev = cur
		}
	})
}

func TestDepthFragment(t *testing.T) {
	got := DepthFragment(1, 0.1, 100)
	if got[0] != got[1] || got[1] != got[2] {
		t.Errorf("DepthFragment() = %v, want grayscale", got)
	}
	if got[3] != 1 {
		t.Errorf("DepthFragment() alpha = %v, want 1", got[3])
	}
}
