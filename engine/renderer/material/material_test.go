package material

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSphereModeFromScalar(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  SphereMode
	}{
		{name: "zero is off", value: 0, want: SphereModeOff},
		{name: "one multiplies", value: 1, want: SphereModeMultiply},
		{name: "two is off", value: 2, want: SphereModeOff},
		{name: "three adds", value: 3, want: SphereModeAdd},
		{name: "garbage is off", value: 7.5, want: SphereModeOff},
		{name: "negative is off", value: -1, want: SphereModeOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SphereModeFromScalar(tt.value); got != tt.want {
				t.Errorf("SphereModeFromScalar(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestToonFlagFromScalar(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  ToonFlag
	}{
		{name: "zero is off", value: 0, want: ToonOff},
		{name: "one is off", value: 1, want: ToonOff},
		{name: "two applies the ramp", value: 2, want: ToonRamp},
		{name: "three is off", value: 3, want: ToonOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToonFlagFromScalar(tt.value); got != tt.want {
				t.Errorf("ToonFlagFromScalar(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestUniformFor(t *testing.T) {
	m := NewMaterial(
		WithName("skin"),
		WithColors([3]float32{0.1, 0.2, 0.3}, [3]float32{0.4, 0.5, 0.6}, [3]float32{0.7, 0.8, 0.9}),
		WithShininess(20),
		WithAlpha(0.75),
		WithSphereMode(float32(SphereModeAdd)),
		WithToonFlag(float32(ToonRamp)),
	)

	u := UniformFor(m)
	if u.AmbientColor != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("AmbientColor = %v", u.AmbientColor)
	}
	if u.SphereMode != 3 {
		t.Errorf("SphereMode = %v, want 3", u.SphereMode)
	}
	if u.ToonFlag != 2 {
		t.Errorf("ToonFlag = %v, want 2", u.ToonFlag)
	}
	if u.SpecBlendsNormal != 0 {
		t.Errorf("SpecBlendsNormal = %v, want 0 by default", u.SpecBlendsNormal)
	}

	corrected := NewMaterial(WithCorrectedSpecular())
	if got := UniformFor(corrected).SpecBlendsNormal; got != 1 {
		t.Errorf("SpecBlendsNormal = %v, want 1 with corrected specular", got)
	}
}

func TestGPUMaterialUniformMarshal(t *testing.T) {
	u := GPUMaterialUniform{
		AmbientColor:  [3]float32{1, 2, 3},
		Shininess:     4,
		DiffuseColor:  [3]float32{5, 6, 7},
		Alpha:         8,
		SpecularColor: [3]float32{9, 10, 11},
		SphereMode:    3,
		ToonFlag:      2,
	}
	buf := u.Marshal()
	if len(buf) != 64 {
		t.Fatalf("Marshal() length = %d, want 64", len(buf))
	}

	at := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if got := at(12); got != 4 {
		t.Errorf("uShininess at offset 12 = %v, want 4", got)
	}
	if got := at(28); got != 8 {
		t.Errorf("uAlpha at offset 28 = %v, want 8", got)
	}
	if got := at(44); got != 3 {
		t.Errorf("uSphereTextureMode at offset 44 = %v, want 3", got)
	}
	if got := at(48); got != 2 {
		t.Errorf("uIsToonTexture at offset 48 = %v, want 2", got)
	}
}

func TestEdgeUniformFor(t *testing.T) {
	m := NewMaterial(
		WithAlpha(0.5),
		WithEdge([4]float32{0.1, 0.2, 0.3, 1}, 2.5),
	)
	if !m.EdgeEnabled() {
		t.Fatal("WithEdge did not enable the edge pass")
	}

	u := EdgeUniformFor(m)
	if u.EdgeColor != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Errorf("EdgeColor = %v", u.EdgeColor)
	}
	if u.EdgeSize != 2.5 {
		t.Errorf("EdgeSize = %v, want 2.5", u.EdgeSize)
	}
	if u.Alpha != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", u.Alpha)
	}

	buf := u.Marshal()
	if len(buf) != 32 {
		t.Errorf("Marshal() length = %d, want 32", len(buf))
	}
}

func TestEdgeDisabledByDefault(t *testing.T) {
	if NewMaterial().EdgeEnabled() {
		t.Error("bare material has the edge pass enabled, want disabled")
	}
}
