package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the canonical WGSL definition of the
// MaterialUniform struct. Matches GPUMaterialUniform layout exactly
// (64 bytes, WGSL aligned). The field names are the uniform names the
// original asset shaders expose and are preserved verbatim.
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned representation of the per-material
// uniform buffer for the color pass. Matches the WGSL MaterialUniform struct
// layout exactly (see GPUMaterialUniformSource). Size: 64 bytes.
type GPUMaterialUniform struct {
	AmbientColor     [3]float32 // offset  0: uAmbientColor (vec3<f32>)
	Shininess        float32    // offset 12: uShininess
	DiffuseColor     [3]float32 // offset 16: uDiffuseColor
	Alpha            float32    // offset 28: uAlpha
	SpecularColor    [3]float32 // offset 32: uSpecularColor
	SphereMode       float32    // offset 44: uSphereTextureMode (0, 1, or 3)
	ToonFlag         float32    // offset 48: uIsToonTexture (0 or 2)
	SpecBlendsNormal float32    // offset 52: uSpecBlendsNormal (corrected specular when 1)
	_pad             [2]float32 // offset 56: padding to 64 bytes
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer
// suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3 := func(off int, v [3]float32) {
		for i := range 3 {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v[i]))
		}
	}
	putVec3(0, g.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.Shininess))
	putVec3(16, g.DiffuseColor)
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.Alpha))
	putVec3(32, g.SpecularColor)
	binary.LittleEndian.PutUint32(buf[44:], math.Float32bits(g.SphereMode))
	binary.LittleEndian.PutUint32(buf[48:], math.Float32bits(g.ToonFlag))
	binary.LittleEndian.PutUint32(buf[52:], math.Float32bits(g.SpecBlendsNormal))
	return buf
}

// GPUEdgeUniformSource is the canonical WGSL definition of the EdgeUniform
// struct. Matches GPUEdgeUniform layout exactly (32 bytes, WGSL aligned).
//
//go:embed assets/edge_uniform.wgsl
var GPUEdgeUniformSource string

// GPUEdgeUniform is the GPU-aligned representation of the per-material edge
// pass uniform buffer. Matches the WGSL EdgeUniform struct layout exactly
// (see GPUEdgeUniformSource). Size: 32 bytes.
type GPUEdgeUniform struct {
	EdgeColor [4]float32 // offset  0: uEdgeColor (RGBA)
	EdgeSize  float32    // offset 16: uEdgeSize (global edge-size scalar)
	Alpha     float32    // offset 20: uAlpha (material opacity)
	_pad      [2]float32 // offset 24: padding to 32 bytes
}

// Size returns the size of the GPUEdgeUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUEdgeUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUEdgeUniform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUEdgeUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.EdgeColor[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.EdgeSize))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Alpha))
	return buf
}

// UniformFor packs a Material's color-pass state into its GPU uniform form.
//
// Parameters:
//   - m: the material to pack
//
// Returns:
//   - GPUMaterialUniform: the packed uniform struct
func UniformFor(m Material) GPUMaterialUniform {
	var specBlendsNormal float32
	if m.CorrectedSpecular() {
		specBlendsNormal = 1
	}
	return GPUMaterialUniform{
		AmbientColor:     m.Ambient(),
		Shininess:        m.Shininess(),
		DiffuseColor:     m.Diffuse(),
		Alpha:            m.Alpha(),
		SpecularColor:    m.Specular(),
		SphereMode:       float32(m.SphereMode()),
		ToonFlag:         float32(m.ToonFlag()),
		SpecBlendsNormal: specBlendsNormal,
	}
}

// EdgeUniformFor packs a Material's edge-pass state into its GPU uniform form.
//
// Parameters:
//   - m: the material to pack
//
// Returns:
//   - GPUEdgeUniform: the packed uniform struct
func EdgeUniformFor(m Material) GPUEdgeUniform {
	return GPUEdgeUniform{
		EdgeColor: m.EdgeColor(),
		EdgeSize:  m.EdgeSize(),
		Alpha:     m.Alpha(),
	}
}
