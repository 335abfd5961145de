package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform
// struct. Matches GPULightUniform layout exactly (64 bytes, WGSL aligned).
// The field names are the uniform names the original asset shaders expose
// and are preserved verbatim.
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the scene light
// uniform buffer, shared across every material in a frame. Matches the WGSL
// LightUniform struct layout exactly (see GPULightUniformSource). Size: 64 bytes.
type GPULightUniform struct {
	Ambient  [3]float32 // offset  0: uLightAmbient
	_pad0    float32    // offset 12
	Diffuse  [3]float32 // offset 16: uLightDiffuse
	_pad1    float32    // offset 28
	Specular [3]float32 // offset 32: uLightSpecular
	_pad2    float32    // offset 44
	Position [3]float32 // offset 48: uLightPosition (view space)
	_pad3    float32    // offset 60
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3 := func(off int, v [3]float32) {
		for i := range 3 {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v[i]))
		}
	}
	putVec3(0, g.Ambient)
	putVec3(16, g.Diffuse)
	putVec3(32, g.Specular)
	putVec3(48, g.Position)
	return buf
}
