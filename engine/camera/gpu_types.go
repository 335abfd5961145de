package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform
// struct. Matches GPUCameraUniform layout exactly (224 bytes, WGSL aligned).
// The field names are the uniform names expected by the stage shaders and are
// preserved verbatim: uProjectionM, uModelViewM, uITModelViewM,
// uCameraPosition, uNearPlane, uFarPlane.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the per-frame camera
// uniform buffer shared by all three render stages. Matches the WGSL
// CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 224 bytes.
type GPUCameraUniform struct {
	Projection     [16]float32 // offset   0: uProjectionM (mat4x4<f32>, column-major)
	ModelView      [16]float32 // offset  64: uModelViewM
	ITModelView    [16]float32 // offset 128: uITModelViewM (inverse-transpose of uModelViewM)
	CameraPosition [3]float32  // offset 192: uCameraPosition
	NearPlane      float32     // offset 204: uNearPlane
	FarPlane       float32     // offset 208: uFarPlane
	_pad           [3]float32  // offset 212: padding to 224 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 224-byte buffer ready for GPU upload
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putMat := func(off int, m [16]float32) {
		for i := range 16 {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(m[i]))
		}
	}
	putMat(0, g.Projection)
	putMat(64, g.ModelView)
	putMat(128, g.ITModelView)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[192+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[204:], math.Float32bits(g.NearPlane))
	binary.LittleEndian.PutUint32(buf[208:], math.Float32bits(g.FarPlane))
	return buf
}
