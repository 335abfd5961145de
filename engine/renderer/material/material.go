package material

import (
	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
)

// SphereMode selects how the sphere environment texture combines with the
// base color. The numeric values are inherited from the MMD asset format and
// must be preserved bit-for-bit: 0 = off, 1 = multiply, 3 = add. Value 2 is
// reserved by the format and treated as off.
type SphereMode float32

const (
	// SphereModeOff disables the sphere texture contribution.
	SphereModeOff SphereMode = 0

	// SphereModeMultiply multiplies the sphere sample into the base color.
	SphereModeMultiply SphereMode = 1

	// SphereModeAdd adds the sphere sample to the base color.
	SphereModeAdd SphereMode = 3
)

// SphereModeFromScalar maps a raw asset scalar onto a SphereMode. Any value
// other than 1 and 3 — including the reserved 2 — is the off variant rather
// than undefined behavior.
//
// Parameters:
//   - v: the raw sphere-texture-mode value from the asset
//
// Returns:
//   - SphereMode: the resolved mode
func SphereModeFromScalar(v float32) SphereMode {
	switch SphereMode(v) {
	case SphereModeMultiply:
		return SphereModeMultiply
	case SphereModeAdd:
		return SphereModeAdd
	default:
		return SphereModeOff
	}
}

// ToonFlag selects whether the toon ramp is applied after lighting. The
// numeric values come from the MMD asset convention: 0 = no toon, 2 = toon
// ramp applied. Value 1 is reserved and treated as off.
type ToonFlag float32

const (
	// ToonOff disables the toon ramp lookup.
	ToonOff ToonFlag = 0

	// ToonRamp applies the 1D toon ramp after lighting.
	ToonRamp ToonFlag = 2
)

// ToonFlagFromScalar maps a raw asset scalar onto a ToonFlag; anything other
// than 2 is off.
//
// Parameters:
//   - v: the raw toon-texture flag value from the asset
//
// Returns:
//   - ToonFlag: the resolved flag
func ToonFlagFromScalar(v float32) ToonFlag {
	if ToonFlag(v) == ToonRamp {
		return ToonRamp
	}
	return ToonOff
}

// material is the implementation of the Material interface.
type material struct {
	name string

	ambient   [3]float32
	diffuse   [3]float32
	specular  [3]float32
	shininess float32
	alpha     float32

	sphereMode SphereMode
	toonFlag   ToonFlag

	edgeEnabled bool
	edgeColor   [4]float32
	edgeSize    float32

	doubleSided bool

	// correctedSpecular swaps the inherited dot(position, half) specular term
	// for a dot(normal, half) term. Off by default for parity with existing
	// assets; see the uSpecBlendsNormal uniform in color.wgsl.
	correctedSpecular bool

	diffuseTexture *common.ImportedTexture
	sphereTexture  *common.ImportedTexture
	toonTexture    *common.ImportedTexture

	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for an MMD render material: the surface
// colors and flags fed to the color pass, the edge state fed to the outline
// pass, and the GPU resource bindings both passes draw with.
//
// Surface and edge properties are set at load time and read-only through this
// interface. GPU resource references (pipeline key, bind group provider) are
// mutable so they can be configured during the GPU-init phase after
// construction.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Ambient retrieves the ambient (mirror) RGB color.
	//
	// Returns:
	//   - [3]float32: the ambient color
	Ambient() [3]float32

	// Diffuse retrieves the diffuse RGB color.
	//
	// Returns:
	//   - [3]float32: the diffuse color
	Diffuse() [3]float32

	// Specular retrieves the specular RGB color.
	//
	// Returns:
	//   - [3]float32: the specular color
	Specular() [3]float32

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the shininess scalar
	Shininess() float32

	// Alpha retrieves the material opacity, multiplied with the diffuse
	// texture alpha to produce the final fragment alpha.
	//
	// Returns:
	//   - float32: the alpha scalar
	Alpha() float32

	// SphereMode retrieves the sphere environment texture blend mode.
	//
	// Returns:
	//   - SphereMode: the sphere mode (off, multiply, or add)
	SphereMode() SphereMode

	// ToonFlag retrieves the toon ramp flag.
	//
	// Returns:
	//   - ToonFlag: the toon flag (off or ramp)
	ToonFlag() ToonFlag

	// EdgeEnabled reports whether this material is drawn in the edge pass.
	//
	// Returns:
	//   - bool: true if the silhouette outline is drawn for this material
	EdgeEnabled() bool

	// EdgeColor retrieves the flat RGBA outline color.
	//
	// Returns:
	//   - [4]float32: the edge color
	EdgeColor() [4]float32

	// EdgeSize retrieves the global edge-size scalar for this material,
	// multiplied per vertex with the aEdgeScale attribute.
	//
	// Returns:
	//   - float32: the edge size
	EdgeSize() float32

	// DoubleSided reports whether back-face culling is disabled for the
	// color pass of this material.
	//
	// Returns:
	//   - bool: true if the material renders both faces
	DoubleSided() bool

	// CorrectedSpecular reports whether the physically-corrected specular
	// variant is enabled in place of the inherited position-based term.
	//
	// Returns:
	//   - bool: true if the corrected specular term is used
	CorrectedSpecular() bool

	// DiffuseTexture retrieves the diffuse texture reference, or nil.
	//
	// Returns:
	//   - *common.ImportedTexture: the diffuse texture, or nil
	DiffuseTexture() *common.ImportedTexture

	// SphereTexture retrieves the sphere environment texture, or nil.
	//
	// Returns:
	//   - *common.ImportedTexture: the sphere texture, or nil
	SphereTexture() *common.ImportedTexture

	// ToonTexture retrieves the 1D toon ramp texture, or nil.
	//
	// Returns:
	//   - *common.ImportedTexture: the toon texture, or nil
	ToonTexture() *common.ImportedTexture

	// PipelineKey retrieves the key identifying the color-pass render
	// pipeline this material draws with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side
	// resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil before GPU init
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The zero configuration is an opaque white, non-toon, non-sphere, edge-less
// material so that a bare NewMaterial() renders something visible.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		ambient:   [3]float32{1, 1, 1},
		diffuse:   [3]float32{1, 1, 1},
		specular:  [3]float32{0, 0, 0},
		shininess: 5,
		alpha:     1,
		edgeColor: [4]float32{0, 0, 0, 1},
		edgeSize:  1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Ambient() [3]float32 {
	return m.ambient
}

func (m *material) Diffuse() [3]float32 {
	return m.diffuse
}

func (m *material) Specular() [3]float32 {
	return m.specular
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Alpha() float32 {
	return m.alpha
}

func (m *material) SphereMode() SphereMode {
	return m.sphereMode
}

func (m *material) ToonFlag() ToonFlag {
	return m.toonFlag
}

func (m *material) EdgeEnabled() bool {
	return m.edgeEnabled
}

func (m *material) EdgeColor() [4]float32 {
	return m.edgeColor
}

func (m *material) EdgeSize() float32 {
	return m.edgeSize
}

func (m *material) DoubleSided() bool {
	return m.doubleSided
}

func (m *material) CorrectedSpecular() bool {
	return m.correctedSpecular
}

func (m *material) DiffuseTexture() *common.ImportedTexture {
	return m.diffuseTexture
}

func (m *material) SphereTexture() *common.ImportedTexture {
	return m.sphereTexture
}

func (m *material) ToonTexture() *common.ImportedTexture {
	return m.toonTexture
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
