package light

import (
	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	ambient  [3]float32
	diffuse  [3]float32
	specular [3]float32

	// position is the world-space light position. The fragment shaders light
	// in view space, so Uniform transforms it by the current view matrix.
	position [3]float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Light defines the interface for the single scene light. MMD-style shading
// uses one light whose ambient, diffuse, and specular terms modulate every
// material in the frame.
type Light interface {
	// Ambient returns the ambient light color.
	//
	// Returns:
	//   - [3]float32: the ambient RGB color
	Ambient() [3]float32

	// Diffuse returns the diffuse light color.
	//
	// Returns:
	//   - [3]float32: the diffuse RGB color
	Diffuse() [3]float32

	// Specular returns the specular light color.
	//
	// Returns:
	//   - [3]float32: the specular RGB color
	Specular() [3]float32

	// Position returns the world-space light position.
	//
	// Returns:
	//   - [3]float32: the world-space position
	Position() [3]float32

	// SetAmbient sets the ambient light color.
	//
	// Parameters:
	//   - r, g, b: the ambient RGB color
	SetAmbient(r, g, b float32)

	// SetDiffuse sets the diffuse light color.
	//
	// Parameters:
	//   - r, g, b: the diffuse RGB color
	SetDiffuse(r, g, b float32)

	// SetSpecular sets the specular light color.
	//
	// Parameters:
	//   - r, g, b: the specular RGB color
	SetSpecular(r, g, b float32)

	// SetPosition sets the world-space light position.
	//
	// Parameters:
	//   - x, y, z: the world-space position
	SetPosition(x, y, z float32)

	// Uniform packs the light state into the GPU uniform struct consumed by
	// the color-pass fragment shader. The position is carried into view space
	// with the supplied view matrix so it lives in the same space as the
	// interpolated vertex position.
	//
	// Parameters:
	//   - view: the camera view matrix (16 floats, column-major)
	//
	// Returns:
	//   - GPULightUniform: the packed uniform
	Uniform(view [16]float32) GPULightUniform

	// BindGroupProvider returns the provider holding this light's GPU
	// uniform buffer, or nil before GPU initialization.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the provider holding this light's GPU resources.
	//
	// Parameters:
	//   - provider: the bind group provider
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light with all specified options applied. The
// defaults follow the conventional MMD key light: a soft gray ambient and
// diffuse with a white specular, positioned up and behind the camera.
//
// Parameters:
//   - options: a variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		ambient:  [3]float32{0.6, 0.6, 0.6},
		diffuse:  [3]float32{0.6, 0.6, 0.6},
		specular: [3]float32{1, 1, 1},
		position: [3]float32{-10, 20, -20},
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Ambient() [3]float32 {
	return l.ambient
}

func (l *lightImpl) Diffuse() [3]float32 {
	return l.diffuse
}

func (l *lightImpl) Specular() [3]float32 {
	return l.specular
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) SetAmbient(r, g, b float32) {
	l.ambient = [3]float32{r, g, b}
}

func (l *lightImpl) SetDiffuse(r, g, b float32) {
	l.diffuse = [3]float32{r, g, b}
}

func (l *lightImpl) SetSpecular(r, g, b float32) {
	l.specular = [3]float32{r, g, b}
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) Uniform(view [16]float32) GPULightUniform {
	p := common.MulVec4(view[:], [4]float32{l.position[0], l.position[1], l.position[2], 1})
	return GPULightUniform{
		Ambient:  l.ambient,
		Diffuse:  l.diffuse,
		Specular: l.specular,
		Position: [3]float32{p[0], p[1], p[2]},
	}
}

func (l *lightImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return l.bindGroupProvider
}

func (l *lightImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	l.bindGroupProvider = provider
}
