package material

import (
	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColors is an option builder that sets the ambient, diffuse, and specular
// RGB colors of the material.
//
// Parameters:
//   - ambient: the ambient (mirror) color
//   - diffuse: the diffuse color
//   - specular: the specular color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color options to a material
func WithColors(ambient, diffuse, specular [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.ambient = ambient
		m.diffuse = diffuse
		m.specular = specular
	}
}

// WithShininess is an option builder that sets the specular exponent.
//
// Parameters:
//   - shininess: the specular exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}

// WithAlpha is an option builder that sets the material opacity.
//
// Parameters:
//   - alpha: the alpha scalar in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the alpha option to a material
func WithAlpha(alpha float32) MaterialBuilderOption {
	return func(m *material) {
		m.alpha = alpha
	}
}

// WithSphereMode is an option builder that sets the sphere environment
// texture blend mode from a raw asset scalar. Unknown values resolve to off.
//
// Parameters:
//   - mode: the raw sphere-texture-mode value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sphere mode option to a material
func WithSphereMode(mode float32) MaterialBuilderOption {
	return func(m *material) {
		m.sphereMode = SphereModeFromScalar(mode)
	}
}

// WithToonFlag is an option builder that sets the toon ramp flag from a raw
// asset scalar. Unknown values resolve to off.
//
// Parameters:
//   - flag: the raw toon-texture flag value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the toon flag option to a material
func WithToonFlag(flag float32) MaterialBuilderOption {
	return func(m *material) {
		m.toonFlag = ToonFlagFromScalar(flag)
	}
}

// WithEdge is an option builder that enables the silhouette outline pass for
// this material and sets its color and size.
//
// Parameters:
//   - color: the flat RGBA outline color
//   - size: the global edge-size scalar
//
// Returns:
//   - MaterialBuilderOption: a function that applies the edge options to a material
func WithEdge(color [4]float32, size float32) MaterialBuilderOption {
	return func(m *material) {
		m.edgeEnabled = true
		m.edgeColor = color
		m.edgeSize = size
	}
}

// WithDoubleSided is an option builder that disables back-face culling for
// the color pass of this material.
//
// Returns:
//   - MaterialBuilderOption: a function that marks the material double-sided
func WithDoubleSided() MaterialBuilderOption {
	return func(m *material) {
		m.doubleSided = true
	}
}

// WithCorrectedSpecular is an option builder that enables the
// physically-corrected specular term (half vector dotted with the normal)
// instead of the position-based term inherited from the original asset
// shaders. Leave unset for visual parity with existing assets.
//
// Returns:
//   - MaterialBuilderOption: a function that enables the corrected specular variant
func WithCorrectedSpecular() MaterialBuilderOption {
	return func(m *material) {
		m.correctedSpecular = true
	}
}

// WithDiffuseTexture is an option builder that sets the diffuse texture.
//
// Parameters:
//   - tex: the diffuse texture reference
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse texture option to a material
func WithDiffuseTexture(tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseTexture = tex
	}
}

// WithSphereTexture is an option builder that sets the sphere environment texture.
//
// Parameters:
//   - tex: the sphere texture reference
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sphere texture option to a material
func WithSphereTexture(tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		m.sphereTexture = tex
	}
}

// WithToonTexture is an option builder that sets the 1D toon ramp texture.
//
// Parameters:
//   - tex: the toon texture reference
//
// Returns:
//   - MaterialBuilderOption: a function that applies the toon texture option to a material
func WithToonTexture(tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		m.toonTexture = tex
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider.
//
// Parameters:
//   - provider: the provider containing GPU resources for this material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
