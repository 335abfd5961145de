package light

// LightBuilderOption is a function that configures a light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithAmbient is an option builder that sets the ambient light color.
//
// Parameters:
//   - r, g, b: the ambient RGB color
//
// Returns:
//   - LightBuilderOption: a function that applies the ambient option to a light
func WithAmbient(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = [3]float32{r, g, b}
	}
}

// WithDiffuse is an option builder that sets the diffuse light color.
//
// Parameters:
//   - r, g, b: the diffuse RGB color
//
// Returns:
//   - LightBuilderOption: a function that applies the diffuse option to a light
func WithDiffuse(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.diffuse = [3]float32{r, g, b}
	}
}

// WithSpecular is an option builder that sets the specular light color.
//
// Parameters:
//   - r, g, b: the specular RGB color
//
// Returns:
//   - LightBuilderOption: a function that applies the specular option to a light
func WithSpecular(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.specular = [3]float32{r, g, b}
	}
}

// WithLightPosition is an option builder that sets the world-space light position.
//
// Parameters:
//   - x, y, z: the world-space position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a light
func WithLightPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}
