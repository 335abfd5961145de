package camera

// CameraBuilderOption is a function that configures a camera instance during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the camera position in world space.
//
// Parameters:
//   - x, y, z: the world-space position
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a camera
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.posX, c.posY, c.posZ = x, y, z
	}
}

// WithTarget is an option builder that sets the point the camera looks at.
//
// Parameters:
//   - x, y, z: the world-space target
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option to a camera
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.targetX, c.targetY, c.targetZ = x, y, z
	}
}

// WithUp is an option builder that sets the camera up vector.
//
// Parameters:
//   - x, y, z: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option to a camera
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.upX, c.upY, c.upZ = x, y, z
	}
}

// WithFov is an option builder that sets the vertical field of view in radians.
//
// Parameters:
//   - fov: the field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that applies the fov option to a camera
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect is an option builder that sets the viewport aspect ratio.
//
// Parameters:
//   - aspect: the aspect ratio (width/height)
//
// Returns:
//   - CameraBuilderOption: a function that applies the aspect option to a camera
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes is an option builder that sets the near and far clipping planes.
//
// Parameters:
//   - near: the near plane distance (must be > 0)
//   - far: the far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: a function that applies the clip plane option to a camera
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithModelMatrix is an option builder that sets the model matrix of the
// viewed character.
//
// Parameters:
//   - m: the model matrix (16 floats, column-major)
//
// Returns:
//   - CameraBuilderOption: a function that applies the model matrix option to a camera
func WithModelMatrix(m [16]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.model = m
	}
}
