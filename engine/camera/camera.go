package camera

import (
	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	posX, posY, posZ          float32
	targetX, targetY, targetZ float32
	upX, upY, upZ             float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	// model is the model matrix of the character being viewed. The stage
	// shaders consume uModelViewM, so the camera owns the composed matrix.
	model [16]float32

	view        [16]float32
	projection  [16]float32
	modelView   [16]float32
	itModelView [16]float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the viewer camera. It owns the projection,
// view, and composed model-view matrices (plus the inverse-transpose used for
// normal transformation) and re-derives them whenever a parameter changes.
type Camera interface {
	// Position returns the camera position in world space.
	//
	// Returns:
	//   - x, y, z: the world-space position
	Position() (x, y, z float32)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - x, y, z: the world-space target
	Target() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: the field of view
	Fov() float32

	// Aspect returns the viewport aspect ratio (width/height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: the near plane
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: the far plane
	Far() float32

	// ProjectionMatrix returns the current projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ModelViewMatrix returns the composed view * model matrix.
	//
	// Returns:
	//   - [16]float32: the model-view matrix
	ModelViewMatrix() [16]float32

	// ITModelViewMatrix returns the inverse-transpose of the model-view
	// matrix, required to carry normals through non-uniform scale correctly.
	//
	// Returns:
	//   - [16]float32: the inverse-transpose model-view matrix
	ITModelViewMatrix() [16]float32

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new world-space position
	SetPosition(x, y, z float32)

	// SetTarget re-aims the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new world-space target
	SetTarget(x, y, z float32)

	// SetUp sets the camera up vector and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new up vector
	SetUp(x, y, z float32)

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: the new field of view
	SetFov(fov float32)

	// SetAspect sets the viewport aspect ratio and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the new aspect ratio (width/height)
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: the new near plane
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: the new far plane
	SetFar(far float32)

	// SetModelMatrix sets the model matrix of the viewed character and
	// recomputes the composed matrices.
	//
	// Parameters:
	//   - m: the model matrix (16 floats, column-major)
	SetModelMatrix(m [16]float32)

	// Uniform packs the camera state into the GPU uniform struct consumed by
	// every stage shader in the frame.
	//
	// Returns:
	//   - GPUCameraUniform: the packed uniform
	Uniform() GPUCameraUniform

	// BindGroupProvider returns the provider holding this camera's GPU
	// uniform buffer, or nil before GPU initialization.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the provider holding this camera's GPU resources.
	//
	// Parameters:
	//   - provider: the bind group provider
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with all specified options applied. The
// defaults mirror the conventional MMD stage framing: eye (0, 10, -30)
// looking at (0, 10, 0), 45° fov, near 0.1, far 50.
//
// Parameters:
//   - options: a variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		posX: 0, posY: 10, posZ: -30,
		targetX: 0, targetY: 10, targetZ: 0,
		upX: 0, upY: 1, upZ: 0,
		fov:    45.0 * (3.14159265358979 / 180.0),
		aspect: 1,
		near:   0.1,
		far:    50,
	}
	common.Identity(c.model[:])
	for _, opt := range options {
		opt(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() (x, y, z float32) {
	return c.posX, c.posY, c.posZ
}

func (c *cameraImpl) Target() (x, y, z float32) {
	return c.targetX, c.targetY, c.targetZ
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	return c.projection
}

func (c *cameraImpl) ModelViewMatrix() [16]float32 {
	return c.modelView
}

func (c *cameraImpl) ITModelViewMatrix() [16]float32 {
	return c.itModelView
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.posX, c.posY, c.posZ = x, y, z
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.targetX, c.targetY, c.targetZ = x, y, z
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.upX, c.upY, c.upZ = x, y, z
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetModelMatrix(m [16]float32) {
	c.model = m
	c.updateMatrices()
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	return GPUCameraUniform{
		Projection:     c.projection,
		ModelView:      c.modelView,
		ITModelView:    c.itModelView,
		CameraPosition: [3]float32{c.posX, c.posY, c.posZ},
		NearPlane:      c.near,
		FarPlane:       c.far,
	}
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return c.bindGroupProvider
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.bindGroupProvider = provider
}

// updateMatrices re-derives view, projection, model-view, and
// inverse-transpose model-view from the current parameters. If the
// model-view happens to be singular the previous inverse-transpose is kept
// rather than poisoning the normals with NaNs.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.view[:],
		c.posX, c.posY, c.posZ,
		c.targetX, c.targetY, c.targetZ,
		c.upX, c.upY, c.upZ,
	)
	common.Perspective(c.projection[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.modelView[:], c.view[:], c.model[:])
	common.InverseTranspose(c.itModelView[:], c.modelView[:])
}
