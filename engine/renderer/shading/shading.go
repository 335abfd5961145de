// Package shading is the CPU float32 reference of the math carried by the
// color, edge, and depth stage shaders. Every formula here mirrors its WGSL
// counterpart in engine/renderer/shaders one-for-one, including the
// inherited oddities that must be preserved for visual parity with existing
// assets: the exact-zero skinning sentinel, the specular term that dots the
// raw view-space position with the half vector, and the 0.05 edge scale
// constant. The test suite pins the shader contracts against this package.
package shading

import (
	"math"

	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
)

// EdgeScaleConstant is the fixed multiplier applied to the edge extrusion
// distance. Inherited from the original asset shaders; do not tune.
const EdgeScaleConstant = 0.05

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func mul3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func scale3(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func normalize3(v [3]float32) [3]float32 {
	len2 := dot3(v, v)
	if len2 == 0 {
		return v
	}
	inv := 1.0 / float32(math.Sqrt(float64(len2)))
	return scale3(v, inv)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// transformPoint carries a point (w=1) through a flat column-major matrix.
func transformPoint(m [16]float32, p [3]float32) [3]float32 {
	v := common.MulVec4(m[:], [4]float32{p[0], p[1], p[2], 1})
	return [3]float32{v[0], v[1], v[2]}
}

// transformDir carries a direction (w=0) through a flat column-major matrix.
func transformDir(m [16]float32, d [3]float32) [3]float32 {
	v := common.MulVec4(m[:], [4]float32{d[0], d[1], d[2], 0})
	return [3]float32{v[0], v[1], v[2]}
}

// ColorVertex reproduces the color-pass vertex stage: skin the position,
// carry it to view space, and transform the skinned normal by the
// inverse-transpose model-view matrix, renormalized.
//
// Parameters:
//   - position: object-space vertex position
//   - normal: object-space vertex normal
//   - transform: the blended skinning transform for this vertex
//   - modelView: the uModelViewM matrix
//   - itModelView: the uITModelViewM matrix
//
// Returns:
//   - [3]float32: view-space position
//   - [3]float32: normalized view-space normal
func ColorVertex(position, normal [3]float32, transform skinning.Mat4, modelView, itModelView [16]float32) ([3]float32, [3]float32) {
	skinnedPos := skinning.DeformPosition(transform, position)
	skinnedNrm := skinning.DeformNormal(transform, normal)
	viewPos := transformPoint(modelView, skinnedPos)
	viewNrm := normalize3(transformDir(itModelView, skinnedNrm))
	return viewPos, viewNrm
}

// EdgeVertex reproduces the edge-pass vertex stage. The vertex and a second
// point displaced along the object-space normal are both skinned and carried
// to view space; the normalized delta between them is the outward direction,
// which keeps the outline thickness roughly viewpoint-stable. The final
// position is offset by edgeSize * edgeScale * EdgeScaleConstant.
//
// Parameters:
//   - position: object-space vertex position
//   - normal: object-space vertex normal
//   - edgeScale: the per-vertex aEdgeScale attribute
//   - edgeSize: the uEdgeSize uniform
//   - transform: the blended skinning transform for this vertex
//   - modelView: the uModelViewM matrix
//
// Returns:
//   - [3]float32: view-space position including the outline offset
func EdgeVertex(position, normal [3]float32, edgeScale, edgeSize float32, transform skinning.Mat4, modelView [16]float32) [3]float32 {
	p0 := transformPoint(modelView, skinning.DeformPosition(transform, position))
	p1 := transformPoint(modelView, skinning.DeformPosition(transform, add3(position, normal)))
	dir := normalize3(sub3(p1, p0))
	return add3(p0, scale3(dir, edgeSize*edgeScale*EdgeScaleConstant))
}

// DepthVertex reproduces the depth-pass vertex stage: skinned position in
// view space, no other work.
//
// Parameters:
//   - position: object-space vertex position
//   - transform: the blended skinning transform for this vertex
//   - modelView: the uModelViewM matrix
//
// Returns:
//   - [3]float32: view-space position
func DepthVertex(position [3]float32, transform skinning.Mat4, modelView [16]float32) [3]float32 {
	return transformPoint(modelView, skinning.DeformPosition(transform, position))
}

// MaterialState is the color-pass material uniform state as the fragment
// shader sees it. The sphere mode and toon flag are raw scalars, not typed
// enums, because the shader contract is "1.0 multiplies, 3.0 adds, anything
// else is off" and "2.0 applies the ramp, anything else does not".
type MaterialState struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
	Alpha     float32

	SphereMode float32
	ToonFlag   float32

	// SpecBlendsNormal selects the corrected specular term (half vector
	// dotted with the surface normal) instead of the inherited raw
	// view-space-position term. Off for parity with existing assets.
	SpecBlendsNormal bool
}

// LightState is the scene light uniform state.
type LightState struct {
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
	Position [3]float32
}

// Surface is the interpolated per-fragment input to ShadeFragment.
type Surface struct {
	// ViewPosition is the view-space surface position.
	ViewPosition [3]float32

	// Normal is the view-space normal (renormalized before use).
	Normal [3]float32

	// TexColor is the diffuse texture sample (RGBA).
	TexColor [4]float32

	// SphereColor is the sphere environment texture sample (RGB).
	SphereColor [3]float32
}

// ShadeFragment reproduces the color-pass fragment stage.
//
// Order of operations, preserved exactly: base white × diffuse texture
// (RGB and alpha), sphere contribution by mode, ambient+diffuse+specular
// lighting, clamp to [0,1], then the optional toon ramp multiply. The
// returned alpha is material alpha × texture alpha.
//
// Parameters:
//   - s: interpolated surface data
//   - m: material uniform state
//   - l: light uniform state
//   - cameraPosition: the uCameraPosition uniform
//   - toonRamp: ramp lookup at v in [0,1]; ignored unless the toon flag is 2.0
//
// Returns:
//   - [4]float32: final fragment RGBA
func ShadeFragment(s Surface, m MaterialState, l LightState, cameraPosition [3]float32, toonRamp func(v float32) [3]float32) [4]float32 {
	rgb := [3]float32{1, 1, 1}
	alpha := float32(1)

	rgb = mul3(rgb, [3]float32{s.TexColor[0], s.TexColor[1], s.TexColor[2]})
	alpha *= s.TexColor[3]

	switch m.SphereMode {
	case 1.0:
		rgb = mul3(rgb, s.SphereColor)
	case 3.0:
		rgb = add3(rgb, s.SphereColor)
	}

	n := normalize3(s.Normal)
	lightDir := normalize3(sub3(l.Position, s.ViewPosition))
	viewDir := normalize3(sub3(cameraPosition, s.ViewPosition))
	half := normalize3(add3(lightDir, viewDir))

	ambient := mul3(m.Ambient, l.Ambient)
	diffuse := scale3(mul3(m.Diffuse, l.Diffuse), maxf(dot3(n, lightDir), 0))

	// The inherited shader dots the RAW view-space position with the half
	// vector here, not the normal. Wrong physically, preserved for parity.
	specBase := dot3(s.ViewPosition, half)
	if m.SpecBlendsNormal {
		specBase = dot3(n, half)
	}
	specPow := float32(math.Pow(float64(maxf(specBase, 0)), float64(m.Shininess)))
	specular := scale3(mul3(m.Specular, l.Specular), specPow)

	lit := add3(mul3(rgb, add3(ambient, diffuse)), specular)
	lit = [3]float32{clamp01(lit[0]), clamp01(lit[1]), clamp01(lit[2])}

	if m.ToonFlag == 2.0 && toonRamp != nil {
		ramp := toonRamp(ToonCoordinate(lightDir, n))
		lit = mul3(lit, ramp)
	}

	return [4]float32{lit[0], lit[1], lit[2], m.Alpha * alpha}
}

// ToonCoordinate computes the vertical toon-ramp lookup coordinate
// 0.5 * (1 - dot(L, N)); the horizontal coordinate is always 0.
//
// Parameters:
//   - lightDir: normalized direction from surface to light
//   - normal: normalized surface normal
//
// Returns:
//   - float32: ramp coordinate in [0, 1] for inputs on the unit sphere
func ToonCoordinate(lightDir, normal [3]float32) float32 {
	return 0.5 * (1.0 - dot3(lightDir, normal))
}

// EdgeFragment reproduces the edge-pass fragment stage: a flat unlit color
// from the edge uniforms, alpha modulated by the material opacity.
//
// Parameters:
//   - edgeColor: the uEdgeColor uniform (RGBA)
//   - alpha: the uAlpha uniform
//
// Returns:
//   - [4]float32: final fragment RGBA
func EdgeFragment(edgeColor [4]float32, alpha float32) [4]float32 {
	return [4]float32{edgeColor[0], edgeColor[1], edgeColor[2], edgeColor[3] * alpha}
}

// LinearizeDepth reproduces the depth-pass fragment stage: converts a
// depth-buffer value in [0, 1] back to NDC (*2-1), then to true eye-space
// distance via the perspective-depth-linearization formula, normalized by
// the far plane.
//
// Parameters:
//   - depth: rasterizer depth in [0, 1]
//   - near: near plane distance (uNearPlane)
//   - far: far plane distance (uFarPlane)
//
// Returns:
//   - float32: linear depth normalized to the far plane (≈near/far at the near plane, ≈1 at the far plane)
func LinearizeDepth(depth, near, far float32) float32 {
	ndc := depth*2.0 - 1.0
	linear := (2.0 * near * far) / (far + near - ndc*(far-near))
	return linear / far
}

// DepthFragment reproduces the depth-pass fragment output: the linearized
// depth replicated into RGB with alpha 1.
//
// Parameters:
//   - depth: rasterizer depth in [0, 1]
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - [4]float32: grayscale linear-depth RGBA
func DepthFragment(depth, near, far float32) [4]float32 {
	d := LinearizeDepth(depth, near, far)
	return [4]float32{d, d, d, 1}
}
