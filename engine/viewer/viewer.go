// Package viewer wires the window, renderer, camera, light, model and
// animator into a running character viewer. It owns GPU resource setup for a
// loaded model and the per-frame lifecycle: advance the animation, snapshot
// the pose, upload uniforms, then draw the color, edge and depth passes.
package viewer

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/mmd-go/common"
	"github.com/Carmen-Shannon/mmd-go/engine/camera"
	"github.com/Carmen-Shannon/mmd-go/engine/light"
	"github.com/Carmen-Shannon/mmd-go/engine/model"
	"github.com/Carmen-Shannon/mmd-go/engine/profiler"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/animator"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/material"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/shaders"
	"github.com/Carmen-Shannon/mmd-go/engine/renderer/skinning"
	"github.com/Carmen-Shannon/mmd-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/sync/errgroup"
)

// Texture binding slots within the material bind group. Binding 0 is the
// material uniform; texture/sampler pairs follow.
const (
	diffuseTextureBinding = 1
	diffuseSamplerBinding = 2
	sphereTextureBinding  = 3
	sphereSamplerBinding  = 4
	toonTextureBinding    = 5
	toonSamplerBinding    = 6
)

type viewer struct {
	cfg Config

	window   window.Window
	renderer renderer.Renderer
	cam      camera.Camera
	lgt      light.Light
	prof     *profiler.Profiler

	mdl  model.Model
	anim animator.Animator

	// edgeProviders holds the per-material edge pass bind groups, keyed by
	// material index. Only edge-enabled materials get an entry.
	edgeProviders map[int]bind_group_provider.BindGroupProvider

	// bakedScratch holds the per-vertex baked transforms for LayoutBaked
	// models, reused across frames.
	bakedScratch []float32

	computeWorkers int
	computePool    worker.DynamicWorkerPool

	depthView bool
	edgePass  bool

	orbit    orbitState
	dragging bool
	lastX    int32
	lastY    int32

	lastFrame time.Time

	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

// Viewer presents a skinned character model in a native window with orbit
// camera controls. Load a model, then Run blocks on the window message loop
// until the window closes.
type Viewer interface {
	// Window returns the native window the viewer renders into.
	//
	// Returns:
	//   - window.Window: the viewer's window
	Window() window.Window

	// Renderer returns the renderer the viewer draws with.
	//
	// Returns:
	//   - renderer.Renderer: the viewer's renderer
	Renderer() renderer.Renderer

	// Camera returns the orbit camera.
	//
	// Returns:
	//   - camera.Camera: the viewer's camera
	Camera() camera.Camera

	// Light returns the scene light.
	//
	// Returns:
	//   - light.Light: the viewer's light
	Light() light.Light

	// Model returns the loaded model, or nil before LoadModel.
	//
	// Returns:
	//   - model.Model: the loaded model
	Model() model.Model

	// Animator returns the pose source driving the loaded model, or nil
	// before LoadModel.
	//
	// Returns:
	//   - animator.Animator: the model's animator
	Animator() animator.Animator

	// LoadModel uploads a model's GPU resources and attaches a pose source.
	// Must be called before Run. The animator's bone count must match the
	// model's.
	//
	// Parameters:
	//   - m: the model to display
	//   - anim: the pose source; its Pose is snapshotted once per frame
	//
	// Returns:
	//   - error: an error if validation or GPU resource creation fails
	LoadModel(m model.Model, anim animator.Animator) error

	// SetDepthView switches between the lit color output and the grayscale
	// linearized-depth visualization. Also bound to the D key.
	//
	// Parameters:
	//   - enabled: true to show the depth visualization
	SetDepthView(enabled bool)

	// DepthView reports whether the depth visualization is active.
	//
	// Returns:
	//   - bool: true when the depth visualization is active
	DepthView() bool

	// Run enters the window message loop, rendering a frame per iteration.
	// Blocks until the window closes.
	//
	// Returns:
	//   - error: an error if no model is loaded
	Run() error
}

var _ Viewer = &viewer{}

// orbitState is the spherical-coordinate camera rig: the eye orbits the
// target at a fixed distance, steered by yaw and pitch.
type orbitState struct {
	target   [3]float32
	distance float32
	yaw      float32
	pitch    float32
}

// orbitFromLookAt derives the orbit state that reproduces a given eye and
// target position.
//
// Parameters:
//   - eye: the camera position
//   - target: the orbit center
//
// Returns:
//   - orbitState: the equivalent orbit state
func orbitFromLookAt(eye, target [3]float32) orbitState {
	dx := float64(eye[0] - target[0])
	dy := float64(eye[1] - target[1])
	dz := float64(eye[2] - target[2])
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist == 0 {
		dist = 1
	}
	return orbitState{
		target:   target,
		distance: float32(dist),
		yaw:      float32(math.Atan2(dx, dz)),
		pitch:    float32(math.Asin(dy / dist)),
	}
}

// eye returns the camera position for the current orbit state.
//
// Returns:
//   - [3]float32: the eye position in world space
func (o *orbitState) eye() [3]float32 {
	cosPitch := float32(math.Cos(float64(o.pitch)))
	return [3]float32{
		o.target[0] + o.distance*float32(math.Sin(float64(o.yaw)))*cosPitch,
		o.target[1] + o.distance*float32(math.Sin(float64(o.pitch))),
		o.target[2] + o.distance*float32(math.Cos(float64(o.yaw)))*cosPitch,
	}
}

// rotate applies a mouse drag delta. Pitch is clamped short of the poles so
// the view-up never degenerates.
//
// Parameters:
//   - dx: horizontal drag in pixels
//   - dy: vertical drag in pixels
func (o *orbitState) rotate(dx, dy float32) {
	const sensitivity = 0.008
	const maxPitch = float32(math.Pi/2) - 0.01
	o.yaw += dx * sensitivity
	o.pitch += dy * sensitivity
	if o.pitch > maxPitch {
		o.pitch = maxPitch
	}
	if o.pitch < -maxPitch {
		o.pitch = -maxPitch
	}
}

// zoom applies a scroll delta, scaling the orbit distance.
//
// Parameters:
//   - delta: the scroll amount, positive to zoom in
//   - minDist: the closest allowed distance
//   - maxDist: the farthest allowed distance
func (o *orbitState) zoom(delta, minDist, maxDist float32) {
	o.distance *= 1 - delta*0.1
	if o.distance < minDist {
		o.distance = minDist
	}
	if o.distance > maxDist {
		o.distance = maxDist
	}
}

// NewViewer creates a Viewer from a configuration: opens the window, brings
// up the WGPU renderer and constructs the camera and light. LoadModel and Run
// complete the lifecycle.
//
// Parameters:
//   - cfg: the viewer configuration
//   - options: variadic list of ViewerBuilderOption functions
//
// Returns:
//   - Viewer: the configured viewer
func NewViewer(cfg Config, options ...ViewerBuilderOption) Viewer {
	v := &viewer{
		cfg:                cfg,
		edgeProviders:      make(map[int]bind_group_provider.BindGroupProvider),
		computeWorkers:     max(runtime.NumCPU()-1, 1),
		depthView:          cfg.Render.DepthView,
		edgePass:           cfg.Render.EdgePass,
		prof:               profiler.NewProfiler(),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 4),
	}

	for _, opt := range options {
		opt(v)
	}

	v.window = window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)

	presentMode := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	v.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, v.window,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaaFromCount(cfg.Render.MSAA)),
		renderer.WithClearColor(wgpu.Color{
			R: cfg.Render.ClearColor[0],
			G: cfg.Render.ClearColor[1],
			B: cfg.Render.ClearColor[2],
			A: cfg.Render.ClearColor[3],
		}),
	)

	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	v.cam = camera.NewCamera(
		camera.WithPosition(cfg.Camera.Eye[0], cfg.Camera.Eye[1], cfg.Camera.Eye[2]),
		camera.WithTarget(cfg.Camera.Target[0], cfg.Camera.Target[1], cfg.Camera.Target[2]),
		camera.WithFov(cfg.Camera.FovRadians()),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
	)
	v.orbit = orbitFromLookAt(cfg.Camera.Eye, cfg.Camera.Target)

	v.lgt = light.NewLight(
		light.WithAmbient(cfg.Light.Ambient[0], cfg.Light.Ambient[1], cfg.Light.Ambient[2]),
		light.WithDiffuse(cfg.Light.Diffuse[0], cfg.Light.Diffuse[1], cfg.Light.Diffuse[2]),
		light.WithSpecular(cfg.Light.Specular[0], cfg.Light.Specular[1], cfg.Light.Specular[2]),
		light.WithLightPosition(cfg.Light.Position[0], cfg.Light.Position[1], cfg.Light.Position[2]),
	)

	v.computePool = worker.NewDynamicWorkerPool(v.computeWorkers, 256, 1*time.Second)

	v.window.SetResizeCallback(func(width, height int) {
		v.renderer.Resize(width, height)
		v.cam.SetAspect(float32(width) / float32(height))
	})
	v.window.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y int32) {
		if button != window.MouseButtonLeft {
			return
		}
		v.dragging = pressed
		v.lastX, v.lastY = x, y
	})
	v.window.SetMouseMoveCallback(func(x, y int32) {
		if !v.dragging {
			return
		}
		v.orbit.rotate(float32(x-v.lastX), float32(y-v.lastY))
		v.lastX, v.lastY = x, y
	})
	v.window.SetScrollCallback(func(delta float32) {
		v.orbit.zoom(delta, v.cfg.Camera.Near*2, v.cfg.Camera.Far*0.9)
	})
	v.window.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case 'D':
			v.depthView = !v.depthView
		case 'E':
			v.edgePass = !v.edgePass
		}
	})

	return v
}

// msaaFromCount maps a raw sample count onto a renderer MSAA setting.
func msaaFromCount(count int) renderer.MSAASampleCount {
	switch count {
	case 4:
		return renderer.MSAA4x
	case 8:
		return renderer.MSAA8x
	case 16:
		return renderer.MSAA16x
	default:
		return renderer.MSAAOff
	}
}

func (v *viewer) Window() window.Window {
	return v.window
}

func (v *viewer) Renderer() renderer.Renderer {
	return v.renderer
}

func (v *viewer) Camera() camera.Camera {
	return v.cam
}

func (v *viewer) Light() light.Light {
	return v.lgt
}

func (v *viewer) Model() model.Model {
	return v.mdl
}

func (v *viewer) Animator() animator.Animator {
	return v.anim
}

func (v *viewer) SetDepthView(enabled bool) {
	v.depthView = enabled
}

func (v *viewer) DepthView() bool {
	return v.depthView
}

func (v *viewer) LoadModel(m model.Model, anim animator.Animator) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("model %s failed validation: %w", m.Name(), err)
	}
	if int(anim.BoneCount()) != m.BoneCount() {
		return fmt.Errorf("animator drives %d bones but model %s has %d", anim.BoneCount(), m.Name(), m.BoneCount())
	}

	layout := m.Layout()
	if err := v.renderer.RegisterPipelines(
		pipeline.NewColorPipeline(layout, false),
		pipeline.NewColorPipeline(layout, true),
		pipeline.NewEdgePipeline(layout),
		pipeline.NewDepthPipeline(layout),
	); err != nil {
		return fmt.Errorf("failed to register pipelines: %w", err)
	}

	colorVertex := shaders.VertexShader(shaders.PassColor, layout)
	colorFragment := shaders.FragmentShader(shaders.PassColor)
	edgeVertex := shaders.VertexShader(shaders.PassEdge, layout)

	// The camera and edge uniforms are declared in both stages of their
	// passes; the renderer merges those declarations into one layout entry
	// with combined visibility, so the bind groups must be created the same
	// way to stay layout-compatible.
	cameraProvider := bind_group_provider.NewBindGroupProvider("camera")
	if err := v.renderer.InitBindGroup(cameraProvider, mergeStageVisibility(colorVertex.BindGroupLayoutDescriptor(0)), nil, nil); err != nil {
		return fmt.Errorf("failed to init camera bind group: %w", err)
	}
	v.cam.SetBindGroupProvider(cameraProvider)

	lightProvider := bind_group_provider.NewBindGroupProvider("light")
	if err := v.renderer.InitBindGroup(lightProvider, colorFragment.BindGroupLayoutDescriptor(1), nil, nil); err != nil {
		return fmt.Errorf("failed to init light bind group: %w", err)
	}
	v.lgt.SetBindGroupProvider(lightProvider)

	if err := v.initMaterials(m, colorFragment.BindGroupLayoutDescriptor(2), mergeStageVisibility(edgeVertex.BindGroupLayoutDescriptor(1))); err != nil {
		return err
	}

	if err := v.initMesh(m, anim, colorVertex.BindGroupLayoutDescriptor(boneGroupForLayout(layout))); err != nil {
		return err
	}

	v.mdl = m
	v.anim = anim

	common.Logger().Info("model loaded",
		"name", m.Name(),
		"layout", layout.String(),
		"vertices", len(m.Vertices()),
		"indices", m.IndexCount(),
		"materials", len(m.Materials()),
		"bones", m.BoneCount(),
	)
	return nil
}

// boneGroupForLayout returns the bind group index the color pass vertex
// shader declares the bone palette at. Baked layouts have no bone group; the
// returned descriptor is empty and InitBindGroup skips it.
func boneGroupForLayout(layout model.VertexLayout) int {
	if layout == model.LayoutIndexed {
		return 3
	}
	return -1
}

// mergeStageVisibility widens every entry of a single-stage layout descriptor
// to vertex-and-fragment visibility, matching the pipeline layout the
// renderer builds when both stages declare the group.
func mergeStageVisibility(desc wgpu.BindGroupLayoutDescriptor) wgpu.BindGroupLayoutDescriptor {
	entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
	copy(entries, desc.Entries)
	for i := range entries {
		entries[i].Visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	}
	desc.Entries = entries
	return desc
}

// materialTextures holds the decoded staging data for one material's three
// texture slots. Missing textures fall back to a white pixel so the shader
// can sample every slot unconditionally.
type materialTextures struct {
	diffuse common.TextureStagingData
	sphere  common.TextureStagingData
	toon    common.TextureStagingData

	diffuseSampler common.SamplerStagingData
	sphereSampler  common.SamplerStagingData
	toonSampler    common.SamplerStagingData
}

// initMaterials decodes every material's textures concurrently, then creates
// the per-material color and edge bind groups and uploads their static
// uniforms.
func (v *viewer) initMaterials(m model.Model, materialDesc, edgeDesc wgpu.BindGroupLayoutDescriptor) error {
	materials := m.Materials()
	staged := make([]materialTextures, len(materials))

	var eg errgroup.Group
	eg.SetLimit(v.computeWorkers)
	for i, mat := range materials {
		eg.Go(func() error {
			var err error
			staged[i].diffuse, staged[i].diffuseSampler, err = stageTexture(mat.DiffuseTexture(), false)
			if err != nil {
				return fmt.Errorf("material %s diffuse texture: %w", mat.Name(), err)
			}
			staged[i].sphere, staged[i].sphereSampler, err = stageTexture(mat.SphereTexture(), true)
			if err != nil {
				return fmt.Errorf("material %s sphere texture: %w", mat.Name(), err)
			}
			staged[i].toon, staged[i].toonSampler, err = stageTexture(mat.ToonTexture(), true)
			if err != nil {
				return fmt.Errorf("material %s toon texture: %w", mat.Name(), err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	writes := make([]bind_group_provider.BufferWrite, 0, len(materials)*2)
	for i, mat := range materials {
		provider := bind_group_provider.NewBindGroupProvider(mat.Name())

		if err := v.renderer.InitTextureView(provider, diffuseTextureBinding, staged[i].diffuse); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		if err := v.renderer.InitSampler(provider, diffuseSamplerBinding, staged[i].diffuseSampler); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		if err := v.renderer.InitTextureView(provider, sphereTextureBinding, staged[i].sphere); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		if err := v.renderer.InitSampler(provider, sphereSamplerBinding, staged[i].sphereSampler); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		if err := v.renderer.InitTextureView(provider, toonTextureBinding, staged[i].toon); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		if err := v.renderer.InitSampler(provider, toonSamplerBinding, staged[i].toonSampler); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		if err := v.renderer.InitBindGroup(provider, materialDesc, nil, nil); err != nil {
			return fmt.Errorf("material %s: %w", mat.Name(), err)
		}
		mat.SetBindGroupProvider(provider)
		mat.SetPipelineKey(colorPipelineKey(m.Layout(), mat.DoubleSided()))

		uniform := material.UniformFor(mat)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: provider,
			Binding:  0,
			Data:     uniform.Marshal(),
		})

		if mat.EdgeEnabled() {
			edgeProvider := bind_group_provider.NewBindGroupProvider(mat.Name() + " edge")
			if err := v.renderer.InitBindGroup(edgeProvider, edgeDesc, nil, nil); err != nil {
				return fmt.Errorf("material %s edge: %w", mat.Name(), err)
			}
			v.edgeProviders[i] = edgeProvider

			edgeUniform := material.EdgeUniformFor(mat)
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: edgeProvider,
				Binding:  0,
				Data:     edgeUniform.Marshal(),
			})
		}
	}

	// Material and edge uniforms never change after load; one batched upload.
	v.renderer.WriteBuffers(writes)
	return nil
}

// colorPipelineKey returns the cached color pipeline key for a material's
// cull mode, mirroring the preset naming.
func colorPipelineKey(layout model.VertexLayout, doubleSided bool) string {
	suffix := "back"
	if doubleSided {
		suffix = "none"
	}
	return fmt.Sprintf("%s_%s", shaders.PipelineKey(shaders.PassColor, layout), suffix)
}

// stageTexture decodes a texture into staging data, falling back to a white
// pixel when the slot is empty. Sphere and toon textures clamp so ramp and
// environment lookups never wrap.
func stageTexture(tex *common.ImportedTexture, clamp bool) (common.TextureStagingData, common.SamplerStagingData, error) {
	sampler := defaultSampler(clamp)
	if tex == nil {
		return common.WhitePixel(), sampler, nil
	}
	pixels, width, height, err := tex.Decode()
	if err != nil {
		return common.TextureStagingData{}, sampler, err
	}
	if tex.SamplerData != nil {
		sampler = *tex.SamplerData
	}
	return common.TextureStagingData{Pixels: pixels, Width: width, Height: height}, sampler, nil
}

// defaultSampler returns linear filtering with either repeat or clamp
// addressing.
func defaultSampler(clamp bool) common.SamplerStagingData {
	mode := wgpu.AddressModeRepeat
	if clamp {
		mode = wgpu.AddressModeClampToEdge
	}
	return common.SamplerStagingData{
		AddressModeU:  mode,
		AddressModeV:  mode,
		AddressModeW:  mode,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// initMesh packs and uploads the shared vertex and index buffers and, for
// indexed layouts, creates the bone palette bind group on the mesh provider.
func (v *viewer) initMesh(m model.Model, anim animator.Animator, boneDesc wgpu.BindGroupLayoutDescriptor) error {
	provider := bind_group_provider.NewBindGroupProvider(m.Name() + " mesh")

	var vertexData []byte
	switch m.Layout() {
	case model.LayoutIndexed:
		vertexData = m.PackIndexed()
	case model.LayoutBaked:
		v.bakedScratch = make([]float32, len(m.Vertices())*16)
		pose := anim.Pose().Snapshot()
		m.BakePose(v.bakedScratch, pose, 0, len(m.Vertices()))
		var err error
		vertexData, err = m.PackBaked(v.bakedScratch)
		if err != nil {
			return fmt.Errorf("failed to pack baked vertices: %w", err)
		}
	default:
		return fmt.Errorf("model %s has unknown layout %d", m.Name(), m.Layout())
	}

	if err := v.renderer.InitMeshBuffers(provider, vertexData, m.PackIndices(), m.IndexCount()); err != nil {
		return fmt.Errorf("failed to init mesh buffers: %w", err)
	}

	if m.Layout() == model.LayoutIndexed {
		boneBytes := uint64(m.BoneCount()) * 64
		if err := v.renderer.InitBindGroup(provider, boneDesc, nil, map[int]uint64{0: boneBytes}); err != nil {
			return fmt.Errorf("failed to init bone bind group: %w", err)
		}
	}

	m.SetMeshProvider(provider)
	return nil
}

func (v *viewer) Run() error {
	if v.mdl == nil {
		return fmt.Errorf("no model loaded")
	}
	v.lastFrame = time.Now()
	v.window.SetUpdateCallback(v.frame)
	v.window.ProcessMessages()
	return nil
}

// frame advances one frame: animation, pose snapshot, uniform uploads, then
// the draw passes. Runs once per window message loop iteration.
func (v *viewer) frame() {
	now := time.Now()
	dt := float32(now.Sub(v.lastFrame).Seconds())
	v.lastFrame = now

	eye := v.orbit.eye()
	v.cam.SetPosition(eye[0], eye[1], eye[2])

	v.anim.Advance(dt)
	// Snapshot decouples the uploaded pose from animator state the next
	// Advance will mutate.
	pose := v.anim.Pose().Snapshot()

	camUniform := v.cam.Uniform()
	lightUniform := v.lgt.Uniform(v.cam.ModelViewMatrix())

	writes := v.writePool[:0]
	writes = append(writes,
		bind_group_provider.BufferWrite{
			Provider: v.cam.BindGroupProvider(),
			Binding:  0,
			Data:     camUniform.Marshal(),
		},
		bind_group_provider.BufferWrite{
			Provider: v.lgt.BindGroupProvider(),
			Binding:  0,
			Data:     lightUniform.Marshal(),
		},
	)

	meshProvider := v.mdl.MeshProvider()
	switch v.mdl.Layout() {
	case model.LayoutIndexed:
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: meshProvider,
			Binding:  0,
			Data:     pose.Bytes(),
		})
	case model.LayoutBaked:
		v.bakePose(pose)
		packed, err := v.mdl.PackBaked(v.bakedScratch)
		if err != nil {
			common.Logger().Error("failed to pack baked vertices", "error", err)
			return
		}
		v.renderer.WriteVertexBuffer(meshProvider, 0, packed)
	}
	v.renderer.WriteBuffers(writes)
	v.writePool = writes

	if err := v.renderer.BeginFrame(); err != nil {
		common.Logger().Error("failed to begin frame", "error", err)
		return
	}

	if v.depthView {
		v.drawDepth(meshProvider)
	} else {
		v.drawColor(meshProvider)
		if v.edgePass {
			v.drawEdges(meshProvider)
		}
	}

	v.renderer.EndFrame()
	v.renderer.Present()
	v.prof.Tick()
}

// bakePose fans the per-vertex transform bake across the compute pool,
// splitting the vertex range into one chunk per worker. Chunks write disjoint
// regions of bakedScratch, so the WaitGroup is the only synchronization.
func (v *viewer) bakePose(pose skinning.BoneSet) {
	vertexCount := len(v.mdl.Vertices())
	if vertexCount == 0 {
		return
	}

	chunk := (vertexCount + v.computeWorkers - 1) / v.computeWorkers

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < vertexCount; start += chunk {
		end := min(start+chunk, vertexCount)

		wg.Add(1)
		s, e := start, end
		id := taskID
		taskID++
		v.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				v.mdl.BakePose(v.bakedScratch, pose, s, e)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// drawColor draws every submesh with its material's color pipeline.
func (v *viewer) drawColor(meshProvider bind_group_provider.BindGroupProvider) {
	materials := v.mdl.Materials()
	for _, sm := range v.mdl.SubMeshes() {
		mat := materials[sm.MaterialIndex]
		if mat.Alpha() <= 0 {
			continue
		}

		groups := v.drawBindGroupsPool[:0]
		groups = append(groups, v.cam.BindGroupProvider(), v.lgt.BindGroupProvider(), mat.BindGroupProvider())
		if v.mdl.Layout() == model.LayoutIndexed {
			groups = append(groups, meshProvider)
		}
		if err := v.renderer.DrawCall(mat.PipelineKey(), meshProvider, uint32(sm.IndexOffset), uint32(sm.IndexCount), groups); err != nil {
			common.Logger().Error("color draw failed", "submesh", sm.Name, "error", err)
		}
		v.drawBindGroupsPool = groups
	}
}

// drawEdges draws the inverted-hull outline for every edge-enabled submesh.
func (v *viewer) drawEdges(meshProvider bind_group_provider.BindGroupProvider) {
	key := shaders.PipelineKey(shaders.PassEdge, v.mdl.Layout())
	materials := v.mdl.Materials()
	for _, sm := range v.mdl.SubMeshes() {
		mat := materials[sm.MaterialIndex]
		edgeProvider, ok := v.edgeProviders[sm.MaterialIndex]
		if !ok || mat.Alpha() <= 0 {
			continue
		}

		groups := v.drawBindGroupsPool[:0]
		groups = append(groups, v.cam.BindGroupProvider(), edgeProvider)
		if v.mdl.Layout() == model.LayoutIndexed {
			groups = append(groups, meshProvider)
		}
		if err := v.renderer.DrawCall(key, meshProvider, uint32(sm.IndexOffset), uint32(sm.IndexCount), groups); err != nil {
			common.Logger().Error("edge draw failed", "submesh", sm.Name, "error", err)
		}
		v.drawBindGroupsPool = groups
	}
}

// drawDepth draws the whole mesh once with the depth visualization pipeline.
// No per-material state is involved, so submesh boundaries are irrelevant.
func (v *viewer) drawDepth(meshProvider bind_group_provider.BindGroupProvider) {
	key := shaders.PipelineKey(shaders.PassDepth, v.mdl.Layout())

	groups := v.drawBindGroupsPool[:0]
	groups = append(groups, v.cam.BindGroupProvider())
	if v.mdl.Layout() == model.LayoutIndexed {
		groups = append(groups, meshProvider)
	}
	if err := v.renderer.DrawCall(key, meshProvider, 0, 0, groups); err != nil {
		common.Logger().Error("depth draw failed", "error", err)
	}
	v.drawBindGroupsPool = groups
}
