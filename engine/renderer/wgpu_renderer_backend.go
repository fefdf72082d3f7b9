package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceConfig SurfaceConfig

	// shaderModules caches one compiled module per shader key.
	shaderModules  map[string]*wgpu.ShaderModule
	moduleOrder    []string
	pipelineLayout *wgpu.PipelineLayout
	pipelines      []pipeline.Pipeline

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	released bool
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend negotiates instance, surface, adapter, device and queue and picks the
// surface configuration. The surface itself is configured by the first ConfigureSurface call.
func newWGPURendererBackend(
	ctx context.Context,
	surfaceDescriptor *wgpu.SurfaceDescriptor,
	profile PlatformProfile,
	presentMode PresentMode,
	width, height int,
) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()

	if surfaceDescriptor == nil {
		return nil, &InitError{Stage: "surface", Err: errors.New("host has no surface descriptor")}
	}

	b := &wgpuRendererBackendImpl{
		mu:            &sync.Mutex{},
		shaderModules: make(map[string]*wgpu.ShaderModule),
	}
	fail := func(stage string, err error) (*wgpuRendererBackendImpl, error) {
		b.Release()
		return nil, &InitError{Stage: stage, Err: err}
	}

	b.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: profile.Backends,
	})
	if b.instance == nil {
		return fail("instance", errors.New("no instance created"))
	}

	if err := ctx.Err(); err != nil {
		return fail("surface", err)
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		return fail("surface", errors.New("no surface created"))
	}

	if err := ctx.Err(); err != nil {
		return fail("adapter", err)
	}
	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    b.surface,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		return fail("adapter", err)
	}
	b.adapter = adapter

	if err := ctx.Err(); err != nil {
		return fail("device", err)
	}
	limits := profile.Limits
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return fail("device", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	caps := b.surface.GetCapabilities(b.adapter)
	cfg, err := chooseSurfaceConfig(caps.Formats, caps.PresentModes, caps.AlphaModes, presentMode, width, height)
	if err != nil {
		return fail("surface", err)
	}
	b.surfaceConfig = cfg

	common.Logger().Debug("gpu context ready",
		"format", cfg.Format,
		"presentMode", cfg.PresentMode,
		"maxTextureDimension2D", limits.MaxTextureDimension2D,
	)
	return b, nil
}

func (b *wgpuRendererBackendImpl) SurfaceConfig() SurfaceConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaceConfig
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return errors.New("backend released")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	b.surfaceConfig.Width = uint32(width)
	b.surfaceConfig.Height = uint32(height)
	b.surface.Configure(b.adapter, b.device, b.surfaceConfig.Configuration())
	return nil
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return errors.New("shader must be set to create a render pipeline")
	}

	module, ok := b.shaderModules[s.Key()]
	if !ok {
		created, err := b.device.CreateShaderModule(s.Module())
		if err != nil {
			return fmt.Errorf("failed to create shader module %s: %w", s.Key(), err)
		}
		module = created
		b.shaderModules[s.Key()] = module
		b.moduleOrder = append(b.moduleOrder, s.Key())
	}

	if b.pipelineLayout == nil {
		layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label: "Shapes Pipeline Layout",
		})
		if err != nil {
			return fmt.Errorf("failed to create pipeline layout: %w", err)
		}
		b.pipelineLayout = layout
	}

	created, err := b.device.CreateRenderPipeline(p.Descriptor(module, b.pipelineLayout, b.surfaceConfig.Format))
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	b.pipelines = append(b.pipelines, p)

	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(m mesh.Mesh, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexBuffer, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    m.Label() + " Vertex Buffer",
		Contents: vertexData,
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return err
	}
	m.SetVertexBuffer(vertexBuffer)

	indexBuffer, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    m.Label() + " Index Buffer",
		Contents: indexData,
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return err
	}
	m.SetIndexBuffer(indexBuffer)
	m.SetIndexCount(indexCount)

	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return &SurfaceError{Kind: SurfaceOther, Err: errors.New("previous frame surface not yet presented")}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return classifySurfaceError(err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return &SurfaceError{Kind: SurfaceOther, Err: err}
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return &SurfaceError{Kind: SurfaceOther, Err: err}
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, m mesh.Mesh, instanceCount uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	b.framePass.SetVertexBuffer(0, m.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(m.IndexBuffer(), m.IndexFormat(), 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(m.IndexCount()), instanceCount, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return &SurfaceError{Kind: SurfaceOther, Err: errors.New("no frame in progress")}
	}

	err := b.framePass.End()
	b.framePass = nil
	if err != nil {
		b.dropFrame()
		return &SurfaceError{Kind: SurfaceOther, Err: err}
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.dropFrame()
		return &SurfaceError{Kind: SurfaceOther, Err: err}
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

// dropFrame releases the frame's encoder, view and surface texture without presenting.
func (b *wgpuRendererBackendImpl) dropFrame() {
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	b.framePass = nil
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	b.frameView.Release()
	b.frameView = nil
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	b.dropFrame()

	for i := len(b.pipelines) - 1; i >= 0; i-- {
		if rp := b.pipelines[i].RenderPipeline(); rp != nil {
			rp.Release()
			b.pipelines[i].SetRenderPipeline(nil)
		}
	}
	b.pipelines = nil

	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	for i := len(b.moduleOrder) - 1; i >= 0; i-- {
		b.shaderModules[b.moduleOrder[i]].Release()
		delete(b.shaderModules, b.moduleOrder[i])
	}
	b.moduleOrder = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
