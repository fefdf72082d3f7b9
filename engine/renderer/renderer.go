package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/model"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// clearBlue is the constant blue channel of the clear color.
const clearBlue = 0.3

// Host is the window side of the render state. engine/window.Window satisfies it.
type Host interface {
	// SurfaceDescriptor returns the platform surface descriptor for the window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, nil if the window has no native handle
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int

	// RequestRedraw schedules another RedrawRequested event.
	RequestRedraw()

	// Exit asks the host to close the window and stop the event loop.
	Exit()
}

// state is the implementation of the State interface.
type state struct {
	mu *sync.Mutex

	host    Host
	backend RendererBackend

	shader    shader.Shader
	pipelines map[pipeline.Kind]pipeline.Pipeline
	meshes    map[model.ShapeKind]mesh.Mesh

	shape    model.ShapeKind
	pipeline pipeline.Kind
	tint     [2]float64

	width, height int
	configured    bool
	released      bool

	// Pre-creation config collected from builder options
	platform     Platform
	presentMode  PresentMode
	shaderSource string
}

// State owns every GPU resource of the demo and reacts to host events. It draws one of two
// shapes with one of two pipelines over a clear color tinted by the mouse position.
//
// Space toggles the shape and the pipeline together, so only (Pentagon, Solid) and
// (Star, Colored) are reachable. Escape asks the host to exit.
type State interface {
	// Resize records the new surface size and reconfigures the surface.
	// A zero or negative dimension is ignored, which happens while the window is minimized.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// HandleKey reacts to a key transition. Escape-down exits and Space-down toggles the
	// shape and pipeline. Every other key and every key release is ignored.
	//
	// Parameters:
	//   - code: the key code, see common.KeySpace and common.KeyEsc
	//   - pressed: true for a press, false for a release
	HandleKey(code uint32, pressed bool)

	// HandleMouseMoved stores the cursor position normalized by the surface size as the clear color tint.
	//
	// Parameters:
	//   - x: the cursor x position in pixels
	//   - y: the cursor y position in pixels
	HandleMouseMoved(x, y float64)

	// Update is the per-frame hook called before Render. It currently changes nothing.
	Update()

	// Render requests the next redraw and draws one frame. It returns nil without drawing until
	// the first successful Resize.
	//
	// Returns:
	//   - error: a *SurfaceError if the frame was dropped
	Render() error

	// Shape returns the selected shape.
	//
	// Returns:
	//   - model.ShapeKind: the shape drawn by the next Render
	Shape() model.ShapeKind

	// Pipeline returns the selected pipeline.
	//
	// Returns:
	//   - pipeline.Kind: the pipeline used by the next Render
	Pipeline() pipeline.Kind

	// Tint returns the normalized mouse position used for the red and green clear channels.
	//
	// Returns:
	//   - [2]float64: the tint, both components in [0, 1]
	Tint() [2]float64

	// ClearColor returns the color the next frame clears to.
	//
	// Returns:
	//   - wgpu.Color: (tintX, tintY, 0.3, 1)
	ClearColor() wgpu.Color

	// SurfaceConfigured reports whether a Resize has configured the surface.
	//
	// Returns:
	//   - bool: true once a Resize with positive dimensions succeeded
	SurfaceConfigured() bool

	// SurfaceSize returns the last accepted surface size.
	//
	// Returns:
	//   - int: the width in pixels
	//   - int: the height in pixels
	SurfaceSize() (int, int)

	// Release releases every GPU resource in reverse acquisition order. Safe to call more than once.
	Release()
}

var _ State = &state{}

// NewState creates the GPU context, compiles both pipelines and uploads both shapes.
// It is the only call that waits on the platform and must finish before any event is dispatched.
//
// Parameters:
//   - ctx: cancels initialization between GPU negotiation steps
//   - host: the window that owns the surface
//   - options: variadic list of StateBuilderOption functions to configure the State
//
// Returns:
//   - State: the initialized render state
//   - error: an *InitError or *PipelineBuildError
func NewState(ctx context.Context, host Host, options ...StateBuilderOption) (State, error) {
	if host == nil {
		return nil, &InitError{Stage: "host", Err: errors.New("nil host")}
	}

	s := &state{
		mu:           &sync.Mutex{},
		host:         host,
		pipelines:    make(map[pipeline.Kind]pipeline.Pipeline, len(pipeline.Kinds)),
		meshes:       make(map[model.ShapeKind]mesh.Mesh, len(model.ShapeKinds)),
		shape:        model.ShapePentagon,
		pipeline:     pipeline.KindSolid,
		width:        host.Width(),
		height:       host.Height(),
		platform:     PlatformForTarget(runtime.GOOS, runtime.GOARCH),
		shaderSource: shader.ShapesSource,
	}

	// Apply options first so the platform and backend are known before the GPU is touched.
	for _, opt := range options {
		opt(s)
	}

	if s.backend == nil {
		backend, err := newWGPURendererBackend(ctx, host.SurfaceDescriptor(), s.platform.Profile(), s.presentMode, s.width, s.height)
		if err != nil {
			return nil, err
		}
		s.backend = backend
	}

	if err := s.init(ctx); err != nil {
		s.Release()
		return nil, err
	}

	common.Logger().Info("render state ready",
		"platform", s.platform.String(),
		"shape", s.shape.String(),
		"pipeline", s.pipeline.String(),
	)
	return s, nil
}

func (s *state) init(ctx context.Context) error {
	sh, err := shader.NewShader(shader.ShapesShaderKey, s.shaderSource)
	if err != nil {
		return &PipelineBuildError{Pipeline: shader.ShapesShaderKey, Err: err}
	}
	s.shader = sh

	layout := model.VertexLayout()
	for _, kind := range pipeline.Kinds {
		// The two pipelines differ only in their vertex entry point.
		p := pipeline.NewPipeline(kind.String(), kind,
			pipeline.WithShader(sh),
			pipeline.WithVertexEntryPoint(kind.VertexEntryPoint()),
			pipeline.WithFragmentEntryPoint(shader.EntryFragment),
			pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
			pipeline.WithFrontFace(wgpu.FrontFaceCCW),
			pipeline.WithCullMode(wgpu.CullModeBack),
			pipeline.WithWriteMask(wgpu.ColorWriteMaskAll),
		)
		if err := p.Validate(layout); err != nil {
			return &PipelineBuildError{Pipeline: p.PipelineKey(), Err: err}
		}
		if err := s.backend.RegisterRenderPipeline(p); err != nil {
			return &PipelineBuildError{Pipeline: p.PipelineKey(), Err: err}
		}
		s.pipelines[kind] = p
	}

	for _, kind := range model.ShapeKinds {
		if err := ctx.Err(); err != nil {
			return &InitError{Stage: "buffers", Err: err}
		}
		shape, _ := model.Lookup(kind)
		if err := shape.Validate(); err != nil {
			return &InitError{Stage: "buffers", Err: err}
		}
		m := mesh.NewMesh(kind.String())
		if err := s.backend.InitMeshBuffers(m, shape.VertexBytes(), shape.IndexBytes(), shape.IndexCount()); err != nil {
			m.Release()
			return &InitError{Stage: "buffers", Err: fmt.Errorf("failed to upload %s: %w", kind, err)}
		}
		s.meshes[kind] = m
	}
	return nil
}

func (s *state) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.ConfigureSurface(width, height); err != nil {
		common.Logger().Error("surface configuration failed", "width", width, "height", height, "error", err)
		return
	}
	s.width, s.height = width, height
	s.configured = true
}

func (s *state) HandleKey(code uint32, pressed bool) {
	if !pressed {
		return
	}

	switch code {
	case common.KeyEsc:
		s.host.Exit()
	case common.KeySpace:
		s.mu.Lock()
		s.shape = s.shape.Next()
		s.pipeline = s.pipeline.Next()
		shape, kind := s.shape, s.pipeline
		s.mu.Unlock()

		common.Logger().Info("switched shape", "shape", shape.String(), "pipeline", kind.String())
	}
}

func (s *state) HandleMouseMoved(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tint[0] = common.Normalize(x, uint32(max(s.width, 0)))
	s.tint[1] = common.Normalize(y, uint32(max(s.height, 0)))
}

func (s *state) Update() {}

func (s *state) Render() error {
	s.host.RequestRedraw()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured || s.released {
		return nil
	}

	if err := s.backend.BeginFrame(s.clearColor()); err != nil {
		return classifySurfaceError(err)
	}
	s.backend.DrawCall(s.pipelines[s.pipeline], s.meshes[s.shape], 1)
	if err := s.backend.EndFrame(); err != nil {
		return classifySurfaceError(err)
	}
	s.backend.Present()
	return nil
}

func (s *state) clearColor() wgpu.Color {
	return wgpu.Color{R: s.tint[0], G: s.tint[1], B: clearBlue, A: 1.0}
}

func (s *state) Shape() model.ShapeKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shape
}

func (s *state) Pipeline() pipeline.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline
}

func (s *state) Tint() [2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tint
}

func (s *state) ClearColor() wgpu.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearColor()
}

func (s *state) SurfaceConfigured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured
}

func (s *state) SurfaceSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *state) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true

	for i := len(model.ShapeKinds) - 1; i >= 0; i-- {
		if m, ok := s.meshes[model.ShapeKinds[i]]; ok {
			m.Release()
		}
	}
	if s.backend != nil {
		s.backend.Release()
	}
	s.configured = false
}
