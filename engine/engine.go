package engine

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/window"
)

// engine implements the Engine interface.
// Dispatches window events to the render state on the window thread.
type engine struct {
	window window.Window
	state  renderer.State

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
}

// Engine is the main entry point for the engine.
// It owns the event loop and forwards window events to the render state.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// State returns the render state receiving events.
	//
	// Returns:
	//   - renderer.State: the render state
	State() renderer.State

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run delivers the initial resize and runs the window message loop.
	// Blocks until the window exits.
	//
	// Returns:
	//   - error: error if the engine has no window or no state
	Run() error

	// Quit asks the window to exit. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Window callbacks are registered when both a window and a state are set.
//
// Parameters:
//   - options: functional options for engine configuration (window, state, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.state != nil {
		e.registerCallbacks()
	}

	return e
}

func (e *engine) registerCallbacks() {
	e.window.SetResizeCallback(func(width, height int) {
		e.resize(width, height)
	})
	e.window.SetKeyCallback(func(keyCode uint32, pressed bool) {
		e.state.HandleKey(keyCode, pressed)
	})
	e.window.SetCursorCallback(func(x, y float64) {
		e.state.HandleMouseMoved(x, y)
	})
	e.window.SetCloseCallback(func() {
		common.Logger().Info("close requested")
		e.Quit()
	})
	e.window.SetRedrawCallback(e.redraw)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) State() renderer.State {
	return e.state
}

func (e *engine) Run() error {
	if e.window == nil {
		return errors.New("engine has no window")
	}
	if e.state == nil {
		return errors.New("engine has no render state")
	}

	e.lastFrame = time.Now()
	e.resize(e.window.Width(), e.window.Height())
	e.window.ProcessMessages()
	return nil
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.Exit()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) resize(width, height int) {
	e.state.Resize(width, height)
	if e.profilingEnabled {
		e.profiler.SurfaceReconfigured()
	}
}

// redraw runs one Update and Render. Lost or outdated surfaces are reconfigured at the current
// window size; every other render error drops the frame.
func (e *engine) redraw() {
	e.state.Update()
	if err := e.state.Render(); err != nil {
		e.handleRenderError(err)
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(e.lastFrame); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	e.lastFrame = time.Now()
}

func (e *engine) handleRenderError(err error) {
	if se, ok := renderer.AsSurfaceError(err); ok && se.Recoverable() {
		width, height := e.window.Width(), e.window.Height()
		common.Logger().Warn("surface needs reconfiguration",
			"kind", se.Kind.String(),
			"width", width,
			"height", height,
			"error", err,
		)
		e.resize(width, height)
		return
	}

	common.Logger().Error("frame dropped", "error", err)
	if e.profilingEnabled {
		e.profiler.FrameDropped()
	}
}
