package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyCallback sets the callback for key transitions. Key repeats are reported as presses.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code and whether the key is down
	SetKeyCallback(callback func(keyCode uint32, pressed bool))

	// SetCursorCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position in framebuffer pixels
	SetCursorCallback(callback func(x, y float64))

	// SetCloseCallback sets the callback for a close request from the title bar or the OS.
	// Without a callback a close request exits the window.
	//
	// Parameters:
	//   - callback: function to call (or nil to restore the default)
	SetCloseCallback(callback func())

	// SetRedrawCallback sets the callback run by ProcessMessages after RequestRedraw.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetRedrawCallback(callback func())

	// RequestRedraw schedules one redraw callback on the next message loop iteration.
	RequestRedraw()

	// Exit stops the message loop after the current iteration.
	Exit()

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window exits. Runs the redraw callback whenever a redraw was requested.
	ProcessMessages()

	// Title returns the window title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// platformWindow is the native side of a window.
type platformWindow interface {
	// pollEvents dispatches pending native events to the engineWindow handlers.
	pollEvents()
	// windowSize returns the window size in screen coordinates, which may differ from the
	// framebuffer size on high-DPI displays.
	windowSize() (int, int)
	shouldClose() bool
	requestClose()
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	destroy()
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and event callbacks.
type engineWindow struct {
	title string

	maxWidth, maxHeight int
	minWidth, minHeight int
	resizable           bool

	// width and height are the current framebuffer size in pixels.
	width, height int

	// internalWindow holds the platform-specific window.
	internalWindow platformWindow

	running         bool
	redrawRequested bool

	onResize func(width, height int)
	onKey    func(keyCode uint32, pressed bool)
	onCursor func(x, y float64)
	onClose  func()
	onRedraw func()
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window, with one redraw already requested
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

const (
	defaultTitle  = "WGPU Application"
	defaultWidth  = 800
	defaultHeight = 600
)

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		resizable:       true,
		running:         true,
		redrawRequested: true,
	}
	for _, opt := range options {
		opt(w)
	}

	// Unset or zeroed options fall back to the defaults.
	w.title = common.Coalesce(w.title, defaultTitle)
	w.width = common.Coalesce(max(w.width, 0), defaultWidth)
	w.height = common.Coalesce(max(w.height, 0), defaultHeight)
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyCallback(callback func(keyCode uint32, pressed bool)) {
	w.onKey = callback
}

func (w *engineWindow) SetCursorCallback(callback func(x, y float64)) {
	w.onCursor = callback
}

func (w *engineWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *engineWindow) SetRedrawCallback(callback func()) {
	w.onRedraw = callback
}

func (w *engineWindow) RequestRedraw() {
	w.redrawRequested = true
}

func (w *engineWindow) Exit() {
	w.running = false
	if w.internalWindow != nil {
		w.internalWindow.requestClose()
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	return w.internalWindow.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	if w.internalWindow == nil {
		return false
	}
	return w.running && !w.internalWindow.shouldClose()
}

func (w *engineWindow) Close() error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	w.running = false
	w.internalWindow.destroy()
	w.internalWindow = nil
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.internalWindow.pollEvents()
		if !w.IsRunning() {
			break
		}

		if w.redrawRequested {
			w.redrawRequested = false
			if w.onRedraw != nil {
				w.onRedraw()
			}
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleResize stores the framebuffer size and forwards it.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) handleKey(keyCode uint32, pressed bool) {
	if w.onKey != nil {
		w.onKey(keyCode, pressed)
	}
}

// handleCursor converts a cursor position from screen coordinates to framebuffer pixels
// and forwards it.
func (w *engineWindow) handleCursor(x, y float64) {
	if w.internalWindow != nil {
		if winW, winH := w.internalWindow.windowSize(); winW > 0 && winH > 0 {
			x *= float64(w.width) / float64(winW)
			y *= float64(w.height) / float64(winH)
		}
	}
	if w.onCursor != nil {
		w.onCursor(x, y)
	}
}

// handleClose runs the close callback, or exits when none is set.
func (w *engineWindow) handleClose() {
	if w.onClose != nil {
		w.onClose()
		return
	}
	w.Exit()
}
