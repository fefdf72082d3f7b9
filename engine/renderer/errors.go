package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// InitError reports a failure while negotiating the GPU instance, surface, adapter, device or
// geometry buffers. It is fatal: NewState returns it and no retry is attempted.
type InitError struct {
	// Stage names the initialization step that failed, e.g. "adapter" or "device".
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("renderer init failed at %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// PipelineBuildError reports a shader or render pipeline that could not be built.
type PipelineBuildError struct {
	// Pipeline is the key of the pipeline or shader that failed.
	Pipeline string
	Err      error
}

func (e *PipelineBuildError) Error() string {
	return fmt.Sprintf("pipeline %s build failed: %v", e.Pipeline, e.Err)
}

func (e *PipelineBuildError) Unwrap() error {
	return e.Err
}

// SurfaceErrorKind classifies a failure to acquire or present a surface texture.
type SurfaceErrorKind int

const (
	// SurfaceOther is any failure without a more specific kind.
	SurfaceOther SurfaceErrorKind = iota

	// SurfaceLost means the surface must be reconfigured before the next frame.
	SurfaceLost

	// SurfaceOutdated means the surface no longer matches the window, usually after a resize.
	SurfaceOutdated

	// SurfaceTimeout means no texture became available in time.
	SurfaceTimeout

	// SurfaceOutOfMemory means the presentation engine ran out of memory.
	SurfaceOutOfMemory
)

func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceLost:
		return "Lost"
	case SurfaceOutdated:
		return "Outdated"
	case SurfaceTimeout:
		return "Timeout"
	case SurfaceOutOfMemory:
		return "OutOfMemory"
	default:
		return "Other"
	}
}

// SurfaceError is returned by State.Render when a frame could not be produced.
// Lost and Outdated are recovered by resizing to the current window size; every other
// kind drops the frame.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("surface %s: %v", e.Kind, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether a resize to the current window size recovers from this error.
func (e *SurfaceError) Recoverable() bool {
	return e.Kind == SurfaceLost || e.Kind == SurfaceOutdated
}

// AsSurfaceError unwraps err into a *SurfaceError.
//
// Parameters:
//   - err: the error returned by Render
//
// Returns:
//   - *SurfaceError: the surface error, or nil
//   - bool: true if err wraps a *SurfaceError
func AsSurfaceError(err error) (*SurfaceError, bool) {
	var se *SurfaceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// classifySurfaceError maps a texture acquisition error reported by the GPU binding to a
// *SurfaceError. The binding only reports the acquisition status as text.
func classifySurfaceError(err error) *SurfaceError {
	if err == nil {
		return nil
	}
	var se *SurfaceError
	if errors.As(err, &se) {
		return se
	}

	msg := strings.ToLower(err.Error())
	kind := SurfaceOther
	switch {
	case strings.Contains(msg, "outdated"):
		kind = SurfaceOutdated
	case strings.Contains(msg, "lost"):
		kind = SurfaceLost
	case strings.Contains(msg, "timeout"):
		kind = SurfaceTimeout
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "outofmemory"):
		kind = SurfaceOutOfMemory
	}
	return &SurfaceError{Kind: kind, Err: err}
}
