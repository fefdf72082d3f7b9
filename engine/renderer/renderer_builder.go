package renderer

// StateBuilderOption is a functional option applied to a state during construction via NewState.
type StateBuilderOption func(*state)

// WithPlatform overrides the platform detected from runtime.GOOS and runtime.GOARCH.
// The platform selects the backend set and the device limits.
//
// Parameters:
//   - p: the Platform to request the device for
//
// Returns:
//   - StateBuilderOption: a function that applies the platform option to a state
func WithPlatform(p Platform) StateBuilderOption {
	return func(s *state) {
		s.platform = p
	}
}

// WithBackend uses b instead of creating a wgpu backend from the host's surface.
//
// Parameters:
//   - b: the RendererBackend to render with
//
// Returns:
//   - StateBuilderOption: a function that applies the backend option to a state
func WithBackend(b RendererBackend) StateBuilderOption {
	return func(s *state) {
		s.backend = b
	}
}

// WithShaderSource replaces the embedded WGSL program. The program must declare the
// vs_solid, vs_main and fs_main entry points.
//
// Parameters:
//   - source: the WGSL source code
//
// Returns:
//   - StateBuilderOption: a function that applies the shader source option to a state
func WithShaderSource(source string) StateBuilderOption {
	return func(s *state) {
		s.shaderSource = source
	}
}

// WithPresentMode sets the preferred surface present mode. When the surface does not
// support it the first supported mode is used.
//
// Parameters:
//   - mode: the PresentMode to prefer
//
// Returns:
//   - StateBuilderOption: a function that applies the present mode option to a state
func WithPresentMode(mode PresentMode) StateBuilderOption {
	return func(s *state) {
		s.presentMode = mode
	}
}
