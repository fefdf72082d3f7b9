package renderer

import (
	"errors"
	"slices"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// defaultFrameLatency is the maximum number of frames queued for presentation.
const defaultFrameLatency = 2

// Platform identifies the kind of host the renderer runs in.
type Platform int

const (
	// PlatformNative is a desktop host with the full primary backend set.
	PlatformNative Platform = iota

	// PlatformWeb is a browser or otherwise sandboxed host limited to WebGL2 class devices.
	PlatformWeb
)

func (p Platform) String() string {
	if p == PlatformWeb {
		return "web"
	}
	return "native"
}

// PlatformForTarget resolves the Platform for a GOOS/GOARCH pair.
//
// Parameters:
//   - goos: the target operating system, usually runtime.GOOS
//   - goarch: the target architecture, usually runtime.GOARCH
//
// Returns:
//   - Platform: PlatformWeb for js/wasm, PlatformNative otherwise
func PlatformForTarget(goos, goarch string) Platform {
	if goos == "js" && goarch == "wasm" {
		return PlatformWeb
	}
	return PlatformNative
}

// PlatformProfile is the backend set and device limits requested for a Platform.
type PlatformProfile struct {
	Backends wgpu.InstanceBackend
	Limits   wgpu.Limits
}

// Profile returns the backend preference and limit profile for this platform.
// Web hosts get the downlevel WebGL2 limits, native hosts get the WebGPU defaults.
//
// Returns:
//   - PlatformProfile: the profile to request the device with
func (p Platform) Profile() PlatformProfile {
	if p == PlatformWeb {
		return PlatformProfile{
			Backends: wgpu.InstanceBackendGL,
			Limits:   downlevelWebGL2Limits(),
		}
	}
	return PlatformProfile{
		Backends: wgpu.InstanceBackendPrimary,
		Limits:   wgpu.DefaultLimits(),
	}
}

func downlevelWebGL2Limits() wgpu.Limits {
	limits := wgpu.DefaultLimits()
	limits.MaxTextureDimension1D = 2048
	limits.MaxTextureDimension2D = 2048
	limits.MaxTextureDimension3D = 256
	limits.MaxStorageBuffersPerShaderStage = 0
	limits.MaxStorageTexturesPerShaderStage = 0
	limits.MaxStorageBufferBindingSize = 0
	limits.MaxComputeWorkgroupStorageSize = 0
	limits.MaxComputeInvocationsPerWorkgroup = 0
	limits.MaxComputeWorkgroupSizeX = 0
	limits.MaxComputeWorkgroupSizeY = 0
	limits.MaxComputeWorkgroupSizeZ = 0
	limits.MaxComputeWorkgroupsPerDimension = 0
	return limits
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeAuto uses the first present mode the surface reports.
	PresentModeAuto PresentMode = iota

	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// SurfaceConfig is the negotiated surface configuration. FrameLatency is a hint kept for
// diagnostics; the binding's surface configuration has no field to forward it through.
type SurfaceConfig struct {
	Format       wgpu.TextureFormat
	PresentMode  wgpu.PresentMode
	AlphaMode    wgpu.CompositeAlphaMode
	Width        uint32
	Height       uint32
	FrameLatency uint32
}

// Configuration converts the config into the descriptor passed to Surface.Configure.
//
// Returns:
//   - *wgpu.SurfaceConfiguration: the render attachment surface configuration
func (c SurfaceConfig) Configuration() *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.Format,
		Width:       c.Width,
		Height:      c.Height,
		PresentMode: c.PresentMode,
		AlphaMode:   c.AlphaMode,
	}
}

// chooseSurfaceConfig picks the first sRGB format if any (else the first format), the
// preferred present mode if supported (else the first one) and the first alpha mode.
func chooseSurfaceConfig(
	formats []wgpu.TextureFormat,
	presentModes []wgpu.PresentMode,
	alphaModes []wgpu.CompositeAlphaMode,
	preferred PresentMode,
	width, height int,
) (SurfaceConfig, error) {
	if len(formats) == 0 {
		return SurfaceConfig{}, errors.New("surface reports no supported formats")
	}
	if len(presentModes) == 0 {
		return SurfaceConfig{}, errors.New("surface reports no supported present modes")
	}
	if len(alphaModes) == 0 {
		return SurfaceConfig{}, errors.New("surface reports no supported alpha modes")
	}

	srgb := slices.DeleteFunc(slices.Clone(formats), func(f wgpu.TextureFormat) bool { return !isSRGB(f) })
	format := common.First(srgb, common.First(formats, wgpu.TextureFormat(0)))

	presentMode := common.First(presentModes, wgpu.PresentMode(0))
	if want, ok := preferred.wgpuPresentMode(); ok && slices.Contains(presentModes, want) {
		presentMode = want
	}

	return SurfaceConfig{
		Format:       format,
		PresentMode:  presentMode,
		AlphaMode:    common.First(alphaModes, wgpu.CompositeAlphaMode(0)),
		Width:        uint32(max(width, 0)),
		Height:       uint32(max(height, 0)),
		FrameLatency: defaultFrameLatency,
	}, nil
}

func (m PresentMode) wgpuPresentMode() (wgpu.PresentMode, bool) {
	switch m {
	case PresentModeVSync:
		return wgpu.PresentModeFifo, true
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate, true
	default:
		return 0, false
	}
}

func isSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// RendererBackend is the GPU side of the render state. The wgpu implementation owns the
// instance, surface, adapter, device and queue; tests substitute a recording fake.
type RendererBackend interface {
	// SurfaceConfig returns the negotiated surface configuration.
	//
	// Returns:
	//   - SurfaceConfig: the current configuration
	SurfaceConfig() SurfaceConfig

	// ConfigureSurface reconfigures the surface for a new pixel size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	ConfigureSurface(width, height int) error

	// RegisterRenderPipeline compiles the pipeline's shader module (once per shader key), creates the
	// shared empty pipeline layout on first use, and creates the render pipeline.
	// The result is stored on the Pipeline via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if the module or pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates immutable vertex and index buffers and stores them on the mesh.
	//
	// Parameters:
	//   - m: the Mesh to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices represented in indexData, used for draw calls
	//
	// Returns:
	//   - error: an error if the buffers could not be created, otherwise nil
	InitMeshBuffers(m mesh.Mesh, vertexData, indexData []byte, indexCount int) error

	// BeginFrame acquires the next surface texture, creates a command encoder, and begins
	// the single render pass clearing to the given color. Must be paired with EndFrame.
	//
	// Parameters:
	//   - clear: the clear color of the color attachment
	//
	// Returns:
	//   - error: a *SurfaceError if the surface texture could not be acquired
	BeginFrame(clear wgpu.Color) error

	// DrawCall encodes one indexed draw of the mesh's full index range in the current render pass.
	//
	// Parameters:
	//   - p: the registered pipeline to bind
	//   - m: the mesh holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	DrawCall(p pipeline.Pipeline, m mesh.Mesh, instanceCount uint32)

	// EndFrame ends the render pass and submits the command buffer. Call Present afterwards.
	//
	// Returns:
	//   - error: a *SurfaceError if encoding could not be finished
	EndFrame() error

	// Present presents the acquired surface texture and releases the frame's references.
	Present()

	// Release releases every GPU object in reverse acquisition order. Safe to call more than once.
	Release()
}
