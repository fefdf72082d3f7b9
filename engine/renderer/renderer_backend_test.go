package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformForTarget(t *testing.T) {
	assert.Equal(t, PlatformWeb, PlatformForTarget("js", "wasm"))
	assert.Equal(t, PlatformNative, PlatformForTarget("linux", "amd64"))
	assert.Equal(t, PlatformNative, PlatformForTarget("darwin", "arm64"))
	assert.Equal(t, PlatformNative, PlatformForTarget("wasip1", "wasm"))
}

func TestPlatform_Profile(t *testing.T) {
	native := PlatformNative.Profile()
	assert.Equal(t, wgpu.InstanceBackendPrimary, native.Backends)
	assert.Equal(t, wgpu.DefaultLimits(), native.Limits)

	web := PlatformWeb.Profile()
	assert.Equal(t, wgpu.InstanceBackendGL, web.Backends)
	assert.EqualValues(t, 2048, web.Limits.MaxTextureDimension2D)
	assert.EqualValues(t, 256, web.Limits.MaxTextureDimension3D)
	assert.EqualValues(t, 0, web.Limits.MaxStorageBuffersPerShaderStage)
	assert.EqualValues(t, 0, web.Limits.MaxComputeInvocationsPerWorkgroup)
	assert.Less(t, web.Limits.MaxTextureDimension2D, native.Limits.MaxTextureDimension2D)

	assert.Equal(t, "native", PlatformNative.String())
	assert.Equal(t, "web", PlatformWeb.String())
}

func TestChooseSurfaceConfig(t *testing.T) {
	alpha := []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque}

	t.Run("prefers srgb", func(t *testing.T) {
		cfg, err := chooseSurfaceConfig(
			[]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			[]wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate},
			alpha, PresentModeAuto, 800, 600,
		)
		require.NoError(t, err)
		assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, cfg.Format)
		assert.Equal(t, wgpu.PresentModeFifo, cfg.PresentMode)
		assert.Equal(t, wgpu.CompositeAlphaModeOpaque, cfg.AlphaMode)
		assert.Equal(t, uint32(800), cfg.Width)
		assert.Equal(t, uint32(600), cfg.Height)
		assert.Equal(t, uint32(2), cfg.FrameLatency)
	})

	t.Run("falls back to first format", func(t *testing.T) {
		cfg, err := chooseSurfaceConfig(
			[]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm},
			[]wgpu.PresentMode{wgpu.PresentModeFifo},
			alpha, PresentModeAuto, 0, -5,
		)
		require.NoError(t, err)
		assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, cfg.Format)
		assert.Equal(t, uint32(0), cfg.Height)
	})

	t.Run("preferred present mode", func(t *testing.T) {
		modes := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate}
		cfg, err := chooseSurfaceConfig([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}, modes, alpha, PresentModeUncapped, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, wgpu.PresentModeImmediate, cfg.PresentMode)

		cfg, err = chooseSurfaceConfig([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}, modes[:1], alpha, PresentModeUncapped, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, wgpu.PresentModeFifo, cfg.PresentMode)
	})

	t.Run("auto takes first reported mode", func(t *testing.T) {
		modes := []wgpu.PresentMode{wgpu.PresentModeMailbox, wgpu.PresentModeFifo, wgpu.PresentModeImmediate}
		cfg, err := chooseSurfaceConfig([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}, modes, alpha, PresentModeAuto, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, wgpu.PresentModeMailbox, cfg.PresentMode)
	})

	t.Run("empty capabilities", func(t *testing.T) {
		_, err := chooseSurfaceConfig(nil, []wgpu.PresentMode{wgpu.PresentModeFifo}, alpha, PresentModeAuto, 1, 1)
		assert.ErrorContains(t, err, "formats")
		_, err = chooseSurfaceConfig([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}, nil, alpha, PresentModeAuto, 1, 1)
		assert.ErrorContains(t, err, "present modes")
		_, err = chooseSurfaceConfig([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}, []wgpu.PresentMode{wgpu.PresentModeFifo}, nil, PresentModeAuto, 1, 1)
		assert.ErrorContains(t, err, "alpha modes")
	})
}

func TestSurfaceConfig_Configuration(t *testing.T) {
	cfg := SurfaceConfig{
		Format:      wgpu.TextureFormatBGRA8UnormSrgb,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   wgpu.CompositeAlphaModeOpaque,
		Width:       320,
		Height:      240,
	}
	c := cfg.Configuration()
	assert.Equal(t, wgpu.TextureUsageRenderAttachment, c.Usage)
	assert.Equal(t, cfg.Format, c.Format)
	assert.Equal(t, uint32(320), c.Width)
	assert.Equal(t, uint32(240), c.Height)
	assert.Equal(t, cfg.PresentMode, c.PresentMode)
	assert.Equal(t, cfg.AlphaMode, c.AlphaMode)
}

func TestClassifySurfaceError(t *testing.T) {
	assert.Nil(t, classifySurfaceError(nil))

	tests := map[string]SurfaceErrorKind{
		"Surface texture status: Outdated":    SurfaceOutdated,
		"surface LOST":                        SurfaceLost,
		"Timeout":                             SurfaceTimeout,
		"out of memory":                       SurfaceOutOfMemory,
		"GetCurrentTexture: OutOfMemory":      SurfaceOutOfMemory,
		"validation error: texture destroyed": SurfaceOther,
	}
	for msg, kind := range tests {
		se := classifySurfaceError(errors.New(msg))
		require.NotNil(t, se, msg)
		assert.Equal(t, kind, se.Kind, msg)
	}

	already := &SurfaceError{Kind: SurfaceTimeout, Err: errors.New("x")}
	assert.Same(t, already, classifySurfaceError(already))
}

func TestErrors(t *testing.T) {
	cause := errors.New("cause")

	initErr := &InitError{Stage: "device", Err: cause}
	assert.Equal(t, "renderer init failed at device: cause", initErr.Error())
	assert.ErrorIs(t, initErr, cause)

	buildErr := &PipelineBuildError{Pipeline: "Solid", Err: cause}
	assert.Equal(t, "pipeline Solid build failed: cause", buildErr.Error())
	assert.ErrorIs(t, buildErr, cause)

	se := &SurfaceError{Kind: SurfaceLost, Err: cause}
	assert.Equal(t, "surface Lost: cause", se.Error())
	assert.True(t, se.Recoverable())
	assert.False(t, (&SurfaceError{Kind: SurfaceOutOfMemory}).Recoverable())
	assert.Equal(t, "Other", SurfaceOther.String())
	assert.Equal(t, "Timeout", SurfaceTimeout.String())

	_, ok := AsSurfaceError(cause)
	assert.False(t, ok)
}
