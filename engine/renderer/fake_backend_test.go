package renderer

import (
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type drawCall struct {
	pipeline   pipeline.Kind
	entryPoint string
	mesh       string
	indexCount int
	instances  uint32
	clear      wgpu.Color
}

// fakeBackend records every call instead of talking to a GPU.
type fakeBackend struct {
	config     SurfaceConfig
	configured [][2]int
	registered []pipeline.Pipeline
	meshes     map[string][2][]byte

	beginErr    error
	endErr      error
	registerErr error
	meshErr     error
	configErr   error

	clear    wgpu.Color
	inFrame  bool
	draws    []drawCall
	presents int
	releases int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		config: SurfaceConfig{Format: wgpu.TextureFormatBGRA8UnormSrgb, FrameLatency: defaultFrameLatency},
		meshes: make(map[string][2][]byte),
	}
}

func (f *fakeBackend) SurfaceConfig() SurfaceConfig { return f.config }

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	if f.configErr != nil {
		return f.configErr
	}
	f.configured = append(f.configured, [2]int{width, height})
	f.config.Width, f.config.Height = uint32(width), uint32(height)
	return nil
}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, p)
	return nil
}

func (f *fakeBackend) InitMeshBuffers(m mesh.Mesh, vertexData, indexData []byte, indexCount int) error {
	if f.meshErr != nil {
		return f.meshErr
	}
	f.meshes[m.Label()] = [2][]byte{vertexData, indexData}
	m.SetIndexCount(indexCount)
	return nil
}

func (f *fakeBackend) BeginFrame(clear wgpu.Color) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.clear = clear
	f.inFrame = true
	return nil
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, m mesh.Mesh, instanceCount uint32) {
	f.draws = append(f.draws, drawCall{
		pipeline:   p.Kind(),
		entryPoint: p.VertexEntryPoint(),
		mesh:       m.Label(),
		indexCount: m.IndexCount(),
		instances:  instanceCount,
		clear:      f.clear,
	})
}

func (f *fakeBackend) EndFrame() error {
	f.inFrame = false
	return f.endErr
}

func (f *fakeBackend) Present() { f.presents++ }

func (f *fakeBackend) Release() { f.releases++ }

// fakeHost is a window without a native surface.
type fakeHost struct {
	width, height int
	redraws       int
	exits         int
}

func (h *fakeHost) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (h *fakeHost) Width() int                                 { return h.width }
func (h *fakeHost) Height() int                                { return h.height }
func (h *fakeHost) RequestRedraw()                             { h.redraws++ }
func (h *fakeHost) Exit()                                      { h.exits++ }
