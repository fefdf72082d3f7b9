package pipeline

import (
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-shapes/engine/model"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubShader is a shader.Shader with fixed entry points and layout, no compilation involved.
type stubShader struct {
	vertex   []string
	fragment []string
	layout   wgpu.VertexBufferLayout
}

func newStubShader() *stubShader {
	return &stubShader{
		vertex:   []string{shader.EntrySolidVertex, shader.EntryColoredVertex},
		fragment: []string{shader.EntryFragment},
		layout:   model.VertexLayout(),
	}
}

func (s *stubShader) Key() string    { return "stub" }
func (s *stubShader) Source() string { return "" }
func (s *stubShader) EntryPoints(stage shader.Stage) []string {
	if stage == shader.StageVertex {
		return s.vertex
	}
	return s.fragment
}
func (s *stubShader) HasEntryPoint(stage shader.Stage, name string) bool {
	return slices.Contains(s.EntryPoints(stage), name)
}
func (s *stubShader) VertexLayout() wgpu.VertexBufferLayout { return s.layout }
func (s *stubShader) SPIRV() []byte                         { return nil }
func (s *stubShader) Module() *wgpu.ShaderModuleDescriptor  { return nil }

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline("solid", KindSolid)

	assert.Equal(t, "solid", p.PipelineKey())
	assert.Equal(t, KindSolid, p.Kind())
	assert.Equal(t, shader.EntrySolidVertex, p.VertexEntryPoint())
	assert.Equal(t, shader.EntryFragment, p.FragmentEntryPoint())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Equal(t, uint32(1), p.SampleCount())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendFactorOne, p.BlendState().Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorZero, p.BlendState().Color.DstFactor)
	assert.Nil(t, p.Shader())
	assert.Nil(t, p.RenderPipeline())

	assert.Equal(t, shader.EntryColoredVertex, NewPipeline("colored", KindColored).VertexEntryPoint())
}

func TestNewPipeline_Options(t *testing.T) {
	s := newStubShader()
	blend := &wgpu.BlendState{}
	p := NewPipeline("custom", KindColored,
		WithShader(s),
		WithVertexEntryPoint("vs_other"),
		WithFragmentEntryPoint("fs_other"),
		WithCullMode(wgpu.CullModeNone),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendState(blend),
	)

	assert.Same(t, s, p.Shader())
	assert.Equal(t, "vs_other", p.VertexEntryPoint())
	assert.Equal(t, "fs_other", p.FragmentEntryPoint())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
	assert.Same(t, blend, p.BlendState())
}

func TestPipeline_Validate(t *testing.T) {
	layout := model.VertexLayout()

	assert.NoError(t, NewPipeline("solid", KindSolid, WithShader(newStubShader())).Validate(layout))
	assert.NoError(t, NewPipeline("colored", KindColored, WithShader(newStubShader())).Validate(layout))

	t.Run("no shader", func(t *testing.T) {
		assert.ErrorContains(t, NewPipeline("p", KindSolid).Validate(layout), "no shader")
	})
	t.Run("missing vertex entry", func(t *testing.T) {
		p := NewPipeline("p", KindSolid, WithShader(newStubShader()), WithVertexEntryPoint("nope"))
		assert.ErrorContains(t, p.Validate(layout), "no vertex entry point")
	})
	t.Run("missing fragment entry", func(t *testing.T) {
		s := newStubShader()
		s.fragment = nil
		assert.ErrorContains(t, NewPipeline("p", KindSolid, WithShader(s)).Validate(layout), "no fragment entry point")
	})
	t.Run("stride mismatch", func(t *testing.T) {
		s := newStubShader()
		s.layout.ArrayStride = 12
		assert.ErrorContains(t, NewPipeline("p", KindSolid, WithShader(s)).Validate(layout), "stride")
	})
	t.Run("attribute mismatch", func(t *testing.T) {
		s := newStubShader()
		s.layout.Attributes = []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 0},
		}
		assert.ErrorContains(t, NewPipeline("p", KindSolid, WithShader(s)).Validate(layout), "attribute 0 mismatch")
	})
}

func TestPipeline_Descriptor(t *testing.T) {
	p := NewPipeline("colored", KindColored, WithShader(newStubShader()))
	desc := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8UnormSrgb)

	assert.Equal(t, "colored Render Pipeline", desc.Label)
	assert.Equal(t, shader.EntryColoredVertex, desc.Vertex.EntryPoint)
	require.Len(t, desc.Vertex.Buffers, 1)
	assert.Equal(t, uint64(model.VertexSize), desc.Vertex.Buffers[0].ArrayStride)
	require.NotNil(t, desc.Fragment)
	assert.Equal(t, shader.EntryFragment, desc.Fragment.EntryPoint)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, desc.Fragment.Targets[0].Format)
	assert.Equal(t, wgpu.ColorWriteMaskAll, desc.Fragment.Targets[0].WriteMask)
	assert.Equal(t, wgpu.CullModeBack, desc.Primitive.CullMode)
	assert.Nil(t, desc.DepthStencil)
	assert.Equal(t, uint32(1), desc.Multisample.Count)
	assert.Equal(t, uint32(0xFFFFFFFF), desc.Multisample.Mask)
	assert.False(t, desc.Multisample.AlphaToCoverageEnabled)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Solid", KindSolid.String())
	assert.Equal(t, "Colored", KindColored.String())
	assert.Equal(t, "Kind(3)", Kind(3).String())
	assert.Equal(t, KindColored, KindSolid.Next())
	assert.Equal(t, KindSolid, KindColored.Next())
}
