package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Kind identifies which shading pipeline draws the current shape.
type Kind int

const (
	// KindSolid shades every fragment solid red.
	KindSolid Kind = iota

	// KindColored interpolates the per-vertex colors.
	KindColored
)

// Kinds lists every Kind in creation order.
var Kinds = []Kind{KindSolid, KindColored}

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "Solid"
	case KindColored:
		return "Colored"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Next returns the other pipeline kind.
func (k Kind) Next() Kind {
	if k == KindSolid {
		return KindColored
	}
	return KindSolid
}

// VertexEntryPoint returns the vertex entry point in shader.ShapesSource that implements this kind.
func (k Kind) VertexEntryPoint() string {
	if k == KindColored {
		return shader.EntryColoredVertex
	}
	return shader.EntrySolidVertex
}

// sampleCount is fixed, multisampling is not supported.
const sampleCount = 1

// pipeline is the implementation of the Pipeline interface.
// It holds the render state needed to create one wgpu.RenderPipeline and the created pipeline itself.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for labels and lookups
	pipelineKey string
	kind        Kind

	shader         shader.Shader
	vertexEntry    string
	fragmentEntry  string
	renderPipeline *wgpu.RenderPipeline

	// The following properties can be toggled/set with the builder options.

	cullMode   wgpu.CullMode
	topology   wgpu.PrimitiveTopology
	frontFace  wgpu.FrontFace
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState
}

// Pipeline describes a render pipeline: the shader program, its vertex and fragment entry points,
// and the fixed-function state. The backend turns it into a wgpu.RenderPipeline.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Kind returns the pipeline kind this pipeline implements.
	//
	// Returns:
	//   - Kind: KindSolid or KindColored
	Kind() Kind

	// Shader retrieves the shader program used by both stages.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if not set
	Shader() shader.Shader

	// VertexEntryPoint returns the vertex stage entry point name.
	//
	// Returns:
	//   - string: the vertex entry point
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point name.
	//
	// Returns:
	//   - string: the fragment entry point
	FragmentEntryPoint() string

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// SampleCount returns the multisample count, always 1.
	//
	// Returns:
	//   - uint32: the sample count
	SampleCount() uint32

	// Validate checks that the shader is set, both entry points exist in it, and the shader's
	// vertex input layout matches the layout of the vertex buffers that will be bound.
	//
	// Parameters:
	//   - layout: the vertex buffer layout the draw calls will use
	//
	// Returns:
	//   - error: the first mismatch found, or nil
	Validate(layout wgpu.VertexBufferLayout) error

	// Descriptor builds the render pipeline descriptor for the given compiled module, layout and target format.
	//
	// Parameters:
	//   - module: the compiled shader module
	//   - layout: the pipeline layout
	//   - format: the color target format, normally the surface format
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor to pass to CreateRenderPipeline
	Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor

	// RenderPipeline returns the created GPU pipeline, nil until SetRenderPipeline is called.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline. The vertex entry point defaults to the
// one that implements kind and the fragment entry point to shader.EntryFragment.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - kind: the pipeline kind this pipeline implements
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified kind and configuration
func NewPipeline(pipelineKey string, kind Kind, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:   pipelineKey,
		kind:          kind,
		vertexEntry:   kind.VertexEntryPoint(),
		fragmentEntry: shader.EntryFragment,
		cullMode:      wgpu.CullModeBack,
		topology:      wgpu.PrimitiveTopologyTriangleList,
		frontFace:     wgpu.FrontFaceCCW,
		writeMask:     wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorZero,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorZero,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Kind() Kind {
	return p.kind
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntry
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SampleCount() uint32 {
	return sampleCount
}

func (p *pipeline) Validate(layout wgpu.VertexBufferLayout) error {
	if p.shader == nil {
		return fmt.Errorf("pipeline %s: no shader", p.pipelineKey)
	}
	if !p.shader.HasEntryPoint(shader.StageVertex, p.vertexEntry) {
		return fmt.Errorf("pipeline %s: shader %s has no vertex entry point %q", p.pipelineKey, p.shader.Key(), p.vertexEntry)
	}
	if !p.shader.HasEntryPoint(shader.StageFragment, p.fragmentEntry) {
		return fmt.Errorf("pipeline %s: shader %s has no fragment entry point %q", p.pipelineKey, p.shader.Key(), p.fragmentEntry)
	}

	got := p.shader.VertexLayout()
	if got.ArrayStride != layout.ArrayStride {
		return fmt.Errorf("pipeline %s: shader vertex stride %d, buffer stride %d", p.pipelineKey, got.ArrayStride, layout.ArrayStride)
	}
	if len(got.Attributes) != len(layout.Attributes) {
		return fmt.Errorf("pipeline %s: shader declares %d vertex attributes, buffer has %d", p.pipelineKey, len(got.Attributes), len(layout.Attributes))
	}
	for i, attr := range got.Attributes {
		if attr != layout.Attributes[i] {
			return fmt.Errorf("pipeline %s: vertex attribute %d mismatch: shader %+v, buffer %+v", p.pipelineKey, i, attr, layout.Attributes[i])
		}
	}
	return nil
}

func (p *pipeline) Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	var buffers []wgpu.VertexBufferLayout
	if p.shader != nil {
		buffers = []wgpu.VertexBufferLayout{p.shader.VertexLayout()}
	}
	return &wgpu.RenderPipelineDescriptor{
		Label:  p.pipelineKey + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.vertexEntry,
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.fragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     p.blendState,
				WriteMask: p.writeMask,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
