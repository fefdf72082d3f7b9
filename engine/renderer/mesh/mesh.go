package mesh

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// mesh is the unexported implementation of Mesh.
type mesh struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// vertexBuffer is the GPU vertex buffer created for this mesh, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer created for this mesh, or nil if not initialized with the Renderer.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices for draw calls. It excludes any alignment padding in the index buffer.
	indexCount int
	// indexFormat is the element type of the index buffer.
	indexFormat wgpu.IndexFormat
}

// Mesh holds the GPU vertex and index buffers of one shape together with the index count used
// for indexed draws. The Renderer creates the buffers once at startup and never re-uploads them.
//
// Usage pattern:
//  1. Caller creates a Mesh with a label
//  2. Renderer.InitMeshBuffers(mesh, vertices, indices, count) creates the GPU buffers
//  3. The render pass binds VertexBuffer() and IndexBuffer() and draws IndexCount() indices
type Mesh interface {
	// Release releases the GPU buffers held by this mesh. Safe to call more than once.
	Release()

	// Label returns the debug label for this mesh.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// IndexFormat returns the index element format, wgpu.IndexFormatUint16 unless overridden.
	//
	// Returns:
	//   - wgpu.IndexFormat: the index format
	IndexFormat() wgpu.IndexFormat

	// SetVertexBuffer stores the GPU vertex buffer after creation by InitMeshBuffers.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the GPU index buffer after creation by InitMeshBuffers.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh with no GPU resources.
//
// Parameters:
//   - label: a debug label for the mesh
//   - options: a variadic list of MeshBuilderOption functions
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(label string, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		label:       label,
		indexFormat: wgpu.IndexFormatUint16,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mesh) Label() string {
	return m.label
}

func (m *mesh) VertexBuffer() *wgpu.Buffer {
	return m.vertexBuffer
}

func (m *mesh) IndexBuffer() *wgpu.Buffer {
	return m.indexBuffer
}

func (m *mesh) IndexCount() int {
	return m.indexCount
}

func (m *mesh) IndexFormat() wgpu.IndexFormat {
	return m.indexFormat
}

func (m *mesh) SetVertexBuffer(buf *wgpu.Buffer) {
	m.vertexBuffer = buf
}

func (m *mesh) SetIndexBuffer(buf *wgpu.Buffer) {
	m.indexBuffer = buf
}

func (m *mesh) SetIndexCount(count int) {
	m.indexCount = count
}

func (m *mesh) Release() {
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
}
