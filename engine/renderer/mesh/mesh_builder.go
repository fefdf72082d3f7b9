package mesh

import "github.com/cogentcore/webgpu/wgpu"

// MeshBuilderOption is a functional option used to configure a Mesh during construction.
type MeshBuilderOption func(*mesh)

// WithIndexCount sets the initial index count.
//
// Parameters:
//   - count: the number of indices to draw
//
// Returns:
//   - MeshBuilderOption: a function that sets the index count
func WithIndexCount(count int) MeshBuilderOption {
	return func(m *mesh) {
		m.indexCount = count
	}
}

// WithIndexFormat sets the index element format.
//
// Parameters:
//   - format: wgpu.IndexFormatUint16 or wgpu.IndexFormatUint32
//
// Returns:
//   - MeshBuilderOption: a function that sets the index format
func WithIndexFormat(format wgpu.IndexFormat) MeshBuilderOption {
	return func(m *mesh) {
		m.indexFormat = format
	}
}
