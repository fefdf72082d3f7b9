package model

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexSize is the byte stride of one Vertex record in a GPU vertex buffer.
const VertexSize = 24

// Vertex is a single 2D shape vertex as consumed by the shapes.wgsl VertexInput struct.
// Size: 24 bytes (two tightly packed float32 triples, no padding).
type Vertex struct {
	Position mgl32.Vec3 // offset  0: clip-space position (12 bytes)
	Color    mgl32.Vec3 // offset 12: linear RGB color (12 bytes)
}

// Marshal serializes the Vertex into its little-endian GPU wire form.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (v Vertex) Marshal() []byte {
	buf := make([]byte, VertexSize)
	v.put(buf)
	return buf
}

func (v Vertex) put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color[2]))
}

// VertexLayout returns the vertex buffer layout matching Vertex: position at shader
// location 0 and color at shader location 1, both Float32x3, stride VertexSize.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout to bind at vertex buffer slot 0
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}
