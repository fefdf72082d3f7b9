package model

import (
	"encoding/binary"
	"fmt"
)

// Shape is an indexed triangle-list mesh. Shapes are immutable once declared.
type Shape struct {
	Kind     ShapeKind
	Vertices []Vertex
	Indices  []uint16
}

// Lookup returns the static shape table for kind.
//
// Parameters:
//   - kind: the shape to look up
//
// Returns:
//   - Shape: the shape table
//   - bool: false if kind is unknown
func Lookup(kind ShapeKind) (Shape, bool) {
	switch kind {
	case ShapePentagon:
		return Pentagon, true
	case ShapeStar:
		return Star, true
	default:
		return Shape{}, false
	}
}

// IndexCount returns the number of indices drawn for this shape.
//
// Returns:
//   - int: the index count
func (s Shape) IndexCount() int {
	return len(s.Indices)
}

// Validate checks that the shape is a well formed triangle list: the index count is a
// multiple of 3 and every index refers to an existing vertex.
//
// Returns:
//   - error: a description of the first violation, or nil
func (s Shape) Validate() error {
	if len(s.Vertices) == 0 {
		return fmt.Errorf("shape %s has no vertices", s.Kind)
	}
	if len(s.Indices)%3 != 0 {
		return fmt.Errorf("shape %s has %d indices, not a multiple of 3", s.Kind, len(s.Indices))
	}
	for i, idx := range s.Indices {
		if int(idx) >= len(s.Vertices) {
			return fmt.Errorf("shape %s index %d is %d, vertex count is %d", s.Kind, i, idx, len(s.Vertices))
		}
	}
	return nil
}

// VertexBytes serializes every vertex back to back for upload to a vertex buffer.
//
// Returns:
//   - []byte: len(Vertices)*VertexSize bytes
func (s Shape) VertexBytes() []byte {
	buf := make([]byte, len(s.Vertices)*VertexSize)
	for i, v := range s.Vertices {
		v.put(buf[i*VertexSize : (i+1)*VertexSize])
	}
	return buf
}

// IndexBytes serializes the indices as little-endian uint16 values. The result is
// zero-padded to a multiple of 4 bytes to satisfy the WebGPU copy alignment; draws
// use IndexCount and never read the padding.
//
// Returns:
//   - []byte: the index buffer contents
func (s Shape) IndexBytes() []byte {
	n := len(s.Indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range s.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
