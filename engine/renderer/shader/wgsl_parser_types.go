package shader

import "github.com/cogentcore/webgpu/wgpu"

// wgslMember is one struct member together with the attributes the reflection cares about.
type wgslMember struct {
	name     string
	typ      string
	location int    // -1 without @location
	builtin  string // empty without @builtin
}

// wgslStruct is a struct declaration found in a WGSL program.
type wgslStruct struct {
	name    string
	members []wgslMember
}

// isVertexInput reports whether every member is a @location input. Stage outputs carry
// @builtin(position) and uniform structs carry no locations, so both are rejected.
func (s wgslStruct) isVertexInput() bool {
	if len(s.members) == 0 {
		return false
	}
	for _, m := range s.members {
		if m.builtin != "" || m.location < 0 {
			return false
		}
	}
	return true
}

// wgslEntryPoint is a function marked @vertex or @fragment.
type wgslEntryPoint struct {
	stage Stage
	name  string
}

// vertexFormats maps canonical WGSL scalar and vector types to vertex formats.
var vertexFormats = map[string]wgpu.VertexFormat{
	"f32":       wgpu.VertexFormatFloat32,
	"vec2<f32>": wgpu.VertexFormatFloat32x2,
	"vec3<f32>": wgpu.VertexFormatFloat32x3,
	"vec4<f32>": wgpu.VertexFormatFloat32x4,
	"i32":       wgpu.VertexFormatSint32,
	"vec2<i32>": wgpu.VertexFormatSint32x2,
	"vec3<i32>": wgpu.VertexFormatSint32x3,
	"vec4<i32>": wgpu.VertexFormatSint32x4,
	"u32":       wgpu.VertexFormatUint32,
	"vec2<u32>": wgpu.VertexFormatUint32x2,
	"vec3<u32>": wgpu.VertexFormatUint32x3,
	"vec4<u32>": wgpu.VertexFormatUint32x4,
}

// vertexFormatSize returns the byte size of a 32-bit component vertex format.
func vertexFormatSize(f wgpu.VertexFormat) uint64 {
	switch f {
	case wgpu.VertexFormatFloat32x2, wgpu.VertexFormatSint32x2, wgpu.VertexFormatUint32x2:
		return 8
	case wgpu.VertexFormatFloat32x3, wgpu.VertexFormatSint32x3, wgpu.VertexFormatUint32x3:
		return 12
	case wgpu.VertexFormatFloat32x4, wgpu.VertexFormatSint32x4, wgpu.VertexFormatUint32x4:
		return 16
	default:
		return 4
	}
}
