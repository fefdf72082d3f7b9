package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// ShapesSource is the WGSL program shared by both shape pipelines. It declares the
// vs_solid and vs_main vertex entry points and the fs_main fragment entry point.
//
//go:embed assets/shapes.wgsl
var ShapesSource string

// ShapesShaderKey is the module cache key for ShapesSource.
const ShapesShaderKey = "shapes"

// Entry points declared by ShapesSource.
const (
	EntrySolidVertex   = "vs_solid"
	EntryColoredVertex = "vs_main"
	EntryFragment      = "fs_main"
)

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota

	// StageFragment is the fragment stage.
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	source       string
	entryPoints  map[Stage][]string
	vertexLayout wgpu.VertexBufferLayout
	spirv        []byte
	module       *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a parsed and validated WGSL program. It exposes the
// program's key, source, entry points and vertex input layout needed for pipeline creation.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for module caching.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoints lists the entry points declared for a stage in source order.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//
	// Returns:
	//   - []string: the entry point names
	EntryPoints(stage Stage) []string

	// HasEntryPoint reports whether the program declares name as an entry point for stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//   - name: the function name
	//
	// Returns:
	//   - bool: true if the entry point exists
	HasEntryPoint(stage Stage, name string) bool

	// VertexLayout retrieves the vertex buffer layout derived from the program's vertex input struct.
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the vertex buffer layout for buffer slot 0
	VertexLayout() wgpu.VertexBufferLayout

	// SPIRV returns the SPIR-V produced while validating the program.
	//
	// Returns:
	//   - []byte: the SPIR-V binary
	SPIRV() []byte

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses and validates a WGSL program. The program must declare at least one
// vertex and one fragment entry point and exactly one vertex input struct, and it must
// compile with naga.
//
// Parameters:
//   - key: a unique identifier for the shader, used for module caching
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the parsed shader
//   - error: a parse or validation error
func NewShader(key, source string) (Shader, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("shader %s: empty source", key)
	}

	s := &shader{
		key:    key,
		source: source,
		entryPoints: map[Stage][]string{
			StageVertex:   parseEntryPoints(source, StageVertex),
			StageFragment: parseEntryPoints(source, StageFragment),
		},
	}
	for _, stage := range []Stage{StageVertex, StageFragment} {
		if len(s.entryPoints[stage]) == 0 {
			return nil, fmt.Errorf("shader %s: no %s entry point", key, stage)
		}
	}

	layouts := parseVertexLayouts(source)
	if len(layouts) != 1 {
		return nil, fmt.Errorf("shader %s: expected one vertex input struct, found %d", key, len(layouts))
	}
	for _, layout := range layouts {
		s.vertexLayout = layout
	}

	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: validation failed: %w", key, err)
	}
	if len(spirv) == 0 {
		return nil, errors.New("shader " + key + ": validation produced no output")
	}
	s.spirv = spirv

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoints(stage Stage) []string {
	return s.entryPoints[stage]
}

func (s *shader) HasEntryPoint(stage Stage, name string) bool {
	return slices.Contains(s.entryPoints[stage], name)
}

func (s *shader) VertexLayout() wgpu.VertexBufferLayout {
	return s.vertexLayout
}

func (s *shader) SPIRV() []byte {
	return s.spirv
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
