package shader

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// structRegex captures a struct name and its body. WGSL struct bodies cannot nest braces.
	structRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// attributeRegex captures an attribute name and its optional argument list.
	attributeRegex = regexp.MustCompile(`@(\w+)(?:\s*\(\s*([^)]*?)\s*\))?`)

	// entryPointRegex captures the stage attribute and name of an entry point function,
	// allowing other attributes such as @workgroup_size in between.
	entryPointRegex = regexp.MustCompile(`@(vertex|fragment)\b(?:\s*@\w+(?:\s*\([^)]*\))?)*\s*fn\s+(\w+)`)
)

// parseEntryPoints lists the entry points of one stage in source order.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - stage: StageVertex or StageFragment
//
// Returns:
//   - []string: the entry point names, nil for an unknown stage
func parseEntryPoints(source string, stage Stage) []string {
	if stage != StageVertex && stage != StageFragment {
		return nil
	}

	var names []string
	for _, ep := range scanEntryPoints(stripComments(source)) {
		if ep.stage == stage {
			names = append(names, ep.name)
		}
	}
	return names
}

// parseVertexLayouts derives a tightly packed vertex buffer layout for every vertex input
// struct. Structs with a member type that has no vertex format are left out.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - map[string]wgpu.VertexBufferLayout: layouts keyed by struct name
func parseVertexLayouts(source string) map[string]wgpu.VertexBufferLayout {
	layouts := make(map[string]wgpu.VertexBufferLayout)
	for _, st := range scanStructs(stripComments(source)) {
		if !st.isVertexInput() {
			continue
		}
		if layout, ok := vertexLayoutOf(st); ok {
			layouts[st.name] = layout
		}
	}
	return layouts
}

func scanEntryPoints(source string) []wgslEntryPoint {
	var eps []wgslEntryPoint
	for _, m := range entryPointRegex.FindAllStringSubmatch(source, -1) {
		stage := StageVertex
		if m[1] == "fragment" {
			stage = StageFragment
		}
		eps = append(eps, wgslEntryPoint{stage: stage, name: m[2]})
	}
	return eps
}

func scanStructs(source string) []wgslStruct {
	var structs []wgslStruct
	for _, m := range structRegex.FindAllStringSubmatch(source, -1) {
		st := wgslStruct{name: m[1]}
		for _, decl := range splitMembers(m[2]) {
			if member, ok := parseMember(decl); ok {
				st.members = append(st.members, member)
			}
		}
		structs = append(structs, st)
	}
	return structs
}

// splitMembers splits a struct body on commas outside of <...> and (...).
func splitMembers(body string) []string {
	var (
		decls []string
		depth int
		start int
	)
	for i, r := range body {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				decls = append(decls, body[start:i])
				start = i + 1
			}
		}
	}
	decls = append(decls, body[start:])

	out := decls[:0]
	for _, d := range decls {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// parseMember reads "@attr(...) ... name: type".
func parseMember(decl string) (wgslMember, bool) {
	member := wgslMember{location: -1}
	for _, attr := range attributeRegex.FindAllStringSubmatch(decl, -1) {
		switch attr[1] {
		case "location":
			if loc, err := strconv.Atoi(attr[2]); err == nil {
				member.location = loc
			}
		case "builtin":
			member.builtin = attr[2]
		}
	}

	rest := strings.TrimSpace(attributeRegex.ReplaceAllString(decl, ""))
	name, typ, ok := strings.Cut(rest, ":")
	if !ok {
		return wgslMember{}, false
	}
	member.name = strings.TrimSpace(name)
	member.typ = canonicalType(typ)
	return member, member.name != ""
}

// canonicalType removes whitespace and expands the vecNf/vecNi/vecNu aliases.
func canonicalType(typ string) string {
	typ = strings.Join(strings.Fields(typ), "")
	if len(typ) == 5 && strings.HasPrefix(typ, "vec") {
		var scalar string
		switch typ[4] {
		case 'f':
			scalar = "f32"
		case 'i':
			scalar = "i32"
		case 'u':
			scalar = "u32"
		default:
			return typ
		}
		return typ[:4] + "<" + scalar + ">"
	}
	return typ
}

// vertexLayoutOf packs the members in location order starting at offset 0.
func vertexLayoutOf(st wgslStruct) (wgpu.VertexBufferLayout, bool) {
	members := slices.Clone(st.members)
	slices.SortStableFunc(members, func(a, b wgslMember) int {
		return cmp.Compare(a.location, b.location)
	})

	attrs := make([]wgpu.VertexAttribute, 0, len(members))
	var offset uint64
	for _, m := range members {
		format, ok := vertexFormats[m.typ]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         offset,
			ShaderLocation: uint32(m.location),
		})
		offset += vertexFormatSize(format)
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}
