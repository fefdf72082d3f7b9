package model

import "fmt"

// ShapeKind identifies one of the fixed shapes the demo can draw.
type ShapeKind int

const (
	// ShapePentagon is the solid-colored pentagon drawn at startup.
	ShapePentagon ShapeKind = iota

	// ShapeStar is the eight-pointed star with per-vertex colors.
	ShapeStar
)

// ShapeKinds lists every ShapeKind in upload order.
var ShapeKinds = []ShapeKind{ShapePentagon, ShapeStar}

func (k ShapeKind) String() string {
	switch k {
	case ShapePentagon:
		return "Pentagon"
	case ShapeStar:
		return "Star"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Next returns the other shape.
func (k ShapeKind) Next() ShapeKind {
	if k == ShapePentagon {
		return ShapeStar
	}
	return ShapePentagon
}
