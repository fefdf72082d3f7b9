package model

import "github.com/go-gl/mathgl/mgl32"

var purple = mgl32.Vec3{0.5, 0.0, 0.5}

// Pentagon is a regular pentagon of radius 0.5, drawn as a three triangle fan around vertex E.
// Its triangles wind counter-clockwise.
var Pentagon = Shape{
	Kind: ShapePentagon,
	Vertices: []Vertex{
		{Position: mgl32.Vec3{-0.0868241, 0.49240386, 0.0}, Color: purple},   // A
		{Position: mgl32.Vec3{-0.49513406, 0.06958647, 0.0}, Color: purple},  // B
		{Position: mgl32.Vec3{-0.21918549, -0.44939706, 0.0}, Color: purple}, // C
		{Position: mgl32.Vec3{0.35966998, -0.3473291, 0.0}, Color: purple},   // D
		{Position: mgl32.Vec3{0.44147372, 0.2347359, 0.0}, Color: purple},    // E
	},
	Indices: []uint16{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
	},
}

// Star is an eight-pointed star: a yellow center fanned out to eight colored rim points.
// Unlike Pentagon its triangles wind clockwise.
var Star = Shape{
	Kind: ShapeStar,
	Vertices: []Vertex{
		{Position: mgl32.Vec3{0.0, 0.0, 0.0}, Color: mgl32.Vec3{1.0, 1.0, 0.0}},     // center
		{Position: mgl32.Vec3{0.0, 0.5, 0.0}, Color: mgl32.Vec3{1.0, 0.0, 0.0}},     // top
		{Position: mgl32.Vec3{0.35, 0.35, 0.0}, Color: mgl32.Vec3{0.0, 1.0, 0.0}},
		{Position: mgl32.Vec3{0.5, 0.0, 0.0}, Color: mgl32.Vec3{0.0, 0.0, 1.0}},     // right
		{Position: mgl32.Vec3{0.35, -0.35, 0.0}, Color: mgl32.Vec3{1.0, 0.0, 1.0}},
		{Position: mgl32.Vec3{0.0, -0.5, 0.0}, Color: mgl32.Vec3{0.0, 1.0, 1.0}},    // bottom
		{Position: mgl32.Vec3{-0.35, -0.35, 0.0}, Color: mgl32.Vec3{1.0, 1.0, 0.0}},
		{Position: mgl32.Vec3{-0.5, 0.0, 0.0}, Color: mgl32.Vec3{1.0, 0.0, 0.0}},    // left
		{Position: mgl32.Vec3{-0.35, 0.35, 0.0}, Color: mgl32.Vec3{0.0, 1.0, 0.0}},
	},
	Indices: []uint16{
		0, 1, 2,
		0, 2, 3,
		0, 3, 4,
		0, 4, 5,
		0, 5, 6,
		0, 6, 7,
		0, 7, 8,
		0, 8, 1,
	},
}
