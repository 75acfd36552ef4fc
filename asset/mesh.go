package asset

import "image/color"

// Shape enumerates the primitive meshes the renderer knows how to draw.
type Shape uint8

const (
	ShapeCircle Shape = iota
)

// Mesh is a 2D primitive.
type Mesh struct {
	Shape  Shape
	Radius float32
}

// Circle returns a circle mesh of the given radius.
func Circle(radius float32) Mesh {
	return Mesh{Shape: ShapeCircle, Radius: radius}
}

// ColorMaterial fills a mesh with a flat colour.
type ColorMaterial struct {
	Color color.RGBA
}

var (
	Purple = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)
