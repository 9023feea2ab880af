// Package debug provides debug visualization and capture utilities.
package debug

import "github.com/Faultbox/portfolio-room/pkg/math"

// BoxEdgeVertexCount is the number of vertices in a box wireframe (12 edges x 2).
const BoxEdgeVertexCount = 24

// BoxEdges returns line-segment endpoints for the 12 edges of the box
// spanned by two corners, expanded by padding on every side.
// Format: [x, y, z] per vertex.
func BoxEdges(a, b math.Vec3, padding float32) []float32 {
	lo := a.Min(b).Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi := a.Max(b).Add(math.Vec3{X: padding, Y: padding, Z: padding})

	return []float32{
		// Bottom face
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// Top face
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// Vertical edges
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	}
}
