// Package scene holds the room's scene graph: mesh nodes, their transforms
// and bound materials, and the context shared by the loader, the pointer
// tracker and the frame coordinator.
package scene

import (
	"github.com/Faultbox/portfolio-room/internal/material"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Bounds is an axis-aligned box. The zero value is empty.
type Bounds struct {
	Min, Max math.Vec3
	Valid    bool
}

// Corners returns the eight box corners.
func (b Bounds) Corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform returns the box enclosing b after transforming it by m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if !b.Valid {
		return b
	}
	corners := b.Corners()
	first := m.TransformPoint(corners[0])
	out := Bounds{Min: first, Max: first, Valid: true}
	for _, c := range corners[1:] {
		p := m.TransformPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Node is a single entity of the room asset. Names come from the authoring
// tool and are the only channel of intent into the viewer.
type Node struct {
	Name   string
	IsMesh bool
	HasUV  bool

	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3

	// Bounds is the mesh's local-space box (from the POSITION accessor).
	Bounds Bounds

	// Spin is the accumulated animation angle around SpinAxis, applied
	// after the authored rotation.
	Spin     float32
	SpinAxis math.Vec3

	// Binding is set once by the loader and never changed afterwards.
	Binding material.Binding

	parent   *Node
	children []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		SpinAxis: math.Vec3{Y: 1},
	}
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Children returns the node's children in authored order.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Rotate advances the spin angle. The angle is never wrapped.
func (n *Node) Rotate(delta float32) {
	n.Spin += delta
}

// LocalMatrix returns T * R * Spin * S.
func (n *Node) LocalMatrix() math.Mat4 {
	rot := n.Rotation
	if n.Spin != 0 {
		rot = rot.Mul(math.QuatFromAxisAngle(n.SpinAxis.Normalize(), n.Spin))
	}
	return math.FromTRS(n.Translation, rot, n.Scale)
}

// WorldMatrix returns the node's transform composed with all ancestors.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldBounds returns the mesh box in world space.
func (n *Node) WorldBounds() Bounds {
	return n.Bounds.Transform(n.WorldMatrix())
}
