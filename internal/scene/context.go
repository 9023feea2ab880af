package scene

import (
	"errors"
	gomath "math"
	"sync/atomic"

	"github.com/Faultbox/portfolio-room/pkg/math"
)

// ErrAlreadyAttached is returned when a second graph is attached to a context.
var ErrAlreadyAttached = errors.New("scene graph already attached")

// Pointer holds normalized device coordinates in [-1, 1] (+Y up).
// Both axes live in one atomic word so a reader never sees a torn pair.
type Pointer struct {
	bits atomic.Uint64
}

// Set stores new coordinates.
func (p *Pointer) Set(x, y float32) {
	p.bits.Store(uint64(gomath.Float32bits(x))<<32 | uint64(gomath.Float32bits(y)))
}

// Load returns the current coordinates.
func (p *Pointer) Load() math.Vec2 {
	v := p.bits.Load()
	return math.Vec2{
		X: gomath.Float32frombits(uint32(v >> 32)),
		Y: gomath.Float32frombits(uint32(v)),
	}
}

// Context is the state shared by the loader, the pointer tracker and the
// frame coordinator. It is created once at startup.
type Context struct {
	Pointer Pointer

	graph       *Graph
	interactive []*Node
	animated    []*Node
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// Attach installs a classified graph and its side lists. It succeeds once.
func (c *Context) Attach(g *Graph, interactive, animated []*Node) error {
	if c.graph != nil {
		return ErrAlreadyAttached
	}
	c.graph = g
	c.interactive = interactive
	c.animated = animated
	return nil
}

// Graph returns the attached graph, or nil while the asset is still loading.
func (c *Context) Graph() *Graph {
	return c.graph
}

// Interactive returns the raycast-eligible nodes in traversal order.
func (c *Context) Interactive() []*Node {
	return c.interactive
}

// Animated returns the nodes rotated every frame.
func (c *Context) Animated() []*Node {
	return c.animated
}

// Ready reports whether a graph has been attached.
func (c *Context) Ready() bool {
	return c.graph != nil
}
