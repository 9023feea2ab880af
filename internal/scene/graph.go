package scene

// Graph is the node tree produced by one asset load.
type Graph struct {
	Root *Node
}

// NewGraph creates a graph with an unnamed root.
func NewGraph() *Graph {
	return &Graph{Root: NewNode("")}
}

// Traverse visits every node depth-first, parent before children, in the
// graph's native child order. The root is visited first.
func (g *Graph) Traverse(fn func(*Node)) {
	if g == nil || g.Root == nil {
		return
	}
	var walk func(*Node)
	walk = func(n *Node) {
		fn(n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(g.Root)
}

// Meshes returns all mesh nodes in traversal order.
func (g *Graph) Meshes() []*Node {
	var out []*Node
	g.Traverse(func(n *Node) {
		if n.IsMesh {
			out = append(out, n)
		}
	})
	return out
}
