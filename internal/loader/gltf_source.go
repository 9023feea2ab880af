package loader

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/pkg/formats"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// GLTFSource reads glTF/GLB room assets from a filesystem.
type GLTFSource struct {
	FS  fs.FS
	Log *zap.Logger
}

// LoadScene decodes the asset at path and builds its node tree.
func (s GLTFSource) LoadScene(ctx context.Context, path string) (*scene.Graph, error) {
	doc, err := formats.ReadFile(s.FS, path)
	if err != nil {
		return nil, fmt.Errorf("parsing asset %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.BuildGraph(doc), nil
}

// BuildGraph converts a decoded document into a scene graph. A mesh with a
// single primitive becomes the node itself; with several primitives the
// node becomes a group and each primitive a child mesh named <node>_<i>,
// so markers in the node name carry over to every primitive.
func (s GLTFSource) BuildGraph(doc *gltf.Document) *scene.Graph {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	b := graphBuilder{doc: doc, log: log}

	g := scene.NewGraph()
	for _, idx := range formats.RootNodes(doc) {
		b.addNode(g.Root, idx)
	}
	return g
}

type graphBuilder struct {
	doc *gltf.Document
	log *zap.Logger
}

func (b graphBuilder) addNode(parent *scene.Node, idx int) {
	src := b.doc.Nodes[idx]
	n := parent.AddChild(scene.NewNode(src.Name))
	applyTransform(n, src)

	if src.Mesh != nil {
		prims := b.doc.Meshes[*src.Mesh].Primitives
		if len(prims) == 1 {
			b.applyPrimitive(n, prims[0])
		} else {
			for i, p := range prims {
				child := n.AddChild(scene.NewNode(fmt.Sprintf("%s_%d", src.Name, i)))
				b.applyPrimitive(child, p)
			}
		}
	}

	for _, c := range src.Children {
		b.addNode(n, c)
	}
}

func applyTransform(n *scene.Node, src *gltf.Node) {
	if m, ok := formats.LocalMatrix(src); ok {
		n.Translation, n.Rotation, n.Scale = math.Mat4(m).Decompose()
		return
	}
	t, r, s := formats.TRS(src)
	n.Translation = math.Vec3{X: t[0], Y: t[1], Z: t[2]}
	n.Rotation = math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}
	n.Scale = math.Vec3{X: s[0], Y: s[1], Z: s[2]}
}

func (b graphBuilder) applyPrimitive(n *scene.Node, p *gltf.Primitive) {
	n.IsMesh = true
	n.HasUV = formats.HasUV(p)
	if lo, hi, ok := formats.Bounds(b.doc, p); ok {
		n.Bounds = scene.Bounds{
			Min:   math.Vec3{X: lo[0], Y: lo[1], Z: lo[2]},
			Max:   math.Vec3{X: hi[0], Y: hi[1], Z: hi[2]},
			Valid: true,
		}
	}
	if formats.Compressed(p) {
		b.log.Debug("mesh primitive is Draco compressed, bounds taken from accessor",
			zap.String("mesh", n.Name),
			zap.Bool("bounds", n.Bounds.Valid))
	}
}
