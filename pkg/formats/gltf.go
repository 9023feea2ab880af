// Package formats provides readers for 3D asset file formats.
// glTF 2.0 / GLB documents are decoded with qmuntal/gltf; this package adds
// the scene-index checks and lookups the viewer needs on top: tree shape,
// root nodes, attribute presence and position bounds.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/qmuntal/gltf"
)

// glTF format errors.
var (
	ErrUnsupportedGLTFVersion  = errors.New("unsupported glTF version")
	ErrInvalidNodeIndex        = errors.New("invalid glTF node index")
	ErrUnsupportedRequiredExts = errors.New("unsupported required glTF extension")
)

// ExtDraco is the Draco mesh compression extension.
const ExtDraco = "KHR_draco_mesh_compression"

// supportedRequired lists required extensions that do not affect what the
// scene index reads (attribute presence and accessor bounds).
var supportedRequired = map[string]bool{
	ExtDraco:                     true,
	"KHR_materials_transmission": true,
	"KHR_texture_transform":      true,
	"KHR_mesh_quantization":      true,
	"EXT_meshopt_compression":    true,
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Decode decodes a .gltf or .glb document and checks its scene index.
// External buffer URIs resolve against fsys, which may be nil for
// self-contained assets.
func Decode(data []byte, fsys fs.FS) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(bytes.NewReader(data), fsys).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}
	if err := Check(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadFile reads and decodes name from fsys. Relative buffer URIs resolve
// against the asset's directory.
func ReadFile(fsys fs.FS, name string) (*gltf.Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}
	dir, err := fs.Sub(fsys, path.Dir(name))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", name, err)
	}
	return Decode(data, dir)
}

// Check validates the asset version, required extensions and hierarchy.
func Check(doc *gltf.Document) error {
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return fmt.Errorf("%w: %q", ErrUnsupportedGLTFVersion, doc.Asset.Version)
	}
	for _, ext := range doc.ExtensionsRequired {
		if !supportedRequired[ext] {
			return fmt.Errorf("%w: %s", ErrUnsupportedRequiredExts, ext)
		}
	}
	return Validate(doc)
}

// Validate checks node and mesh references and that the default scene is a
// forest: every node has at most one parent, there are no cycles, and each
// scene root is a parentless node listed once.
func Validate(doc *gltf.Document) error {
	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, n := range doc.Nodes {
		if n == nil {
			continue
		}
		if n.Mesh != nil && (*n.Mesh < 0 || *n.Mesh >= len(doc.Meshes) || doc.Meshes[*n.Mesh] == nil) {
			return fmt.Errorf("%w: node %d references mesh %d", ErrInvalidNodeIndex, i, *n.Mesh)
		}
		for _, c := range n.Children {
			if c < 0 || c >= len(doc.Nodes) || c == i || doc.Nodes[c] == nil {
				return fmt.Errorf("%w: node %d child %d", ErrInvalidNodeIndex, i, c)
			}
			if parents[c] != -1 {
				return fmt.Errorf("%w: node %d has two parents", ErrInvalidNodeIndex, c)
			}
			parents[c] = i
		}
	}
	// With at most one parent per node, a cycle shows up as a parent chain
	// longer than the node count.
	for i := range doc.Nodes {
		steps := 0
		for p := parents[i]; p != -1; p = parents[p] {
			steps++
			if steps > len(doc.Nodes) {
				return fmt.Errorf("%w: cycle through node %d", ErrInvalidNodeIndex, i)
			}
		}
	}
	for s, sc := range doc.Scenes {
		if sc == nil {
			continue
		}
		seen := make(map[int]bool, len(sc.Nodes))
		for _, r := range sc.Nodes {
			if r < 0 || r >= len(doc.Nodes) || doc.Nodes[r] == nil {
				return fmt.Errorf("%w: scene %d root %d", ErrInvalidNodeIndex, s, r)
			}
			if parents[r] != -1 {
				return fmt.Errorf("%w: scene %d root %d is a child of node %d", ErrInvalidNodeIndex, s, r, parents[r])
			}
			if seen[r] {
				return fmt.Errorf("%w: scene %d lists root %d twice", ErrInvalidNodeIndex, s, r)
			}
			seen[r] = true
		}
	}
	return nil
}

// RootNodes returns the root node indices of the default scene. Without
// scenes, every node that is nobody's child is a root, in index order.
func RootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		if doc.Scenes[idx] == nil {
			return nil
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n == nil {
			continue
		}
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child && doc.Nodes[i] != nil {
			roots = append(roots, i)
		}
	}
	return roots
}

// HasUV reports whether the primitive carries a first texture coordinate set.
func HasUV(p *gltf.Primitive) bool {
	_, ok := p.Attributes[gltf.TEXCOORD_0]
	return ok
}

// Compressed reports whether the primitive uses Draco compression.
func Compressed(p *gltf.Primitive) bool {
	_, ok := p.Extensions[ExtDraco]
	return ok
}

// Bounds returns the POSITION accessor's min/max, if present.
func Bounds(doc *gltf.Document, p *gltf.Primitive) (lo, hi [3]float32, ok bool) {
	idx, has := p.Attributes[gltf.POSITION]
	if !has || int(idx) < 0 || int(idx) >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return lo, hi, false
	}
	acc := doc.Accessors[idx]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return lo, hi, false
	}
	for i := 0; i < 3; i++ {
		lo[i] = float32(acc.Min[i])
		hi[i] = float32(acc.Max[i])
	}
	return lo, hi, true
}

// LocalMatrix returns the node's authored matrix, column-major, and whether
// it overrides the node's TRS properties.
func LocalMatrix(n *gltf.Node) ([16]float32, bool) {
	var m [16]float32
	if n.Matrix == identityMatrix || n.Matrix == [16]float64{} {
		return m, false
	}
	for i, v := range n.Matrix {
		m[i] = float32(v)
	}
	return m, true
}

// TRS returns the node's translation, rotation (x, y, z, w) and scale with
// glTF defaults for unset properties.
func TRS(n *gltf.Node) (t [3]float32, r [4]float32, s [3]float32) {
	for i, v := range n.Translation {
		t[i] = float32(v)
	}
	r = [4]float32{0, 0, 0, 1}
	if n.Rotation != [4]float64{} {
		for i, v := range n.Rotation {
			r[i] = float32(v)
		}
	}
	s = [3]float32{1, 1, 1}
	if n.Scale != [3]float64{} {
		for i, v := range n.Scale {
			s[i] = float32(v)
		}
	}
	return t, r, s
}
