package picking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Hit is one intersection of the pointer ray with an interactive mesh.
type Hit struct {
	Node     *scene.Node
	Distance float32
	Point    math.Vec3
}

// HitResult is ordered nearest first. Equal distances keep traversal order.
type HitResult []Hit

// Nearest returns the closest hit.
func (h HitResult) Nearest() (Hit, bool) {
	if len(h) == 0 {
		return Hit{}, false
	}
	return h[0], true
}

// NearestContains reports whether the closest hit's name contains marker.
func (h HitResult) NearestContains(marker string) bool {
	hit, ok := h.Nearest()
	return ok && strings.Contains(hit.Node.Name, marker)
}

// Viewer supplies the camera matrices the ray is built from.
type Viewer interface {
	ViewProjection() math.Mat4
}

// Tracker turns pointer motion into per-frame hit lists. Move may be called
// from the input goroutine; Evaluate and Last belong to the frame loop.
type Tracker struct {
	ctx  *scene.Context
	last HitResult
}

// NewTracker creates a tracker storing the pointer in ctx.
func NewTracker(ctx *scene.Context) *Tracker {
	return &Tracker{ctx: ctx}
}

// Move records a pointer position in pixels (origin top-left) within a
// viewport of the given size. Degenerate viewports are ignored.
func (t *Tracker) Move(x, y, width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	ndc := ToNDC(x, y, width, height)
	t.ctx.Pointer.Set(ndc.X, ndc.Y)
}

// Pointer returns the last stored pointer in normalized device coordinates.
func (t *Tracker) Pointer() math.Vec2 {
	return t.ctx.Pointer.Load()
}

// Evaluate casts the pointer ray against the interactive meshes and stores
// the hits sorted nearest first. Before the scene is ready it yields none.
func (t *Tracker) Evaluate(v Viewer) HitResult {
	t.last = t.last[:0]
	nodes := t.ctx.Interactive()
	if len(nodes) == 0 {
		return t.last
	}

	ray := RayFromNDC(t.ctx.Pointer.Load(), v.ViewProjection().Inverse())
	for _, n := range nodes {
		if d, ok := ray.IntersectBounds(n.WorldBounds()); ok {
			t.last = append(t.last, Hit{Node: n, Distance: d, Point: ray.At(d)})
		}
	}
	slices.SortStableFunc(t.last, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return t.last
}

// Last returns the hits from the most recent Evaluate. The slice is reused
// by the next Evaluate.
func (t *Tracker) Last() HitResult {
	return t.last
}
