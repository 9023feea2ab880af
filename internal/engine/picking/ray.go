// Package picking provides ray casting and pointer hit tracking.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// RayFromNDC converts normalized device coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func RayFromNDC(ndc math.Vec2, invViewProj math.Mat4) Ray {
	// Unproject near and far points
	near := invViewProj.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: -1})
	far := invViewProj.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// ToNDC maps pixel coordinates (origin top-left) to [-1, 1] with +Y up.
func ToNDC(screenX, screenY, viewportW, viewportH float32) math.Vec2 {
	return math.Vec2{
		X: 2*screenX/viewportW - 1,
		Y: 1 - 2*screenY/viewportH, // Flip Y
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBounds tests ray intersection with an axis-aligned box using the
// slab method. Returns the distance to the entry point, or the exit
// distance if the ray starts inside the box.
func (r Ray) IntersectBounds(box scene.Bounds) (t float32, hit bool) {
	if !box.Valid {
		return 0, false
	}

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewBounds creates a box from two corners in any order.
func NewBounds(a, b math.Vec3) scene.Bounds {
	return scene.Bounds{Min: a.Min(b), Max: a.Max(b), Valid: true}
}
