// Package camera provides the orbit camera used to view the room.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/portfolio-room/pkg/math"
)

// OrbitCamera orbits around a target point. Drag and zoom input is queued
// and applied gradually by Tick, so the camera keeps gliding after input
// stops when Damping is below 1.
type OrbitCamera struct {
	// Point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Elevation above the target's horizontal plane (radians)
	Yaw      float32 // Horizontal angle around +Y (radians)

	// Projection
	FOV    float32 // Vertical field of view (radians)
	Near   float32
	Far    float32
	Aspect float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the fraction of queued motion applied per tick.
	// Zero or values above 1 apply input immediately.
	Damping float32

	yawDelta   float32
	pitchDelta float32
	zoomDelta  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        25,
		Pitch:           0.3,
		FOV:             math32.Pi / 4,
		Near:            0.1,
		Far:             1000,
		Aspect:          16.0 / 9.0,
		MinDistance:     5,
		MaxDistance:     60,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
	}
}

// SetFOVDegrees sets the vertical field of view.
func (c *OrbitCamera) SetFOVDegrees(deg float32) {
	c.FOV = deg * math32.Pi / 180
}

// LookFrom places the camera at position, orbiting target.
func (c *OrbitCamera) LookFrom(position, target math.Vec3) {
	c.Target = target
	offset := position.Sub(target)
	c.Distance = offset.Length()
	if c.Distance == 0 {
		return
	}
	c.Pitch = math32.Asin(offset.Y / c.Distance)
	c.Yaw = math32.Atan2(offset.X, offset.Z)
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Target.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Resize updates the aspect ratio for a viewport in pixels.
func (c *OrbitCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// HandleDrag queues rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.yawDelta -= deltaX * c.DragSensitivity
	c.pitchDelta += deltaY * c.DragSensitivity
}

// HandleZoom queues a zoom step from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.zoomDelta -= delta * c.ZoomSensitivity
}

// Tick applies the damped share of queued motion. It runs once per frame.
func (c *OrbitCamera) Tick() {
	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}

	c.Yaw += c.yawDelta * f
	c.Pitch += c.pitchDelta * f
	c.Distance *= 1 + c.zoomDelta*f

	c.yawDelta *= 1 - f
	c.pitchDelta *= 1 - f
	c.zoomDelta *= 1 - f
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	c.Pitch = math32.Max(c.MinPitch, math32.Min(c.MaxPitch, c.Pitch))
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))
}
