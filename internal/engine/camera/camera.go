// Package camera provides the orbit camera used to circle the castle.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// OrbitCamera orbits the origin on a sphere described by an azimuth angle
// theta, a polar angle phi measured from the +y axis, and a radius.
type OrbitCamera struct {
	Theta  float32
	Phi    float32
	Radius float32

	// Constraints
	MinRadius float32
	MaxRadius float32
	MinPhi    float32
	MaxPhi    float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32 // world units per pixel
}

// New returns a camera looking down at the castle from the south-east.
func New() *OrbitCamera {
	return &OrbitCamera{
		Theta:           1.5 * math32.Pi,
		Phi:             math32.Pi/4 - 0.1,
		Radius:          30,
		MinRadius:       5,
		MaxRadius:       150,
		MinPhi:          0.1,
		MaxPhi:          math32.Pi - 0.1,
		DragSensitivity: 0.25 * math32.Pi / 180,
		ZoomSensitivity: 0.05,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return math.Vec3{
		X: c.Radius * math32.Sin(c.Phi) * math32.Cos(c.Theta),
		Y: c.Radius * math32.Cos(c.Phi),
		Z: c.Radius * math32.Sin(c.Phi) * math32.Sin(c.Theta),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), math.Vec3{}, math.Vec3{Y: 1})
}

// HandleDrag updates the orbit angles from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Theta += deltaX * c.DragSensitivity
	c.Phi += deltaY * c.DragSensitivity

	if c.Phi < c.MinPhi {
		c.Phi = c.MinPhi
	}
	if c.Phi > c.MaxPhi {
		c.Phi = c.MaxPhi
	}
}

// HandleZoom moves the camera along its view ray.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Radius -= delta * c.ZoomSensitivity
	if c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}
