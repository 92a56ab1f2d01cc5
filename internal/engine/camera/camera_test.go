package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

func TestPositionStaysOnRadius(t *testing.T) {
	c := New()
	for i := 0; i < 10; i++ {
		c.HandleDrag(37, -19)
		p := c.Position()
		if r := p.Length(); math32.Abs(r-c.Radius) > 0.001 {
			t.Fatalf("position length = %v, want radius %v", r, c.Radius)
		}
	}
}

func TestDragClampsPhi(t *testing.T) {
	c := New()
	c.HandleDrag(0, -100000)
	if c.Phi != c.MinPhi {
		t.Errorf("Phi = %v after dragging past the pole, want %v", c.Phi, c.MinPhi)
	}
	c.HandleDrag(0, 100000)
	if c.Phi != c.MaxPhi {
		t.Errorf("Phi = %v after dragging under the scene, want %v", c.Phi, c.MaxPhi)
	}
}

func TestZoomClampsRadius(t *testing.T) {
	c := New()
	c.HandleZoom(100000)
	if c.Radius != c.MinRadius {
		t.Errorf("Radius = %v after zooming all the way in, want %v", c.Radius, c.MinRadius)
	}
	c.HandleZoom(-100000)
	if c.Radius != c.MaxRadius {
		t.Errorf("Radius = %v after zooming all the way out, want %v", c.Radius, c.MaxRadius)
	}
}

func TestViewMatrixLooksAtOrigin(t *testing.T) {
	c := New()
	view := c.ViewMatrix()

	// The eye maps to the view-space origin.
	eye := view.TransformPoint(c.Position())
	if eye.Length() > 0.001 {
		t.Errorf("eye transforms to %v, want origin", eye)
	}

	// The world origin lands on the -z axis at camera distance.
	origin := view.TransformPoint(math.Vec3{})
	if math32.Abs(origin.X) > 0.001 || math32.Abs(origin.Y) > 0.001 {
		t.Errorf("origin transforms to %v, want on the view axis", origin)
	}
	if math32.Abs(-origin.Z-c.Radius) > 0.001 {
		t.Errorf("origin at view depth %v, want %v", -origin.Z, c.Radius)
	}
}
