// Package waves runs a finite difference simulation of a vibrating membrane,
// used for the moat water around the castle.
package waves

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// Waves simulates an m x n grid of surface heights. Two height buffers are
// kept and swapped each step so the wave equation can read the previous
// state while writing the next.
type Waves struct {
	rows int
	cols int

	timeStep    float32
	spatialStep float32

	// Precomputed update coefficients.
	k1, k2, k3 float32

	prev    []math.Vec3
	curr    []math.Vec3
	normals []math.Vec3
	tangent []math.Vec3

	t float32
}

// New builds an m x n wave grid with the given spatial step, simulation time
// step, wave speed and damping. The combination must satisfy the finite
// difference stability bound, otherwise the surface blows up; that is
// reported as an error rather than left to ruin the frame loop.
func New(m, n int, dx, dt, speed, damping float32) (*Waves, error) {
	if m < 3 || n < 3 {
		return nil, fmt.Errorf("wave grid %dx%d: need at least 3x3", m, n)
	}

	d := damping*dt + 2
	e := (speed * speed) * (dt * dt) / (dx * dx)
	if d <= 0 || (4-8*e)/d < -1 {
		return nil, fmt.Errorf("wave parameters dt=%v dx=%v speed=%v damping=%v are unstable", dt, dx, speed, damping)
	}

	w := &Waves{
		rows:        m,
		cols:        n,
		timeStep:    dt,
		spatialStep: dx,
		k1:          (damping*dt - 2) / d,
		k2:          (4 - 8*e) / d,
		k3:          2 * e / d,
		prev:        make([]math.Vec3, m*n),
		curr:        make([]math.Vec3, m*n),
		normals:     make([]math.Vec3, m*n),
		tangent:     make([]math.Vec3, m*n),
	}

	halfWidth := float32(n-1) * dx * 0.5
	halfDepth := float32(m-1) * dx * 0.5
	for i := 0; i < m; i++ {
		z := halfDepth - float32(i)*dx
		for j := 0; j < n; j++ {
			x := -halfWidth + float32(j)*dx
			idx := i*n + j
			w.prev[idx] = math.Vec3{X: x, Z: z}
			w.curr[idx] = math.Vec3{X: x, Z: z}
			w.normals[idx] = math.Vec3{Y: 1}
			w.tangent[idx] = math.Vec3{X: 1}
		}
	}
	return w, nil
}

func (w *Waves) RowCount() int    { return w.rows }
func (w *Waves) ColumnCount() int { return w.cols }

// VertexCount returns the number of grid points.
func (w *Waves) VertexCount() int { return w.rows * w.cols }

// TriangleCount returns the number of triangles a quad mesh over the grid
// produces.
func (w *Waves) TriangleCount() int { return (w.rows - 1) * (w.cols - 1) * 2 }

// Width returns the grid extent along x.
func (w *Waves) Width() float32 { return float32(w.cols-1) * w.spatialStep }

// Depth returns the grid extent along z.
func (w *Waves) Depth() float32 { return float32(w.rows-1) * w.spatialStep }

// Position returns the current position of grid point i.
func (w *Waves) Position(i int) math.Vec3 { return w.curr[i] }

// Normal returns the current surface normal of grid point i.
func (w *Waves) Normal(i int) math.Vec3 { return w.normals[i] }

// Update accumulates dt and advances the simulation in fixed steps. Only
// interior points move; the boundary stays pinned at zero height.
func (w *Waves) Update(dt float32) {
	w.t += dt
	for w.t >= w.timeStep {
		w.t -= w.timeStep
		w.step()
	}
}

func (w *Waves) step() {
	n := w.cols
	for i := 1; i < w.rows-1; i++ {
		for j := 1; j < n-1; j++ {
			idx := i*n + j
			// prev becomes the next buffer in place; it only holds
			// stale data this step no longer needs.
			w.prev[idx].Y = w.k1*w.prev[idx].Y +
				w.k2*w.curr[idx].Y +
				w.k3*(w.curr[idx+n].Y+w.curr[idx-n].Y+w.curr[idx+1].Y+w.curr[idx-1].Y)
		}
	}
	w.prev, w.curr = w.curr, w.prev

	twoDx := 2 * w.spatialStep
	for i := 1; i < w.rows-1; i++ {
		for j := 1; j < n-1; j++ {
			idx := i*n + j
			l := w.curr[idx-1].Y
			r := w.curr[idx+1].Y
			t := w.curr[idx-n].Y
			b := w.curr[idx+n].Y
			w.normals[idx] = math.Vec3{X: l - r, Y: twoDx, Z: b - t}.Normalize()
			w.tangent[idx] = math.Vec3{X: twoDx, Y: r - l}.Normalize()
		}
	}
}

// Disturb raises grid point (i, j) by magnitude and its four neighbors by
// half, seeding a ripple. The target must sit at least two cells inside the
// boundary so no neighbor write lands on a pinned boundary point; anything
// closer is ignored.
func (w *Waves) Disturb(i, j int, magnitude float32) {
	if i <= 1 || i >= w.rows-2 || j <= 1 || j >= w.cols-2 {
		return
	}

	half := 0.5 * magnitude
	n := w.cols
	w.curr[i*n+j].Y += magnitude
	w.curr[i*n+j+1].Y += half
	w.curr[i*n+j-1].Y += half
	w.curr[(i+1)*n+j].Y += half
	w.curr[(i-1)*n+j].Y += half
}

// MaxHeight returns the largest absolute surface height, useful for checking
// the simulation stays bounded.
func (w *Waves) MaxHeight() float32 {
	var max float32
	for i := range w.curr {
		if h := math32.Abs(w.curr[i].Y); h > max {
			max = h
		}
	}
	return max
}
